package store

import (
	"sort"
	"strings"

	"gorm.io/gorm/schema"
)

// FieldsForKeys maps request body keys, the JSON names of T, to struct field
// names usable with gorm's Select. Primary keys, fields hidden from JSON and
// unknown keys are skipped. The result is sorted.
func FieldsForKeys[T any](keys []string) ([]string, error) {
	s, err := ParseModel(nil, new(T))
	if err != nil {
		return nil, err
	}

	byKey := map[string]*schema.Field{}
	for _, field := range s.Fields {
		if field.DBName == "" || field.PrimaryKey {
			continue
		}
		if name := jsonName(field); name != "" {
			byKey[name] = field
		}
	}

	seen := map[string]bool{}
	var fields []string
	for _, key := range keys {
		field, ok := byKey[key]
		if !ok || seen[field.Name] {
			continue
		}
		seen[field.Name] = true
		fields = append(fields, field.Name)
	}

	sort.Strings(fields)
	return fields, nil
}

func jsonName(field *schema.Field) string {
	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return field.Name
	}

	name := strings.Split(tag, ",")[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// StripPrimaryKeys removes the JSON keys of T's primary key fields from body.
func StripPrimaryKeys[T any](body map[string]interface{}) error {
	s, err := ParseModel(nil, new(T))
	if err != nil {
		return err
	}

	for _, field := range s.PrimaryFields {
		if name := jsonName(field); name != "" {
			delete(body, name)
		}
	}
	return nil
}
