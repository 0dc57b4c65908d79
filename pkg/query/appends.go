package query

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Appender is implemented by models exposing computed attributes.
type Appender interface {
	AppendedAttribute(name string) interface{}
}

// withAppends renders rec as an object carrying the requested attributes.
// Records that are not Appenders are returned unchanged.
func withAppends(rec interface{}, names []string) (interface{}, error) {
	appender, ok := rec.(Appender)
	if !ok {
		return rec, nil
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	obj := map[string]interface{}{}
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	for _, name := range names {
		obj[name] = appender.AppendedAttribute(name)
	}
	return obj, nil
}
