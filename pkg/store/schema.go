package store

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var defaultSchemas sync.Map

// ParseModel returns the gorm schema of model. With a db the schema comes
// from the db's own cache and naming strategy; without one the default
// naming strategy is used.
func ParseModel(db *gorm.DB, model interface{}) (*schema.Schema, error) {
	if db == nil || db.Config == nil {
		s, err := schema.Parse(model, &defaultSchemas, schema.NamingStrategy{})
		if err != nil {
			return nil, fmt.Errorf("failed to parse model: %w", err)
		}
		return s, nil
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	return stmt.Schema, nil
}
