package config

import (
	"fmt"

	"github.com/falcomnl/api-controller/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// Supported database types
const (
	SqliteDbType   = "sqlite"
	PostgresDbType = "postgres"
	MysqlDbType    = "mysql"
)

// DatabaseSettings selects the gorm dialect and connection string.
// Name is only used by postgres, where the database is created on demand.
type DatabaseSettings struct {
	Type string `env:"TYPE" envDefault:"sqlite" validate:"required,oneof=sqlite postgres mysql"`
	DSN  string `env:"DSN" envDefault:"api-controller.db" validate:"required"`
	Name string `env:"NAME" validate:"omitempty,identifier"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()
	if err := validators.Register(validate); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}
	return nil
}
