package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Gin modes accepted by ServerSettings.Mode
const (
	ServerModeDebug   = "debug"
	ServerModeRelease = "release"
	ServerModeTest    = "test"
)

// ServerSettings configures the HTTP listener of the demo service.
type ServerSettings struct {
	Port        string   `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	Mode        string   `env:"MODE" envDefault:"release" validate:"required,oneof=debug release test"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:"," validate:"min=1,dive,required"`
	BasePath    string   `env:"BASE_PATH" envDefault:"/api/v1" validate:"required,startswith=/"`
}

// Validate checks that all fields in ServerSettings are valid
func (s *ServerSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for ServerSettings: %w", err)
	}
	return nil
}

// AuthSettings toggles bearer token authorization for the registered resources.
type AuthSettings struct {
	Enabled   bool   `env:"ENABLED" envDefault:"false"`
	JWTSecret string `env:"JWT_SECRET"`
}

// Validate requires a reasonably long secret once authorization is enabled.
func (s *AuthSettings) Validate() error {
	if s.Enabled && len(s.JWTSecret) < 32 {
		return fmt.Errorf("jwt secret must be at least 32 characters when auth is enabled")
	}
	return nil
}
