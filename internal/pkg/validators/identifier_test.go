//go:build unit
// +build unit

package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredValidations(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	tests := []struct {
		name  string
		value string
		tag   string
		valid bool
	}{
		{"identifier plain", "order_column", IdentifierTag, true},
		{"identifier leading underscore", "_tmp", IdentifierTag, true},
		{"identifier leading digit", "1abc", IdentifierTag, false},
		{"identifier injection", "id; DROP TABLE posts", IdentifierTag, false},
		{"alpha dash slug", "hello-world_2", AlphaDashTag, true},
		{"alpha dash unicode", "crème-brûlée", AlphaDashTag, true},
		{"alpha dash space", "hello world", AlphaDashTag, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, tt.tag)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
