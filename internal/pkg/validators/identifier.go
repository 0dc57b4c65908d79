// Package validators holds custom go-playground/validator tags shared by the
// configuration layer and the request validation gate.
package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Tag names under which the validations are registered.
const (
	IdentifierTag = "identifier"
	AlphaDashTag  = "alpha_dash"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	alphaDashPattern  = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)
)

// IdentifierValidation accepts plain SQL identifiers (letters, digits and
// underscores, not starting with a digit). Used for database and column names.
func IdentifierValidation(fl validator.FieldLevel) bool {
	return identifierPattern.MatchString(fl.Field().String())
}

// AlphaDashValidation accepts letters, digits, dashes and underscores only.
func AlphaDashValidation(fl validator.FieldLevel) bool {
	return alphaDashPattern.MatchString(fl.Field().String())
}

// Register installs every custom validation on v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(IdentifierTag, IdentifierValidation); err != nil {
		return err
	}
	return v.RegisterValidation(AlphaDashTag, AlphaDashValidation)
}
