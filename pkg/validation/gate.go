package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/falcomnl/api-controller/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// ErrorsKey is the gin context key under which a failed validation stores its Errors.
const ErrorsKey = "validation_errors"

// ErrUnsupportedRule is returned for validator tags that compare struct
// fields, which a body map cannot provide.
var ErrUnsupportedRule = errors.New("unsupported validation rule")

// Errors maps a field to its failure messages.
type Errors map[string][]string

// Gate validates request bodies. It is safe for concurrent use.
type Gate struct {
	validate *validator.Validate
}

// NewGate returns a Gate with the custom validations registered.
func NewGate() (*Gate, error) {
	v := validator.New()
	if err := validators.Register(v); err != nil {
		return nil, fmt.Errorf("failed to register custom validators: %w", err)
	}
	return &Gate{validate: v}, nil
}

// RegisterValidation adds a custom tag to the gate.
func (g *Gate) RegisterValidation(tag string, fn validator.Func) error {
	return g.validate.RegisterValidation(tag, fn)
}

// Validate checks body against rules. An empty result means the body is valid.
//
// The tags required_with, required_with_all, required_without,
// required_without_all, excluded_with, excluded_without, eqfield and nefield
// name other body keys and are evaluated against body. Other field-comparing
// tags fail with ErrUnsupportedRule.
func (g *Gate) Validate(ctx context.Context, body map[string]interface{}, rules Rules, messages Messages) (Errors, error) {
	fields := make([]string, 0, len(rules))
	for field := range rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	errs := Errors{}
	for _, field := range fields {
		rule := rules[field]
		parsed, err := parseRule(rule)
		if err != nil {
			return nil, fmt.Errorf("invalid rule %q for field %s: %w", rule, field, err)
		}

		value, present := body[field]
		for _, cr := range parsed.cross {
			if cr.fails(body, value, present) {
				errs[field] = append(errs[field], message(field, cr.tag, strings.Join(cr.params, " / "), reflect.Invalid, messages))
			}
		}

		if (!present || value == nil) && !parsed.required {
			continue
		}
		if parsed.local == "" {
			continue
		}

		err = g.validate.VarCtx(ctx, target(value), parsed.local)
		if err == nil {
			continue
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("invalid rule %q for field %s: %w", rule, field, err)
		}
		for _, fe := range fieldErrs {
			errs[field] = append(errs[field], message(field, fe.Tag(), fe.Param(), fe.Kind(), messages))
		}
	}

	return errs, nil
}

// Check validates body with the rules of set for the given mode. A nil set
// accepts every body.
func (g *Gate) Check(ctx context.Context, body map[string]interface{}, set RuleSet, isUpdate bool) (Errors, error) {
	return g.CheckWith(ctx, body, set, isUpdate, nil, nil)
}

// CheckWith is Check with explicit rules and messages. Non-empty rules or
// messages replace the ones of set.
func (g *Gate) CheckWith(ctx context.Context, body map[string]interface{}, set RuleSet, isUpdate bool, rules Rules, messages Messages) (Errors, error) {
	if len(rules) == 0 && set != nil {
		rules = set.Rules(isUpdate)
	}
	if len(messages) == 0 && set != nil {
		messages = set.Messages(isUpdate)
	}
	if len(rules) == 0 {
		return Errors{}, nil
	}
	return g.Validate(ctx, body, rules, messages)
}

// target passes numbers and booleans by pointer so that present zero values
// (0, false) satisfy required, while empty strings still fail it. JSON
// numbers are validated as float64.
func target(value interface{}) interface{} {
	if n, ok := value.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return value
		}
		value = f
	}

	switch value.(type) {
	case bool, float64:
		return &value
	default:
		return value
	}
}

type crossRule struct {
	tag    string
	params []string
}

// fails reports whether the rule rejects value given the rest of body.
func (cr crossRule) fails(body map[string]interface{}, value interface{}, present bool) bool {
	self := filled(value, present)

	switch cr.tag {
	case "required_with":
		return !self && cr.any(body, true)
	case "required_with_all":
		return !self && cr.all(body, true)
	case "required_without":
		return !self && cr.any(body, false)
	case "required_without_all":
		return !self && cr.all(body, false)
	case "excluded_with":
		return self && cr.any(body, true)
	case "excluded_without":
		return self && cr.any(body, false)
	case "eqfield":
		return self && !sameValue(value, body[cr.params[0]])
	case "nefield":
		return self && sameValue(value, body[cr.params[0]])
	}
	return false
}

func (cr crossRule) any(body map[string]interface{}, want bool) bool {
	for _, p := range cr.params {
		v, ok := body[p]
		if filled(v, ok) == want {
			return true
		}
	}
	return false
}

func (cr crossRule) all(body map[string]interface{}, want bool) bool {
	for _, p := range cr.params {
		v, ok := body[p]
		if filled(v, ok) != want {
			return false
		}
	}
	return true
}

var crossTags = map[string]bool{
	"required_with":        true,
	"required_with_all":    true,
	"required_without":     true,
	"required_without_all": true,
	"excluded_with":        true,
	"excluded_without":     true,
	"eqfield":              true,
	"nefield":              true,
}

var unsupportedTags = map[string]bool{
	"required_if":          true,
	"required_unless":      true,
	"excluded_if":          true,
	"excluded_unless":      true,
	"excluded_with_all":    true,
	"excluded_without_all": true,
	"skip_unless":          true,
}

type parsedRule struct {
	local    string
	required bool
	cross    []crossRule
}

// parseRule separates the tags that need the whole body from the ones the
// validator checks on the value alone.
func parseRule(rule string) (parsedRule, error) {
	var out parsedRule
	var local []string

	for _, tag := range strings.Split(rule, ",") {
		name, param, _ := strings.Cut(tag, "=")
		switch {
		case name == "required":
			out.required = true
			local = append(local, tag)
		case crossTags[name]:
			params := strings.Fields(param)
			if len(params) == 0 {
				return out, fmt.Errorf("%w: %s needs a field", ErrUnsupportedRule, name)
			}
			out.cross = append(out.cross, crossRule{tag: name, params: params})
		case unsupportedTags[name], strings.HasSuffix(name, "field"), strings.HasPrefix(name, "field"):
			return out, fmt.Errorf("%w: %s", ErrUnsupportedRule, name)
		case tag != "":
			local = append(local, tag)
		}
	}

	out.local = strings.Join(local, ",")
	return out, nil
}

// filled reports a present value that is not null, an empty string or an
// empty list or object.
func filled(value interface{}, present bool) bool {
	if !present || value == nil {
		return false
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	}
	return true
}

func sameValue(a, b interface{}) bool {
	if na, ok := a.(json.Number); ok {
		if nb, ok := b.(json.Number); ok {
			return na.String() == nb.String()
		}
	}
	return reflect.DeepEqual(a, b)
}
