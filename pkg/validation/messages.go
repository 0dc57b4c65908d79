package validation

import (
	"reflect"
	"strings"
)

const fallbackMessage = "The :attribute field failed the :tag rule."

var defaultMessages = map[string]string{
	"required":             "The :attribute field is required.",
	"required_with":        "The :attribute field is required when :param is present.",
	"required_with_all":    "The :attribute field is required when :param are present.",
	"required_without":     "The :attribute field is required when :param is not present.",
	"required_without_all": "The :attribute field is required when none of :param are present.",
	"excluded_without":     "The :attribute field is prohibited unless :param is present.",
	"nefield":              "The :attribute and :param must be different.",
	"email":                "The :attribute must be a valid email address.",
	"url":                  "The :attribute format is invalid.",
	"uuid":                 "The :attribute must be a valid UUID.",
	"uuid4":                "The :attribute must be a valid UUID.",
	"numeric":              "The :attribute must be a number.",
	"number":               "The :attribute must be a number.",
	"boolean":              "The :attribute field must be true or false.",
	"oneof":                "The selected :attribute is invalid.",
	"alpha":                "The :attribute may only contain letters.",
	"alphanum":             "The :attribute may only contain letters and numbers.",
	"alpha_dash":           "The :attribute may only contain letters, numbers, dashes and underscores.",
	"identifier":           "The :attribute must be a valid identifier.",
	"datetime":             "The :attribute does not match the format :param.",
	"eqfield":              "The :attribute and :param must match.",
	"excluded_with":        "The :attribute field is prohibited when :param is present.",
	"startswith":           "The :attribute must start with :param.",
	"endswith":             "The :attribute must end with :param.",
	"gt":                   "The :attribute must be greater than :param.",
	"gte":                  "The :attribute must be greater than or equal :param.",
	"lt":                   "The :attribute must be less than :param.",
	"lte":                  "The :attribute must be less than or equal :param.",
	"min.string":           "The :attribute must be at least :param characters.",
	"min.numeric":          "The :attribute must be at least :param.",
	"min.array":            "The :attribute must have at least :param items.",
	"max.string":           "The :attribute may not be greater than :param characters.",
	"max.numeric":          "The :attribute may not be greater than :param.",
	"max.array":            "The :attribute may not have more than :param items.",
	"len.string":           "The :attribute must be :param characters.",
	"len.numeric":          "The :attribute must be :param.",
	"len.array":            "The :attribute must contain :param items.",
}

// sized tags take a type-specific message like Laravel's size rules.
var sizedTags = map[string]bool{"min": true, "max": true, "len": true}

func kindSuffix(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array, reflect.Map:
		return "array"
	default:
		return "numeric"
	}
}

// attributeName turns snake_case keys into words, as in "published at".
func attributeName(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func message(field, tag, param string, kind reflect.Kind, custom Messages) string {
	msg, ok := custom[field+"."+tag]
	if !ok {
		msg, ok = custom[tag]
	}
	if !ok && sizedTags[tag] {
		msg, ok = defaultMessages[tag+"."+kindSuffix(kind)]
	}
	if !ok {
		msg, ok = defaultMessages[tag]
	}
	if !ok {
		msg = fallbackMessage
	}

	return strings.NewReplacer(
		":attribute", attributeName(field),
		":param", param,
		":tag", tag,
	).Replace(msg)
}
