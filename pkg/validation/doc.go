// Package validation runs declarative rule sets against decoded JSON request
// bodies.
//
// Rules use go-playground/validator tag syntax keyed by body field:
//
//	validation.Rules{
//		"title": "required,max=255",
//		"email": "omitempty,email",
//	}
//
// Fields missing from the body are only checked by rules containing a
// required tag, so partial updates validate the keys they send. Failures are
// collected into an Errors bag with Laravel-style messages that can be
// overridden per field and tag.
package validation
