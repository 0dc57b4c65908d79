package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuery matches every *InvalidQueryError.
var ErrInvalidQuery = errors.New("invalid query")

// ErrNotFound is returned by First when no record matches.
var ErrNotFound = errors.New("record not found")

// Kinds of invalid query.
const (
	KindFilter  = "filter"
	KindSort    = "sort"
	KindInclude = "include"
	KindField   = "field"
	KindAppend  = "append"
)

// InvalidQueryError reports requested names missing from an allow-list.
type InvalidQueryError struct {
	Kind    string
	Unknown []string
	Allowed []string
}

func (e *InvalidQueryError) Error() string {
	verb := "are"
	if e.Kind == KindSort {
		verb = "is"
	}

	msg := fmt.Sprintf("Requested %s(s) `%s` %s not allowed. ", e.Kind, strings.Join(e.Unknown, ", "), verb)
	if len(e.Allowed) == 0 {
		return msg + fmt.Sprintf("There are no allowed %ss.", e.Kind)
	}
	return msg + fmt.Sprintf("Allowed %s(s) are `%s`.", e.Kind, strings.Join(e.Allowed, ", "))
}

// Is reports whether target is ErrInvalidQuery.
func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}

func invalid(kind string, unknown, allowed []string) error {
	return &InvalidQueryError{Kind: kind, Unknown: unknown, Allowed: allowed}
}
