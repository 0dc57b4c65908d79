package controller

import (
	"errors"

	"github.com/falcomnl/api-controller/pkg/query"
	"github.com/falcomnl/api-controller/pkg/validation"
)

// Defaults applied by New.
const (
	DefaultKeyColumn  = "id"
	DefaultMaxPerPage = 100
)

// Options configure a Resource.
type Options struct {
	// Name identifies the resource in logs.
	Name string

	// AllowedOperations lists the enabled operations, or "*" for all.
	AllowedOperations []string

	// Authorizer checks abilities; nil authorizes everything.
	Authorizer Authorizer

	// ListFields and DetailFields select the columns of index and of the
	// single record operations. Empty or "*" selects all columns.
	ListFields   []string
	DetailFields []string

	AllowedFields   []string
	AllowedFilters  []query.Filter
	AllowedSorts    []string
	DefaultSort     []string
	AllowedIncludes []query.AllowedInclude
	AllowedAppends  []string

	// NoPagination makes index return every record instead of a page.
	NoPagination bool
	PerPage      int
	MaxPerPage   int

	// Constraints are column values every query matches and every write sets.
	Constraints map[string]interface{}

	// ParamConstraints map route parameters to columns, for nested routes
	// like /authors/:author/posts.
	ParamConstraints map[string]string

	// KeyColumn is matched against the last route parameter.
	KeyColumn string

	Validation validation.RuleSet

	Logger Logger
}

func (o Options) withDefaults() (Options, error) {
	if o.Name == "" {
		return o, errors.New("resource name is required")
	}
	if o.KeyColumn == "" {
		o.KeyColumn = DefaultKeyColumn
	}
	if o.PerPage < 1 {
		o.PerPage = query.DefaultPerPage
	}
	if o.MaxPerPage < 1 {
		o.MaxPerPage = DefaultMaxPerPage
	}
	if o.MaxPerPage < o.PerPage {
		o.MaxPerPage = o.PerPage
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	return o, nil
}
