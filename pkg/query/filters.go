package query

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FilterKind selects how a filter value is matched.
type FilterKind int

const (
	// PartialFilter matches case-insensitive substrings.
	PartialFilter FilterKind = iota
	// ExactFilter matches equal values.
	ExactFilter
	// CallbackFilter delegates to a function.
	CallbackFilter
)

// FilterFunc applies a callback filter with the comma separated request values.
type FilterFunc func(db *gorm.DB, values []string) *gorm.DB

// Filter is an allowed filter.
type Filter struct {
	Name     string
	Column   string
	Kind     FilterKind
	Callback FilterFunc
}

// Partial allows filter[name] as a LIKE match on the column of the same name.
func Partial(name string) Filter {
	return Filter{Name: name, Kind: PartialFilter}
}

// Exact allows filter[name] as an equality (or IN) match.
func Exact(name string) Filter {
	return Filter{Name: name, Kind: ExactFilter}
}

// Callback allows filter[name] handled by fn.
func Callback(name string, fn FilterFunc) Filter {
	return Filter{Name: name, Kind: CallbackFilter, Callback: fn}
}

// On returns a copy of f matching column instead of the filter name.
func (f Filter) On(column string) Filter {
	f.Column = column
	return f
}

func (f Filter) column() clause.Column {
	if f.Column != "" {
		return clause.Column{Name: f.Column}
	}
	return clause.Column{Name: f.Name}
}

func (f Filter) apply(db *gorm.DB, raw string) *gorm.DB {
	values := splitList(raw)
	if len(values) == 0 {
		return db
	}

	switch f.Kind {
	case CallbackFilter:
		return f.Callback(db, values)
	case ExactFilter:
		if len(values) == 1 {
			return db.Where(clause.Eq{Column: f.column(), Value: exactValue(values[0])})
		}
		in := make([]interface{}, len(values))
		for i, v := range values {
			in[i] = exactValue(v)
		}
		return db.Where(clause.IN{Column: f.column(), Values: in})
	default:
		likes := make([]clause.Expression, len(values))
		for i, v := range values {
			likes[i] = clause.Expr{
				SQL:  "LOWER(?) LIKE ?",
				Vars: []interface{}{f.column(), "%" + strings.ToLower(v) + "%"},
			}
		}
		return db.Where(clause.Or(likes...))
	}
}

// exactValue converts boolean strings the way request flags are usually sent.
func exactValue(v string) interface{} {
	switch strings.ToLower(v) {
	case "true":
		return true
	case "false":
		return false
	default:
		return v
	}
}
