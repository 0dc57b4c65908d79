package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/falcomnl/api-controller/pkg/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Builder configures and runs a query for model T.
type Builder[T any] struct {
	db     *gorm.DB
	params Params
	table  string

	columns        []string
	relationFields map[string][]string
	scopes         []func(*gorm.DB) *gorm.DB
	sorts          []string
	defaultSorts   []string
	includes       []AllowedInclude
	appends        []string

	err error
}

// For starts a builder for T using the given request parameters.
func For[T any](db *gorm.DB, params Params) *Builder[T] {
	return &Builder[T]{
		db:             db,
		params:         params,
		table:          tableName(db, new(T)),
		relationFields: map[string][]string{},
	}
}

func tableName(db *gorm.DB, model interface{}) string {
	s, err := store.ParseModel(db, model)
	if err != nil {
		return ""
	}
	return s.Table
}

// Err returns the first configuration error.
func (b *Builder[T]) Err() error {
	return b.err
}

// Params returns the request parameters of the builder.
func (b *Builder[T]) Params() Params {
	return b.params
}

// Select sets the base column list. "*" or no columns selects everything.
func (b *Builder[T]) Select(columns ...string) *Builder[T] {
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "*") {
		b.columns = nil
		return b
	}
	b.columns = columns
	return b
}

// Where adds a fixed equality constraint.
func (b *Builder[T]) Where(column string, value interface{}) *Builder[T] {
	b.scopes = append(b.scopes, func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	})
	return b
}

// AllowedFields restricts fields[...] to the given columns. Base columns may
// be written plain or table-qualified, relation columns as relation.column.
func (b *Builder[T]) AllowedFields(fields ...string) *Builder[T] {
	if b.err != nil {
		return b
	}

	allowed := toSet(fields)
	var unknown []string

	for _, key := range sortedKeys(b.params.Fields) {
		requested := b.params.Fields[key]
		base := key == "" || key == b.table

		for _, field := range requested {
			switch {
			case base && (allowed[field] || allowed[b.table+"."+field]):
			case !base && allowed[key+"."+field]:
			default:
				unknown = append(unknown, qualify(key, field))
			}
		}

		if len(requested) == 0 {
			continue
		}
		if base {
			b.columns = requested
		} else {
			b.relationFields[key] = requested
		}
	}

	if len(unknown) > 0 {
		b.err = invalid(KindField, unknown, fields)
	}
	return b
}

// AllowedFilters applies the requested filters that appear in the list.
func (b *Builder[T]) AllowedFilters(filters ...Filter) *Builder[T] {
	if b.err != nil {
		return b
	}

	byName := make(map[string]Filter, len(filters))
	names := make([]string, 0, len(filters))
	for _, f := range filters {
		byName[f.Name] = f
		names = append(names, f.Name)
	}

	var unknown []string
	for _, name := range sortedKeys(b.params.Filters) {
		f, ok := byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		raw := b.params.Filters[name]
		b.scopes = append(b.scopes, func(db *gorm.DB) *gorm.DB {
			return f.apply(db, raw)
		})
	}

	if len(unknown) > 0 {
		b.err = invalid(KindFilter, unknown, names)
	}
	return b
}

// AllowedSorts accepts requested sorts naming one of the columns.
func (b *Builder[T]) AllowedSorts(columns ...string) *Builder[T] {
	if b.err != nil {
		return b
	}

	allowed := map[string]bool{}
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		c = strings.TrimPrefix(c, "-")
		allowed[c] = true
		names = append(names, c)
	}

	var unknown []string
	for _, s := range b.params.Sorts {
		if !allowed[strings.TrimPrefix(s, "-")] {
			unknown = append(unknown, s)
		}
	}

	if len(unknown) > 0 {
		b.err = invalid(KindSort, unknown, names)
		return b
	}
	b.sorts = b.params.Sorts
	return b
}

// DefaultSort is used when the request asks for no sort.
func (b *Builder[T]) DefaultSort(sorts ...string) *Builder[T] {
	b.defaultSorts = sorts
	return b
}

// AllowedIncludes preloads the requested relations that appear in the list.
func (b *Builder[T]) AllowedIncludes(includes ...AllowedInclude) *Builder[T] {
	if b.err != nil {
		return b
	}

	expanded := expand(includes)
	byName := make(map[string]AllowedInclude, len(expanded))
	names := make([]string, 0, len(expanded))
	for _, inc := range expanded {
		byName[inc.Name] = inc
		names = append(names, inc.Name)
	}

	var unknown []string
	for _, name := range b.params.Includes {
		inc, ok := byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		b.includes = append(b.includes, inc)
	}

	if len(unknown) > 0 {
		b.err = invalid(KindInclude, unknown, names)
	}
	return b
}

// AllowedAppends accepts the requested computed attributes in the list.
func (b *Builder[T]) AllowedAppends(appends ...string) *Builder[T] {
	if b.err != nil {
		return b
	}

	allowed := toSet(appends)
	var unknown []string
	for _, name := range b.params.Appends {
		if !allowed[name] {
			unknown = append(unknown, name)
		}
	}

	if len(unknown) > 0 {
		b.err = invalid(KindAppend, unknown, appends)
		return b
	}
	b.appends = b.params.Appends
	return b
}

func (b *Builder[T]) query(ctx context.Context, selecting bool) *gorm.DB {
	tx := b.db.WithContext(ctx).Model(new(T))
	if selecting && len(b.columns) > 0 {
		tx = tx.Select(b.columns)
	}

	for _, scope := range b.scopes {
		tx = scope(tx)
	}

	for _, inc := range b.includes {
		if cols := b.relationFields[inc.Name]; len(cols) > 0 {
			tx = tx.Preload(inc.Relation, func(db *gorm.DB) *gorm.DB {
				return db.Select(cols)
			})
		} else {
			tx = tx.Preload(inc.Relation)
		}
	}

	sorts := b.sorts
	if len(sorts) == 0 {
		sorts = b.defaultSorts
	}
	for _, s := range sorts {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: strings.TrimPrefix(s, "-")},
			Desc:   strings.HasPrefix(s, "-"),
		})
	}

	return tx
}

// Get returns all matching records.
func (b *Builder[T]) Get(ctx context.Context) ([]T, error) {
	if b.err != nil {
		return nil, b.err
	}

	records := make([]T, 0)
	if err := b.query(ctx, true).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	return records, nil
}

// First returns the first matching record or ErrNotFound.
func (b *Builder[T]) First(ctx context.Context) (*T, error) {
	if b.err != nil {
		return nil, b.err
	}

	var record T
	if err := b.query(ctx, true).Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query record: %w", err)
	}
	return &record, nil
}

// Paginate returns the requested page of matching records.
func (b *Builder[T]) Paginate(ctx context.Context, perPage int) (*Page, error) {
	if b.err != nil {
		return nil, b.err
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	page := b.params.Page
	if page < 1 {
		page = 1
	}

	var total int64
	if err := b.query(ctx, false).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	records := make([]T, 0)
	if offset, ok := offsetOf(page, perPage, lastPageOf(total, perPage)); ok {
		if err := b.query(ctx, true).Limit(perPage).Offset(offset).Find(&records).Error; err != nil {
			return nil, fmt.Errorf("failed to query records: %w", err)
		}
	}

	return NewPage(records, len(records), total, perPage, page, b.params.URL), nil
}

// Present renders records with the requested appended attributes. It accepts
// T, *T, []T and *Page values holding []T; anything else is returned as is.
func (b *Builder[T]) Present(v interface{}) (interface{}, error) {
	if len(b.appends) == 0 {
		return v, nil
	}

	switch x := v.(type) {
	case *Page:
		data, err := b.Present(x.Data)
		if err != nil {
			return nil, err
		}
		out := *x
		out.Data = data
		return &out, nil
	case []T:
		out := make([]interface{}, len(x))
		for i := range x {
			rec, err := withAppends(&x[i], b.appends)
			if err != nil {
				return nil, err
			}
			out[i] = rec
		}
		return out, nil
	case *T:
		return withAppends(x, b.appends)
	case T:
		return withAppends(&x, b.appends)
	default:
		return v, nil
	}
}

func qualify(key, field string) string {
	if key == "" {
		return field
	}
	return key + "." + field
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
