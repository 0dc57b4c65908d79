package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// DefaultOrderColumn is the order column of Sortable models returning "".
const DefaultOrderColumn = "order_column"

// ErrNotSortable is returned when reordering a model that is not Sortable.
var ErrNotSortable = errors.New("model is not sortable")

// Sortable models keep a manual position in an integer column.
type Sortable interface {
	OrderColumn() string
}

// SortScoped models are ordered among the records selected by SortScope
// only, e.g. the posts of one author.
type SortScoped interface {
	SortScope(db *gorm.DB) *gorm.DB
}

type orderField struct {
	field *schema.Field
	value reflect.Value
}

func (r *Repository[T]) orderFieldOf(tx *gorm.DB, record *T) (*orderField, error) {
	sortable, ok := any(record).(Sortable)
	if !ok {
		return nil, ErrNotSortable
	}

	column := sortable.OrderColumn()
	if column == "" {
		column = DefaultOrderColumn
	}

	s, err := ParseModel(tx, record)
	if err != nil {
		return nil, err
	}

	field := s.LookUpField(column)
	if field == nil {
		return nil, fmt.Errorf("order column %q not found on %s", column, s.Name)
	}

	return &orderField{field: field, value: reflect.ValueOf(record).Elem()}, nil
}

func scoped(tx *gorm.DB, record interface{}) *gorm.DB {
	if s, ok := record.(SortScoped); ok {
		return s.SortScope(tx)
	}
	return tx
}

// placeLast assigns max(order)+1 to Sortable records created without a position.
func (r *Repository[T]) placeLast(ctx context.Context, tx *gorm.DB, record *T) error {
	of, err := r.orderFieldOf(tx, record)
	if errors.Is(err, ErrNotSortable) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, zero := of.field.ValueOf(ctx, of.value); !zero {
		return nil
	}

	var highest int64
	row := scoped(tx.Model(new(T)), record).
		Select("COALESCE(MAX(?), 0)", clause.Column{Name: of.field.DBName}).
		Row()
	if err := row.Scan(&highest); err != nil {
		return fmt.Errorf("failed to find highest order: %w", err)
	}

	if err := of.field.Set(ctx, of.value, highest+1); err != nil {
		return fmt.Errorf("failed to set order: %w", err)
	}
	return nil
}

// MoveOrderUp swaps the position of record with the closest record before it.
// It does nothing when record is already first.
func (r *Repository[T]) MoveOrderUp(ctx context.Context, record *T) error {
	return r.move(ctx, record, true)
}

// MoveOrderDown swaps the position of record with the closest record after it.
// It does nothing when record is already last.
func (r *Repository[T]) MoveOrderDown(ctx context.Context, record *T) error {
	return r.move(ctx, record, false)
}

func (r *Repository[T]) move(ctx context.Context, record *T, up bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		of, err := r.orderFieldOf(tx, record)
		if err != nil {
			return err
		}

		current, _ := of.field.ValueOf(ctx, of.value)
		column := clause.Column{Name: of.field.DBName}

		q := scoped(tx.Model(new(T)), record)
		if up {
			q = q.Where(clause.Lt{Column: column, Value: current}).
				Order(clause.OrderByColumn{Column: column, Desc: true})
		} else {
			q = q.Where(clause.Gt{Column: column, Value: current}).
				Order(clause.OrderByColumn{Column: column})
		}

		var neighbor T
		if err := q.Take(&neighbor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to find neighbour: %w", err)
		}

		other, _ := of.field.ValueOf(ctx, reflect.ValueOf(&neighbor).Elem())

		if err := tx.Model(record).Update(of.field.DBName, other).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		if err := tx.Model(&neighbor).Update(of.field.DBName, current).Error; err != nil {
			return fmt.Errorf("failed to update neighbour order: %w", err)
		}

		if err := of.field.Set(ctx, of.value, other); err != nil {
			return fmt.Errorf("failed to set order: %w", err)
		}
		return nil
	})
}
