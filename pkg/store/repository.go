package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repository writes records of type T.
type Repository[T any] struct {
	db *gorm.DB
}

// New creates a repository on db.
func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB returns the underlying connection.
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

// Create inserts record. Sortable records without an order value are placed
// after the last record of their scope.
func (r *Repository[T]) Create(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.placeLast(ctx, tx, record); err != nil {
			return err
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create record: %w", err)
		}
		return nil
	})
}

// Update saves the given struct fields of record, zero values included.
// Nothing is written when fields is empty.
func (r *Repository[T]) Update(ctx context.Context, record *T, fields []string) error {
	if len(fields) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Model(record).Select(fields).Updates(record).Error; err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	return nil
}

// Delete removes record.
func (r *Repository[T]) Delete(ctx context.Context, record *T) error {
	if err := r.db.WithContext(ctx).Delete(record).Error; err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
