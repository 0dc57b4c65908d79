// Package store persists resources through gorm: creation, partial updates,
// deletion and reordering of sortable models.
package store
