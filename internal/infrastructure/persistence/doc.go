// Package persistence opens and migrates the gorm database used by the
// api-controller service. Supported dialects are SQLite, PostgreSQL and MySQL.
package persistence
