// Package database handles metadata database connections, migrations and
// schema inspection.
//
// It wraps GORM and selects the dialector from configuration: postgres is the
// production default, mysql is kept for legacy deployments and sqlite serves
// local development and tests.
//
// # Connect
//
//	db, err := database.Connect(cfg.Database)
//
// # Migrations
//
// Postgres schemas are managed with golang-migrate from the SQL files embedded
// under migrations/. Migrate is idempotent; ErrNoChange is not an error.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for the integrity schema check,
// using PRAGMA table_info, information_schema or SHOW COLUMNS depending on the
// dialect.
package database
