package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const sqliteIDColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
const postgresIDColumn = "id BIGSERIAL PRIMARY KEY"

var tables = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		{{id}},
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS petitions (
		{{id}},
		public_id TEXT NOT NULL UNIQUE,
		submitter_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		department_id BIGINT NOT NULL DEFAULT 0,
		priority TEXT NOT NULL,
		sentiment DOUBLE PRECISION NOT NULL DEFAULT 0,
		urgency TEXT NOT NULL,
		status TEXT NOT NULL,
		resolution TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		resolved_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS petition_status (
		{{id}},
		petition_id BIGINT NOT NULL,
		status TEXT NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		{{id}},
		submitter_id TEXT NOT NULL,
		petition_id BIGINT NOT NULL DEFAULT 0,
		message TEXT NOT NULL,
		read_status BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL
	)`,
}

// Migrate creates the schema when missing.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	idColumn := sqliteIDColumn
	if driver == "postgres" {
		idColumn = postgresIDColumn
	}

	for _, table := range tables {
		stmt := strings.Replace(table, "{{id}}", idColumn, 1)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	return nil
}
