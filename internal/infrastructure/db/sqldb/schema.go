package sqldb

import (
	"context"
	"database/sql"
	"fmt"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		username      TEXT    NOT NULL UNIQUE,
		email         TEXT    NOT NULL UNIQUE,
		password_hash TEXT    NOT NULL,
		role          TEXT    NOT NULL DEFAULT 'user',
		created_at    INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS testimonials (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT    NOT NULL,
		email      TEXT    NOT NULL,
		company    TEXT    NOT NULL DEFAULT '',
		position   TEXT    NOT NULL DEFAULT '',
		message    TEXT    NOT NULL,
		rating     INTEGER NOT NULL DEFAULT 5,
		status     TEXT    NOT NULL DEFAULT 'pending',
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_testimonials_status ON testimonials (status, created_at)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT    NOT NULL,
		email      TEXT    NOT NULL,
		subject    TEXT    NOT NULL,
		message    TEXT    NOT NULL,
		status     TEXT    NOT NULL DEFAULT 'unread',
		created_at INTEGER NOT NULL
	)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(64)  NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'user',
		created_at    BIGINT       NOT NULL,
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS testimonials (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		email      VARCHAR(255) NOT NULL,
		company    VARCHAR(255) NOT NULL DEFAULT '',
		position   VARCHAR(255) NOT NULL DEFAULT '',
		message    TEXT         NOT NULL,
		rating     TINYINT      NOT NULL DEFAULT 5,
		status     VARCHAR(16)  NOT NULL DEFAULT 'pending',
		created_at BIGINT       NOT NULL,
		KEY idx_testimonials_status (status, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		email      VARCHAR(255) NOT NULL,
		subject    VARCHAR(255) NOT NULL,
		message    TEXT         NOT NULL,
		status     VARCHAR(16)  NOT NULL DEFAULT 'unread',
		created_at BIGINT       NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the tables if they do not exist yet. It never alters or
// drops existing tables.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case DriverSQLite:
		stmts = sqliteSchema
	case DriverMySQL:
		stmts = mysqlSchema
	default:
		return fmt.Errorf("unsupported sql driver %q", driver)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
