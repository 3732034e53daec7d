package database

import (
	"context"
	"database/sql"
	"fmt"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'user',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		transport_type VARCHAR(32) NOT NULL,
		name VARCHAR(255) NULL,
		from_place VARCHAR(255) NOT NULL,
		to_place VARCHAR(255) NOT NULL,
		date VARCHAR(32) NOT NULL,
		passenger_name VARCHAR(255) NOT NULL,
		phone VARCHAR(64) NOT NULL,
		email VARCHAR(255) NOT NULL,
		seat_no VARCHAR(32) NOT NULL,
		fare DOUBLE NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'PendingVerification',
		payment_proof_url VARCHAR(512) NULL,
		qr_code_url VARCHAR(512) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_bookings_user_created (user_id, created_at),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		transport_type TEXT NOT NULL,
		name TEXT,
		from_place TEXT NOT NULL,
		to_place TEXT NOT NULL,
		date TEXT NOT NULL,
		passenger_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT NOT NULL,
		seat_no TEXT NOT NULL,
		fare REAL NOT NULL,
		status TEXT NOT NULL DEFAULT 'PendingVerification',
		payment_proof_url TEXT,
		qr_code_url TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users (id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_created ON bookings (user_id, created_at)`,
}

// Migrate creates the users and bookings tables when they do not exist.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case "mysql":
		stmts = mysqlSchema
	case "sqlite3":
		stmts = sqliteSchema
	default:
		return fmt.Errorf("no schema for driver %q", driver)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
