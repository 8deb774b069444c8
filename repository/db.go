// repository/db.go
package repository

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

var db *sql.DB

// InitDB initializes the database connection and bootstraps the schema
func InitDB() error {
	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "postgres")
	dbname := getEnvOrDefault("DB_NAME", "tripexpense")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}

	if err = db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	if err = ensureSchema(); err != nil {
		return fmt.Errorf("failed to ensure schema: %v", err)
	}

	log.Println("Successfully connected to the database")
	return nil
}

// CloseDB closes the database connection
func CloseDB() {
	if db != nil {
		db.Close()
	}
}

// GetDB returns the database instance
func GetDB() *sql.DB {
	return db
}

// ensureSchema creates the tables if they do not exist yet
func ensureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone_number TEXT NOT NULL DEFAULT '',
			avatar TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			is_email_verified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ,
			last_login_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS trips (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			currency TEXT NOT NULL DEFAULT 'PHP',
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ NOT NULL,
			created_by_user_id INTEGER NOT NULL REFERENCES users(id),
			invite_token TEXT NOT NULL DEFAULT '',
			invite_token_expiry TIMESTAMPTZ,
			is_invite_link_active BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS trip_members (
			id SERIAL PRIMARY KEY,
			trip_id INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			user_id INTEGER NOT NULL REFERENCES users(id),
			role TEXT NOT NULL DEFAULT 'Member',
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			UNIQUE (trip_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id SERIAL PRIMARY KEY,
			trip_id INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			description TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			paid_by_user_id INTEGER NOT NULL REFERENCES users(id),
			expense_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			category TEXT NOT NULL DEFAULT '',
			split_type TEXT NOT NULL DEFAULT 'Equal',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS expense_splits (
			id SERIAL PRIMARY KEY,
			expense_id INTEGER NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
			user_id INTEGER NOT NULL REFERENCES users(id),
			amount DOUBLE PRECISION NOT NULL,
			percentage DOUBLE PRECISION,
			is_paid BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS settlements (
			id SERIAL PRIMARY KEY,
			trip_id INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			from_user_id INTEGER NOT NULL REFERENCES users(id),
			to_user_id INTEGER NOT NULL REFERENCES users(id),
			amount DOUBLE PRECISION NOT NULL,
			settlement_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Helper function to get environment variable with default value
func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
