package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

func Connect(host, port, user, password, dbname string) (*sql.DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	return db, nil
}

// CreateTables creates the schema if it does not exist yet.
func CreateTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS application_runs (
			id UUID PRIMARY KEY,
			user_id INTEGER REFERENCES users(id),
			url TEXT NOT NULL,
			final_url TEXT,
			success BOOLEAN NOT NULL DEFAULT FALSE,
			service_used VARCHAR(64),
			fields_analyzed INTEGER DEFAULT 0,
			fields_filled INTEGER DEFAULT 0,
			fields_failed INTEGER DEFAULT 0,
			errors JSONB DEFAULT '[]',
			steps JSONB DEFAULT '[]',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_application_runs_user
			ON application_runs(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("error creating tables: %v", err)
		}
	}
	return nil
}
