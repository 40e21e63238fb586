package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: one demo
// project with an empty cover so the API has something to serve. It is
// a no-op when any project already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		return fmt.Errorf("seed check projects: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO projects (project_name, event_description, cover)
		VALUES ($1, $2, $3)
	`, "Demo Memory Book", "A demo project for local development",
		`{"title": "Demo Memory Book"}`)
	if err != nil {
		return fmt.Errorf("seed insert project: %w", err)
	}

	slog.Info("database seeded with demo project")
	return nil
}
