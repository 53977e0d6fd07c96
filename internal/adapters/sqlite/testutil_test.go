// Package sqlite_test contains integration tests for SQLite repositories.
//
// setupTestDB is the single place the schema is loaded for tests. All test
// setup goes through db.GetSchemaSQL() so tests run against the
// authoritative schema; do not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dcaulton/smartcal1/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedObservation inserts a weather log row with an explicit timestamp.
func seedObservation(t *testing.T, db *sql.DB, at time.Time, temp float64) {
	t.Helper()
	_, err := db.Exec("INSERT INTO weather_logs (timestamp, temp) VALUES (?, ?)", at.UTC(), temp)
	if err != nil {
		t.Fatalf("failed to seed observation: %v", err)
	}
}

// seedTask inserts a task with an explicit creation time and returns its id.
func seedTask(t *testing.T, db *sql.DB, description, status string, createdAt time.Time) int64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO tasks (description, status, created_at) VALUES (?, ?, ?)",
		description, status, createdAt.UTC(),
	)
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read seeded task id: %v", err)
	}
	return id
}
