// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema; do not hardcode CREATE TABLE statements in test
// files.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/labelhub/internal/db"
	"github.com/example/labelhub/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedUser inserts a test user and returns its ID.
func seedUser(t *testing.T, conn *sql.DB, id, role string) string {
	t.Helper()
	if id == "" {
		id = "user-001"
	}
	_, err := conn.Exec("INSERT INTO users (id, name, role) VALUES (?, ?, ?)", id, "Test User", role)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// seedProject inserts a test project owned by managerID and returns its ID.
func seedProject(t *testing.T, conn *sql.DB, id, managerID string) string {
	t.Helper()
	if id == "" {
		id = "proj-001"
	}
	_, err := conn.Exec(
		"INSERT INTO projects (id, name, category, manager_id) VALUES (?, ?, ?, ?)",
		id, "Test Project", "image_classification", managerID,
	)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return id
}

// newTaskRecord builds a minimal task record for repository tests.
func newTaskRecord(id, projectID string) *secondary.TaskRecord {
	return &secondary.TaskRecord{
		ID:        id,
		ProjectID: projectID,
		Category:  "image_classification",
		Data:      []byte(`{"image_url":"https://example.com/1.png","labels":["cat","dog"]}`),
		CreatedAt: time.Now().UTC(),
	}
}
