// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/agora/cliparse"
	"github.com/danielhkuo/agora/db"
)

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseURL:     ":memory:",
		DatabaseType:    db.TypeSQLite,
		AdminKeySalt:    "test-admin-salt",
		DebateDuration:  0,
		PetitionerRatio: cliparse.DefaultPetitionerRatio,
	}
}

// CreateTestRoster stores a roster of the given names and returns its ID.
// Person IDs are the indexes into names.
func CreateTestRoster(t *testing.T, conn *sql.DB, names ...string) string {
	t.Helper()

	rosterID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO roster (id, created_at) VALUES ($1, $2)
	`, rosterID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test roster: %v", err)
	}

	for i, name := range names {
		_, err := conn.Exec(`
			INSERT INTO person (roster_id, pos, name) VALUES ($1, $2, $3)
		`, rosterID, int64(i), name)
		if err != nil {
			t.Fatalf("Failed to create test person: %v", err)
		}
	}

	return rosterID
}

// Positions returns 0..n-1, the person IDs of a roster of size n
func Positions(n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = uint64(i)
	}
	return out
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
