// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema is written to run unchanged on both PostgreSQL and SQLite.
// Timestamps are always supplied by the application.
const schema = `
-- Rosters
CREATE TABLE IF NOT EXISTS roster (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL
);

-- People, addressed by position within their roster
CREATE TABLE IF NOT EXISTS person (
    roster_id TEXT NOT NULL REFERENCES roster(id) ON DELETE CASCADE,
    pos BIGINT NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (roster_id, pos)
);

-- Motions
CREATE TABLE IF NOT EXISTS motion (
    id TEXT PRIMARY KEY,
    roster_id TEXT NOT NULL REFERENCES roster(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT,
    outcome TEXT NOT NULL DEFAULT 'undecided' CHECK (outcome IN ('undecided', 'passed', 'rejected')),
    created_at TIMESTAMP NOT NULL,
    decided_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_motion_roster_id ON motion(roster_id);

-- Developers and electors, in motion order
CREATE TABLE IF NOT EXISTS motion_developer (
    motion_id TEXT NOT NULL REFERENCES motion(id) ON DELETE CASCADE,
    ord INTEGER NOT NULL,
    pos BIGINT NOT NULL,
    PRIMARY KEY (motion_id, ord)
);

CREATE TABLE IF NOT EXISTS motion_elector (
    motion_id TEXT NOT NULL REFERENCES motion(id) ON DELETE CASCADE,
    ord INTEGER NOT NULL,
    pos BIGINT NOT NULL,
    PRIMARY KEY (motion_id, ord)
);

-- Stage transitions. Each stage is left at most once, so (motion_id, step) is unique.
CREATE TABLE IF NOT EXISTS stage_transition (
    motion_id TEXT NOT NULL REFERENCES motion(id) ON DELETE CASCADE,
    step INTEGER NOT NULL,
    from_stage TEXT NOT NULL,
    to_stage TEXT NOT NULL,
    votes BIGINT NOT NULL DEFAULT 0,
    votes_for BIGINT NOT NULL DEFAULT 0,
    votes_against BIGINT NOT NULL DEFAULT 0,
    at TIMESTAMP NOT NULL,
    PRIMARY KEY (motion_id, step)
);
`
