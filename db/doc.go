// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

Open picks the driver from the configured database type:

	conn, err := db.Open("sqlite", "file:agora.db")      // modernc.org/sqlite
	conn, err := db.Open("postgres", "postgres://...")   // github.com/lib/pq

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - roster: Roster identity
  - person: People by (roster_id, pos)
  - motion: Motion text and final outcome
  - motion_developer: Developer positions in order
  - motion_elector: Elector positions in order
  - stage_transition: Audit log of stage changes with the tallies of the stage left

Ballots and live tallies are never stored. They exist only in the running
server's docket.

# Relationships

	roster 1──* person
	roster 1──* motion
	motion 1──* motion_developer
	motion 1──* motion_elector
	motion 1──* stage_transition

All foreign keys use ON DELETE CASCADE.
*/
package db
