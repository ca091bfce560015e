// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Agora API server.

Agora runs motions through a four-stage legislative procedure: developers
draft a motion (prototype), it is debated publicly until a deadline
(proposal), a random sample of electors petitions for it (petition), and
finally every elector votes on it (referendum).

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ADMIN_KEY_SALT=... DATABASE_URL=file:agora.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

Variables may also come from an env file (-env, default .env). Variables
already set in the environment win.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DEBATE_DURATION (-debate): Default debate length (default: 24h)
  - PETITIONER_RATIO (-ratio): Share of electors sampled for a petition (default: 0.25)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - roster, motion, procedure: The voting domain, free of I/O
  - docket: Concurrency-safe registry of live procedures
  - handlers: HTTP request handlers (rosters, motions, voting)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: ID and admin key generation and validation
  - db: Connection and schema creation
  - cliparse: Configuration parsing

Rosters, motions and stage transitions are stored. Ballots are not: live
procedures are lost on restart and their motions then answer 410 Gone.
*/
package main
