// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags, environment variables
and an optional env file.

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

# Configuration Sources

Precedence, highest first:

 1. CLI flags
 2. Environment variables
 3. The env file (-env, default .env), loaded with godotenv
 4. Defaults

# Settings

	Flag          Env Variable       Default  Description
	-p            PORT               3318     Server port
	-d            DATABASE_URL       -        Database connection string (required)
	-t            DATABASE_TYPE      sqlite   sqlite or postgres
	-debate       DEBATE_DURATION    24h      Default debate duration
	-ratio        PETITIONER_RATIO   0.25     Share of electors drawn into a petition
	-admin-salt   ADMIN_KEY_SALT     -        Secret for motion admin keys (required)

# Security Note

Prefer environment variables for secrets. CLI arguments may be visible in
process listings (ps aux).
*/
package cliparse
