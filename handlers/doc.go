// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Agora API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - RosterHandler: Roster creation, lookup and sampling
  - MotionHandler: Motion creation, status, stage control and history
  - VotingHandler: Ballots for the prototype, petition and referendum stages

Rosters are loaded through a shared RosterStore. Motion and voting handlers
also share the docket holding live procedures:

	rosters := handlers.NewRosterStore(db)
	d := docket.New()
	motionHandler := handlers.NewMotionHandler(db, cfg, rosters, d)

# Motion Lifecycle

Motions progress through four stages: prototype → proposal → petition → referendum

	POST /motions              → CreateMotion (returns admin_key)
	POST /motions/{id}/advance → Advance (threshold or deadline must be met)
	POST /motions/{id}/decide  → Decide (referendum only, final once passed)

Admin operations require the X-Admin-Key header. A wrong or missing key is
401; an unmet gate is 409 and leaves the motion where it was.

# Voting

People are addressed by their position in the motion's roster:

	POST /motions/{id}/prototype/votes  → PrototypeVote (developers)
	POST /motions/{id}/petition/votes   → PetitionVote (sampled petitioners)
	POST /motions/{id}/referendum/votes → ReferendumVote (electors, side for/against)

A refused ballot (not eligible, already voted, wrong stage) is 409 and is not
counted.

# Persistence

Rosters, motions and every stage transition with its tally are written to
the database. Ballots live only in the docket, so a motion created before a
restart answers 410 Gone to votes and stage changes.
*/
package handlers
