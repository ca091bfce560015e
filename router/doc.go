// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Agora API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, docket.New())

# Endpoints

Health:

	GET /health

Rosters:

	POST /rosters               - Create roster from names
	GET  /rosters/{id}          - List people with their IDs
	GET  /rosters/{id}/sample   - Random sample without replacement (?n=K)

Motions:

	POST /motions               - Create motion, opens its prototype stage
	GET  /motions/{id}          - Current stage and tallies
	GET  /motions/{id}/history  - Recorded stage transitions

Stage control (admin, requires X-Admin-Key):

	POST /motions/{id}/advance  - Move to the next stage
	POST /motions/{id}/decide   - Close the referendum

Voting:

	POST /motions/{id}/prototype/votes  - Developer proposal vote
	POST /motions/{id}/petition/votes   - Petitioner approval
	POST /motions/{id}/referendum/votes - Elector vote for or against

# Handler Initialization

The router creates handler instances with dependency injection:

	rosters := handlers.NewRosterStore(db)
	rosterHandler := handlers.NewRosterHandler(db, cfg, rosters)
	motionHandler := handlers.NewMotionHandler(db, cfg, rosters, d)
	votingHandler := handlers.NewVotingHandler(db, cfg, rosters, d)

All handlers receive the database connection and configuration. The motion
and voting handlers share the docket of live procedures.
*/
package router
