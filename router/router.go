// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/agora/cliparse"
	"github.com/danielhkuo/agora/docket"
	"github.com/danielhkuo/agora/handlers"
	"github.com/danielhkuo/agora/middleware"
)

// NewRouter registers every endpoint. Live procedures are held in d, which
// must outlive the returned mux.
func NewRouter(db *sql.DB, cfg cliparse.Config, d *docket.Docket) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	rosters := handlers.NewRosterStore(db)
	rosterHandler := handlers.NewRosterHandler(db, cfg, rosters)
	motionHandler := handlers.NewMotionHandler(db, cfg, rosters, d)
	votingHandler := handlers.NewVotingHandler(db, cfg, rosters, d)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Rosters
	mux.HandleFunc("POST /rosters", middleware.WithLogging(rosterHandler.CreateRoster))
	mux.HandleFunc("GET /rosters/{id}", middleware.WithLogging(rosterHandler.GetRoster))
	mux.HandleFunc("GET /rosters/{id}/sample", middleware.WithLogging(rosterHandler.SampleRoster))

	// Motions
	mux.HandleFunc("POST /motions", middleware.WithLogging(motionHandler.CreateMotion))
	mux.HandleFunc("GET /motions/{id}", middleware.WithLogging(motionHandler.GetMotion))
	mux.HandleFunc("GET /motions/{id}/history", middleware.WithLogging(motionHandler.GetHistory))

	// Stage control (admin, requires X-Admin-Key)
	mux.HandleFunc("POST /motions/{id}/advance", middleware.WithLogging(motionHandler.Advance))
	mux.HandleFunc("POST /motions/{id}/decide", middleware.WithLogging(motionHandler.Decide))

	// Voting
	mux.HandleFunc("POST /motions/{id}/prototype/votes", middleware.WithLogging(votingHandler.PrototypeVote))
	mux.HandleFunc("POST /motions/{id}/petition/votes", middleware.WithLogging(votingHandler.PetitionVote))
	mux.HandleFunc("POST /motions/{id}/referendum/votes", middleware.WithLogging(votingHandler.ReferendumVote))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("agora API v1"))
	})

	return mux
}
