// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/agora/cliparse"
	"github.com/danielhkuo/agora/docket"
	"github.com/danielhkuo/agora/middleware"
	"github.com/danielhkuo/agora/models"
	"github.com/danielhkuo/agora/roster"
)

type VotingHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	rosters *RosterStore
	docket  *docket.Docket
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, rosters *RosterStore, d *docket.Docket) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, rosters: rosters, docket: d}
}

// PrototypeVote handles POST /motions/{id}/prototype/votes
func (h *VotingHandler) PrototypeVote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, "prototype vote", h.docket.VotePrototype)
}

// PetitionVote handles POST /motions/{id}/petition/votes
func (h *VotingHandler) PetitionVote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, "petition approval", h.docket.VotePetition)
}

// ReferendumVote handles POST /motions/{id}/referendum/votes
func (h *VotingHandler) ReferendumVote(w http.ResponseWriter, r *http.Request) {
	motionID := r.PathValue("id")

	var req models.ReferendumVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var cast func(string, roster.PersonID) (docket.Report, error)
	switch req.Side {
	case models.SideFor:
		cast = h.docket.VoteFor
	case models.SideAgainst:
		cast = h.docket.VoteAgainst
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "side must be 'for' or 'against'")
		return
	}

	h.cast(w, motionID, req.PersonID, "referendum vote "+req.Side, cast)
}

func (h *VotingHandler) vote(w http.ResponseWriter, r *http.Request, kind string, cast func(string, roster.PersonID) (docket.Report, error)) {
	motionID := r.PathValue("id")

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.cast(w, motionID, req.PersonID, kind, cast)
}

// cast resolves the voter and records the ballot, answering with the new status
func (h *VotingHandler) cast(w http.ResponseWriter, motionID string, pos *uint64, kind string, cast func(string, roster.PersonID) (docket.Report, error)) {
	m, ok := loadMotion(w, h.db, motionID)
	if !ok {
		return
	}

	id, ok := voterID(w, h.rosters, m, pos)
	if !ok {
		return
	}

	rep, err := cast(motionID, id)
	if err != nil {
		procedureError(w, motionID, err)
		return
	}

	slog.Info("ballot recorded",
		"motion_id", motionID,
		"kind", kind,
		"person_id", id.Position(),
	)

	middleware.JSONResponse(w, http.StatusOK, statusResponse(m, rep, time.Now()))
}
