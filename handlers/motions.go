// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/danielhkuo/agora/auth"
	"github.com/danielhkuo/agora/cliparse"
	"github.com/danielhkuo/agora/docket"
	"github.com/danielhkuo/agora/middleware"
	"github.com/danielhkuo/agora/models"
	"github.com/danielhkuo/agora/motion"
	"github.com/danielhkuo/agora/procedure"
	"github.com/danielhkuo/agora/roster"
)

// MaxDebateSeconds is the longest debate a request may ask for. Anything
// longer does not fit in a time.Duration.
const MaxDebateSeconds = int64(math.MaxInt64 / time.Second)

type MotionHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	rosters *RosterStore
	docket  *docket.Docket
}

func NewMotionHandler(db *sql.DB, cfg cliparse.Config, rosters *RosterStore, d *docket.Docket) *MotionHandler {
	return &MotionHandler{db: db, cfg: cfg, rosters: rosters, docket: d}
}

// CreateMotion handles POST /motions
func (h *MotionHandler) CreateMotion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMotionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.RosterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "roster_id is required")
		return
	}

	rs, err := h.rosters.Get(req.RosterID)
	if errors.Is(err, errRosterNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Roster not found")
		return
	}
	if err != nil {
		slog.Error("failed to load roster", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	developers, err := personIDs(rs, req.DeveloperIDs)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "developer_ids: "+err.Error())
		return
	}

	// Electors default to the whole roster
	var electors []roster.PersonID
	if req.ElectorIDs == nil {
		electors = rs.IDs()
	} else {
		electors, err = personIDs(rs, req.ElectorIDs)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "elector_ids: "+err.Error())
			return
		}
	}

	m := motion.New(req.Title, req.Description, developers, electors)

	motionID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate motion ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create motion")
		return
	}

	if err := h.insertMotion(motionID, rs, m); err != nil {
		slog.Error("failed to insert motion", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create motion")
		return
	}

	if _, err := h.docket.Open(motionID, m, procedure.WithPetitionerRatio(h.cfg.PetitionerRatio)); err != nil {
		slog.Error("failed to open procedure", "error", err, "motion_id", motionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create motion")
		return
	}

	slog.Info("motion opened",
		"motion_id", motionID,
		"developers", m.DevCount(),
		"electors", m.ElectorCount(),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateMotionResponse{
		MotionID: motionID,
		AdminKey: auth.GenerateAdminKey(motionID, h.cfg.AdminKeySalt),
	})
}

func (h *MotionHandler) insertMotion(motionID string, rs *roster.Roster, m motion.Motion) error {
	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO motion (id, roster_id, title, description, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, motionID, rs.ID().String(), m.Title(), m.Description(), models.OutcomeUndecided, time.Now().UTC())
	if err != nil {
		return err
	}

	for i, id := range m.Developers() {
		_, err = tx.Exec(`
			INSERT INTO motion_developer (motion_id, ord, pos) VALUES ($1, $2, $3)
		`, motionID, i, int64(id.Position()))
		if err != nil {
			return err
		}
	}

	for i, id := range m.Electors() {
		_, err = tx.Exec(`
			INSERT INTO motion_elector (motion_id, ord, pos) VALUES ($1, $2, $3)
		`, motionID, i, int64(id.Position()))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetMotion handles GET /motions/{id}
func (h *MotionHandler) GetMotion(w http.ResponseWriter, r *http.Request) {
	motionID := r.PathValue("id")
	m, ok := loadMotion(w, h.db, motionID)
	if !ok {
		return
	}

	rep, err := h.docket.Status(motionID)
	if errors.Is(err, docket.ErrUnknownMotion) {
		// Stored but not live: only the record and its final outcome are known
		middleware.JSONResponse(w, http.StatusOK, models.MotionStatus{
			Motion:  m,
			Stage:   "unavailable",
			Outcome: m.Outcome,
		})
		return
	}
	if err != nil {
		procedureError(w, motionID, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, statusResponse(m, rep, time.Now()))
}

// Advance handles POST /motions/{id}/advance
func (h *MotionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	motionID := r.PathValue("id")
	if motionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "motion_id is required")
		return
	}

	if err := auth.RequireAdmin(r, motionID, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	// Body is optional
	var req models.AdvanceRequest
	if r.ContentLength != 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	debate := h.cfg.DebateDuration
	if req.DebateSeconds != nil {
		if *req.DebateSeconds < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "debate_seconds cannot be negative")
			return
		}
		if *req.DebateSeconds > MaxDebateSeconds {
			middleware.ErrorResponse(w, http.StatusBadRequest, "debate_seconds is too large")
			return
		}
		debate = time.Duration(*req.DebateSeconds) * time.Second
	}

	if _, ok := loadMotion(w, h.db, motionID); !ok {
		return
	}

	tr, err := h.docket.Advance(motionID, debate)
	if err != nil {
		procedureError(w, motionID, err)
		return
	}

	// The transition already happened in memory; a lost audit row is not fatal
	_, err = h.db.Exec(`
		INSERT INTO stage_transition (motion_id, step, from_stage, to_stage, votes, votes_for, votes_against, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, motionID, int(tr.From), tr.From.String(), tr.To.String(),
		int64(tr.Tally.Votes), int64(tr.Tally.VotesFor), int64(tr.Tally.VotesAgainst), tr.At)
	if err != nil {
		slog.Warn("failed to record stage transition", "error", err, "motion_id", motionID)
	}

	slog.Info("stage advanced", "motion_id", motionID, "from", tr.From, "to", tr.To)

	middleware.JSONResponse(w, http.StatusOK, models.AdvanceResponse{
		From: tr.From.String(),
		To:   tr.To.String(),
		At:   tr.At,
	})
}

// Decide handles POST /motions/{id}/decide
func (h *MotionHandler) Decide(w http.ResponseWriter, r *http.Request) {
	motionID := r.PathValue("id")
	if motionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "motion_id is required")
		return
	}

	if err := auth.RequireAdmin(r, motionID, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	if _, ok := loadMotion(w, h.db, motionID); !ok {
		return
	}

	// The outcome is stored before the docket closes the referendum, so a
	// failed write leaves the motion open for another attempt
	var storeErr error
	rep, err := h.docket.Decide(motionID, func(rep docket.Report) error {
		storeErr = h.recordOutcome(motionID, rep)
		return storeErr
	})
	if storeErr != nil {
		slog.Error("failed to record outcome", "error", storeErr, "motion_id", motionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record outcome")
		return
	}
	if err != nil {
		procedureError(w, motionID, err)
		return
	}

	outcome := rep.Outcome.String()

	slog.Info("motion decided",
		"motion_id", motionID,
		"outcome", outcome,
		"votes_for", rep.Status.VotesFor,
		"votes_against", rep.Status.VotesAgainst,
	)

	middleware.JSONResponse(w, http.StatusOK, models.DecideResponse{
		Outcome:      outcome,
		VotesFor:     rep.Status.VotesFor,
		VotesAgainst: rep.Status.VotesAgainst,
	})
}

// recordOutcome writes the final outcome and the closing transition in one transaction
func (h *MotionHandler) recordOutcome(motionID string, rep docket.Report) error {
	outcome := rep.Outcome.String()
	decidedAt := time.Now().UTC()

	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE motion SET outcome = $1, decided_at = $2 WHERE id = $3
	`, outcome, decidedAt, motionID)
	if err != nil {
		return fmt.Errorf("failed to update motion: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO stage_transition (motion_id, step, from_stage, to_stage, votes, votes_for, votes_against, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, motionID, int(procedure.StageReferendum), procedure.StageReferendum.String(), outcome,
		int64(len(rep.Status.Voted)), int64(rep.Status.VotesFor), int64(rep.Status.VotesAgainst), decidedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transition: %w", err)
	}

	return tx.Commit()
}

// GetHistory handles GET /motions/{id}/history
func (h *MotionHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	motionID := r.PathValue("id")
	m, ok := loadMotion(w, h.db, motionID)
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT from_stage, to_stage, votes, votes_for, votes_against, at
		FROM stage_transition WHERE motion_id = $1 ORDER BY step
	`, motionID)
	if err != nil {
		slog.Error("failed to query transitions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	resp := models.HistoryResponse{
		MotionID:    motionID,
		Transitions: []models.Transition{},
		Outcome:     m.Outcome,
	}
	for rows.Next() {
		var t models.Transition
		var votes, votesFor, votesAgainst int64
		if err := rows.Scan(&t.FromStage, &t.ToStage, &votes, &votesFor, &votesAgainst, &t.At); err != nil {
			slog.Error("failed to scan transition", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		t.Votes, t.VotesFor, t.VotesAgainst = uint64(votes), uint64(votesFor), uint64(votesAgainst)
		resp.Transitions = append(resp.Transitions, t)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read transitions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
