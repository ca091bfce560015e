// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/agora/docket"
	"github.com/danielhkuo/agora/middleware"
	"github.com/danielhkuo/agora/models"
	"github.com/danielhkuo/agora/procedure"
	"github.com/danielhkuo/agora/roster"
)

var errMotionNotFound = errors.New("motion not found")

// procedureError answers a docket or procedure error. Refused votes and
// unmet gates are expected and answered without logging an error.
func procedureError(w http.ResponseWriter, motionID string, err error) {
	switch {
	case errors.Is(err, docket.ErrUnknownMotion):
		// Known to the database but not to this process, e.g. after a restart
		middleware.ErrorResponse(w, http.StatusGone, "Motion procedure is no longer available")
	case errors.Is(err, procedure.ErrVoteRejected),
		errors.Is(err, procedure.ErrThresholdNotMet),
		errors.Is(err, procedure.ErrDeadlineNotReached),
		errors.Is(err, procedure.ErrConsumed),
		errors.Is(err, docket.ErrWrongStage),
		errors.Is(err, docket.ErrDecided):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error("procedure operation failed", "error", err, "motion_id", motionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Procedure error")
	}
}

// queryMotion loads the stored record of a motion
func queryMotion(db *sql.DB, motionID string) (models.Motion, error) {
	var m models.Motion
	err := db.QueryRow(`
		SELECT id, roster_id, title, description, outcome, created_at
		FROM motion WHERE id = $1
	`, motionID).Scan(&m.ID, &m.RosterID, &m.Title, &m.Description, &m.Outcome, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Motion{}, errMotionNotFound
	}
	if err != nil {
		return models.Motion{}, fmt.Errorf("failed to query motion: %w", err)
	}

	rows, err := db.Query(`
		SELECT pos FROM motion_developer WHERE motion_id = $1 ORDER BY ord
	`, motionID)
	if err != nil {
		return models.Motion{}, fmt.Errorf("failed to query developers: %w", err)
	}
	defer rows.Close()

	m.DeveloperIDs = []uint64{}
	for rows.Next() {
		var pos int64
		if err := rows.Scan(&pos); err != nil {
			return models.Motion{}, fmt.Errorf("failed to scan developer: %w", err)
		}
		m.DeveloperIDs = append(m.DeveloperIDs, uint64(pos))
	}
	if err := rows.Err(); err != nil {
		return models.Motion{}, fmt.Errorf("failed to read developers: %w", err)
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FROM motion_elector WHERE motion_id = $1
	`, motionID).Scan(&m.ElectorCount)
	if err != nil {
		return models.Motion{}, fmt.Errorf("failed to count electors: %w", err)
	}

	return m, nil
}

// loadMotion writes the error response itself when the motion can't be loaded
func loadMotion(w http.ResponseWriter, db *sql.DB, motionID string) (models.Motion, bool) {
	if motionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "motion_id is required")
		return models.Motion{}, false
	}

	m, err := queryMotion(db, motionID)
	if errors.Is(err, errMotionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Motion not found")
		return models.Motion{}, false
	}
	if err != nil {
		slog.Error("failed to load motion", "error", err, "motion_id", motionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Motion{}, false
	}
	return m, true
}

// statusResponse fills only the tallies that apply to the current stage
func statusResponse(m models.Motion, rep docket.Report, now time.Time) models.MotionStatus {
	st := rep.Status
	resp := models.MotionStatus{
		Motion:      m,
		Stage:       st.Stage.String(),
		EligibleIDs: positions(st.Voters),
		VotedCount:  len(st.Voted),
		Outcome:     rep.Outcome.String(),
	}
	resp.Motion.Outcome = rep.Outcome.String()

	switch st.Stage {
	case procedure.StagePrototype, procedure.StagePetition:
		resp.Votes = ptr(st.Votes)
		resp.Required = ptr(st.Required)
	case procedure.StageProposal:
		resp.DebateEndsAt = ptr(st.Deadline)
		resp.DebateEndsHint = humanize.RelTime(st.Deadline, now, "ago", "from now")
	case procedure.StageReferendum:
		resp.VotesFor = ptr(st.VotesFor)
		resp.VotesAgainst = ptr(st.VotesAgainst)
	}

	return resp
}

func ptr[T any](v T) *T {
	return &v
}

// voterID resolves a wire position against the roster of motion m
func voterID(w http.ResponseWriter, rosters *RosterStore, m models.Motion, pos *uint64) (roster.PersonID, bool) {
	if pos == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "person_id is required")
		return roster.PersonID{}, false
	}

	rs, err := rosters.Get(m.RosterID)
	if err != nil {
		slog.Error("failed to load motion roster", "error", err, "motion_id", m.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return roster.PersonID{}, false
	}

	id, err := rs.IDAt(*pos)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return roster.PersonID{}, false
	}
	return id, true
}
