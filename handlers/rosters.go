// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	"github.com/danielhkuo/agora/cliparse"
	"github.com/danielhkuo/agora/middleware"
	"github.com/danielhkuo/agora/models"
	"github.com/danielhkuo/agora/roster"
)

// MaxRosterSize bounds the names accepted in one request
const MaxRosterSize = 100000

var errRosterNotFound = errors.New("roster not found")

// RosterStore loads rosters from the database and caches them. Rosters never
// change after creation so cached entries never go stale.
type RosterStore struct {
	db    *sql.DB
	mu    deadlock.RWMutex
	cache map[uuid.UUID]*roster.Roster
}

func NewRosterStore(db *sql.DB) *RosterStore {
	return &RosterStore{db: db, cache: make(map[uuid.UUID]*roster.Roster)}
}

// Get returns the roster with the given ID, or errRosterNotFound
func (s *RosterStore) Get(rosterID string) (*roster.Roster, error) {
	id, err := uuid.Parse(rosterID)
	if err != nil {
		return nil, errRosterNotFound
	}

	s.mu.RLock()
	r, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return r, nil
	}

	var exists bool
	err = s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM roster WHERE id = $1)`, id.String()).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	if !exists {
		return nil, errRosterNotFound
	}

	rows, err := s.db.Query(`
		SELECT pos, name FROM person WHERE roster_id = $1 ORDER BY pos
	`, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []roster.Person
	for rows.Next() {
		var pos int64
		var name string
		if err := rows.Scan(&pos, &name); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		if pos != int64(len(people)) {
			return nil, fmt.Errorf("roster %s has a gap at position %d", id, len(people))
		}
		people = append(people, roster.Person{Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read people: %w", err)
	}

	r = roster.New(people, roster.WithID(id))

	s.mu.Lock()
	s.cache[id] = r
	s.mu.Unlock()

	return r, nil
}

// Put caches a roster that was just written
func (s *RosterStore) Put(r *roster.Roster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[r.ID()] = r
}

type RosterHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	rosters *RosterStore
}

func NewRosterHandler(db *sql.DB, cfg cliparse.Config, rosters *RosterStore) *RosterHandler {
	return &RosterHandler{db: db, cfg: cfg, rosters: rosters}
}

// CreateRoster handles POST /rosters
func (h *RosterHandler) CreateRoster(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRosterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Names) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "names cannot be empty")
		return
	}
	if len(req.Names) > MaxRosterSize {
		middleware.ErrorResponse(w, http.StatusBadRequest, "too many names")
		return
	}

	rs := roster.FromNames(req.Names)

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO roster (id, created_at) VALUES ($1, $2)
	`, rs.ID().String(), time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert roster", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create roster")
		return
	}

	for i, name := range req.Names {
		_, err = tx.Exec(`
			INSERT INTO person (roster_id, pos, name) VALUES ($1, $2, $3)
		`, rs.ID().String(), int64(i), name)
		if err != nil {
			slog.Error("failed to insert person", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create roster")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create roster")
		return
	}

	h.rosters.Put(rs)

	slog.Info("roster created", "roster_id", rs.ID(), "size", rs.Len())

	middleware.JSONResponse(w, http.StatusCreated, models.CreateRosterResponse{
		RosterID: rs.ID().String(),
		Size:     rs.Len(),
	})
}

// GetRoster handles GET /rosters/{id}
func (h *RosterHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	rs, ok := h.loadRoster(w, r.PathValue("id"))
	if !ok {
		return
	}

	resp := models.RosterResponse{
		RosterID: rs.ID().String(),
		People:   make([]models.RosterPerson, 0, rs.Len()),
	}
	for _, id := range rs.IDs() {
		p, _ := rs.Person(id)
		resp.People = append(resp.People, models.RosterPerson{PersonID: id.Position(), Name: p.Name})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// SampleRoster handles GET /rosters/{id}/sample?n=K
func (h *RosterHandler) SampleRoster(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.ParseUint(r.URL.Query().Get("n"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "n must be a non-negative integer")
		return
	}

	rs, ok := h.loadRoster(w, r.PathValue("id"))
	if !ok {
		return
	}

	ids, err := rs.Sample(n)
	if errors.Is(err, roster.ErrSampleSizeExceedsPopulation) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to sample roster", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sample roster")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SampleResponse{PersonIDs: positions(ids)})
}

func (h *RosterHandler) loadRoster(w http.ResponseWriter, rosterID string) (*roster.Roster, bool) {
	if rosterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "roster_id is required")
		return nil, false
	}

	rs, err := h.rosters.Get(rosterID)
	if errors.Is(err, errRosterNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Roster not found")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to load roster", "error", err, "roster_id", rosterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	return rs, true
}

// positions converts IDs to their wire form
func positions(ids []roster.PersonID) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = id.Position()
	}
	return out
}

// personIDs resolves wire positions against rs
func personIDs(rs *roster.Roster, positions []uint64) ([]roster.PersonID, error) {
	ids := make([]roster.PersonID, len(positions))
	for i, pos := range positions {
		id, err := rs.IDAt(pos)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
