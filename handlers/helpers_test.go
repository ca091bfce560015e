// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/agora/auth"
	"github.com/danielhkuo/agora/cliparse"
	"github.com/danielhkuo/agora/docket"
	"github.com/danielhkuo/agora/models"
	"github.com/danielhkuo/agora/testutil"
)

// testEnv wires every handler onto one mux the same way the router does
type testEnv struct {
	db      *sql.DB
	cfg     cliparse.Config
	docket  *docket.Docket
	rosters *RosterStore
	mux     *http.ServeMux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithConfig(t, testutil.GetTestConfig())
}

func newTestEnvWithConfig(t *testing.T, cfg cliparse.Config) *testEnv {
	t.Helper()

	env := &testEnv{
		db:     testutil.SetupTestDB(t),
		cfg:    cfg,
		docket: docket.New(),
	}
	env.rosters = NewRosterStore(env.db)

	rosterHandler := NewRosterHandler(env.db, cfg, env.rosters)
	motionHandler := NewMotionHandler(env.db, cfg, env.rosters, env.docket)
	votingHandler := NewVotingHandler(env.db, cfg, env.rosters, env.docket)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /rosters", rosterHandler.CreateRoster)
	mux.HandleFunc("GET /rosters/{id}", rosterHandler.GetRoster)
	mux.HandleFunc("GET /rosters/{id}/sample", rosterHandler.SampleRoster)
	mux.HandleFunc("POST /motions", motionHandler.CreateMotion)
	mux.HandleFunc("GET /motions/{id}", motionHandler.GetMotion)
	mux.HandleFunc("GET /motions/{id}/history", motionHandler.GetHistory)
	mux.HandleFunc("POST /motions/{id}/advance", motionHandler.Advance)
	mux.HandleFunc("POST /motions/{id}/decide", motionHandler.Decide)
	mux.HandleFunc("POST /motions/{id}/prototype/votes", votingHandler.PrototypeVote)
	mux.HandleFunc("POST /motions/{id}/petition/votes", votingHandler.PetitionVote)
	mux.HandleFunc("POST /motions/{id}/referendum/votes", votingHandler.ReferendumVote)
	env.mux = mux

	return env
}

func (env *testEnv) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
	return w
}

// openMotion creates a motion over rosterID and returns its ID and admin key
func (env *testEnv) openMotion(t *testing.T, rosterID string, developers, electors []uint64) (string, string) {
	t.Helper()

	w := env.do("POST", "/motions", models.CreateMotionRequest{
		RosterID:     rosterID,
		Title:        "Adopt the new charter",
		Description:  "Replaces the 1998 charter in full.",
		DeveloperIDs: developers,
		ElectorIDs:   electors,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create motion: %d %s", w.Code, w.Body.String())
	}

	var resp models.CreateMotionResponse
	testutil.AssertJSON(t, w, &resp)
	return resp.MotionID, resp.AdminKey
}

func (env *testEnv) status(t *testing.T, motionID string) models.MotionStatus {
	t.Helper()

	w := env.do("GET", "/motions/"+motionID, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to get motion: %d %s", w.Code, w.Body.String())
	}

	var st models.MotionStatus
	testutil.AssertJSON(t, w, &st)
	return st
}

func (env *testEnv) vote(motionID, stage string, person uint64) *httptest.ResponseRecorder {
	return env.do("POST", fmt.Sprintf("/motions/%s/%s/votes", motionID, stage), models.VoteRequest{PersonID: &person}, nil)
}

func (env *testEnv) referendumVote(motionID string, person uint64, side string) *httptest.ResponseRecorder {
	return env.do("POST", "/motions/"+motionID+"/referendum/votes",
		models.ReferendumVoteRequest{PersonID: &person, Side: side}, nil)
}

func (env *testEnv) advance(motionID, adminKey string, body interface{}) *httptest.ResponseRecorder {
	return env.do("POST", "/motions/"+motionID+"/advance", body, map[string]string{auth.AdminKeyHeader: adminKey})
}

func (env *testEnv) decide(motionID, adminKey string) *httptest.ResponseRecorder {
	return env.do("POST", "/motions/"+motionID+"/decide", nil, map[string]string{auth.AdminKeyHeader: adminKey})
}

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Citizen %d", i)
	}
	return out
}
