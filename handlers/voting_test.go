// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/agora/models"
	"github.com/danielhkuo/agora/testutil"
)

func TestPrototypeVote(t *testing.T) {
	env := newTestEnv(t)
	rosterID := testutil.CreateTestRoster(t, env.db, names(5)...)
	motionID, _ := env.openMotion(t, rosterID, []uint64{0, 1, 2}, nil)

	t.Run("developer votes", func(t *testing.T) {
		w := env.vote(motionID, "prototype", 1)
		testutil.AssertStatus(t, w, http.StatusOK)

		var st models.MotionStatus
		testutil.AssertJSON(t, w, &st)
		if st.Votes == nil || *st.Votes != 1 {
			t.Errorf("Expected 1 vote, got %v", st.Votes)
		}
		if st.VotedCount != 1 {
			t.Errorf("Expected voted_count 1, got %d", st.VotedCount)
		}
	})

	t.Run("second vote from the same developer", func(t *testing.T) {
		w := env.vote(motionID, "prototype", 1)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("non-developer", func(t *testing.T) {
		w := env.vote(motionID, "prototype", 4)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("person outside roster", func(t *testing.T) {
		w := env.vote(motionID, "prototype", 5)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("missing person_id", func(t *testing.T) {
		w := env.do("POST", "/motions/"+motionID+"/prototype/votes", map[string]string{}, nil)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown motion", func(t *testing.T) {
		w := env.vote("nope", "prototype", 0)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("wrong stage", func(t *testing.T) {
		w := env.vote(motionID, "petition", 0)
		testutil.AssertStatus(t, w, http.StatusConflict)

		w = env.referendumVote(motionID, 0, models.SideFor)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	if st := env.status(t, motionID); *st.Votes != 1 {
		t.Errorf("Rejected votes must not be counted, got %d", *st.Votes)
	}
}

func TestVoteOnMotionNotLive(t *testing.T) {
	env := newTestEnv(t)
	rosterID := testutil.CreateTestRoster(t, env.db, names(3)...)
	motionID, _ := env.openMotion(t, rosterID, []uint64{0}, nil)

	env.docket.Remove(motionID)

	w := env.vote(motionID, "prototype", 0)
	testutil.AssertStatus(t, w, http.StatusGone)
}

func TestReferendumVoteSide(t *testing.T) {
	env := newTestEnv(t)
	rosterID := testutil.CreateTestRoster(t, env.db, names(3)...)
	motionID, _ := env.openMotion(t, rosterID, []uint64{0}, nil)

	for _, side := range []string{"", "abstain", "FOR"} {
		w := env.referendumVote(motionID, 0, side)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}
}
