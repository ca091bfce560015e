// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/agora/testutil"
)

// TestConcurrentPrototypeVotes verifies that simultaneous votes, including
// repeats from the same developers, are each counted exactly once
func TestConcurrentPrototypeVotes(t *testing.T) {
	env := newTestEnv(t)

	numDevelopers := 20
	rosterID := testutil.CreateTestRoster(t, env.db, names(numDevelopers)...)
	motionID, _ := env.openMotion(t, rosterID, testutil.Positions(numDevelopers), nil)

	var accepted, conflicts atomic.Int32
	var wg sync.WaitGroup

	// Every developer votes twice at the same time
	for i := 0; i < numDevelopers*2; i++ {
		wg.Add(1)
		go func(person uint64) {
			defer wg.Done()

			w := env.vote(motionID, "prototype", person)
			switch w.Code {
			case http.StatusOK:
				accepted.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}(uint64(i % numDevelopers))
	}

	wg.Wait()

	if got := accepted.Load(); got != int32(numDevelopers) {
		t.Errorf("Expected %d accepted votes, got %d", numDevelopers, got)
	}
	if got := conflicts.Load(); got != int32(numDevelopers) {
		t.Errorf("Expected %d duplicate votes refused, got %d", numDevelopers, got)
	}

	st := env.status(t, motionID)
	if *st.Votes != uint64(numDevelopers) {
		t.Errorf("Expected %d votes, got %d", numDevelopers, *st.Votes)
	}
}

// TestConcurrentAdvance verifies that only one of several simultaneous
// advance requests moves the motion
func TestConcurrentAdvance(t *testing.T) {
	env := newTestEnv(t)

	rosterID := testutil.CreateTestRoster(t, env.db, names(3)...)
	motionID, adminKey := env.openMotion(t, rosterID, []uint64{0}, nil)
	testutil.AssertStatus(t, env.vote(motionID, "prototype", 0), http.StatusOK)

	numRequests := 10
	var advanced atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			secs := int64(3600)
			w := env.advance(motionID, adminKey, map[string]int64{"debate_seconds": secs})
			if w.Code == http.StatusOK {
				advanced.Add(1)
			}
		}()
	}

	wg.Wait()

	if got := advanced.Load(); got != 1 {
		t.Errorf("Expected exactly one advance, got %d", got)
	}

	var rows int
	env.db.QueryRow(`SELECT COUNT(*) FROM stage_transition WHERE motion_id = $1`, motionID).Scan(&rows)
	if rows != 1 {
		t.Errorf("Expected 1 recorded transition, got %d", rows)
	}
}
