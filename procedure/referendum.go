// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package procedure

import (
	"fmt"

	"github.com/danielhkuo/agora/roster"
)

// Referendum is the general vote. Every elector may vote once, for or against.
type Referendum struct {
	base
	ledger       ledger
	votesFor     uint64
	votesAgainst uint64
}

func (r *Referendum) Stage() Stage {
	return StageReferendum
}

func (r *Referendum) VotesFor() uint64 {
	return r.votesFor
}

func (r *Referendum) VotesAgainst() uint64 {
	return r.votesAgainst
}

func (r *Referendum) Voted() []roster.PersonID {
	return r.ledger.list()
}

func (r *Referendum) RegisterVoteFor(id roster.PersonID) error {
	if err := r.admit(id); err != nil {
		return err
	}
	r.votesFor++
	return nil
}

func (r *Referendum) RegisterVoteAgainst(id roster.PersonID) error {
	if err := r.admit(id); err != nil {
		return err
	}
	r.votesAgainst++
	return nil
}

// admit records id in the ledger if it may vote; the caller bumps the tally
func (r *Referendum) admit(id roster.PersonID) error {
	if err := r.live(StageReferendum); err != nil {
		return err
	}
	if !r.motion.IsElector(id) {
		return fmt.Errorf("%w: %s is not an elector", ErrVoteRejected, id)
	}
	if r.ledger.has(id) {
		return fmt.Errorf("%w: %s already voted", ErrVoteRejected, id)
	}

	r.ledger.record(id)
	return nil
}

// Outcome is what Decide would return now, without deciding
func (r *Referendum) Outcome() Outcome {
	if r.votesFor > r.votesAgainst {
		return Passed
	}
	return Rejected
}

// Decide closes the procedure if the motion passes, with strictly more votes
// for than against. A tie or deficit returns Rejected with ErrThresholdNotMet
// and leaves r open for more votes and another Decide.
func (r *Referendum) Decide() (Outcome, error) {
	if err := r.live(StageReferendum); err != nil {
		return Undecided, err
	}
	if r.Outcome() != Passed {
		return Rejected, fmt.Errorf("%w: %d for, %d against", ErrThresholdNotMet, r.votesFor, r.votesAgainst)
	}

	r.consumed = true
	return Passed, nil
}

func (r *Referendum) Status() Status {
	return Status{
		Stage:        StageReferendum,
		VotesFor:     r.votesFor,
		VotesAgainst: r.votesAgainst,
		Voters:       r.motion.Electors(),
		Voted:        r.Voted(),
	}
}
