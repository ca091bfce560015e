// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docket

import (
	"errors"
	"fmt"
	"time"

	"github.com/sasha-s/go-deadlock"

	"github.com/danielhkuo/agora/motion"
	"github.com/danielhkuo/agora/procedure"
	"github.com/danielhkuo/agora/roster"
)

var (
	ErrUnknownMotion   = errors.New("unknown motion")
	ErrDuplicateMotion = errors.New("motion already on the docket")
	ErrWrongStage      = errors.New("operation not allowed in current stage")
	ErrDecided         = errors.New("motion already decided")
)

// Report is what the docket knows about one motion
type Report struct {
	MotionID string
	Motion   motion.Motion
	Status   procedure.Status
	Outcome  procedure.Outcome
}

// Transition describes a successful Advance. Tally is the status of the stage
// that was left, taken just before it was consumed.
type Transition struct {
	MotionID string
	From     procedure.Stage
	To       procedure.Stage
	Tally    procedure.Status
	At       time.Time
}

type entry struct {
	mu      deadlock.Mutex
	current procedure.Procedure
	outcome procedure.Outcome
}

// Docket holds the live procedures of a server. Each motion has its own lock,
// so votes on different motions never wait on each other while calls on the
// same motion run one at a time.
type Docket struct {
	mu      deadlock.RWMutex
	entries map[string]*entry
	now     func() time.Time
}

func New() *Docket {
	return &Docket{
		entries: make(map[string]*entry),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Open begins the procedure for m under motionID
func (d *Docket) Open(motionID string, m motion.Motion, opts ...procedure.Option) (Report, error) {
	proto, err := procedure.Begin(m, opts...)
	if err != nil {
		return Report{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.entries[motionID]; ok {
		return Report{}, fmt.Errorf("%w: %s", ErrDuplicateMotion, motionID)
	}
	e := &entry{current: proto}
	d.entries[motionID] = e

	return e.report(motionID), nil
}

func (d *Docket) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Remove drops a motion from the docket. Removing an unknown motion is a no-op.
func (d *Docket) Remove(motionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, motionID)
}

func (d *Docket) Status(motionID string) (Report, error) {
	var r Report
	err := d.with(motionID, func(e *entry) error {
		r = e.report(motionID)
		return nil
	})
	return r, err
}

// VotePrototype registers a developer's vote to propose
func (d *Docket) VotePrototype(motionID string, id roster.PersonID) (Report, error) {
	return d.mutate(motionID, func(e *entry) error {
		p, ok := e.current.(*procedure.Prototype)
		if !ok {
			return wrongStage(e, procedure.StagePrototype)
		}
		return p.RegisterVote(id)
	})
}

// VotePetition registers an approval from a member of the petition group
func (d *Docket) VotePetition(motionID string, id roster.PersonID) (Report, error) {
	return d.mutate(motionID, func(e *entry) error {
		p, ok := e.current.(*procedure.Petition)
		if !ok {
			return wrongStage(e, procedure.StagePetition)
		}
		return p.RegisterApproval(id)
	})
}

func (d *Docket) VoteFor(motionID string, id roster.PersonID) (Report, error) {
	return d.mutate(motionID, func(e *entry) error {
		r, ok := e.current.(*procedure.Referendum)
		if !ok {
			return wrongStage(e, procedure.StageReferendum)
		}
		return r.RegisterVoteFor(id)
	})
}

func (d *Docket) VoteAgainst(motionID string, id roster.PersonID) (Report, error) {
	return d.mutate(motionID, func(e *entry) error {
		r, ok := e.current.(*procedure.Referendum)
		if !ok {
			return wrongStage(e, procedure.StageReferendum)
		}
		return r.RegisterVoteAgainst(id)
	})
}

// Advance tries to move the motion out of its current stage. debate is only
// used when leaving Prototype. A referendum cannot advance; use Decide.
func (d *Docket) Advance(motionID string, debate time.Duration) (Transition, error) {
	var t Transition
	err := d.with(motionID, func(e *entry) error {
		if e.outcome != procedure.Undecided {
			return fmt.Errorf("%w: %s", ErrDecided, e.outcome)
		}

		t = Transition{
			MotionID: motionID,
			From:     e.current.Stage(),
			Tally:    e.current.Status(),
		}

		var next procedure.Procedure
		switch p := e.current.(type) {
		case *procedure.Prototype:
			n, err := p.Advance(debate)
			if err != nil {
				return err
			}
			next = n
		case *procedure.Proposal:
			n, err := p.Advance()
			if err != nil {
				return err
			}
			next = n
		case *procedure.Petition:
			n, err := p.Advance()
			if err != nil {
				return err
			}
			next = n
		default:
			return fmt.Errorf("%w: %s is the last stage, decide it instead", ErrWrongStage, e.current.Stage())
		}

		e.current = next
		t.To = next.Stage()
		t.At = d.now()
		return nil
	})
	if err != nil {
		return Transition{}, err
	}
	return t, nil
}

// Decide closes the referendum if the motion passes. A tie or deficit returns
// ErrThresholdNotMet and the referendum keeps taking votes.
//
// commit, if not nil, runs under the motion's lock with the passing report
// before anything changes. If it fails the referendum stays open and Decide
// may be retried.
func (d *Docket) Decide(motionID string, commit func(Report) error) (Report, error) {
	return d.mutate(motionID, func(e *entry) error {
		r, ok := e.current.(*procedure.Referendum)
		if !ok {
			return wrongStage(e, procedure.StageReferendum)
		}
		if r.Outcome() != procedure.Passed {
			_, err := r.Decide()
			return err
		}

		if commit != nil {
			rep := e.report(motionID)
			rep.Outcome = procedure.Passed
			if err := commit(rep); err != nil {
				return err
			}
		}

		outcome, err := r.Decide()
		if err != nil {
			return err
		}
		e.outcome = outcome
		return nil
	})
}

// with runs fn holding the motion's lock
func (d *Docket) with(motionID string, fn func(e *entry) error) error {
	d.mu.RLock()
	e, ok := d.entries[motionID]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMotion, motionID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e)
}

// mutate is with, restricted to undecided motions, returning the report after fn
func (d *Docket) mutate(motionID string, fn func(e *entry) error) (Report, error) {
	var r Report
	err := d.with(motionID, func(e *entry) error {
		if e.outcome != procedure.Undecided {
			return fmt.Errorf("%w: %s", ErrDecided, e.outcome)
		}
		if err := fn(e); err != nil {
			return err
		}
		r = e.report(motionID)
		return nil
	})
	return r, err
}

func (e *entry) report(motionID string) Report {
	return Report{
		MotionID: motionID,
		Motion:   e.current.Motion(),
		Status:   e.current.Status(),
		Outcome:  e.outcome,
	}
}

func wrongStage(e *entry, want procedure.Stage) error {
	return fmt.Errorf("%w: motion is in %s, not %s", ErrWrongStage, e.current.Stage(), want)
}
