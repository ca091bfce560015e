// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package procedure

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/danielhkuo/agora/motion"
	"github.com/danielhkuo/agora/roster"
)

var (
	ErrVoteRejected       = errors.New("not eligible or duplicate vote")
	ErrThresholdNotMet    = errors.New("majority threshold not met")
	ErrDeadlineNotReached = errors.New("debate deadline not reached")
	ErrConsumed           = errors.New("procedure has already left this stage")
	ErrInvalidRatio       = errors.New("petitioner ratio must be in (0, 1]")
)

// DefaultPetitionerRatio is the share of the electorate drawn into a petition
const DefaultPetitionerRatio = 0.25

// Stage identifies where a motion is in the procedure
type Stage int

const (
	StagePrototype Stage = iota
	StageProposal
	StagePetition
	StageReferendum
)

func (s Stage) String() string {
	switch s {
	case StagePrototype:
		return "prototype"
	case StageProposal:
		return "proposal"
	case StagePetition:
		return "petition"
	case StageReferendum:
		return "referendum"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ParseStage is the inverse of Stage.String
func ParseStage(s string) (Stage, error) {
	for st := StagePrototype; st <= StageReferendum; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", s)
}

// Outcome is the result of a referendum
type Outcome int

const (
	Undecided Outcome = iota
	Passed
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Rejected:
		return "rejected"
	}
	return "undecided"
}

// Procedure is the read-only view shared by every stage
type Procedure interface {
	Stage() Stage
	Motion() motion.Motion
	Status() Status
}

// Status is a snapshot of a stage's tallies and eligible voters. Fields that
// do not apply to the stage are left zero.
type Status struct {
	Stage Stage
	// Votes counts proposal votes in Prototype and approvals in Petition.
	Votes        uint64
	Required     uint64
	VotesFor     uint64
	VotesAgainst uint64
	// Voters is the set eligible in this stage.
	Voters   []roster.PersonID
	Voted    []roster.PersonID
	Deadline time.Time
}

type Option func(*settings) error

type settings struct {
	ratio float64
	now   func() time.Time
	rng   *rand.Rand
}

func defaultSettings() settings {
	return settings{
		ratio: DefaultPetitionerRatio,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithPetitionerRatio sets the share of electors drawn into the petition
func WithPetitionerRatio(ratio float64) Option {
	return func(s *settings) error {
		if !(ratio > 0 && ratio <= 1) {
			return fmt.Errorf("%w: got %v", ErrInvalidRatio, ratio)
		}
		s.ratio = ratio
		return nil
	}
}

// WithClock replaces the time source used for the debate deadline
func WithClock(now func() time.Time) Option {
	return func(s *settings) error {
		s.now = now
		return nil
	}
}

// WithRand sets the random source used to draw the petition group
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) error {
		s.rng = rng
		return nil
	}
}

// base is carried from stage to stage. Once a stage hands it to the next one
// the old stage is marked consumed and refuses all further calls.
type base struct {
	motion   motion.Motion
	cfg      settings
	consumed bool
}

func (b *base) Motion() motion.Motion {
	return b.motion
}

func (b *base) live(stage Stage) error {
	if b.consumed {
		return fmt.Errorf("%w: %s", ErrConsumed, stage)
	}
	return nil
}

// handOff consumes b and returns the state the next stage is built on
func (b *base) handOff() base {
	next := *b
	b.consumed = true
	return next
}

// ledger records who voted in a stage, at most once each
type ledger struct {
	voted []roster.PersonID
	seen  map[roster.PersonID]struct{}
}

func newLedger() ledger {
	return ledger{seen: make(map[roster.PersonID]struct{})}
}

func (l *ledger) has(id roster.PersonID) bool {
	_, ok := l.seen[id]
	return ok
}

func (l *ledger) record(id roster.PersonID) {
	l.seen[id] = struct{}{}
	l.voted = append(l.voted, id)
}

func (l *ledger) count() uint64 {
	return uint64(len(l.voted))
}

func (l *ledger) list() []roster.PersonID {
	return slices.Clone(l.voted)
}

// majorityOf is the smallest count strictly above half of n
func majorityOf(n int) uint64 {
	return uint64(n)/2 + 1
}
