// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package procedure

import (
	"fmt"
	"time"

	"github.com/danielhkuo/agora/motion"
	"github.com/danielhkuo/agora/roster"
)

// Prototype is the drafting stage. Only the motion's developers vote, and an
// absolute majority of them moves the motion to public debate.
type Prototype struct {
	base
	ledger ledger
}

// Begin starts the procedure for m with an empty developer ledger
func Begin(m motion.Motion, opts ...Option) (*Prototype, error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Prototype{
		base:   base{motion: m, cfg: cfg},
		ledger: newLedger(),
	}, nil
}

func (p *Prototype) Stage() Stage {
	return StagePrototype
}

// Votes is the number of developers who voted to propose
func (p *Prototype) Votes() uint64 {
	return p.ledger.count()
}

func (p *Prototype) Voted() []roster.PersonID {
	return p.ledger.list()
}

// Required is the vote count needed to advance. With no developers it is 1,
// which can never be reached.
func (p *Prototype) Required() uint64 {
	return majorityOf(p.motion.DevCount())
}

// RegisterVote counts a proposal vote from a developer who has not yet voted
func (p *Prototype) RegisterVote(id roster.PersonID) error {
	if err := p.live(StagePrototype); err != nil {
		return err
	}
	if !p.motion.IsDeveloper(id) {
		return fmt.Errorf("%w: %s is not a developer", ErrVoteRejected, id)
	}
	if p.ledger.has(id) {
		return fmt.Errorf("%w: %s already voted to propose", ErrVoteRejected, id)
	}

	p.ledger.record(id)
	return nil
}

// Advance moves to debate once votes exceed half the developers. The deadline
// is fixed at now + debate. On error p is unchanged and may be retried.
func (p *Prototype) Advance(debate time.Duration) (*Proposal, error) {
	if err := p.live(StagePrototype); err != nil {
		return nil, err
	}
	if p.Votes() < p.Required() {
		return nil, fmt.Errorf("%w: %d of %d developer votes", ErrThresholdNotMet, p.Votes(), p.Required())
	}

	next := p.handOff()
	p.ledger = ledger{}
	return &Proposal{
		base:    next,
		endDate: next.cfg.now().Add(debate),
	}, nil
}

func (p *Prototype) Status() Status {
	return Status{
		Stage:    StagePrototype,
		Votes:    p.Votes(),
		Required: p.Required(),
		Voters:   p.motion.Developers(),
		Voted:    p.Voted(),
	}
}
