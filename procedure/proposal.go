// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package procedure

import (
	"fmt"
	"math"
	"time"

	"github.com/danielhkuo/agora/roster"
)

// Proposal is the public debate stage. Nothing is voted on; the motion waits
// until its deadline passes.
type Proposal struct {
	base
	endDate time.Time
}

func (p *Proposal) Stage() Stage {
	return StageProposal
}

// EndDate is the debate deadline fixed when the stage was entered
func (p *Proposal) EndDate() time.Time {
	return p.endDate
}

// PetitionSize is the number of electors that will be drawn for the petition
func (p *Proposal) PetitionSize() uint64 {
	return petitionSize(p.motion.ElectorCount(), p.cfg.ratio)
}

// petitionSize rounds to the nearest voter, halves away from zero
func petitionSize(electors int, ratio float64) uint64 {
	return uint64(math.Round(float64(electors) * ratio))
}

// Advance draws the petition group once the deadline has been reached.
// On error p is unchanged and may be retried later.
func (p *Proposal) Advance() (*Petition, error) {
	if err := p.live(StageProposal); err != nil {
		return nil, err
	}

	now := p.cfg.now()
	if now.Before(p.endDate) {
		return nil, fmt.Errorf("%w: debate ends at %s", ErrDeadlineNotReached, p.endDate.Format(time.RFC3339))
	}

	voters, err := roster.SampleIDs(p.cfg.rng, p.motion.Electors(), p.PetitionSize())
	if err != nil {
		return nil, fmt.Errorf("failed to draw petition group: %w", err)
	}

	voterSet := make(map[roster.PersonID]struct{}, len(voters))
	for _, id := range voters {
		voterSet[id] = struct{}{}
	}

	return &Petition{
		base:     p.handOff(),
		voters:   voters,
		voterSet: voterSet,
		ledger:   newLedger(),
	}, nil
}

func (p *Proposal) Status() Status {
	return Status{
		Stage:    StageProposal,
		Deadline: p.endDate,
	}
}
