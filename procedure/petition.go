// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package procedure

import (
	"fmt"
	"slices"

	"github.com/danielhkuo/agora/roster"
)

// Petition shows the motion to a random group of electors. Only that group
// votes, and a majority of it sends the motion to a general vote.
type Petition struct {
	base
	voters   []roster.PersonID
	voterSet map[roster.PersonID]struct{}
	ledger   ledger
}

func (p *Petition) Stage() Stage {
	return StagePetition
}

// VoterIDs returns the sampled electors eligible in this stage
func (p *Petition) VoterIDs() []roster.PersonID {
	return slices.Clone(p.voters)
}

func (p *Petition) Approvals() uint64 {
	return p.ledger.count()
}

func (p *Petition) Voted() []roster.PersonID {
	return p.ledger.list()
}

func (p *Petition) Required() uint64 {
	return majorityOf(len(p.voters))
}

// RegisterApproval counts an approval from a sampled elector who has not yet voted
func (p *Petition) RegisterApproval(id roster.PersonID) error {
	if err := p.live(StagePetition); err != nil {
		return err
	}
	if _, ok := p.voterSet[id]; !ok {
		return fmt.Errorf("%w: %s is not in the petition group", ErrVoteRejected, id)
	}
	if p.ledger.has(id) {
		return fmt.Errorf("%w: %s already approved", ErrVoteRejected, id)
	}

	p.ledger.record(id)
	return nil
}

// Advance opens the referendum to the full electorate once approvals exceed
// half the petition group. On error p is unchanged.
func (p *Petition) Advance() (*Referendum, error) {
	if err := p.live(StagePetition); err != nil {
		return nil, err
	}
	if p.Approvals() < p.Required() {
		return nil, fmt.Errorf("%w: %d of %d approvals", ErrThresholdNotMet, p.Approvals(), p.Required())
	}

	next := p.handOff()
	p.ledger = ledger{}
	return &Referendum{
		base:   next,
		ledger: newLedger(),
	}, nil
}

func (p *Petition) Status() Status {
	return Status{
		Stage:    StagePetition,
		Votes:    p.Approvals(),
		Required: p.Required(),
		Voters:   p.VoterIDs(),
		Voted:    p.Voted(),
	}
}
