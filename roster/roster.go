// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrSampleSizeExceedsPopulation = errors.New("sample size exceeds population")
	ErrForeignID                   = errors.New("person ID belongs to another roster")
	ErrUnknownPosition             = errors.New("no person at position")
)

// Person is a single member of a population. Names are not unique.
type Person struct {
	Name string
}

// PersonID identifies a person by position within exactly one roster.
// IDs from different rosters never compare equal.
type PersonID struct {
	roster uuid.UUID
	pos    uint64
}

// Position returns the person's index in the roster that issued the ID
func (id PersonID) Position() uint64 {
	return id.pos
}

// Roster returns the identity of the roster that issued the ID
func (id PersonID) Roster() uuid.UUID {
	return id.roster
}

func (id PersonID) String() string {
	return fmt.Sprintf("#%d", id.pos)
}

// Roster is an ordered population. It is never reordered or shrunk once built,
// so positions stay valid for its whole lifetime.
type Roster struct {
	id     uuid.UUID
	people []Person
	rng    *rand.Rand
}

type Option func(*Roster)

// WithID rebuilds a roster under a known identity, e.g. when loading from storage
func WithID(id uuid.UUID) Option {
	return func(r *Roster) {
		r.id = id
	}
}

// WithRand sets the random source used for Choice and Sample
func WithRand(rng *rand.Rand) Option {
	return func(r *Roster) {
		r.rng = rng
	}
}

// New builds a roster from people, copying the slice
func New(people []Person, opts ...Option) *Roster {
	r := &Roster{
		id:     uuid.New(),
		people: append([]Person(nil), people...),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromNames builds a roster with one person per name
func FromNames(names []string, opts ...Option) *Roster {
	people := make([]Person, len(names))
	for i, name := range names {
		people[i] = Person{Name: name}
	}
	return New(people, opts...)
}

func (r *Roster) ID() uuid.UUID {
	return r.id
}

func (r *Roster) Len() uint64 {
	return uint64(len(r.people))
}

// IDAt returns the ID of the person at pos
func (r *Roster) IDAt(pos uint64) (PersonID, error) {
	if pos >= r.Len() {
		return PersonID{}, fmt.Errorf("%w %d (roster has %d people)", ErrUnknownPosition, pos, r.Len())
	}
	return PersonID{roster: r.id, pos: pos}, nil
}

// Person looks up id, which must have been issued by this roster
func (r *Roster) Person(id PersonID) (Person, error) {
	if id.roster != r.id {
		return Person{}, ErrForeignID
	}
	if id.pos >= r.Len() {
		return Person{}, fmt.Errorf("%w %d", ErrUnknownPosition, id.pos)
	}
	return r.people[id.pos], nil
}

// Contains reports whether id was issued by this roster and is in range
func (r *Roster) Contains(id PersonID) bool {
	return id.roster == r.id && id.pos < r.Len()
}

// IDs returns every ID in roster order
func (r *Roster) IDs() []PersonID {
	ids := make([]PersonID, len(r.people))
	for i := range r.people {
		ids[i] = PersonID{roster: r.id, pos: uint64(i)}
	}
	return ids
}

// Choice returns the ID of a uniformly random person
func (r *Roster) Choice() (PersonID, error) {
	if r.Len() == 0 {
		return PersonID{}, fmt.Errorf("%w: choice from an empty roster", ErrSampleSizeExceedsPopulation)
	}
	return PersonID{roster: r.id, pos: uint64n(r.rng, r.Len())}, nil
}

// Sample returns n distinct IDs chosen uniformly at random
func (r *Roster) Sample(n uint64) ([]PersonID, error) {
	positions, err := samplePositions(r.rng, r.Len(), n)
	if err != nil {
		return nil, err
	}

	ids := make([]PersonID, len(positions))
	for i, pos := range positions {
		ids[i] = PersonID{roster: r.id, pos: pos}
	}
	return ids, nil
}

// String lists the names, one per line
func (r *Roster) String() string {
	names := make([]string, len(r.people))
	for i, p := range r.people {
		names[i] = p.Name
	}
	return strings.Join(names, "\n")
}
