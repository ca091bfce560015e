// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package motion

import (
	"slices"

	"github.com/danielhkuo/agora/roster"
)

// Motion is what is being decided. It is built once, before any procedure
// starts, and never changes afterwards.
type Motion struct {
	title       string
	description string
	developers  []roster.PersonID
	electors    []roster.PersonID

	devSet     map[roster.PersonID]struct{}
	electorSet map[roster.PersonID]struct{}
}

// New builds a motion. An empty developer list makes an anonymous motion.
// Developers and electors may overlap or be disjoint. Repeated IDs keep their
// first position only.
func New(title, description string, developers, electors []roster.PersonID) Motion {
	m := Motion{title: title, description: description}
	m.developers, m.devSet = dedupe(developers)
	m.electors, m.electorSet = dedupe(electors)
	return m
}

func dedupe(ids []roster.PersonID) ([]roster.PersonID, map[roster.PersonID]struct{}) {
	set := make(map[roster.PersonID]struct{}, len(ids))
	out := make([]roster.PersonID, 0, len(ids))
	for _, id := range ids {
		if _, dup := set[id]; dup {
			continue
		}
		set[id] = struct{}{}
		out = append(out, id)
	}
	return out, set
}

func (m Motion) Title() string {
	return m.title
}

func (m Motion) Description() string {
	return m.description
}

// Developers returns a copy of the developer IDs in order
func (m Motion) Developers() []roster.PersonID {
	return slices.Clone(m.developers)
}

// Electors returns a copy of the elector IDs in order
func (m Motion) Electors() []roster.PersonID {
	return slices.Clone(m.electors)
}

func (m Motion) DevCount() int {
	return len(m.developers)
}

func (m Motion) ElectorCount() int {
	return len(m.electors)
}

func (m Motion) IsDeveloper(id roster.PersonID) bool {
	_, ok := m.devSet[id]
	return ok
}

func (m Motion) IsElector(id roster.PersonID) bool {
	_, ok := m.electorSet[id]
	return ok
}

// String shows the title and description, never the voter lists
func (m Motion) String() string {
	return m.title + "\n\n" + m.description
}
