// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/agora/roster"
)

func TestMotion(t *testing.T) {
	r := roster.FromNames([]string{"Ada", "Brutus", "Cato", "Dido"})
	ids := r.IDs()

	m := New("Monument", "Exampletown is too empty.", ids[:2], ids)

	assert.Equal(t, "Monument", m.Title())
	assert.Equal(t, 2, m.DevCount())
	assert.Equal(t, 4, m.ElectorCount())
	assert.True(t, m.IsDeveloper(ids[0]))
	assert.False(t, m.IsDeveloper(ids[3]))
	assert.True(t, m.IsElector(ids[3]))
	assert.Equal(t, "Monument\n\nExampletown is too empty.", m.String())
}

func TestMotionIsImmutable(t *testing.T) {
	ids := roster.FromNames([]string{"Ada", "Brutus", "Cato"}).IDs()
	devs := []roster.PersonID{ids[0]}

	m := New("t", "d", devs, ids)

	// Mutating the inputs or the returned copies must not leak in.
	devs[0] = ids[2]
	m.Developers()[0] = ids[1]
	m.Electors()[0] = ids[1]

	assert.Equal(t, []roster.PersonID{ids[0]}, m.Developers())
	assert.Equal(t, ids, m.Electors())
	assert.True(t, m.IsDeveloper(ids[0]))
	assert.False(t, m.IsDeveloper(ids[2]))
}

func TestAnonymousMotion(t *testing.T) {
	ids := roster.FromNames([]string{"Ada"}).IDs()
	m := New("t", "d", nil, ids)

	assert.Equal(t, 0, m.DevCount())
	assert.False(t, m.IsDeveloper(ids[0]))
}

func TestForeignIDsAreNotElectors(t *testing.T) {
	a := roster.FromNames([]string{"Ada"})
	b := roster.FromNames([]string{"Ada"})

	m := New("t", "d", a.IDs(), a.IDs())
	assert.False(t, m.IsElector(b.IDs()[0]))
	assert.False(t, m.IsDeveloper(b.IDs()[0]))
}

func TestMotionDropsRepeatedIDs(t *testing.T) {
	ids := roster.FromNames([]string{"Ada", "Brutus"}).IDs()
	m := New("t", "d", []roster.PersonID{ids[1], ids[1]}, []roster.PersonID{ids[0], ids[1], ids[0]})

	assert.Equal(t, []roster.PersonID{ids[1]}, m.Developers())
	assert.Equal(t, []roster.PersonID{ids[0], ids[1]}, m.Electors())
}
