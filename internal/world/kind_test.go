package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	player := KindCreature | KindPlayer

	assert.True(t, player.Has(KindCreature))
	assert.True(t, player.Has(KindCreature|KindPlayer))
	assert.False(t, player.Has(KindMonster))

	assert.Equal(t, "CREATURE|PLAYER", player.String())
	assert.Equal(t, "UNKNOWN", KindUnknown.String())

	assert.Equal(t, player, ParseKind("creature | player"))
	assert.Equal(t, KindItem, ParseKind("ITEM|bogus"))
	assert.Equal(t, KindUnknown, ParseKind(""))
}

func TestHolds_Cycles(t *testing.T) {
	a, b, c := newActor("a", KindItem), newActor("b", KindItem), newActor("c", KindItem)
	Attach(a, b)
	Attach(b, c)

	requirePanicsWith(t, ErrPrecondition, func() { Attach(c, a) })
	requirePanicsWith(t, ErrPrecondition, func() { Attach(a, a) })
	requirePanicsWith(t, ErrPrecondition, func() { Attach(a, c) })
	requirePanicsWith(t, ErrPrecondition, func() { Detach(a) })

	Detach(c)
	assert.False(t, c.Held())
	assert.Empty(t, b.Holds())
}

func TestHolds_AttachAcrossWorlds(t *testing.T) {
	w1, w2 := New(3, 3), New(3, 3)
	holder := newActor("h", KindCreature)
	item := newActor("i", KindItem)
	w1.AddActor(holder, 0, 0)
	w2.AddActor(item, 1, 1)

	requirePanicsWith(t, ErrPrecondition, func() { Attach(holder, item) })

	w2.RemoveActor(item)
	Attach(holder, item)

	assert.True(t, item.BoundTo(w1))
	assert.Equal(t, 2, w1.Len())

	Detach(item)
	assert.True(t, w1.Tile(0, 0).Has(item), "a dropped actor lands on the holder's tile")
	checkConsistency(t, w1)
}
