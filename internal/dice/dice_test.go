package dice

import (
	"testing"

	"dungeon-core/internal/geom"

	"github.com/stretchr/testify/assert"
)

func TestDice_NextIntInclusive(t *testing.T) {
	d := New(1)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := d.NextInt(3, 6)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 6)
		seen[v] = true
	}
	assert.Len(t, seen, 4, "both bounds must be reachable")

	assert.Equal(t, 5, d.NextInt(5, 5))
	assert.Panics(t, func() { d.NextInt(2, 1) })
}

func TestDice_Deterministic(t *testing.T) {
	a, b := New(99), New(99)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.NextInt(0, 100), b.NextInt(0, 100))
	}
	assert.Equal(t, a.Fork().XdY(3, 6), b.Fork().XdY(3, 6))
	assert.Equal(t, int64(99), a.Seed())
}

func TestDice_XdY(t *testing.T) {
	d := New(5)
	for i := 0; i < 200; i++ {
		v := d.XdY(3, 6)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 18)
	}
	assert.Zero(t, d.XdY(0, 6))
}

func TestDice_NextDir(t *testing.T) {
	d := New(3)
	for i := 0; i < 100; i++ {
		dir := d.NextDir()
		assert.True(t, geom.C(0, 0).IsAdjacent(dir), "%v is not a unit step", dir)
	}
}

func TestDice_Chance(t *testing.T) {
	d := New(8)
	assert.False(t, d.Chance(0))
	assert.True(t, d.Chance(1))
}
