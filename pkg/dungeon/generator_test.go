package dungeon

import (
	"os"
	"testing"

	"dungeon-core/internal/dice"
	"dungeon-core/internal/geom"
	"dungeon-core/internal/world"
	"dungeon-core/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Discard()

	os.Exit(m.Run())
}

// reachable считает клетки, достижимые из start по 4-связности.
func reachable(w *world.World, start geom.Coord) map[geom.Coord]bool {
	seen := map[geom.Coord]bool{start: true}
	queue := []geom.Coord{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range []geom.Coord{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}} {
			n := c.Add(d)
			if !seen[n] && w.Passable(n.X, n.Y) {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return seen
}

func TestGenerate(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42, 1337} {
		w := world.New(MapWidth, MapHeight)
		rooms, err := Generate(w, dice.New(seed), DefaultParams())
		require.NoError(t, err)
		require.NotEmpty(t, rooms)
		assert.LessOrEqual(t, len(rooms), MaxRooms)

		// 1. Граница мира - сплошная стена
		for x := 0; x < w.Width(); x++ {
			assert.False(t, w.Passable(x, 0))
			assert.False(t, w.Passable(x, w.Height()-1))
		}
		for y := 0; y < w.Height(); y++ {
			assert.False(t, w.Passable(0, y))
			assert.False(t, w.Passable(w.Width()-1, y))
		}

		// 2. Комнаты не пересекаются и вырезаны целиком
		for i, r := range rooms {
			assert.GreaterOrEqual(t, r.Width(), MinSize)
			assert.LessOrEqual(t, r.Width(), MaxSize)
			for j := i + 1; j < len(rooms); j++ {
				assert.False(t, r.Intersects(rooms[j]), "rooms %d and %d overlap", i, j)
			}
			for x := r.Min.X; x <= r.Max.X; x++ {
				for y := r.Min.Y; y <= r.Max.Y; y++ {
					assert.True(t, w.Passable(x, y))
				}
			}
		}

		// 3. Все комнаты связаны коридорами
		seen := reachable(w, rooms[0].Center())
		for i, r := range rooms {
			assert.True(t, seen[r.Center()], "seed %d: room %d is disconnected", seed, i)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := world.New(MapWidth, MapHeight)
	b := world.New(MapWidth, MapHeight)

	ra, err := Generate(a, dice.New(7), DefaultParams())
	require.NoError(t, err)
	rb, err := Generate(b, dice.New(7), DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, ra, rb)
	for x := 0; x < a.Width(); x++ {
		for y := 0; y < a.Height(); y++ {
			assert.Equal(t, a.Passable(x, y), b.Passable(x, y))
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	_, err := Generate(world.New(5, 5), dice.New(1), DefaultParams())
	assert.ErrorIs(t, err, ErrTooSmall)

	_, err = Generate(world.New(40, 40), dice.New(1), Params{MaxRooms: 3, MinSize: 6, MaxSize: 4})
	assert.ErrorIs(t, err, ErrBadParams)

	_, err = Generate(world.New(40, 40), dice.New(1), Params{MaxRooms: 0, MinSize: 4, MaxSize: 6})
	assert.ErrorIs(t, err, ErrBadParams)
}

func TestArena(t *testing.T) {
	w := world.New(8, 6)
	rooms, err := Arena(w)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, geom.R(1, 1, 6, 4), rooms[0])

	assert.False(t, w.Passable(0, 0))
	assert.False(t, w.Passable(7, 3))
	assert.True(t, w.Passable(1, 1))
	assert.True(t, w.Passable(6, 4))

	_, err = Arena(world.New(2, 9))
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestLevelBuilder(t *testing.T) {
	w := world.New(MapWidth, MapHeight)
	layout, err := NewLevel(w, dice.New(11)).
		WithParams(DefaultParams()).
		WithRooms().
		PlaceExit().
		Build()
	require.NoError(t, err)

	assert.Equal(t, layout.Rooms[0].Center(), layout.Start)
	assert.Equal(t, layout.Rooms[len(layout.Rooms)-1].Center(), layout.Exit)
	assert.Equal(t, GlyphStairs, w.Look(layout.Exit.X, layout.Exit.Y))
	assert.True(t, w.Passable(layout.Start.X, layout.Start.Y))

	_, err = NewLevel(world.New(4, 4), dice.New(1)).WithRooms().PlaceExit().Build()
	assert.ErrorIs(t, err, ErrTooSmall)

	layout, err = NewLevel(world.New(9, 9), dice.New(1)).AsArena().Build()
	require.NoError(t, err)
	assert.Equal(t, geom.C(4, 4), layout.Start)
}
