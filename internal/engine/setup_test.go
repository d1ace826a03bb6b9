package engine

import (
	"os"
	"testing"

	"dungeon-core/internal/dice"
	"dungeon-core/internal/fov"
	"dungeon-core/internal/world"
	"dungeon-core/pkg/dungeon"
	"dungeon-core/pkg/logger"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()
	logger.Discard()

	os.Exit(m.Run())
}

// arena собирает пустую комнату size x size со степпером Dungeon.
func arena(t *testing.T, size int) (*world.World, *Dungeon) {
	t.Helper()
	d := NewDungeon(dice.New(1), fov.NewShadowcast(true))
	w := world.New(size, size, world.WithStepper(d), world.WithTerrain(Terrain{}))
	_, err := dungeon.Arena(w)
	require.NoError(t, err)
	return w, d
}
