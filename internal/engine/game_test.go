package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dungeon-core/internal/fov"
	"dungeon-core/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(seed int64) Config {
	cfg := NewConfig()
	cfg.Seed = seed
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, NewConfig().Validate())

	cases := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"unknown generator", func(c *Config) { c.Generator = "caves" }},
		{"bad rooms", func(c *Config) { c.Rooms.MinSize = 20 }},
		{"unknown fov", func(c *Config) { c.FoV.Algorithm = "flood" }},
		{"unknown monster", func(c *Config) { c.Monsters = map[string]int{"dragon": 1} }},
		{"unknown item", func(c *Config) { c.Items = map[string]int{"crown": 1} }},
		{"negative traps", func(c *Config) { c.Traps = -1 }},
		{"negative delay", func(c *Config) { c.TickDelay = -time.Second }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfig()
			tc.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed: 42
width: 30
height: 20
fov:
  algorithm: raycast
  circular: false
monsters:
  troll: 2
tick_delay: 50ms
log:
  level: debug
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 30, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
	assert.Equal(t, fov.AlgorithmRaycast, cfg.FoV.Algorithm)
	assert.False(t, cfg.FoV.Circular)
	assert.Equal(t, map[string]int{"troll": 2}, cfg.Monsters, "file lists replace defaults")
	assert.Equal(t, NewConfig().Items, cfg.Items, "absent lists keep defaults")
	assert.Equal(t, 50*time.Millisecond, cfg.TickDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, GeneratorRooms, cfg.Generator)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("width: [1, 2"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("generator: caves\n"), 0o644))
	_, err = LoadConfig(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBuild(t *testing.T) {
	g, err := Build(testConfig(42))
	require.NoError(t, err)

	w := g.World
	assert.Equal(t, g.Layout.Start, g.Player.Pos())
	assert.True(t, g.Player.BoundTo(w))
	require.Len(t, g.Player.Holds(), 1, "player starts with a dagger")
	assert.Equal(t, "dagger", g.Player.Holds()[0].(*Item).Name)

	assert.Len(t, w.Actors(world.OfKind(world.KindMonster)), 4)
	assert.Len(t, w.Actors(world.OfKind(world.KindItem)), 7, "six loot items plus the dagger")
	assert.Len(t, w.Actors(world.OfKind(world.KindEffect)), 2)

	for _, m := range w.Actors(world.OfKind(world.KindMonster)) {
		assert.True(t, w.Passable(m.Pos().X, m.Pos().Y))
		assert.NotEqual(t, g.Player.Pos(), m.Pos())
	}

	_, err = Build(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBuild_Arena(t *testing.T) {
	cfg := testConfig(3)
	cfg.Generator = GeneratorArena
	cfg.Width, cfg.Height = 12, 10

	g, err := Build(cfg)
	require.NoError(t, err)
	require.Len(t, g.Layout.Rooms, 1)
	assert.False(t, g.World.Passable(0, 0))
}

func TestGame_Deterministic(t *testing.T) {
	a, err := Build(testConfig(1234))
	require.NoError(t, err)
	b, err := Build(testConfig(1234))
	require.NoError(t, err)

	require.Equal(t, a.Layout, b.Layout)
	for i := 0; i < 60; i++ {
		sa, sb := a.Step(), b.Step()
		require.Equal(t, sa, sb, "tick %d", i+1)
		require.Equal(t, a.Player.Pos(), b.Player.Pos(), "tick %d", i+1)
	}
	assert.Equal(t, a.Dungeon.History(), b.Dungeon.History())
}

func TestGame_Run(t *testing.T) {
	g, err := Build(testConfig(5))
	require.NoError(t, err)

	seen := 0
	require.NoError(t, g.Run(context.Background(), 25, func(s TickStats) {
		seen++
		assert.Equal(t, seen, s.Tick)
	}))
	assert.Equal(t, 25, seen)
	assert.Equal(t, 25, g.World.Turn())
	assert.True(t, fov.Visible(g.PlayerView(), g.Player.Pos()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, g.Run(ctx, 0, nil), context.Canceled)
	assert.Equal(t, 25, g.World.Turn())
}

func TestGame_RunWithDelayStopsOnCancel(t *testing.T) {
	cfg := testConfig(6)
	cfg.TickDelay = time.Millisecond
	g, err := Build(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	err = g.Run(ctx, 0, func(s TickStats) {
		if s.Tick == 5 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, g.World.Turn())
}

func TestLoadConfig_SampleFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "dungeon.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(20260101), cfg.Seed)
	assert.Equal(t, 1, cfg.Monsters["troll"])
	assert.Equal(t, 100*time.Millisecond, cfg.TickDelay)

	g, err := Build(cfg)
	require.NoError(t, err)
	monsters := g.World.Actors(world.OfKind(world.KindMonster))
	assert.NotEmpty(t, monsters)
	assert.LessOrEqual(t, len(monsters), 5)
}
