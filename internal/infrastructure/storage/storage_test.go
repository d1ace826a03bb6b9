package storage

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"dungeon-core/internal/engine"
	"dungeon-core/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Discard()

	os.Exit(m.Run())
}

func playedGame(t *testing.T, seed int64, ticks int) *engine.Game {
	t.Helper()
	cfg := engine.NewConfig()
	cfg.Seed = seed
	g, err := engine.Build(cfg)
	require.NoError(t, err)
	for i := 0; i < ticks; i++ {
		g.Step()
	}
	return g
}

func TestRunService_SaveLoad(t *testing.T) {
	g := playedGame(t, 77, 30)
	rec, err := NewRecording(g, 1700000000)
	require.NoError(t, err)

	svc, err := NewRunService(filepath.Join(t.TempDir(), "runs"))
	require.NoError(t, err)

	path, err := svc.Save(rec)
	require.NoError(t, err)
	assert.Equal(t, "run_77_1700000000.dcrn", filepath.Base(path))

	loaded, err := svc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, rec.Seed, loaded.Seed)
	assert.Equal(t, rec.Timestamp, loaded.Timestamp)
	assert.Equal(t, g.World.Width(), loaded.Width)
	assert.Equal(t, g.World.Height(), loaded.Height)
	assert.Equal(t, rec.Config, loaded.Config)
	assert.Equal(t, g.Dungeon.History(), loaded.Ticks)
	assert.Len(t, loaded.Ticks, 30)
}

func TestRecording_Replay(t *testing.T) {
	g := playedGame(t, 2024, 40)
	rec, err := NewRecording(g, 1)
	require.NoError(t, err)

	replayed, err := rec.Replay()
	require.NoError(t, err)
	for range rec.Ticks {
		replayed.Step()
	}

	assert.Equal(t, rec.Ticks, replayed.Dungeon.History())
	assert.Equal(t, g.Player.Pos(), replayed.Player.Pos())
}

func TestReadBinary_Errors(t *testing.T) {
	_, err := readBinary(bytes.NewReader([]byte("DC")))
	assert.ErrorIs(t, err, ErrBadFormat)

	var buf bytes.Buffer
	require.NoError(t, writeBinary(&buf, &Recording{Seed: 1, Width: 3, Height: 3, Ticks: []engine.TickStats{{Tick: 1}, {Tick: 2}}}))
	data := buf.Bytes()

	corrupt := append([]byte("XXXX"), data[4:]...)
	_, err = readBinary(bytes.NewReader(corrupt))
	assert.ErrorIs(t, err, ErrBadFormat)

	_, err = readBinary(bytes.NewReader(data[:len(data)-3]))
	assert.ErrorIs(t, err, ErrBadFormat, "truncated tick")

	rec, err := readBinary(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, rec.Ticks, 2)
	assert.Empty(t, rec.Config)
}

func encodeHeader(mutate func(*RunFileHeader)) []byte {
	h := RunFileHeader{Version: Version1, Seed: 1, Width: 10, Height: 10}
	copy(h.Magic[:], MagicHeader)
	mutate(&h)

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &h); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func TestReadBinary_RejectsHostileHeader(t *testing.T) {
	cases := map[string]func(*RunFileHeader){
		"huge config":    func(h *RunFileHeader) { h.ConfigLen = 0xFFFFFFFF },
		"config limit":   func(h *RunFileHeader) { h.ConfigLen = MaxConfigLen + 1 },
		"zero width":     func(h *RunFileHeader) { h.Width = 0 },
		"negative size":  func(h *RunFileHeader) { h.Height = -5 },
		"negative ticks": func(h *RunFileHeader) { h.TickCount = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := readBinary(bytes.NewReader(encodeHeader(mutate)))
			assert.ErrorIs(t, err, ErrBadFormat)
		})
	}
}

func TestReadBinary_HugeTickCountFailsOnMissingData(t *testing.T) {
	data := encodeHeader(func(h *RunFileHeader) {
		h.TickCount = 0x7FFFFFFF
		h.ConfigLen = MaxConfigLen
	})

	_, err := readBinary(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrBadFormat, "truncated config")

	data = encodeHeader(func(h *RunFileHeader) { h.TickCount = 0x7FFFFFFF })
	_, err = readBinary(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrBadFormat, "truncated ticks")
}
