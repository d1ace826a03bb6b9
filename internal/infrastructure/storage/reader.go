package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"dungeon-core/internal/engine"

	"gopkg.in/yaml.v3"
)

// ErrBadFormat - файл не является записью прогона или поврежден.
var ErrBadFormat = errors.New("bad run file")

// Ограничения заголовка: поврежденный файл не должен заставить
// выделить гигабайты до чтения данных.
const (
	MaxConfigLen    = 1 << 20
	maxTickPrealloc = 4096
)

func (s *RunService) Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*Recording, error) {
	// 1. Читаем заголовок целиком
	var header RunFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %w", ErrBadFormat, err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: invalid magic", ErrBadFormat)
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: unsupported version: %d (expected %d)", ErrBadFormat, header.Version, Version1)
	}
	if header.TickCount < 0 {
		return nil, fmt.Errorf("%w: negative tick count", ErrBadFormat)
	}
	if header.Width <= 0 || header.Height <= 0 {
		return nil, fmt.Errorf("%w: map size must be positive, got %dx%d", ErrBadFormat, header.Width, header.Height)
	}
	if header.ConfigLen > MaxConfigLen {
		return nil, fmt.Errorf("%w: config length %d exceeds %d", ErrBadFormat, header.ConfigLen, MaxConfigLen)
	}

	rec := &Recording{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Width:     int(header.Width),
		Height:    int(header.Height),
		Ticks:     make([]engine.TickStats, 0, min(int(header.TickCount), maxTickPrealloc)),
	}

	// 2. Снимок конфига
	if header.ConfigLen > 0 {
		rec.Config = make([]byte, header.ConfigLen)
		if _, err := io.ReadFull(r, rec.Config); err != nil {
			return nil, fmt.Errorf("%w: failed to read config: %w", ErrBadFormat, err)
		}
	}

	// 3. Ходы
	for i := 0; i < int(header.TickCount); i++ {
		var tr TickRecord
		if err := binary.Read(r, binary.LittleEndian, &tr); err != nil {
			return nil, fmt.Errorf("%w: failed to read tick %d: %w", ErrBadFormat, i, err)
		}
		rec.Ticks = append(rec.Ticks, engine.TickStats{
			Tick:      int(tr.Tick),
			Acted:     int(tr.Acted),
			Moved:     int(tr.Moved),
			PickedUp:  int(tr.PickedUp),
			Triggered: int(tr.Triggered),
			Removed:   int(tr.Removed),
			Actors:    int(tr.Actors),
		})
	}

	return rec, nil
}

// NewRecording снимает запись с завершенной (или прерванной) игры.
func NewRecording(g *engine.Game, timestamp int64) (*Recording, error) {
	cfg, err := yaml.Marshal(g.Config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return &Recording{
		Seed:      g.Config.Seed,
		Timestamp: timestamp,
		Width:     g.World.Width(),
		Height:    g.World.Height(),
		Config:    cfg,
		Ticks:     g.Dungeon.History(),
	}, nil
}

// Replay пересобирает игру из снимка конфига записи. Тот же сид дает
// ту же симуляцию, поэтому запись можно проверить повторным прогоном.
func (rec *Recording) Replay() (*engine.Game, error) {
	cfg, err := engine.ParseConfig(rec.Config)
	if err != nil {
		return nil, fmt.Errorf("%w: config snapshot: %w", ErrBadFormat, err)
	}
	return engine.Build(cfg)
}
