package dungeon

import (
	"errors"
	"fmt"

	"dungeon-core/internal/core/types"
	"dungeon-core/internal/geom"
	"dungeon-core/internal/world"
	"dungeon-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Параметры генерации по умолчанию
const (
	MapWidth  = 40
	MapHeight = 25
	MaxRooms  = 8
	MinSize   = 4
	MaxSize   = 10
)

var (
	// ErrTooSmall - в мир не помещается ни одна комната минимального размера.
	ErrTooSmall = errors.New("world too small for rooms")
	// ErrBadParams - противоречивые параметры генерации.
	ErrBadParams = errors.New("invalid generator params")
)

// Params - настройки генератора "комнаты и коридоры".
// MinSize/MaxSize задают размер пола комнаты без стен.
type Params struct {
	MaxRooms int `yaml:"max_rooms" json:"max_rooms"`
	MinSize  int `yaml:"min_size" json:"min_size"`
	MaxSize  int `yaml:"max_size" json:"max_size"`
}

// DefaultParams возвращает параметры по умолчанию.
func DefaultParams() Params {
	return Params{MaxRooms: MaxRooms, MinSize: MinSize, MaxSize: MaxSize}
}

// Validate проверяет согласованность параметров.
func (p Params) Validate() error {
	if p.MaxRooms <= 0 {
		return fmt.Errorf("%w: max_rooms must be positive, got %d", ErrBadParams, p.MaxRooms)
	}
	if p.MinSize <= 0 || p.MaxSize < p.MinSize {
		return fmt.Errorf("%w: room size range [%d, %d]", ErrBadParams, p.MinSize, p.MaxSize)
	}
	return nil
}

// Generate заливает мир камнем и вырезает в нем комнаты, соединенные
// коридорами. Возвращает список комнат (только пол, включительно);
// первая комната - стартовая. Граница мира всегда остается стеной.
func Generate(w *world.World, d world.Dice, p Params) ([]geom.Rect, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// Комната вместе с обрамляющими стенами должна помещаться в мир.
	maxW := min(p.MaxSize, w.Width()-2)
	maxH := min(p.MaxSize, w.Height()-2)
	if maxW < p.MinSize || maxH < p.MinSize {
		return nil, fmt.Errorf("%w: %dx%d with min room size %d", ErrTooSmall, w.Width(), w.Height(), p.MinSize)
	}

	fill(w)

	rooms := make([]geom.Rect, 0, p.MaxRooms)
	for i := 0; i < p.MaxRooms; i++ {
		rw := d.NextInt(p.MinSize, maxW)
		rh := d.NextInt(p.MinSize, maxH)
		x := d.NextInt(1, w.Width()-rw-1)
		y := d.NextInt(1, w.Height()-rh-1)

		newRoom := geom.R(x, y, x+rw-1, y+rh-1)

		failed := false
		for _, other := range rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		carveRoom(w, newRoom)

		// Соединяем с предыдущей комнатой
		if len(rooms) > 0 {
			prev := rooms[len(rooms)-1].Center()
			curr := newRoom.Center()

			if d.NextInt(0, 1) == 0 {
				carveHCorridor(w, prev.X, curr.X, prev.Y)
				carveVCorridor(w, prev.Y, curr.Y, curr.X)
			} else {
				carveVCorridor(w, prev.Y, curr.Y, prev.X)
				carveHCorridor(w, prev.X, curr.X, curr.Y)
			}
		}
		rooms = append(rooms, newRoom)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon_generator",
		"width":     w.Width(),
		"height":    w.Height(),
		"rooms":     len(rooms),
	}).Info("Level generated.")

	return rooms, nil
}

// --- Вспомогательные функции ---

func fill(w *world.World) {
	for x := 0; x < w.Width(); x++ {
		for y := 0; y < w.Height(); y++ {
			w.Tile(x, y).Set(false, types.GlyphWall)
		}
	}
}

func carveRoom(w *world.World, room geom.Rect) {
	for x := room.Min.X; x <= room.Max.X; x++ {
		for y := room.Min.Y; y <= room.Max.Y; y++ {
			carve(w, x, y)
		}
	}
}

func carveHCorridor(w *world.World, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		carve(w, x, y)
	}
}

func carveVCorridor(w *world.World, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		carve(w, x, y)
	}
}

func carve(w *world.World, x, y int) {
	if t := w.Tile(x, y); t != nil {
		t.Set(true, types.GlyphFloor)
	}
}
