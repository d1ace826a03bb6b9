package dungeon

import (
	"fmt"

	"dungeon-core/internal/core/types"
	"dungeon-core/internal/geom"
	"dungeon-core/internal/world"
)

// Arena превращает мир в одну пустую комнату, обнесенную стеной по периметру.
// Подходит для тестовых и "домашних" уровней.
func Arena(w *world.World) ([]geom.Rect, error) {
	if w.Width() < 3 || w.Height() < 3 {
		return nil, fmt.Errorf("%w: arena needs at least 3x3, got %dx%d", ErrTooSmall, w.Width(), w.Height())
	}

	for x := 0; x < w.Width(); x++ {
		for y := 0; y < w.Height(); y++ {
			isBoundary := x == 0 || y == 0 || x == w.Width()-1 || y == w.Height()-1
			if isBoundary {
				w.Tile(x, y).Set(false, types.GlyphWall)
			} else {
				w.Tile(x, y).Set(true, types.GlyphFloor)
			}
		}
	}

	return []geom.Rect{geom.R(1, 1, w.Width()-2, w.Height()-2)}, nil
}
