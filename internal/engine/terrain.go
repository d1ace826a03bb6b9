package engine

import (
	"dungeon-core/internal/core/types"
	"dungeon-core/internal/geom"
	"dungeon-core/internal/world"
	"dungeon-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Terrain - переопределение вида клетки: поверх пола рисуется самый
// "важный" актор. Проходимость для обзора остается проходимостью клетки;
// существа блокируют только движение (см. BlocksMovement).
type Terrain struct{}

func (Terrain) Passable(w *world.World, x, y int) bool {
	return w.Tile(x, y).Passable()
}

func (Terrain) Look(w *world.World, x, y int) types.Glyph {
	t := w.Tile(x, y)
	best, rank := t.Look(), 0
	for _, a := range t.Occupants() {
		if r := lookRank(a); r > rank {
			best, rank = a.Look(), r
		}
	}
	return best
}

// lookRank: существа поверх предметов, предметы поверх эффектов.
func lookRank(a world.Actor) int {
	switch {
	case a.Kind().Has(world.KindCreature):
		return 3
	case a.Kind().Has(world.KindItem):
		return 2
	case a.Kind().Has(world.KindEffect):
		return 1
	}
	return 0
}

// BlocksMovement сообщает, нельзя ли шагнуть в клетку: стена, край мира
// или уже стоящее существо.
func BlocksMovement(w *world.World, x, y int) bool {
	if !w.Passable(x, y) {
		return true
	}
	return w.ActorAt(x, y, world.OfKind(world.KindCreature)) != nil
}

// mobility - сетка для поиска пути с учетом существ.
type mobility struct {
	w *world.World
}

func (m mobility) Width() int  { return m.w.Width() }
func (m mobility) Height() int { return m.w.Height() }
func (m mobility) Passable(x, y int) bool {
	return !BlocksMovement(m.w, x, y)
}

// HasLineOfSight проверяет прямую видимость между двумя точками по линии
// Брезенхэма. Начальная и конечная клетки не проверяются.
func HasLineOfSight(w *world.World, p1, p2 geom.Coord) bool {
	losLogger := logger.Log.WithFields(logrus.Fields{
		"component": "physics_system",
		"function":  "HasLineOfSight",
		"start_pos": p1,
		"end_pos":   p2,
	})

	visible := true
	geom.Walk(p1, p2, func(c geom.Coord) bool {
		if c == p2 {
			return false
		}
		if !w.Passable(c.X, c.Y) {
			losLogger.WithField("blocking_point", c).Debug("Line is blocked.")
			visible = false
			return false
		}
		return true
	})
	return visible
}
