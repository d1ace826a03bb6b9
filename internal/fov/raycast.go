package fov

import (
	"dungeon-core/internal/geom"

	"github.com/zyedidia/generic/mapset"
)

// Raycast пускает луч Брезенхэма из центра в каждую клетку периметра
// квадрата 2r+1. Быстро и просто, но ближние клетки посещаются многократно.
type Raycast struct {
	base
}

// NewRaycast создает Raycast; circular включает круговую маску.
func NewRaycast(circular bool) *Raycast {
	return &Raycast{base: base{name: AlgorithmRaycast, circular: circular}}
}

func (rc *Raycast) CalcFoV(g Grid, x, y, r int) mapset.Set[geom.Coord] {
	origin := geom.C(x, y)
	log := rc.logger(origin, r)
	log.Debug("Starting FOV calculation.")

	fov := mapset.New[geom.Coord]()
	fov.Put(origin)

	// Верхняя и нижняя строки периметра, затем правый и левый столбцы.
	// Углы покрываются дважды - дубликаты поглощает множество.
	for dx := x - r; dx <= x+r; dx++ {
		castRay(g, fov, origin, geom.C(dx, y-r))
		castRay(g, fov, origin, geom.C(dx, y+r))
	}
	for dy := y - r; dy <= y+r; dy++ {
		castRay(g, fov, origin, geom.C(x+r, dy))
		castRay(g, fov, origin, geom.C(x-r, dy))
	}

	return rc.finish(fov, origin, r, log)
}

// castRay добавляет клетки луча до первой непроходимой включительно.
// Луч обрывается на границе мира.
func castRay(g Grid, fov mapset.Set[geom.Coord], from, to geom.Coord) {
	geom.Walk(from, to, func(c geom.Coord) bool {
		if !inBounds(g, c) {
			return false
		}
		fov.Put(c)
		return g.Passable(c.X, c.Y)
	})
}
