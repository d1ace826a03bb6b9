package fov

import (
	"fmt"
	"math"

	"dungeon-core/internal/geom"

	"github.com/zyedidia/generic/mapset"
)

// Shadowcast - рекурсивный shadowcasting по 8 октантам. Точен по
// отношению к препятствиям и посещает каждую клетку октанта не более раза.
type Shadowcast struct {
	base
}

// NewShadowcast создает Shadowcast; circular включает круговую маску.
func NewShadowcast(circular bool) *Shadowcast {
	return &Shadowcast{base: base{name: AlgorithmShadowcast, circular: circular}}
}

// transform переводит локальные координаты октанта (depth, y) в мировые:
// x = ox + xx*depth + xy*y, y = oy + yx*depth + yy*y.
// Предыдущая (по обходу) клетка смещена на +1 по y: (xy, yy).
type transform struct {
	xx, xy, yx, yy int
}

// Октанты 1..8: отражения относительно осей и диагоналей.
var octants = [8]transform{
	{1, 0, 0, 1},   // (ox+d, oy+y)
	{1, 0, 0, -1},  // (ox+d, oy-y)
	{0, 1, 1, 0},   // (ox+y, oy+d)
	{0, -1, 1, 0},  // (ox-y, oy+d)
	{-1, 0, 0, 1},  // (ox-d, oy+y)
	{-1, 0, 0, -1}, // (ox-d, oy-y)
	{0, 1, -1, 0},  // (ox+y, oy-d)
	{0, -1, -1, 0}, // (ox-y, oy-d)
}

func octantTransform(octant int) transform {
	if octant < 1 || octant > len(octants) {
		panic(fmt.Errorf("%w: octant must be between 1 and 8, got %d", ErrGeometry, octant))
	}
	return octants[octant-1]
}

func (sc *Shadowcast) CalcFoV(g Grid, x, y, r int) mapset.Set[geom.Coord] {
	origin := geom.C(x, y)
	log := sc.logger(origin, r)
	log.Debug("Starting FOV calculation.")

	fov := mapset.New[geom.Coord]()
	fov.Put(origin)

	for octant := 1; octant <= 8; octant++ {
		s := octantScan{
			g:      g,
			origin: origin,
			fov:    fov,
			radius: r,
			t:      octantTransform(octant),
		}
		s.scan(1, 1, 0)
	}

	return sc.finish(fov, origin, r, log)
}

// octantScan - состояние обхода одного октанта.
type octantScan struct {
	g      Grid
	origin geom.Coord
	fov    mapset.Set[geom.Coord]
	radius int
	t      transform
}

// scan обходит кольцо depth внутри клина [end, start]. Каждая активация
// соответствует одному видимому участку между препятствиями.
func (s *octantScan) scan(depth int, start, end float64) {
	if depth > s.radius {
		return
	}

	d := float64(depth)
	y := int(math.Floor(start*d + 0.5))
	for slope(d, float64(y)) >= end {
		curr := s.cell(depth, y)
		prev := s.prev(curr)
		currOpen := s.g.Passable(curr.X, curr.Y)
		prevOpen := s.g.Passable(prev.X, prev.Y)

		// Прошли край стены: клин сужается.
		if currOpen && !prevOpen {
			start = math.Max(slope(d+.5, float64(y)-.5), end)
		}
		// Уперлись в стену после пустоты: участок за углом - отдельный клин.
		// Конец клина - луч через дальний угол препятствия.
		if !currOpen && prevOpen {
			s.scan(depth+1, start, slope(d+.5, float64(y)+.5))
		}

		if inBounds(s.g, curr) {
			s.fov.Put(curr)
		}
		y--
	}
	y++

	last := s.cell(depth, y)
	if s.g.Passable(last.X, last.Y) {
		s.scan(depth+1, start, end)
	}
}

func (s *octantScan) cell(depth, y int) geom.Coord {
	return geom.C(
		s.origin.X+s.t.xx*depth+s.t.xy*y,
		s.origin.Y+s.t.yx*depth+s.t.yy*y,
	)
}

// prev - соседняя по обходу клетка. На границе мира (и за ней)
// вырождается в саму клетку, чтобы не читать за пределами сетки.
func (s *octantScan) prev(curr geom.Coord) geom.Coord {
	if curr.X <= 0 || curr.Y <= 0 || curr.X >= s.g.Width()-1 || curr.Y >= s.g.Height()-1 {
		return curr
	}
	return curr.Shift(s.t.xy, s.t.yy)
}

// slope = dy/dx; при dx == 0 - максимальное значение.
func slope(dx, dy float64) float64 {
	if dx == 0 {
		return math.MaxFloat64
	}
	return dy / dx
}
