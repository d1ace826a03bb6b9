package path

import (
	"container/heap"
	"math"

	"dungeon-core/internal/geom"
	"dungeon-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Grid - то, что поиску нужно знать о карте.
type Grid interface {
	Width() int
	Height() int
	Passable(x, y int) bool
}

// MaxNodes ограничивает число раскрытых узлов на один поиск.
const MaxNodes = 4096

type step struct {
	d    geom.Coord
	cost float64
}

var steps = [...]step{
	{geom.C(0, -1), 1},
	{geom.C(1, 0), 1},
	{geom.C(0, 1), 1},
	{geom.C(-1, 0), 1},
	{geom.C(1, -1), math.Sqrt2},
	{geom.C(1, 1), math.Sqrt2},
	{geom.C(-1, 1), math.Sqrt2},
	{geom.C(-1, -1), math.Sqrt2},
}

// Find ищет кратчайший 8-связный путь от from до to.
// Путь не включает from и заканчивается в to. Цель может быть непроходимой
// (например, занятой существом) - в нее разрешено "войти" последним шагом.
// Диагональ не срезает углы: обе ортогональные соседние клетки должны быть проходимы.
func Find(g Grid, from, to geom.Coord) ([]geom.Coord, bool) {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "pathfinding",
		"from":      from,
		"to":        to,
	})

	if from == to {
		return nil, true
	}
	if !inBounds(g, to) || !inBounds(g, from) {
		return nil, false
	}

	open := &nodeQueue{}
	heap.Init(open)
	nodes := map[geom.Coord]*node{}

	start := &node{pos: from, h: octile(from, to)}
	start.f = start.h
	nodes[from] = start
	heap.Push(open, start)

	expanded := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if current.pos == to {
			path := reconstruct(current)
			log.WithField("length", len(path)).Debug("Path found.")
			return path, true
		}
		current.closed = true

		expanded++
		if expanded > MaxNodes {
			log.Debug("Search budget exhausted.")
			return nil, false
		}

		for _, s := range steps {
			next := current.pos.Add(s.d)
			if !inBounds(g, next) {
				continue
			}
			if next != to && !g.Passable(next.X, next.Y) {
				continue
			}
			if s.d.X != 0 && s.d.Y != 0 && !canCutDiagonal(g, current.pos, s.d) {
				continue
			}

			cost := current.g + s.cost
			n, seen := nodes[next]
			if seen && (n.closed || cost >= n.g) {
				continue
			}
			if !seen {
				n = &node{pos: next, h: octile(next, to), index: -1}
				nodes[next] = n
			}
			n.parent = current
			n.g = cost
			n.f = cost + n.h
			if n.index >= 0 {
				heap.Fix(open, n.index)
			} else {
				heap.Push(open, n)
			}
		}
	}

	log.Debug("No path.")
	return nil, false
}

// Next возвращает первый шаг пути или false.
func Next(g Grid, from, to geom.Coord) (geom.Coord, bool) {
	p, ok := Find(g, from, to)
	if !ok || len(p) == 0 {
		return from, false
	}
	return p[0], true
}

func canCutDiagonal(g Grid, from, d geom.Coord) bool {
	return g.Passable(from.X+d.X, from.Y) && g.Passable(from.X, from.Y+d.Y)
}

// octile - точная оценка для 8-связной сетки с диагональю sqrt(2).
func octile(a, b geom.Coord) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

func reconstruct(n *node) []geom.Coord {
	var path []geom.Coord
	for ; n.parent != nil; n = n.parent {
		path = append(path, n.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func inBounds(g Grid, c geom.Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.Width() && c.Y < g.Height()
}
