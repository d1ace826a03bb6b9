package geom

import (
	"fmt"
	"math"
)

// Coord - координата клетки на сетке.
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// C - короткий конструктор.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Shift возвращает новую координату со смещением (текущая не меняется).
func (c Coord) Shift(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Add складывает координаты как векторы.
func (c Coord) Add(d Coord) Coord {
	return c.Shift(d.X, d.Y)
}

// DistanceTo возвращает евклидово расстояние (float).
func (c Coord) DistanceTo(other Coord) float64 {
	return math.Sqrt(float64(c.DistanceSquaredTo(other)))
}

// DistanceSquaredTo возвращает квадрат расстояния для сравнения без корней.
func (c Coord) DistanceSquaredTo(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	return dx*dx + dy*dy
}

// ChebyshevTo - число ходов короля между клетками.
func (c Coord) ChebyshevTo(other Coord) int {
	dx, dy := abs(c.X-other.X), abs(c.Y-other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// IsAdjacent возвращает true, если клетка соседняя (включая диагональ).
func (c Coord) IsAdjacent(other Coord) bool {
	return c != other && c.ChebyshevTo(other) <= 1
}

// DirectionTo возвращает шаг (-1/0/1 по каждой оси) в сторону цели.
func (c Coord) DirectionTo(other Coord) (int, int) {
	return sign(other.X - c.X), sign(other.Y - c.Y)
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Directions - восемь соседних направлений.
var Directions = [8]Coord{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Rect - прямоугольник с включительными границами.
type Rect struct {
	Min Coord `json:"min" yaml:"min"`
	Max Coord `json:"max" yaml:"max"`
}

// R строит Rect по двум углам.
func R(x1, y1, x2, y2 int) Rect {
	return Rect{Min: Coord{x1, y1}, Max: Coord{x2, y2}}
}

// Contains проверяет попадание координаты в прямоугольник.
func (r Rect) Contains(c Coord) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X && c.Y >= r.Min.Y && c.Y <= r.Max.Y
}

// Width и Height считают границы включительно.
func (r Rect) Width() int  { return r.Max.X - r.Min.X + 1 }
func (r Rect) Height() int { return r.Max.Y - r.Min.Y + 1 }

// Center возвращает центральную клетку.
func (r Rect) Center() Coord {
	return Coord{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Intersects проверяет пересечение с зазором в одну клетку
// (соседние комнаты тоже считаются пересекающимися).
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X <= other.Max.X+1 && r.Max.X+1 >= other.Min.X &&
		r.Min.Y <= other.Max.Y+1 && r.Max.Y+1 >= other.Min.Y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
