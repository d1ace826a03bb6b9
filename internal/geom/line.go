package geom

// Walk проходит по прямой от from до to алгоритмом Брезенхэма
// (только целочисленная арифметика). Стартовая клетка не посещается,
// конечная - посещается. Обход прерывается, если visit вернул false.
func Walk(from, to Coord, visit func(Coord) bool) {
	x0, y0 := from.X, from.Y

	dx := abs(to.X - x0)
	dy := abs(to.Y - y0)
	sx, sy := from.DirectionTo(to)

	err := dx - dy
	for x0 != to.X || y0 != to.Y {
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
		if !visit(Coord{X: x0, Y: y0}) {
			return
		}
	}
}

// Line возвращает все клетки отрезка, включая обе концевые.
func Line(from, to Coord) []Coord {
	line := []Coord{from}
	Walk(from, to, func(c Coord) bool {
		line = append(line, c)
		return true
	})
	return line
}
