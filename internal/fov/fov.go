package fov

import (
	"errors"
	"fmt"
	"strings"

	"dungeon-core/internal/geom"
	"dungeon-core/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// ErrGeometry - внутренняя ошибка преобразования октантов (баг реализации).
var ErrGeometry = errors.New("geometry argument error")

// ErrUnknownAlgorithm возвращает New для неизвестного имени алгоритма.
var ErrUnknownAlgorithm = errors.New("unknown fov algorithm")

// Grid - то, что нужно алгоритмам от мира: размеры и проходимость.
// *world.World ему удовлетворяет.
type Grid interface {
	Width() int
	Height() int
	Passable(x, y int) bool
}

// FoV вычисляет множество клеток, видимых из (x, y) в радиусе r.
// Результат всегда содержит начало координат.
type FoV interface {
	CalcFoV(g Grid, x, y, r int) mapset.Set[geom.Coord]
}

// Имена алгоритмов для конфигурации.
const (
	AlgorithmRaycast    = "raycast"
	AlgorithmShadowcast = "shadowcast"
)

// New создает алгоритм по имени.
func New(name string, circular bool) (FoV, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case AlgorithmRaycast:
		return NewRaycast(circular), nil
	case AlgorithmShadowcast, "":
		return NewShadowcast(circular), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// FilterCircle убирает из набора клетки дальше r от origin (по Евклиду).
// Превращает квадратный обзор в круглый.
func FilterCircle(set mapset.Set[geom.Coord], origin geom.Coord, r int) {
	var outside []geom.Coord
	set.Each(func(c geom.Coord) {
		if c.DistanceSquaredTo(origin) > r*r {
			outside = append(outside, c)
		}
	})
	for _, c := range outside {
		set.Remove(c)
	}
}

// Visible сообщает, входит ли клетка в результат CalcFoV.
func Visible(set mapset.Set[geom.Coord], c geom.Coord) bool {
	return set.Has(c)
}

// Coords возвращает содержимое набора срезом (порядок не определен).
func Coords(set mapset.Set[geom.Coord]) []geom.Coord {
	list := make([]geom.Coord, 0, set.Size())
	set.Each(func(c geom.Coord) {
		list = append(list, c)
	})
	return list
}

// base - общее для обоих алгоритмов: круговая маска и логирование.
type base struct {
	name     string
	circular bool
}

func (b base) logger(origin geom.Coord, r int) *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component":  "fov_system",
		"algorithm":  b.name,
		"origin_pos": origin,
		"radius":     r,
	})
}

func (b base) finish(set mapset.Set[geom.Coord], origin geom.Coord, r int, log *logrus.Entry) mapset.Set[geom.Coord] {
	if b.circular {
		FilterCircle(set, origin, r)
	}
	log.WithField("visible_tiles", set.Size()).Debug("FOV calculation complete.")
	return set
}

func inBounds(g Grid, c geom.Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.Width() && c.Y < g.Height()
}
