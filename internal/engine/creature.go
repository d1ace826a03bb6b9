package engine

import (
	"dungeon-core/internal/fov"
	"dungeon-core/internal/geom"
	"dungeon-core/internal/path"
	"dungeon-core/internal/world"

	"github.com/zyedidia/generic/mapset"
)

// Creature - игрок или монстр. Видит мир через FoV с собственным радиусом.
type Creature struct {
	*world.Body
	schedule

	Name   string
	Vision int

	fov fov.FoV

	// Кэш обзора: пересчитывается, только когда существо сдвинулось.
	view      mapset.Set[geom.Coord]
	viewFrom  geom.Coord
	viewValid bool

	target    geom.Coord
	hasTarget bool

	stunned int
}

// NewPlayer создает существо игрока.
func NewPlayer(vision int, f fov.FoV) *Creature {
	return &Creature{
		Body:     world.NewBody(world.KindCreature|world.KindPlayer, glyphPlayer),
		schedule: schedule{delay: 1},
		Name:     "player",
		Vision:   vision,
		fov:      f,
	}
}

// NewMonster создает монстра из шаблона.
func NewMonster(t MonsterTemplate, f fov.FoV) *Creature {
	return &Creature{
		Body:     world.NewBody(world.KindCreature|world.KindMonster, t.Glyph),
		schedule: schedule{delay: t.Delay},
		Name:     t.Name,
		Vision:   t.Vision,
		fov:      f,
	}
}

// IsPlayer - существо под "управлением" игрока.
func (c *Creature) IsPlayer() bool { return c.Kind().Has(world.KindPlayer) }

// View возвращает клетки, видимые существом сейчас. Пустой набор, если
// существо не стоит на карте.
func (c *Creature) View() mapset.Set[geom.Coord] {
	w := c.World()
	if w == nil || c.Held() {
		return mapset.New[geom.Coord]()
	}
	if !c.viewValid || c.viewFrom != c.Pos() {
		pos := c.Pos()
		c.view = c.fov.CalcFoV(w, pos.X, pos.Y, c.Vision)
		c.viewFrom, c.viewValid = pos, true
	}
	return c.view
}

// Target возвращает текущую цель преследования.
func (c *Creature) Target() (geom.Coord, bool) { return c.target, c.hasTarget }

// Stun пропускает n следующих действий.
func (c *Creature) Stun(n int) {
	if n > c.stunned {
		c.stunned = n
	}
}

// Stunned - сколько действий еще будет пропущено.
func (c *Creature) Stunned() int { return c.stunned }

func (c *Creature) Act(d *Dungeon, w *world.World) {
	if c.stunned > 0 {
		c.stunned--
		return
	}
	if c.IsPlayer() {
		c.explore(d, w)
		return
	}
	c.hunt(d, w)
}

// hunt - поведение монстра: запомнить игрока, если он виден, идти к
// последнему известному месту по A*, иначе бродить.
func (c *Creature) hunt(d *Dungeon, w *world.World) {
	if p := d.Player(); p != nil && c.Sees(w, p) {
		c.target, c.hasTarget = p.Pos(), true
	}

	if c.hasTarget && c.Pos() != c.target {
		if next, ok := path.Next(mobility{w}, c.Pos(), c.target); ok {
			if d.step(w, c, next) {
				return
			}
			// Цель заняла клетку: ждем рядом.
			if next == c.target {
				return
			}
		}
	}

	c.hasTarget = false
	d.wander(w, c)
}

// explore - поведение игрока в безголовой симуляции: идти к ближайшему
// видимому предмету, подбирать его, иначе бродить.
func (c *Creature) explore(d *Dungeon, w *world.World) {
	if d.pickUp(w, c) > 0 {
		return
	}
	if item := c.nearestVisible(w, world.OfKind(world.KindItem)); item != nil {
		if next, ok := path.Next(mobility{w}, c.Pos(), item.Pos()); ok && d.step(w, c, next) {
			d.pickUp(w, c)
			return
		}
	}
	if d.wander(w, c) {
		d.pickUp(w, c)
	}
}

// Sees - актор в поле зрения и прямая линия до него не перекрыта.
// Обзор по клеткам бывает шире прямой видимости за углами.
func (c *Creature) Sees(w *world.World, a world.Actor) bool {
	if !a.BoundTo(w) || a.Held() {
		return false
	}
	return fov.Visible(c.View(), a.Pos()) && HasLineOfSight(w, c.Pos(), a.Pos())
}

func (c *Creature) nearestVisible(w *world.World, f world.Filter) world.Actor {
	pos := c.Pos()
	var best world.Actor
	bestDist := 0
	for _, a := range w.Actors(f) {
		if a.Held() || !fov.Visible(c.View(), a.Pos()) {
			continue
		}
		dist := pos.DistanceSquaredTo(a.Pos())
		if best == nil || dist < bestDist || (dist == bestDist && a.ID().Compare(best.ID()) < 0) {
			best, bestDist = a, dist
		}
	}
	return best
}
