package engine

import (
	"dungeon-core/internal/dice"
	"dungeon-core/internal/fov"
	"dungeon-core/internal/geom"
	"dungeon-core/internal/world"
	"dungeon-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// TickStats - статистика одного хода.
type TickStats struct {
	Tick      int `json:"tick"`
	Acted     int `json:"acted"`
	Moved     int `json:"moved"`
	PickedUp  int `json:"picked_up"`
	Triggered int `json:"triggered"`
	Removed   int `json:"removed"`
	Actors    int `json:"actors"`
}

// Dungeon - логика хода варианта игры "подземелье" (world.Stepper).
// Агенты ходят по очереди TurnManager: по номеру хода, затем по ULID.
// После всех действий мир убирает истекших акторов.
type Dungeon struct {
	dice   *dice.Dice
	fov    fov.FoV
	player *Creature
	turns  *TurnManager

	stats   TickStats
	history []TickStats

	log *logrus.Entry
}

// NewDungeon создает степпер с источником случайности и алгоритмом обзора.
func NewDungeon(d *dice.Dice, f fov.FoV) *Dungeon {
	return &Dungeon{
		dice:  d,
		fov:   f,
		turns: NewTurnManager(),
		log:   logger.Log.WithField("component", "dungeon"),
	}
}

// SetPlayer задает существо, за которым охотятся монстры.
func (d *Dungeon) SetPlayer(p *Creature) { d.player = p }

// Player возвращает игрока (может быть nil).
func (d *Dungeon) Player() *Creature { return d.player }

// FoV возвращает алгоритм обзора, общий для всех существ.
func (d *Dungeon) FoV() fov.FoV { return d.fov }

// Turns дает доступ к очереди ходов (для отладки).
func (d *Dungeon) Turns() *TurnManager { return d.turns }

// Last возвращает статистику последнего хода.
func (d *Dungeon) Last() TickStats { return d.stats }

// History возвращает статистику всех ходов по порядку.
func (d *Dungeon) History() []TickStats { return d.history }

func (d *Dungeon) Tick(w *world.World) {
	turn := w.Turn()
	d.stats = TickStats{Tick: turn}

	d.turns.Sync(w, turn)
	for {
		item := d.turns.PeekNext()
		if item == nil || item.Priority > turn {
			break
		}

		a := item.Value
		// Агент мог быть удален или подобран действием другого агента.
		if !a.BoundTo(w) || a.Held() || a.Expired() {
			d.turns.Remove(a.ID())
			continue
		}

		a.Act(d, w)
		d.stats.Acted++
		d.turns.UpdatePriority(a.ID(), turn+a.Delay())
	}

	d.stats.Removed = w.RemoveExpired()
	d.stats.Actors = w.Len()
	d.history = append(d.history, d.stats)

	d.log.WithFields(logrus.Fields{
		"tick":      turn,
		"acted":     d.stats.Acted,
		"moved":     d.stats.Moved,
		"picked_up": d.stats.PickedUp,
		"triggered": d.stats.Triggered,
		"removed":   d.stats.Removed,
	}).Debug("Tick complete.")
}

// step двигает существо на соседнюю клетку, если туда можно шагнуть.
func (d *Dungeon) step(w *world.World, c *Creature, to geom.Coord) bool {
	if !c.Pos().IsAdjacent(to) || BlocksMovement(w, to.X, to.Y) {
		return false
	}
	w.MoveActor(c, to.X, to.Y)
	d.stats.Moved++
	return true
}

// wander делает шаг в случайном свободном направлении.
func (d *Dungeon) wander(w *world.World, c *Creature) bool {
	dir := d.dice.NextDir()
	return d.step(w, c, c.Pos().Add(dir))
}

// pickUp подбирает все предметы на клетке существа.
func (d *Dungeon) pickUp(w *world.World, c *Creature) int {
	pos := c.Pos()
	items := w.ActorsAt(pos.X, pos.Y, world.OfKind(world.KindItem))
	for _, a := range items {
		world.Attach(c, a)
		d.stats.PickedUp++

		name := ""
		if it, ok := a.(*Item); ok {
			name = it.Name
		}
		d.log.WithFields(logrus.Fields{
			"creature": c.Name,
			"item":     name,
			"pos":      pos,
		}).Debug("Item picked up.")
	}
	return len(items)
}
