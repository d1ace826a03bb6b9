package engine

import (
	"dungeon-core/internal/world"

	"github.com/sirupsen/logrus"
)

// Trap - эффект на клетке. Срабатывает на первое существо, вставшее на
// него, оглушает его на Duration действий, отсчитывает столько же ходов
// и исчезает.
type Trap struct {
	*world.Body
	schedule

	Duration  int
	remaining int
	sprung    bool
}

// NewTrap создает взведенную ловушку.
func NewTrap(duration int) *Trap {
	return &Trap{
		Body:     world.NewBody(world.KindEffect, glyphTrapArmed),
		schedule: schedule{delay: 1},
		Duration: duration,
	}
}

// Sprung сообщает, сработала ли ловушка.
func (t *Trap) Sprung() bool { return t.sprung }

// Remaining - сколько ходов осталось до исчезновения сработавшей ловушки.
func (t *Trap) Remaining() int { return t.remaining }

func (t *Trap) Act(d *Dungeon, w *world.World) {
	if t.sprung {
		t.remaining--
		if t.remaining <= 0 {
			t.Expire()
		}
		return
	}

	pos := t.Pos()
	victim, ok := w.ActorAt(pos.X, pos.Y, world.OfKind(world.KindCreature)).(*Creature)
	if !ok {
		return
	}

	t.sprung = true
	t.remaining = t.Duration
	t.SetLook(glyphTrapSprung)
	victim.Stun(t.Duration)
	d.stats.Triggered++

	d.log.WithFields(logrus.Fields{
		"trap_id":   t.ID().String(),
		"victim":    victim.Name,
		"victim_id": victim.ID().String(),
		"pos":       pos,
	}).Info("Trap sprung.")

	if t.remaining <= 0 {
		t.Expire()
	}
}
