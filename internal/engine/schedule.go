package engine

import "dungeon-core/internal/world"

// Agent - актор, который получает ходы от Dungeon.
type Agent interface {
	world.Actor
	Act(d *Dungeon, w *world.World)
	// Delay - через сколько ходов агент снова получит управление (>= 1).
	Delay() int
}

// schedule хранит темп агента.
type schedule struct {
	delay int
}

func (s schedule) Delay() int {
	if s.delay < 1 {
		return 1
	}
	return s.delay
}
