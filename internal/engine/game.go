package engine

import (
	"context"
	"time"

	"dungeon-core/internal/geom"
	"dungeon-core/internal/world"
	"dungeon-core/pkg/dungeon"
	"dungeon-core/pkg/logger"

	"github.com/zyedidia/generic/mapset"
)

// Game - собранная симуляция: мир, его степпер и игрок.
type Game struct {
	World   *world.World
	Dungeon *Dungeon
	Player  *Creature
	Layout  dungeon.Layout
	Config  Config
}

// Step выполняет один ход мира и возвращает его статистику.
func (g *Game) Step() TickStats {
	g.World.Tick()
	return g.Dungeon.Last()
}

// PlayerView - клетки, видимые игроком сейчас.
func (g *Game) PlayerView() mapset.Set[geom.Coord] {
	return g.Player.View()
}

// Run выполняет ticks ходов (0 - бесконечно), вызывая onTick после каждого.
// Между ходами выдерживается Config.TickDelay. Возвращает ctx.Err() при отмене.
func (g *Game) Run(ctx context.Context, ticks int, onTick func(TickStats)) error {
	logger.Log.WithField("ticks", ticks).Info("Simulation loop started")

	var ticker *time.Ticker
	if g.Config.TickDelay > 0 {
		ticker = time.NewTicker(g.Config.TickDelay)
		defer ticker.Stop()
	}

	for i := 0; ticks == 0 || i < ticks; i++ {
		select {
		case <-ctx.Done():
			logger.Log.WithField("turn", g.World.Turn()).Info("Simulation loop cancelled")
			return ctx.Err()
		default:
		}

		stats := g.Step()
		if onTick != nil {
			onTick(stats)
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}

	logger.Log.WithField("turn", g.World.Turn()).Info("Simulation loop finished")
	return nil
}
