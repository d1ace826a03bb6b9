package engine

import (
	"errors"
	"fmt"

	"dungeon-core/internal/dice"
	"dungeon-core/internal/fov"
	"dungeon-core/internal/geom"
	"dungeon-core/internal/world"
	"dungeon-core/pkg/dungeon"
	"dungeon-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// spawnAttempts - сколько раз искать свободную клетку для одного актора.
const spawnAttempts = 200

// Build создает уровень, игрока, монстров, предметы и ловушки по конфигу.
func Build(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.Log.WithFields(logrus.Fields{
		"component": "world_builder",
		"seed":      cfg.Seed,
	})

	algo, err := fov.New(cfg.FoV.Algorithm, cfg.FoV.Circular)
	if err != nil {
		return nil, err
	}

	// Отдельные потоки случайности для карты и для симуляции:
	// изменение AI не меняет карту при том же сиде.
	master := dice.New(cfg.Seed)
	levelDice := master.Fork()
	simDice := master.Fork()

	stepper := NewDungeon(simDice, algo)
	w := world.New(cfg.Width, cfg.Height, world.WithStepper(stepper), world.WithTerrain(Terrain{}))

	// 1. Карта
	builder := dungeon.NewLevel(w, levelDice).WithParams(cfg.Rooms)
	if cfg.Generator == GeneratorArena {
		builder = builder.AsArena()
	} else {
		builder = builder.WithRooms()
	}
	layout, err := builder.PlaceExit().Build()
	if err != nil {
		return nil, fmt.Errorf("build level: %w", err)
	}

	// 2. Игрок со стартовым кинжалом в инвентаре
	player := NewPlayer(cfg.PlayerVision, algo)
	w.AddActorAt(player, layout.Start)
	world.Attach(player, NewItem(Dagger))
	stepper.SetPlayer(player)

	// 3. Монстры - в комнатах, кроме стартовой
	spawned := 0
	for _, name := range sortedKeys(cfg.Monsters) {
		for i := 0; i < cfg.Monsters[name]; i++ {
			m := NewMonster(MonsterTemplates[name], algo)
			if spawn(w, levelDice, monsterRooms(layout.Rooms), m) {
				spawned++
			} else {
				log.WithField("monster", name).Warn("No free tile for monster, skipping.")
			}
		}
	}

	// 4. Предметы - в любых комнатах
	for _, name := range sortedKeys(cfg.Items) {
		for i := 0; i < cfg.Items[name]; i++ {
			if spawn(w, levelDice, layout.Rooms, NewItem(ItemTemplates[name])) {
				spawned++
			} else {
				log.WithField("item", name).Warn("No free tile for item, skipping.")
			}
		}
	}

	// 5. Ловушки
	for i := 0; i < cfg.Traps; i++ {
		if spawn(w, levelDice, layout.Rooms, NewTrap(cfg.TrapDuration)) {
			spawned++
		} else {
			log.Warn("No free tile for trap, skipping.")
		}
	}

	log.WithFields(logrus.Fields{
		"rooms":   len(layout.Rooms),
		"spawned": spawned,
		"actors":  w.Len(),
		"start":   layout.Start,
	}).Info("World built.")

	return &Game{
		World:   w,
		Dungeon: stepper,
		Player:  player,
		Layout:  layout,
		Config:  cfg,
	}, nil
}

// monsterRooms - все комнаты, кроме первой (если есть из чего выбирать).
func monsterRooms(rooms []geom.Rect) []geom.Rect {
	if len(rooms) > 1 {
		return rooms[1:]
	}
	return rooms
}

// spawn ставит актора на свободную клетку случайной комнаты.
func spawn(w *world.World, d *dice.Dice, rooms []geom.Rect, a world.Actor) bool {
	if len(rooms) == 0 {
		rooms = []geom.Rect{w.Bounds()}
	}
	room := rooms[d.Intn(len(rooms))]
	c, err := w.TryOpenTileIn(d, room, spawnAttempts)
	if errors.Is(err, world.ErrNoOpenTile) {
		return false
	}
	w.AddActorAt(a, c)
	return true
}
