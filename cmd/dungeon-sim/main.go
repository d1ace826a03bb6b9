package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dungeon-core/internal/agent"
	"dungeon-core/internal/engine"
	"dungeon-core/internal/infrastructure/storage"
	"dungeon-core/internal/server"
	"dungeon-core/internal/version"
	"dungeon-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг флагов
	var (
		configPath string
		seed       int64
		ticks      int
		addr       string
		recordDir  string
		replayPath string
		renderEach int
	)
	flag.StringVar(&configPath, "config", "", "Path to YAML simulation config")
	flag.Int64Var(&seed, "seed", 0, "World seed (0 keeps the config/random seed)")
	flag.IntVar(&ticks, "ticks", -1, "Ticks to simulate (0 runs until interrupted, -1 uses the config)")
	flag.StringVar(&addr, "addr", os.Getenv("CD_ADDR"), "Observer HTTP address, e.g. :8080 (empty disables)")
	flag.StringVar(&recordDir, "record", "", "Directory to save a .dcrn run recording to")
	flag.StringVar(&replayPath, "replay", "", "Path to .dcrn recording to re-simulate and verify")
	flag.IntVar(&renderEach, "render", 0, "Print the explored map every N ticks (0 disables)")
	flag.Parse()

	logger.Log.Info("Starting Dungeon Simulation...")
	logger.Log.Info(version.String())

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		if err := verifyReplay(replayPath); err != nil {
			logger.Log.WithError(err).Fatal("Replay verification failed")
		}
		return
	}

	// 2. Конфигурация
	cfg := engine.NewConfig()
	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to load config")
		}
		cfg = loaded
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if ticks >= 0 {
		cfg.Ticks = ticks
	}

	// Переменные окружения важнее конфига
	if os.Getenv("LOG_LEVEL") == "" && os.Getenv("LOG_FORMAT") == "" {
		logger.Configure(cfg.Log.Level, cfg.Log.Format)
	}
	logger.Log.Infof("Using Master Seed: %d", cfg.Seed)

	// 3. Сборка мира
	game, err := engine.Build(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build world")
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Наблюдатели: сервер кадров, HTTP и консольный рендер
	srv := server.New(addr)

	var (
		watcher     *agent.Watcher
		watcherDone chan struct{}
	)
	if renderEach > 0 {
		watcher = agent.NewWatcher(srv.Hub, os.Stdout, renderEach)
		watcherDone = make(chan struct{})
		go func() {
			watcher.Run(ctx)
			close(watcherDone)
		}()
	}

	srv.Publish(game)
	if addr != "" {
		go func() {
			if err := srv.Run(ctx); err != nil {
				logger.Log.WithError(err).Error("Server error")
				stop()
			}
		}()
	}

	onTick := func(stats engine.TickStats) {
		srv.Publish(game)
		logger.Log.WithFields(logrus.Fields{
			"tick":      stats.Tick,
			"acted":     stats.Acted,
			"moved":     stats.Moved,
			"picked_up": stats.PickedUp,
			"triggered": stats.Triggered,
			"removed":   stats.Removed,
		}).Debug("Tick complete")
	}

	// 5. Симуляция
	err = game.Run(ctx, cfg.Ticks, onTick)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.WithError(err).Error("Simulation stopped")
	}

	logger.Log.WithFields(logrus.Fields{
		"turn":   game.World.Turn(),
		"actors": game.World.Len(),
		"holds":  len(game.Player.Holds()),
	}).Info("Shutting down...")

	// Закрытый канал дает наблюдателю дочитать оставшиеся кадры
	if watcher != nil {
		srv.Hub.Unregister(watcher.ID)
		<-watcherDone
	}

	// Сохраняем прогон
	if recordDir != "" {
		saveRecording(game, recordDir)
	}

	logger.Log.Info("Done.")
}

func saveRecording(game *engine.Game, dir string) {
	svc, err := storage.NewRunService(dir)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to prepare recordings directory")
		return
	}
	rec, err := storage.NewRecording(game, time.Now().Unix())
	if err != nil {
		logger.Log.WithError(err).Error("Failed to snapshot run")
		return
	}
	path, err := svc.Save(rec)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to save recording")
		return
	}
	logger.Log.WithField("path", path).Info("Run recorded")
}

// verifyReplay пересобирает мир из записи, прогоняет столько же ходов
// и сверяет статистику каждого хода.
func verifyReplay(path string) error {
	svc := &storage.RunService{}
	rec, err := svc.Load(path)
	if err != nil {
		return err
	}

	game, err := rec.Replay()
	if err != nil {
		return err
	}
	for range rec.Ticks {
		game.Step()
	}

	log := logger.Log.WithFields(logrus.Fields{
		"seed":  rec.Seed,
		"ticks": len(rec.Ticks),
	})
	history := game.Dungeon.History()
	for i, want := range rec.Ticks {
		if history[i] != want {
			return fmt.Errorf("replayed tick %d diverges: recorded %+v, got %+v", want.Tick, want, history[i])
		}
	}
	log.Info("Replay matches the recording")
	return nil
}
