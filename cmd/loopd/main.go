package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/l1jgo/engine/internal/component"
	"github.com/l1jgo/engine/internal/config"
	"github.com/l1jgo/engine/internal/core/command"
	"github.com/l1jgo/engine/internal/core/ecs"
	"github.com/l1jgo/engine/internal/core/event"
	coresys "github.com/l1jgo/engine/internal/core/system"
	"github.com/l1jgo/engine/internal/data"
	"github.com/l1jgo/engine/internal/gamestate"
	"github.com/l1jgo/engine/internal/persist"
	"github.com/l1jgo/engine/internal/scripting"
	"github.com/l1jgo/engine/internal/spawn"
	"github.com/l1jgo/engine/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	stateBoot    = "boot"
	stateRunning = "running"
	stateOver    = "over"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("LOOPD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Core: world, buses, command buffer
	world := ecs.NewWorld()
	stores := component.NewStores(world)
	scopes := event.NewScopes()
	reserveEvents(scopes, cfg.Loop.Reserve)
	commands := command.NewBuffer(log)

	var opts []coresys.Option
	if cfg.Loop.FlushPolicy == config.FlushPerFrame {
		opts = append(opts, coresys.WithFlushPolicy(coresys.FlushPerFrame))
	}

	// 4. Optional flush journal
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}

		journal := persist.NewJournal(persist.NewJournalRepo(db), cfg.Database.JournalBatch, log)
		defer func() {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			if err := journal.Close(closeCtx); err != nil {
				log.Error("journal close", zap.Error(err))
			}
		}()
		opts = append(opts, coresys.WithFlushObserver(journal))
		log.Info("flush journal enabled", zap.Stringer("run_id", journal.RunID()))
	}

	runner := coresys.NewRunner(world, scopes, commands, log, opts...)
	ctx := runner.Context()

	// 5. Dispatchers
	spawner := spawn.NewManager(stores, coresys.FrameSink[event.EntitySpawned](ctx), log)
	spawner.Register(commands)

	states, err := gamestate.NewManager(stateBoot, []string{stateBoot, stateRunning, stateOver},
		coresys.FrameSink[event.StateChanged](ctx), log)
	if err != nil {
		return fmt.Errorf("game state: %w", err)
	}
	states.Register(commands)

	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, world, coresys.FrameSink[event.ScriptEvent](ctx), log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		engine.Register(commands)
		engine.SubscribeSpawned(ctx.FrameBus())
		event.Subscribe(ctx.FrameBus(), func(ev event.StateChanged) {
			command.Add(commands, scripting.ScriptCommand{Func: "on_state", Args: []any{ev.From, ev.To}})
		})
		event.Subscribe(ctx.FrameBus(), func(ev event.ScriptEvent) {
			log.Info("script event", zap.String("name", ev.Name), zap.Any("payload", ev.Payload))
		})
	}

	// 6. Data
	spawnList, err := data.LoadSpawnList(cfg.Data.SpawnList)
	if err != nil {
		return fmt.Errorf("spawn list: %w", err)
	}
	log.Info("spawn list loaded", zap.Int("entries", spawnList.Count()))

	// 7. Systems
	feed := system.NewKillFeedSystem(coresys.FrameSource[event.EntityDied](ctx), coresys.FrameSource[event.Collision](ctx), log)
	runner.Register(system.NewSpawnSystem(spawnList, commands))
	runner.Register(feed)
	runner.Register(system.NewEventDispatchSystem(ctx.FrameBus()))
	runner.Register(system.NewMovementSystem(stores))
	runner.Register(system.NewCollisionSystem(stores, coresys.PassSink[event.Collision](ctx), coresys.FrameSink[event.Collision](ctx)))
	runner.Register(system.NewDamageSystem(stores, coresys.PassSource[event.Collision](ctx), coresys.PhaseSink[event.EntityDied](ctx)))
	runner.Register(system.NewDeathSystem(coresys.PhaseSource[event.EntityDied](ctx), coresys.FrameSink[event.EntityDied](ctx), commands))
	runner.Register(system.NewCleanupSystem(world, log))
	runner.Register(states)

	command.Add(commands, gamestate.TransitionCommand{To: stateRunning})

	// 8. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Loop.TickRate)
	defer ticker.Stop()

	log.Info("game loop started",
		zap.Duration("tick", cfg.Loop.TickRate),
		zap.String("flush_policy", string(cfg.Loop.FlushPolicy)),
	)

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Loop.TickRate)

			if states.Current() == stateRunning && spawnList.Done() && world.EntityCount() == 0 {
				command.Add(commands, gamestate.TransitionCommand{To: stateOver})
			}
			if states.Current() == stateOver {
				log.Info("simulation over", zap.Uint64("frames", runner.Frame()), zap.Int("kills", feed.Kills()))
				return nil
			}
			if cfg.Loop.MaxFrames > 0 && runner.Frame() >= uint64(cfg.Loop.MaxFrames) {
				log.Info("frame limit reached", zap.Uint64("frames", runner.Frame()), zap.Int("kills", feed.Kills()))
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// reserveEvents pre-sizes the engine's own event buffers.
func reserveEvents(s *event.Scopes, n int) {
	if n == 0 {
		return
	}
	event.Reserve[event.Collision](s.Pass, n)
	event.Reserve[event.EntityDied](s.Phase, n)
	event.Reserve[event.Collision](s.Frame, n)
	event.Reserve[event.EntityDied](s.Frame, n)
	event.Reserve[event.EntitySpawned](s.Frame, n)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console", "":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	default:
		return nil, errors.New("logging.format must be json or console")
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
