package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bulletbrawl/arena/internal/config"
	"github.com/bulletbrawl/arena/internal/core/event"
	"github.com/bulletbrawl/arena/internal/input"
	"github.com/bulletbrawl/arena/internal/net"
	"github.com/bulletbrawl/arena/internal/persist"
	"github.com/bulletbrawl/arena/internal/scripting"
	"github.com/bulletbrawl/arena/internal/sim"
	"github.com/bulletbrawl/arena/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Match driver ──────────────────────────────────────────────────

func run() error {
	cfgPath := "config/sim.toml"
	if p := os.Getenv("BRAWLSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printSection("Data")
	tables, err := sim.LoadTables(cfg.Data)
	if err != nil {
		return err
	}
	printStat("Weapons", tables.Weapons.Count())
	printStat("Power-ups", tables.PowerUps.Count())
	printStat("Platforms", len(tables.Arena.Platforms))

	script, err := input.LoadScript(cfg.Data.Script)
	if err != nil {
		return fmt.Errorf("load input script %s: %w", cfg.Data.Script, err)
	}
	printOK(fmt.Sprintf("Input script (%s)", script.Length()))

	engine, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer engine.Close()
	if engine.HasHook("calc_knockback") {
		printOK("Lua knockback hook")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var matches *persist.MatchRepo
	if cfg.Database.Enabled {
		printSection("Database")
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		matches = persist.NewMatchRepo(db)
		printOK("PostgreSQL connected, migrations applied")
	}

	var sinks []system.SnapshotSink
	var spectators *net.Server
	if cfg.Spectator.Enabled {
		spectators, err = net.NewServer(cfg.Spectator, log)
		if err != nil {
			return fmt.Errorf("spectator server: %w", err)
		}
		go spectators.Serve()
		sinks = append(sinks, spectators)
		printOK(fmt.Sprintf("Spectators on ws://%s%s", spectators.Addr(), cfg.Spectator.Path))
	}
	fmt.Println()

	match, err := sim.New(sim.Options{
		Config:    cfg,
		Tables:    tables,
		Log:       log,
		Knockback: engine,
		Sinks:     sinks,
	})
	if err != nil {
		return err
	}

	var losses []persist.LifeLossRow
	event.Subscribe(match.Bus(), func(ev event.LifeLost) {
		losses = append(losses, persist.LifeLossRow{
			Slot:      int16(ev.Slot),
			Elapsed:   ev.Elapsed,
			Remaining: int16(ev.Remaining),
		})
	})

	result := loop(match, script, cfg, spectators != nil, log)

	if spectators != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		if err := spectators.Shutdown(shutdownCtx); err != nil {
			log.Warn("spectator shutdown", zap.Error(err))
		}
		stop()
	}

	printSection("Result")
	printStat("Frames", int(result.Frames))
	printStat("Lives P1", result.Lives[0])
	printStat("Lives P2", result.Lives[1])
	if result.Over {
		printOK(fmt.Sprintf("Player %d wins", result.WinnerSlot+1))
	} else {
		printOK("No winner before the time limit")
	}

	if matches != nil {
		row := persist.MatchRow{
			ID:         result.ID,
			Seed:       result.Seed,
			Frames:     int64(result.Frames),
			Duration:   result.Duration,
			Finished:   result.Over,
			WinnerSlot: persist.WinnerSlot(result.WinnerSlot),
			Lives:      [2]int16{int16(result.Lives[0]), int16(result.Lives[1])},
		}
		recordCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		if err := matches.Record(recordCtx, row, losses); err != nil {
			return fmt.Errorf("record match: %w", err)
		}
		printOK("Match recorded")
	}
	return nil
}

// loop steps the match until someone wins, the time limit passes or a
// shutdown signal arrives. With spectators attached it runs in real time;
// otherwise it runs as fast as it can.
func loop(match *sim.Simulation, script *input.Script, cfg *config.Config, realtime bool, log *zap.Logger) sim.Result {
	dt := cfg.Simulation.TickRate
	limit := cfg.Match.Duration

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	var tick <-chan time.Time
	if realtime {
		ticker := time.NewTicker(dt)
		defer ticker.Stop()
		tick = ticker.C
	}

	step := func() bool {
		at := match.State().Elapsed
		match.SetKeys(func(slot int, key string) bool {
			return script.Pressed(slot, at)(key)
		})
		match.Step(dt)
		return !match.Over() && match.State().Elapsed < limit
	}

	for {
		if tick != nil {
			select {
			case <-tick:
			case sig := <-shutdownCh:
				log.Info("shutdown signal", zap.String("signal", sig.String()))
				return match.Close()
			}
		} else {
			select {
			case sig := <-shutdownCh:
				log.Info("shutdown signal", zap.String("signal", sig.String()))
				return match.Close()
			default:
			}
		}
		if !step() {
			return match.Close()
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
