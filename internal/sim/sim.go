// Package sim is the frame-stepped facade over the world and its systems:
// create a match, feed intents, step, read outcomes.
package sim

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bulletbrawl/arena/internal/combat"
	"github.com/bulletbrawl/arena/internal/config"
	"github.com/bulletbrawl/arena/internal/core/event"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/data"
	"github.com/bulletbrawl/arena/internal/input"
	"github.com/bulletbrawl/arena/internal/system"
	"github.com/bulletbrawl/arena/internal/world"
)

// Tables are the static data a match is built from.
type Tables struct {
	Weapons  *data.WeaponTable
	PowerUps *data.PowerUpTable
	Arena    *data.Arena
	Keymaps  [2]input.Keymap
}

// LoadTables reads every data file named in cfg.Data.
func LoadTables(cfg config.DataConfig) (*Tables, error) {
	weapons, err := data.LoadWeaponTable(cfg.Weapons)
	if err != nil {
		return nil, fmt.Errorf("load weapons %s: %w", cfg.Weapons, err)
	}
	powerUps, err := data.LoadPowerUpTable(cfg.PowerUps)
	if err != nil {
		return nil, fmt.Errorf("load powerups %s: %w", cfg.PowerUps, err)
	}
	arena, err := data.LoadArena(cfg.Arena)
	if err != nil {
		return nil, fmt.Errorf("load arena %s: %w", cfg.Arena, err)
	}
	keys, err := data.LoadKeymaps(cfg.Keymaps)
	if err != nil {
		return nil, fmt.Errorf("load keymaps %s: %w", cfg.Keymaps, err)
	}
	return &Tables{Weapons: weapons, PowerUps: powerUps, Arena: arena, Keymaps: keys}, nil
}

type Options struct {
	Config *config.Config
	Tables *Tables
	Log    *zap.Logger
	// Knockback overrides the built-in formula (e.g. the Lua hook).
	Knockback combat.Calculator
	Sinks     []system.SnapshotSink
}

// Result summarises a finished or abandoned match.
type Result struct {
	ID         uuid.UUID
	Seed       int64
	Frames     uint64
	Duration   time.Duration
	Over       bool
	WinnerSlot int // -1 when undecided
	Lives      [2]int
}

// Simulation owns one match. It is not safe for concurrent use.
type Simulation struct {
	id     uuid.UUID
	world  *world.State
	runner *coresys.Runner
	log    *zap.Logger
	closed bool
}

// New builds the arena, spawns both players and wires the systems.
func New(opts Options) (*Simulation, error) {
	if opts.Config == nil || opts.Tables == nil {
		return nil, fmt.Errorf("sim: config and tables are required")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	t := opts.Tables
	id := uuid.New()
	log = log.With(zap.String("match", id.String()))

	ws := world.NewState(opts.Config, t.Weapons, t.PowerUps, t.Arena, log)
	if opts.Knockback != nil {
		ws.Knockback = opts.Knockback
	}
	for _, p := range t.Arena.Platforms {
		ws.CreatePlatform(p)
	}
	for slot, sp := range t.Arena.PlayerSpawns {
		ws.CreatePlayer(slot, mgl64.Vec2{sp.X, sp.Y}, t.Keymaps[slot])
	}

	r := coresys.NewRunner()
	system.RegisterAll(r, ws, opts.Sinks...)

	log.Info("match created",
		zap.Int64("seed", ws.Seed),
		zap.Int("platforms", len(t.Arena.Platforms)),
		zap.Int("weapons", t.Weapons.Count()))
	return &Simulation{id: id, world: ws, runner: r, log: log}, nil
}

func (s *Simulation) ID() uuid.UUID { return s.id }

// SetIntent replaces the controller intent of the player in slot.
func (s *Simulation) SetIntent(slot int, in input.Intent) error {
	c, ok := s.world.Controllers.Get(s.world.Player(slot))
	if !ok {
		return fmt.Errorf("sim: no player in slot %d", slot)
	}
	c.Intent = in
	return nil
}

// SetKeys derives both players' intents from a key predicate using their
// keymaps.
func (s *Simulation) SetKeys(pressed func(slot int, key string) bool) {
	for slot := 0; slot < 2; slot++ {
		c, ok := s.world.Controllers.Get(s.world.Player(slot))
		if !ok {
			continue
		}
		c.Intent = c.Keymap.Intent(func(key string) bool { return pressed(slot, key) })
	}
}

// Step advances one frame. Once the match is over or closed it does
// nothing.
func (s *Simulation) Step(dt time.Duration) {
	if s.closed || s.world.Match.Over || dt <= 0 {
		return
	}
	s.world.Elapsed += dt
	s.runner.Tick(dt)
}

func (s *Simulation) Over() bool { return s.world.Match.Over }

// Winner returns the winning slot once the match is over.
func (s *Simulation) Winner() (int, bool) {
	if !s.world.Match.Over {
		return -1, false
	}
	return s.world.Match.WinnerSlot, true
}

func (s *Simulation) Snapshot() world.Snapshot { return s.world.Snapshot(s.runner.Frames()) }

func (s *Simulation) Bus() *event.Bus { return s.world.Bus }

// State exposes the world for collaborators that read components directly.
func (s *Simulation) State() *world.State { return s.world }

func (s *Simulation) Frames() uint64 { return s.runner.Frames() }

func (s *Simulation) Result() Result {
	r := Result{
		ID:         s.id,
		Seed:       s.world.Seed,
		Frames:     s.runner.Frames(),
		Duration:   s.world.Elapsed,
		Over:       s.world.Match.Over,
		WinnerSlot: -1,
	}
	if r.Over {
		r.WinnerSlot = s.world.Match.WinnerSlot
	}
	for slot := 0; slot < 2; slot++ {
		if p, ok := s.world.Players.Get(s.world.Player(slot)); ok {
			r.Lives[slot] = p.Lives
		}
	}
	return r
}

// Close delivers the final frame's events and stops the simulation.
// Calling it twice is harmless.
func (s *Simulation) Close() Result {
	if !s.closed {
		s.closed = true
		s.world.Bus.Flush()
		s.log.Info("match closed",
			zap.Uint64("frames", s.runner.Frames()),
			zap.Duration("elapsed", s.world.Elapsed),
			zap.Bool("over", s.world.Match.Over))
	}
	return s.Result()
}
