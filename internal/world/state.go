package world

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/bulletbrawl/arena/internal/combat"
	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/config"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	"github.com/bulletbrawl/arena/internal/core/event"
	"github.com/bulletbrawl/arena/internal/data"
)

// MatchState is the outcome of the match so far.
type MatchState struct {
	Over       bool
	Winner     ecs.EntityID
	WinnerSlot int
}

// State is the simulation context every system receives. It is owned by the
// frame loop goroutine; nothing in it is locked.
type State struct {
	ECS    *ecs.World
	Bus    *event.Bus
	Log    *zap.Logger
	Rng    *rand.Rand
	Seed   int64
	Config *config.Config

	Arena    *data.Arena
	Weapons  *data.WeaponTable
	PowerUps *data.PowerUpTable

	// Knockback computes hit magnitudes; replaced by the Lua hook when
	// scripts are loaded.
	Knockback combat.Calculator

	Motions     *ecs.Store[component.Motion]
	Gravity     *ecs.Store[component.Gravity]
	Friction    *ecs.Store[component.Friction]
	Players     *ecs.Store[component.Player]
	Controllers *ecs.Store[component.Controller]
	Buffs       *ecs.Store[component.Buffs]
	Invincible  *ecs.Store[component.Invincibility]
	Platforms   *ecs.Store[component.Platform]
	Guns        *ecs.Store[component.Gun]
	Dropped     *ecs.Store[component.DroppedGun]
	Bullets     *ecs.Store[component.Bullet]
	Pickups     *ecs.Store[component.PowerUp]
	Boxes       *ecs.Store[component.MysteryBox]
	Flashes     *ecs.Store[component.MuzzleFlash]
	Inert       *ecs.Store[component.NonInteractable]

	Collisions Collisions
	Match      MatchState
	Elapsed    time.Duration

	players [2]ecs.EntityID
}

// NewState builds an empty world. A zero cfg.Match.Seed seeds from the clock;
// the chosen seed is kept in State.Seed for replays.
func NewState(cfg *config.Config, weapons *data.WeaponTable, powerUps *data.PowerUpTable, arena *data.Arena, log *zap.Logger) *State {
	seed := cfg.Match.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &State{
		ECS:       ecs.NewWorld(),
		Bus:       event.NewBus(),
		Log:       log,
		Rng:       rand.New(rand.NewSource(seed)),
		Seed:      seed,
		Config:    cfg,
		Arena:     arena,
		Weapons:   weapons,
		PowerUps:  powerUps,
		Knockback: combat.Formula{},

		Motions:     ecs.NewStore[component.Motion](),
		Gravity:     ecs.NewStore[component.Gravity](),
		Friction:    ecs.NewStore[component.Friction](),
		Players:     ecs.NewStore[component.Player](),
		Controllers: ecs.NewStore[component.Controller](),
		Buffs:       ecs.NewStore[component.Buffs](),
		Invincible:  ecs.NewStore[component.Invincibility](),
		Platforms:   ecs.NewStore[component.Platform](),
		Guns:        ecs.NewStore[component.Gun](),
		Dropped:     ecs.NewStore[component.DroppedGun](),
		Bullets:     ecs.NewStore[component.Bullet](),
		Pickups:     ecs.NewStore[component.PowerUp](),
		Boxes:       ecs.NewStore[component.MysteryBox](),
		Flashes:     ecs.NewStore[component.MuzzleFlash](),
		Inert:       ecs.NewStore[component.NonInteractable](),

		players: [2]ecs.EntityID{ecs.None, ecs.None},
	}
	reg := s.ECS.Registry()
	reg.Register(s.Motions)
	reg.Register(s.Gravity)
	reg.Register(s.Friction)
	reg.Register(s.Players)
	reg.Register(s.Controllers)
	reg.Register(s.Buffs)
	reg.Register(s.Invincible)
	reg.Register(s.Platforms)
	reg.Register(s.Guns)
	reg.Register(s.Dropped)
	reg.Register(s.Bullets)
	reg.Register(s.Pickups)
	reg.Register(s.Boxes)
	reg.Register(s.Flashes)
	reg.Register(s.Inert)
	return s
}

// Player returns the entity in slot (0 or 1), or ecs.None.
func (s *State) Player(slot int) ecs.EntityID {
	if slot < 0 || slot >= len(s.players) {
		return ecs.None
	}
	return s.players[slot]
}

// Opponent returns the other slot's player.
func (s *State) Opponent(slot int) ecs.EntityID {
	return s.Player(1 - slot)
}

// BulletSize is the projectile extent.
func (s *State) BulletSize() mgl64.Vec2 {
	return mgl64.Vec2{s.Config.Simulation.BulletWidth, s.Config.Simulation.BulletHeight}
}

// Destroy removes id immediately and announces it. Destroying a dead
// handle is a no-op.
func (s *State) Destroy(id ecs.EntityID, kind string) {
	if !s.ECS.Alive(id) {
		return
	}
	s.ECS.DestroyEntity(id)
	event.Emit(s.Bus, event.EntityDestroyed{Entity: id, Kind: kind})
}

// DestroyLater queues id for the cleanup phase. Use while iterating a store.
func (s *State) DestroyLater(id ecs.EntityID, kind string) {
	if !s.ECS.Alive(id) {
		return
	}
	s.ECS.MarkForDestruction(id)
	event.Emit(s.Bus, event.EntityDestroyed{Entity: id, Kind: kind})
}
