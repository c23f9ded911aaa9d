// Package worldtest builds small deterministic worlds for tests.
package worldtest

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/bulletbrawl/arena/internal/config"
	"github.com/bulletbrawl/arena/internal/data"
	"github.com/bulletbrawl/arena/internal/input"
	"github.com/bulletbrawl/arena/internal/world"
)

var Keys = [2]input.Keymap{
	{Up: "W", Down: "S", Left: "A", Right: "D", Primary: "F", Secondary: "G"},
	{Up: "Up", Down: "Down", Left: "Left", Right: "Right", Primary: "Slash", Secondary: "Period"},
}

// Weapons mirrors the shipped catalog closely enough for gameplay tests.
func Weapons() []data.WeaponEntry {
	return []data.WeaponEntry{
		{
			Name: "Pistol", Starting: true, InfiniteAmmo: true,
			FireRateMs: 400, ReloadMs: 1000, Magazine: 8,
			MuzzleVelocity: 1000, Knockback: 600, Falloff: "dropoff", FalloffCoeff: 1,
			Recoil: 10, RecoilAnimation: 0.5, Width: 30, Height: 30,
		},
		{
			Name: "Submachine Gun", FireRateMs: 100, ReloadMs: 1500, Magazine: 30, Reserve: 30,
			MuzzleVelocity: 1100, Knockback: 800, Falloff: "dropoff", FalloffCoeff: 1.2,
			Recoil: 20, RecoilAnimation: 0.5, Width: 60, Height: 30,
			Modifier: &data.ModifierEntry{JumpForce: 1.1, RunningForce: 1.3, MaxSpeed: 1.3},
		},
		{
			Name: "Sniper Rifle", FireRateMs: 650, ReloadMs: 3500, Magazine: 5, Reserve: 5,
			MuzzleVelocity: 1800, Knockback: 2500, Falloff: "bonus", FalloffCoeff: 1.5,
			Recoil: 150, RecoilAnimation: 0.8, Width: 120, Height: 30,
			Modifier: &data.ModifierEntry{JumpForce: 1, RunningForce: 0.85, MaxSpeed: 0.85},
		},
		{
			Name: "Shotgun", FireRateMs: 750, ReloadMs: 4000, Magazine: 6, Reserve: 6,
			Knockback: 3000, Recoil: 200, RecoilAnimation: 0.8,
			Hitscan: true, HitscanWidth: 90, HitscanHeight: 70, Width: 70, Height: 30,
			Modifier: &data.ModifierEntry{JumpForce: 1, RunningForce: 1.2, MaxSpeed: 1.2},
		},
		{
			Name: "Derringer", FireRateMs: 300, ReloadMs: 500, Magazine: 1, Reserve: 0,
			MuzzleVelocity: 900, Knockback: 400, Falloff: "none", Recoil: 15,
			RecoilAnimation: 0.5, Width: 25, Height: 20,
			Modifier: &data.ModifierEntry{ExtraJumps: 1, JumpForce: 1.2, RunningForce: 1.1, MaxSpeed: 1.1, KnockbackResistance: 0.1},
		},
	}
}

func PowerUps() []data.PowerUpEntry {
	return []data.PowerUpEntry{
		{Name: "Triple Jump", DurationMs: 5000, Modifier: data.ModifierEntry{ExtraJumps: 1, JumpForce: 1, RunningForce: 1, MaxSpeed: 1}},
		{Name: "Speed Boost", DurationMs: 5000, Modifier: data.ModifierEntry{JumpForce: 1, RunningForce: 1.5, MaxSpeed: 1.5}},
	}
}

// Arena is one wide floor with the players far apart.
func Arena() *data.Arena {
	return &data.Arena{
		Width:    1200,
		Height:   800,
		KillY:    1630,
		RespawnY: -600,
		Platforms: []data.PlatformEntry{
			{X: 600, Y: 400, Width: 1000, Height: 20},
		},
		PlayerSpawns: []data.Point{{X: 300, Y: 360}, {X: 900, Y: 360}},
	}
}

// Config is the default tuning with a fixed seed, no equip delay and random
// drops pushed out of reach.
func Config() *config.Config {
	cfg := config.Defaults()
	cfg.Match.Seed = 1
	cfg.Match.EquipDelay = 0
	cfg.Drops.PowerUpInterval = time.Hour
	cfg.Drops.MysteryBoxInterval = time.Hour
	return cfg
}

// NewState builds a world with the fixture tables and no entities.
func NewState(t testing.TB, cfg *config.Config) *world.State {
	t.Helper()
	if cfg == nil {
		cfg = Config()
	}
	weapons, err := data.NewWeaponTable(Weapons())
	if err != nil {
		t.Fatalf("weapons: %v", err)
	}
	powerUps, err := data.NewPowerUpTable(PowerUps())
	if err != nil {
		t.Fatalf("powerups: %v", err)
	}
	return world.NewState(cfg, weapons, powerUps, Arena(), zap.NewNop())
}

// Populate adds the arena platforms and both players.
func Populate(s *world.State) {
	for _, p := range s.Arena.Platforms {
		s.CreatePlatform(p)
	}
	for slot, sp := range s.Arena.PlayerSpawns {
		s.CreatePlayer(slot, mgl64.Vec2{sp.X, sp.Y}, Keys[slot])
	}
}
