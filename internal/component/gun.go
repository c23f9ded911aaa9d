package component

import (
	"github.com/bulletbrawl/arena/internal/combat"
	"github.com/bulletbrawl/arena/internal/core/clock"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	"github.com/bulletbrawl/arena/internal/modifier"
)

// Gun is a held weapon. Timers count milliseconds of game time; the *Ms
// fields are the configured lengths they restart from.
type Gun struct {
	Name  string
	Owner ecs.EntityID

	FireRate   clock.Countdown
	FireRateMs float64
	Reload     clock.Countdown
	ReloadMs   float64
	Reloading  bool
	Equip      clock.Countdown

	MagazineSize int
	MagazineAmmo int
	ReserveAmmo  int
	InfiniteAmmo bool

	MuzzleVelocity float64
	Knockback      float64
	Falloff        combat.Falloff
	FalloffCoeff   float64

	Recoil          float64
	RecoilAnimation float64 // fraction of the cooldown without animation
	RecoilAngle     float64
	RecoilOffset    float64

	Hitscan       bool
	HitscanWidth  float64
	HitscanHeight float64

	Modifier modifier.StatModifier
}

// Ammo is the total rounds left including the magazine.
func (g *Gun) Ammo() int { return g.MagazineAmmo + g.ReserveAmmo }

// Bullet is a projectile or a transient hitscan hit.
type Bullet struct {
	Shooter      ecs.EntityID
	Weapon       string
	SpawnX       float64
	Direction    float64 // +1 right, -1 left
	Hitscan      bool
	Lobbed       bool
	Knockback    float64
	Falloff      combat.Falloff
	FalloffCoeff float64
}

// MuzzleFlash is a short-lived visual marker at the muzzle.
type MuzzleFlash struct {
	Timer clock.Countdown
}

// NonInteractable entities are skipped by collision detection.
type NonInteractable struct{}

// DroppedGun is an emptied gun left falling through the arena.
type DroppedGun struct {
	Weapon string
}
