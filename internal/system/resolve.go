package system

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/bulletbrawl/arena/internal/combat"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	"github.com/bulletbrawl/arena/internal/core/event"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/world"
)

// ResolveSystem drains the collision lists built by CollisionSystem.
// Pairs addressed to the non-player side are skipped, so each overlap is
// handled once. Phase 4 (Resolve).
type ResolveSystem struct {
	world  *world.State
	landed map[ecs.EntityID]bool
}

func NewResolveSystem(ws *world.State) *ResolveSystem {
	return &ResolveSystem{world: ws, landed: make(map[ecs.EntityID]bool, 2)}
}

func (s *ResolveSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *ResolveSystem) Update(_ time.Duration) {
	s.resolvePlatforms()
	s.resolvePowerUps()
	s.resolveBullets()
	s.resolveMysteryBoxes()
}

func (s *ResolveSystem) resolvePlatforms() {
	ws := s.world
	clear(s.landed)

	for _, pair := range ws.Collisions.Of(world.PlayerPlatform) {
		p, ok := ws.Players.Get(pair.A)
		if !ok {
			continue
		}
		plat, ok := ws.Platforms.Get(pair.B)
		if !ok {
			continue
		}
		pm, ok := ws.Motions.Get(pair.A)
		if !ok {
			continue
		}
		platM, ok := ws.Motions.Get(pair.B)
		if !ok {
			continue
		}
		if pm.Velocity[1] < 0 || !plat.ActiveFor[p.Slot] {
			continue
		}
		top := platM.Position[1] - math.Abs(platM.Scale[1])/2
		pm.Position[1] = top - math.Abs(pm.Scale[1])/2
		pm.Velocity[1] = 0
		p.Grounded = true
		p.JumpRemaining = p.MaxJumps
		s.landed[pair.A] = true
	}

	for _, id := range ws.Players.Entities() {
		if !s.landed[id] {
			p, _ := ws.Players.Get(id)
			p.Grounded = false
		}
	}
}

func (s *ResolveSystem) resolvePowerUps() {
	ws := s.world
	for _, pair := range ws.Collisions.Of(world.PlayerPowerUp) {
		p, ok := ws.Players.Get(pair.A)
		if !ok {
			continue
		}
		pu, ok := ws.Pickups.Get(pair.B)
		if !ok || !ws.Motions.Has(pair.B) {
			continue
		}
		buffs, ok := ws.Buffs.Get(pair.A)
		if !ok {
			continue
		}
		if buffs.Ledger.Grant(&p.Stats, pu.Modifier) {
			event.Emit(ws.Bus, event.StatChanged{Player: pair.A, Modifier: pu.Modifier.Name, Applied: true})
			ws.Log.Debug("power-up applied", zap.Int("slot", p.Slot), zap.String("modifier", pu.Modifier.Name))
		}
		event.Emit(ws.Bus, event.SoundCue{Cue: event.CuePickup, Entity: pair.A})
		ws.Destroy(pair.B, "powerup")
	}
}

func (s *ResolveSystem) resolveBullets() {
	ws := s.world
	for _, pair := range ws.Collisions.Of(world.PlayerBullet) {
		if !ws.Players.Has(pair.A) {
			continue
		}
		ResolveBulletHit(ws, pair.A, pair.B)
	}
}

// ResolveBulletHit applies bullet's knockback to player and destroys the
// bullet. Hits on invincible players are absorbed; a shooter is never hit
// by its own rounds. Reports whether knockback was applied.
func ResolveBulletHit(ws *world.State, player, bullet ecs.EntityID) bool {
	p, ok := ws.Players.Get(player)
	if !ok {
		return false
	}
	b, ok := ws.Bullets.Get(bullet)
	if !ok {
		return false
	}
	if b.Shooter == player {
		return false
	}
	pm, ok := ws.Motions.Get(player)
	if !ok {
		return false
	}
	if ws.Invincible.Has(player) {
		ws.Destroy(bullet, "bullet")
		return false
	}

	ctx := combat.KnockbackContext{
		Base:    b.Knockback,
		Coeff:   b.FalloffCoeff,
		Falloff: b.Falloff,
		Hitscan: b.Hitscan,
	}
	if !b.Hitscan {
		bm, ok := ws.Motions.Get(bullet)
		if !ok {
			return false
		}
		ctx.Distance = math.Abs(bm.Position[0] - b.SpawnX)
	}
	magnitude := ws.Knockback.Knockback(ctx)
	pm.Velocity[0] += combat.Impulse(magnitude, b.Direction, p.KnockbackResistance)

	event.Emit(ws.Bus, event.SoundCue{Cue: event.CueHit, Weapon: b.Weapon, Entity: player})
	ws.Destroy(bullet, "bullet")
	return true
}

func (s *ResolveSystem) resolveMysteryBoxes() {
	ws := s.world
	for _, pair := range ws.Collisions.Of(world.PlayerMysteryBox) {
		p, ok := ws.Players.Get(pair.A)
		if !ok {
			continue
		}
		box, ok := ws.Boxes.Get(pair.B)
		if !ok || !ws.Motions.Has(pair.B) {
			continue
		}
		entry := ws.Weapons.Get(box.Weapon)
		if entry == nil {
			ws.Log.Warn("mystery box holds unknown weapon", zap.String("weapon", box.Weapon))
			ws.Destroy(pair.B, "mystery_box")
			continue
		}
		ws.EquipWeapon(pair.A, entry)
		event.Emit(ws.Bus, event.SoundCue{Cue: event.CuePickup, Weapon: entry.Name, Entity: pair.A})
		ws.Log.Debug("weapon picked up", zap.Int("slot", p.Slot), zap.String("weapon", entry.Name))
		ws.Destroy(pair.B, "mystery_box")
	}
}
