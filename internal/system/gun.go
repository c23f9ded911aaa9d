package system

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/bulletbrawl/arena/internal/combat"
	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	"github.com/bulletbrawl/arena/internal/core/event"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/physics"
	"github.com/bulletbrawl/arena/internal/world"
)

// GunSystem runs every held gun's state machine: cooldown, reload, firing,
// hitscan and dropping an emptied gun. It also expires muzzle flashes.
// Phase 5 (Weapon).
type GunSystem struct {
	world *world.State
}

func NewGunSystem(ws *world.State) *GunSystem {
	return &GunSystem{world: ws}
}

func (s *GunSystem) Phase() coresys.Phase { return coresys.PhaseWeapon }

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func (s *GunSystem) Update(dt time.Duration) {
	ws := s.world

	ws.Flashes.Each(func(id ecs.EntityID, f *component.MuzzleFlash) {
		if f.Timer.Tick(dt) {
			ws.DestroyLater(id, "muzzle_flash")
		}
	})

	// guns created while firing (a re-issued pistol) wait for next frame
	for _, id := range ws.Guns.Entities() {
		g, ok := ws.Guns.Get(id)
		if !ok {
			continue
		}
		gm, ok1 := ws.Motions.Get(id)
		p, ok2 := ws.Players.Get(g.Owner)
		pm, ok3 := ws.Motions.Get(g.Owner)
		ctrl, ok4 := ws.Controllers.Get(g.Owner)
		if !ecs.Assert(ok1 && ok2 && ok3 && ok4, "gun %d has no live owner %d", id, g.Owner) {
			ws.Destroy(id, "gun")
			continue
		}
		s.step(id, g, gm, p, pm, ctrl.Intent.FireHeld, ctrl.Intent.FireProjectile, dt)
	}
}

func (s *GunSystem) step(id ecs.EntityID, g *component.Gun, gm *component.Motion, p *component.Player, pm *component.Motion, fire, lob bool, dt time.Duration) {
	ws := s.world

	gm.Position = world.GunAnchor(pm, p.FacingRight)
	gm.Scale[0] = math.Abs(gm.Scale[0])
	if !p.FacingRight {
		gm.Scale[0] = -gm.Scale[0]
	}
	gm.Angle = 0
	g.RecoilAngle, g.RecoilOffset = 0, 0

	g.Equip.Tick(dt)
	g.FireRate.Tick(dt)

	if g.Reloading {
		if !g.Reload.Tick(dt) {
			s.animateRecoil(g, gm, p.FacingRight)
			return
		}
		g.Reloading = false
		g.FireRate.Clear()
		refill(g)
	}

	if g.FireRate.Active() {
		s.animateRecoil(g, gm, p.FacingRight)
		return
	}
	if !fire && !lob {
		return
	}
	if g.Equip.Active() {
		return
	}
	if g.MagazineAmmo > 0 {
		s.fire(id, g, gm, p, pm, lob && !fire)
		if g.MagazineAmmo > 0 {
			return
		}
	}

	switch {
	case g.ReserveAmmo > 0 || g.InfiniteAmmo:
		g.Reloading = true
		g.Reload.Set(millis(g.ReloadMs))
		event.Emit(ws.Bus, event.SoundCue{Cue: event.CueReload, Weapon: g.Name, Entity: g.Owner})
	default:
		ws.DropGun(g.Owner)
	}
}

func (s *GunSystem) fire(id ecs.EntityID, g *component.Gun, gm *component.Motion, p *component.Player, pm *component.Motion, lob bool) {
	ws := s.world
	g.MagazineAmmo--
	g.FireRate.Set(millis(g.FireRateMs))

	dir := 1.0
	if !p.FacingRight {
		dir = -1
	}
	pm.Velocity[0] -= dir * g.Recoil

	event.Emit(ws.Bus, event.SoundCue{Cue: event.CueShoot, Weapon: g.Name, Entity: g.Owner})

	muzzle := world.Muzzle(gm, p.FacingRight)
	if g.Hitscan {
		s.hitscan(g, muzzle, dir)
	} else {
		ws.CreateBullet(id, lob)
	}
	ws.CreateMuzzleFlash(muzzle, p.FacingRight)
}

// hitscan sweeps a box in front of the muzzle and resolves every player it
// touches immediately.
func (s *GunSystem) hitscan(g *component.Gun, muzzle mgl64.Vec2, dir float64) {
	ws := s.world
	center := muzzle
	center[0] += dir * g.HitscanWidth / 2
	box := physics.FromCenter(center, mgl64.Vec2{g.HitscanWidth, g.HitscanHeight})

	for _, target := range ws.Players.Entities() {
		if target == g.Owner || ws.Inert.Has(target) {
			continue
		}
		tm, ok := ws.Motions.Get(target)
		if !ok || !box.Overlaps(physics.FromCenter(tm.Position, tm.Scale)) {
			continue
		}
		bullet := ws.CreateHitscanBullet(g, dir, muzzle[0])
		ResolveBulletHit(ws, target, bullet)
		// no-op unless the hit was skipped
		ws.Destroy(bullet, "bullet")
	}
}

func (s *GunSystem) animateRecoil(g *component.Gun, gm *component.Motion, facingRight bool) {
	angle, offset := combat.RecoilPose(g.FireRate.Millis(), g.FireRateMs, g.RecoilAnimation)
	g.RecoilAngle, g.RecoilOffset = angle, offset
	kick := 1.0
	if facingRight {
		kick = -1
	}
	gm.Angle += kick * angle
	gm.Position[0] += kick * offset
}

// refill loads the magazine after a reload. Infinite guns always come back
// full; others draw from reserve.
func refill(g *component.Gun) {
	if g.InfiniteAmmo {
		g.MagazineAmmo = g.MagazineSize
		return
	}
	take := min(g.MagazineSize-g.MagazineAmmo, g.ReserveAmmo)
	g.MagazineAmmo += take
	g.ReserveAmmo -= take
}
