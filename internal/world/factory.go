package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/core/clock"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	"github.com/bulletbrawl/arena/internal/core/event"
	"github.com/bulletbrawl/arena/internal/data"
	"github.com/bulletbrawl/arena/internal/input"
	"github.com/bulletbrawl/arena/internal/modifier"
)

// gunInset pulls the held gun this far back into the player's box.
const gunInset = 5

// BaseStats are the stats a player has with no modifiers applied.
func (s *State) BaseStats() modifier.Stats {
	p := s.Config.Player
	return modifier.Stats{
		MaxJumps:            p.MaxJumps,
		JumpForce:           p.JumpForce,
		RunningForce:        p.RunningForce,
		MaxSpeed:            p.MaxSpeed,
		KnockbackResistance: p.KnockbackResistance,
	}
}

// CreatePlayer spawns the fighter for slot holding the starting weapon.
func (s *State) CreatePlayer(slot int, pos mgl64.Vec2, keys input.Keymap) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Motions.Add(id, component.Motion{
		Position: pos,
		Scale:    mgl64.Vec2{s.Config.Player.Width, s.Config.Player.Height},
	})
	s.Gravity.Add(id, component.Gravity{Scale: 1})
	s.Friction.Add(id, component.Friction{})
	stats := s.BaseStats()
	s.Players.Add(id, component.Player{
		Slot:          slot,
		FacingRight:   slot == 0,
		Stats:         stats,
		JumpRemaining: stats.MaxJumps,
		Lives:         s.Config.Match.Lives,
		Gun:           ecs.None,
	})
	s.Controllers.Add(id, component.Controller{Keymap: keys})
	s.Buffs.Add(id, component.Buffs{Ledger: modifier.NewLedger()})
	s.players[slot] = id

	s.GiveStartingWeapon(id)
	return id
}

func (s *State) CreatePlatform(p data.PlatformEntry) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Motions.Add(id, component.Motion{
		Position: mgl64.Vec2{p.X, p.Y},
		Scale:    mgl64.Vec2{p.Width, p.Height},
	})
	s.Platforms.Add(id, component.Platform{ActiveFor: [2]bool{true, true}})
	return id
}

func (s *State) CreatePowerUp(entry *data.PowerUpEntry, pos mgl64.Vec2) ecs.EntityID {
	id := s.ECS.CreateEntity()
	size := s.Config.Drops.PowerUpSize
	s.Motions.Add(id, component.Motion{Position: pos, Scale: mgl64.Vec2{size, size}})
	s.Pickups.Add(id, component.PowerUp{Modifier: entry.StatModifier()})
	return id
}

func (s *State) CreateMysteryBox(weapon string, pos mgl64.Vec2) ecs.EntityID {
	id := s.ECS.CreateEntity()
	size := s.Config.Drops.MysteryBoxSize
	s.Motions.Add(id, component.Motion{Position: pos, Scale: mgl64.Vec2{size, size}})
	s.Boxes.Add(id, component.MysteryBox{Weapon: weapon})
	return id
}

// GunAnchor is where the owner holds its gun.
func GunAnchor(owner *component.Motion, facingRight bool) mgl64.Vec2 {
	off := math.Abs(owner.Scale[0])/2 - gunInset
	if !facingRight {
		off = -off
	}
	return mgl64.Vec2{owner.Position[0] + off, owner.Position[1]}
}

// EquipWeapon gives player a fresh gun from entry. A gun already held is
// reverted and destroyed first, then the new gun's modifier is applied.
func (s *State) EquipWeapon(player ecs.EntityID, entry *data.WeaponEntry) ecs.EntityID {
	p, ok := s.Players.Get(player)
	if !ok {
		return ecs.None
	}
	pm, ok := s.Motions.Get(player)
	if !ok {
		return ecs.None
	}
	s.UnequipWeapon(player)

	id := s.ECS.CreateEntity()
	scale := mgl64.Vec2{entry.Width, entry.Height}
	if !p.FacingRight {
		scale[0] = -scale[0]
	}
	s.Motions.Add(id, component.Motion{Position: GunAnchor(pm, p.FacingRight), Scale: scale})
	g := s.Guns.Add(id, component.Gun{
		Name:            entry.Name,
		Owner:           player,
		FireRateMs:      entry.FireRateMs,
		ReloadMs:        entry.ReloadMs,
		Equip:           clock.NewCountdown(s.Config.Match.EquipDelay),
		MagazineSize:    entry.Magazine,
		MagazineAmmo:    entry.Magazine,
		ReserveAmmo:     entry.Reserve,
		InfiniteAmmo:    entry.InfiniteAmmo,
		MuzzleVelocity:  entry.MuzzleVelocity,
		Knockback:       entry.Knockback,
		Falloff:         entry.FalloffKind(),
		FalloffCoeff:    entry.FalloffCoeff,
		Recoil:          entry.Recoil,
		RecoilAnimation: entry.RecoilAnimation,
		Hitscan:         entry.Hitscan,
		HitscanWidth:    entry.HitscanWidth,
		HitscanHeight:   entry.HitscanHeight,
		Modifier:        entry.StatModifier(),
	})
	modifier.Apply(&p.Stats, g.Modifier)
	p.Gun = id
	event.Emit(s.Bus, event.StatChanged{Player: player, Modifier: g.Modifier.Name, Applied: true})
	return id
}

// UnequipWeapon reverts and destroys the player's current gun.
func (s *State) UnequipWeapon(player ecs.EntityID) {
	p, ok := s.Players.Get(player)
	if !ok || p.Gun == ecs.None {
		return
	}
	if g, ok := s.Guns.Get(p.Gun); ok {
		modifier.Remove(&p.Stats, g.Modifier)
		event.Emit(s.Bus, event.StatChanged{Player: player, Modifier: g.Modifier.Name, Applied: false})
	}
	s.Destroy(p.Gun, "gun")
	p.Gun = ecs.None
}

func (s *State) GiveStartingWeapon(player ecs.EntityID) ecs.EntityID {
	return s.EquipWeapon(player, s.Weapons.Starting())
}

// DropGun discards an emptied gun: its modifier is reverted, the entity
// stays behind as a falling non-interactable prop and the player is handed
// the starting weapon.
func (s *State) DropGun(player ecs.EntityID) {
	p, ok := s.Players.Get(player)
	if !ok || p.Gun == ecs.None {
		return
	}
	gunID := p.Gun
	g, ok := s.Guns.Get(gunID)
	if !ok {
		p.Gun = ecs.None
		s.GiveStartingWeapon(player)
		return
	}
	name := g.Name
	modifier.Remove(&p.Stats, g.Modifier)
	event.Emit(s.Bus, event.StatChanged{Player: player, Modifier: g.Modifier.Name, Applied: false})

	s.Guns.Remove(gunID)
	if m, ok := s.Motions.Get(gunID); ok {
		m.Velocity = mgl64.Vec2{}
		m.Angle = 0
	}
	s.Gravity.Add(gunID, component.Gravity{Scale: 1})
	s.Inert.Add(gunID, component.NonInteractable{})
	s.Dropped.Add(gunID, component.DroppedGun{Weapon: name})
	p.Gun = ecs.None

	event.Emit(s.Bus, event.GunDropped{Player: player, Gun: gunID, Weapon: name})
	s.Log.Debug("gun dropped", zap.Int("slot", p.Slot), zap.String("weapon", name))

	s.GiveStartingWeapon(player)
}

// Muzzle returns the point in front of the gun barrel.
func Muzzle(gm *component.Motion, facingRight bool) mgl64.Vec2 {
	half := math.Abs(gm.Scale[0]) / 2
	if !facingRight {
		half = -half
	}
	return mgl64.Vec2{gm.Position[0] + half, gm.Position[1]}
}

// CreateBullet fires a projectile from gun. Lobbed rounds are launched
// upward and fall under gravity.
func (s *State) CreateBullet(gunID ecs.EntityID, lob bool) ecs.EntityID {
	g, ok := s.Guns.Get(gunID)
	if !ok {
		return ecs.None
	}
	gm, ok := s.Motions.Get(gunID)
	if !ok {
		return ecs.None
	}
	p, ok := s.Players.Get(g.Owner)
	if !ok {
		return ecs.None
	}
	dir := 1.0
	if !p.FacingRight {
		dir = -1
	}
	pos := Muzzle(gm, p.FacingRight)
	size := s.BulletSize()
	size[0] *= dir

	id := s.ECS.CreateEntity()
	vel := mgl64.Vec2{dir * g.MuzzleVelocity, 0}
	if lob {
		vel[1] = -s.Config.Simulation.LobSpeed
		s.Gravity.Add(id, component.Gravity{Scale: 1})
	}
	s.Motions.Add(id, component.Motion{Position: pos, Velocity: vel, Scale: size})
	s.Bullets.Add(id, component.Bullet{
		Shooter:      g.Owner,
		Weapon:       g.Name,
		SpawnX:       pos[0],
		Direction:    dir,
		Lobbed:       lob,
		Knockback:    g.Knockback,
		Falloff:      g.Falloff,
		FalloffCoeff: g.FalloffCoeff,
	})
	return id
}

// CreateHitscanBullet creates the transient bullet carried by a hitscan hit.
// It holds no motion and is destroyed by the hit resolution.
func (s *State) CreateHitscanBullet(g *component.Gun, dir float64, spawnX float64) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Bullets.Add(id, component.Bullet{
		Shooter:   g.Owner,
		Weapon:    g.Name,
		SpawnX:    spawnX,
		Direction: dir,
		Hitscan:   true,
		Knockback: g.Knockback,
		Falloff:   g.Falloff,
	})
	return id
}

func (s *State) CreateMuzzleFlash(pos mgl64.Vec2, facingRight bool) ecs.EntityID {
	id := s.ECS.CreateEntity()
	scale := mgl64.Vec2{20, 20}
	if !facingRight {
		scale[0] = -scale[0]
	}
	s.Motions.Add(id, component.Motion{Position: pos, Scale: scale})
	s.Flashes.Add(id, component.MuzzleFlash{Timer: clock.NewCountdown(s.Config.Simulation.MuzzleFlash)})
	return id
}

// RandomPlatformPoint picks a spot resting on a random platform for an
// item of the given size. Platforms narrower than the item are centered.
func (s *State) RandomPlatformPoint(size float64) mgl64.Vec2 {
	p := s.Arena.Platforms[s.Rng.Intn(len(s.Arena.Platforms))]
	lo, hi := p.X-p.Width/2+size, p.X+p.Width/2-size
	x := p.X
	if hi > lo {
		x = lo + s.Rng.Float64()*(hi-lo)
	}
	return mgl64.Vec2{x, p.Y - p.Height/2 - size/2}
}

// RespawnPoint picks where a fallen player re-enters: a configured spawn
// point, or a random x between the outermost platform edges at respawn_y.
func (s *State) RespawnPoint() mgl64.Vec2 {
	if n := len(s.Arena.SpawnPoints); n > 0 {
		sp := s.Arena.SpawnPoints[s.Rng.Intn(n)]
		return mgl64.Vec2{sp.X, sp.Y}
	}
	left, right := s.Arena.PlatformSpan()
	return mgl64.Vec2{left + s.Rng.Float64()*(right-left), s.Arena.RespawnY}
}
