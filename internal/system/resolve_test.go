package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/core/clock"
	"github.com/bulletbrawl/arena/internal/core/event"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
)

func TestProjectileDropOff(t *testing.T) {
	h := newHarness(t, nil)
	tid, _, tm := h.player(1)
	_, p, _ := h.player(0)
	b := h.world.CreateBullet(p.Gun, false)
	bc, _ := h.world.Bullets.Get(b)
	bm, _ := h.world.Motions.Get(b)
	bm.Position[0] = bc.SpawnX + 200

	require.True(t, ResolveBulletHit(h.world, tid, b))
	// pistol: 600 - 200*0.5*1
	assert.InDelta(t, 500, tm.Velocity[0], 1e-9)
	assert.False(t, h.world.ECS.Alive(b))
}

func TestProjectileBonusGrowsWithRange(t *testing.T) {
	h := newHarness(t, nil)
	h.equip(0, "Sniper Rifle")
	tid, _, tm := h.player(1)
	_, p, _ := h.player(0)

	b := h.world.CreateBullet(p.Gun, false)
	bc, _ := h.world.Bullets.Get(b)
	bm, _ := h.world.Motions.Get(b)
	bm.Position[0] = bc.SpawnX + 100

	ResolveBulletHit(h.world, tid, b)
	assert.InDelta(t, 2500+100*1.5, tm.Velocity[0], 1e-9)
}

func TestKnockbackScaledByResistanceAndSignedByTravel(t *testing.T) {
	h := newHarness(t, nil)
	// slot 1 faces left and shoots slot 0
	pid, p0, m0 := h.player(0)
	p0.KnockbackResistance = 0.5
	_, p1, _ := h.player(1)

	b := h.world.CreateBullet(p1.Gun, false)
	require.True(t, ResolveBulletHit(h.world, pid, b))
	assert.InDelta(t, -300, m0.Velocity[0], 1e-9)
}

func TestInvinciblePlayerAbsorbsBullet(t *testing.T) {
	h := newHarness(t, nil)
	tid, _, tm := h.player(1)
	h.world.Invincible.Add(tid, component.Invincibility{Timer: clock.NewCountdown(time.Second)})
	_, p, _ := h.player(0)
	b := h.world.CreateBullet(p.Gun, false)

	assert.False(t, ResolveBulletHit(h.world, tid, b))
	assert.Zero(t, tm.Velocity[0])
	assert.False(t, h.world.ECS.Alive(b))
}

func TestShooterIgnoresOwnBullet(t *testing.T) {
	h := newHarness(t, nil)
	id, p, m := h.player(0)
	b := h.world.CreateBullet(p.Gun, false)

	assert.False(t, ResolveBulletHit(h.world, id, b))
	assert.Zero(t, m.Velocity[0])
	assert.True(t, h.world.ECS.Alive(b))
}

func TestBulletHitThroughPipeline(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(2)
	_, _, tm := h.player(1)
	_, p, _ := h.player(0)
	b := h.world.CreateBullet(p.Gun, false)
	bm, _ := h.world.Motions.Get(b)
	bm.Position = tm.Position

	h.tick(1)
	assert.Greater(t, tm.Velocity[0], 0.0)
	assert.Zero(t, h.world.Bullets.Len())
	assert.Equal(t, 1, cues(h.world.Bus, event.CueHit))
}

func TestPowerUpAppliesOnceAndRefreshes(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(2)
	id, p, m := h.player(0)
	boost := h.world.PowerUps.Get("Speed Boost")
	base := h.world.BaseStats()

	h.world.CreatePowerUp(boost, m.Position)
	h.tick(1)
	assert.Zero(t, h.world.Pickups.Len())
	assert.InDelta(t, base.MaxSpeed*1.5, p.MaxSpeed, 1e-9)
	assert.Equal(t, 1, cues(h.world.Bus, event.CuePickup))

	h.phase(coresys.PhaseLifecycle, 4*time.Second)
	h.world.CreatePowerUp(boost, m.Position)
	h.tick(1)
	assert.InDelta(t, base.MaxSpeed*1.5, p.MaxSpeed, 1e-9, "second pickup must not stack")

	buffs, _ := h.world.Buffs.Get(id)
	entry, ok := buffs.Ledger.Get("Speed Boost")
	require.True(t, ok)
	assert.Greater(t, entry.Timer.Remaining(), 4*time.Second)

	h.phase(coresys.PhaseLifecycle, 5*time.Second)
	h.assertBaseStats(0)
	assert.Zero(t, buffs.Ledger.Len())
}

func TestMysteryBoxSwapsWeapon(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(2)
	_, p, m := h.player(0)
	oldGun := p.Gun

	box := h.world.CreateMysteryBox("Sniper Rifle", m.Position.Add(mgl64.Vec2{10, 0}))
	h.tick(1)

	assert.False(t, h.world.ECS.Alive(box))
	assert.False(t, h.world.ECS.Alive(oldGun))
	g := h.gun(0)
	assert.Equal(t, "Sniper Rifle", g.Name)
	assert.Equal(t, 5, g.MagazineAmmo)
	assert.InDelta(t, h.world.BaseStats().MaxSpeed*0.85, p.MaxSpeed, 1e-9)
}
