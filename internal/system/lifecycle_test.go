package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	"github.com/bulletbrawl/arena/internal/core/event"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/modifier"
	"github.com/bulletbrawl/arena/internal/world"
	"github.com/bulletbrawl/arena/internal/world/worldtest"
)

func TestFallRespawnsWithStartingWeapon(t *testing.T) {
	h := newHarness(t, nil)
	id, p, m := h.player(0)
	h.equip(0, "Submachine Gun")
	buffs, _ := h.world.Buffs.Get(id)
	buffs.Ledger.Grant(&p.Stats, h.world.PowerUps.Get("Triple Jump").StatModifier())
	m.Position[1] = h.world.Arena.KillY + 1

	h.tick(1)

	assert.Equal(t, h.world.Config.Match.Lives-1, p.Lives)
	assert.Equal(t, h.world.Arena.RespawnY, m.Position[1])
	assert.GreaterOrEqual(t, m.Position[0], 100.0)
	assert.LessOrEqual(t, m.Position[0], 1100.0)
	assert.Zero(t, m.Velocity[0])
	assert.True(t, h.world.Invincible.Has(id))
	assert.Equal(t, "Pistol", h.gun(0).Name)
	assert.Zero(t, buffs.Ledger.Len())
	h.assertBaseStats(0)
	assert.False(t, h.world.Match.Over)

	lost := event.Pending[event.LifeLost](h.world.Bus)
	require.Len(t, lost, 1)
	assert.Equal(t, 0, lost[0].Slot)
	assert.Equal(t, 1, cues(h.world.Bus, event.CueFall))

	h.phase(coresys.PhaseLifecycle, h.world.Config.Match.Invincibility)
	assert.False(t, h.world.Invincible.Has(id))
}

func TestLastLifeEndsMatch(t *testing.T) {
	cfg := worldtest.Config()
	cfg.Match.Lives = 1
	h := newHarness(t, cfg)
	id, p, m := h.player(0)
	buffs, _ := h.world.Buffs.Get(id)
	buffs.Ledger.Grant(&p.Stats, h.world.PowerUps.Get("Speed Boost").StatModifier())
	boots := modifier.Neutral("Iron Boots") // untimed, survives ExpireTimed
	boots.ExtraJumps = 1
	boots.KnockbackResistance = 0.5
	buffs.Ledger.Grant(&p.Stats, boots)
	m.Position[1] = h.world.Arena.KillY + 1

	h.tick(1)

	assert.Zero(t, p.Lives)
	assert.True(t, h.world.Match.Over)
	assert.Equal(t, h.world.Player(1), h.world.Match.Winner)
	assert.Equal(t, 1, h.world.Match.WinnerSlot)
	assert.Zero(t, buffs.Ledger.Len())
	assert.Equal(t, ecs.None, p.Gun)
	h.assertBaseStats(0)

	won := event.Pending[event.WinnerDetermined](h.world.Bus)
	require.Len(t, won, 1)
	assert.Equal(t, 1, won[0].Slot)
	assert.Equal(t, id, won[0].Loser)

	// eliminated players stay put and lose no further lives
	y := m.Position[1]
	h.tick(5)
	assert.Zero(t, p.Lives)
	assert.Equal(t, y, m.Position[1])
	assert.Empty(t, event.Pending[event.WinnerDetermined](h.world.Bus))
}

func TestDropsRespectCaps(t *testing.T) {
	cfg := worldtest.Config()
	cfg.Drops.PowerUpInterval = 100 * time.Millisecond
	cfg.Drops.MysteryBoxInterval = 100 * time.Millisecond
	h := newHarness(t, cfg)

	for i := 0; i < 200; i++ {
		h.phase(coresys.PhaseLifecycle, frame)
		require.LessOrEqual(t, h.world.Pickups.Len(), cfg.Drops.PowerUpMax)
		require.LessOrEqual(t, h.world.Boxes.Len(), cfg.Drops.MysteryBoxMax)
	}
	assert.Equal(t, cfg.Drops.PowerUpMax, h.world.Pickups.Len())
	assert.Equal(t, 1, h.world.Boxes.Len())

	h.world.Boxes.Each(func(_ ecs.EntityID, b *component.MysteryBox) {
		assert.NotEqual(t, "Pistol", b.Weapon)
		assert.NotNil(t, h.world.Weapons.Get(b.Weapon))
	})
}

func TestBoundsRemovesStrayBullets(t *testing.T) {
	h := newHarness(t, nil)
	_, p, _ := h.player(0)
	stray := h.world.CreateBullet(p.Gun, false)
	inside := h.world.CreateBullet(p.Gun, false)
	sm, _ := h.world.Motions.Get(stray)
	sm.Position = mgl64.Vec2{-100, 300}

	lob := h.world.CreateBullet(p.Gun, true)
	lm, _ := h.world.Motions.Get(lob)
	lm.Position[1] = -50

	h.phase(coresys.PhaseLifecycle, frame)
	h.phase(coresys.PhaseCleanup, frame)

	assert.False(t, h.world.ECS.Alive(stray))
	assert.True(t, h.world.ECS.Alive(inside))
	assert.True(t, h.world.ECS.Alive(lob), "lobbed rounds may arc above the arena")
}

func TestDroppedGunRemovedBelowKillLine(t *testing.T) {
	h := newHarness(t, nil)
	h.equip(0, "Derringer")
	_, p, _ := h.player(0)
	gun := p.Gun
	h.world.DropGun(h.world.Player(0))
	gm, _ := h.world.Motions.Get(gun)
	gm.Position[1] = h.world.Arena.KillY + 1

	h.phase(coresys.PhaseLifecycle, frame)
	h.phase(coresys.PhaseCleanup, frame)
	assert.False(t, h.world.ECS.Alive(gun))
}

type recordingSink struct {
	snaps []world.Snapshot
}

func (r *recordingSink) Publish(s world.Snapshot) { r.snaps = append(r.snaps, s) }

func TestSnapshotPublishedEveryFrame(t *testing.T) {
	sink := &recordingSink{}
	h := newHarness(t, nil, sink)
	h.tick(3)

	require.Len(t, sink.snaps, 3)
	assert.Equal(t, uint64(3), sink.snaps[2].Frame)
	assert.Equal(t, world.AnimIdle, func() string {
		for _, v := range sink.snaps[2].Entities {
			if v.ID == uint64(h.world.Player(0)) {
				return v.Anim
			}
		}
		return ""
	}())
}
