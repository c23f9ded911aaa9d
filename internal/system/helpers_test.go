package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/config"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/world"
	"github.com/bulletbrawl/arena/internal/world/worldtest"
)

const frame = 16 * time.Millisecond

type harness struct {
	t      *testing.T
	world  *world.State
	runner *coresys.Runner
}

func newHarness(t *testing.T, cfg *config.Config, sinks ...SnapshotSink) *harness {
	t.Helper()
	ws := worldtest.NewState(t, cfg)
	worldtest.Populate(ws)
	r := coresys.NewRunner()
	RegisterAll(r, ws, sinks...)
	return &harness{t: t, world: ws, runner: r}
}

func (h *harness) tick(n int) {
	for i := 0; i < n; i++ {
		h.runner.Tick(frame)
	}
}

func (h *harness) phase(p coresys.Phase, dt time.Duration) {
	h.runner.TickPhase(p, dt)
}

func (h *harness) player(slot int) (ecs.EntityID, *component.Player, *component.Motion) {
	h.t.Helper()
	id := h.world.Player(slot)
	p, ok := h.world.Players.Get(id)
	if !ok {
		h.t.Fatalf("no player in slot %d", slot)
	}
	m, _ := h.world.Motions.Get(id)
	return id, p, m
}

func (h *harness) gun(slot int) *component.Gun {
	h.t.Helper()
	_, p, _ := h.player(slot)
	g, ok := h.world.Guns.Get(p.Gun)
	if !ok {
		h.t.Fatalf("player %d holds no gun", slot)
	}
	return g
}

func (h *harness) intent(slot int, set func(c *component.Controller)) {
	c, _ := h.world.Controllers.Get(h.world.Player(slot))
	set(c)
}

func (h *harness) equip(slot int, weapon string) *component.Gun {
	h.t.Helper()
	id := h.world.EquipWeapon(h.world.Player(slot), h.world.Weapons.Get(weapon))
	g, ok := h.world.Guns.Get(id)
	if !ok {
		h.t.Fatalf("equip %s failed", weapon)
	}
	g.Equip.Clear()
	return g
}

func (h *harness) assertBaseStats(slot int) {
	h.t.Helper()
	_, p, _ := h.player(slot)
	base := h.world.BaseStats()
	assert.Equal(h.t, base.MaxJumps, p.MaxJumps)
	assert.InDelta(h.t, base.JumpForce, p.JumpForce, 1e-9)
	assert.InDelta(h.t, base.RunningForce, p.RunningForce, 1e-9)
	assert.InDelta(h.t, base.MaxSpeed, p.MaxSpeed, 1e-9)
	assert.InDelta(h.t, base.KnockbackResistance, p.KnockbackResistance, 1e-9)
}
