package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	"github.com/bulletbrawl/arena/internal/core/event"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/world"
)

// BuffTickSystem counts down timed stat modifiers and invincibility,
// reverting whatever runs out. Phase 6 (Lifecycle).
type BuffTickSystem struct {
	world *world.State
}

func NewBuffTickSystem(ws *world.State) *BuffTickSystem {
	return &BuffTickSystem{world: ws}
}

func (s *BuffTickSystem) Phase() coresys.Phase { return coresys.PhaseLifecycle }

func (s *BuffTickSystem) Update(dt time.Duration) {
	ws := s.world

	ecs.Each2(ws.Players, ws.Buffs, func(id ecs.EntityID, p *component.Player, b *component.Buffs) {
		for _, name := range b.Ledger.Tick(&p.Stats, dt) {
			event.Emit(ws.Bus, event.StatChanged{Player: id, Modifier: name, Applied: false})
			ws.Log.Debug("power-up expired", zap.Int("slot", p.Slot), zap.String("modifier", name))
		}
	})

	for _, id := range ws.Invincible.Entities() {
		inv, _ := ws.Invincible.Get(id)
		if inv.Timer.Tick(dt) {
			ws.Invincible.Remove(id)
		}
	}
}
