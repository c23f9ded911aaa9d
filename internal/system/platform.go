package system

import (
	"math"
	"time"

	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/world"
)

// PlatformColliderSystem enables each one-way platform for the players whose
// feet are at or above its top. Phase 1 (PrePhysics).
type PlatformColliderSystem struct {
	world *world.State
}

func NewPlatformColliderSystem(ws *world.State) *PlatformColliderSystem {
	return &PlatformColliderSystem{world: ws}
}

func (s *PlatformColliderSystem) Phase() coresys.Phase { return coresys.PhasePrePhysics }

func (s *PlatformColliderSystem) Update(_ time.Duration) {
	ws := s.world
	var feet [2]float64
	var present [2]bool
	ws.Players.Each(func(id ecs.EntityID, p *component.Player) {
		m, ok := ws.Motions.Get(id)
		if !ok || p.Slot < 0 || p.Slot > 1 {
			return
		}
		feet[p.Slot] = m.Position[1] + math.Abs(m.Scale[1])/2
		present[p.Slot] = true
	})

	ecs.Each2(ws.Platforms, ws.Motions, func(_ ecs.EntityID, plat *component.Platform, m *component.Motion) {
		top := m.Position[1] - math.Abs(m.Scale[1])/2
		for slot := range plat.ActiveFor {
			plat.ActiveFor[slot] = present[slot] && feet[slot] <= top
		}
	})
}
