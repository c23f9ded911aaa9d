package system

import (
	"math"
	"time"

	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/world"
)

// BoundsSystem removes bullets that left the arena and dropped guns that
// fell past the kill line. Phase 6 (Lifecycle).
type BoundsSystem struct {
	world *world.State
}

func NewBoundsSystem(ws *world.State) *BoundsSystem {
	return &BoundsSystem{world: ws}
}

func (s *BoundsSystem) Phase() coresys.Phase { return coresys.PhaseLifecycle }

func (s *BoundsSystem) Update(_ time.Duration) {
	ws := s.world
	a := ws.Arena

	for _, id := range ws.Bullets.Entities() {
		b, _ := ws.Bullets.Get(id)
		m, ok := ws.Motions.Get(id)
		if !ok {
			continue
		}
		w, h := math.Abs(m.Scale[0]), math.Abs(m.Scale[1])
		x, y := m.Position[0], m.Position[1]
		out := x+w < 0 || x-w > a.Width || y-h > a.Height
		// lobbed rounds arc over the top edge and come back
		if !b.Lobbed && y+h < 0 {
			out = true
		}
		if out {
			ws.DestroyLater(id, "bullet")
		}
	}

	for _, id := range ws.Dropped.Entities() {
		if m, ok := ws.Motions.Get(id); ok && m.Position[1] > a.KillY {
			ws.DestroyLater(id, "dropped_gun")
		}
	}
}
