package system

import (
	"time"

	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/world"
)

// CleanupSystem flushes the deferred entity destruction queue at frame end.
// Phase 8 (Cleanup).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.ECS.FlushDestroyQueue()
}
