package system

import (
	"time"

	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/world"
)

// SnapshotSink receives one snapshot per frame. Implementations must not
// retain the world; the snapshot is a copy.
type SnapshotSink interface {
	Publish(snap world.Snapshot)
}

// SnapshotSystem captures the frame for renderers and spectators.
// Phase 7 (Output).
type SnapshotSystem struct {
	world *world.State
	sinks []SnapshotSink
	frame uint64
}

func NewSnapshotSystem(ws *world.State, sinks ...SnapshotSink) *SnapshotSystem {
	return &SnapshotSystem{world: ws, sinks: sinks}
}

func (s *SnapshotSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *SnapshotSystem) Update(_ time.Duration) {
	s.frame++
	if len(s.sinks) == 0 {
		return
	}
	snap := s.world.Snapshot(s.frame)
	for _, sink := range s.sinks {
		sink.Publish(snap)
	}
}
