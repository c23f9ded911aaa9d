package system

import (
	"time"

	"github.com/bulletbrawl/arena/internal/core/event"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
)

// EventDispatchSystem publishes the previous frame's events to subscribers.
// Phase 0 (Input), registered before every other input system.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
