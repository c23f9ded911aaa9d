package system

import (
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/world"
)

// RegisterAll wires the full frame pipeline. Within a phase, systems run in
// the order registered here.
func RegisterAll(r *coresys.Runner, ws *world.State, sinks ...SnapshotSink) {
	r.Register(NewEventDispatchSystem(ws.Bus))
	r.Register(NewMovementSystem(ws))
	r.Register(NewPlatformColliderSystem(ws))
	r.Register(NewPhysicsSystem(ws))
	r.Register(NewCollisionSystem(ws))
	r.Register(NewResolveSystem(ws))
	r.Register(NewRespawnSystem(ws))
	r.Register(NewGunSystem(ws))
	r.Register(NewBuffTickSystem(ws))
	r.Register(NewDropSystem(ws))
	r.Register(NewBoundsSystem(ws))
	r.Register(NewSnapshotSystem(ws, sinks...))
	r.Register(NewCleanupSystem(ws))
}
