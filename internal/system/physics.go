package system

import (
	"time"

	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/physics"
	"github.com/bulletbrawl/arena/internal/world"
)

// PhysicsSystem applies gravity, then friction, then integrates every
// Motion. Phase 2 (Motion).
type PhysicsSystem struct {
	world    *world.State
	friction physics.Friction
}

func NewPhysicsSystem(ws *world.State) *PhysicsSystem {
	sim := ws.Config.Simulation
	return &PhysicsSystem{
		world: ws,
		friction: physics.Friction{
			Ground:    sim.GroundFriction,
			Brake:     sim.OpposingBrake,
			StopSpeed: sim.StopSpeed,
		},
	}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhaseMotion }

func (s *PhysicsSystem) Update(dt time.Duration) {
	ws := s.world
	secs := dt.Seconds()
	g := ws.Config.Simulation.Gravity

	ecs.Each2(ws.Gravity, ws.Motions, func(_ ecs.EntityID, grav *component.Gravity, m *component.Motion) {
		m.Velocity = physics.ApplyGravity(m.Velocity, g*grav.Scale, secs)
	})

	ecs.Each2(ws.Friction, ws.Motions, func(id ecs.EntityID, _ *component.Friction, m *component.Motion) {
		grounded, left, right := false, false, false
		if p, ok := ws.Players.Get(id); ok {
			grounded, left, right = p.Grounded, p.RunningLeft, p.RunningRight
		}
		m.Velocity[0] = s.friction.Apply(m.Velocity[0], grounded, left, right, secs)
	})

	ws.Motions.Each(func(_ ecs.EntityID, m *component.Motion) {
		m.Position = physics.Integrate(m.Position, m.Velocity, secs)
	})
}
