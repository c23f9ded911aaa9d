package system

import (
	"time"

	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/world"
)

// MovementSystem turns controller intent into running, jumping and
// crouching. Phase 0 (Input).
type MovementSystem struct {
	world *world.State
}

func NewMovementSystem(ws *world.State) *MovementSystem {
	return &MovementSystem{world: ws}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *MovementSystem) Update(dt time.Duration) {
	ws := s.world
	secs := dt.Seconds()
	jumpDelay := ws.Config.Simulation.JumpDelay

	ecs.Each2(ws.Players, ws.Controllers, func(id ecs.EntityID, p *component.Player, c *component.Controller) {
		m, ok := ws.Motions.Get(id)
		if !ok || p.Lives <= 0 {
			return
		}
		in := c.Intent

		switch {
		case in.MoveRight && !in.MoveLeft:
			p.RunningRight, p.RunningLeft = true, false
			p.FacingRight = true
		case in.MoveLeft && !in.MoveRight:
			p.RunningLeft, p.RunningRight = true, false
			p.FacingRight = false
		default:
			p.RunningLeft, p.RunningRight = false, false
		}

		p.JumpDelay.Tick(dt)
		if in.Jump {
			if p.Grounded {
				// ground jumps do not spend the air-jump budget
				m.Velocity[1] = -p.JumpForce
				p.JumpDelay.Set(jumpDelay)
			} else if p.JumpRemaining > 0 && !p.JumpDelay.Active() {
				m.Velocity[1] = -p.JumpForce
				p.JumpRemaining--
				p.JumpDelay.Set(jumpDelay)
			}
		}

		p.Crouching = in.Crouch
		if in.Crouch && p.Grounded {
			m.Position[1]++
		}

		if in.MoveRight && m.Velocity[0] <= p.MaxSpeed {
			m.Velocity[0] += p.RunningForce * secs
		}
		if in.MoveLeft && m.Velocity[0] >= -p.MaxSpeed {
			m.Velocity[0] -= p.RunningForce * secs
		}
	})
}
