package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/core/clock"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	"github.com/bulletbrawl/arena/internal/core/event"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/world"
)

// RespawnSystem handles players falling past the kill line: a life is lost,
// timed power-ups end and the player re-enters with the starting weapon and
// a spell of invincibility. The last life ends the match.
// Phase 4 (Resolve), registered after ResolveSystem.
type RespawnSystem struct {
	world *world.State
}

func NewRespawnSystem(ws *world.State) *RespawnSystem {
	return &RespawnSystem{world: ws}
}

func (s *RespawnSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *RespawnSystem) Update(_ time.Duration) {
	ws := s.world
	for _, id := range ws.Players.Entities() {
		p, _ := ws.Players.Get(id)
		m, ok := ws.Motions.Get(id)
		if !ok || p.Lives <= 0 || m.Position[1] <= ws.Arena.KillY {
			continue
		}
		s.fall(id, p, m)
	}
}

func (s *RespawnSystem) fall(id ecs.EntityID, p *component.Player, m *component.Motion) {
	ws := s.world
	p.Lives--
	event.Emit(ws.Bus, event.SoundCue{Cue: event.CueFall, Entity: id})
	event.Emit(ws.Bus, event.LifeLost{Player: id, Slot: p.Slot, Remaining: p.Lives, Elapsed: ws.Elapsed})

	if buffs, ok := ws.Buffs.Get(id); ok {
		for _, name := range buffs.Ledger.ExpireTimed(&p.Stats) {
			event.Emit(ws.Bus, event.StatChanged{Player: id, Modifier: name, Applied: false})
		}
	}
	m.Velocity = mgl64.Vec2{}
	p.Grounded = false
	p.RunningLeft, p.RunningRight = false, false

	if p.Lives <= 0 {
		s.eliminate(id, p)
		return
	}

	m.Position = ws.RespawnPoint()
	p.JumpRemaining = p.MaxJumps
	ws.Invincible.Add(id, component.Invincibility{Timer: clock.NewCountdown(ws.Config.Match.Invincibility)})
	ws.GiveStartingWeapon(id)
	ws.Log.Info("player respawned",
		zap.Int("slot", p.Slot),
		zap.Int("lives", p.Lives),
		zap.Float64("x", m.Position[0]))
}

// eliminate strips every remaining modifier, parks the losing player and
// declares the opponent winner.
func (s *RespawnSystem) eliminate(id ecs.EntityID, p *component.Player) {
	ws := s.world
	if buffs, ok := ws.Buffs.Get(id); ok {
		for _, name := range buffs.Ledger.Active() {
			buffs.Ledger.Revoke(&p.Stats, name)
			event.Emit(ws.Bus, event.StatChanged{Player: id, Modifier: name, Applied: false})
		}
	}
	ws.UnequipWeapon(id)
	ws.Gravity.Remove(id)
	ws.Inert.Add(id, component.NonInteractable{})

	if ws.Match.Over {
		return
	}
	winner := ws.Opponent(p.Slot)
	ws.Match = world.MatchState{Over: true, Winner: winner, WinnerSlot: 1 - p.Slot}
	event.Emit(ws.Bus, event.WinnerDetermined{Winner: winner, Slot: 1 - p.Slot, Loser: id})
	ws.Log.Info("match over", zap.Int("winner", 1-p.Slot), zap.Duration("elapsed", ws.Elapsed))
}
