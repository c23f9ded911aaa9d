package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/bulletbrawl/arena/internal/core/clock"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/world"
)

// DropSystem spawns power-ups and mystery boxes over random platforms on
// jittered timers. Phase 6 (Lifecycle).
type DropSystem struct {
	world   *world.State
	powerUp clock.Countdown
	box     clock.Countdown
}

func NewDropSystem(ws *world.State) *DropSystem {
	s := &DropSystem{world: ws}
	s.powerUp.Set(s.next(ws.Config.Drops.PowerUpInterval))
	s.box.Set(s.next(ws.Config.Drops.MysteryBoxInterval))
	return s
}

func (s *DropSystem) Phase() coresys.Phase { return coresys.PhaseLifecycle }

// next draws the following spawn delay uniformly from [interval/2, interval).
func (s *DropSystem) next(interval time.Duration) time.Duration {
	half := interval / 2
	return half + time.Duration(s.world.Rng.Float64()*float64(half))
}

func (s *DropSystem) Update(dt time.Duration) {
	ws := s.world
	if ws.Match.Over {
		return
	}
	drops := ws.Config.Drops

	if s.powerUp.Tick(dt) {
		if ws.Pickups.Len() < drops.PowerUpMax {
			if entry := ws.PowerUps.Random(ws.Rng); entry != nil {
				pos := ws.RandomPlatformPoint(drops.PowerUpSize)
				ws.CreatePowerUp(entry, pos)
				ws.Log.Debug("power-up spawned", zap.String("name", entry.Name), zap.Float64("x", pos[0]))
			}
		}
		s.powerUp.Set(s.next(drops.PowerUpInterval))
	}

	if s.box.Tick(dt) {
		if ws.Boxes.Len() < drops.MysteryBoxMax {
			entry := ws.Weapons.Random(ws.Rng)
			pos := ws.RandomPlatformPoint(drops.MysteryBoxSize)
			ws.CreateMysteryBox(entry.Name, pos)
			ws.Log.Debug("mystery box spawned", zap.String("weapon", entry.Name), zap.Float64("x", pos[0]))
		}
		s.box.Set(s.next(drops.MysteryBoxInterval))
	}
}
