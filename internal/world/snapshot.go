package world

import (
	"math"

	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/core/ecs"
)

// Animation states reported for players.
const (
	AnimIdle = "idle"
	AnimRun  = "run"
	AnimJump = "jump"
	AnimFall = "fall"
)

// runThreshold is the horizontal speed above which a grounded player is
// shown running.
const runThreshold = 10

// EntityView is the render-facing state of one entity.
type EntityView struct {
	ID          uint64  `msgpack:"id"`
	Kind        string  `msgpack:"kind"`
	X           float64 `msgpack:"x"`
	Y           float64 `msgpack:"y"`
	VX          float64 `msgpack:"vx"`
	VY          float64 `msgpack:"vy"`
	Angle       float64 `msgpack:"angle"`
	W           float64 `msgpack:"w"`
	H           float64 `msgpack:"h"`
	FacingRight bool    `msgpack:"facing_right,omitempty"`
	Anim        string  `msgpack:"anim,omitempty"`
	Weapon      string  `msgpack:"weapon,omitempty"`
	Ammo        int     `msgpack:"ammo,omitempty"`
	Reserve     int     `msgpack:"reserve,omitempty"`
	Reloading   bool    `msgpack:"reloading,omitempty"`
	Lives       int     `msgpack:"lives,omitempty"`
	Invincible  bool    `msgpack:"invincible,omitempty"`
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Frame     uint64       `msgpack:"frame"`
	ElapsedMs int64        `msgpack:"elapsed_ms"`
	Over      bool         `msgpack:"over"`
	Winner    int          `msgpack:"winner"` // slot, -1 while running
	Entities  []EntityView `msgpack:"entities"`
}

func (s *State) kindOf(id ecs.EntityID) string {
	switch {
	case s.Players.Has(id):
		return "player"
	case s.Platforms.Has(id):
		return "platform"
	case s.Guns.Has(id):
		return "gun"
	case s.Dropped.Has(id):
		return "dropped_gun"
	case s.Bullets.Has(id):
		return "bullet"
	case s.Pickups.Has(id):
		return "powerup"
	case s.Boxes.Has(id):
		return "mystery_box"
	case s.Flashes.Has(id):
		return "muzzle_flash"
	}
	return "entity"
}

// Snapshot captures every entity with a Motion.
func (s *State) Snapshot(frame uint64) Snapshot {
	snap := Snapshot{
		Frame:     frame,
		ElapsedMs: s.Elapsed.Milliseconds(),
		Over:      s.Match.Over,
		Winner:    -1,
		Entities:  make([]EntityView, 0, s.Motions.Len()),
	}
	if s.Match.Over {
		snap.Winner = s.Match.WinnerSlot
	}
	s.Motions.Each(func(id ecs.EntityID, m *component.Motion) {
		v := EntityView{
			ID:    uint64(id),
			Kind:  s.kindOf(id),
			X:     m.Position[0],
			Y:     m.Position[1],
			VX:    m.Velocity[0],
			VY:    m.Velocity[1],
			Angle: m.Angle,
			W:     m.Scale[0],
			H:     m.Scale[1],
		}
		if p, ok := s.Players.Get(id); ok {
			v.FacingRight = p.FacingRight
			v.Lives = p.Lives
			v.Invincible = s.Invincible.Has(id)
			v.Anim = animation(p.Grounded, m.Velocity[0], m.Velocity[1])
			if g, ok := s.Guns.Get(p.Gun); ok {
				v.Weapon = g.Name
				v.Ammo = g.MagazineAmmo
				v.Reserve = g.ReserveAmmo
				v.Reloading = g.Reloading
			}
		}
		if g, ok := s.Guns.Get(id); ok {
			v.Weapon = g.Name
		}
		if d, ok := s.Dropped.Get(id); ok {
			v.Weapon = d.Weapon
		}
		if b, ok := s.Bullets.Get(id); ok {
			v.Weapon = b.Weapon
		}
		snap.Entities = append(snap.Entities, v)
	})
	return snap
}

func animation(grounded bool, vx, vy float64) string {
	switch {
	case grounded && math.Abs(vx) > runThreshold:
		return AnimRun
	case grounded:
		return AnimIdle
	case vy < 0:
		return AnimJump
	}
	return AnimFall
}
