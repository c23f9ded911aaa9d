package system

import (
	"time"

	"github.com/bulletbrawl/arena/internal/core/ecs"
	coresys "github.com/bulletbrawl/arena/internal/core/system"
	"github.com/bulletbrawl/arena/internal/physics"
	"github.com/bulletbrawl/arena/internal/world"
)

// CollisionSystem rebuilds the per-category collision lists. Players are
// tested against platforms at their predicted next position and against
// everything else where they stand now. Pickups and bullets go through a
// broad-phase grid first. Phase 3 (Detect).
type CollisionSystem struct {
	world *world.State
	grid  *world.Grid
}

func NewCollisionSystem(ws *world.State) *CollisionSystem {
	return &CollisionSystem{world: ws, grid: world.NewGrid(world.GridCell)}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseDetect }

func (s *CollisionSystem) Update(dt time.Duration) {
	ws := s.world
	ws.Collisions.Reset()
	secs := dt.Seconds()

	s.grid.Reset()
	s.fill(ws.Pickups.Entities())
	s.fill(ws.Bullets.Entities())
	s.fill(ws.Boxes.Entities())

	for _, player := range ws.Players.Entities() {
		if ws.Inert.Has(player) {
			continue
		}
		pm, ok := ws.Motions.Get(player)
		if !ok {
			continue
		}
		now := physics.FromCenter(pm.Position, pm.Scale)
		next := physics.FromCenter(physics.Predict(pm.Position, pm.Velocity, secs), pm.Scale)

		for _, platform := range ws.Platforms.Entities() {
			if s.overlaps(next, platform) {
				ws.Collisions.Record(world.PlayerPlatform, player, platform)
			}
		}
		for _, other := range s.grid.Query(now) {
			if other == player || !s.overlaps(now, other) {
				continue
			}
			ws.Collisions.Record(s.category(other), player, other)
		}
	}
}

func (s *CollisionSystem) fill(ids []ecs.EntityID) {
	ws := s.world
	for _, id := range ids {
		if ws.Inert.Has(id) {
			continue
		}
		if m, ok := ws.Motions.Get(id); ok {
			s.grid.Insert(id, physics.FromCenter(m.Position, m.Scale))
		}
	}
}

func (s *CollisionSystem) overlaps(box physics.Box, other ecs.EntityID) bool {
	ws := s.world
	if ws.Inert.Has(other) {
		return false
	}
	om, ok := ws.Motions.Get(other)
	if !ok {
		return false
	}
	return box.Overlaps(physics.FromCenter(om.Position, om.Scale))
}

func (s *CollisionSystem) category(id ecs.EntityID) world.Category {
	ws := s.world
	switch {
	case ws.Pickups.Has(id):
		return world.PlayerPowerUp
	case ws.Bullets.Has(id):
		return world.PlayerBullet
	}
	return world.PlayerMysteryBox
}
