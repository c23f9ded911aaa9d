package component

import "github.com/go-gl/mathgl/mgl64"

// Motion is the kinematic state of an entity. Scale holds full extents;
// collision boxes use Scale/2.
type Motion struct {
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Angle    float64
	Scale    mgl64.Vec2
}

// Gravity marks an entity pulled down by the world gravity, times Scale.
type Gravity struct {
	Scale float64
}

// Friction marks an entity whose horizontal speed decays.
type Friction struct{}
