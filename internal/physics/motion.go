package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Integrate advances pos by vel over dt seconds.
func Integrate(pos, vel mgl64.Vec2, dt float64) mgl64.Vec2 {
	return Predict(pos, vel, dt)
}

// ApplyGravity accelerates vel downward (y grows down).
func ApplyGravity(vel mgl64.Vec2, g, dt float64) mgl64.Vec2 {
	vel[1] += g * dt
	return vel
}

// Friction decays horizontal speed. Ground acts while grounded and the
// player is not driving along the current velocity; Brake acts whenever the
// player drives against it. StopSpeed snaps small speeds to zero.
type Friction struct {
	Ground    float64
	Brake     float64
	StopSpeed float64
}

// Apply returns the decayed horizontal velocity. The result never changes
// sign and reaches exactly zero.
func (f Friction) Apply(vx float64, grounded, left, right bool, dt float64) float64 {
	if vx == 0 {
		return 0
	}
	dir := 1.0
	if vx < 0 {
		dir = -1
	}
	along := (dir > 0 && right) || (dir < 0 && left)
	against := (dir > 0 && left) || (dir < 0 && right)

	speed := math.Abs(vx)
	decay := 0.0
	if grounded && !along {
		decay += f.Ground
	}
	if against {
		decay += f.Brake
	}
	if decay == 0 {
		return vx
	}
	speed -= speed * decay * dt
	if speed <= f.StopSpeed || speed <= 0 {
		return 0
	}
	return dir * speed
}
