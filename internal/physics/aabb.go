package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned bounding box around a center point.
type Box struct {
	Center mgl64.Vec2
	Half   mgl64.Vec2
}

// FromCenter builds the box of an entity with the given full extents.
// Negative scales (mirrored sprites) still produce a positive box.
func FromCenter(center, scale mgl64.Vec2) Box {
	return Box{
		Center: center,
		Half:   mgl64.Vec2{math.Abs(scale[0]) / 2, math.Abs(scale[1]) / 2},
	}
}

// Overlaps is the strict overlap test; touching edges do not collide.
func (b Box) Overlaps(o Box) bool {
	dx := math.Abs(b.Center[0] - o.Center[0])
	dy := math.Abs(b.Center[1] - o.Center[1])
	return dx < b.Half[0]+o.Half[0] && dy < b.Half[1]+o.Half[1]
}

func (b Box) Top() float64    { return b.Center[1] - b.Half[1] }
func (b Box) Bottom() float64 { return b.Center[1] + b.Half[1] }
func (b Box) Left() float64   { return b.Center[0] - b.Half[0] }
func (b Box) Right() float64  { return b.Center[0] + b.Half[0] }

// Predict returns where pos will be after one integration step.
func Predict(pos, vel mgl64.Vec2, dt float64) mgl64.Vec2 {
	return pos.Add(vel.Mul(dt))
}
