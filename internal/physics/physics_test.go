package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestOverlapsIsStrict(t *testing.T) {
	a := FromCenter(mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10})
	touching := FromCenter(mgl64.Vec2{10, 0}, mgl64.Vec2{10, 10})
	inside := FromCenter(mgl64.Vec2{9.5, 9.5}, mgl64.Vec2{10, 10})

	assert.False(t, a.Overlaps(touching))
	assert.True(t, a.Overlaps(inside))
	assert.True(t, inside.Overlaps(a))
}

func TestFromCenterMirroredScale(t *testing.T) {
	b := FromCenter(mgl64.Vec2{100, 50}, mgl64.Vec2{-60, 30})
	assert.Equal(t, mgl64.Vec2{30, 15}, b.Half)
	assert.Equal(t, 35.0, b.Top())
	assert.Equal(t, 65.0, b.Bottom())
	assert.Equal(t, 70.0, b.Left())
	assert.Equal(t, 130.0, b.Right())
}

func TestIntegrateAndGravity(t *testing.T) {
	vel := ApplyGravity(mgl64.Vec2{100, 0}, 800, 0.5)
	assert.Equal(t, mgl64.Vec2{100, 400}, vel)
	assert.Equal(t, mgl64.Vec2{60, 210}, Integrate(mgl64.Vec2{10, 10}, vel, 0.5))
}

func TestFrictionMonotoneToZero(t *testing.T) {
	f := Friction{Ground: 5, Brake: 3, StopSpeed: 1}
	for _, start := range []float64{300, -300} {
		vx := start
		for i := 0; i < 10000 && vx != 0; i++ {
			next := f.Apply(vx, true, false, false, 1.0/60)
			assert.LessOrEqual(t, math.Abs(next), math.Abs(vx))
			assert.False(t, next*vx < 0, "friction flipped sign")
			vx = next
		}
		assert.Zero(t, vx)
	}
}

func TestFrictionLargeStepClampsToZero(t *testing.T) {
	f := Friction{Ground: 5, Brake: 3}
	assert.Zero(t, f.Apply(200, true, true, false, 1))
	assert.Zero(t, f.Apply(-200, false, false, true, 1))
}

func TestFrictionCases(t *testing.T) {
	f := Friction{Ground: 5, Brake: 3}
	dt := 0.01

	// driving along the velocity on the ground: no friction
	assert.Equal(t, 100.0, f.Apply(100, true, false, true, dt))
	// airborne, no input: no friction
	assert.Equal(t, 100.0, f.Apply(100, false, false, false, dt))
	// airborne brake only
	assert.InDelta(t, 97.0, f.Apply(100, false, true, false, dt), 1e-9)
	// grounded and opposing: both
	assert.InDelta(t, 92.0, f.Apply(100, true, true, false, dt), 1e-9)
	assert.InDelta(t, -95.0, f.Apply(-100, true, false, false, dt), 1e-9)
}
