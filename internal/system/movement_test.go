package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulletbrawl/arena/internal/component"
	"github.com/bulletbrawl/arena/internal/data"
	"github.com/bulletbrawl/arena/internal/world"
)

func TestPlayersSettleOnFloor(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(2)

	for slot := 0; slot < 2; slot++ {
		_, p, m := h.player(slot)
		assert.True(t, p.Grounded)
		assert.Equal(t, 360.0, m.Position[1])
		assert.Zero(t, m.Velocity[1])
	}
}

func TestGroundFrictionDecaysToExactlyZero(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(2)
	_, _, m := h.player(0)
	m.Velocity[0] = 300

	prev := m.Velocity[0]
	for i := 0; i < 300; i++ {
		h.tick(1)
		vx := m.Velocity[0]
		require.GreaterOrEqual(t, vx, 0.0, "friction reversed the slide at frame %d", i)
		require.LessOrEqual(t, vx, prev)
		prev = vx
	}
	assert.Zero(t, m.Velocity[0])
}

func TestJumpBudgetResetsOnLanding(t *testing.T) {
	h := newHarness(t, nil)
	_, p, m := h.player(0)
	p.JumpRemaining = 0
	m.Position[1] = 250
	m.Velocity[1] = 100

	for i := 0; i < 60 && !p.Grounded; i++ {
		h.tick(1)
	}
	require.True(t, p.Grounded)
	assert.Equal(t, p.MaxJumps, p.JumpRemaining)
	assert.Equal(t, 360.0, m.Position[1])
}

func TestGroundJumpKeepsAirJumpAndDelayGatesIt(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(2)
	_, p, m := h.player(0)
	h.intent(0, func(c *component.Controller) { c.Intent.Jump = true })

	h.tick(1)
	assert.Less(t, m.Velocity[1], 0.0)
	assert.False(t, p.Grounded)
	assert.Equal(t, 1, p.JumpRemaining)

	// held jump: the air jump waits out the 300ms delay
	h.tick(10)
	assert.Equal(t, 1, p.JumpRemaining)

	h.tick(15)
	assert.Equal(t, 0, p.JumpRemaining)
}

func TestRunningRespectsMaxSpeed(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(2)
	_, p, m := h.player(0)
	h.intent(0, func(c *component.Controller) { c.Intent.MoveRight = true })

	h.tick(60)
	assert.True(t, p.RunningRight)
	assert.True(t, p.FacingRight)
	assert.Greater(t, m.Velocity[0], 0.0)
	assert.LessOrEqual(t, m.Velocity[0], p.MaxSpeed+p.RunningForce*frame.Seconds())

	h.intent(0, func(c *component.Controller) { c.Intent.MoveRight, c.Intent.MoveLeft = false, true })
	h.tick(1)
	assert.False(t, p.FacingRight)
	assert.True(t, p.RunningLeft)
}

func TestPlatformIsOneWayFromBelow(t *testing.T) {
	h := newHarness(t, nil)
	_, p, m := h.player(0)
	// feet below the platform top, sinking slowly
	m.Position[1] = 395
	m.Velocity[1] = 10

	h.tick(1)
	assert.False(t, p.Grounded)
	assert.Greater(t, m.Position[1], 380.0)

	floor := h.world.Platforms.Entities()[0]
	plat, _ := h.world.Platforms.Get(floor)
	assert.False(t, plat.ActiveFor[0])
	assert.True(t, plat.ActiveFor[1])
}

func TestCrouchDropsThroughPlatform(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(2)
	_, p, m := h.player(0)
	h.intent(0, func(c *component.Controller) { c.Intent.Crouch = true })

	h.tick(5)
	assert.False(t, p.Grounded)
	assert.Greater(t, m.Position[1], 361.0)
}

func TestOverlappingPlatformsGroundOnce(t *testing.T) {
	h := newHarness(t, nil)
	h.world.CreatePlatform(data.PlatformEntry{X: 300, Y: 400, Width: 200, Height: 20})
	h.tick(2)

	id, p, m := h.player(0)
	assert.True(t, p.Grounded)
	assert.Equal(t, p.MaxJumps, p.JumpRemaining)
	assert.Equal(t, 360.0, m.Position[1])
	assert.Zero(t, m.Velocity[1])

	var events int
	for _, pair := range h.world.Collisions.Of(world.PlayerPlatform) {
		if pair.A == id {
			events++
		}
	}
	assert.Equal(t, 2, events)
}
