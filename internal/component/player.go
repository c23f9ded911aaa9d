package component

import (
	"github.com/bulletbrawl/arena/internal/core/clock"
	"github.com/bulletbrawl/arena/internal/core/ecs"
	"github.com/bulletbrawl/arena/internal/input"
	"github.com/bulletbrawl/arena/internal/modifier"
)

// Player is the fighter state. Stats carries the modifiable attributes;
// power-ups and the equipped gun change them through the modifier package.
type Player struct {
	Slot        int
	Grounded    bool
	FacingRight bool

	modifier.Stats
	JumpRemaining int
	JumpDelay     clock.Countdown

	Lives        int
	RunningLeft  bool
	RunningRight bool
	Crouching    bool

	Gun ecs.EntityID
}

// Controller binds a player to its keys and holds this frame's intent.
type Controller struct {
	Keymap input.Keymap
	Intent input.Intent
}

// Buffs is the per-player stat modifier ledger.
type Buffs struct {
	Ledger *modifier.Ledger
}

// Invincibility suppresses knockback until the timer runs out.
type Invincibility struct {
	Timer clock.Countdown
}
