package combat

import (
	"fmt"
	"math"
	"strings"
)

// Falloff selects how a projectile's knockback changes with distance traveled.
type Falloff uint8

const (
	FalloffNone Falloff = iota
	FalloffDropOff
	FalloffBonus
)

func (f Falloff) String() string {
	switch f {
	case FalloffDropOff:
		return "dropoff"
	case FalloffBonus:
		return "bonus"
	}
	return "none"
}

// ParseFalloff accepts "none", "dropoff" or "bonus" (case-insensitive).
func ParseFalloff(s string) (Falloff, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FalloffNone, nil
	case "dropoff", "drop-off", "drop_off":
		return FalloffDropOff, nil
	case "bonus":
		return FalloffBonus, nil
	}
	return FalloffNone, fmt.Errorf("unknown falloff %q", s)
}

// KnockbackContext carries one bullet hit into a Calculator.
type KnockbackContext struct {
	Base     float64
	Distance float64 // |bullet.x - spawnX|, ignored for hitscan
	Coeff    float64
	Falloff  Falloff
	Hitscan  bool
}

// Calculator turns a hit into an unsigned knockback magnitude.
type Calculator interface {
	Knockback(ctx KnockbackContext) float64
}

// Formula is the built-in Calculator.
type Formula struct{}

func (Formula) Knockback(ctx KnockbackContext) float64 {
	if ctx.Hitscan {
		return ctx.Base
	}
	switch ctx.Falloff {
	case FalloffDropOff:
		return DropOff(ctx.Base, ctx.Distance, ctx.Coeff)
	case FalloffBonus:
		return Bonus(ctx.Base, ctx.Distance, ctx.Coeff)
	}
	return ctx.Base
}

// DropOff decays knockback with range and floors at zero.
func DropOff(base, distance, coeff float64) float64 {
	penalty := math.Min(distance*0.5*coeff, base)
	return base - penalty
}

// Bonus grows knockback with range without bound.
func Bonus(base, distance, coeff float64) float64 {
	return base + distance*coeff
}

// Impulse signs a magnitude by the direction of travel and scales it by the
// victim's knockback resistance multiplier. The result is added to the
// victim's horizontal velocity.
func Impulse(magnitude, direction, resistance float64) float64 {
	sign := 1.0
	if direction < 0 {
		sign = -1.0
	}
	return sign * magnitude * resistance
}
