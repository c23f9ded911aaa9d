package modifier

import (
	"fmt"
	"time"
)

// Stats are the player attributes stat modifiers act on.
type Stats struct {
	MaxJumps            int
	JumpForce           float64
	RunningForce        float64
	MaxSpeed            float64
	KnockbackResistance float64 // multiplier on received knockback, 1 = full
}

// StatModifier is a named bundle of deltas. The three force/speed fields are
// multipliers, ExtraJumps is added to MaxJumps and KnockbackResistance is
// subtracted from the player's resistance multiplier. Duration 0 means the
// modifier never expires on its own (weapon modifiers).
type StatModifier struct {
	Name                string
	ExtraJumps          int
	JumpForce           float64
	RunningForce        float64
	MaxSpeed            float64
	KnockbackResistance float64
	Duration            time.Duration
}

// Neutral returns a modifier that changes nothing.
func Neutral(name string) StatModifier {
	return StatModifier{Name: name, JumpForce: 1, RunningForce: 1, MaxSpeed: 1}
}

// Timed reports whether the modifier expires by itself.
func (m StatModifier) Timed() bool { return m.Duration > 0 }

// Validate rejects multipliers that Remove could not divide back out.
func (m StatModifier) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("stat modifier without name")
	}
	if m.JumpForce <= 0 || m.RunningForce <= 0 || m.MaxSpeed <= 0 {
		return fmt.Errorf("stat modifier %q: multipliers must be positive", m.Name)
	}
	if m.Duration < 0 {
		return fmt.Errorf("stat modifier %q: negative duration", m.Name)
	}
	return nil
}

// Apply adds m's deltas to s.
func Apply(s *Stats, m StatModifier) {
	s.MaxJumps += m.ExtraJumps
	s.JumpForce *= m.JumpForce
	s.RunningForce *= m.RunningForce
	s.MaxSpeed *= m.MaxSpeed
	s.KnockbackResistance -= m.KnockbackResistance
}

// Remove is the exact inverse of Apply.
func Remove(s *Stats, m StatModifier) {
	s.MaxJumps -= m.ExtraJumps
	s.JumpForce /= m.JumpForce
	s.RunningForce /= m.RunningForce
	s.MaxSpeed /= m.MaxSpeed
	s.KnockbackResistance += m.KnockbackResistance
}
