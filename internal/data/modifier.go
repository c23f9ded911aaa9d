package data

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bulletbrawl/arena/internal/modifier"
)

// ModifierEntry is the yaml form of a stat modifier. Omitted multipliers
// default to 1.
type ModifierEntry struct {
	ExtraJumps          int     `yaml:"extra_jumps"`
	JumpForce           float64 `yaml:"jump_force"`
	RunningForce        float64 `yaml:"running_force"`
	MaxSpeed            float64 `yaml:"max_speed"`
	KnockbackResistance float64 `yaml:"knockback_resistance"`
}

func (m *ModifierEntry) UnmarshalYAML(n *yaml.Node) error {
	type raw ModifierEntry
	r := raw{JumpForce: 1, RunningForce: 1, MaxSpeed: 1}
	if err := n.Decode(&r); err != nil {
		return err
	}
	*m = ModifierEntry(r)
	return nil
}

// Stat builds the runtime modifier.
func (m ModifierEntry) Stat(name string, d time.Duration) modifier.StatModifier {
	return modifier.StatModifier{
		Name:                name,
		ExtraJumps:          m.ExtraJumps,
		JumpForce:           m.JumpForce,
		RunningForce:        m.RunningForce,
		MaxSpeed:            m.MaxSpeed,
		KnockbackResistance: m.KnockbackResistance,
		Duration:            d,
	}
}

func neutralEntry() ModifierEntry {
	return ModifierEntry{JumpForce: 1, RunningForce: 1, MaxSpeed: 1}
}
