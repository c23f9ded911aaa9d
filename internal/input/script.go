package input

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Step holds keys down for one player over [From, To).
type Step struct {
	Player int      `yaml:"player"`
	FromMs int      `yaml:"from_ms"`
	ToMs   int      `yaml:"to_ms"`
	Keys   []string `yaml:"keys"`
}

// Script replays recorded key presses for headless runs.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// LoadScript loads a scripted input yaml.
func LoadScript(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	for i, st := range s.Steps {
		if st.Player < 0 || st.Player > 1 {
			return nil, fmt.Errorf("input script step %d: player %d out of range", i, st.Player)
		}
		if st.ToMs <= st.FromMs {
			return nil, fmt.Errorf("input script step %d: empty interval", i)
		}
	}
	return &s, nil
}

// Pressed returns the key predicate for one player at time at.
func (s *Script) Pressed(player int, at time.Duration) func(string) bool {
	ms := int(at / time.Millisecond)
	return func(key string) bool {
		for _, st := range s.Steps {
			if st.Player != player || ms < st.FromMs || ms >= st.ToMs {
				continue
			}
			for _, k := range st.Keys {
				if k == key {
					return true
				}
			}
		}
		return false
	}
}

// Length is the time of the last scripted release.
func (s *Script) Length() time.Duration {
	end := 0
	for _, st := range s.Steps {
		if st.ToMs > end {
			end = st.ToMs
		}
	}
	return time.Duration(end) * time.Millisecond
}
