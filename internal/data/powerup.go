package data

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bulletbrawl/arena/internal/modifier"
)

// PowerUpEntry defines a timed pickup.
type PowerUpEntry struct {
	Name       string        `yaml:"name"`
	DurationMs int           `yaml:"duration_ms"`
	Modifier   ModifierEntry `yaml:"modifier"`
}

func (p *PowerUpEntry) StatModifier() modifier.StatModifier {
	return p.Modifier.Stat(p.Name, time.Duration(p.DurationMs)*time.Millisecond)
}

type PowerUpTable struct {
	entries []*PowerUpEntry
	byName  map[string]*PowerUpEntry
}

// LoadPowerUpTable loads powerups.yaml.
func LoadPowerUpTable(path string) (*PowerUpTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read powerups: %w", err)
	}
	var file struct {
		PowerUps []PowerUpEntry `yaml:"powerups"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse powerups: %w", err)
	}
	return NewPowerUpTable(file.PowerUps)
}

func NewPowerUpTable(entries []PowerUpEntry) (*PowerUpTable, error) {
	t := &PowerUpTable{byName: make(map[string]*PowerUpEntry, len(entries))}
	for i := range entries {
		e := &entries[i]
		if e.DurationMs <= 0 {
			return nil, fmt.Errorf("powerup %q: duration_ms must be positive", e.Name)
		}
		if err := e.StatModifier().Validate(); err != nil {
			return nil, fmt.Errorf("powerup %d: %w", i, err)
		}
		if _, dup := t.byName[e.Name]; dup {
			return nil, fmt.Errorf("powerup %q defined twice", e.Name)
		}
		t.entries = append(t.entries, e)
		t.byName[e.Name] = e
	}
	return t, nil
}

func (t *PowerUpTable) Get(name string) *PowerUpEntry { return t.byName[name] }

func (t *PowerUpTable) Count() int { return len(t.entries) }

// Random picks a power-up, nil when the table is empty.
func (t *PowerUpTable) Random(rng *rand.Rand) *PowerUpEntry {
	if len(t.entries) == 0 {
		return nil
	}
	return t.entries[rng.Intn(len(t.entries))]
}
