package data

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bulletbrawl/arena/internal/combat"
	"github.com/bulletbrawl/arena/internal/modifier"
)

// WeaponEntry defines one gun.
type WeaponEntry struct {
	Name            string         `yaml:"name"`
	Starting        bool           `yaml:"starting"`
	InfiniteAmmo    bool           `yaml:"infinite_ammo"`
	FireRateMs      float64        `yaml:"fire_rate_ms"`
	ReloadMs        float64        `yaml:"reload_ms"`
	Magazine        int            `yaml:"magazine"`
	Reserve         int            `yaml:"reserve"`
	MuzzleVelocity  float64        `yaml:"muzzle_velocity"`
	Knockback       float64        `yaml:"knockback"`
	Falloff         string         `yaml:"falloff"`
	FalloffCoeff    float64        `yaml:"falloff_coeff"`
	Recoil          float64        `yaml:"recoil"`
	RecoilAnimation float64        `yaml:"recoil_animation"`
	Hitscan         bool           `yaml:"hitscan"`
	HitscanWidth    float64        `yaml:"hitscan_width"`
	HitscanHeight   float64        `yaml:"hitscan_height"`
	Width           float64        `yaml:"width"`
	Height          float64        `yaml:"height"`
	Modifier        *ModifierEntry `yaml:"modifier"`

	falloff combat.Falloff
}

// FalloffKind is the parsed falloff mode.
func (w *WeaponEntry) FalloffKind() combat.Falloff { return w.falloff }

// StatModifier is the modifier applied while the gun is held.
func (w *WeaponEntry) StatModifier() modifier.StatModifier {
	m := neutralEntry()
	if w.Modifier != nil {
		m = *w.Modifier
	}
	return m.Stat(w.Name+" Stat", 0)
}

func (w *WeaponEntry) validate() error {
	f, err := combat.ParseFalloff(w.Falloff)
	if err != nil {
		return err
	}
	w.falloff = f
	switch {
	case w.Name == "":
		return fmt.Errorf("weapon without name")
	case w.FireRateMs <= 0:
		return fmt.Errorf("fire_rate_ms must be positive")
	case w.Magazine <= 0:
		return fmt.Errorf("magazine must be positive")
	case w.Reserve < 0:
		return fmt.Errorf("reserve must not be negative")
	case w.RecoilAnimation < 0 || w.RecoilAnimation > 1:
		return fmt.Errorf("recoil_animation must be within [0,1]")
	case w.Hitscan && (w.HitscanWidth <= 0 || w.HitscanHeight <= 0):
		return fmt.Errorf("hitscan weapon needs hitscan_width and hitscan_height")
	case !w.Hitscan && w.MuzzleVelocity <= 0:
		return fmt.Errorf("projectile weapon needs muzzle_velocity")
	case w.Width <= 0 || w.Height <= 0:
		return fmt.Errorf("width and height must be positive")
	}
	return w.StatModifier().Validate()
}

// WeaponTable holds the weapon catalog in file order.
type WeaponTable struct {
	entries  []*WeaponEntry
	byName   map[string]*WeaponEntry
	starting *WeaponEntry
}

// LoadWeaponTable loads weapons.yaml.
func LoadWeaponTable(path string) (*WeaponTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weapons: %w", err)
	}
	var file struct {
		Weapons []WeaponEntry `yaml:"weapons"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse weapons: %w", err)
	}
	return NewWeaponTable(file.Weapons)
}

// NewWeaponTable validates entries and indexes them by name. Exactly one
// entry must be the starting weapon.
func NewWeaponTable(entries []WeaponEntry) (*WeaponTable, error) {
	t := &WeaponTable{byName: make(map[string]*WeaponEntry, len(entries))}
	for i := range entries {
		e := &entries[i]
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("weapon %d (%s): %w", i, e.Name, err)
		}
		if _, dup := t.byName[e.Name]; dup {
			return nil, fmt.Errorf("weapon %q defined twice", e.Name)
		}
		if e.Starting {
			if t.starting != nil {
				return nil, fmt.Errorf("weapons %q and %q both marked starting", t.starting.Name, e.Name)
			}
			t.starting = e
		}
		t.entries = append(t.entries, e)
		t.byName[e.Name] = e
	}
	if t.starting == nil {
		return nil, fmt.Errorf("no starting weapon")
	}
	return t, nil
}

// Get returns the named weapon, or nil.
func (t *WeaponTable) Get(name string) *WeaponEntry {
	return t.byName[name]
}

// Starting returns the weapon every player respawns with.
func (t *WeaponTable) Starting() *WeaponEntry { return t.starting }

func (t *WeaponTable) Count() int { return len(t.entries) }

func (t *WeaponTable) Names() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Name
	}
	return out
}

// Random picks a non-starting weapon for a mystery box. Falls back to the
// starting weapon when the catalog has nothing else.
func (t *WeaponTable) Random(rng *rand.Rand) *WeaponEntry {
	n := len(t.entries) - 1
	if n <= 0 {
		return t.starting
	}
	k := rng.Intn(n)
	for _, e := range t.entries {
		if e == t.starting {
			continue
		}
		if k == 0 {
			return e
		}
		k--
	}
	return t.starting
}
