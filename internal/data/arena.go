package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bulletbrawl/arena/internal/input"
)

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PlatformEntry is a platform by center and full size.
type PlatformEntry struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Arena describes the playfield. Positions grow right and down.
type Arena struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// KillY is the fall-death line; players below it lose a life.
	KillY float64 `yaml:"kill_y"`
	// RespawnY is the height respawned players drop in from.
	RespawnY     float64         `yaml:"respawn_y"`
	Platforms    []PlatformEntry `yaml:"platforms"`
	SpawnPoints  []Point         `yaml:"spawn_points"`
	PlayerSpawns []Point         `yaml:"player_spawns"`
}

// LoadArena loads arena.yaml.
func LoadArena(path string) (*Arena, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read arena: %w", err)
	}
	var a Arena
	if err := yaml.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("parse arena: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

func (a *Arena) Validate() error {
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("arena: width and height must be positive")
	}
	if len(a.Platforms) == 0 {
		return fmt.Errorf("arena: no platforms")
	}
	if len(a.PlayerSpawns) != 2 {
		return fmt.Errorf("arena: need 2 player_spawns, got %d", len(a.PlayerSpawns))
	}
	if a.KillY <= a.Height {
		return fmt.Errorf("arena: kill_y %.0f must be below the arena (height %.0f)", a.KillY, a.Height)
	}
	for i, p := range a.Platforms {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("arena: platform %d has empty size", i)
		}
	}
	return nil
}

// PlatformSpan returns the leftmost and rightmost platform edges.
func (a *Arena) PlatformSpan() (left, right float64) {
	for i, p := range a.Platforms {
		l, r := p.X-p.Width/2, p.X+p.Width/2
		if i == 0 || l < left {
			left = l
		}
		if i == 0 || r > right {
			right = r
		}
	}
	return left, right
}

// LoadKeymaps loads the two players' bindings from keymaps.yaml.
func LoadKeymaps(path string) ([2]input.Keymap, error) {
	var maps [2]input.Keymap
	raw, err := os.ReadFile(path)
	if err != nil {
		return maps, fmt.Errorf("read keymaps: %w", err)
	}
	var file struct {
		Players []input.Keymap `yaml:"players"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return maps, fmt.Errorf("parse keymaps: %w", err)
	}
	if len(file.Players) != 2 {
		return maps, fmt.Errorf("keymaps: need 2 players, got %d", len(file.Players))
	}
	for i, k := range file.Players {
		if err := k.Validate(); err != nil {
			return maps, fmt.Errorf("player %d: %w", i, err)
		}
		maps[i] = k
	}
	return maps, nil
}
