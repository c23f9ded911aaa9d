package data

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulletbrawl/arena/internal/combat"
)

const yamlDir = "../../data/yaml"

func TestShippedWeaponTable(t *testing.T) {
	tbl, err := LoadWeaponTable(filepath.Join(yamlDir, "weapons.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5, tbl.Count())
	assert.Equal(t, "Pistol", tbl.Starting().Name)
	assert.True(t, tbl.Starting().InfiniteAmmo)

	shotgun := tbl.Get("Shotgun")
	require.NotNil(t, shotgun)
	assert.True(t, shotgun.Hitscan)
	assert.Equal(t, combat.FalloffNone, shotgun.FalloffKind())
	assert.Equal(t, combat.FalloffBonus, tbl.Get("Sniper Rifle").FalloffKind())

	smg := tbl.Get("Submachine Gun").StatModifier()
	assert.Equal(t, "Submachine Gun Stat", smg.Name)
	assert.Equal(t, 1.3, smg.MaxSpeed)
	assert.False(t, smg.Timed())

	// omitted multipliers default to 1
	ar := tbl.Get("Assault Rifle").StatModifier()
	assert.Equal(t, 1.0, ar.JumpForce)

	pistol := tbl.Starting().StatModifier()
	assert.Equal(t, 1.0, pistol.RunningForce)
}

func TestWeaponTableRandomSkipsStarting(t *testing.T) {
	tbl, err := LoadWeaponTable(filepath.Join(yamlDir, "weapons.yaml"))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[tbl.Random(rng).Name] = true
	}
	assert.False(t, seen["Pistol"])
	assert.Len(t, seen, 4)
}

func TestWeaponValidation(t *testing.T) {
	base := WeaponEntry{
		Name: "Gun", Starting: true, FireRateMs: 100, Magazine: 1,
		MuzzleVelocity: 100, Width: 10, Height: 10,
	}

	_, err := NewWeaponTable([]WeaponEntry{base})
	require.NoError(t, err)

	noStart := base
	noStart.Starting = false
	_, err = NewWeaponTable([]WeaponEntry{noStart})
	assert.ErrorContains(t, err, "no starting weapon")

	badMod := base
	badMod.Modifier = &ModifierEntry{JumpForce: 0, RunningForce: 1, MaxSpeed: 1}
	_, err = NewWeaponTable([]WeaponEntry{badMod})
	assert.ErrorContains(t, err, "multipliers must be positive")

	badFalloff := base
	badFalloff.Falloff = "quadratic"
	_, err = NewWeaponTable([]WeaponEntry{badFalloff})
	assert.Error(t, err)

	hitscan := base
	hitscan.Hitscan = true
	_, err = NewWeaponTable([]WeaponEntry{hitscan})
	assert.ErrorContains(t, err, "hitscan_width")

	_, err = NewWeaponTable([]WeaponEntry{base, base})
	assert.Error(t, err)
}

func TestShippedPowerUps(t *testing.T) {
	tbl, err := LoadPowerUpTable(filepath.Join(yamlDir, "powerups.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Count())

	tj := tbl.Get("Triple Jump").StatModifier()
	assert.Equal(t, 1, tj.ExtraJumps)
	assert.Equal(t, 5*time.Second, tj.Duration)
	assert.Equal(t, 1.0, tj.MaxSpeed)

	assert.NotNil(t, tbl.Random(rand.New(rand.NewSource(1))))
	empty, err := NewPowerUpTable(nil)
	require.NoError(t, err)
	assert.Nil(t, empty.Random(rand.New(rand.NewSource(1))))
}

func TestShippedArena(t *testing.T) {
	a, err := LoadArena(filepath.Join(yamlDir, "arena.yaml"))
	require.NoError(t, err)
	assert.Len(t, a.Platforms, 4)

	left, right := a.PlatformSpan()
	assert.Equal(t, 200.0, left)
	assert.Equal(t, 1000.0, right)
}

func TestArenaValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 100\nheight: 100\nkill_y: 50\nplatforms: [{x: 0, y: 0, width: 10, height: 1}]\nplayer_spawns: [{x: 0, y: 0}, {x: 1, y: 0}]\n"), 0o644))
	_, err := LoadArena(path)
	assert.ErrorContains(t, err, "kill_y")
}

func TestShippedKeymaps(t *testing.T) {
	maps, err := LoadKeymaps(filepath.Join(yamlDir, "keymaps.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "W", maps[0].Up)
	assert.Equal(t, "Slash", maps[1].Primary)
}
