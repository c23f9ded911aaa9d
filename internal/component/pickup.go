package component

import "github.com/bulletbrawl/arena/internal/modifier"

// Platform is one-way: it only holds a player whose feet are at or above
// its top. ActiveFor is recomputed every frame per player slot.
type Platform struct {
	ActiveFor [2]bool
}

// PowerUp grants a timed stat modifier on contact.
type PowerUp struct {
	Modifier modifier.StatModifier
}

// MysteryBox swaps the collector's gun for Weapon.
type MysteryBox struct {
	Weapon string
}
