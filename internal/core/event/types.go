package event

import (
	"time"

	"github.com/bulletbrawl/arena/internal/core/ecs"
)

// Cue identifies a sound the audio collaborator should play.
type Cue uint8

const (
	CueShoot Cue = iota + 1
	CueReload
	CuePickup
	CueHit
	CueFall
)

func (c Cue) String() string {
	switch c {
	case CueShoot:
		return "shoot"
	case CueReload:
		return "reload"
	case CuePickup:
		return "pickup"
	case CueHit:
		return "hit"
	case CueFall:
		return "fall"
	}
	return "unknown"
}

// SoundCue asks the audio collaborator to play a cue. Weapon is set for
// shoot and reload cues.
type SoundCue struct {
	Cue    Cue
	Weapon string
	Entity ecs.EntityID
}

// EntityDestroyed is emitted when a gameplay entity leaves the world.
type EntityDestroyed struct {
	Entity ecs.EntityID
	Kind   string
}

// StatChanged reports a stat modifier being applied or reverted on a player.
type StatChanged struct {
	Player   ecs.EntityID
	Modifier string
	Applied  bool
}

// LifeLost is emitted when a player falls past the kill line.
type LifeLost struct {
	Player    ecs.EntityID
	Slot      int
	Remaining int
	Elapsed   time.Duration // match clock at the fall
}

// GunDropped is emitted when an empty gun is discarded.
type GunDropped struct {
	Player ecs.EntityID
	Gun    ecs.EntityID
	Weapon string
}

// WinnerDetermined ends the match.
type WinnerDetermined struct {
	Winner ecs.EntityID
	Slot   int
	Loser  ecs.EntityID
}
