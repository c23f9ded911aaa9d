package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput     Phase = iota // 0: dispatch last frame's events, intents → movement
	PhasePrePhysics             // 1: one-way platform collider refresh
	PhaseMotion                 // 2: gravity, friction, integration
	PhaseDetect                 // 3: rebuild collision event lists
	PhaseResolve                // 4: drain collision events
	PhaseWeapon                 // 5: gun timers, firing, hitscan
	PhaseLifecycle              // 6: modifier expiry, respawn, drops, bounds
	PhaseOutput                 // 7: snapshots for render/spectators
	PhaseCleanup                // 8: destroy queued entities
)

var phaseNames = [...]string{"input", "pre-physics", "motion", "detect", "resolve", "weapon", "lifecycle", "output", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every simulation system implements. dt is the
// frame's delta time; systems never read the wall clock.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
