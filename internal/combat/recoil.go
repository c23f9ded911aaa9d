package combat

import "math"

// Recoil animation limits.
const (
	MaxRecoilAngle  = math.Pi / 15
	MaxRecoilOffset = 5.0
)

// RecoilPose computes the gun's animation offsets from its fire-rate timer.
// Only the part of the cooldown with timer >= rate*still is animated; within
// it the kick rises linearly to its peak at the midpoint and returns linearly
// to neutral. Outside it the pose is neutral.
func RecoilPose(timerMs, rateMs, still float64) (angle, offset float64) {
	window := rateMs - rateMs*still
	left := timerMs - rateMs*still
	if window <= 0 || left <= 0 || left > window {
		return 0, 0
	}
	half := window / 2
	var t float64
	if left > half {
		t = (window - left) / half
	} else {
		t = left / half
	}
	return MaxRecoilAngle * t, MaxRecoilOffset * t
}
