// Package tween interpolates values over wall-clock time.
package tween

import (
	"time"

	"github.com/gen2brain/raylib-go/easings"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// EaseFunc maps normalized progress in [0,1] to an interpolation factor.
type EaseFunc func(t float32) float32

// CubicOut is 1-(1-t)^3: fast start, slow end.
func CubicOut(t float32) float32 {
	t = clamp01(t)
	if t == 1 {
		return 1
	}
	return easings.CubicOut(t, 0, 1, 1)
}

func Linear(t float32) float32 {
	return clamp01(t)
}

// Progress normalizes elapsed time against duration into [0,1].
// A non-positive duration is complete immediately.
func Progress(elapsed, duration time.Duration) float32 {
	if duration <= 0 {
		return 1
	}
	return clamp01(float32(float64(elapsed) / float64(duration)))
}

func Lerp(a, b, f float32) float32 {
	return a + (b-a)*f
}

func LerpVec3(a, b rl.Vector3, f float32) rl.Vector3 {
	return rl.Vector3{
		X: Lerp(a.X, b.X, f),
		Y: Lerp(a.Y, b.Y, f),
		Z: Lerp(a.Z, b.Z, f),
	}
}

func clamp01(t float32) float32 {
	if t < 0 || t != t {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
