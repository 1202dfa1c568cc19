package physics

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	DefaultFixedStep   = float32(1.0 / 60.0)
	DefaultMaxSubSteps = 5
)

// Ground is an upward-facing static plane. A zero HalfExtent makes it infinite;
// otherwise it only supports bodies whose center is inside the square.
type Ground struct {
	Enabled    bool
	Y          float32
	HalfExtent float32
	Friction   float32
}

func (g Ground) supports(p rl.Vector3) bool {
	if !g.Enabled {
		return false
	}
	if g.HalfExtent <= 0 {
		return true
	}
	return absf(p.X) <= g.HalfExtent && absf(p.Z) <= g.HalfExtent
}

// World steps box bodies against gravity, a ground plane and each other.
type World struct {
	Gravity     rl.Vector3
	Ground      Ground
	FixedStep   float32
	MaxSubSteps int

	bodies      []*Body
	accumulator float32
}

func NewWorld() *World {
	return &World{
		Gravity:     rl.Vector3{X: 0, Y: -9.82, Z: 0},
		Ground:      Ground{Enabled: true, Y: 0, Friction: 0.3},
		FixedStep:   DefaultFixedStep,
		MaxSubSteps: DefaultMaxSubSteps,
		bodies:      make([]*Body, 0),
	}
}

func (w *World) AddBody(b *Body) {
	if b == nil || w.Contains(b) {
		return
	}
	w.bodies = append(w.bodies, b)
}

func (w *World) RemoveBody(b *Body) bool {
	for i, obj := range w.bodies {
		if obj == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return true
		}
	}
	return false
}

func (w *World) Contains(b *Body) bool {
	for _, obj := range w.bodies {
		if obj == b {
			return true
		}
	}
	return false
}

func (w *World) Len() int {
	return len(w.bodies)
}

// Clear drops every body.
func (w *World) Clear() {
	w.bodies = w.bodies[:0]
	w.accumulator = 0
}

// Step advances the simulation by dt seconds in fixed sub-steps and returns how
// many sub-steps ran. Time beyond MaxSubSteps is discarded so a stalled frame
// cannot spiral.
func (w *World) Step(dt float32) int {
	if dt <= 0 {
		return 0
	}
	w.accumulator += dt
	steps := 0
	for w.accumulator >= w.FixedStep && steps < w.MaxSubSteps {
		w.substep(w.FixedStep)
		w.accumulator -= w.FixedStep
		steps++
	}
	if steps == w.MaxSubSteps && w.accumulator >= w.FixedStep {
		log.Printf("Physics: dropping %.3fs of simulation time", w.accumulator)
		w.accumulator = 0
	}
	return steps
}

func (w *World) substep(dt float32) {
	// 1. Integrate
	for _, b := range w.bodies {
		if b.IsSleeping {
			continue
		}
		if b.UseGravity {
			b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(w.Gravity, dt))
		}
		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, dt))
		b.Rotation = rl.Vector3Add(b.Rotation, rl.Vector3Scale(b.AngularVelocity, dt))

		// time-based so it's framerate independent
		damping := float32(1.0) - (1.0-b.AngularDamping)*dt*60
		if damping < 0 {
			damping = 0
		}
		b.AngularVelocity = rl.Vector3Scale(b.AngularVelocity, damping)
	}

	// 2. Body vs body
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			w.resolvePair(w.bodies[i], w.bodies[j])
		}
	}

	// 3. Body vs ground, last so nothing is left below the plane
	for _, b := range w.bodies {
		if !b.IsSleeping {
			w.resolveGround(b, dt)
			b.TrySleep(dt)
		}
	}
}
