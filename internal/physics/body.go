package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.15 // units/sec
	SleepAngularThreshold  = 0.05 // rad/sec
	SleepTimeThreshold     = 0.5  // seconds of low velocity before sleeping
)

// Body is a dynamic box. Static geometry is modelled by the world's ground plane.
type Body struct {
	Position        rl.Vector3
	Rotation        rl.Vector3 // Euler angles in radians, same convention as engine.Transform
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // radians per second on each axis
	HalfExtents     rl.Vector3
	Mass            float32
	Restitution     float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32 // 0 = ice, 1 = stops immediately
	AngularDamping  float32 // fraction of spin kept per 1/60s
	UseGravity      bool

	IsSleeping bool
	CanSleep   bool
	sleepTimer float32
}

// NewBoxBody returns a gravity-driven cube with edge length size.
func NewBoxBody(size, mass, restitution float32) *Body {
	if mass <= 0 {
		mass = 1
	}
	h := size / 2
	return &Body{
		HalfExtents:    rl.Vector3{X: h, Y: h, Z: h},
		Mass:           mass,
		Restitution:    restitution,
		Friction:       0.3,
		AngularDamping: 0.98,
		UseGravity:     true,
		CanSleep:       true,
	}
}

func (b *Body) OBB() OBB {
	return NewOBB(b.Position, rl.Vector3Scale(b.HalfExtents, 2), b.Rotation)
}

// Wake forces the body out of sleep state
func (b *Body) Wake() {
	b.IsSleeping = false
	b.sleepTimer = 0
}

// TrySleep puts the body to sleep after it stays below the velocity thresholds
// for SleepTimeThreshold seconds.
func (b *Body) TrySleep(dt float32) {
	if !b.CanSleep || b.IsSleeping {
		return
	}
	speed := rl.Vector3Length(b.Velocity)
	angSpeed := rl.Vector3Length(b.AngularVelocity)
	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		b.sleepTimer += dt
		if b.sleepTimer >= SleepTimeThreshold {
			b.IsSleeping = true
			b.Velocity = rl.Vector3{}
			b.AngularVelocity = rl.Vector3{}
		}
	} else {
		b.sleepTimer = 0
	}
}
