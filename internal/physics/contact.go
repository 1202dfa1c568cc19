package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Scale from contact torque to angular velocity change.
const torqueScale = float32(0.15)

// resolveGround pushes the lowest corner of b back onto the plane and bounces it.
func (w *World) resolveGround(b *Body, dt float32) {
	if !w.Ground.supports(b.Position) {
		return
	}
	corners := b.OBB().Corners()
	lowest := corners[0]
	for _, c := range corners[1:] {
		if c.Y < lowest.Y {
			lowest = c
		}
	}
	penetration := w.Ground.Y - lowest.Y
	if penetration <= 0 {
		return
	}

	b.Position.Y += penetration
	lowest.Y += penetration

	if b.Velocity.Y < 0 {
		impact := -b.Velocity.Y
		b.Velocity.Y = impact * b.Restitution
		if b.Velocity.Y < 0.5 {
			b.Velocity.Y = 0
		}

		// Off-center contact tips the box.
		arm := rl.Vector3Subtract(lowest, b.Position)
		impulse := rl.Vector3{Y: impact * b.Mass * (1 + b.Restitution)}
		torque := rl.Vector3CrossProduct(arm, impulse)
		b.AngularVelocity = rl.Vector3Add(b.AngularVelocity, rl.Vector3Scale(torque, torqueScale/b.Mass))
	}

	friction := clampf((b.Friction+w.Ground.Friction)/2*dt*60, 0, 1)
	b.Velocity.X *= 1 - friction
	b.Velocity.Z *= 1 - friction

	w.settleFlat(b, dt)
}

// settleFlat applies off-center gravity torque to tip a slow, grounded box onto
// whichever face is closest to pointing up.
func (w *World) settleFlat(b *Body, dt float32) {
	if rl.Vector3Length(b.Velocity) > 2.0 {
		return
	}
	obb := b.OBB()
	worldUp := rl.Vector3{X: 0, Y: 1, Z: 0}

	var best rl.Vector3
	bestDot := float32(-2.0)
	for _, axis := range obb.Axes {
		for _, face := range [2]rl.Vector3{axis, rl.Vector3Negate(axis)} {
			if d := rl.Vector3DotProduct(face, worldUp); d > bestDot {
				bestDot = d
				best = face
			}
		}
	}
	if bestDot > 0.995 {
		return
	}

	torqueAxis := rl.Vector3CrossProduct(best, worldUp)
	tilt := rl.Vector3Length(torqueAxis)
	if tilt < 0.001 {
		return
	}
	torqueAxis = rl.Vector3Scale(torqueAxis, 1.0/tilt)

	gravityMag := -w.Gravity.Y
	leverArm := (b.HalfExtents.X + b.HalfExtents.Y + b.HalfExtents.Z) / 3.0
	accel := gravityMag * leverArm * tilt * 2.0
	b.AngularVelocity = rl.Vector3Add(b.AngularVelocity, rl.Vector3Scale(torqueAxis, accel*dt))
}

// resolvePair separates two overlapping boxes by mass ratio and exchanges an
// impulse along the contact normal.
func (w *World) resolvePair(a, b *Body) {
	if a.IsSleeping && b.IsSleeping {
		return
	}
	c, ok := a.OBB().Contact(b.OBB())
	if !ok || c.Depth < 1e-4 {
		return
	}

	pushOut := c.MTV()
	totalMass := a.Mass + b.Mass
	a.Position = rl.Vector3Add(a.Position, rl.Vector3Scale(pushOut, b.Mass/totalMass))
	b.Position = rl.Vector3Subtract(b.Position, rl.Vector3Scale(pushOut, a.Mass/totalMass))

	normal := c.Normal

	relVel := rl.Vector3Subtract(a.Velocity, b.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)
	if velAlongNormal > 0 {
		return
	}

	// Only wake for contacts with real relative motion so settled piles stay asleep.
	if -velAlongNormal > SleepVelocityThreshold*2 {
		a.Wake()
		b.Wake()
	}

	e := (a.Restitution + b.Restitution) / 2
	j := -(1 + e) * velAlongNormal
	j /= 1/a.Mass + 1/b.Mass

	impulse := rl.Vector3Scale(normal, j)
	a.Velocity = rl.Vector3Add(a.Velocity, rl.Vector3Scale(impulse, 1/a.Mass))
	b.Velocity = rl.Vector3Subtract(b.Velocity, rl.Vector3Scale(impulse, 1/b.Mass))

	rA := rl.Vector3Multiply(rl.Vector3Negate(normal), a.HalfExtents)
	rB := rl.Vector3Multiply(normal, b.HalfExtents)
	torqueA := rl.Vector3CrossProduct(rA, impulse)
	torqueB := rl.Vector3CrossProduct(rB, rl.Vector3Negate(impulse))
	a.AngularVelocity = rl.Vector3Add(a.AngularVelocity, rl.Vector3Scale(torqueA, torqueScale/a.Mass))
	b.AngularVelocity = rl.Vector3Add(b.AngularVelocity, rl.Vector3Scale(torqueB, torqueScale/b.Mass))
}
