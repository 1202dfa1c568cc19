package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestWorldAddRemove(t *testing.T) {
	w := NewWorld()
	a := NewBoxBody(1, 1, 0.7)
	b := NewBoxBody(1, 1, 0.7)

	w.AddBody(a)
	w.AddBody(a)
	w.AddBody(b)
	if w.Len() != 2 {
		t.Errorf("Expected 2 bodies, got %d", w.Len())
	}

	if !w.RemoveBody(a) {
		t.Error("RemoveBody should report true for a present body")
	}
	if w.Contains(a) {
		t.Error("Removed body still in world")
	}
	if w.RemoveBody(a) {
		t.Error("RemoveBody should report false for an absent body")
	}
	if !w.Contains(b) {
		t.Error("Remaining body missing")
	}
}

func TestNewBoxBodyDefaults(t *testing.T) {
	b := NewBoxBody(1.5, 0, 0.7)
	if b.Mass != 1 {
		t.Errorf("Expected non-positive mass to fall back to 1, got %v", b.Mass)
	}
	if b.HalfExtents.X != 0.75 {
		t.Errorf("Expected half extent 0.75, got %v", b.HalfExtents.X)
	}
	if b.Restitution != 0.7 {
		t.Errorf("Expected restitution 0.7, got %v", b.Restitution)
	}
}

func TestStepFixedSubsteps(t *testing.T) {
	w := NewWorld()
	if n := w.Step(0.04); n != 2 {
		t.Errorf("Expected 2 sub-steps for 40ms, got %d", n)
	}
	if n := w.Step(0.02); n != 1 {
		t.Errorf("Expected leftover time to carry into 1 sub-step, got %d", n)
	}
	if n := w.Step(1.0); n != DefaultMaxSubSteps {
		t.Errorf("Expected sub-steps capped at %d, got %d", DefaultMaxSubSteps, n)
	}
	if n := w.Step(0.001); n != 0 {
		t.Errorf("Expected dropped backlog after a stall, got %d sub-steps", n)
	}
	if n := w.Step(-1); n != 0 {
		t.Errorf("Negative dt should not step, got %d", n)
	}
}

func TestFreeFall(t *testing.T) {
	w := NewWorld()
	w.Ground.Enabled = false
	b := NewBoxBody(1, 1, 0.7)
	b.Position.Y = 15
	w.AddBody(b)

	for i := 0; i < 60; i++ {
		w.Step(DefaultFixedStep)
	}

	// y = 15 - g*t^2/2 with t = 1s, semi-implicit Euler lands slightly lower.
	if b.Position.Y > 10.5 || b.Position.Y < 9.5 {
		t.Errorf("Expected y near 10.1 after 1s of free fall, got %v", b.Position.Y)
	}
	if b.Velocity.Y > -9 {
		t.Errorf("Expected downward velocity near -9.82, got %v", b.Velocity.Y)
	}
}

func TestGroundStopsBodies(t *testing.T) {
	w := NewWorld()
	w.Ground.Y = 1
	b := NewBoxBody(1.5, 1, 0.7)
	b.Position = rl.Vector3{X: 0, Y: 15, Z: 0}
	b.Rotation = rl.Vector3{X: 0.4, Y: 1.1, Z: 0.2}
	w.AddBody(b)

	for i := 0; i < 60*8; i++ {
		w.Step(DefaultFixedStep)
		lowest := lowestCorner(b)
		if lowest < w.Ground.Y-0.001 {
			t.Fatalf("Step %d: body sank below ground, lowest corner %v", i, lowest)
		}
	}
	if b.Position.Y < 1.5 || b.Position.Y > 2.4 {
		t.Errorf("Expected body resting on the ground, center y=%v", b.Position.Y)
	}
	if b.Position.Y < -10 {
		t.Error("Grounded body should never reach the cull plane")
	}
}

func TestFiniteGroundLetsBodiesFallOff(t *testing.T) {
	w := NewWorld()
	w.Ground.Y = 1
	w.Ground.HalfExtent = 5
	b := NewBoxBody(1.5, 1, 0.7)
	b.Position = rl.Vector3{X: 20, Y: 5, Z: 0}
	w.AddBody(b)

	for i := 0; i < 60*3; i++ {
		w.Step(DefaultFixedStep)
	}
	if b.Position.Y >= -10 {
		t.Errorf("Expected body outside the ground to fall past -10, got %v", b.Position.Y)
	}
}

func TestOverlappingBodiesSeparate(t *testing.T) {
	w := NewWorld()
	w.Ground.Enabled = false
	w.Gravity = rl.Vector3{}
	a := NewBoxBody(1, 1, 0.5)
	b := NewBoxBody(1, 1, 0.5)
	a.Position = rl.Vector3{X: 0}
	b.Position = rl.Vector3{X: 0.6}
	a.Velocity = rl.Vector3{X: 1}
	w.AddBody(a)
	w.AddBody(b)

	w.Step(DefaultFixedStep)

	if gap := b.Position.X - a.Position.X; gap < 0.99 {
		t.Errorf("Expected boxes pushed apart to ~1 unit, gap %v", gap)
	}
	if b.Velocity.X <= 0 {
		t.Error("Impulse should transfer momentum to the struck box")
	}
}

func TestOBBCorners(t *testing.T) {
	o := NewOBB(rl.Vector3{Y: 2}, rl.Vector3{X: 2, Y: 2, Z: 2}, rl.Vector3{})
	minY, maxY := float32(100), float32(-100)
	for _, c := range o.Corners() {
		minY = min(minY, c.Y)
		maxY = max(maxY, c.Y)
	}
	if minY != 1 || maxY != 3 {
		t.Errorf("Expected corner y range [1,3], got [%v,%v]", minY, maxY)
	}
}

func TestOBBContact(t *testing.T) {
	size := rl.Vector3{X: 1, Y: 1, Z: 1}
	a := NewOBB(rl.Vector3{X: 0.6}, size, rl.Vector3{})
	b := NewOBB(rl.Vector3{}, size, rl.Vector3{})

	c, ok := a.Contact(b)
	if !ok {
		t.Fatal("Expected overlapping boxes to touch")
	}
	if c.Normal != (rl.Vector3{X: 1}) {
		t.Errorf("Expected normal +X from b to a, got %v", c.Normal)
	}
	if d := c.Depth - 0.4; d > 1e-5 || d < -1e-5 {
		t.Errorf("Expected depth 0.4, got %v", c.Depth)
	}
	if mtv := c.MTV(); mtv.X != c.Depth || mtv.Y != 0 || mtv.Z != 0 {
		t.Errorf("Expected MTV along +X, got %v", mtv)
	}

	back, _ := b.Contact(a)
	if back.Normal != (rl.Vector3{X: -1}) {
		t.Errorf("Expected reversed normal, got %v", back.Normal)
	}

	far := NewOBB(rl.Vector3{X: 3}, size, rl.Vector3{})
	if a.Intersects(far) {
		t.Error("Expected separated boxes not to intersect")
	}
	tilted := NewOBB(rl.Vector3{X: 1.2}, size, rl.Vector3{Y: 0.785398})
	if !a.Intersects(tilted) {
		t.Error("Expected the tilted box's corner to reach a")
	}
}

func TestBodySleeps(t *testing.T) {
	b := NewBoxBody(1, 1, 0.7)
	for i := 0; i < 60; i++ {
		b.TrySleep(DefaultFixedStep)
	}
	if !b.IsSleeping {
		t.Error("Motionless body should fall asleep")
	}
	b.Wake()
	if b.IsSleeping {
		t.Error("Wake should clear sleep state")
	}
}

func lowestCorner(b *Body) float32 {
	lowest := float32(1e9)
	for _, c := range b.OBB().Corners() {
		lowest = min(lowest, c.Y)
	}
	return lowest
}
