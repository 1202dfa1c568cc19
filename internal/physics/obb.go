package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB is a body's box in world space.
type OBB struct {
	Center   rl.Vector3
	HalfSize rl.Vector3    // along the local axes
	Axes     [3]rl.Vector3 // unit local X, Y, Z
}

// NewOBB builds a box from its center, full size and XYZ Euler rotation.
func NewOBB(center, size, rotation rl.Vector3) OBB {
	m := rl.MatrixRotateXYZ(rotation)
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3Scale(size, 0.5),
		Axes: [3]rl.Vector3{
			rl.Vector3Normalize(rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2}),
			rl.Vector3Normalize(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6}),
			rl.Vector3Normalize(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10}),
		},
	}
}

// Corners returns the eight world-space vertices.
func (o OBB) Corners() [8]rl.Vector3 {
	var out [8]rl.Vector3
	i := 0
	for _, sx := range [2]float32{-1, 1} {
		for _, sy := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				p := o.Center
				p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[0], sx*o.HalfSize.X))
				p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[1], sy*o.HalfSize.Y))
				p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[2], sz*o.HalfSize.Z))
				out[i] = p
				i++
			}
		}
	}
	return out
}

// Contact describes how two overlapping boxes touch. Normal is a unit vector
// pointing from b towards a; moving a by Normal*Depth separates them.
type Contact struct {
	Normal rl.Vector3
	Depth  float32
}

// MTV is the minimum translation that pushes a out of b.
func (c Contact) MTV() rl.Vector3 {
	return rl.Vector3Scale(c.Normal, c.Depth)
}

// radius is the half-length of o's shadow on a unit axis.
func (o OBB) radius(axis rl.Vector3) float32 {
	return o.HalfSize.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

// Contact runs a separating axis test over the 15 candidate axes (six face
// normals, nine edge crosses) and keeps the one with the shallowest overlap.
// ok is false when some axis separates the boxes.
func (a OBB) Contact(b OBB) (Contact, bool) {
	d := rl.Vector3Subtract(a.Center, b.Center)
	best := Contact{Depth: float32(math.MaxFloat32)}

	test := func(axis rl.Vector3) bool {
		l := rl.Vector3Length(axis)
		if l < 1e-4 {
			// parallel edges
			return true
		}
		axis = rl.Vector3Scale(axis, 1/l)
		dist := rl.Vector3DotProduct(d, axis)
		depth := a.radius(axis) + b.radius(axis) - absf(dist)
		if depth < 0 {
			return false
		}
		if depth < best.Depth {
			if dist < 0 {
				axis = rl.Vector3Negate(axis)
			}
			best = Contact{Normal: axis, Depth: depth}
		}
		return true
	}

	for i := 0; i < 3; i++ {
		if !test(a.Axes[i]) || !test(b.Axes[i]) {
			return Contact{}, false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !test(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])) {
				return Contact{}, false
			}
		}
	}
	return best, true
}

// Intersects reports whether the boxes overlap or touch.
func (a OBB) Intersects(b OBB) bool {
	_, ok := a.Contact(b)
	return ok
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
