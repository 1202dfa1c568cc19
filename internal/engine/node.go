package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NodeKind tags what a Node carries. The set is closed; traversal switches on it.
type NodeKind int

const (
	KindGroup NodeKind = iota
	KindMesh
	KindLight
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "Group"
	case KindMesh:
		return "Mesh"
	case KindLight:
		return "Light"
	}
	return "Unknown"
}

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in radians, applied X then Y then Z
	Scale    rl.Vector3
}

// Matrix returns the local scale-rotate-translate matrix.
func (t Transform) Matrix() rl.Matrix {
	scale := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	rot := rl.MatrixRotateXYZ(t.Rotation)
	trans := rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}

// TextureRef is a texture whose pixels may arrive after the handle is handed out.
type TextureRef interface {
	Texture() (rl.Texture2D, bool)
}

type MeshData struct {
	Model             rl.Model
	Tint              rl.Color
	Bounds            rl.BoundingBox // local space
	Lightmap          TextureRef
	LightmapIntensity float32
}

type LightData struct {
	Color     rl.Color
	Intensity float32
	Direction rl.Vector3
}

var nextUID atomic.Uint64

type Node struct {
	UID       uint64
	Name      string
	Kind      NodeKind
	Transform Transform
	Visible   bool
	Parent    *Node
	Children  []*Node

	Mesh  *MeshData  // set when Kind == KindMesh
	Light *LightData // set when Kind == KindLight
}

func newNode(name string, kind NodeKind) *Node {
	return &Node{
		UID:     nextUID.Add(1),
		Name:    name,
		Kind:    kind,
		Visible: true,
		Transform: Transform{
			Scale: rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		Children: make([]*Node, 0),
	}
}

func NewGroup(name string) *Node {
	return newNode(name, KindGroup)
}

func NewMesh(name string, mesh MeshData) *Node {
	n := newNode(name, KindMesh)
	n.Mesh = &mesh
	return n
}

func NewLight(name string, light LightData) *Node {
	n := newNode(name, KindLight)
	n.Light = &light
	return n
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth-first. Returning false from fn skips
// the visited node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Clone deep-copies the subtree. Model handles are shared, not duplicated.
func (n *Node) Clone() *Node {
	c := newNode(n.Name, n.Kind)
	c.Transform = n.Transform
	c.Visible = n.Visible
	switch n.Kind {
	case KindMesh:
		mesh := *n.Mesh
		c.Mesh = &mesh
	case KindLight:
		light := *n.Light
		c.Light = &light
	}
	for _, child := range n.Children {
		c.AddChild(child.Clone())
	}
	return c
}

func (n *Node) WorldMatrix() rl.Matrix {
	local := n.Transform.Matrix()
	if n.Parent == nil {
		return local
	}
	return rl.MatrixMultiply(local, n.Parent.WorldMatrix())
}

func (n *Node) WorldPosition() rl.Vector3 {
	return rl.Vector3Transform(rl.Vector3Zero(), n.WorldMatrix())
}

// WorldBounds returns the axis-aligned box around the mesh's transformed local
// bounds. ok is false for nodes that carry no mesh.
func (n *Node) WorldBounds() (rl.BoundingBox, bool) {
	if n.Kind != KindMesh {
		return rl.BoundingBox{}, false
	}
	return transformBox(n.Mesh.Bounds, n.WorldMatrix()), true
}

// SubtreeBounds merges the world bounds of every mesh at or below n.
func (n *Node) SubtreeBounds() (rl.BoundingBox, bool) {
	var out rl.BoundingBox
	found := false
	n.Walk(func(c *Node) bool {
		if !c.Visible {
			return false
		}
		b, ok := c.WorldBounds()
		if !ok {
			return true
		}
		if !found {
			out = b
			found = true
		} else {
			out.Min = rl.Vector3Min(out.Min, b.Min)
			out.Max = rl.Vector3Max(out.Max, b.Max)
		}
		return true
	})
	return out, found
}

func transformBox(b rl.BoundingBox, m rl.Matrix) rl.BoundingBox {
	corners := [8]rl.Vector3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
	first := rl.Vector3Transform(corners[0], m)
	out := rl.BoundingBox{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := rl.Vector3Transform(c, m)
		out.Min = rl.Vector3Min(out.Min, p)
		out.Max = rl.Vector3Max(out.Max, p)
	}
	return out
}
