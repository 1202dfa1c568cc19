package engine

// Scene owns the node tree. Everything visible hangs off Root.
type Scene struct {
	Name string
	Root *Node
}

func NewScene(name string) *Scene {
	return &Scene{
		Name: name,
		Root: NewGroup("root"),
	}
}

// Add attaches n directly under the root.
func (s *Scene) Add(n *Node) {
	s.Root.AddChild(n)
}

// Detach removes n from whatever parent it has inside this scene.
func (s *Scene) Detach(n *Node) bool {
	if n == nil || n.Parent == nil || !s.Contains(n) {
		return false
	}
	return n.Parent.RemoveChild(n)
}

func (s *Scene) Contains(n *Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == s.Root {
			return true
		}
	}
	return false
}

func (s *Scene) Walk(fn func(*Node) bool) {
	s.Root.Walk(fn)
}

// Meshes returns every visible mesh node in traversal order.
func (s *Scene) Meshes() []*Node {
	var result []*Node
	s.Walk(func(n *Node) bool {
		if !n.Visible {
			return false
		}
		if n.Kind == KindMesh {
			result = append(result, n)
		}
		return true
	})
	return result
}

func (s *Scene) Lights() []*Node {
	var result []*Node
	s.Walk(func(n *Node) bool {
		if n.Kind == KindLight {
			result = append(result, n)
		}
		return true
	})
	return result
}

func (s *Scene) FindByName(name string) *Node {
	var found *Node
	s.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n != s.Root && n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// TopmostAncestor climbs from n to the node whose parent is the root.
// Returns nil when n is not part of the scene or is the root itself.
func (s *Scene) TopmostAncestor(n *Node) *Node {
	if n == nil || n == s.Root || !s.Contains(n) {
		return nil
	}
	for n.Parent != nil && n.Parent != s.Root {
		n = n.Parent
	}
	return n
}

// Clear detaches every child of the root.
func (s *Scene) Clear() {
	for _, c := range s.Root.Children {
		c.Parent = nil
	}
	s.Root.Children = s.Root.Children[:0]
}
