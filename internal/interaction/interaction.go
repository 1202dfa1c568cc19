// Package interaction turns pointer samples into hover, highlight and drag
// state over a set of scene props.
package interaction

import (
	"math"
	"time"

	"folio3d/internal/camera"
	"folio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type State int

const (
	Idle State = iota
	Hovering
	Dragging
)

func (s State) String() string {
	switch s {
	case Hovering:
		return "Hovering"
	case Dragging:
		return "Dragging"
	default:
		return "Idle"
	}
}

// DragMode selects what a drag moves.
type DragMode int

const (
	// DragRotateNode spins the draggable prop under the pointer.
	DragRotateNode DragMode = iota
	// DragRotateCamera turns the camera; props are only hovered.
	DragRotateCamera
)

type Config struct {
	Mode DragMode
	// Radians of prop rotation per pixel of drag.
	RotateSensitivity float32
	// Wobble tilts the hovered prop back and forth around its rest rotation.
	Wobble          bool
	WobbleSpeed     float32
	WobbleAmplitude rl.Vector3
}

func DefaultConfig() Config {
	return Config{
		Mode:              DragRotateNode,
		RotateSensitivity: 0.01,
		WobbleSpeed:       1.5,
		WobbleAmplitude:   rl.Vector3{X: 0.05, Y: 0.1, Z: 0.03},
	}
}

// Selection is owned by the Controller; everyone else gets a copy.
type Selection struct {
	Hovered    *engine.Node
	Dragging   bool
	DragAnchor rl.Vector2
}

type Controller struct {
	cfg       Config
	scene     *engine.Scene
	cam       *camera.Rig
	targets   []*engine.Node
	draggable *engine.Node

	// Locked, when set and reporting true, makes every input a no-op.
	Locked func() bool
	// Touch selects the touch drag sensitivity for camera drags.
	Touch bool

	width, height int32

	sel      Selection
	dragged  *engine.Node
	looking  bool
	last     rl.Vector2
	pointer  bool // last holds a live pointer sample
	rest     rl.Vector3
	detached bool

	// OnHoverChanged fires with the hovered prop's name, or "" when hover ends.
	OnHoverChanged engine.EventWithArg[string]
}

func New(cfg Config, scene *engine.Scene, cam *camera.Rig) *Controller {
	return &Controller{cfg: cfg, scene: scene, cam: cam}
}

// SetTargets replaces the pickable props. draggable may be nil.
func (c *Controller) SetTargets(targets []*engine.Node, draggable *engine.Node) {
	c.targets = targets
	c.draggable = draggable
}

// AddTarget makes n pickable. Props that load late are added this way.
func (c *Controller) AddTarget(n *engine.Node, draggable bool) {
	c.targets = append(c.targets, n)
	if draggable {
		c.draggable = n
	}
}

func (c *Controller) SetViewport(width, height int32) {
	c.width, c.height = width, height
}

func (c *Controller) Selection() Selection {
	return c.sel
}

// Highlighted is the node the renderer outlines.
func (c *Controller) Highlighted() *engine.Node {
	return c.sel.Hovered
}

func (c *Controller) State() State {
	switch {
	case c.sel.Dragging:
		return Dragging
	case c.sel.Hovered != nil:
		return Hovering
	default:
		return Idle
	}
}

func (c *Controller) ignored() bool {
	return c.detached || (c.Locked != nil && c.Locked())
}

func (c *Controller) OnPointerMove(p rl.Vector2) {
	if c.ignored() || !valid(p) {
		return
	}
	dx, dy := p.X-c.last.X, p.Y-c.last.Y
	c.last = p
	c.pointer = true

	switch {
	case c.sel.Dragging && c.dragged != nil:
		r := &c.dragged.Transform.Rotation
		r.Y += dx * c.cfg.RotateSensitivity
		r.X += dy * c.cfg.RotateSensitivity
	case c.looking:
		c.cam.DragYaw(dx, c.Touch)
		c.setHover(c.pick(p))
	default:
		c.setHover(c.pick(p))
	}
}

// OnPointerDown starts a drag when the pointer is over the draggable prop. Any
// other press, and every press in camera mode, starts a look drag that turns
// the camera. A look drag leaves the selection as it was.
func (c *Controller) OnPointerDown(p rl.Vector2) {
	if c.ignored() || !valid(p) {
		return
	}
	c.last = p
	c.pointer = true

	if c.cfg.Mode == DragRotateCamera {
		c.looking = true
		return
	}
	hit := c.pick(p)
	if hit == nil || hit != c.draggable {
		c.looking = true
		return
	}
	c.setHover(hit)
	c.dragged = hit
	c.sel.Dragging = true
	c.sel.DragAnchor = p
	c.cam.SetEnabled(false)
}

func (c *Controller) OnPointerUp() {
	if c.ignored() {
		return
	}
	c.endDrag()
}

// OnPointerLeave ends any drag and drops hover.
func (c *Controller) OnPointerLeave() {
	if c.ignored() {
		return
	}
	c.endDrag()
	c.setHover(nil)
	c.pointer = false
}

func (c *Controller) endDrag() {
	c.looking = false
	if !c.sel.Dragging {
		return
	}
	// The dragged pose is the new rest pose for the wobble.
	if c.dragged == c.sel.Hovered {
		c.rest = c.dragged.Transform.Rotation
	}
	c.sel.Dragging = false
	c.dragged = nil
	c.cam.SetEnabled(true)
}

// Release drops drag and hover unconditionally, restoring any wobbled prop.
// Called before a scripted animation takes over.
func (c *Controller) Release() {
	c.endDrag()
	c.setHover(nil)
}

// Detach releases the selection and ignores all further input.
func (c *Controller) Detach() {
	c.Release()
	c.detached = true
	c.OnHoverChanged.RemoveAllListeners()
	c.targets = nil
	c.draggable = nil
}

// Update re-picks hover at the last pointer sample, so props or a camera that
// move under a still pointer are tracked, then applies the hover wobble.
// elapsed is the scene time.
func (c *Controller) Update(elapsed time.Duration) {
	if c.ignored() || c.sel.Dragging {
		return
	}
	if c.pointer {
		c.setHover(c.pick(c.last))
	}
	if !c.cfg.Wobble || c.sel.Hovered == nil {
		return
	}
	t := elapsed.Seconds() * float64(c.cfg.WobbleSpeed)
	a := c.cfg.WobbleAmplitude
	c.sel.Hovered.Transform.Rotation = rl.Vector3{
		X: c.rest.X + float32(math.Sin(t))*a.X,
		Y: c.rest.Y + float32(math.Sin(t))*a.Y,
		Z: c.rest.Z + float32(math.Cos(t))*a.Z,
	}
}

func (c *Controller) setHover(n *engine.Node) {
	if n == c.sel.Hovered {
		return
	}
	if prev := c.sel.Hovered; prev != nil && c.cfg.Wobble {
		prev.Transform.Rotation = c.rest
	}
	c.sel.Hovered = n
	name := ""
	if n != nil {
		c.rest = n.Transform.Rotation
		name = n.Name
	}
	c.OnHoverChanged.Invoke(name)
}

// pick casts a ray through p and returns the topmost ancestor of the nearest
// mesh hit among the targets.
func (c *Controller) pick(p rl.Vector2) *engine.Node {
	if c.width <= 0 || c.height <= 0 || len(c.targets) == 0 {
		return nil
	}
	if p.X < 0 || p.Y < 0 || p.X > float32(c.width) || p.Y > float32(c.height) {
		return nil
	}
	ray := rl.GetScreenToWorldRayEx(p, c.cam.Camera3D(), c.width, c.height)

	var nearest *engine.Node
	best := float32(math.MaxFloat32)
	for _, target := range c.targets {
		target.Walk(func(n *engine.Node) bool {
			if !n.Visible {
				return false
			}
			if n.Kind != engine.KindMesh {
				return true
			}
			box, ok := n.WorldBounds()
			if !ok {
				return true
			}
			hit := rl.GetRayCollisionBox(ray, box)
			if hit.Hit && hit.Distance < best {
				best = hit.Distance
				nearest = n
			}
			return true
		})
	}
	if nearest == nil {
		return nil
	}
	return c.scene.TopmostAncestor(nearest)
}

func valid(p rl.Vector2) bool {
	return !math.IsNaN(float64(p.X)) && !math.IsNaN(float64(p.Y))
}
