package interaction

import (
	"math"
	"testing"
	"time"

	"folio3d/internal/camera"
	"folio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	width  = 800
	height = 600
)

var (
	center = rl.Vector2{X: 400, Y: 300}
	corner = rl.Vector2{X: 5, Y: 5}
)

// newProp builds a group holding a 2x2x2 mesh, the shape a loaded model has.
func newProp(name string, pos rl.Vector3) *engine.Node {
	g := engine.NewGroup(name)
	g.Transform.Position = pos
	g.AddChild(engine.NewMesh(name+"_mesh", engine.MeshData{
		Bounds: rl.NewBoundingBox(rl.NewVector3(-1, -1, -1), rl.NewVector3(1, 1, 1)),
	}))
	return g
}

// setup looks down -Z from z=5 at a prop on the origin.
func setup(cfg Config) (*Controller, *engine.Scene, *camera.Rig, *engine.Node) {
	scene := engine.NewScene("test")
	rig := camera.New(rl.Vector3{Z: 5}, camera.Constraint{
		BaseYaw:     -math.Pi,
		YawRange:    math.Pi / 4,
		Pitch:       math.Pi / 2,
		MinDistance: 1,
		MaxDistance: 1,
	}, camera.LookAround)
	prop := newProp("prop", rl.Vector3{})
	scene.Add(prop)

	c := New(cfg, scene, rig)
	c.SetViewport(width, height)
	c.SetTargets([]*engine.Node{prop}, prop)
	return c, scene, rig, prop
}

func TestHoverPicksTopmostAncestor(t *testing.T) {
	c, _, _, prop := setup(DefaultConfig())
	var names []string
	c.OnHoverChanged.AddListener(func(name string) { names = append(names, name) })

	c.OnPointerMove(center)
	if c.Selection().Hovered != prop {
		t.Fatalf("Expected prop hovered, got %v", c.Selection().Hovered)
	}
	if c.State() != Hovering {
		t.Errorf("Expected Hovering, got %s", c.State())
	}

	c.OnPointerMove(corner)
	if c.Selection().Hovered != nil {
		t.Error("Expected hover cleared on miss")
	}
	if len(names) != 2 || names[0] != "prop" || names[1] != "" {
		t.Errorf("Expected hover events [prop \"\"], got %q", names)
	}
}

func TestNearestHitWins(t *testing.T) {
	c, scene, _, prop := setup(DefaultConfig())
	back := newProp("back", rl.Vector3{Z: -3})
	scene.Add(back)
	c.SetTargets([]*engine.Node{back, prop}, prop)

	c.OnPointerMove(center)
	if c.Highlighted() != prop {
		t.Errorf("Expected the nearer prop, got %v", c.Highlighted().Name)
	}
}

func TestMissedPressLeavesSelection(t *testing.T) {
	c, _, rig, _ := setup(DefaultConfig())
	before := c.Selection()

	c.OnPointerDown(corner)
	if c.Selection() != before {
		t.Errorf("Expected selection unchanged, got %+v", c.Selection())
	}
	if !rig.Enabled {
		t.Error("Expected camera to stay enabled")
	}
	c.OnPointerUp()

	c.OnPointerMove(center)
	hovered := c.Selection()
	c.OnPointerDown(corner)
	if c.Selection() != hovered {
		t.Errorf("Expected hover to survive a missed press, got %+v", c.Selection())
	}
}

func TestDragRotatesProp(t *testing.T) {
	c, _, rig, prop := setup(DefaultConfig())

	c.OnPointerDown(center)
	if c.State() != Dragging {
		t.Fatalf("Expected Dragging, got %s", c.State())
	}
	if rig.Enabled {
		t.Error("Expected camera disabled while dragging")
	}
	if c.Selection().DragAnchor != center {
		t.Errorf("Expected anchor %v, got %v", center, c.Selection().DragAnchor)
	}

	c.OnPointerMove(rl.Vector2{X: 410, Y: 295})
	r := prop.Transform.Rotation
	if math.Abs(float64(r.Y-0.1)) > 1e-5 || math.Abs(float64(r.X+0.05)) > 1e-5 {
		t.Errorf("Expected rotation (-0.05, 0.1), got (%f, %f)", r.X, r.Y)
	}

	c.OnPointerUp()
	if c.Selection().Dragging || !rig.Enabled {
		t.Error("Expected drag ended and camera re-enabled")
	}
}

func TestLockedIgnoresInput(t *testing.T) {
	c, _, _, _ := setup(DefaultConfig())
	locked := true
	c.Locked = func() bool { return locked }

	c.OnPointerMove(center)
	c.OnPointerDown(center)
	if c.State() != Idle {
		t.Errorf("Expected Idle while locked, got %s", c.State())
	}

	locked = false
	c.OnPointerMove(center)
	if c.State() != Hovering {
		t.Errorf("Expected Hovering after unlock, got %s", c.State())
	}
}

func TestNaNPointIgnored(t *testing.T) {
	c, _, _, _ := setup(DefaultConfig())
	c.OnPointerMove(center)
	nan := float32(math.NaN())
	c.OnPointerMove(rl.Vector2{X: nan, Y: 10})
	if c.State() != Hovering {
		t.Errorf("Expected NaN sample ignored, got %s", c.State())
	}
	c.OnPointerDown(rl.Vector2{X: 1, Y: nan})
	if c.State() != Hovering {
		t.Errorf("Expected NaN press ignored, got %s", c.State())
	}
}

func TestWobbleAndRestore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wobble = true
	c, _, _, prop := setup(cfg)
	prop.Transform.Rotation = rl.Vector3{Y: 1}

	c.OnPointerMove(center)
	c.Update(time.Second)
	s := float32(math.Sin(1.5))
	want := rl.Vector3{X: s * 0.05, Y: 1 + s*0.1, Z: float32(math.Cos(1.5)) * 0.03}
	got := prop.Transform.Rotation
	if math.Abs(float64(got.X-want.X)) > 1e-5 || math.Abs(float64(got.Y-want.Y)) > 1e-5 || math.Abs(float64(got.Z-want.Z)) > 1e-5 {
		t.Errorf("Expected wobble %v, got %v", want, got)
	}

	c.OnPointerLeave()
	if prop.Transform.Rotation != (rl.Vector3{Y: 1}) {
		t.Errorf("Expected rest rotation restored, got %v", prop.Transform.Rotation)
	}
}

func TestCameraDragMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = DragRotateCamera
	c, _, rig, _ := setup(cfg)
	c.SetTargets(c.targets, nil)
	start := rig.Azimuth

	c.OnPointerDown(corner)
	c.OnPointerMove(rl.Vector2{X: 25, Y: 5})
	if rig.Azimuth == start {
		t.Error("Expected camera to turn during a look drag")
	}
	if c.Selection().Dragging {
		t.Error("Expected look drag to stay out of the selection")
	}

	c.OnPointerUp()
	turned := rig.Azimuth
	c.OnPointerMove(rl.Vector2{X: 60, Y: 5})
	if rig.Azimuth != turned {
		t.Error("Expected no turning after release")
	}
}

func TestDetachIgnoresInput(t *testing.T) {
	c, _, _, _ := setup(DefaultConfig())
	c.OnPointerMove(center)
	c.Detach()
	if c.State() != Idle {
		t.Errorf("Expected Idle after detach, got %s", c.State())
	}
	c.OnPointerMove(center)
	if c.State() != Idle {
		t.Error("Expected input ignored after detach")
	}
}

func TestMissedPressTurnsCamera(t *testing.T) {
	c, _, rig, _ := setup(DefaultConfig())
	before := c.Selection()
	start := rig.Azimuth

	c.OnPointerDown(corner)
	c.OnPointerMove(rl.Vector2{X: 45, Y: 5})
	want := start - 40*rig.Sensitivity
	if math.Abs(float64(rig.Azimuth-want)) > 1e-5 {
		t.Errorf("Expected azimuth %f, got %f", want, rig.Azimuth)
	}
	if c.Selection() != before {
		t.Errorf("Expected selection unchanged, got %+v", c.Selection())
	}
	if !rig.Enabled {
		t.Error("Expected camera to stay enabled during a look drag")
	}

	c.OnPointerMove(rl.Vector2{X: 445, Y: 5})
	if rig.Azimuth != rig.Constraint.MinYaw() {
		t.Errorf("Expected azimuth clamped to %f, got %f", rig.Constraint.MinYaw(), rig.Azimuth)
	}
	if c.Selection() != before {
		t.Errorf("Expected selection unchanged, got %+v", c.Selection())
	}

	c.OnPointerUp()
	turned := rig.Azimuth
	c.OnPointerMove(rl.Vector2{X: 5, Y: 5})
	if rig.Azimuth != turned {
		t.Error("Expected no turning after release")
	}
}

func TestWobbleRestFollowsDrag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wobble = true
	c, _, _, prop := setup(cfg)

	c.OnPointerMove(center)
	c.OnPointerDown(center)
	c.OnPointerMove(rl.Vector2{X: 410, Y: 295})
	c.OnPointerUp()
	dragged := prop.Transform.Rotation

	c.Update(time.Second)
	s := float32(math.Sin(1.5))
	if got := prop.Transform.Rotation.Y; math.Abs(float64(got-(dragged.Y+s*0.1))) > 1e-5 {
		t.Errorf("Expected wobble around the dragged pose, got Y %f", got)
	}

	c.OnPointerLeave()
	if prop.Transform.Rotation != dragged {
		t.Errorf("Expected dragged pose %v kept, got %v", dragged, prop.Transform.Rotation)
	}
}

func TestHoverFollowsMovingProp(t *testing.T) {
	c, _, _, prop := setup(DefaultConfig())

	c.OnPointerMove(center)
	prop.Transform.Position = rl.Vector3{X: 10}
	c.Update(0)
	if c.Selection().Hovered != nil {
		t.Error("Expected hover dropped when the prop moves away")
	}

	prop.Transform.Position = rl.Vector3{}
	c.Update(0)
	if c.Selection().Hovered != prop {
		t.Error("Expected hover regained when the prop returns under the pointer")
	}

	c.OnPointerLeave()
	c.Update(0)
	if c.Selection().Hovered != nil {
		t.Error("Expected no hover after the pointer left")
	}
}
