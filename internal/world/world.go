// Package world runs one section of the experience: it owns the section's
// scene, physics, camera, storm and input from Mount to Unmount and drives
// them frame by frame.
package world

import (
	"log"
	"math/rand"
	"time"

	"folio3d/internal/assets"
	"folio3d/internal/camera"
	"folio3d/internal/clock"
	"folio3d/internal/config"
	"folio3d/internal/engine"
	"folio3d/internal/interaction"
	"folio3d/internal/physics"
	"folio3d/internal/spawner"
	"folio3d/internal/tween"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width  int32
	Height int32
	DPI    float32
}

// Loader is the asset service one session uses and then releases.
type Loader interface {
	assets.Loader
	Poll()
	Unload()
}

// Frame is everything a Renderer needs for one draw.
type Frame struct {
	Scene     *engine.Scene
	Camera    rl.Camera3D
	Highlight *engine.Node
	Ground    physics.Ground
	Viewport  Viewport
}

type Renderer interface {
	Submit(f Frame)
	Release()
}

// Deps builds the per-session collaborators. Each Mount gets fresh ones.
type Deps struct {
	NewLoader   func() Loader
	NewRenderer func() Renderer
	Rand        *rand.Rand
}

// Snapshot is the state the presentation layer may read.
type Snapshot struct {
	CurrentSection          int
	SectionName             string
	HoveredTargetName       string
	HoveredTitle            string
	IsPlayingResetAnimation bool
	ResetEnabled            bool
	LiveParticles           int
	Mounted                 bool
}

type World struct {
	Index int
	cfg   config.SceneConfig
	deps  Deps

	loader   Loader
	renderer Renderer
	clock    *clock.Scheduler
	physics  *physics.World
	scene    *engine.Scene
	cam      *camera.Rig
	spawner  *spawner.Spawner
	input    *interaction.Controller
	reset    *tween.ResetSequence

	props  map[string]*engine.Node
	titles map[string]string

	viewport     Viewport
	hovered      string
	resetEnabled bool
	stormArmed   bool // SetActive(true) restarts the storm only when set
	mounted      bool
	session      uint64

	started bool
	epoch   time.Duration
	last    time.Duration
}

func New(index int, cfg config.SceneConfig, deps Deps) *World {
	return &World{Index: index, cfg: cfg, deps: deps}
}

func (w *World) Name() string {
	return w.cfg.Name
}

func (w *World) Mounted() bool {
	return w.mounted
}

// Scene, Camera, Spawner and Input expose the session parts. They are nil
// while unmounted.
func (w *World) Scene() *engine.Scene                { return w.scene }
func (w *World) Camera() *camera.Rig                 { return w.cam }
func (w *World) Spawner() *spawner.Spawner           { return w.spawner }
func (w *World) Input() *interaction.Controller      { return w.input }
func (w *World) ResetSequence() *tween.ResetSequence { return w.reset }

// Mount builds the session and requests its models. Mounting twice is a no-op.
func (w *World) Mount(vp Viewport) {
	if w.mounted {
		return
	}
	w.mounted = true
	w.session++
	w.started = false
	w.viewport = vp
	w.hovered = ""
	w.stormArmed = false

	w.loader = w.deps.NewLoader()
	w.renderer = w.deps.NewRenderer()
	w.clock = clock.NewScheduler()

	w.physics = physics.NewWorld()
	w.physics.Ground.Y = w.cfg.Ground.Y
	w.physics.Ground.HalfExtent = w.cfg.Ground.HalfExtent

	w.scene = engine.NewScene(w.cfg.Name)
	w.scene.Add(engine.NewLight("sun", engine.LightData{
		Color:     rl.White,
		Intensity: 1,
		Direction: rl.Vector3Normalize(rl.Vector3{X: 0.35, Y: -1.0, Z: -0.35}),
	}))

	w.cam = newRig(w.cfg.Camera)
	w.input = interaction.New(interactionConfig(w.cfg.Interaction), w.scene, w.cam)
	w.input.SetViewport(vp.Width, vp.Height)
	w.input.OnHoverChanged.AddListener(func(name string) {
		w.hovered = name
	})

	if w.cfg.Room != "" {
		token := w.session
		w.loader.LoadModel(w.cfg.Room).Then(func(n *engine.Node) {
			if token == w.session {
				w.scene.Add(n)
			}
		})
	}
	w.mountProps()

	if sc := w.cfg.Spawner; sc != nil {
		w.spawner = spawner.New(spawnerConfig(*sc), w.loader, w.clock, w.physics, w.scene, w.deps.Rand)
		if w.cfg.AutoStorm {
			w.stormArmed = true
			w.spawner.SpawnBurst(sc.InitialCubes)
		}
	}

	log.Printf("World: mounted %s", w.cfg.Name)
}

func (w *World) mountProps() {
	w.props = make(map[string]*engine.Node)
	w.titles = make(map[string]string)
	var targets []*engine.Node
	var draggable *engine.Node

	for _, pc := range w.cfg.Props {
		prop := engine.NewGroup(pc.Name)
		prop.Transform.Position = config.Vec(pc.Position)
		prop.Transform.Rotation = config.Vec(pc.Rotation)
		prop.Transform.Scale = rl.Vector3{X: pc.Scale, Y: pc.Scale, Z: pc.Scale}
		w.scene.Add(prop)
		w.props[pc.Name] = prop
		w.titles[pc.Name] = pc.Title

		if pc.Hoverable || pc.Draggable {
			targets = append(targets, prop)
		}
		if pc.Draggable {
			draggable = prop
		}

		tint, _ := config.ParseColor(pc.Color)
		token := w.session
		w.loader.LoadModel(pc.Model).Then(func(n *engine.Node) {
			if token != w.session {
				return
			}
			n.Walk(func(m *engine.Node) bool {
				if m.Kind == engine.KindMesh {
					m.Mesh.Tint = tint
				}
				return true
			})
			prop.AddChild(n)
		})
	}
	w.input.SetTargets(targets, draggable)

	if w.cfg.ResetProp == "" {
		return
	}
	for _, pc := range w.cfg.Props {
		if pc.Name != w.cfg.ResetProp {
			continue
		}
		prop := w.props[pc.Name]
		w.reset = tween.NewResetSequence(prop, prop.Transform.Rotation, prop.Transform.Position)
		w.reset.OnFinished.AddListener(w.onResetFinished)
		w.input.Locked = w.reset.Active
		w.resetEnabled = true
	}
}

func (w *World) onResetFinished() {
	w.resetEnabled = true
	w.cam.SetEnabled(true)
	if w.spawner != nil {
		w.stormArmed = true
		w.spawner.SpawnBurst(w.cfg.Spawner.InitialCubes)
	}
}

// Frame advances the session to now, which is host time. Session time starts
// at the first Frame after Mount. The order of the steps below is fixed.
func (w *World) Frame(now time.Duration) {
	if !w.mounted {
		return
	}
	t := w.sessionTime(now)
	dt := t - w.last
	w.last = t

	w.clock.Advance(t)
	w.loader.Poll()
	w.physics.Step(float32(dt.Seconds()))
	if w.spawner != nil {
		w.spawner.Tick(t)
	}
	w.input.Update(t)
	if w.reset != nil {
		w.reset.Update(t)
	}
	w.cam.Update(t)

	w.renderer.Submit(Frame{
		Scene:     w.scene,
		Camera:    w.cam.Camera3D(),
		Highlight: w.input.Highlighted(),
		Ground:    w.physics.Ground,
		Viewport:  w.viewport,
	})
}

func (w *World) sessionTime(now time.Duration) time.Duration {
	if !w.started {
		w.started = true
		w.epoch = now
		w.last = 0
	}
	t := now - w.epoch
	if t < w.last {
		t = w.last
	}
	return t
}

func (w *World) Resize(vp Viewport) {
	w.viewport = vp
	if w.input != nil {
		w.input.SetViewport(vp.Width, vp.Height)
	}
}

// TriggerReset starts the reset animation. It reports false when the section
// has no reset prop or an animation is already playing.
func (w *World) TriggerReset(now time.Duration) bool {
	if !w.mounted || w.reset == nil || w.reset.Active() {
		return false
	}
	w.input.Release()
	if !w.reset.Trigger(w.sessionTime(now)) {
		return false
	}
	w.resetEnabled = false
	w.cam.SetEnabled(false)
	w.cam.SetAzimuthTween(w.cam.Constraint.BaseYaw, w.reset.RotateDuration+w.reset.TranslateDuration)
	return true
}

// SetActive clears the storm when the section stops being active. Becoming
// active again restarts it only if it had been started in this session.
func (w *World) SetActive(active bool) {
	if !w.mounted || w.spawner == nil {
		return
	}
	if active {
		if w.stormArmed {
			w.spawner.SpawnBurst(w.cfg.Spawner.InitialCubes)
		}
	} else {
		w.spawner.Clear()
	}
}

func (w *World) PointerMove(p rl.Vector2) {
	if w.mounted {
		w.input.OnPointerMove(p)
	}
}

func (w *World) PointerDown(p rl.Vector2) {
	if w.mounted {
		w.input.OnPointerDown(p)
	}
}

func (w *World) PointerUp() {
	if w.mounted {
		w.input.OnPointerUp()
	}
}

func (w *World) PointerLeave() {
	if w.mounted {
		w.input.OnPointerLeave()
	}
}

// SetTouch switches the drag sensitivity between mouse and touch.
func (w *World) SetTouch(touch bool) {
	if w.mounted {
		w.input.Touch = touch
	}
}

// Dolly zooms the camera when the section allows it.
func (w *World) Dolly(delta float32) {
	if w.mounted {
		w.cam.Dolly(delta)
	}
}

func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		CurrentSection: w.Index,
		SectionName:    w.cfg.Name,
		Mounted:        w.mounted,
	}
	if !w.mounted {
		return s
	}
	s.HoveredTargetName = w.hovered
	s.HoveredTitle = w.titles[w.hovered]
	s.ResetEnabled = w.resetEnabled
	if w.reset != nil {
		s.IsPlayingResetAnimation = w.reset.Active()
	}
	if w.spawner != nil {
		s.LiveParticles = w.spawner.Len()
	}
	return s
}

// Unmount cancels every timer, drops pending loads and releases the session's
// resources. No callback of this session runs afterwards. It is idempotent.
func (w *World) Unmount() {
	if !w.mounted {
		return
	}
	w.mounted = false
	w.session++

	w.clock.Reset()
	if w.spawner != nil {
		w.spawner.Teardown()
	}
	if w.reset != nil {
		w.reset.Abort()
		w.reset.OnFinished.RemoveAllListeners()
	}
	w.input.Detach()
	w.physics.Clear()
	w.scene.Clear()
	w.loader.Unload()
	w.renderer.Release()

	w.loader, w.renderer, w.clock = nil, nil, nil
	w.physics, w.scene, w.cam = nil, nil, nil
	w.spawner, w.input, w.reset = nil, nil, nil
	w.props, w.titles = nil, nil
	w.resetEnabled = false
	w.hovered = ""
	log.Printf("World: unmounted %s", w.cfg.Name)
}

func newRig(c config.CameraConfig) *camera.Rig {
	mode := camera.Orbit
	if c.Mode == "lookAround" {
		mode = camera.LookAround
	}
	rig := camera.New(config.Vec(c.Position), camera.Constraint{
		BaseYaw:     c.BaseYaw,
		YawRange:    c.YawRange,
		Pitch:       c.Pitch,
		MinDistance: c.MinDistance,
		MaxDistance: c.MaxDistance,
	}, mode)
	rig.AllowDolly = c.AllowDolly
	rig.Fovy = c.Fovy
	if len(c.LookAt) > 0 {
		rig.LookAt(config.Vec(c.LookAt))
	}
	return rig
}

func interactionConfig(c config.InteractionConfig) interaction.Config {
	ic := interaction.DefaultConfig()
	if c.Mode == "rotateCamera" {
		ic.Mode = interaction.DragRotateCamera
	}
	ic.RotateSensitivity = c.RotateSensitivity
	ic.Wobble = c.Wobble
	return ic
}

func spawnerConfig(c config.SpawnerConfig) spawner.Config {
	return spawner.Config{
		ModelPath:         c.Model,
		TexturePath:       c.Texture,
		ModelScale:        c.ModelScale,
		CubeSize:          c.CubeSize,
		SpawnHeight:       c.SpawnHeight,
		HalfExtent:        c.HalfExtent,
		MaxCubes:          *c.MaxCubes,
		InitialCubes:      c.InitialCubes,
		BurstStagger:      c.BurstStagger(),
		SpawnInterval:     c.SpawnInterval(),
		CullY:             *c.CullY,
		Mass:              c.Mass,
		Restitution:       *c.Restitution,
		LightmapIntensity: c.LightmapIntensity,
	}
}
