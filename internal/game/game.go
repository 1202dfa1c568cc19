package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"folio3d/internal/assets"
	"folio3d/internal/clock"
	"folio3d/internal/config"
	"folio3d/internal/navigator"
	"folio3d/internal/prefs"
	"folio3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Game struct {
	Config    *config.File
	Prefs     *prefs.Store
	DebugMode bool

	worlds   []*world.World
	nav      *navigator.Navigator
	clock    *clock.Scheduler
	renderer *world.RaylibRenderer
	current  int

	viewport  world.Viewport
	lastMouse rl.Vector2
	mouseDown bool
	onScreen  bool
	touching  bool
	touchY    float32
	swiping   bool
	focused   bool

	// Debug timing (ms)
	frameMs float64
}

// New builds one World per scene. start picks the first section; a negative
// start resumes the last visited one.
func New(cfg *config.File, store *prefs.Store, start int) *Game {
	g := &Game{
		Config: cfg,
		Prefs:  store,
		clock:  clock.NewScheduler(),
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	deps := world.Deps{
		NewLoader: func() world.Loader {
			return assets.NewManager(assets.RaylibBackend{})
		},
		NewRenderer: func() world.Renderer {
			g.renderer = world.NewRaylibRenderer()
			return g.renderer
		},
		Rand: rng,
	}
	for i, sc := range cfg.Scenes {
		g.worlds = append(g.worlds, world.New(i, sc, deps))
	}

	g.nav = navigator.New(navigator.DefaultConfig(len(g.worlds)), g.clock)
	g.nav.OnSectionChanged.AddListener(g.switchTo)
	g.nav.Jump(g.startSection(start))
	g.current = g.nav.Current()
	return g
}

func (g *Game) startSection(start int) int {
	if start >= 0 {
		return start
	}
	if g.Prefs == nil {
		return 0
	}
	last := g.Prefs.Prefs().LastSection
	for i, w := range g.worlds {
		if w.Name() == last {
			return i
		}
	}
	return 0
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "folio3d")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	initRayguiStyle()

	g.viewport = currentViewport()
	g.nav.SetViewport(float32(g.viewport.Width), float32(g.viewport.Height))
	g.focused = rl.IsWindowFocused()
	g.active().Mount(g.viewport)
	g.visit()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}

	g.active().Unmount()
	if g.Prefs != nil {
		if err := g.Prefs.Save(); err != nil {
			log.Printf("[Prefs] Warning: %v", err)
		}
	}
}

func (g *Game) active() *world.World {
	return g.worlds[g.current]
}

func (g *Game) now() time.Duration {
	return time.Duration(rl.GetTime() * float64(time.Second))
}

// switchTo swaps the mounted section. Only one World is mounted at a time.
func (g *Game) switchTo(index int) {
	if index == g.current {
		return
	}
	g.active().Unmount()
	g.current = index
	g.active().Mount(g.viewport)
	g.visit()
}

func (g *Game) visit() {
	if g.Prefs != nil {
		g.Prefs.Visit(g.active().Name())
	}
}

func currentViewport() world.Viewport {
	scale := rl.GetWindowScaleDPI()
	return world.Viewport{
		Width:  int32(rl.GetScreenWidth()),
		Height: int32(rl.GetScreenHeight()),
		DPI:    scale.X,
	}
}

func (g *Game) Update() {
	now := g.now()
	g.clock.Advance(now)

	if vp := currentViewport(); vp != g.viewport {
		g.viewport = vp
		g.nav.SetViewport(float32(vp.Width), float32(vp.Height))
		g.active().Resize(vp)
	}

	if focused := rl.IsWindowFocused(); focused != g.focused {
		g.focused = focused
		g.active().SetActive(focused)
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.active().TriggerReset(now)
	}
	if rl.IsKeyPressed(rl.KeyPageDown) || rl.IsKeyPressed(rl.KeyDown) {
		g.nav.GoTo(g.nav.Current()+1, now)
	}
	if rl.IsKeyPressed(rl.KeyPageUp) || rl.IsKeyPressed(rl.KeyUp) {
		g.nav.GoTo(g.nav.Current()-1, now)
	}

	// raylib reports wheel-up as positive; sections advance on wheel-down.
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		if rl.IsKeyDown(rl.KeyLeftControl) {
			g.active().Dolly(-wheel)
		} else {
			g.nav.OnWheel(-wheel, now)
		}
	}

	if rl.GetTouchPointCount() > 0 || g.touching {
		g.updateTouch()
		return
	}
	g.updateMouse()
}

func (g *Game) updateMouse() {
	w := g.active()
	w.SetTouch(false)

	onScreen := rl.IsCursorOnScreen()
	if !onScreen {
		if g.onScreen {
			w.PointerLeave()
			g.mouseDown = false
		}
		g.onScreen = false
		return
	}
	g.onScreen = true

	pos := rl.GetMousePosition()
	if pos != g.lastMouse {
		w.PointerMove(pos)
		g.lastMouse = pos
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !g.overUI(pos) {
		w.PointerDown(pos)
		g.mouseDown = true
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && g.mouseDown {
		w.PointerUp()
		g.mouseDown = false
	}
}

// updateTouch feeds the primary touch point to both the navigator and the
// scene. Once a swipe leaves the dead zone it belongs to the navigator.
func (g *Game) updateTouch() {
	w := g.active()
	w.SetTouch(true)

	if rl.GetTouchPointCount() == 0 {
		g.nav.OnTouchEnd(g.touchY, g.touching)
		w.PointerUp()
		g.touching = false
		g.swiping = false
		return
	}

	pos := rl.GetTouchPosition(0)
	if !g.touching {
		g.touching = true
		g.touchY = pos.Y
		g.nav.OnTouchStart(pos.Y)
		if !g.overUI(pos) {
			w.PointerDown(pos)
		}
		return
	}
	g.touchY = pos.Y
	if g.nav.OnTouchMove(pos.Y) && !g.swiping {
		g.swiping = true
		w.PointerUp()
	}
	if !g.swiping {
		w.PointerMove(pos)
	}
}

func (g *Game) Draw() {
	start := time.Now()
	rl.BeginDrawing()

	g.active().Frame(g.now())
	g.frameMs = float64(time.Since(start).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	snap := g.active().Snapshot()
	g.drawOverlay(snap)

	if g.DebugMode {
		rl.DrawFPS(10, 10)
		rl.DrawText(fmt.Sprintf("Section: %d (%s)", snap.CurrentSection, snap.SectionName), 10, 35, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Particles: %d", snap.LiveParticles), 10, 55, 16, rl.Green)
		if g.renderer != nil {
			rl.DrawText(fmt.Sprintf("Meshes: %d drawn, %d culled", g.renderer.Drawn, g.renderer.Culled), 10, 75, 16, rl.Green)
		}
		rl.DrawText(fmt.Sprintf("Frame:     %.2f ms", g.frameMs), 10, 95, 16, rl.Lime)
	}
}
