package game

import (
	"log"
	"os"

	"folio3d/internal/world"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorBgDark        = rl.NewColor(10, 10, 15, 255)
	colorBgElement     = rl.NewColor(28, 28, 38, 255)
	colorBgHover       = rl.NewColor(38, 38, 52, 255)
	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
)

const (
	fontPath = "assets/fonts/Outfit-Regular.ttf"

	dotSize    = 14
	dotSpacing = 26
	dotMargin  = 24
)

var uiFont rl.Font

func initRayguiStyle() {
	if _, err := os.Stat(fontPath); err == nil {
		uiFont = rl.LoadFontEx(fontPath, 48, nil)
		rl.SetTextureFilter(uiFont.Texture, rl.FilterBilinear)
		gui.SetFont(uiFont)
	} else {
		log.Printf("UI: %s unavailable, using default font", fontPath)
	}

	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 18)
}

func (g *Game) dotRect(i int) rl.Rectangle {
	n := len(g.worlds)
	top := float32(g.viewport.Height)/2 - float32(n*dotSpacing)/2
	return rl.Rectangle{
		X:      float32(g.viewport.Width) - dotMargin - dotSize,
		Y:      top + float32(i*dotSpacing),
		Width:  dotSize,
		Height: dotSize,
	}
}

func (g *Game) resetRect() rl.Rectangle {
	return rl.Rectangle{X: 24, Y: float32(g.viewport.Height) - 64, Width: 120, Height: 36}
}

// overUI reports whether p lands on an overlay control, so presses there do
// not reach the scene.
func (g *Game) overUI(p rl.Vector2) bool {
	for i := range g.worlds {
		if rl.CheckCollisionPointRec(p, g.dotRect(i)) {
			return true
		}
	}
	return g.hasReset() && rl.CheckCollisionPointRec(p, g.resetRect())
}

func (g *Game) hasReset() bool {
	return g.active().ResetSequence() != nil
}

// drawOverlay reads the snapshot only; it never reaches into the scene.
func (g *Game) drawOverlay(snap world.Snapshot) {
	now := g.now()

	for i := range g.worlds {
		r := g.dotRect(i)
		if i == snap.CurrentSection {
			rl.DrawCircle(int32(r.X+r.Width/2), int32(r.Y+r.Height/2), dotSize/2, colorAccent)
			continue
		}
		if gui.Button(r, "") {
			g.nav.GoTo(i, now)
		}
	}

	title := g.Config.Scenes[snap.CurrentSection].Title
	gui.Label(rl.Rectangle{X: 24, Y: 20, Width: 400, Height: 32}, title)
	if snap.HoveredTitle != "" {
		gui.Label(rl.Rectangle{X: 24, Y: 52, Width: 400, Height: 28}, snap.HoveredTitle)
	}

	if g.hasReset() {
		if !snap.ResetEnabled {
			gui.Disable()
		}
		if gui.Button(g.resetRect(), "Reset") && snap.ResetEnabled {
			g.active().TriggerReset(now)
		}
		gui.Enable()
	}

	if g.nav.Animating() {
		rl.DrawText("...", int32(g.viewport.Width)/2, int32(g.viewport.Height)-40, 20, colorTextMuted)
	}
}
