package game

import (
	"testing"

	"folio3d/internal/config"
	"folio3d/internal/prefs"
	"folio3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestStartSectionResumesLastVisit(t *testing.T) {
	store := prefs.NewStore(nil)
	store.Visit("skills")

	g := New(config.Default(), store, -1)
	if g.current != 2 {
		t.Errorf("Expected section 2, got %d", g.current)
	}
	if g.nav.Animating() {
		t.Error("Expected restoring a section not to lock navigation")
	}
}

func TestStartSectionFlagWins(t *testing.T) {
	store := prefs.NewStore(nil)
	store.Visit("skills")

	g := New(config.Default(), store, 1)
	if g.current != 1 {
		t.Errorf("Expected section 1, got %d", g.current)
	}
}

func TestStartSectionClamped(t *testing.T) {
	g := New(config.Default(), nil, 99)
	if g.current != 3 {
		t.Errorf("Expected last section 3, got %d", g.current)
	}
	if len(g.worlds) != 4 {
		t.Errorf("Expected 4 worlds, got %d", len(g.worlds))
	}
}

func TestOverlayHitTest(t *testing.T) {
	g := New(config.Default(), nil, 0)
	g.viewport = world.Viewport{Width: 800, Height: 600}

	for i := range g.worlds {
		r := g.dotRect(i)
		center := rl.NewVector2(r.X+r.Width/2, r.Y+r.Height/2)
		if !g.overUI(center) {
			t.Errorf("Expected dot %d to capture presses", i)
		}
	}
	if g.overUI(rl.NewVector2(400, 300)) {
		t.Error("Expected the scene center to reach the scene")
	}

	// Only the hero section has a reset prop, and its sequence exists once mounted.
	reset := g.resetRect()
	if g.overUI(rl.NewVector2(reset.X+1, reset.Y+1)) {
		t.Error("Expected no reset button before the section is mounted")
	}
}
