// Package navigator maps wheel, swipe and scroll gestures onto a section index.
package navigator

import (
	"math"
	"time"

	"folio3d/internal/clock"
	"folio3d/internal/engine"
)

type Config struct {
	SectionCount int
	// Fraction of the viewport height a swipe must travel to navigate.
	TouchThreshold float32
	// Pixels of vertical travel before the host should stop native scrolling.
	DeadZone      float32
	LockTimeout   time.Duration
	WheelDebounce time.Duration
}

func DefaultConfig(sections int) Config {
	return Config{
		SectionCount:   sections,
		TouchThreshold: 0.15,
		DeadZone:       10,
		LockTimeout:    1000 * time.Millisecond,
	}
}

type State struct {
	Current     int
	Animating   bool
	LastGesture time.Duration
}

// Navigator owns the section state. While a transition is animating every
// gesture is dropped; the lock clears LockTimeout after the transition starts.
type Navigator struct {
	cfg   Config
	clock *clock.Scheduler
	state State

	viewportW, viewportH float32
	touchStartY          float32
	touching             bool
	unlock               clock.Handle

	// OnSectionChanged fires with the new index when a transition starts.
	OnSectionChanged engine.EventWithArg[int]
}

func New(cfg Config, sched *clock.Scheduler) *Navigator {
	if cfg.SectionCount < 1 {
		cfg.SectionCount = 1
	}
	return &Navigator{cfg: cfg, clock: sched}
}

func (n *Navigator) State() State {
	return n.state
}

func (n *Navigator) Current() int {
	return n.state.Current
}

func (n *Navigator) Animating() bool {
	return n.state.Animating
}

func (n *Navigator) SetViewport(w, h float32) {
	n.viewportW, n.viewportH = w, h
}

// OnWheel moves one section down for a positive delta and up for a negative one.
func (n *Navigator) OnWheel(deltaY float32, now time.Duration) {
	if n.state.Animating || deltaY == 0 {
		return
	}
	if n.cfg.WheelDebounce > 0 && n.state.LastGesture > 0 && now-n.state.LastGesture < n.cfg.WheelDebounce {
		return
	}
	n.state.LastGesture = now
	if deltaY > 0 {
		n.GoTo(n.state.Current+1, now)
	} else {
		n.GoTo(n.state.Current-1, now)
	}
}

func (n *Navigator) OnTouchStart(y float32) {
	if math.IsNaN(float64(y)) {
		return
	}
	n.touchStartY = y
	n.touching = true
}

// OnTouchMove reports whether the host should suppress native scrolling: the
// swipe has left the dead zone, or a transition is running.
func (n *Navigator) OnTouchMove(y float32) bool {
	if !n.touching || math.IsNaN(float64(y)) {
		return false
	}
	if n.state.Animating {
		return true
	}
	return absf(y-n.touchStartY) > n.cfg.DeadZone
}

// OnTouchEnd completes a swipe. ok is false when the end event carried no
// touch point, in which case it is ignored.
func (n *Navigator) OnTouchEnd(y float32, ok bool) {
	wasTouching := n.touching
	n.touching = false
	if !ok || !wasTouching || math.IsNaN(float64(y)) || n.state.Animating {
		return
	}
	delta := n.touchStartY - y
	if absf(delta) <= n.cfg.TouchThreshold*n.viewportH {
		return
	}
	now := n.clock.Now()
	n.state.LastGesture = now
	if delta > 0 {
		n.GoTo(n.state.Current+1, now)
	} else {
		n.GoTo(n.state.Current-1, now)
	}
}

// OnScroll snaps a native scroll offset to the nearest section.
func (n *Navigator) OnScroll(pos float32) {
	if n.state.Animating || n.viewportH <= 0 || math.IsNaN(float64(pos)) {
		return
	}
	idx := int(math.Round(float64(pos / n.viewportH)))
	n.GoTo(idx, n.clock.Now())
}

// GoTo starts a transition to index, clamped to the section range. It is a
// no-op while animating or when index is already current.
func (n *Navigator) GoTo(index int, now time.Duration) bool {
	if n.state.Animating {
		return false
	}
	index = max(0, min(index, n.cfg.SectionCount-1))
	if index == n.state.Current {
		return false
	}
	n.state.Current = index
	n.state.Animating = true
	n.unlock = n.clock.After(n.cfg.LockTimeout, func() {
		n.state.Animating = false
	})
	n.OnSectionChanged.Invoke(index)
	return true
}

// Jump sets the section without animating, for restoring saved state.
func (n *Navigator) Jump(index int) {
	n.clock.Cancel(n.unlock)
	n.state.Animating = false
	n.state.Current = max(0, min(index, n.cfg.SectionCount-1))
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
