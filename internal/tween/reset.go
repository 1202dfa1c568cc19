package tween

import (
	"time"

	"folio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRotate
	PhaseTranslate
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRotate:
		return "Rotate"
	case PhaseTranslate:
		return "Translate"
	}
	return "Unknown"
}

const (
	DefaultRotateDuration    = 1000 * time.Millisecond
	DefaultTranslateDuration = 1000 * time.Millisecond
)

// ResetSequence plays a scripted two-phase return of a node to its rest pose:
// rotation first, then position. It is a no-op to trigger it while running.
type ResetSequence struct {
	Target            *engine.Node
	RestRotation      rl.Vector3
	RestPosition      rl.Vector3
	RotateDuration    time.Duration
	TranslateDuration time.Duration
	Ease              EaseFunc

	// OnFinished fires once per completed run, after the node has snapped to rest.
	OnFinished engine.Event
	// OnPhase fires on every phase change, including the return to Idle.
	OnPhase engine.EventWithArg[Phase]

	phase Phase
	job   *Job
	runs  int
}

func NewResetSequence(target *engine.Node, restRotation, restPosition rl.Vector3) *ResetSequence {
	return &ResetSequence{
		Target:            target,
		RestRotation:      restRotation,
		RestPosition:      restPosition,
		RotateDuration:    DefaultRotateDuration,
		TranslateDuration: DefaultTranslateDuration,
		Ease:              CubicOut,
	}
}

func (r *ResetSequence) Phase() Phase {
	return r.phase
}

func (r *ResetSequence) Active() bool {
	return r.phase != PhaseIdle
}

// Runs counts the sequences that have been started.
func (r *ResetSequence) Runs() int {
	return r.runs
}

// Trigger starts the sequence at now. It reports false and changes nothing when
// a sequence is already running or there is no target.
func (r *ResetSequence) Trigger(now time.Duration) bool {
	if r.phase != PhaseIdle || r.Target == nil {
		return false
	}
	r.runs++
	r.enter(PhaseRotate, now)
	return true
}

// Update samples the running phase against wall-clock time. A frame that lands
// past the end of a phase snaps the property and starts the next phase at now.
func (r *ResetSequence) Update(now time.Duration) {
	if r.phase == PhaseIdle || r.job == nil {
		return
	}
	v, done := r.job.Sample(now)
	switch r.phase {
	case PhaseRotate:
		r.Target.Transform.Rotation = v
		if done {
			r.enter(PhaseTranslate, now)
		}
	case PhaseTranslate:
		r.Target.Transform.Position = v
		if done {
			r.job = nil
			r.setPhase(PhaseIdle)
			r.OnFinished.Invoke()
		}
	}
}

// Abort drops the running sequence without snapping or firing OnFinished.
// Used on teardown only.
func (r *ResetSequence) Abort() {
	r.job = nil
	r.phase = PhaseIdle
}

func (r *ResetSequence) enter(p Phase, now time.Duration) {
	switch p {
	case PhaseRotate:
		r.job = &Job{
			From:     r.Target.Transform.Rotation,
			To:       r.RestRotation,
			Start:    now,
			Duration: r.RotateDuration,
			Ease:     r.Ease,
		}
	case PhaseTranslate:
		r.job = &Job{
			From:     r.Target.Transform.Position,
			To:       r.RestPosition,
			Start:    now,
			Duration: r.TranslateDuration,
			Ease:     r.Ease,
		}
	}
	r.setPhase(p)
}

func (r *ResetSequence) setPhase(p Phase) {
	r.phase = p
	r.OnPhase.Invoke(p)
}
