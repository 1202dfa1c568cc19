package camera

import (
	"math"
	"time"

	"folio3d/internal/tween"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Mode int

const (
	// LookAround turns the view in place around Position, like a head turn.
	LookAround Mode = iota
	// Orbit circles Position at Distance.
	Orbit
)

// Constraint is the legal envelope of a rig. Angles are in radians.
type Constraint struct {
	BaseYaw     float32
	YawRange    float32
	Pitch       float32
	MinDistance float32
	MaxDistance float32
}

// MinYaw and MaxYaw bound the azimuth.
func (c Constraint) MinYaw() float32 { return c.BaseYaw - c.YawRange }
func (c Constraint) MaxYaw() float32 { return c.BaseYaw + c.YawRange }

// Rig is a yaw-limited camera. The look target is derived from Azimuth and
// Polar every time it is needed and never stored.
type Rig struct {
	Position   rl.Vector3
	Azimuth    float32
	Polar      float32
	Distance   float32
	Constraint Constraint
	Mode       Mode
	AllowDolly bool
	Enabled    bool
	Fovy       float32

	// Radians of yaw per pixel of horizontal drag.
	Sensitivity      float32
	TouchSensitivity float32

	tweens *tween.Tweener
	now    time.Duration
}

const azimuthKey = "azimuth"

func New(pos rl.Vector3, c Constraint, mode Mode) *Rig {
	r := &Rig{
		Position:         pos,
		Azimuth:          c.BaseYaw,
		Polar:            c.Pitch,
		Distance:         c.MinDistance,
		Constraint:       c,
		Mode:             mode,
		Enabled:          true,
		Fovy:             75,
		Sensitivity:      0.005,
		TouchSensitivity: 0.002,
		tweens:           tween.NewTweener(),
	}
	if r.Distance <= 0 {
		r.Distance = 1
	}
	return r
}

// AddYaw turns the rig by delta radians within the yaw envelope. It does
// nothing while the rig is disabled.
func (r *Rig) AddYaw(delta float32) {
	if !r.Enabled {
		return
	}
	r.Azimuth = r.clampYaw(r.Azimuth + delta)
}

// DragYaw turns the rig for a horizontal pointer drag of dx pixels.
func (r *Rig) DragYaw(dx float32, touch bool) {
	sens := r.Sensitivity
	if touch {
		sens = r.TouchSensitivity
	}
	r.AddYaw(-dx * sens)
}

func (r *Rig) Dolly(delta float32) {
	if !r.Enabled || !r.AllowDolly {
		return
	}
	r.Distance = clampf(r.Distance+delta, r.Constraint.MinDistance, r.Constraint.MaxDistance)
}

func (r *Rig) SetEnabled(enabled bool) {
	r.Enabled = enabled
}

// LookAt points the rig at target. It works while disabled; the azimuth still
// respects the yaw envelope.
func (r *Rig) LookAt(target rl.Vector3) {
	dir := rl.Vector3Subtract(target, r.Eye())
	length := rl.Vector3Length(dir)
	if length == 0 {
		return
	}
	r.tweens.Cancel(azimuthKey)
	r.Azimuth = r.clampYaw(float32(math.Atan2(float64(dir.X), float64(dir.Z))))
	r.Polar = float32(math.Acos(float64(clampf(dir.Y/length, -1, 1))))
}

// SetAzimuthTween eases the azimuth to the given angle over d, starting at the
// time of the last Update. A new tween replaces a running one.
func (r *Rig) SetAzimuthTween(to float32, d time.Duration) {
	r.tweens.Start(azimuthKey, &tween.Job{
		From:     rl.Vector3{X: r.Azimuth},
		To:       rl.Vector3{X: r.clampYaw(to)},
		Start:    r.now,
		Duration: d,
		Ease:     tween.CubicOut,
		Set: func(v rl.Vector3) {
			r.Azimuth = r.clampYaw(v.X)
		},
	})
}

// Tweening reports whether an azimuth tween is running.
func (r *Rig) Tweening() bool {
	return r.tweens.Active(azimuthKey)
}

func (r *Rig) Update(now time.Duration) {
	r.now = now
	r.tweens.Update(now)
	r.Azimuth = r.clampYaw(r.Azimuth)
}

// Forward returns the unit look direction.
func (r *Rig) Forward() rl.Vector3 {
	az := float64(r.Azimuth)
	po := float64(r.Polar)
	return rl.Vector3{
		X: float32(math.Sin(po) * math.Sin(az)),
		Y: float32(math.Cos(po)),
		Z: float32(math.Sin(po) * math.Cos(az)),
	}
}

// Eye is the camera position in world space.
func (r *Rig) Eye() rl.Vector3 {
	if r.Mode == Orbit {
		return rl.Vector3Subtract(r.Position, rl.Vector3Scale(r.Forward(), r.Distance))
	}
	return r.Position
}

func (r *Rig) Camera3D() rl.Camera3D {
	eye := r.Eye()
	var target rl.Vector3
	if r.Mode == Orbit {
		target = r.Position
	} else {
		target = rl.Vector3Add(eye, r.Forward())
	}
	return rl.Camera3D{
		Position:   eye,
		Target:     target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       r.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// clampYaw maps a onto the turn closest to BaseYaw before clamping, so an
// angle reported as +π is treated as -π when the envelope sits there.
func (r *Rig) clampYaw(a float32) float32 {
	c := r.Constraint
	if a >= c.MinYaw() && a <= c.MaxYaw() {
		return a
	}
	a = c.BaseYaw + wrapPi(a-c.BaseYaw)
	return clampf(a, c.MinYaw(), c.MaxYaw())
}

func wrapPi(a float32) float32 {
	x := math.Mod(float64(a)+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return float32(x - math.Pi)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
