package camera

import (
	"math"

	"portfolio3d/internal/config"

	"github.com/charmbracelet/harmonica"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Bounds limit the orbit. Angles are radians: polar from +Y, azimuth around
// +Y measured from +Z towards +X.
type Bounds struct {
	MinDistance, MaxDistance float32
	MinPolar, MaxPolar       float32
	MinAzimuth, MaxAzimuth   float32
}

func BoundsFromConfig(o config.OrbitConfig, d config.DistanceBounds) Bounds {
	return Bounds{
		MinDistance: d.Min,
		MaxDistance: d.Max,
		MinPolar:    o.MinPolar * rl.Deg2rad,
		MaxPolar:    o.MaxPolar * rl.Deg2rad,
		MinAzimuth:  o.MinAzimuth * rl.Deg2rad,
		MaxAzimuth:  o.MaxAzimuth * rl.Deg2rad,
	}
}

type Damping struct {
	Frequency float64
	Ratio     float64
}

// Input is one frame of user intent, already separated from raw device
// events: Drag in pixels, Wheel in notches (positive zooms in).
type Input struct {
	Drag  rl.Vector2
	Wheel float32
}

type axis struct {
	pos, vel, goal float64
}

// Orbit is a target-centred orbit controller. Input moves goal angles and
// distance; Update lets springs carry the camera there. Panning is not
// supported, so the target only moves when set explicitly.
type Orbit struct {
	RotateSpeed float32 // radians per pixel
	ZoomSpeed   float32 // fraction of distance per wheel notch

	bounds  Bounds
	damping Damping

	position rl.Vector3
	target   rl.Vector3

	azimuth  axis
	polar    axis
	distance axis

	enabled bool
}

func NewOrbit(home Pose, bounds Bounds, damping Damping) *Orbit {
	o := &Orbit{
		RotateSpeed: 0.005,
		ZoomSpeed:   0.1,
		bounds:      bounds,
		damping:     damping,
		position:    home.Position,
		target:      home.Target,
		enabled:     true,
	}
	o.sync()
	return o
}

func (o *Orbit) Bounds() Bounds {
	return o.bounds
}

func (o *Orbit) Position() rl.Vector3 {
	return o.position
}

func (o *Orbit) Target() rl.Vector3 {
	return o.target
}

func (o *Orbit) Pose() Pose {
	return Pose{Position: o.position, Target: o.target}
}

// SetPosition moves the camera directly. Choreographed moves use it while the
// controller is disabled.
func (o *Orbit) SetPosition(p rl.Vector3) {
	o.position = p
	if o.enabled {
		o.sync()
	}
}

func (o *Orbit) SetTarget(t rl.Vector3) {
	o.target = t
	if o.enabled {
		o.sync()
	}
}

func (o *Orbit) Enabled() bool {
	return o.enabled
}

// SetEnabled turns user control on or off. Turning it on picks the orbit up
// from wherever the camera currently is.
func (o *Orbit) SetEnabled(enabled bool) {
	if enabled && !o.enabled {
		o.enabled = true
		o.sync()
		return
	}
	o.enabled = enabled
}

// HandleInput applies one frame of drag and wheel input. It is ignored while
// the controller is disabled.
func (o *Orbit) HandleInput(in Input) {
	if !o.enabled {
		return
	}
	if in.Drag.X != 0 || in.Drag.Y != 0 {
		o.azimuth.goal = o.clampAzimuth(o.azimuth.goal - float64(in.Drag.X*o.RotateSpeed))
		o.polar.goal = o.clampPolar(o.polar.goal - float64(in.Drag.Y*o.RotateSpeed))
	}
	if in.Wheel != 0 {
		scale := math.Pow(1-float64(o.ZoomSpeed), float64(in.Wheel))
		o.distance.goal = o.clampDistance(o.distance.goal * scale)
	}
}

// Update advances damping by dt seconds and recomputes the camera position.
func (o *Orbit) Update(dt float32) {
	if !o.enabled || dt <= 0 {
		return
	}
	spring := harmonica.NewSpring(float64(dt), o.damping.Frequency, o.damping.Ratio)
	for _, a := range []*axis{&o.azimuth, &o.polar, &o.distance} {
		a.pos, a.vel = spring.Update(a.pos, a.vel, a.goal)
	}
	o.position = rl.Vector3Add(o.target, offsetFromSpherical(o.azimuth.pos, o.polar.pos, o.distance.pos))
}

// Settled reports whether the springs are at rest on their goals.
func (o *Orbit) Settled() bool {
	const eps = 1e-4
	for _, a := range []axis{o.azimuth, o.polar, o.distance} {
		if math.Abs(a.pos-a.goal) > eps || math.Abs(a.vel) > eps {
			return false
		}
	}
	return true
}

// Spherical returns the live azimuth, polar angle and distance.
func (o *Orbit) Spherical() (azimuth, polar, distance float32) {
	return float32(o.azimuth.pos), float32(o.polar.pos), float32(o.distance.pos)
}

// sync measures the current pose and makes it the new starting point. Goals
// are clamped, so an out-of-bounds pose eases back inside on the next frames.
func (o *Orbit) sync() {
	az, pol, dist := sphericalFromOffset(rl.Vector3Subtract(o.position, o.target))
	o.azimuth = axis{pos: az, goal: o.clampAzimuth(az)}
	o.polar = axis{pos: pol, goal: o.clampPolar(pol)}
	o.distance = axis{pos: dist, goal: o.clampDistance(dist)}
}

func (o *Orbit) clampAzimuth(v float64) float64 {
	return clamp(v, float64(o.bounds.MinAzimuth), float64(o.bounds.MaxAzimuth))
}

// polarEpsilon keeps the camera off the poles, where the view direction is
// parallel to world up and the camera basis is undefined.
const polarEpsilon = 1e-6

func (o *Orbit) clampPolar(v float64) float64 {
	lo := math.Max(float64(o.bounds.MinPolar), polarEpsilon)
	hi := math.Min(float64(o.bounds.MaxPolar), math.Pi-polarEpsilon)
	return clamp(v, lo, hi)
}

func (o *Orbit) clampDistance(v float64) float64 {
	return clamp(v, float64(o.bounds.MinDistance), float64(o.bounds.MaxDistance))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func sphericalFromOffset(off rl.Vector3) (azimuth, polar, distance float64) {
	x, y, z := float64(off.X), float64(off.Y), float64(off.Z)
	distance = math.Sqrt(x*x + y*y + z*z)
	if distance == 0 {
		return 0, 0, 0
	}
	azimuth = math.Atan2(x, z)
	polar = math.Acos(clamp(y/distance, -1, 1))
	return azimuth, polar, distance
}

func offsetFromSpherical(azimuth, polar, distance float64) rl.Vector3 {
	sinPolar := math.Sin(polar)
	return rl.Vector3{
		X: float32(distance * sinPolar * math.Sin(azimuth)),
		Y: float32(distance * math.Cos(polar)),
		Z: float32(distance * sinPolar * math.Cos(azimuth)),
	}
}
