// Package camera holds the room camera: its lens, the two home poses and the
// orbit controller that moves it.
package camera

import (
	"math"

	"portfolio3d/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var worldUp = rl.Vector3{X: 0, Y: 1, Z: 0}

type Pose struct {
	Position rl.Vector3
	Target   rl.Vector3
}

func PoseFromConfig(p config.Pose) Pose {
	return Pose{Position: p.Position.V(), Target: p.Target.V()}
}

// Lens is the perspective projection. FOV is vertical, in degrees.
type Lens struct {
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32
}

// Profile is the device-dependent part of the camera setup.
type Profile struct {
	Mobile bool
	Home   Pose
	FOV    float32
	Bounds Bounds
}

func IsMobile(width, breakpoint int32) bool {
	return width < breakpoint
}

// ProfileFor picks the home pose and orbit bounds for a surface width. It is
// evaluated once when the viewport is created.
func ProfileFor(cfg *config.Config, width int32) Profile {
	mobile := IsMobile(width, cfg.Camera.MobileBreakpoint)
	p := Profile{
		Mobile: mobile,
		Home:   PoseFromConfig(cfg.Camera.DesktopHome),
		FOV:    cfg.Camera.DesktopFOV,
		Bounds: BoundsFromConfig(cfg.Orbit, cfg.Orbit.Desktop),
	}
	if mobile {
		p.Home = PoseFromConfig(cfg.Camera.MobileHome)
		p.FOV = cfg.Camera.MobileFOV
		p.Bounds = BoundsFromConfig(cfg.Orbit, cfg.Orbit.Mobile)
	}
	return p
}

// LensFor builds the lens for the current surface size. Unlike the home pose
// it follows every resize.
func LensFor(cfg *config.Config, width, height int32) Lens {
	fov := cfg.Camera.DesktopFOV
	if IsMobile(width, cfg.Camera.MobileBreakpoint) {
		fov = cfg.Camera.MobileFOV
	}
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return Lens{FOV: fov, Aspect: aspect, Near: cfg.Camera.Near, Far: cfg.Camera.Far}
}

// Projection returns the projection matrix for the lens.
func (l Lens) Projection() rl.Matrix {
	top := l.Near * l.tanHalfFOV()
	right := top * l.Aspect
	return rl.MatrixFrustum(-right, right, -top, top, l.Near, l.Far)
}

func (l Lens) tanHalfFOV() float32 {
	return float32(math.Tan(float64(l.FOV) * math.Pi / 360))
}

// Camera3D converts a pose to the raylib camera used for drawing.
func Camera3D(p Pose, l Lens) rl.Camera3D {
	return rl.Camera3D{
		Position:   p.Position,
		Target:     p.Target,
		Up:         worldUp,
		Fovy:       l.FOV,
		Projection: rl.CameraPerspective,
	}
}

type basis struct {
	forward, right, up rl.Vector3
}

func basisOf(p Pose) basis {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(p.Target, p.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, worldUp))
	up := rl.Vector3CrossProduct(right, forward)
	return basis{forward: forward, right: right, up: up}
}

// RayFromNDC returns the world-space ray through a point given in normalized
// device coordinates, x to the right and y up, both in [-1, 1].
func RayFromNDC(p Pose, l Lens, ndc rl.Vector2) rl.Ray {
	b := basisOf(p)
	t := l.tanHalfFOV()
	dir := b.forward
	dir = rl.Vector3Add(dir, rl.Vector3Scale(b.right, ndc.X*t*l.Aspect))
	dir = rl.Vector3Add(dir, rl.Vector3Scale(b.up, ndc.Y*t))
	return rl.Ray{Position: p.Position, Direction: rl.Vector3Normalize(dir)}
}

// ProjectToNDC is the inverse of RayFromNDC. ok is false for points behind
// the camera.
func ProjectToNDC(p Pose, l Lens, world rl.Vector3) (rl.Vector2, bool) {
	b := basisOf(p)
	rel := rl.Vector3Subtract(world, p.Position)
	depth := rl.Vector3DotProduct(rel, b.forward)
	if depth <= 0 {
		return rl.Vector2{}, false
	}
	t := l.tanHalfFOV()
	x := rl.Vector3DotProduct(rel, b.right) / (depth * t * l.Aspect)
	y := rl.Vector3DotProduct(rel, b.up) / (depth * t)
	return rl.Vector2{X: x, Y: y}, true
}

// ToNDC maps a pixel position inside a surface rectangle to normalized device
// coordinates.
func ToNDC(pixel rl.Vector2, surface rl.Rectangle) rl.Vector2 {
	if surface.Width <= 0 || surface.Height <= 0 {
		return rl.Vector2{}
	}
	return rl.Vector2{
		X: (pixel.X-surface.X)/surface.Width*2 - 1,
		Y: -((pixel.Y-surface.Y)/surface.Height*2 - 1),
	}
}

// FromNDC is the inverse of ToNDC.
func FromNDC(ndc rl.Vector2, surface rl.Rectangle) rl.Vector2 {
	return rl.Vector2{
		X: surface.X + (ndc.X+1)/2*surface.Width,
		Y: surface.Y + (1-ndc.Y)/2*surface.Height,
	}
}
