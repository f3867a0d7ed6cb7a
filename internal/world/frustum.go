package world

import (
	"portfolio3d/internal/camera"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum extracts frustum planes from the camera's view-projection
// matrix (Gribb/Hartmann).
func ExtractFrustum(pose camera.Pose, lens camera.Lens) Frustum {
	view := rl.MatrixLookAt(pose.Position, pose.Target, rl.Vector3{Y: 1})
	vp := rl.MatrixMultiply(view, lens.Projection())

	row := func(i int) [4]float32 {
		switch i {
		case 0:
			return [4]float32{vp.M0, vp.M4, vp.M8, vp.M12}
		case 1:
			return [4]float32{vp.M1, vp.M5, vp.M9, vp.M13}
		case 2:
			return [4]float32{vp.M2, vp.M6, vp.M10, vp.M14}
		}
		return [4]float32{vp.M3, vp.M7, vp.M11, vp.M15}
	}
	w := row(3)

	var f Frustum
	for i := 0; i < 3; i++ {
		r := row(i)
		f.planes[i*2] = planeFrom(w, r, 1)
		f.planes[i*2+1] = planeFrom(w, r, -1)
	}
	return f
}

func planeFrom(w, r [4]float32, sign float32) Plane {
	return normalizePlane(Plane{
		normal:   rl.Vector3{X: w[0] + sign*r[0], Y: w[1] + sign*r[1], Z: w[2] + sign*r[2]},
		distance: w[3] + sign*r[3],
	})
}

// normalizePlane normalizes a plane equation
func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsBox reports whether any part of box may be visible. For each
// plane only the corner furthest along the normal is tested.
func (f *Frustum) ContainsBox(box rl.BoundingBox) bool {
	for _, p := range f.planes {
		corner := box.Min
		if p.normal.X >= 0 {
			corner.X = box.Max.X
		}
		if p.normal.Y >= 0 {
			corner.Y = box.Max.Y
		}
		if p.normal.Z >= 0 {
			corner.Z = box.Max.Z
		}
		if rl.Vector3DotProduct(p.normal, corner)+p.distance < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	for _, p := range f.planes {
		if rl.Vector3DotProduct(p.normal, point)+p.distance < 0 {
			return false
		}
	}
	return true
}
