package physics

import (
	"portfolio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	GameObject *engine.GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// Raycast tests the ray against the world bounds of candidates and returns
// the closest hit. Inactive objects are skipped.
func Raycast(origin, direction rl.Vector3, maxDistance float32, candidates []*engine.GameObject) (RaycastHit, bool) {
	return RaycastNarrow(origin, direction, maxDistance, candidates, nil)
}

// Narrow confirms a box hit against finer geometry. It returns the refined
// hit, or false when the ray misses the geometry inside the box.
type Narrow func(obj *engine.GameObject, box RaycastHit) (RaycastHit, bool)

// RaycastNarrow is Raycast with world bounds as the broad phase and narrow
// deciding each box hit. A nil narrow accepts the box hit.
func RaycastNarrow(origin, direction rl.Vector3, maxDistance float32, candidates []*engine.GameObject, narrow Narrow) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	for _, obj := range candidates {
		if obj == nil || !obj.Active {
			continue
		}
		hitInfo, ok := RaycastAABB(origin, direction, FromBoundingBox(obj.WorldBounds()), maxDistance)
		// The box is never farther than what it encloses.
		if !ok || hitInfo.Distance >= closestHit.Distance {
			continue
		}
		if narrow != nil {
			if hitInfo, ok = narrow(obj, hitInfo); !ok {
				continue
			}
		}
		if hitInfo.Distance < closestHit.Distance {
			closestHit = hitInfo
			closestHit.GameObject = obj
			hit = true
		}
	}

	return closestHit, hit
}

// RaycastAABB is the slab test. direction must be normalized. A ray starting
// inside the box hits its far side.
func RaycastAABB(origin, direction rl.Vector3, box AABB, maxDistance float32) (RaycastHit, bool) {
	if box.Empty() {
		return RaycastHit{}, false
	}
	min, max := box.Min, box.Max

	tmin := float32(-1e30)
	tmax := float32(1e30)

	slab := func(o, d, lo, hi float32) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		return tmin <= tmax
	}

	if !slab(origin.X, direction.X, min.X, max.X) ||
		!slab(origin.Y, direction.Y, min.Y, max.Y) ||
		!slab(origin.Z, direction.Z, min.Z, max.Z) {
		return RaycastHit{}, false
	}

	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))

	// Calculate normal based on which face was hit
	var normal rl.Vector3
	epsilon := float32(0.001)
	if abs(point.X-min.X) < epsilon {
		normal = rl.Vector3{X: -1}
	} else if abs(point.X-max.X) < epsilon {
		normal = rl.Vector3{X: 1}
	} else if abs(point.Y-min.Y) < epsilon {
		normal = rl.Vector3{Y: -1}
	} else if abs(point.Y-max.Y) < epsilon {
		normal = rl.Vector3{Y: 1}
	} else if abs(point.Z-min.Z) < epsilon {
		normal = rl.Vector3{Z: -1}
	} else {
		normal = rl.Vector3{Z: 1}
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
