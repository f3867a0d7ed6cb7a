// Package interaction turns pointer input into hover and click events on
// the room's interactive objects.
package interaction

import (
	"portfolio3d/internal/camera"
	"portfolio3d/internal/components"
	"portfolio3d/internal/engine"
	"portfolio3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultMaxDistance is far enough to cover the room from any orbit pose.
const DefaultMaxDistance = 500

// Tracker hit-tests the pointer against interactive objects only. Hover is
// raised when the resolved target changes, with TargetNone when the pointer
// leaves every object. Click is raised for the object under the pointer at
// click time unless clicks are suppressed.
type Tracker struct {
	Hover engine.EventWithArg[engine.Target]
	Click engine.EventWithArg[engine.Target]

	MaxDistance float32

	objects    *engine.Interactives
	candidates []*engine.GameObject
	current    *engine.InteractiveObject
	suppressed bool
}

func NewTracker() *Tracker {
	return &Tracker{MaxDistance: DefaultMaxDistance}
}

// SetObjects installs the lookup built after loading. Passing nil empties it;
// any hover is cleared first.
func (t *Tracker) SetObjects(objects *engine.Interactives) {
	t.Leave()
	t.objects = objects
	t.candidates = t.candidates[:0]
	for _, obj := range objects.All() {
		t.candidates = append(t.candidates, obj.Object)
	}
}

// SetClickSuppressed turns click resolution off, for modes where clicks mean
// something else.
func (t *Tracker) SetClickSuppressed(suppressed bool) {
	t.suppressed = suppressed
}

func (t *Tracker) ClickSuppressed() bool {
	return t.suppressed
}

// Pick returns the nearest interactive object under ndc, or nil. World
// bounds select candidates; objects with bound meshes must also be hit on a
// triangle. Unbound objects count as their box.
func (t *Tracker) Pick(ndc rl.Vector2, pose camera.Pose, lens camera.Lens) *engine.InteractiveObject {
	if len(t.candidates) == 0 {
		return nil
	}
	ray := camera.RayFromNDC(pose, lens, ndc)
	hit, ok := physics.RaycastNarrow(ray.Position, ray.Direction, t.MaxDistance, t.candidates, meshHit(ray))
	if !ok {
		return nil
	}
	obj, _ := t.objects.ByObject(hit.GameObject)
	return obj
}

// Move handles a pointer move.
func (t *Tracker) Move(ndc rl.Vector2, pose camera.Pose, lens camera.Lens) {
	t.setHovered(t.Pick(ndc, pose, lens))
}

// Leave handles the pointer leaving the surface.
func (t *Tracker) Leave() {
	t.setHovered(nil)
}

// ClickAt resolves a click with a fresh ray cast. It reports the target that
// was clicked, if any.
func (t *Tracker) ClickAt(ndc rl.Vector2, pose camera.Pose, lens camera.Lens) (engine.Target, bool) {
	if t.suppressed {
		return engine.TargetNone, false
	}
	obj := t.Pick(ndc, pose, lens)
	if obj == nil {
		return engine.TargetNone, false
	}
	t.Click.Invoke(obj.Target)
	return obj.Target, true
}

// Hovered returns the current hover target.
func (t *Tracker) Hovered() engine.Target {
	if t.current == nil {
		return engine.TargetNone
	}
	return t.current.Target
}

// Cursor is the pointer affordance for the current hover state.
func (t *Tracker) Cursor() rl.MouseCursor {
	if t.current != nil {
		return rl.MouseCursorPointingHand
	}
	return rl.MouseCursorDefault
}

func (t *Tracker) setHovered(obj *engine.InteractiveObject) {
	if obj == t.current {
		return
	}
	if t.current != nil {
		t.current.Hovered = false
	}
	t.current = obj
	if obj == nil {
		t.Hover.Invoke(engine.TargetNone)
		return
	}
	obj.Hovered = true
	t.Hover.Invoke(obj.Target)
}

func meshHit(ray rl.Ray) physics.Narrow {
	return func(g *engine.GameObject, box physics.RaycastHit) (physics.RaycastHit, bool) {
		mr := engine.GetComponent[*components.MeshRenderer](g)
		if mr == nil || !mr.Bound() {
			return box, true
		}
		tri, ok := mr.RayHit(ray)
		if !ok {
			return physics.RaycastHit{}, false
		}
		return physics.RaycastHit{Point: tri.Point, Normal: tri.Normal, Distance: tri.Distance}, true
	}
}

// PointerPosition picks the active pointer: the first touch point when the
// screen is being touched, otherwise the mouse.
func PointerPosition(mouse rl.Vector2, touches []rl.Vector2) rl.Vector2 {
	if len(touches) > 0 {
		return touches[0]
	}
	return mouse
}
