// Package choreography animates the camera between the home pose and close-ups
// of interactive objects, and runs the small per-object animations.
package choreography

import (
	"fmt"

	"portfolio3d/internal/anim"
	"portfolio3d/internal/camera"
	"portfolio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hashicorp/go-hclog"
)

// Rig is the camera and controller pair the choreographer drives.
type Rig interface {
	Position() rl.Vector3
	Target() rl.Vector3
	SetPosition(rl.Vector3)
	SetTarget(rl.Vector3)
	Enabled() bool
	SetEnabled(bool)
}

type Settings struct {
	ZoomDistance   float32
	FocusDirection rl.Vector3
	FocusDuration  float32
	ReturnDuration float32
	CameraEase     anim.EaseFunc

	HoverDuration float32
	HoverScale    float32
	HoverTwist    float32 // radians about Y
	HoverEase     anim.EaseFunc

	BounceTarget   engine.Target
	BounceHeight   float32
	BounceDuration float32
}

func DefaultSettings() Settings {
	return Settings{
		ZoomDistance:   3.5,
		FocusDirection: rl.Vector3{X: 1, Y: 0.5, Z: 1},
		FocusDuration:  1.2,
		ReturnDuration: 1.0,
		CameraEase:     anim.CubicOut,
		HoverDuration:  0.3,
		HoverScale:     1.05,
		HoverTwist:     0.05,
		HoverEase:      anim.CubicOut,
		BounceTarget:   engine.TargetContact,
		BounceHeight:   0.08,
		BounceDuration: 0.8,
	}
}

const (
	keyCameraPosition = "camera.position"
	keyCameraTarget   = "camera.target"
)

// Choreographer owns the home pose and every interactive object's original
// transform. Both are captured once, the first time the rig, the scene and
// the interactive objects are all known. Until then every animation is a
// no-op that resolves immediately.
//
// A camera transition started while another is in flight cancels it: the
// older completion resolves with anim.ErrSuperseded and its continuations
// never run.
type Choreographer struct {
	settings Settings
	player   *anim.Player
	logger   hclog.Logger

	rig     Rig
	scene   *engine.Scene
	objects *engine.Interactives

	captured  bool
	home      camera.Pose
	originals map[engine.Handle]engine.Transform

	alive bool
}

func New(settings Settings, logger hclog.Logger) *Choreographer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Choreographer{
		settings:  settings,
		player:    anim.NewPlayer(),
		logger:    logger,
		originals: make(map[engine.Handle]engine.Transform),
		alive:     true,
	}
}

// SetRig provides the camera. It may arrive before or after the scene.
func (c *Choreographer) SetRig(rig Rig) {
	c.rig = rig
	c.capture()
}

// SetScene provides the loaded room.
func (c *Choreographer) SetScene(scene *engine.Scene, objects *engine.Interactives) {
	c.scene = scene
	c.objects = objects
	c.capture()
}

func (c *Choreographer) ready() bool {
	return c.alive && c.captured
}

func (c *Choreographer) capture() {
	if c.captured || !c.alive || c.rig == nil || c.scene == nil || c.objects == nil {
		return
	}
	c.home = camera.Pose{Position: c.rig.Position(), Target: c.rig.Target()}
	for _, obj := range c.objects.All() {
		c.originals[obj.Object.Handle] = obj.Object.Transform
	}
	c.captured = true
	c.logger.Debug("captured home pose", "position", c.home.Position, "target", c.home.Target, "objects", len(c.originals))

	c.startBounce()
}

// Home returns the captured home pose.
func (c *Choreographer) Home() (camera.Pose, bool) {
	return c.home, c.captured
}

// Original returns the captured transform of an interactive object.
func (c *Choreographer) Original(h engine.Handle) (engine.Transform, bool) {
	t, ok := c.originals[h]
	return t, ok
}

// Update advances every running animation. Completions resolve inside it.
func (c *Choreographer) Update(dt float32) {
	if !c.alive {
		return
	}
	c.player.Update(dt)
}

// InTransition reports whether a camera move is in flight.
func (c *Choreographer) InTransition() bool {
	return c.player.IsPlaying(keyCameraPosition) || c.player.IsPlaying(keyCameraTarget)
}

// FocusPose is the close-up pose for obj.
func (c *Choreographer) FocusPose(obj *engine.InteractiveObject) camera.Pose {
	center := obj.Object.WorldPosition()
	offset := rl.Vector3Scale(rl.Vector3Normalize(c.settings.FocusDirection), c.settings.ZoomDistance)
	return camera.Pose{Position: rl.Vector3Add(center, offset), Target: center}
}

// FocusOn moves the camera to a close-up of obj with user control disabled.
// On completion the orbit pivot is left on the object.
func (c *Choreographer) FocusOn(obj *engine.InteractiveObject) *anim.Completion {
	if !c.ready() || obj == nil || obj.Object == nil {
		return anim.Resolved()
	}
	pose := c.FocusPose(obj)
	c.logger.Debug("focus", "target", obj.Target)

	c.rig.SetEnabled(false)
	moved := c.moveCamera(pose, c.settings.FocusDuration)

	out := anim.NewCompletion()
	moved.Finally(func(err error) {
		if err != nil || !c.alive {
			out.Resolve(orStopped(err))
			return
		}
		c.rig.SetTarget(pose.Target)
		out.Resolve(nil)
	})
	return out
}

// FocusTarget is FocusOn by target. Targets missing from the room resolve
// immediately.
func (c *Choreographer) FocusTarget(t engine.Target) *anim.Completion {
	obj, ok := c.objects.ByTarget(t)
	if !ok {
		if c.captured {
			c.logger.Warn("focus on missing target", "target", t)
		}
		return anim.Resolved()
	}
	return c.FocusOn(obj)
}

// ReturnHome moves the camera back to the home pose. User control comes back
// only when the move completes.
func (c *Choreographer) ReturnHome() *anim.Completion {
	if !c.ready() {
		return anim.Resolved()
	}
	c.logger.Debug("return home")

	c.rig.SetEnabled(false)
	moved := c.moveCamera(c.home, c.settings.ReturnDuration)

	out := anim.NewCompletion()
	moved.Finally(func(err error) {
		if err != nil || !c.alive {
			out.Resolve(orStopped(err))
			return
		}
		c.rig.SetEnabled(true)
		out.Resolve(nil)
	})
	return out
}

func (c *Choreographer) moveCamera(to camera.Pose, duration float32) *anim.Completion {
	rig := c.rig
	pos := c.player.Play(anim.Vec3(keyCameraPosition, rig.Position(), to.Position, duration, c.settings.CameraEase, rig.SetPosition))
	tgt := c.player.Play(anim.Vec3(keyCameraTarget, rig.Target(), to.Target, duration, c.settings.CameraEase, rig.SetTarget))
	return anim.All(pos, tgt)
}

// SetControlsEnabled toggles user control of the orbit.
func (c *Choreographer) SetControlsEnabled(enabled bool) {
	if c.rig == nil {
		return
	}
	c.rig.SetEnabled(enabled)
}

// PulseHover grows and twists obj slightly. Screens never pulse.
func (c *Choreographer) PulseHover(obj *engine.InteractiveObject) {
	orig, ok := c.pulseable(obj)
	if !ok {
		return
	}
	scale := rl.Vector3Scale(orig.Scale, c.settings.HoverScale)
	rot := orig.Rotation
	rot.Y += c.settings.HoverTwist * rl.Rad2deg
	c.tweenTransform(obj.Object, scale, rot)
}

// ClearHoverPulse returns obj to its original scale and rotation.
func (c *Choreographer) ClearHoverPulse(obj *engine.InteractiveObject) {
	orig, ok := c.pulseable(obj)
	if !ok {
		return
	}
	c.tweenTransform(obj.Object, orig.Scale, orig.Rotation)
}

func (c *Choreographer) pulseable(obj *engine.InteractiveObject) (engine.Transform, bool) {
	if !c.ready() || obj == nil || obj.Object == nil || obj.Target.IsScreen() {
		return engine.Transform{}, false
	}
	return c.Original(obj.Object.Handle)
}

func (c *Choreographer) tweenTransform(g *engine.GameObject, scale, rot rl.Vector3) {
	d, ease := c.settings.HoverDuration, c.settings.HoverEase
	c.player.Play(anim.Vec3(objectKey(g, "scale"), g.Transform.Scale, scale, d, ease, func(v rl.Vector3) {
		g.Transform.Scale = v
	}))
	c.player.Play(anim.Vec3(objectKey(g, "rotation"), g.Transform.Rotation, rot, d, ease, func(v rl.Vector3) {
		g.Transform.Rotation = v
	}))
}

func (c *Choreographer) startBounce() {
	obj, ok := c.objects.ByTarget(c.settings.BounceTarget)
	if !ok {
		return
	}
	g := obj.Object
	base := c.originals[g.Handle].Position.Y
	c.player.Play(anim.Float(objectKey(g, "position.y"), base, base+c.settings.BounceHeight,
		c.settings.BounceDuration, anim.SineInOut, func(y float32) {
			g.Transform.Position.Y = y
		}).WithYoyo(anim.Forever))
}

// Bouncing reports whether h carries the idle bounce.
func (c *Choreographer) Bouncing(h engine.Handle) bool {
	return c.player.IsPlaying(fmt.Sprintf("%d.position.y", h))
}

// Dispose stops every animation. Pending completions resolve with
// anim.ErrStopped; nothing is written to the scene afterwards.
func (c *Choreographer) Dispose() {
	if !c.alive {
		return
	}
	c.alive = false
	c.player.Stop()
}

func objectKey(g *engine.GameObject, prop string) string {
	return fmt.Sprintf("%d.%s", g.Handle, prop)
}

func orStopped(err error) error {
	if err == nil {
		return anim.ErrStopped
	}
	return err
}
