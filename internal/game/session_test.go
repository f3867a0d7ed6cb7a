package game

import (
	"errors"
	"testing"

	"portfolio3d/internal/camera"
	"portfolio3d/internal/choreography"
	"portfolio3d/internal/config"
	"portfolio3d/internal/engine"
	"portfolio3d/internal/flow"
	"portfolio3d/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type fixture struct {
	s       *Session
	orbit   *camera.Orbit
	lens    camera.Lens
	surface rl.Rectangle
	home    camera.Pose
	objects *engine.Interactives
	opened  []string

	hovers []engine.Target
	clicks []engine.Target
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default()
	profile := camera.ProfileFor(cfg, 1280)
	f := &fixture{
		orbit:   camera.NewOrbit(profile.Home, profile.Bounds, camera.Damping{Frequency: 6, Ratio: 1}),
		lens:    camera.LensFor(cfg, 1280, 720),
		surface: rl.Rectangle{Width: 1280, Height: 720},
		home:    profile.Home,
	}
	openURL := func(url string) error {
		f.opened = append(f.opened, url)
		return nil
	}
	f.s = NewSession(f.orbit, LinksFromConfig(cfg.Links), openURL, choreography.DefaultSettings(), nil)
	f.s.ObjectHover.AddListener(func(t engine.Target) { f.hovers = append(f.hovers, t) })
	f.s.ObjectClick.AddListener(func(t engine.Target) { f.clicks = append(f.clicks, t) })

	scene := engine.NewScene("room")
	f.objects = engine.NewInteractives()
	positions := []struct {
		target engine.Target
		pos    rl.Vector3
	}{
		{engine.TargetGitHub, rl.Vector3{X: 0, Y: 1, Z: 0}},
		{engine.TargetAbout, rl.Vector3{X: 3, Y: 1, Z: -3}},
		{engine.TargetComputerScreen, rl.Vector3{X: -3, Y: 1, Z: 3}},
	}
	for _, p := range positions {
		g := engine.NewGameObject(string(p.target))
		rest := engine.IdentityTransform()
		rest.Position = p.pos
		g.SetRest(rest)
		half := rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}
		g.Bounds = rl.BoundingBox{Min: rl.Vector3Subtract(p.pos, half), Max: rl.Vector3Add(p.pos, half)}
		scene.AddGameObject(g)
		f.objects.Add(&engine.InteractiveObject{Object: g, Name: g.Name, Target: p.target})
	}
	f.s.Ready(scene, f.objects)
	return f
}

func (f *fixture) view() View {
	return View{Pose: f.orbit.Pose(), Lens: f.lens, Surface: f.surface}
}

// pixelOf projects a target's live position to the surface.
func (f *fixture) pixelOf(t *testing.T, target engine.Target) rl.Vector2 {
	t.Helper()
	obj, ok := f.objects.ByTarget(target)
	if !ok {
		t.Fatalf("no object for %s", target)
	}
	ndc, ok := camera.ProjectToNDC(f.orbit.Pose(), f.lens, obj.Object.Transform.Position)
	if !ok {
		t.Fatalf("%s is behind the camera", target)
	}
	return camera.FromNDC(ndc, f.surface)
}

func (f *fixture) move(p rl.Vector2) {
	f.s.HandleInput(Input{Pointer: p, HasPointer: true}, f.view())
}

func (f *fixture) click(p rl.Vector2) {
	f.s.HandleInput(Input{Pointer: p, HasPointer: true, Pressed: true, Down: true}, f.view())
	f.s.HandleInput(Input{Pointer: p, HasPointer: true, Released: true}, f.view())
}

func (f *fixture) run(seconds float32) {
	const dt = 1.0 / 60
	for elapsed := float32(0); elapsed < seconds; elapsed += dt {
		f.s.Update(dt)
		f.orbit.Update(dt)
	}
}

func (f *fixture) assertHome(t *testing.T) {
	t.Helper()
	if d := rl.Vector3Distance(f.orbit.Position(), f.home.Position); d > 1e-3 {
		t.Errorf("camera at %v, want home %v", f.orbit.Position(), f.home.Position)
	}
	if !f.orbit.Enabled() {
		t.Error("controls should be back on at home")
	}
}

var emptySpot = rl.Vector2{X: 5, Y: 5}

func TestHoverIsDeduplicated(t *testing.T) {
	f := newFixture(t)
	p := f.pixelOf(t, engine.TargetGitHub)
	for i := 0; i < 5; i++ {
		f.move(rl.Vector2{X: p.X + float32(i)*0.5, Y: p.Y})
	}
	f.move(emptySpot)
	f.move(emptySpot)

	want := []engine.Target{engine.TargetGitHub, engine.TargetNone}
	if len(f.hovers) != len(want) {
		t.Fatalf("hovers = %v, want %v", f.hovers, want)
	}
	for i := range want {
		if f.hovers[i] != want[i] {
			t.Errorf("hover %d = %v, want %v", i, f.hovers[i], want[i])
		}
	}
}

func TestHoverPulsesAndRestores(t *testing.T) {
	f := newFixture(t)
	obj, _ := f.objects.ByTarget(engine.TargetAbout)
	orig := obj.Object.Transform

	f.move(f.pixelOf(t, engine.TargetAbout))
	f.run(0.5)
	if obj.Object.Transform.Scale.X <= orig.Scale.X {
		t.Errorf("hovered object should grow, scale %v", obj.Object.Transform.Scale)
	}
	if f.s.Cursor() != rl.MouseCursorPointingHand {
		t.Error("cursor should be a pointing hand over a target")
	}

	f.move(emptySpot)
	f.run(0.5)
	if obj.Object.Transform.Scale != orig.Scale || obj.Object.Transform.Rotation != orig.Rotation {
		t.Errorf("transform %+v, want %+v", obj.Object.Transform, orig)
	}
}

func TestClickGitHubOpensLinkConfirm(t *testing.T) {
	f := newFixture(t)
	f.click(f.pixelOf(t, engine.TargetGitHub))

	if len(f.clicks) != 1 || f.clicks[0] != engine.TargetGitHub {
		t.Fatalf("clicks = %v", f.clicks)
	}
	if st := f.s.Flow.State(); st.View != flow.Focused || st.Overlay != flow.NoOverlay {
		t.Errorf("before the focus completes: %+v", st)
	}
	f.run(1.5)

	st := f.s.Flow.State()
	if st.Overlay != flow.LinkConfirm || st.Link.URL != "https://github.com/JBrannelid" || st.Link.SiteName != "GitHub" {
		t.Fatalf("after focus: %+v", st)
	}

	f.s.Apply([]ui.Action{{Kind: ui.ActionConfirmLink}})
	if len(f.opened) != 1 || f.opened[0] != st.Link.URL {
		t.Errorf("opened %v", f.opened)
	}
	f.run(1.5)
	if f.s.Flow.State() != (flow.State{}) {
		t.Errorf("state = %+v", f.s.Flow.State())
	}
	f.assertHome(t)
}

func TestDragIsNotAClick(t *testing.T) {
	f := newFixture(t)
	azBefore, _, _ := f.orbit.Spherical()
	p := f.pixelOf(t, engine.TargetGitHub)
	f.s.HandleInput(Input{Pointer: p, HasPointer: true, Pressed: true, Down: true}, f.view())
	moved := rl.Vector2{X: p.X + 40, Y: p.Y}
	f.s.HandleInput(Input{Pointer: moved, HasPointer: true, Down: true, Delta: rl.Vector2{X: 40}}, f.view())
	f.s.HandleInput(Input{Pointer: moved, HasPointer: true, Released: true}, f.view())

	if len(f.clicks) != 0 {
		t.Errorf("a drag produced clicks %v", f.clicks)
	}
	f.run(1)
	if az, _, _ := f.orbit.Spherical(); az == azBefore {
		t.Error("drag should orbit the camera")
	}
}

func TestScreenZoomSwallowsClicks(t *testing.T) {
	f := newFixture(t)
	f.click(f.pixelOf(t, engine.TargetComputerScreen))
	if f.s.Flow.State().View != flow.ScreenZoom {
		t.Fatalf("state = %+v", f.s.Flow.State())
	}
	f.run(1.5)

	clicks := len(f.clicks)
	f.click(rl.Vector2{X: 640, Y: 360})
	if len(f.clicks) != clicks {
		t.Errorf("click in screen zoom reached the room: %v", f.clicks)
	}
	if f.s.Flow.State().View != flow.Orbiting {
		t.Errorf("click should leave screen zoom, state %+v", f.s.Flow.State())
	}
	f.run(1.5)
	f.assertHome(t)
}

func TestAnyKeyLeavesScreenZoom(t *testing.T) {
	f := newFixture(t)
	f.click(f.pixelOf(t, engine.TargetComputerScreen))
	if f.s.Cursor() != rl.MouseCursorCrosshair {
		t.Error("screen zoom shows the zoom-out cursor")
	}
	f.s.HandleInput(Input{AnyKey: true}, f.view())
	if f.s.Flow.State().View != flow.Orbiting {
		t.Errorf("state = %+v", f.s.Flow.State())
	}
}

func TestNavigationRoutesThroughFocus(t *testing.T) {
	f := newFixture(t)
	f.s.Apply([]ui.Action{{Kind: ui.ActionSelect, Target: engine.TargetAbout}})
	if st := f.s.Flow.State(); st.View != flow.Focused || st.Overlay != flow.NoOverlay {
		t.Fatalf("state = %+v", st)
	}
	if f.orbit.Enabled() {
		t.Error("controls stay off during the focus move")
	}
	f.run(1.5)
	if st := f.s.Flow.State(); st.Overlay != flow.ContentModal || st.Content != engine.TargetAbout {
		t.Fatalf("state = %+v", st)
	}

	f.s.HandleInput(Input{Escape: true}, f.view())
	if f.s.Flow.State().Overlay != flow.NoOverlay {
		t.Error("escape should close the modal")
	}
}

func TestOverlayLocksOrbitInput(t *testing.T) {
	f := newFixture(t)
	f.s.Apply([]ui.Action{{Kind: ui.ActionSelect, Target: engine.TargetAbout}})
	f.run(1.5)
	f.orbit.SetEnabled(true)

	_, _, before := f.orbit.Spherical()
	f.s.HandleInput(Input{Wheel: 3, OverUI: true}, f.view())
	f.s.HandleInput(Input{Wheel: 3}, f.view())
	f.run(1)
	if _, _, after := f.orbit.Spherical(); after-before > 1e-4 || before-after > 1e-4 {
		t.Errorf("distance changed from %v to %v with a modal open", before, after)
	}
}

func TestInputBeforeLoadIsHarmless(t *testing.T) {
	cfg := config.Default()
	profile := camera.ProfileFor(cfg, 1280)
	orbit := camera.NewOrbit(profile.Home, profile.Bounds, camera.Damping{Frequency: 6, Ratio: 1})
	s := NewSession(orbit, nil, nil, choreography.DefaultSettings(), nil)

	v := View{Pose: orbit.Pose(), Lens: camera.LensFor(cfg, 1280, 720), Surface: rl.Rectangle{Width: 1280, Height: 720}}
	s.HandleInput(Input{Pointer: rl.Vector2{X: 640, Y: 360}, HasPointer: true, Pressed: true, Down: true}, v)
	s.HandleInput(Input{Pointer: rl.Vector2{X: 640, Y: 360}, HasPointer: true, Released: true}, v)
	s.Apply([]ui.Action{{Kind: ui.ActionSelect, Target: engine.TargetCV}})
	s.Update(1)
	if st := s.Flow.State(); st.Overlay != flow.ContentModal {
		t.Errorf("a missing target resolves immediately, state %+v", st)
	}
}

func TestLoadEvents(t *testing.T) {
	cfg := config.Default()
	profile := camera.ProfileFor(cfg, 1280)
	orbit := camera.NewOrbit(profile.Home, profile.Bounds, camera.Damping{Frequency: 6, Ratio: 1})
	s := NewSession(orbit, nil, nil, choreography.DefaultSettings(), nil)

	var progress []int
	var loadErr error
	ready := 0
	s.LoadProgress.AddListener(func(p int) { progress = append(progress, p) })
	s.LoadError.AddListener(func(err error) { loadErr = err })
	s.SceneReady.AddListener(func() { ready++ })

	s.Progress(30)
	s.Ready(engine.NewScene("room"), engine.NewInteractives())
	s.Fail(errors.New("boom"))

	if len(progress) != 2 || progress[1] != 100 || ready != 1 || loadErr == nil {
		t.Errorf("progress %v ready %d err %v", progress, ready, loadErr)
	}

	s.Dispose()
	s.Progress(50)
	if len(progress) != 2 {
		t.Error("events should stop after dispose")
	}
}

func TestDisposeIsSilent(t *testing.T) {
	f := newFixture(t)
	f.move(f.pixelOf(t, engine.TargetGitHub))
	if len(f.hovers) != 1 {
		t.Fatalf("hovers = %v", f.hovers)
	}

	f.s.Dispose()
	if len(f.hovers) != 1 {
		t.Errorf("teardown leaked hover events: %v", f.hovers)
	}
	if f.s.Tracker.Hovered() != engine.TargetNone {
		t.Error("tracker should drop its hover on dispose")
	}
}
