package world

import (
	"testing"

	"portfolio3d/internal/config"
)

func TestNewViewportPicksProfileByWidth(t *testing.T) {
	cfg := config.Default()

	desktop := newViewport(cfg, 1280, 720, nil)
	if desktop.Profile.Mobile {
		t.Error("1280 wide should be desktop")
	}
	if desktop.Orbit.Position() != cfg.Camera.DesktopHome.Position.V() {
		t.Errorf("desktop camera at %v", desktop.Orbit.Position())
	}

	mobile := newViewport(cfg, 400, 800, nil)
	if !mobile.Profile.Mobile {
		t.Error("400 wide should be mobile")
	}
	if mobile.Lens.FOV != cfg.Camera.MobileFOV {
		t.Errorf("mobile fov = %v", mobile.Lens.FOV)
	}
	if mobile.Orbit.Position() != cfg.Camera.MobileHome.Position.V() {
		t.Errorf("mobile camera at %v", mobile.Orbit.Position())
	}
}

func TestResizeKeepsPoseAndProfile(t *testing.T) {
	cfg := config.Default()
	v := newViewport(cfg, 1280, 720, nil)
	pose := v.Pose()

	v.resize(500, 900)
	if v.Lens.FOV != cfg.Camera.MobileFOV {
		t.Errorf("narrow window should widen the fov, got %v", v.Lens.FOV)
	}
	if v.Lens.Aspect != float32(500)/900 {
		t.Errorf("aspect = %v", v.Lens.Aspect)
	}
	if v.Profile.Mobile {
		t.Error("resizing must not re-pick the profile")
	}
	if v.Pose() != pose {
		t.Errorf("resizing moved the camera from %v to %v", pose, v.Pose())
	}
	if w, h := v.Size(); w != 500 || h != 900 {
		t.Errorf("size = %dx%d", w, h)
	}
}

func TestStopBeforeRun(t *testing.T) {
	v := newViewport(config.Default(), 1280, 720, nil)
	v.Stop()
	v.Stop()
	if !v.Stopped() {
		t.Fatal("viewport should be stopped")
	}
	v.Run(func(float32) {
		t.Error("a stopped viewport must not run frames")
	}, nil)
}

func TestDisposeWithoutWindow(t *testing.T) {
	v := newViewport(config.Default(), 1280, 720, nil)
	v.Dispose()
	v.Dispose()
	if !v.Stopped() {
		t.Error("dispose should stop the loop")
	}
}
