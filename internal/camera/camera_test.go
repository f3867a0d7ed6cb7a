package camera

import (
	"math"
	"testing"

	"portfolio3d/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func nearVec(a, b rl.Vector3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestProfileForPicksByWidth(t *testing.T) {
	cfg := config.Default()

	desktop := ProfileFor(cfg, 1280)
	if desktop.Mobile || desktop.FOV != 35 {
		t.Errorf("Expected desktop profile with fov 35, got %+v", desktop)
	}
	if desktop.Home.Position != (rl.Vector3{X: 12, Y: 5, Z: 12}) {
		t.Errorf("Unexpected desktop home %v", desktop.Home.Position)
	}
	if desktop.Bounds.MaxDistance != 18 {
		t.Errorf("Expected desktop max distance 18, got %f", desktop.Bounds.MaxDistance)
	}

	mobile := ProfileFor(cfg, 767)
	if !mobile.Mobile || mobile.FOV != 50 || mobile.Bounds.MinDistance != 10 {
		t.Errorf("Expected mobile profile, got %+v", mobile)
	}

	if ProfileFor(cfg, 768).Mobile {
		t.Error("Breakpoint width itself is desktop")
	}
}

func TestLensForFollowsWidth(t *testing.T) {
	cfg := config.Default()
	l := LensFor(cfg, 600, 800)
	if l.FOV != 50 || !near(l.Aspect, 0.75) {
		t.Errorf("Unexpected narrow lens %+v", l)
	}
	l = LensFor(cfg, 1600, 900)
	if l.FOV != 35 || l.Near != 0.1 || l.Far != 200 {
		t.Errorf("Unexpected wide lens %+v", l)
	}
}

func TestRayThroughCentreLooksAtTarget(t *testing.T) {
	pose := Pose{Position: rl.Vector3{X: 12, Y: 5, Z: 12}, Target: rl.Vector3{X: 0.4, Y: 1.9, Z: -0.8}}
	lens := Lens{FOV: 35, Aspect: 16.0 / 9, Near: 0.1, Far: 200}

	ray := RayFromNDC(pose, lens, rl.Vector2{})
	want := rl.Vector3Normalize(rl.Vector3Subtract(pose.Target, pose.Position))
	if !nearVec(ray.Direction, want) {
		t.Errorf("Centre ray should point at the target: got %v want %v", ray.Direction, want)
	}
	if ray.Position != pose.Position {
		t.Errorf("Ray should start at the camera, got %v", ray.Position)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	pose := Pose{Position: rl.Vector3{X: 12, Y: 5, Z: 12}, Target: rl.Vector3{X: 0.4, Y: 1.9, Z: -0.8}}
	lens := Lens{FOV: 35, Aspect: 16.0 / 9, Near: 0.1, Far: 200}
	point := rl.Vector3{X: 1, Y: 2.5, Z: 0.5}

	ndc, ok := ProjectToNDC(pose, lens, point)
	if !ok {
		t.Fatal("Point in front of the camera should project")
	}
	ray := RayFromNDC(pose, lens, ndc)
	want := rl.Vector3Normalize(rl.Vector3Subtract(point, pose.Position))
	if !nearVec(ray.Direction, want) {
		t.Errorf("Ray through projected point should hit it: got %v want %v", ray.Direction, want)
	}

	if _, ok := ProjectToNDC(pose, lens, rl.Vector3{X: 30, Y: 10, Z: 30}); ok {
		t.Error("Point behind the camera should not project")
	}
}

func TestNDCConversion(t *testing.T) {
	surface := rl.Rectangle{X: 0, Y: 0, Width: 800, Height: 600}

	tests := []struct {
		pixel rl.Vector2
		want  rl.Vector2
	}{
		{rl.Vector2{X: 400, Y: 300}, rl.Vector2{X: 0, Y: 0}},
		{rl.Vector2{X: 0, Y: 0}, rl.Vector2{X: -1, Y: 1}},
		{rl.Vector2{X: 800, Y: 600}, rl.Vector2{X: 1, Y: -1}},
	}
	for _, tt := range tests {
		got := ToNDC(tt.pixel, surface)
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
			t.Errorf("ToNDC(%v) = %v, want %v", tt.pixel, got, tt.want)
		}
		back := FromNDC(got, surface)
		if !near(back.X, tt.pixel.X) || !near(back.Y, tt.pixel.Y) {
			t.Errorf("FromNDC(%v) = %v, want %v", got, back, tt.pixel)
		}
	}

	if got := ToNDC(rl.Vector2{X: 10, Y: 10}, rl.Rectangle{}); got != (rl.Vector2{}) {
		t.Errorf("Empty surface should map to the centre, got %v", got)
	}
}
