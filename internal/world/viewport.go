// Package world owns the window: the camera rig, the renderer and the frame
// loop that drives them.
package world

import (
	"path/filepath"
	"sync"
	"sync/atomic"

	"portfolio3d/internal/camera"
	"portfolio3d/internal/components"
	"portfolio3d/internal/config"
	"portfolio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hashicorp/go-hclog"
)

// Viewport is the render surface with its camera, orbit controller and
// renderer. The home pose and orbit bounds are picked from the width at
// creation and never change; resizing only touches the lens.
type Viewport struct {
	Profile  camera.Profile
	Lens     camera.Lens
	Orbit    *camera.Orbit
	Renderer *Renderer
	Sun      *engine.GameObject
	// AfterFrame runs once the frame has been presented.
	AfterFrame func()

	cfg        *config.Config
	logger     hclog.Logger
	background rl.Color
	width      int32
	height     int32
	renderers  []*components.MeshRenderer
	visible    []*components.MeshRenderer

	window   bool
	stopped  atomic.Bool
	stopOnce sync.Once
	disposed bool
}

// Create opens the window and builds the rig around it.
func Create(cfg *config.Config, logger hclog.Logger) (*Viewport, error) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagVsyncHint)
	if cfg.Window.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	rl.SetTargetFPS(cfg.Window.FPS)
	rl.SetExitKey(0)

	v := newViewport(cfg, int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), logger)
	v.window = true

	if err := v.Renderer.Initialize(cfg.Assets.Shaders); err != nil {
		v.Dispose()
		return nil, err
	}
	v.Renderer.SetLight(engine.GetComponent[*components.DirectionalLight](v.Sun))

	v.logger.Info("viewport created",
		"width", v.width, "height", v.height,
		"mobile", v.Profile.Mobile,
		"fov", v.Lens.FOV,
		"shaders", filepath.Clean(cfg.Assets.Shaders))
	return v, nil
}

// newViewport builds everything that does not need a GL context.
func newViewport(cfg *config.Config, width, height int32, logger hclog.Logger) *Viewport {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	profile := camera.ProfileFor(cfg, width)
	orbit := camera.NewOrbit(profile.Home, profile.Bounds, camera.Damping{
		Frequency: cfg.Orbit.DampingFrequency,
		Ratio:     cfg.Orbit.DampingRatio,
	})
	orbit.RotateSpeed = cfg.Orbit.RotateSpeed
	orbit.ZoomSpeed = cfg.Orbit.ZoomSpeed

	sun := engine.NewGameObject("Sun")
	sun.AddComponent(components.NewDirectionalLight())

	return &Viewport{
		Profile:    profile,
		Lens:       camera.LensFor(cfg, width, height),
		Orbit:      orbit,
		Renderer:   NewRenderer(),
		Sun:        sun,
		cfg:        cfg,
		logger:     logger,
		background: cfg.Background(),
		width:      width,
		height:     height,
	}
}

func (v *Viewport) Size() (width, height int32) {
	return v.width, v.height
}

// Surface is the drawable area in screen pixels.
func (v *Viewport) Surface() rl.Rectangle {
	return rl.Rectangle{Width: float32(v.width), Height: float32(v.height)}
}

func (v *Viewport) Pose() camera.Pose {
	return v.Orbit.Pose()
}

func (v *Viewport) Camera3D() rl.Camera3D {
	return camera.Camera3D(v.Orbit.Pose(), v.Lens)
}

// SetRenderers replaces what the frame loop draws.
func (v *Viewport) SetRenderers(renderers []*components.MeshRenderer) {
	v.renderers = renderers
}

// OnResize picks up the window's new size.
func (v *Viewport) OnResize() {
	v.resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
}

func (v *Viewport) resize(width, height int32) {
	if width == v.width && height == v.height {
		return
	}
	v.width, v.height = width, height
	v.Lens = camera.LensFor(v.cfg, width, height)
	v.logger.Debug("viewport resized", "width", width, "height", height, "fov", v.Lens.FOV)
}

// Run drives the frame loop until Stop is called or the window is closed.
// Each frame runs update, advances orbit damping and renders; overlay is
// drawn on top of the 3D pass.
func (v *Viewport) Run(update func(dt float32), overlay func()) {
	for !v.stopped.Load() && !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			v.OnResize()
		}
		dt := rl.GetFrameTime()
		if update != nil {
			update(dt)
		}
		if v.stopped.Load() {
			break
		}
		v.Orbit.Update(dt)
		v.draw(overlay)
		if v.AfterFrame != nil {
			v.AfterFrame()
		}
	}
	v.Stop()
}

func (v *Viewport) draw(overlay func()) {
	cam := v.Camera3D()
	v.Renderer.DrawShadowMap(v.renderers)

	rl.BeginDrawing()
	rl.ClearBackground(v.background)

	frustum := ExtractFrustum(v.Orbit.Pose(), v.Lens)
	v.visible = cull(&frustum, v.renderers, v.visible[:0])

	rl.BeginMode3D(cam)
	rl.SetMatrixProjection(v.Lens.Projection())
	v.Renderer.DrawWithShadows(cam.Position, v.visible)
	rl.EndMode3D()

	if overlay != nil {
		overlay()
	}
	rl.EndDrawing()
}

// cull appends the renderers whose objects intersect f to out. Everything
// still casts shadows, so only the main pass is culled.
func cull(f *Frustum, renderers, out []*components.MeshRenderer) []*components.MeshRenderer {
	for _, mr := range renderers {
		g := mr.GetGameObject()
		if g == nil || !g.Active {
			continue
		}
		if f.ContainsBox(g.WorldBounds()) {
			out = append(out, mr)
		}
	}
	return out
}

// Stop ends the frame loop. Only the first call has an effect.
func (v *Viewport) Stop() {
	v.stopOnce.Do(func() {
		v.stopped.Store(true)
		v.logger.Debug("frame loop stopped")
	})
}

func (v *Viewport) Stopped() bool {
	return v.stopped.Load()
}

// Dispose stops the loop, releases the renderer and closes the window.
func (v *Viewport) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	v.Stop()
	v.renderers = nil
	v.visible = nil
	if v.window {
		v.Renderer.Unload()
		rl.CloseWindow()
		v.window = false
	}
}
