package game

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"portfolio3d/internal/assets"
	"portfolio3d/internal/capture"
	"portfolio3d/internal/choreography"
	"portfolio3d/internal/config"
	"portfolio3d/internal/flow"
	"portfolio3d/internal/interaction"
	"portfolio3d/internal/ui"
	"portfolio3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hashicorp/go-hclog"
)

// Game is the running application: one window, one room.
type Game struct {
	Config   *config.Config
	Viewport *world.Viewport
	Overlay  *ui.Overlay
	Session  *Session

	root    string
	logger  hclog.Logger
	job     *assets.Job
	room    *assets.Room
	pending []ui.Action
	shoot   bool
	touches []rl.Vector2
}

// New prepares a game for cfg. Relative asset paths resolve against root.
func New(cfg *config.Config, root string, logger hclog.Logger) *Game {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Game{Config: cfg, root: root, logger: logger}
}

// Run opens the window, starts loading the room and blocks until the window
// closes. Load failures are shown in the loading screen, not returned.
func (g *Game) Run(ctx context.Context) error {
	manifest, err := assets.ManifestFromConfig(g.Config.Assets, g.root)
	if err != nil {
		return err
	}

	if g.root != "" && !filepath.IsAbs(g.Config.Assets.Shaders) {
		g.Config.Assets.Shaders = filepath.Join(g.root, g.Config.Assets.Shaders)
	}
	v, err := world.Create(g.Config, g.logger.Named("world"))
	if err != nil {
		return err
	}
	g.Viewport = v
	defer g.dispose()

	g.Overlay = ui.New(g.Config, v.Profile.Mobile, g.logger.Named("ui"))
	g.Overlay.Init()

	g.Session = NewSession(v.Orbit, LinksFromConfig(g.Config.Links), openURL, choreography.DefaultSettings(), g.logger.Named("session"))
	g.Session.LoadProgress.AddListener(g.Overlay.Loader.OnLoadProgress)
	g.Session.SceneReady.AddListener(g.Overlay.Loader.OnSceneReady)
	g.Session.LoadError.AddListener(g.Overlay.Loader.OnLoadError)

	g.logger.Info("loading room", "model", manifest.Model)
	g.job = assets.StartJob(ctx, manifest, g.logger.Named("assets"))

	v.AfterFrame = g.afterFrame
	v.Run(g.update, g.drawOverlay)
	return nil
}

func openURL(url string) error {
	rl.OpenURL(url)
	return nil
}

func (g *Game) update(dt float32) {
	g.pollLoad()

	v := g.Viewport
	in := g.readInput()
	g.Session.HandleInput(in, View{Pose: v.Pose(), Lens: v.Lens, Surface: v.Surface()})
	g.Session.Apply(g.pending)
	g.pending = g.pending[:0]

	g.Session.Update(dt)
	g.Overlay.Loader.Update(dt)
	rl.SetMouseCursor(g.Session.Cursor())
}

// pollLoad finishes the background load on the render thread once the
// decode work is done. GPU uploads must happen here.
func (g *Game) pollLoad() {
	if g.job == nil {
		return
	}
	select {
	case <-g.job.Done():
	default:
		g.Session.Progress(g.job.Progress())
		return
	}

	p, err := g.job.Result()
	g.job = nil
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			g.Session.Fail(err)
		}
		return
	}
	room, err := assets.Finish(p, g.Viewport.Renderer.Shader, g.logger.Named("assets"))
	if err != nil {
		g.Session.Fail(err)
		return
	}
	g.room = room
	g.Viewport.SetRenderers(room.Renderers())
	g.Session.Ready(room.Scene, room.Interactives)
	g.logger.Info("room ready",
		"nodes", len(room.Nodes),
		"interactives", room.Interactives.Len(),
		"textured", room.Stats.Textured)
}

func (g *Game) readInput() Input {
	g.touches = g.touches[:0]
	for i := int32(0); i < rl.GetTouchPointCount(); i++ {
		g.touches = append(g.touches, rl.GetTouchPosition(i))
	}
	in := Input{
		Pointer:    interaction.PointerPosition(rl.GetMousePosition(), g.touches),
		HasPointer: rl.IsCursorOnScreen() || len(g.touches) > 0,
		Pressed:    rl.IsMouseButtonPressed(rl.MouseLeftButton),
		Down:       rl.IsMouseButtonDown(rl.MouseLeftButton),
		Released:   rl.IsMouseButtonReleased(rl.MouseLeftButton),
		Delta:      rl.GetMouseDelta(),
		Wheel:      rl.GetMouseWheelMove(),
		Escape:     rl.IsKeyPressed(rl.KeyEscape),
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if key == rl.KeyF12 {
			g.shoot = true
			continue
		}
		in.AnyKey = true
	}

	if g.Overlay.Loader.Visible() {
		in.OverUI = true
	} else {
		w, h := g.Viewport.Size()
		st := g.Session.Flow.State()
		in.OverUI = g.Overlay.Layout(w, h).Captures(in.Pointer, st, flow.Present(st))
	}
	return in
}

func (g *Game) drawOverlay() {
	w, h := g.Viewport.Size()
	actions := g.Overlay.Draw(g.Session.Flow.State(), g.Session.Presentation(), w, h)
	g.pending = append(g.pending, actions...)
}

func (g *Game) afterFrame() {
	if !g.shoot {
		return
	}
	g.shoot = false
	path, err := capture.Screen(g.Config.Capture.Dir, time.Now())
	if err != nil {
		g.logger.Error("screen capture failed", "error", err)
		return
	}
	g.logger.Info("screen captured", "path", path)
}

// dispose tears down in reverse order of creation: the load, the
// interaction state, the room and finally the window.
func (g *Game) dispose() {
	if g.job != nil {
		g.job.Cancel()
		g.job = nil
	}
	if g.Session != nil {
		g.Session.Dispose()
	}
	if g.room != nil {
		g.Viewport.SetRenderers(nil)
		g.room.Dispose()
		g.room = nil
	}
	g.Viewport.Dispose()
}
