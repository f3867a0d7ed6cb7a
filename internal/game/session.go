package game

import (
	"portfolio3d/internal/camera"
	"portfolio3d/internal/choreography"
	"portfolio3d/internal/config"
	"portfolio3d/internal/engine"
	"portfolio3d/internal/flow"
	"portfolio3d/internal/interaction"
	"portfolio3d/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hashicorp/go-hclog"
)

// DragThreshold is how far, in pixels, a press may travel and still count
// as a click rather than an orbit drag.
const DragThreshold = 5

// Orbit is the user-facing camera controller.
type Orbit interface {
	choreography.Rig
	HandleInput(camera.Input)
}

// Input is one frame of device state, read by the caller.
type Input struct {
	Pointer    rl.Vector2
	HasPointer bool
	Pressed    bool // primary button or touch went down this frame
	Down       bool
	Released   bool
	Delta      rl.Vector2
	Wheel      float32
	AnyKey     bool
	Escape     bool
	// OverUI is set when the overlay owns the pointer.
	OverUI bool
}

// View is the camera state input is resolved against.
type View struct {
	Pose    camera.Pose
	Lens    camera.Lens
	Surface rl.Rectangle
}

// Session wires the tracker, the choreographer and the flow controller
// together and exposes the events the surrounding UI listens to.
type Session struct {
	SceneReady   engine.Event
	LoadProgress engine.EventWithArg[int]
	LoadError    engine.EventWithArg[error]
	ObjectHover  engine.EventWithArg[engine.Target]
	ObjectClick  engine.EventWithArg[engine.Target]

	Tracker       *interaction.Tracker
	Choreographer *choreography.Choreographer
	Flow          *flow.Controller

	orbit   Orbit
	objects *engine.Interactives
	logger  hclog.Logger

	hovered  *engine.InteractiveObject
	pressing bool
	pressAt  rl.Vector2
	dragged  bool
	overUI   bool
}

func NewSession(orbit Orbit, links map[engine.Target]flow.Link, openURL func(string) error, settings choreography.Settings, logger hclog.Logger) *Session {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Session{
		Tracker:       interaction.NewTracker(),
		Choreographer: choreography.New(settings, logger.Named("choreography")),
		orbit:         orbit,
		logger:        logger,
	}
	s.Flow = flow.New(s.Choreographer, links, openURL, logger.Named("flow"))
	s.Choreographer.SetRig(orbit)

	s.Tracker.Hover.AddListener(s.onHover)
	s.Tracker.Click.AddListener(s.onClick)
	s.Flow.Changed.AddListener(func(st flow.State) {
		s.Tracker.SetClickSuppressed(flow.Present(st).SuppressClicks)
	})
	return s
}

// Progress forwards load progress.
func (s *Session) Progress(percent int) {
	s.LoadProgress.Invoke(percent)
}

// Fail reports a terminal load error.
func (s *Session) Fail(err error) {
	s.logger.Error("load failed", "error", err)
	s.LoadError.Invoke(err)
}

// Ready installs the loaded room and announces it.
func (s *Session) Ready(scene *engine.Scene, objects *engine.Interactives) {
	s.objects = objects
	s.Tracker.SetObjects(objects)
	s.Choreographer.SetScene(scene, objects)
	s.LoadProgress.Invoke(100)
	s.SceneReady.Invoke()
}

func (s *Session) onHover(t engine.Target) {
	if s.hovered != nil {
		s.Choreographer.ClearHoverPulse(s.hovered)
	}
	s.hovered = nil
	if obj, ok := s.objects.ByTarget(t); ok {
		s.hovered = obj
		s.Choreographer.PulseHover(obj)
	}
	s.ObjectHover.Invoke(t)
}

func (s *Session) onClick(t engine.Target) {
	s.ObjectClick.Invoke(t)
	s.Flow.Select(t)
}

// HandleInput processes one frame of input. In screen zoom any key or click
// leaves the mode and nothing else sees the input.
func (s *Session) HandleInput(in Input, v View) {
	state := s.Flow.State()
	s.overUI = in.OverUI

	if state.View == flow.ScreenZoom {
		s.pressing = false
		s.Tracker.Leave()
		if in.AnyKey || in.Pressed {
			s.Flow.Escape()
		}
		return
	}
	if in.Escape && state.Overlay != flow.NoOverlay {
		s.Flow.Dismiss()
		return
	}

	pres := flow.Present(state)
	s.Tracker.SetClickSuppressed(pres.SuppressClicks)

	if !in.HasPointer || in.OverUI {
		s.Tracker.Leave()
	} else {
		s.Tracker.Move(camera.ToNDC(in.Pointer, v.Surface), v.Pose, v.Lens)
	}

	if in.Pressed && in.HasPointer && !in.OverUI {
		s.pressing = true
		s.pressAt = in.Pointer
		s.dragged = false
	}
	if s.pressing && rl.Vector2Distance(in.Pointer, s.pressAt) > DragThreshold {
		s.dragged = true
	}

	if !pres.LockInput {
		var oi camera.Input
		if s.pressing && s.dragged && in.Down {
			oi.Drag = in.Delta
		}
		if !in.OverUI {
			oi.Wheel = in.Wheel
		}
		s.orbit.HandleInput(oi)
	}

	if in.Released && s.pressing {
		s.pressing = false
		if !s.dragged && !in.OverUI {
			// Fresh ray at release time, not the last hover result.
			s.Tracker.ClickAt(camera.ToNDC(in.Pointer, v.Surface), v.Pose, v.Lens)
		}
	}
}

// Apply routes overlay actions through the flow controller.
func (s *Session) Apply(actions []ui.Action) {
	for _, a := range actions {
		switch a.Kind {
		case ui.ActionSelect:
			s.Flow.Select(a.Target)
		case ui.ActionCloseContent:
			s.Flow.CloseContent()
		case ui.ActionCancelLink:
			s.Flow.CancelLink()
		case ui.ActionConfirmLink:
			if err := s.Flow.ConfirmLink(); err != nil {
				s.logger.Warn("link not opened", "error", err)
			}
		}
	}
}

// Update advances animations. Completions, and the flow transitions waiting
// on them, run inside it.
func (s *Session) Update(dt float32) {
	s.Choreographer.Update(dt)
}

// Presentation is the declarative UI state for this frame.
func (s *Session) Presentation() flow.Presentation {
	return flow.Present(s.Flow.State())
}

// Cursor maps the presentation and hover state onto a system cursor.
func (s *Session) Cursor() rl.MouseCursor {
	if s.Presentation().Cursor == flow.CursorZoomOut {
		return rl.MouseCursorCrosshair
	}
	if s.overUI {
		return rl.MouseCursorDefault
	}
	return s.Tracker.Cursor()
}

// Dispose stops animations and drops the room. Events stop firing.
func (s *Session) Dispose() {
	s.SceneReady.RemoveAllListeners()
	s.LoadProgress.RemoveAllListeners()
	s.LoadError.RemoveAllListeners()
	s.ObjectHover.RemoveAllListeners()
	s.ObjectClick.RemoveAllListeners()

	s.Choreographer.Dispose()
	s.Tracker.SetObjects(nil)
	s.objects = nil
	s.hovered = nil
}

// LinksFromConfig maps the link targets to their configured destinations.
func LinksFromConfig(cfg config.LinksConfig) map[engine.Target]flow.Link {
	return map[engine.Target]flow.Link{
		engine.TargetGitHub:   {URL: cfg.GitHub.URL, SiteName: cfg.GitHub.SiteName},
		engine.TargetLinkedIn: {URL: cfg.LinkedIn.URL, SiteName: cfg.LinkedIn.SiteName},
	}
}
