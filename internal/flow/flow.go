// Package flow decides what a selected target does: open a content modal,
// ask to confirm an external link, or zoom onto a screen. It keeps camera
// moves and overlays in step.
package flow

import (
	"fmt"

	"portfolio3d/internal/anim"
	"portfolio3d/internal/engine"

	"github.com/hashicorp/go-hclog"
)

type ViewMode int

const (
	Orbiting ViewMode = iota
	Focused
	ScreenZoom
)

func (m ViewMode) String() string {
	switch m {
	case Orbiting:
		return "orbiting"
	case Focused:
		return "focused"
	case ScreenZoom:
		return "screen-zoom"
	}
	return fmt.Sprintf("ViewMode(%d)", int(m))
}

type Overlay int

const (
	NoOverlay Overlay = iota
	ContentModal
	LinkConfirm
)

func (o Overlay) String() string {
	switch o {
	case NoOverlay:
		return "none"
	case ContentModal:
		return "content"
	case LinkConfirm:
		return "link-confirm"
	}
	return fmt.Sprintf("Overlay(%d)", int(o))
}

// Link is what the confirmation dialog shows and opens.
type Link struct {
	URL      string
	SiteName string
}

// State is the complete flow state. Content is set while a content modal is
// open and Link while a link confirmation is open.
type State struct {
	View    ViewMode
	Overlay Overlay
	Content engine.Target
	Link    Link
}

// Camera is the part of the choreographer the flow needs.
type Camera interface {
	FocusTarget(t engine.Target) *anim.Completion
	ReturnHome() *anim.Completion
}

// Controller is the modal flow state machine. All methods run on the render
// loop goroutine.
type Controller struct {
	Changed engine.EventWithArg[State]

	camera  Camera
	links   map[engine.Target]Link
	openURL func(url string) error
	logger  hclog.Logger

	state                State
	hasEverOpenedOverlay bool
	// request numbers focus requests; a completion that arrives for an older
	// request is ignored.
	request uint64
}

func New(camera Camera, links map[engine.Target]Link, openURL func(string) error, logger hclog.Logger) *Controller {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if openURL == nil {
		openURL = func(string) error { return nil }
	}
	return &Controller{
		camera:  camera,
		links:   links,
		openURL: openURL,
		logger:  logger,
	}
}

func (c *Controller) State() State {
	return c.state
}

// HasEverOpenedOverlay reports whether any overlay opened this session.
func (c *Controller) HasEverOpenedOverlay() bool {
	return c.hasEverOpenedOverlay
}

// Select handles a click on a target in the room or the equivalent command
// from the navigation bar. Either way the camera focus is requested first.
func (c *Controller) Select(t engine.Target) {
	if t == engine.TargetNone {
		return
	}
	if c.state.View == ScreenZoom {
		c.logger.Debug("select ignored in screen zoom", "target", t)
		return
	}
	req := c.nextRequest()

	switch {
	case t.IsScreen():
		c.set(State{View: ScreenZoom})
		c.camera.FocusTarget(t)

	case isContent(t):
		c.set(State{View: Focused})
		c.camera.FocusTarget(t).Then(func() {
			if req != c.request {
				return
			}
			c.openOverlay(State{View: Focused, Overlay: ContentModal, Content: t})
		})

	case isLink(t):
		link, ok := c.links[t]
		if !ok {
			c.logger.Warn("no link configured", "target", t)
			return
		}
		c.set(State{View: Focused})
		c.camera.FocusTarget(t).Then(func() {
			if req != c.request {
				return
			}
			c.openOverlay(State{View: Focused, Overlay: LinkConfirm, Link: link})
		})

	default:
		c.logger.Debug("select ignored", "target", t)
	}
}

// Escape leaves screen zoom. Outside screen zoom it does nothing.
func (c *Controller) Escape() bool {
	if c.state.View != ScreenZoom {
		return false
	}
	c.nextRequest()
	c.set(State{View: Orbiting})
	c.camera.ReturnHome()
	return true
}

// CloseContent closes the content modal.
func (c *Controller) CloseContent() {
	if c.state.Overlay != ContentModal {
		return
	}
	c.closeOverlay()
}

// CancelLink dismisses the link confirmation without opening anything.
func (c *Controller) CancelLink() {
	if c.state.Overlay != LinkConfirm {
		return
	}
	c.closeOverlay()
}

// ConfirmLink opens the confirmed URL and closes the dialog. A failure to
// open the URL is returned but the dialog closes regardless.
func (c *Controller) ConfirmLink() error {
	if c.state.Overlay != LinkConfirm {
		return nil
	}
	link := c.state.Link
	err := c.openURL(link.URL)
	if err != nil {
		c.logger.Error("open link", "url", link.URL, "error", err)
		err = fmt.Errorf("flow: open %s: %w", link.URL, err)
	}
	c.closeOverlay()
	return err
}

// Dismiss closes whichever overlay is open.
func (c *Controller) Dismiss() {
	switch c.state.Overlay {
	case ContentModal:
		c.CloseContent()
	case LinkConfirm:
		c.CancelLink()
	}
}

func (c *Controller) openOverlay(s State) {
	c.hasEverOpenedOverlay = true
	c.set(s)
}

func (c *Controller) closeOverlay() {
	c.nextRequest()
	c.set(State{View: Orbiting})
	if c.hasEverOpenedOverlay {
		c.camera.ReturnHome()
	}
}

func (c *Controller) nextRequest() uint64 {
	c.request++
	return c.request
}

func (c *Controller) set(s State) {
	if s == c.state {
		return
	}
	c.logger.Debug("state", "view", s.View, "overlay", s.Overlay)
	c.state = s
	c.Changed.Invoke(s)
}

func isContent(t engine.Target) bool {
	return t == engine.TargetAbout || t == engine.TargetContact || t == engine.TargetCV
}

func isLink(t engine.Target) bool {
	return t == engine.TargetGitHub || t == engine.TargetLinkedIn
}
