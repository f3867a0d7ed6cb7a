package ui

import (
	"fmt"

	"portfolio3d/internal/config"
	"portfolio3d/internal/engine"
	"portfolio3d/internal/flow"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hashicorp/go-hclog"
)

type ActionKind int

const (
	ActionSelect ActionKind = iota + 1
	ActionCloseContent
	ActionCancelLink
	ActionConfirmLink
)

// Action is something the visitor asked for through the overlay.
type Action struct {
	Kind   ActionKind
	Target engine.Target
}

// ScreenHint is shown while zoomed onto a screen.
const ScreenHint = "Press any key or click to exit"

// Overlay is the immediate-mode UI host. Draw returns what was clicked; the
// caller routes it through the flow controller.
type Overlay struct {
	Loader Loader

	cfg     *config.Config
	logger  hclog.Logger
	mobile  bool
	actions []Action
}

func New(cfg *config.Config, mobile bool, logger hclog.Logger) *Overlay {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Overlay{cfg: cfg, mobile: mobile, logger: logger}
}

// Init styles raygui. It needs the window.
func (o *Overlay) Init() {
	initStyle()
}

func (o *Overlay) Layout(width, height int32) Layout {
	return LayoutFor(width, height, o.cfg.Camera.MobileBreakpoint)
}

// Draw renders the overlay for state s and returns the actions clicked this
// frame.
func (o *Overlay) Draw(s flow.State, p flow.Presentation, width, height int32) []Action {
	o.actions = o.actions[:0]
	l := o.Layout(width, height)

	if o.Loader.Visible() {
		o.drawLoading(width, height)
		return nil
	}

	if p.ShowNav {
		if s.Overlay != flow.NoOverlay {
			gui.Lock()
		}
		for _, b := range l.Nav {
			if gui.Button(b.Bounds, b.Label) {
				o.emit(Action{Kind: ActionSelect, Target: b.Target})
			}
		}
		gui.Unlock()
	}

	switch s.Overlay {
	case flow.ContentModal:
		rl.DrawRectangle(0, 0, width, height, colorBackdrop)
		o.drawContent(l.Modal, s.Content)
	case flow.LinkConfirm:
		rl.DrawRectangle(0, 0, width, height, colorBackdrop)
		o.drawLinkConfirm(l.Dialog, s.Link)
	}

	if p.ShowScreenHint {
		tw := measureText(ScreenHint, textSize)
		rl.DrawRectangleRounded(l.Hint, 0.5, 8, colorPanel)
		drawText(ScreenHint, int32(l.Hint.X+(l.Hint.Width-tw)/2), int32(l.Hint.Y+9), textSize, colorText)
	}
	return o.actions
}

func (o *Overlay) emit(a Action) {
	o.logger.Trace("ui action", "kind", a.Kind, "target", a.Target)
	o.actions = append(o.actions, a)
}

func (o *Overlay) drawContent(bounds rl.Rectangle, t engine.Target) {
	content, ok := ContentFor(o.cfg.Content, t)
	if !ok {
		return
	}
	if gui.WindowBox(bounds, content.Title) {
		o.emit(Action{Kind: ActionCloseContent})
	}

	const pad = 20
	maxWidth := bounds.Width - 2*pad
	y := bounds.Y + 24 + pad
	measure := func(s string) float32 { return measureText(s, textSize) }
	for _, para := range content.Body {
		for _, line := range Wrap(para, maxWidth, measure) {
			drawText(line, int32(bounds.X+pad), int32(y), textSize, colorText)
			y += textSize + 6
		}
		y += 10
	}

	closeBtn := rl.Rectangle{X: bounds.X + bounds.Width - pad - 100, Y: bounds.Y + bounds.Height - pad - 36, Width: 100, Height: 36}
	if gui.Button(closeBtn, "Close") {
		o.emit(Action{Kind: ActionCloseContent})
	}
}

func (o *Overlay) drawLinkConfirm(bounds rl.Rectangle, link flow.Link) {
	message := fmt.Sprintf("Open %s in your browser?", link.SiteName)
	switch gui.MessageBox(bounds, "External link", message, "Open "+link.SiteName+";Cancel") {
	case 1:
		o.emit(Action{Kind: ActionConfirmLink})
	case 0, 2:
		o.emit(Action{Kind: ActionCancelLink})
	}
}

func (o *Overlay) drawLoading(width, height int32) {
	alpha := o.Loader.Alpha()
	rl.DrawRectangle(0, 0, width, height, withAlpha(colorLoadingBg, alpha))

	cx := float32(width) / 2
	cy := float32(height) / 2

	msg := o.Loader.Message()
	tw := measureText(msg, titleSize)
	drawText(msg, int32(cx-tw/2), int32(cy-60), titleSize, withAlpha(colorText, alpha))

	if o.Loader.Err != nil {
		detail := o.Loader.Err.Error()
		lines := Wrap(detail, min(600, float32(width)-2*margin), func(s string) float32 { return measureText(s, textSize) })
		y := cy - 10
		for _, line := range lines {
			lw := measureText(line, textSize)
			drawText(line, int32(cx-lw/2), int32(y), textSize, colorError)
			y += textSize + 4
		}
		return
	}

	bar := rl.Rectangle{X: cx - 150, Y: cy - 10, Width: 300, Height: 14}
	rl.DrawRectangleRec(bar, withAlpha(colorElement, alpha))
	fill := bar
	fill.Width = bar.Width * float32(o.Loader.Progress) / 100
	rl.DrawRectangleRec(fill, withAlpha(colorAccent, alpha))

	pct := o.Loader.ProgressText()
	pw := measureText(pct, textSize)
	drawText(pct, int32(cx-pw/2), int32(cy+14), textSize, withAlpha(colorText, alpha))

	y := cy + 50
	for _, hint := range Hints(o.mobile) {
		hw := measureText(hint, textSize)
		drawText(hint, int32(cx-hw/2), int32(y), textSize, withAlpha(colorTextMuted, alpha))
		y += textSize + 6
	}
}
