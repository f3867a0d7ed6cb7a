package ui

import (
	"strings"

	"portfolio3d/internal/config"
	"portfolio3d/internal/engine"
	"portfolio3d/internal/flow"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NavButton is one entry of the navigation bar.
type NavButton struct {
	Target engine.Target
	Label  string
	Bounds rl.Rectangle
}

var navEntries = []struct {
	target engine.Target
	label  string
}{
	{engine.TargetAbout, "About"},
	{engine.TargetCV, "CV"},
	{engine.TargetContact, "Contact"},
	{engine.TargetGitHub, "GitHub"},
	{engine.TargetLinkedIn, "LinkedIn"},
}

const (
	margin     = 16
	navWidth   = 128
	navHeight  = 40
	navSpacing = 8
)

// Layout is where everything sits for one surface size.
type Layout struct {
	Nav    []NavButton
	Modal  rl.Rectangle
	Dialog rl.Rectangle
	Hint   rl.Rectangle
}

// LayoutFor places the navigation as a left column on wide surfaces and as
// a bottom row below breakpoint.
func LayoutFor(width, height, breakpoint int32) Layout {
	w, h := float32(width), float32(height)
	var l Layout

	if width < breakpoint {
		n := float32(len(navEntries))
		bw := (w - 2*margin - (n-1)*navSpacing) / n
		y := h - margin - navHeight
		for i, e := range navEntries {
			x := margin + float32(i)*(bw+navSpacing)
			l.Nav = append(l.Nav, NavButton{e.target, e.label, rl.Rectangle{X: x, Y: y, Width: bw, Height: navHeight}})
		}
	} else {
		for i, e := range navEntries {
			y := margin + float32(i)*(navHeight+navSpacing)
			l.Nav = append(l.Nav, NavButton{e.target, e.label, rl.Rectangle{X: margin, Y: y, Width: navWidth, Height: navHeight}})
		}
	}

	l.Modal = centered(w, h, min(640, w-2*margin), min(440, h-2*margin))
	l.Dialog = centered(w, h, min(380, w-2*margin), 160)
	l.Hint = rl.Rectangle{X: w/2 - 170, Y: h - margin - 36, Width: 340, Height: 36}
	return l
}

func centered(w, h, bw, bh float32) rl.Rectangle {
	return rl.Rectangle{X: (w - bw) / 2, Y: (h - bh) / 2, Width: bw, Height: bh}
}

// Captures reports whether the overlay owns the pointer at point, so the
// room must not see it. Open overlays own the whole surface.
func (l Layout) Captures(point rl.Vector2, s flow.State, p flow.Presentation) bool {
	if s.Overlay != flow.NoOverlay {
		return true
	}
	if !p.ShowNav {
		return false
	}
	for _, b := range l.Nav {
		if rl.CheckCollisionPointRec(point, b.Bounds) {
			return true
		}
	}
	return false
}

// ContentFor returns the modal text for a content target.
func ContentFor(cfg config.ContentConfig, t engine.Target) (config.Content, bool) {
	switch t {
	case engine.TargetAbout:
		return cfg.About, true
	case engine.TargetCV:
		return cfg.CV, true
	case engine.TargetContact:
		return cfg.Contact, true
	}
	return config.Content{}, false
}

// Wrap breaks text into lines no wider than maxWidth. A single word that is
// too wide gets a line of its own.
func Wrap(text string, maxWidth float32, measure func(string) float32) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measure(candidate) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
