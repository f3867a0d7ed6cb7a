package flow

type Cursor int

const (
	// CursorAuto leaves the cursor to hover feedback.
	CursorAuto Cursor = iota
	CursorZoomOut
)

// Presentation is what the UI layer applies for a state: it replaces the
// cursor and scroll side effects scattered around a page.
type Presentation struct {
	Cursor Cursor
	// SuppressClicks stops clicks resolving against the room.
	SuppressClicks bool
	// LockInput keeps wheel and drag away from the orbit while an overlay
	// is open.
	LockInput      bool
	ShowScreenHint bool
	ShowNav        bool
}

func Present(s State) Presentation {
	p := Presentation{ShowNav: true}
	if s.View == ScreenZoom {
		p.Cursor = CursorZoomOut
		p.SuppressClicks = true
		p.ShowScreenHint = true
		p.ShowNav = false
	}
	if s.Overlay != NoOverlay {
		p.SuppressClicks = true
		p.LockInput = true
	}
	return p
}
