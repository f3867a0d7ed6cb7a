package ui

import "fmt"

const (
	readyHold = 0.8 // seconds the ready message stays up
	fadeTime  = 0.5
)

// Loader tracks the loading screen. It listens to the load events and fades
// out once the scene is ready; a load error keeps it up for good.
type Loader struct {
	Progress int
	Ready    bool
	Err      error

	sinceReady float32
}

func (l *Loader) OnLoadProgress(percent int) {
	l.Progress = max(l.Progress, min(100, max(0, percent)))
}

func (l *Loader) OnSceneReady() {
	l.Progress = 100
	l.Ready = true
}

func (l *Loader) OnLoadError(err error) {
	l.Err = err
}

func (l *Loader) Update(dt float32) {
	if l.Ready && l.Err == nil {
		l.sinceReady += dt
	}
}

// Visible reports whether the loading screen still covers the room.
func (l *Loader) Visible() bool {
	return l.Err != nil || !l.Ready || l.sinceReady < readyHold+fadeTime
}

// Alpha is the loading screen's opacity.
func (l *Loader) Alpha() float32 {
	if l.Err != nil || !l.Ready || l.sinceReady <= readyHold {
		return 1
	}
	return max(0, 1-(l.sinceReady-readyHold)/fadeTime)
}

func (l *Loader) Message() string {
	switch {
	case l.Err != nil:
		return "Could not load the room"
	case l.Ready:
		return "Ready to Explore"
	}
	return "Preparing your experience"
}

func (l *Loader) ProgressText() string {
	return fmt.Sprintf("%d%%", l.Progress)
}

// Hints are the controls shown under the progress bar.
func Hints(mobile bool) []string {
	if mobile {
		return []string{"Touch to navigate"}
	}
	return []string{"Click & Drag", "Scroll to Zoom"}
}
