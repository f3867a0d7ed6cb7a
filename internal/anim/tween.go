package anim

import (
	"github.com/gen2brain/raylib-go/easings"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// EaseFunc has the Penner signature used by the easings package: elapsed
// time, start value, change and duration.
type EaseFunc func(t, b, c, d float32) float32

var (
	Linear    EaseFunc = easings.LinearNone
	CubicOut  EaseFunc = easings.CubicOut
	SineInOut EaseFunc = easings.SineInOut
)

// Forever repeats a tween until it is killed.
const Forever = -1

// Tween drives one value from a start to an end over Duration seconds.
type Tween struct {
	Key      string
	Duration float32
	Ease     EaseFunc
	// Yoyo plays every odd cycle backwards.
	Yoyo bool
	// Repeat is the number of extra cycles, or Forever.
	Repeat int

	apply    func(f float32)
	finish   func(reverse bool)
	elapsed  float32
	cycle    int
	reverse  bool
	finished bool
	done     *Completion
}

// Vec3 tweens a vector, writing each frame's value through set. The last
// cycle ends on exactly `to` (or `from` when it ran backwards).
func Vec3(key string, from, to rl.Vector3, duration float32, ease EaseFunc, set func(rl.Vector3)) *Tween {
	return &Tween{
		Key:      key,
		Duration: duration,
		Ease:     ease,
		apply: func(f float32) {
			set(rl.Vector3Lerp(from, to, f))
		},
		finish: func(reverse bool) {
			if reverse {
				set(from)
				return
			}
			set(to)
		},
	}
}

// Float tweens a scalar.
func Float(key string, from, to float32, duration float32, ease EaseFunc, set func(float32)) *Tween {
	return &Tween{
		Key:      key,
		Duration: duration,
		Ease:     ease,
		apply: func(f float32) {
			set(from + (to-from)*f)
		},
		finish: func(reverse bool) {
			if reverse {
				set(from)
				return
			}
			set(to)
		},
	}
}

func (tw *Tween) WithYoyo(repeat int) *Tween {
	tw.Yoyo = true
	tw.Repeat = repeat
	return tw
}

// Completion is nil until the tween is handed to a Player.
func (tw *Tween) Completion() *Completion {
	return tw.done
}

func (tw *Tween) Finished() bool {
	return tw.finished
}

// advance moves the tween by dt and reports whether it reached its end.
func (tw *Tween) advance(dt float32) bool {
	if tw.finished {
		return true
	}
	if tw.Duration <= 0 {
		tw.finish(tw.endsReversed())
		tw.finished = true
		return true
	}

	tw.elapsed += dt
	for tw.elapsed >= tw.Duration {
		if tw.Repeat != Forever && tw.cycle >= tw.Repeat {
			tw.finish(tw.reverse)
			tw.finished = true
			return true
		}
		tw.elapsed -= tw.Duration
		tw.cycle++
		if tw.Yoyo {
			tw.reverse = !tw.reverse
		}
	}

	t := tw.elapsed
	if tw.reverse {
		t = tw.Duration - t
	}
	ease := tw.Ease
	if ease == nil {
		ease = Linear
	}
	tw.apply(ease(t, 0, 1, tw.Duration))
	return false
}

func (tw *Tween) endsReversed() bool {
	return tw.Yoyo && tw.Repeat != Forever && tw.Repeat%2 == 1
}
