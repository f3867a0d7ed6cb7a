package anim

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func step(p *Player, dt float32, n int) {
	for i := 0; i < n; i++ {
		p.Update(dt)
	}
}

func TestTweenEndsExactlyOnTarget(t *testing.T) {
	p := NewPlayer()
	var pos rl.Vector3
	to := rl.Vector3{X: 1.1, Y: 2.3, Z: -0.7}
	done := p.Play(Vec3("camera.position", rl.Vector3{}, to, 1.2, CubicOut, func(v rl.Vector3) { pos = v }))

	step(p, 1.0/60, 71)
	if done.IsResolved() {
		t.Fatal("Tween should still be running before its duration")
	}
	step(p, 1.0/60, 3)

	if !done.IsResolved() || done.Err() != nil {
		t.Fatalf("Expected successful completion, got %v", done.Err())
	}
	if pos != to {
		t.Errorf("Expected exact end value %v, got %v", to, pos)
	}
	if p.Len() != 0 {
		t.Errorf("Finished tweens should be removed, %d left", p.Len())
	}
}

func TestTweenIsMonotonicWithCubicOut(t *testing.T) {
	p := NewPlayer()
	var values []float32
	p.Play(Float("x", 0, 1, 1, CubicOut, func(v float32) { values = append(values, v) }))
	step(p, 0.1, 11)

	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Fatalf("Value went backwards at %d: %v", i, values)
		}
	}
	// Ease-out covers most of the distance in the first half.
	if values[4] < 0.8 {
		t.Errorf("Expected ease-out to be past 0.8 at t=0.5, got %f", values[4])
	}
}

func TestPlaySupersedesSameKey(t *testing.T) {
	p := NewPlayer()
	var x float32
	first := p.Play(Float("camera.target", 0, 10, 1, Linear, func(v float32) { x = v }))
	ranFirst := false
	first.Then(func() { ranFirst = true })

	step(p, 0.5, 1)
	second := p.Play(Float("camera.target", x, 0, 1, Linear, func(v float32) { x = v }))

	if !errors.Is(first.Err(), ErrSuperseded) {
		t.Errorf("Expected ErrSuperseded, got %v", first.Err())
	}
	if p.Len() != 1 {
		t.Errorf("Expected one running tween, got %d", p.Len())
	}

	step(p, 0.5, 3)
	if ranFirst {
		t.Error("Superseded continuation should never run")
	}
	if second.Err() != nil || x != 0 {
		t.Errorf("Second tween should finish at 0, got %f (%v)", x, second.Err())
	}
}

func TestDifferentKeysRunConcurrently(t *testing.T) {
	p := NewPlayer()
	var a, b float32
	ca := p.Play(Float("a", 0, 1, 1, Linear, func(v float32) { a = v }))
	cb := p.Play(Float("b", 0, 2, 1, Linear, func(v float32) { b = v }))

	both := All(ca, cb)
	step(p, 0.25, 5)

	if !both.IsResolved() || a != 1 || b != 2 {
		t.Errorf("Expected both tweens finished, got a=%f b=%f", a, b)
	}
}

func TestYoyoForever(t *testing.T) {
	p := NewPlayer()
	var y float32
	done := p.Play(Float("bounce", 1, 1.08, 0.8, SineInOut, func(v float32) { y = v }).WithYoyo(Forever))

	step(p, 0.8, 1)
	if y < 1.079 {
		t.Errorf("Expected top of the bounce after one cycle, got %f", y)
	}
	step(p, 0.8, 1)
	if y > 1.001 {
		t.Errorf("Expected back at rest after two cycles, got %f", y)
	}
	step(p, 0.1, 200)
	if done.IsResolved() {
		t.Fatal("Forever tween should never complete on its own")
	}
	for i := 0; i < 50; i++ {
		p.Update(0.05)
		if y < 0.9999 || y > 1.0801 {
			t.Fatalf("Bounce left its range: %f", y)
		}
	}

	p.Kill("bounce")
	if !errors.Is(done.Err(), ErrStopped) {
		t.Errorf("Kill should resolve with ErrStopped, got %v", done.Err())
	}
}

func TestYoyoFinite(t *testing.T) {
	p := NewPlayer()
	var x float32
	done := p.Play(Float("pulse", 0, 1, 0.5, Linear, func(v float32) { x = v }).WithYoyo(1))

	step(p, 0.1, 12)
	if !done.IsResolved() {
		t.Fatal("Two cycles should be finished")
	}
	if x != 0 {
		t.Errorf("One yoyo repeat should end at the start value, got %f", x)
	}
}

func TestContinuationCanPlaySameKey(t *testing.T) {
	p := NewPlayer()
	var x float32
	p.Play(Float("k", 0, 1, 0.1, Linear, func(v float32) { x = v })).Then(func() {
		p.Play(Float("k", 1, 5, 0.1, Linear, func(v float32) { x = v }))
	})

	step(p, 0.1, 1)
	if !p.IsPlaying("k") {
		t.Fatal("Continuation should have started a new tween")
	}
	step(p, 0.1, 1)
	if x != 5 {
		t.Errorf("Expected chained tween to end at 5, got %f", x)
	}
}

func TestStopResolvesEverything(t *testing.T) {
	p := NewPlayer()
	a := p.Play(Float("a", 0, 1, 1, Linear, func(float32) {}))
	b := p.Play(Float("b", 0, 1, 1, Linear, func(float32) {}))

	p.Stop()

	if !errors.Is(a.Err(), ErrStopped) || !errors.Is(b.Err(), ErrStopped) {
		t.Errorf("Stop should resolve all with ErrStopped, got %v / %v", a.Err(), b.Err())
	}
	if p.Len() != 0 {
		t.Error("Stop should clear the player")
	}
	p.Update(1)
}

func TestZeroDurationCompletesOnNextUpdate(t *testing.T) {
	p := NewPlayer()
	var x float32
	done := p.Play(Float("z", 0, 3, 0, Linear, func(v float32) { x = v }))
	p.Update(0)
	if !done.IsResolved() || x != 3 {
		t.Errorf("Zero duration tween should jump to the end, got %f", x)
	}
}
