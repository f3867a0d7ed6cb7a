package anim

import "errors"

var (
	// ErrSuperseded resolves a completion whose tween was replaced by a newer
	// tween on the same key.
	ErrSuperseded = errors.New("anim: superseded")
	// ErrStopped resolves a completion whose tween was stopped before the end.
	ErrStopped = errors.New("anim: stopped")
)

// Completion is the awaitable end of an animation. It is resolved on the
// goroutine that drives Player.Update, so continuations registered with Then
// run on that goroutine too. Done can be selected on from elsewhere.
type Completion struct {
	done     chan struct{}
	err      error
	resolved bool
	thens    []func()
	always   []func(error)
}

func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Resolved returns a completion that already finished successfully.
func Resolved() *Completion {
	c := NewCompletion()
	c.Resolve(nil)
	return c
}

func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Err is nil until the completion resolves and nil after a successful end.
func (c *Completion) Err() error {
	return c.err
}

func (c *Completion) IsResolved() bool {
	return c.resolved
}

// Then registers fn to run after a successful end. It runs immediately when
// the completion already succeeded and never runs when it failed.
func (c *Completion) Then(fn func()) *Completion {
	if c.resolved {
		if c.err == nil {
			fn()
		}
		return c
	}
	c.thens = append(c.thens, fn)
	return c
}

// Finally registers fn to run on any outcome.
func (c *Completion) Finally(fn func(err error)) *Completion {
	if c.resolved {
		fn(c.err)
		return c
	}
	c.always = append(c.always, fn)
	return c
}

// Resolve settles the completion. Only the first call has any effect.
func (c *Completion) Resolve(err error) {
	if c.resolved {
		return
	}
	c.resolved = true
	c.err = err
	close(c.done)

	thens, always := c.thens, c.always
	c.thens, c.always = nil, nil
	if err == nil {
		for _, fn := range thens {
			fn()
		}
	}
	for _, fn := range always {
		fn(err)
	}
}

// All resolves once every input resolved: successfully when all of them
// succeeded, otherwise with the first error observed.
func All(cs ...*Completion) *Completion {
	out := NewCompletion()
	pending := len(cs)
	if pending == 0 {
		out.Resolve(nil)
		return out
	}
	var firstErr error
	for _, c := range cs {
		c.Finally(func(err error) {
			if err != nil && firstErr == nil {
				firstErr = err
			}
			pending--
			if pending == 0 {
				out.Resolve(firstErr)
			}
		})
	}
	return out
}
