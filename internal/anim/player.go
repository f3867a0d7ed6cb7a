package anim

// Player owns the running tweens. Starting a tween on a key that is already
// animating replaces the old tween, whose completion resolves with
// ErrSuperseded. Player is not safe for concurrent use; it lives on the
// render loop.
type Player struct {
	tweens []*Tween
}

func NewPlayer() *Player {
	return &Player{}
}

// Play starts tw and returns its completion.
func (p *Player) Play(tw *Tween) *Completion {
	if tw.Key != "" {
		p.kill(tw.Key, ErrSuperseded)
	}
	tw.done = NewCompletion()
	p.tweens = append(p.tweens, tw)
	return tw.done
}

// Update advances every tween by dt seconds. Completions of tweens that end
// during this call resolve after all tweens have advanced, so continuations
// may start new tweens.
func (p *Player) Update(dt float32) {
	if len(p.tweens) == 0 {
		return
	}
	var ended []*Tween
	kept := p.tweens[:0]
	for _, tw := range p.tweens {
		if tw.advance(dt) {
			ended = append(ended, tw)
			continue
		}
		kept = append(kept, tw)
	}
	clear(p.tweens[len(kept):])
	p.tweens = kept

	for _, tw := range ended {
		tw.done.Resolve(nil)
	}
}

// Kill stops the tween on key where it is, resolving it with ErrStopped.
func (p *Player) Kill(key string) {
	p.kill(key, ErrStopped)
}

// Stop kills every tween.
func (p *Player) Stop() {
	tweens := p.tweens
	p.tweens = nil
	for _, tw := range tweens {
		tw.finished = true
		tw.done.Resolve(ErrStopped)
	}
}

func (p *Player) IsPlaying(key string) bool {
	for _, tw := range p.tweens {
		if tw.Key == key {
			return true
		}
	}
	return false
}

func (p *Player) Len() int {
	return len(p.tweens)
}

func (p *Player) kill(key string, err error) {
	for i, tw := range p.tweens {
		if tw.Key != key {
			continue
		}
		p.tweens = append(p.tweens[:i], p.tweens[i+1:]...)
		tw.finished = true
		tw.done.Resolve(err)
		return
	}
}
