package input

import "github.com/veandco/go-sdl2/sdl"

// Limiter caps the frame rate and measures frame time, like a game clock
// ticked once per frame.
type Limiter struct {
	frameMS uint64
	last    uint64
	started bool

	now   func() uint64
	sleep func(ms uint32)
}

// NewLimiter returns a limiter for fps frames per second. fps <= 0 disables
// the cap.
func NewLimiter(fps int) *Limiter {
	l := &Limiter{now: sdl.GetTicks64, sleep: sdl.Delay}
	if fps > 0 {
		l.frameMS = uint64(1000 / fps)
	}
	return l
}

// Tick waits until at least one frame period has passed since the previous
// Tick and returns the elapsed time in seconds. The first call returns 0.
func (l *Limiter) Tick() float32 {
	now := l.now()
	if !l.started {
		l.started = true
		l.last = now
		return 0
	}

	elapsed := now - l.last
	if elapsed < l.frameMS {
		l.sleep(uint32(l.frameMS - elapsed))
		now = l.now()
		elapsed = now - l.last
	}
	l.last = now
	return float32(elapsed) / 1000
}
