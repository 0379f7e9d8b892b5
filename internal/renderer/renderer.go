package renderer

import (
	"time"

	"xwinpong/internal/display"
	"xwinpong/internal/window"
)

// Render sends the position of every window and flushes them as one batch so
// the server sees a single frame.
func Render(b display.Backend, windows ...*window.Window) error {
	for _, w := range windows {
		w.PushPosition()
	}
	return b.Flush()
}

// Pacer keeps the loop at a fixed frame rate.
type Pacer struct {
	Frame time.Duration

	now   func() time.Time
	sleep func(time.Duration)
	start time.Time
	count int
}

func NewPacer(fps int) *Pacer {
	return &Pacer{
		Frame: time.Second / time.Duration(fps),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Begin marks the start of a frame.
func (p *Pacer) Begin() {
	p.start = p.now()
	p.count++
}

// Wait sleeps for what is left of the frame and returns the time the frame's
// work took.
func (p *Pacer) Wait() time.Duration {
	spent := p.now().Sub(p.start)
	if spare := p.Frame - spent; spare > 0 {
		p.sleep(spare)
	}
	return spent
}

func (p *Pacer) Frames() int {
	return p.count
}
