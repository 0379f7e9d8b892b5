// Package displaytest provides an in-memory display.Backend that records the
// requests it receives.
package displaytest

import (
	"fmt"

	"xwinpong/internal/display"
	"xwinpong/internal/pong"
)

type Window struct {
	Pos        pong.Vector
	Size       pong.Vector
	Background uint32
	Decorated  bool
	Mapped     bool
	Destroyed  bool
	Title      string
}

type Backend struct {
	ScreenInfo display.Screen

	Windows map[display.Handle]*Window
	// Calls lists every request in the order it was made, e.g. "map 3" or
	// "move 3 10,20".
	Calls []string

	// Events is consumed by Poll and Wait. When it is empty Wait fails as if
	// the connection had been lost.
	Events []display.Event
	// OnWait, when set, is called before Wait looks at Events.
	OnWait func(b *Backend)

	Colors     map[string]uint32
	Grab       display.GrabStatus
	GrabCode   byte
	GrabErr    error
	Keymap     display.KeyboardMapping
	KeymapErr  error
	CreateErr  error
	FlushErr   error
	Dead       *display.ConnError
	Closed     bool
	Polls      int
	Waits      int
	Flushes    int
	nextHandle display.Handle
}

func New(width, height int) *Backend {
	return &Backend{
		ScreenInfo: display.Screen{
			Width:      width,
			Height:     height,
			BlackPixel: 0x000000,
			WhitePixel: 0xffffff,
			MinKeycode: 8,
			MaxKeycode: 255,
		},
		Windows:    map[display.Handle]*Window{},
		Colors:     map[string]uint32{},
		nextHandle: 1,
	}
}

func (b *Backend) record(format string, args ...any) {
	b.Calls = append(b.Calls, fmt.Sprintf(format, args...))
}

// Reset forgets the calls recorded so far.
func (b *Backend) Reset() {
	b.Calls = nil
}

func (b *Backend) Screen() display.Screen {
	return b.ScreenInfo
}

func (b *Backend) CreateHandle(pos, size pong.Vector, background uint32, decorated bool) (display.Handle, error) {
	if b.CreateErr != nil {
		return 0, b.CreateErr
	}
	h := b.nextHandle
	b.nextHandle++
	b.Windows[h] = &Window{Pos: pos, Size: size, Background: background, Decorated: decorated}
	b.record("create %d", h)
	return h, nil
}

func (b *Backend) SetHints(h display.Handle, title string) error {
	b.window(h).Title = title
	b.record("hints %d %s", h, title)
	return nil
}

func (b *Backend) Map(h display.Handle) {
	b.window(h).Mapped = true
	b.record("map %d", h)
}

func (b *Backend) Unmap(h display.Handle) {
	b.window(h).Mapped = false
	b.record("unmap %d", h)
}

func (b *Backend) Destroy(h display.Handle) {
	w := b.window(h)
	w.Mapped = false
	w.Destroyed = true
	b.record("destroy %d", h)
}

func (b *Backend) Move(h display.Handle, pos pong.Vector) {
	b.window(h).Pos = pos
	b.record("move %d %d,%d", h, pos.X, pos.Y)
}

func (b *Backend) Resize(h display.Handle, size pong.Vector) {
	b.window(h).Size = size
	b.record("resize %d %dx%d", h, size.X, size.Y)
}

func (b *Backend) Poll() (display.Event, bool) {
	b.Polls++
	if len(b.Events) == 0 {
		return nil, false
	}
	ev := b.Events[0]
	b.Events = b.Events[1:]
	return ev, true
}

func (b *Backend) Wait() (display.Event, error) {
	b.Waits++
	if b.OnWait != nil {
		b.OnWait(b)
	}
	if len(b.Events) == 0 {
		b.Dead = &display.ConnError{Kind: display.ConnProtocol, Err: display.ErrClosed}
		return nil, display.ErrClosed
	}
	ev := b.Events[0]
	b.Events = b.Events[1:]
	return ev, nil
}

func (b *Backend) Flush() error {
	b.Flushes++
	b.record("flush")
	return b.FlushErr
}

func (b *Backend) Healthy() error {
	if b.Dead != nil {
		return b.Dead
	}
	return nil
}

func (b *Backend) ResolveColor(name string) (uint32, error) {
	pixel, ok := b.Colors[name]
	if !ok {
		return 0, fmt.Errorf("BadName: color %q not found", name)
	}
	return pixel, nil
}

func (b *Backend) GrabKeyboard(h display.Handle) (display.GrabStatus, byte, error) {
	b.record("grab %d", h)
	return b.Grab, b.GrabCode, b.GrabErr
}

func (b *Backend) KeyboardMapping(first display.Keycode, count int) (display.KeyboardMapping, error) {
	if b.KeymapErr != nil {
		return display.KeyboardMapping{}, b.KeymapErr
	}
	b.record("keymap %d %d", first, count)
	return b.Keymap, nil
}

func (b *Backend) Close() error {
	b.Closed = true
	b.record("close")
	return nil
}

// Visible returns the handles that are currently mapped.
func (b *Backend) Visible() []display.Handle {
	var hs []display.Handle
	for h := display.Handle(1); h < b.nextHandle; h++ {
		if b.Windows[h].Mapped {
			hs = append(hs, h)
		}
	}
	return hs
}

func (b *Backend) window(h display.Handle) *Window {
	w, ok := b.Windows[h]
	if !ok {
		panic(fmt.Sprintf("displaytest: unknown handle %d", h))
	}
	return w
}
