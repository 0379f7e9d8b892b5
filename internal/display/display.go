// Package display describes the window system the game talks to. The game
// never draws: every entity is a top-level window that is moved, resized,
// mapped and unmapped through a Backend.
package display

import (
	"errors"
	"fmt"

	"xwinpong/internal/pong"
)

// Handle identifies one window owned by the backend.
type Handle uint32

type Keycode uint8

type Keysym uint32

type Screen struct {
	Width      int
	Height     int
	BlackPixel uint32
	WhitePixel uint32

	// Keycodes the server can report, inclusive.
	MinKeycode Keycode
	MaxKeycode Keycode
}

func (s Screen) Size() pong.Vector {
	return pong.Vector{X: s.Width, Y: s.Height}
}

type GrabStatus int

const (
	GrabGranted GrabStatus = iota
	GrabAlreadyHeld
	GrabFrozen
	GrabUnexpected
)

// KeyboardMapping is a block of the server's keycode to keysym table starting
// at First. Each keycode owns PerKeycode consecutive entries in Keysyms.
type KeyboardMapping struct {
	First      Keycode
	PerKeycode int
	Keysyms    []Keysym
}

type Backend interface {
	Screen() Screen

	// CreateHandle creates an unmapped window. Undecorated windows bypass the
	// window manager entirely.
	CreateHandle(pos, size pong.Vector, background uint32, decorated bool) (Handle, error)
	SetHints(h Handle, title string) error
	Map(h Handle)
	Unmap(h Handle)
	Destroy(h Handle)
	Move(h Handle, pos pong.Vector)
	Resize(h Handle, size pong.Vector)

	// Poll returns the next queued event without blocking.
	Poll() (Event, bool)
	// Wait blocks until an event arrives or the connection is gone.
	Wait() (Event, error)
	Flush() error
	// Healthy reports a *ConnError once the connection has been invalidated.
	Healthy() error

	ResolveColor(name string) (uint32, error)
	GrabKeyboard(h Handle) (GrabStatus, byte, error)
	KeyboardMapping(first Keycode, count int) (KeyboardMapping, error)

	Close() error
}

var ErrClosed = errors.New("display connection closed")

type ConnErrorKind int

const (
	ConnUnknown ConnErrorKind = iota
	ConnProtocol
	ConnUnsupportedExtension
	ConnOutOfMemory
	ConnRequestTooLarge
	ConnBadDisplay
	ConnInvalidScreen
)

func (k ConnErrorKind) String() string {
	switch k {
	case ConnProtocol:
		return "connection error"
	case ConnUnsupportedExtension:
		return "extension not supported"
	case ConnOutOfMemory:
		return "insufficient memory"
	case ConnRequestTooLarge:
		return "too long request"
	case ConnBadDisplay:
		return "bad display string"
	case ConnInvalidScreen:
		return "invalid screen"
	}
	return "unknown error"
}

type ConnError struct {
	Kind ConnErrorKind
	Err  error
}

func (e *ConnError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("display connection has been invalidated: %s", e.Kind)
	}
	return fmt.Sprintf("display connection has been invalidated: %s: %v", e.Kind, e.Err)
}

func (e *ConnError) Unwrap() error {
	return e.Err
}
