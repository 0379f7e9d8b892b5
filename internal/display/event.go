package display

// Event is one of the types declared in this file. The set is closed: only
// this package can add variants.
type Event interface {
	event()
}

// ErrorEvent is a protocol error reported for an earlier request.
type ErrorEvent struct {
	Sequence uint16
	BadID    uint32
	Message  string
}

// CloseRequested is sent when the user asks the window manager to close one
// of the windows.
type CloseRequested struct {
	Handle Handle
}

type HandleDestroyed struct {
	Handle Handle
}

type KeyPressed struct {
	Handle Handle
	Code   Keycode
}

// KeymapChanged reports that the keycodes in [First, First+Count) now map to
// different keysyms.
type KeymapChanged struct {
	First Keycode
	Count int
}

// GeometryChanged is reported whenever a window's geometry changes, whether
// the game or the window manager caused it.
type GeometryChanged struct {
	Handle           Handle
	Width            int
	Height           int
	OverrideRedirect bool
}

type Mapped struct {
	Handle           Handle
	OverrideRedirect bool
}

// Other is any event the game does not react to.
type Other struct {
	Kind string
}

func (ErrorEvent) event()      {}
func (CloseRequested) event()  {}
func (HandleDestroyed) event() {}
func (KeyPressed) event()      {}
func (KeymapChanged) event()   {}
func (GeometryChanged) event() {}
func (Mapped) event()          {}
func (Other) event()           {}
