// Package window keeps an entity on screen as one of two interchangeable
// windows: one the window manager decorates and one it never sees.
package window

import (
	"fmt"

	"xwinpong/internal/display"
	"xwinpong/internal/pong"
)

// Window owns both handles of one entity. Only visible is ever mapped.
type Window struct {
	Entity *pong.Entity

	backend display.Backend
	visible display.Handle
	hidden  display.Handle

	decorated   display.Handle
	undecorated display.Handle
}

// New creates both windows at the entity's position and size. The decorated
// one is visible first when borders is true.
func New(b display.Backend, e *pong.Entity, color uint32, borders bool) (*Window, error) {
	decorated, err := b.CreateHandle(e.Pos, e.Size, color, true)
	if err != nil {
		return nil, fmt.Errorf("create decorated %s window: %w", e.Role, err)
	}
	undecorated, err := b.CreateHandle(e.Pos, e.Size, color, false)
	if err != nil {
		b.Destroy(decorated)
		return nil, fmt.Errorf("create undecorated %s window: %w", e.Role, err)
	}

	w := &Window{
		Entity:      e,
		backend:     b,
		decorated:   decorated,
		undecorated: undecorated,
	}
	if borders {
		w.visible, w.hidden = decorated, undecorated
	} else {
		w.visible, w.hidden = undecorated, decorated
	}
	return w, nil
}

// Setup sets the window manager hints on both windows so a toggle does not
// change how the window manager treats the entity.
func (w *Window) Setup(title string) error {
	if err := w.backend.SetHints(w.visible, title); err != nil {
		return err
	}
	return w.backend.SetHints(w.hidden, title)
}

func (w *Window) Show() {
	w.backend.Map(w.visible)
}

func (w *Window) Visible() display.Handle {
	return w.visible
}

func (w *Window) Hidden() display.Handle {
	return w.hidden
}

func (w *Window) Decorated() bool {
	return w.visible == w.decorated
}

// IsUndecorated reports whether h is this window's undecorated handle.
func (w *Window) IsUndecorated(h display.Handle) bool {
	return h == w.undecorated
}

func (w *Window) PushPosition() {
	w.backend.Move(w.visible, w.Entity.Pos)
}

func (w *Window) PushSize() {
	w.backend.Resize(w.visible, w.Entity.Size)
}

// Toggle swaps the decorated and undecorated windows. The new window is moved
// and resized before it is mapped so it never shows up in a stale place.
func (w *Window) Toggle() {
	w.backend.Unmap(w.visible)
	w.visible, w.hidden = w.hidden, w.visible

	w.PushPosition()
	w.PushSize()
	w.backend.Map(w.visible)
}

func (w *Window) Destroy() {
	w.backend.Destroy(w.visible)
	w.backend.Destroy(w.hidden)
}
