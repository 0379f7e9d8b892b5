package game

import (
	"go.uber.org/zap"

	"xwinpong/internal/display"
	"xwinpong/internal/input"
	"xwinpong/internal/pong"
)

// drain handles every pending event. While paused it blocks for events
// until the game is unpaused or ends.
func (g *Game) drain() {
	for g.reason == NotEnded {
		ev, ok := g.next()
		if !ok {
			return
		}
		g.dispatch(ev)
	}
}

func (g *Game) next() (display.Event, bool) {
	if !g.paused {
		return g.backend.Poll()
	}
	ev, err := g.backend.Wait()
	if err != nil {
		return nil, false
	}
	return ev, true
}

func (g *Game) dispatch(ev display.Event) {
	switch ev := ev.(type) {
	case display.ErrorEvent:
		g.log.Warn("display error",
			zap.Uint16("sequence", ev.Sequence),
			zap.Uint32("bad_id", ev.BadID),
			zap.String("error", ev.Message),
		)
	case display.CloseRequested:
		g.log.Debug("window close requested", zap.Uint32("handle", uint32(ev.Handle)))
		g.end(UserClosed, nil)
	case display.HandleDestroyed:
		g.log.Debug("window destroyed", zap.Uint32("handle", uint32(ev.Handle)))
		g.end(UserClosed, nil)
	case display.KeyPressed:
		g.keyPressed(ev.Code)
	case display.KeymapChanged:
		if err := g.keysyms.Refresh(g.backend, ev.First, ev.Count); err != nil {
			g.log.Warn("failed to refresh keyboard mapping", zap.Error(err))
		}
	case display.GeometryChanged:
		g.geometryChanged(ev)
	case display.Mapped:
		g.mapped(ev)
	default:
	}
}

func (g *Game) keyPressed(code display.Keycode) {
	action := g.bindings.Lookup(g.keysyms.Lookup(code))

	if g.paused {
		switch action {
		case input.Pause:
			g.paused = false
			g.log.Debug("resumed")
		case input.ToggleBorders:
			g.toggleBorders()
		}
		return
	}

	switch action {
	case input.LeftUp:
		g.state.Push(pong.LeftPaddle, -1)
	case input.LeftDown:
		g.state.Push(pong.LeftPaddle, 1)
	case input.RightUp:
		g.state.Push(pong.RightPaddle, -1)
	case input.RightDown:
		g.state.Push(pong.RightPaddle, 1)
	case input.Pause:
		g.paused = true
		g.log.Debug("paused")
	case input.ToggleBorders:
		g.toggleBorders()
	}
}

func (g *Game) toggleBorders() {
	for _, w := range g.windows {
		w.Toggle()
	}
	if err := g.backend.Flush(); err != nil {
		g.log.Warn("failed to flush toggled windows", zap.Error(err))
	}
	g.log.Debug("borders toggled", zap.Bool("decorated", g.ball.Decorated()))
}

func (g *Game) geometryChanged(ev display.GeometryChanged) {
	for _, w := range g.windows {
		if w.Visible() != ev.Handle {
			continue
		}
		g.state.Absorb(w.Entity.Role, pong.Vector{X: ev.Width, Y: ev.Height})
		return
	}
}

// mapped grabs the keyboard when the ball's undecorated window appears, since
// no window manager will give it focus.
func (g *Game) mapped(ev display.Mapped) {
	if !ev.OverrideRedirect || !g.ball.IsUndecorated(ev.Handle) {
		return
	}

	status, code, err := g.backend.GrabKeyboard(ev.Handle)
	switch {
	case err != nil:
		g.log.Warn("failed to grab the keyboard", zap.Error(err))
	case status == display.GrabGranted:
		g.log.Debug("keyboard grabbed")
	case status == display.GrabAlreadyHeld, status == display.GrabFrozen:
		g.log.Warn("keyboard already grabbed by another client, you're on your own now")
	default:
		g.log.Warn("unexpected keyboard grab status", zap.Uint8("status", code))
	}
}
