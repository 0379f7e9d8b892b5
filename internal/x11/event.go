package x11

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"xwinpong/internal/display"
)

// translate turns what the connection delivered into a display event. Exactly
// one of ev and xerr is non-nil.
func translate(ev xgb.Event, xerr xgb.Error, a atoms) display.Event {
	if xerr != nil {
		return display.ErrorEvent{
			Sequence: xerr.SequenceId(),
			BadID:    xerr.BadId(),
			Message:  xerr.Error(),
		}
	}

	switch e := ev.(type) {
	case xproto.ClientMessageEvent:
		if e.Format == 32 && e.Type == a.protocols && len(e.Data.Data32) > 0 &&
			xproto.Atom(e.Data.Data32[0]) == a.deleteWindow {
			return display.CloseRequested{Handle: display.Handle(e.Window)}
		}
	case xproto.DestroyNotifyEvent:
		return display.HandleDestroyed{Handle: display.Handle(e.Window)}
	case xproto.KeyPressEvent:
		return display.KeyPressed{Handle: display.Handle(e.Event), Code: display.Keycode(e.Detail)}
	case xproto.MappingNotifyEvent:
		if e.Request == xproto.MappingKeyboard {
			return display.KeymapChanged{First: display.Keycode(e.FirstKeycode), Count: int(e.Count)}
		}
	case xproto.ConfigureNotifyEvent:
		return display.GeometryChanged{
			Handle:           display.Handle(e.Window),
			Width:            int(e.Width),
			Height:           int(e.Height),
			OverrideRedirect: e.OverrideRedirect,
		}
	case xproto.MapNotifyEvent:
		return display.Mapped{Handle: display.Handle(e.Window), OverrideRedirect: e.OverrideRedirect}
	}
	return display.Other{Kind: fmt.Sprintf("%T", ev)}
}
