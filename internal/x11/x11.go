// Package x11 implements display.Backend on top of the X11 protocol.
package x11

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"go.uber.org/zap"

	"xwinpong/internal/display"
	"xwinpong/internal/pong"
)

const wmClass = "xwinpong\x00Xwinpong\x00"

// atoms interned once at connect time.
type atoms struct {
	protocols    xproto.Atom
	deleteWindow xproto.Atom
	windowType   xproto.Atom
	dialog       xproto.Atom
}

type Backend struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	setup  *xproto.SetupInfo
	atoms  atoms
	log    *zap.Logger

	mu   sync.Mutex
	dead *display.ConnError

	// reqMu lets Close run while the game goroutine is blocked in Wait.
	reqMu  sync.RWMutex
	closed bool

	// events is fed by pump and closed once the connection is gone.
	events chan delivery
	done   chan struct{}
}

type delivery struct {
	ev   xgb.Event
	xerr xgb.Error
}

// Connect opens the display named by name, or $DISPLAY when name is empty.
func Connect(name string, log *zap.Logger) (*Backend, error) {
	xgb.Logger = zap.NewStdLog(log.Named("xgb"))

	conn, err := xgb.NewConnDisplay(name)
	if err != nil {
		return nil, classify(err)
	}

	setup := xproto.Setup(conn)
	if conn.DefaultScreen < 0 || conn.DefaultScreen >= len(setup.Roots) {
		conn.Close()
		return nil, &display.ConnError{
			Kind: display.ConnInvalidScreen,
			Err:  fmt.Errorf("screen %d of %d", conn.DefaultScreen, len(setup.Roots)),
		}
	}

	b := &Backend{
		conn:   conn,
		setup:  setup,
		screen: setup.DefaultScreen(conn),
		log:    log,
	}
	if err := b.internAtoms(); err != nil {
		conn.Close()
		return nil, err
	}
	b.start()

	log.Debug("connected to display",
		zap.String("display", name),
		zap.Int("screen", conn.DefaultScreen),
		zap.Uint16("width", b.screen.WidthInPixels),
		zap.Uint16("height", b.screen.HeightInPixels),
	)
	return b, nil
}

func classify(err error) *display.ConnError {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "display string"):
		return &display.ConnError{Kind: display.ConnBadDisplay, Err: err}
	case strings.Contains(msg, "screen"):
		return &display.ConnError{Kind: display.ConnInvalidScreen, Err: err}
	}
	return &display.ConnError{Kind: display.ConnProtocol, Err: err}
}

func (b *Backend) internAtoms() error {
	names := []string{"WM_PROTOCOLS", "WM_DELETE_WINDOW", "_NET_WM_WINDOW_TYPE", "_NET_WM_WINDOW_TYPE_DIALOG"}
	cookies := make([]xproto.InternAtomCookie, len(names))
	for i, name := range names {
		cookies[i] = xproto.InternAtom(b.conn, true, uint16(len(name)), name)
	}

	got := make([]xproto.Atom, len(names))
	for i, c := range cookies {
		reply, err := c.Reply()
		if err != nil {
			return b.fail(fmt.Errorf("intern %s: %w", names[i], err))
		}
		if reply.Atom == xproto.AtomNone {
			b.log.Debug("atom not known to the server", zap.String("atom", names[i]))
		}
		got[i] = reply.Atom
	}
	b.atoms = atoms{protocols: got[0], deleteWindow: got[1], windowType: got[2], dialog: got[3]}
	return nil
}

// fail records errors that are not protocol errors as a lost connection.
func (b *Backend) fail(err error) error {
	var xerr xgb.Error
	if errors.As(err, &xerr) {
		return err
	}
	b.mu.Lock()
	if b.dead == nil {
		b.dead = &display.ConnError{Kind: display.ConnProtocol, Err: err}
	}
	b.mu.Unlock()
	return err
}

func (b *Backend) Screen() display.Screen {
	return display.Screen{
		Width:      int(b.screen.WidthInPixels),
		Height:     int(b.screen.HeightInPixels),
		BlackPixel: b.screen.BlackPixel,
		WhitePixel: b.screen.WhitePixel,
		MinKeycode: display.Keycode(b.setup.MinKeycode),
		MaxKeycode: display.Keycode(b.setup.MaxKeycode),
	}
}

func (b *Backend) CreateHandle(pos, size pong.Vector, background uint32, decorated bool) (display.Handle, error) {
	b.reqMu.RLock()
	defer b.reqMu.RUnlock()
	if b.closed {
		return 0, display.ErrClosed
	}
	wid, err := xproto.NewWindowId(b.conn)
	if err != nil {
		return 0, b.fail(fmt.Errorf("allocate window id: %w", err))
	}

	overrideRedirect := uint32(0)
	if !decorated {
		overrideRedirect = 1
	}
	mask := uint32(xproto.CwBackPixel | xproto.CwOverrideRedirect | xproto.CwEventMask)
	values := []uint32{
		background,
		overrideRedirect,
		xproto.EventMaskKeyPress | xproto.EventMaskStructureNotify,
	}

	err = xproto.CreateWindowChecked(b.conn, xproto.WindowClassCopyFromParent, wid, b.screen.Root,
		int16(pos.X), int16(pos.Y), uint16(size.X), uint16(size.Y), 0,
		xproto.WindowClassInputOutput, b.screen.RootVisual, mask, values).Check()
	if err != nil {
		return 0, b.fail(fmt.Errorf("create window: %w", err))
	}
	return display.Handle(wid), nil
}

// SetHints names the window and asks the window manager to treat it as a
// closable dialog. Hints whose atoms the server does not know are skipped.
func (b *Backend) SetHints(h display.Handle, title string) error {
	b.reqMu.RLock()
	defer b.reqMu.RUnlock()
	if b.closed {
		return display.ErrClosed
	}

	w := xproto.Window(h)
	name := encodeTitle(title)

	xproto.ChangeProperty(b.conn, xproto.PropModeReplace, w, xproto.AtomWmName, xproto.AtomString,
		8, uint32(len(name)), name)
	if b.atoms.protocols != xproto.AtomNone && b.atoms.deleteWindow != xproto.AtomNone {
		xproto.ChangeProperty(b.conn, xproto.PropModeReplace, w, b.atoms.protocols, xproto.AtomAtom,
			32, 1, atomData(b.atoms.deleteWindow))
	}
	if b.atoms.windowType != xproto.AtomNone && b.atoms.dialog != xproto.AtomNone {
		xproto.ChangeProperty(b.conn, xproto.PropModeReplace, w, b.atoms.windowType, xproto.AtomAtom,
			32, 1, atomData(b.atoms.dialog))
	}
	err := xproto.ChangePropertyChecked(b.conn, xproto.PropModeReplace, w, xproto.AtomWmClass, xproto.AtomString,
		8, uint32(len(wmClass)), []byte(wmClass)).Check()
	if err != nil {
		return b.fail(fmt.Errorf("set hints: %w", err))
	}
	return nil
}

func atomData(atoms ...xproto.Atom) []byte {
	buf := make([]byte, 4*len(atoms))
	for i, a := range atoms {
		xgb.Put32(buf[4*i:], uint32(a))
	}
	return buf
}

func (b *Backend) Map(h display.Handle) {
	b.send(func() { xproto.MapWindow(b.conn, xproto.Window(h)) })
}

func (b *Backend) Unmap(h display.Handle) {
	b.send(func() { xproto.UnmapWindow(b.conn, xproto.Window(h)) })
}

func (b *Backend) Destroy(h display.Handle) {
	b.send(func() { xproto.DestroyWindow(b.conn, xproto.Window(h)) })
}

func (b *Backend) Move(h display.Handle, pos pong.Vector) {
	b.send(func() {
		xproto.ConfigureWindow(b.conn, xproto.Window(h), xproto.ConfigWindowX|xproto.ConfigWindowY,
			[]uint32{uint32(int32(pos.X)), uint32(int32(pos.Y))})
	})
}

func (b *Backend) Resize(h display.Handle, size pong.Vector) {
	b.send(func() {
		xproto.ConfigureWindow(b.conn, xproto.Window(h), xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{uint32(size.X), uint32(size.Y)})
	})
}

// send issues a request unless the connection has been closed.
func (b *Backend) send(request func()) {
	b.reqMu.RLock()
	defer b.reqMu.RUnlock()
	if !b.closed {
		request()
	}
}

// start runs the goroutine that owns the connection's event queue. xgb
// reports a closed connection only from a blocking read, so a dead server is
// noticed even while the game only polls.
func (b *Backend) start() {
	b.events = make(chan delivery, 64)
	b.done = make(chan struct{})
	go b.pump()
}

func (b *Backend) pump() {
	defer close(b.events)
	for {
		ev, xerr := b.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			b.fail(display.ErrClosed)
			return
		}
		select {
		case b.events <- delivery{ev: ev, xerr: xerr}:
		case <-b.done:
			return
		}
	}
}

func (b *Backend) Poll() (display.Event, bool) {
	select {
	case d, ok := <-b.events:
		if !ok {
			b.fail(display.ErrClosed)
			return nil, false
		}
		return translate(d.ev, d.xerr, b.atoms), true
	default:
		return nil, false
	}
}

func (b *Backend) Wait() (display.Event, error) {
	d, ok := <-b.events
	if !ok {
		b.fail(display.ErrClosed)
		return nil, display.ErrClosed
	}
	return translate(d.ev, d.xerr, b.atoms), nil
}

// Flush is a no-op: requests are written as soon as they are made.
func (b *Backend) Flush() error {
	return b.Healthy()
}

func (b *Backend) Healthy() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dead != nil {
		return b.dead
	}
	return nil
}

// ResolveColor accepts a color name from the server's database or an #rgb
// style hex spec.
func (b *Backend) ResolveColor(name string) (uint32, error) {
	b.reqMu.RLock()
	defer b.reqMu.RUnlock()
	if b.closed {
		return 0, display.ErrClosed
	}
	if strings.HasPrefix(name, "#") {
		r, g, bl, err := parseHexColor(name)
		if err != nil {
			return 0, err
		}
		reply, err := xproto.AllocColor(b.conn, b.screen.DefaultColormap, r, g, bl).Reply()
		if err != nil {
			return 0, b.fail(fmt.Errorf("allocate color %s: %w", name, err))
		}
		return reply.Pixel, nil
	}

	reply, err := xproto.AllocNamedColor(b.conn, b.screen.DefaultColormap, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, b.fail(fmt.Errorf("allocate color %q: %w", name, err))
	}
	return reply.Pixel, nil
}

func (b *Backend) GrabKeyboard(h display.Handle) (display.GrabStatus, byte, error) {
	b.reqMu.RLock()
	defer b.reqMu.RUnlock()
	if b.closed {
		return display.GrabUnexpected, 0, display.ErrClosed
	}
	reply, err := xproto.GrabKeyboard(b.conn, true, xproto.Window(h), xproto.TimeCurrentTime,
		xproto.GrabModeAsync, xproto.GrabModeAsync).Reply()
	if err != nil {
		return display.GrabUnexpected, 0, b.fail(fmt.Errorf("grab keyboard: %w", err))
	}
	return grabStatus(reply.Status), reply.Status, nil
}

func grabStatus(status byte) display.GrabStatus {
	switch status {
	case xproto.GrabStatusSuccess:
		return display.GrabGranted
	case xproto.GrabStatusAlreadyGrabbed:
		return display.GrabAlreadyHeld
	case xproto.GrabStatusFrozen:
		return display.GrabFrozen
	}
	return display.GrabUnexpected
}

func (b *Backend) KeyboardMapping(first display.Keycode, count int) (display.KeyboardMapping, error) {
	b.reqMu.RLock()
	defer b.reqMu.RUnlock()
	if b.closed {
		return display.KeyboardMapping{}, display.ErrClosed
	}
	if count > 0xff {
		count = 0xff
	}
	reply, err := xproto.GetKeyboardMapping(b.conn, xproto.Keycode(first), byte(count)).Reply()
	if err != nil {
		return display.KeyboardMapping{}, b.fail(fmt.Errorf("get keyboard mapping: %w", err))
	}
	m := display.KeyboardMapping{
		First:      first,
		PerKeycode: int(reply.KeysymsPerKeycode),
		Keysyms:    make([]display.Keysym, len(reply.Keysyms)),
	}
	for i, sym := range reply.Keysyms {
		m.Keysyms[i] = display.Keysym(sym)
	}
	return m, nil
}

// Close closes the connection. It is safe to call more than once and from
// another goroutine; a pending Wait returns display.ErrClosed.
func (b *Backend) Close() error {
	b.reqMu.Lock()
	defer b.reqMu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.done != nil {
		close(b.done)
	}
	b.conn.Close()
	return nil
}
