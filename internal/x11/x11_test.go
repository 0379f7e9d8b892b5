package x11

import (
	"errors"
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"xwinpong/internal/display"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		spec    string
		r, g, b uint16
		wantErr bool
	}{
		{"#f00", 0xf000, 0, 0, false},
		{"#ff8800", 0xff00, 0x8800, 0, false},
		{"#123456789", 0x1230, 0x4560, 0x7890, false},
		{"#ffffeeeedddd", 0xffff, 0xeeee, 0xdddd, false},
		{"#", 0, 0, 0, true},
		{"#ff", 0, 0, 0, true},
		{"#ggg", 0, 0, 0, true},
		{"#1234567890abc", 0, 0, 0, true},
	}
	for _, tt := range tests {
		r, g, b, err := parseHexColor(tt.spec)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v", tt.spec, err)
			continue
		}
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("%s: got %#x %#x %#x", tt.spec, r, g, b)
		}
	}
}

func TestEncodeTitle(t *testing.T) {
	if got := string(encodeTitle("Xwinpong")); got != "Xwinpong" {
		t.Errorf("ascii title = %q", got)
	}
	if got := encodeTitle("café"); string(got) != "caf\xe9" {
		t.Errorf("latin-1 title = %q", got)
	}
	if got := string(encodeTitle("pong ☃")); got != "pong ?" {
		t.Errorf("unsupported rune = %q", got)
	}
}

func TestGrabStatus(t *testing.T) {
	tests := map[byte]display.GrabStatus{
		xproto.GrabStatusSuccess:        display.GrabGranted,
		xproto.GrabStatusAlreadyGrabbed: display.GrabAlreadyHeld,
		xproto.GrabStatusFrozen:         display.GrabFrozen,
		xproto.GrabStatusInvalidTime:    display.GrabUnexpected,
		xproto.GrabStatusNotViewable:    display.GrabUnexpected,
	}
	for in, want := range tests {
		if got := grabStatus(in); got != want {
			t.Errorf("grabStatus(%d) = %v, want %v", in, got, want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want display.ConnErrorKind
	}{
		{errors.New("bad display string: :x"), display.ConnBadDisplay},
		{errors.New("empty display string"), display.ConnBadDisplay},
		{errors.New("dial unix /tmp/.X11-unix/X0: connect: no such file or directory"), display.ConnProtocol},
	}
	for _, tt := range tests {
		got := classify(tt.err)
		if got.Kind != tt.want || !errors.Is(got, tt.err) {
			t.Errorf("classify(%q) = %v", tt.err, got)
		}
	}
}

var testAtoms = atoms{protocols: 300, deleteWindow: 301, windowType: 302, dialog: 303}

type fakeError struct{}

func (fakeError) SequenceId() uint16 { return 42 }
func (fakeError) BadId() uint32      { return 7 }
func (fakeError) Error() string      { return "BadWindow {NiceName: Window, Sequence: 42, BadValue: 7}" }

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   xgb.Event
		want display.Event
	}{
		{
			"delete window",
			xproto.ClientMessageEvent{Format: 32, Window: 9, Type: 300, Data: xproto.ClientMessageDataUnionData32New([]uint32{301, 0, 0, 0, 0})},
			display.CloseRequested{Handle: 9},
		},
		{
			"other client message",
			xproto.ClientMessageEvent{Format: 32, Window: 9, Type: 300, Data: xproto.ClientMessageDataUnionData32New([]uint32{999, 0, 0, 0, 0})},
			display.Other{Kind: "xproto.ClientMessageEvent"},
		},
		{
			"destroy",
			xproto.DestroyNotifyEvent{Event: 9, Window: 9},
			display.HandleDestroyed{Handle: 9},
		},
		{
			"key press",
			xproto.KeyPressEvent{Event: 4, Detail: 25},
			display.KeyPressed{Handle: 4, Code: 25},
		},
		{
			"keyboard mapping",
			xproto.MappingNotifyEvent{Request: xproto.MappingKeyboard, FirstKeycode: 8, Count: 10},
			display.KeymapChanged{First: 8, Count: 10},
		},
		{
			"pointer mapping",
			xproto.MappingNotifyEvent{Request: xproto.MappingPointer},
			display.Other{Kind: "xproto.MappingNotifyEvent"},
		},
		{
			"configure",
			xproto.ConfigureNotifyEvent{Event: 6, Window: 6, Width: 200, Height: 120, OverrideRedirect: true},
			display.GeometryChanged{Handle: 6, Width: 200, Height: 120, OverrideRedirect: true},
		},
		{
			"map",
			xproto.MapNotifyEvent{Event: 6, Window: 6, OverrideRedirect: true},
			display.Mapped{Handle: 6, OverrideRedirect: true},
		},
		{
			"expose",
			xproto.ExposeEvent{Window: 6},
			display.Other{Kind: "xproto.ExposeEvent"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.ev, nil, testAtoms)
			if got != tt.want {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTranslateError(t *testing.T) {
	got := translate(nil, fakeError{}, testAtoms)
	want := display.ErrorEvent{Sequence: 42, BadID: 7, Message: fakeError{}.Error()}
	if got != want {
		t.Fatalf("got %#v", got)
	}
}
