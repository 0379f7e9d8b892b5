package input

import (
	"errors"
	"strings"
	"testing"

	"xwinpong/internal/display"
	"xwinpong/internal/display/displaytest"
)

func TestDefaultBindings(t *testing.T) {
	b := DefaultBindings()

	tests := []struct {
		sym  display.Keysym
		want Action
	}{
		{'w', LeftUp},
		{'W', LeftUp},
		{'s', LeftDown},
		{'S', LeftDown},
		{0xff52, RightUp},
		{0xff54, RightDown},
		{'p', Pause},
		{'P', Pause},
		{'b', ToggleBorders},
		{'B', ToggleBorders},
		{'x', Unknown},
		{0xff51, Unknown},
	}
	for _, tt := range tests {
		if got := b.Lookup(tt.sym); got != tt.want {
			t.Errorf("Lookup(%#x) = %v, want %v", tt.sym, got, tt.want)
		}
	}
}

func TestLoadBindings(t *testing.T) {
	doc := `
left_up: [KP_8, E]
left_down: [KP_2]
pause: [space, Escape]
`
	b, err := LoadBindings(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if b.Lookup(0xffb8) != LeftUp || b.Lookup('e') != LeftUp || b.Lookup('E') != LeftUp {
		t.Error("left_up not bound")
	}
	if b.Lookup(' ') != Pause || b.Lookup(0xff1b) != Pause {
		t.Error("pause not bound")
	}
	if b.Lookup('w') != Unknown {
		t.Error("custom keymap kept a default binding")
	}
}

func TestLoadBindingsErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown action", "jump: [j]", "unknown action"},
		{"unknown key", "pause: [Hyper_Q]", "unknown keysym"},
		{"conflict", "pause: [p]\ntoggle_borders: [P]", "bound to both"},
		{"not a map", "- p", "decode keymap"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBindings(strings.NewReader(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestParseKeysym(t *testing.T) {
	tests := []struct {
		name    string
		want    display.Keysym
		wantErr bool
	}{
		{"a", 'a', false},
		{"Q", 'q', false},
		{"7", '7', false},
		{"é", 0xe9, false},
		{"É", 0xe9, false},
		{"Down", 0xff54, false},
		{"", 0, true},
		{"ab", 0, true},
		{"€", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKeysym(tt.name)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseKeysym(%q) = (%#x, %v), want %#x", tt.name, got, err, tt.want)
		}
	}
}

func TestKeysymsRefresh(t *testing.T) {
	b := displaytest.New(1000, 800)
	b.Keymap = display.KeyboardMapping{
		First:      24,
		PerKeycode: 2,
		Keysyms:    []display.Keysym{'q', 'Q', 'w', 'W', 'e', 'E'},
	}

	k := NewKeysyms()
	if err := k.Refresh(b, 24, 3); err != nil {
		t.Fatal(err)
	}
	if k.Lookup(25) != 'w' || k.Lookup(26) != 'e' {
		t.Fatalf("lookup 25=%#x 26=%#x", k.Lookup(25), k.Lookup(26))
	}
	if k.Lookup(30) != 0 {
		t.Fatal("unmapped keycode resolved")
	}

	// Keycode 25 is remapped.
	b.Keymap = display.KeyboardMapping{First: 25, PerKeycode: 1, Keysyms: []display.Keysym{'z'}}
	if err := k.Refresh(b, 25, 1); err != nil {
		t.Fatal(err)
	}
	if k.Lookup(25) != 'z' || k.Lookup(24) != 'q' {
		t.Fatalf("after refresh 24=%#x 25=%#x", k.Lookup(24), k.Lookup(25))
	}
}

func TestKeysymsRefreshError(t *testing.T) {
	b := displaytest.New(1000, 800)
	b.KeymapErr = errors.New("no mapping")

	if err := NewKeysyms().Refresh(b, 8, 248); err == nil {
		t.Fatal("expected error")
	}
}
