package input

import (
	"fmt"
	"strings"

	"xwinpong/internal/display"
)

type Action int

const (
	Unknown Action = iota
	LeftUp
	LeftDown
	RightUp
	RightDown
	Pause
	ToggleBorders
)

var actionNames = map[string]Action{
	"left_up":        LeftUp,
	"left_down":      LeftDown,
	"right_up":       RightUp,
	"right_down":     RightDown,
	"pause":          Pause,
	"toggle_borders": ToggleBorders,
}

func (a Action) String() string {
	for name, action := range actionNames {
		if action == a {
			return name
		}
	}
	return "unknown"
}

func ParseAction(name string) (Action, error) {
	a, ok := actionNames[strings.ToLower(name)]
	if !ok {
		return Unknown, fmt.Errorf("unknown action %q", name)
	}
	return a, nil
}

// Keysyms for keys that are not a single Latin-1 character.
var namedKeysyms = map[string]display.Keysym{
	"space":     0x0020,
	"BackSpace": 0xff08,
	"Tab":       0xff09,
	"Return":    0xff0d,
	"Escape":    0xff1b,
	"Home":      0xff50,
	"Left":      0xff51,
	"Up":        0xff52,
	"Right":     0xff53,
	"Down":      0xff54,
	"Page_Up":   0xff55,
	"Page_Down": 0xff56,
	"End":       0xff57,
	"Insert":    0xff63,
	"Delete":    0xffff,
	"KP_Home":   0xff95,
	"KP_Left":   0xff96,
	"KP_Up":     0xff97,
	"KP_Right":  0xff98,
	"KP_Down":   0xff99,
	"KP_2":      0xffb2,
	"KP_4":      0xffb4,
	"KP_6":      0xffb6,
	"KP_8":      0xffb8,
}

// ParseKeysym turns a keysym name such as "w", "Up" or "KP_8" into its value.
// Single characters in the Latin-1 range map to themselves.
func ParseKeysym(name string) (display.Keysym, error) {
	if sym, ok := namedKeysyms[name]; ok {
		return sym, nil
	}
	r := []rune(name)
	if len(r) == 1 && r[0] > 0x20 && r[0] <= 0xff && (r[0] < 0x7f || r[0] > 0xa0) {
		return Fold(display.Keysym(r[0])), nil
	}
	return 0, fmt.Errorf("unknown keysym %q", name)
}

// Fold maps upper case Latin-1 letter keysyms to lower case so bindings do
// not depend on shift or caps lock.
func Fold(sym display.Keysym) display.Keysym {
	if sym >= 'A' && sym <= 'Z' {
		return sym + 32
	}
	if sym >= 0xc0 && sym <= 0xde && sym != 0xd7 {
		return sym + 32
	}
	return sym
}
