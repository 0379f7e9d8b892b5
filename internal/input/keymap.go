package input

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"xwinpong/internal/display"
)

//go:embed default_keymap.yaml
var defaultKeymap []byte

// Bindings maps folded keysyms to game actions.
type Bindings map[display.Keysym]Action

func DefaultBindings() Bindings {
	b, err := LoadBindings(bytes.NewReader(defaultKeymap))
	if err != nil {
		panic(fmt.Sprintf("embedded keymap: %v", err))
	}
	return b
}

// LoadBindings reads a YAML document mapping action names to lists of keysym
// names.
func LoadBindings(r io.Reader) (Bindings, error) {
	var raw map[string][]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode keymap: %w", err)
	}

	b := Bindings{}
	for name, keys := range raw {
		action, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			sym, err := ParseKeysym(key)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			if prev, ok := b[sym]; ok && prev != action {
				return nil, fmt.Errorf("key %q bound to both %s and %s", key, prev, action)
			}
			b[sym] = action
		}
	}
	return b, nil
}

// LoadBindingsFile reads bindings from path, or returns the defaults when path
// is empty.
func LoadBindingsFile(path string) (Bindings, error) {
	if path == "" {
		return DefaultBindings(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keymap: %w", err)
	}
	defer f.Close()
	return LoadBindings(f)
}

func (b Bindings) Lookup(sym display.Keysym) Action {
	return b[Fold(sym)]
}

// Keysyms caches the server's keyboard mapping. Only the first keysym of each
// keycode is used.
type Keysyms struct {
	syms map[display.Keycode]display.Keysym
}

func NewKeysyms() *Keysyms {
	return &Keysyms{syms: map[display.Keycode]display.Keysym{}}
}

// Refresh reloads the keycodes in [first, first+count) from the backend.
func (k *Keysyms) Refresh(b display.Backend, first display.Keycode, count int) error {
	m, err := b.KeyboardMapping(first, count)
	if err != nil {
		return err
	}
	k.Apply(m)
	return nil
}

func (k *Keysyms) Apply(m display.KeyboardMapping) {
	if m.PerKeycode <= 0 {
		return
	}
	for i := 0; i*m.PerKeycode < len(m.Keysyms); i++ {
		code := int(m.First) + i
		if code > 0xff {
			break
		}
		k.syms[display.Keycode(code)] = m.Keysyms[i*m.PerKeycode]
	}
}

func (k *Keysyms) Lookup(code display.Keycode) display.Keysym {
	return k.syms[code]
}
