package x11

import (
	"fmt"
	"strconv"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// encodeTitle converts s to ISO 8859-1, the encoding of STRING properties.
// Runes outside Latin-1 become '?'.
func encodeTitle(s string) []byte {
	out, err := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).String(s)
	if err != nil {
		return []byte(s)
	}
	return []byte(out)
}

// parseHexColor parses "#rgb", "#rrggbb", "#rrrgggbbb" and "#rrrrggggbbbb"
// into 16 bit channels. Short components fill the high bits.
func parseHexColor(spec string) (r, g, b uint16, err error) {
	digits := spec[1:]
	if len(digits) == 0 || len(digits)%3 != 0 || len(digits) > 12 {
		return 0, 0, 0, fmt.Errorf("invalid color spec %q", spec)
	}
	n := len(digits) / 3
	var ch [3]uint16
	for i := range ch {
		v, perr := strconv.ParseUint(digits[i*n:(i+1)*n], 16, 16)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("invalid color spec %q", spec)
		}
		ch[i] = uint16(v << (16 - 4*n))
	}
	return ch[0], ch[1], ch[2], nil
}
