// Package mutf8 decodes the modified UTF-8 encoding used by class
// files. It differs from standard UTF-8 in two ways: U+0000 is encoded
// as the two-byte sequence 0xC0 0x80, and supplementary code points are
// encoded as a surrogate pair of two three-byte sequences instead of a
// single four-byte sequence.
package mutf8

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
)

// ErrMalformed is returned when the input is not valid modified UTF-8.
var ErrMalformed = errors.New("mutf8: malformed input")

// Decode converts modified UTF-8 bytes to a Go string.
func Decode(data []byte) (string, error) {
	var b strings.Builder
	b.Grow(len(data))

	// Decode to UTF-16 code units first, then combine surrogate pairs.
	var units []uint16
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == 0x00:
			return "", fmt.Errorf("%w: embedded null byte at %d", ErrMalformed, i)
		case c < 0x80:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(data) {
				return "", fmt.Errorf("%w: truncated 2-byte sequence at %d", ErrMalformed, i)
			}
			c2 := data[i+1]
			if c2&0xC0 != 0x80 {
				return "", fmt.Errorf("%w: bad continuation byte at %d", ErrMalformed, i+1)
			}
			units = append(units, uint16(c&0x1F)<<6|uint16(c2&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(data) {
				return "", fmt.Errorf("%w: truncated 3-byte sequence at %d", ErrMalformed, i)
			}
			c2, c3 := data[i+1], data[i+2]
			if c2&0xC0 != 0x80 || c3&0xC0 != 0x80 {
				return "", fmt.Errorf("%w: bad continuation byte at %d", ErrMalformed, i)
			}
			units = append(units, uint16(c&0x0F)<<12|uint16(c2&0x3F)<<6|uint16(c3&0x3F))
			i += 3
		default:
			// 4-byte standard UTF-8 never appears in modified UTF-8.
			return "", fmt.Errorf("%w: invalid leading byte 0x%02x at %d", ErrMalformed, c, i)
		}
	}

	// utf16.Decode substitutes U+FFFD for unpaired surrogates; reject
	// them here so malformed input surfaces as an error instead.
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] >= 0xE000 {
				return "", fmt.Errorf("%w: unpaired high surrogate 0x%04x", ErrMalformed, u)
			}
			i++
		case u >= 0xDC00 && u < 0xE000:
			return "", fmt.Errorf("%w: unpaired low surrogate 0x%04x", ErrMalformed, u)
		}
	}

	for _, r := range utf16.Decode(units) {
		b.WriteRune(r)
	}
	return b.String(), nil
}

// Encode converts a Go string to modified UTF-8 bytes.
func Encode(s string) []byte {
	var buf []byte
	for _, u := range utf16.Encode([]rune(s)) {
		switch {
		case u == 0x0000:
			buf = append(buf, 0xC0, 0x80)
		case u < 0x80:
			buf = append(buf, byte(u))
		case u < 0x800:
			buf = append(buf, 0xC0|byte(u>>6), 0x80|byte(u&0x3F))
		default:
			buf = append(buf, 0xE0|byte(u>>12), 0x80|byte(u>>6&0x3F), 0x80|byte(u&0x3F))
		}
	}
	return buf
}
