package mutf8

import (
	"errors"
	"testing"
)

func TestDecodeASCII(t *testing.T) {
	got, err := Decode([]byte("java/lang/Object"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "java/lang/Object" {
		t.Errorf("Decode: got %q", got)
	}
}

func TestDecodeNullEncoding(t *testing.T) {
	// U+0000 is encoded as C0 80, never as a raw null byte.
	got, err := Decode([]byte{'a', 0xC0, 0x80, 'b'})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "a\x00b" {
		t.Errorf("Decode: got %q", got)
	}

	if _, err := Decode([]byte{'a', 0x00}); !errors.Is(err, ErrMalformed) {
		t.Errorf("raw null byte: expected ErrMalformed, got %v", err)
	}
}

func TestDecodeTwoAndThreeByte(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"two-byte", []byte{0xC3, 0xA9}, "é"},
		{"three-byte", []byte{0xE4, 0xB8, 0xAD}, "中"},
		{"mixed", []byte{'x', 0xC3, 0xA9, 'y'}, "xéy"},
	}
	for _, tt := range tests {
		got, err := Decode(tt.in)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDecodeSurrogatePair(t *testing.T) {
	// U+1F600 as a CESU-8 style surrogate pair (D83D DE00).
	in := []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}
	got, err := Decode(in)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "\U0001F600" {
		t.Errorf("Decode: got %q", got)
	}
}

func TestDecodeTruncated(t *testing.T) {
	tests := [][]byte{
		{0xC3},             // truncated 2-byte
		{0xE4, 0xB8},       // truncated 3-byte
		{0xC3, 0x41},       // bad continuation
		{0xF0, 0x9F, 0x98}, // 4-byte UTF-8 is not modified UTF-8
	}
	for _, in := range tests {
		if _, err := Decode(in); !errors.Is(err, ErrMalformed) {
			t.Errorf("%v: expected ErrMalformed, got %v", in, err)
		}
	}
}

func TestDecodeUnpairedSurrogate(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"lone high surrogate", []byte{0xED, 0xA0, 0x80}},
		{"high surrogate then ascii", []byte{0xED, 0xA0, 0xBD, 'x'}},
		{"lone low surrogate", []byte{0xED, 0xB8, 0x80}},
		{"two high surrogates", []byte{0xED, 0xA0, 0xBD, 0xED, 0xA0, 0xBD}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("Decode = %q, err %v, want ErrMalformed", got, err)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"hello",
		"a\x00b",
		"中文é",
		"\U0001F600",
	}
	for _, s := range tests {
		got, err := Decode(Encode(s))
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}
