package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestReaderReadByte(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(data)

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	_, err := r.ReadByte()
	if !errors.Is(err, ErrUnexpectedEnd) {
		t.Errorf("expected ErrUnexpectedEnd, got %v", err)
	}
}

func TestReaderReadBytes(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	got, err := r.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("ReadBytes: got %v, want [1 2 3]", got)
	}
	if r.Remaining() != 2 {
		t.Errorf("Remaining: got %d, want 2", r.Remaining())
	}

	_, err = r.ReadBytes(10)
	if !errors.Is(err, ErrUnexpectedEnd) {
		t.Errorf("expected ErrUnexpectedEnd reading past end, got %v", err)
	}
}

func TestReaderBigEndian(t *testing.T) {
	r := NewReader([]byte{
		0x12, 0x34,
		0xCA, 0xFE, 0xBA, 0xBE,
		0xFF, 0xFE, // -2 as int16
		0x40, 0x49, 0x0F, 0xDB, // float32 pi-ish
	})

	u16, err := r.ReadU16()
	if err != nil || u16 != 0x1234 {
		t.Fatalf("ReadU16: got 0x%04x, %v", u16, err)
	}
	u32, err := r.ReadU32()
	if err != nil || u32 != 0xCAFEBABE {
		t.Fatalf("ReadU32: got 0x%08x, %v", u32, err)
	}
	i16, err := r.ReadI16()
	if err != nil || i16 != -2 {
		t.Fatalf("ReadI16: got %d, %v", i16, err)
	}
	f32, err := r.ReadF32()
	if err != nil || f32 < 3.14 || f32 > 3.15 {
		t.Fatalf("ReadF32: got %v, %v", f32, err)
	}
}

func TestReaderReadU64(t *testing.T) {
	r := NewReader([]byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02})
	v, err := r.ReadU64()
	if err != nil {
		t.Fatalf("ReadU64: %v", err)
	}
	if v != 0x0000000100000002 {
		t.Errorf("ReadU64: got 0x%016x", v)
	}

	r = NewReader([]byte{0x01, 0x02, 0x03})
	if _, err := r.ReadU64(); !errors.Is(err, ErrUnexpectedEnd) {
		t.Errorf("expected ErrUnexpectedEnd, got %v", err)
	}
}

func TestReaderSkip(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04})
	if err := r.Skip(2); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	b, err := r.ReadByte()
	if err != nil || b != 0x03 {
		t.Fatalf("ReadByte after Skip: got 0x%02x, %v", b, err)
	}
	if err := r.Skip(5); !errors.Is(err, ErrUnexpectedEnd) {
		t.Errorf("expected ErrUnexpectedEnd, got %v", err)
	}
}
