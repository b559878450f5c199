package classfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

type classWriter struct {
	bytes.Buffer
}

func (w *classWriter) u8(v uint8)  { w.WriteByte(v) }
func (w *classWriter) u16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.Write(b[:])
}
func (w *classWriter) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.Write(b[:])
}
func (w *classWriter) utf8(s string) {
	w.u8(uint8(TagUtf8))
	w.u16(uint16(len(s)))
	w.WriteString(s)
}

// helloClass assembles a minimal class Hello extends Object with one
// static method main:()V whose body is a lone return, plus a Long
// constant so the two-slot pool quirk is exercised end to end.
func helloClass() []byte {
	var w classWriter
	w.u32(0xCAFEBABE)
	w.u16(0)  // minor
	w.u16(52) // major

	w.u16(12) // constant_pool_count (slots 1-11)
	w.utf8("Hello")            // 1
	w.u8(uint8(TagClass))      // 2
	w.u16(1)
	w.utf8("java/lang/Object") // 3
	w.u8(uint8(TagClass))      // 4
	w.u16(3)
	w.utf8("main") // 5
	w.utf8("()V")  // 6
	w.utf8("Code") // 7
	w.u8(uint8(TagLong)) // 8 (and phantom 9)
	w.u32(0)
	w.u32(77)
	w.utf8("after-long") // 10, must land on this index
	w.u8(uint8(TagString))
	w.u16(10) // 11

	w.u16(0x0021) // access flags
	w.u16(2)      // this Hello
	w.u16(4)      // super Object
	w.u16(0)      // interfaces
	w.u16(0)      // fields

	w.u16(1) // methods
	w.u16(0x0009)
	w.u16(5) // main
	w.u16(6) // ()V
	w.u16(1) // one attribute
	w.u16(7) // Code
	w.u32(13)
	w.u16(0)            // max_stack
	w.u16(1)            // max_locals
	w.u32(1)            // code_length
	w.u8(OpReturn)      // return
	w.u16(0)            // exception handlers
	w.u16(0)            // code attributes

	w.u16(0) // class attributes
	return w.Bytes()
}

func TestParseMinimalClass(t *testing.T) {
	cf, err := Parse(helloClass())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cf.Major != 52 || cf.Minor != 0 {
		t.Errorf("version = %d.%d, want 52.0", cf.Major, cf.Minor)
	}
	if cf.ThisClass.Name.Value != "Hello" {
		t.Errorf("this class = %q, want Hello", cf.ThisClass.Name.Value)
	}
	if cf.SuperClass.Name.Value != "java/lang/Object" {
		t.Errorf("super class = %q", cf.SuperClass.Name.Value)
	}
	if len(cf.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(cf.Methods))
	}

	m := cf.Methods[0]
	if m.Name.Value != "main" || m.Descriptor.Value != "()V" {
		t.Errorf("method = %q:%q", m.Name.Value, m.Descriptor.Value)
	}
	if len(m.Attributes) != 1 {
		t.Fatalf("got %d method attributes, want 1", len(m.Attributes))
	}
	code, ok := m.Attributes[0].Attr.(CodeAttr)
	if !ok {
		t.Fatalf("method attr = %T, want CodeAttr", m.Attributes[0].Attr)
	}
	if len(code.Instructions) != 1 || code.Instructions[0].Opcode != OpReturn {
		t.Errorf("instructions = %+v", code.Instructions)
	}

	// The Long at slot 8 occupies 8 and 9; the Utf8 written after it
	// must resolve at index 10 and the String at 11.
	u, err := cf.Pool.Utf8At(10)
	if err != nil {
		t.Fatalf("Utf8At(10) error = %v", err)
	}
	if u.Value != "after-long" {
		t.Errorf("Utf8At(10) = %q, want after-long", u.Value)
	}
	l, err := cf.Pool.EntryAt(8)
	if err != nil {
		t.Fatalf("EntryAt(8) error = %v", err)
	}
	if got := l.(LongEntry).Value; got != 77 {
		t.Errorf("long = %d, want 77", got)
	}
}

func TestParseBadMagic(t *testing.T) {
	data := helloClass()
	data[0] = 0x00
	_, err := Parse(data)
	if !errors.Is(err, ErrNotClassFile) {
		t.Fatalf("Parse() error = %v, want ErrNotClassFile", err)
	}
}

func TestParseTruncated(t *testing.T) {
	data := helloClass()
	for _, cut := range []int{0, 3, 6, 9, 20} {
		_, err := Parse(data[:cut])
		if !errors.Is(err, ErrTruncated) && !errors.Is(err, ErrNotClassFile) {
			t.Errorf("Parse(%d bytes) error = %v, want typed error", cut, err)
		}
	}
}

func TestParseZeroPoolCount(t *testing.T) {
	var w classWriter
	w.u32(0xCAFEBABE)
	w.u16(0)
	w.u16(52)
	w.u16(0)
	_, err := Parse(w.Bytes())
	if !errors.Is(err, ErrMalformedPool) {
		t.Fatalf("Parse() error = %v, want ErrMalformedPool", err)
	}
}

// A Long in the final declared slot would spill its phantom slot past
// constant_pool_count-1; the raw read must reject it.
func TestParseTwoSlotEntryAtPoolEnd(t *testing.T) {
	var w classWriter
	w.u32(0xCAFEBABE)
	w.u16(0)
	w.u16(52)
	w.u16(2) // one declared slot
	w.u8(uint8(TagLong))
	w.u32(0)
	w.u32(1)
	_, err := Parse(w.Bytes())
	if !errors.Is(err, ErrMalformedPool) {
		t.Fatalf("Parse() error = %v, want ErrMalformedPool", err)
	}
}

func TestParseUnknownPoolTag(t *testing.T) {
	var w classWriter
	w.u32(0xCAFEBABE)
	w.u16(0)
	w.u16(52)
	w.u16(2)
	w.u8(19) // Module tag, outside the supported set
	w.u16(1)
	_, err := Parse(w.Bytes())
	if !errors.Is(err, ErrMalformedPool) {
		t.Fatalf("Parse() error = %v, want ErrMalformedPool", err)
	}
}
