package classfile

import (
	"errors"
	"testing"
)

func stackMapPool(t *testing.T) *ConstantPool {
	t.Helper()
	pool, err := ResolvePool([]RawConstant{
		RawUtf8("StackMapTable"),    // 1
		RawUtf8("java/lang/Object"), // 2
		RawClass(2),                 // 3
	})
	if err != nil {
		t.Fatalf("ResolvePool() error = %v", err)
	}
	return pool
}

func decodeFrames(t *testing.T, pool *ConstantPool, body []byte) []StackMapFrame {
	t.Helper()
	attr, err := DecodeAttribute(pool, RawAttribute{NameIndex: 1, Info: body})
	if err != nil {
		t.Fatalf("DecodeAttribute() error = %v", err)
	}
	return attr.Attr.(StackMapTableAttr).Frames
}

func TestStackMapSameFrame(t *testing.T) {
	pool := stackMapPool(t)

	frames := decodeFrames(t, pool, []byte{0x00, 0x02, 0x00, 0x3F})
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].Kind != FrameSame || frames[0].OffsetDelta != 0 {
		t.Errorf("frame 0 = %+v", frames[0])
	}
	if frames[1].Kind != FrameSame || frames[1].OffsetDelta != 63 {
		t.Errorf("frame 1 = %+v", frames[1])
	}
}

// Frame types 64-127 carry their offset delta as frame_type-64; the
// boundary value 64 must decode to delta 0, and 127 to delta 63.
func TestStackMapSameLocals1StackDelta(t *testing.T) {
	pool := stackMapPool(t)

	frames := decodeFrames(t, pool, []byte{
		0x00, 0x02,
		0x40, 0x01, // frame_type 64, stack item int
		0x7F, 0x05, // frame_type 127, stack item null
	})
	if frames[0].Kind != FrameSameLocals1Stack {
		t.Fatalf("frame 0 kind = %v", frames[0].Kind)
	}
	if frames[0].OffsetDelta != 0 {
		t.Errorf("frame type 64 delta = %d, want 0", frames[0].OffsetDelta)
	}
	if frames[1].OffsetDelta != 63 {
		t.Errorf("frame type 127 delta = %d, want 63", frames[1].OffsetDelta)
	}
	if len(frames[0].Stack) != 1 || frames[0].Stack[0].Tag != VTInteger {
		t.Errorf("frame 0 stack = %+v", frames[0].Stack)
	}
}

func TestStackMapExtendedFrames(t *testing.T) {
	pool := stackMapPool(t)

	frames := decodeFrames(t, pool, []byte{
		0x00, 0x03,
		0xF8, 0x00, 0x10, // chop 3, delta 16
		0xFB, 0x00, 0x20, // same_frame_extended, delta 32
		0xF7, 0x00, 0x30, 0x07, 0x00, 0x03, // same_locals_1_stack_extended, Object
	})
	if frames[0].Kind != FrameChop || frames[0].Chopped != 3 || frames[0].OffsetDelta != 16 {
		t.Errorf("chop frame = %+v", frames[0])
	}
	if frames[1].Kind != FrameSameExtended || frames[1].OffsetDelta != 32 {
		t.Errorf("extended frame = %+v", frames[1])
	}
	if frames[2].Kind != FrameSameLocals1StackExtended {
		t.Fatalf("frame 2 kind = %v", frames[2].Kind)
	}
	item := frames[2].Stack[0]
	if item.Tag != VTObject || item.Class.Name.Value != "java/lang/Object" {
		t.Errorf("stack item = %+v", item)
	}
}

func TestStackMapAppendAndFull(t *testing.T) {
	pool := stackMapPool(t)

	frames := decodeFrames(t, pool, []byte{
		0x00, 0x02,
		// append 2 locals: long, uninitialized(offset 5)
		0xFD, 0x00, 0x08, 0x04, 0x08, 0x00, 0x05,
		// full frame: 1 local (top), 2 stack (int, double)
		0xFF, 0x00, 0x0A,
		0x00, 0x01, 0x00,
		0x00, 0x02, 0x01, 0x03,
	})
	app := frames[0]
	if app.Kind != FrameAppend || len(app.Locals) != 2 {
		t.Fatalf("append frame = %+v", app)
	}
	if app.Locals[0].Tag != VTLong {
		t.Errorf("local 0 = %+v", app.Locals[0])
	}
	if app.Locals[1].Tag != VTUninitialized || app.Locals[1].Offset != 5 {
		t.Errorf("local 1 = %+v", app.Locals[1])
	}

	full := frames[1]
	if full.Kind != FrameFull || full.OffsetDelta != 10 {
		t.Fatalf("full frame = %+v", full)
	}
	if len(full.Locals) != 1 || full.Locals[0].Tag != VTTop {
		t.Errorf("full locals = %+v", full.Locals)
	}
	if len(full.Stack) != 2 || full.Stack[0].Tag != VTInteger || full.Stack[1].Tag != VTDouble {
		t.Errorf("full stack = %+v", full.Stack)
	}
}

func TestStackMapReservedFrameType(t *testing.T) {
	pool := stackMapPool(t)

	_, err := DecodeAttribute(pool, RawAttribute{
		NameIndex: 1,
		Info:      []byte{0x00, 0x01, 0x80}, // 128 is reserved
	})
	if !errors.Is(err, ErrMalformedAttribute) {
		t.Fatalf("DecodeAttribute() error = %v, want ErrMalformedAttribute", err)
	}
}

func TestStackMapBadVerificationTag(t *testing.T) {
	pool := stackMapPool(t)

	_, err := DecodeAttribute(pool, RawAttribute{
		NameIndex: 1,
		Info:      []byte{0x00, 0x01, 0x40, 0x09}, // tag 9 is invalid
	})
	if !errors.Is(err, ErrMalformedAttribute) {
		t.Fatalf("DecodeAttribute() error = %v, want ErrMalformedAttribute", err)
	}
}

func TestStackMapTruncated(t *testing.T) {
	pool := stackMapPool(t)

	_, err := DecodeAttribute(pool, RawAttribute{
		NameIndex: 1,
		Info:      []byte{0x00, 0x02, 0x00}, // second frame missing
	})
	if !errors.Is(err, ErrTruncatedAttribute) {
		t.Fatalf("DecodeAttribute() error = %v, want ErrTruncatedAttribute", err)
	}
}
