package classfile

import (
	"fmt"

	"github.com/wippyai/classfile-runtime/classfile/internal/binary"
)

// FrameKind identifies the compressed stack map frame variant.
type FrameKind uint8

const (
	FrameSame FrameKind = iota
	FrameSameLocals1Stack
	FrameSameLocals1StackExtended
	FrameChop
	FrameSameExtended
	FrameAppend
	FrameFull
)

func (k FrameKind) String() string {
	switch k {
	case FrameSame:
		return "same"
	case FrameSameLocals1Stack:
		return "same_locals_1_stack_item"
	case FrameSameLocals1StackExtended:
		return "same_locals_1_stack_item_extended"
	case FrameChop:
		return "chop"
	case FrameSameExtended:
		return "same_extended"
	case FrameAppend:
		return "append"
	case FrameFull:
		return "full"
	default:
		return "invalid"
	}
}

// StackMapFrame is one decoded frame of a StackMapTable. OffsetDelta
// is always populated, whether the raw frame encoded it implicitly in
// the frame type byte or as an explicit u16. For frame types 64-127
// the delta is frame_type-64.
type StackMapFrame struct {
	Kind        FrameKind
	OffsetDelta uint16

	// Chopped is the number of absent locals for chop frames.
	Chopped uint8

	// Locals holds the appended locals of an append frame or the
	// complete locals of a full frame.
	Locals []VerificationType

	// Stack holds the single stack item of the same_locals_1_stack
	// variants or the complete operand stack of a full frame.
	Stack []VerificationType
}

// VerificationTypeTag is the discriminator of a verification_type_info
// union, valid range 0-8.
type VerificationTypeTag uint8

const (
	VTTop VerificationTypeTag = iota
	VTInteger
	VTFloat
	VTDouble
	VTLong
	VTNull
	VTUninitializedThis
	VTObject
	VTUninitialized
)

func (t VerificationTypeTag) String() string {
	switch t {
	case VTTop:
		return "top"
	case VTInteger:
		return "int"
	case VTFloat:
		return "float"
	case VTDouble:
		return "double"
	case VTLong:
		return "long"
	case VTNull:
		return "null"
	case VTUninitializedThis:
		return "uninitializedThis"
	case VTObject:
		return "object"
	case VTUninitialized:
		return "uninitialized"
	default:
		return "invalid"
	}
}

// VerificationType is one verification_type_info entry. Class is set
// for VTObject, Offset for VTUninitialized.
type VerificationType struct {
	Tag    VerificationTypeTag
	Class  ClassRef
	Offset uint16
}

// decodeStackMapTable decodes the frame list of a StackMapTable body.
func decodeStackMapTable(pool *ConstantPool, r *binary.Reader) ([]StackMapFrame, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, attrErr("StackMapTable", err)
	}
	frames := make([]StackMapFrame, 0, count)
	for i := 0; i < int(count); i++ {
		frame, err := decodeStackMapFrame(pool, r)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func decodeStackMapFrame(pool *ConstantPool, r *binary.Reader) (StackMapFrame, error) {
	ft, err := r.ReadByte()
	if err != nil {
		return StackMapFrame{}, attrErr("StackMapTable", err)
	}

	switch {
	case ft <= 63:
		return StackMapFrame{Kind: FrameSame, OffsetDelta: uint16(ft)}, nil

	case ft <= 127:
		item, err := decodeVerificationType(pool, r)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameSameLocals1Stack,
			OffsetDelta: uint16(ft - 64),
			Stack:       []VerificationType{item},
		}, nil

	case ft < 247:
		return StackMapFrame{}, fmt.Errorf("%w: reserved stack map frame type %d", ErrMalformedAttribute, ft)

	case ft == 247:
		delta, err := r.ReadU16()
		if err != nil {
			return StackMapFrame{}, attrErr("StackMapTable", err)
		}
		item, err := decodeVerificationType(pool, r)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameSameLocals1StackExtended,
			OffsetDelta: delta,
			Stack:       []VerificationType{item},
		}, nil

	case ft <= 250:
		delta, err := r.ReadU16()
		if err != nil {
			return StackMapFrame{}, attrErr("StackMapTable", err)
		}
		return StackMapFrame{Kind: FrameChop, OffsetDelta: delta, Chopped: 251 - ft}, nil

	case ft == 251:
		delta, err := r.ReadU16()
		if err != nil {
			return StackMapFrame{}, attrErr("StackMapTable", err)
		}
		return StackMapFrame{Kind: FrameSameExtended, OffsetDelta: delta}, nil

	case ft <= 254:
		delta, err := r.ReadU16()
		if err != nil {
			return StackMapFrame{}, attrErr("StackMapTable", err)
		}
		locals := make([]VerificationType, ft-251)
		for i := range locals {
			locals[i], err = decodeVerificationType(pool, r)
			if err != nil {
				return StackMapFrame{}, err
			}
		}
		return StackMapFrame{Kind: FrameAppend, OffsetDelta: delta, Locals: locals}, nil

	default: // 255
		delta, err := r.ReadU16()
		if err != nil {
			return StackMapFrame{}, attrErr("StackMapTable", err)
		}
		locals, err := decodeVerificationTypes(pool, r)
		if err != nil {
			return StackMapFrame{}, err
		}
		stack, err := decodeVerificationTypes(pool, r)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{Kind: FrameFull, OffsetDelta: delta, Locals: locals, Stack: stack}, nil
	}
}

func decodeVerificationTypes(pool *ConstantPool, r *binary.Reader) ([]VerificationType, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, attrErr("StackMapTable", err)
	}
	types := make([]VerificationType, count)
	for i := range types {
		types[i], err = decodeVerificationType(pool, r)
		if err != nil {
			return nil, err
		}
	}
	return types, nil
}

func decodeVerificationType(pool *ConstantPool, r *binary.Reader) (VerificationType, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return VerificationType{}, attrErr("StackMapTable", err)
	}
	switch VerificationTypeTag(tag) {
	case VTTop, VTInteger, VTFloat, VTDouble, VTLong, VTNull, VTUninitializedThis:
		return VerificationType{Tag: VerificationTypeTag(tag)}, nil
	case VTObject:
		idx, err := r.ReadU16()
		if err != nil {
			return VerificationType{}, attrErr("StackMapTable", err)
		}
		class, err := pool.ClassAt(idx)
		if err != nil {
			return VerificationType{}, err
		}
		return VerificationType{Tag: VTObject, Class: class}, nil
	case VTUninitialized:
		off, err := r.ReadU16()
		if err != nil {
			return VerificationType{}, attrErr("StackMapTable", err)
		}
		return VerificationType{Tag: VTUninitialized, Offset: off}, nil
	default:
		return VerificationType{}, fmt.Errorf("%w: invalid verification type tag %d", ErrMalformedAttribute, tag)
	}
}
