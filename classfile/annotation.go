package classfile

import (
	"fmt"

	"github.com/wippyai/classfile-runtime/classfile/internal/binary"
)

// Annotation is a single decoded annotation: the field descriptor of
// the annotation type plus its named element values.
type Annotation struct {
	Type  Utf8Ref
	Pairs []ElementValuePair
}

// ElementValuePair is one name=value element of an annotation.
type ElementValuePair struct {
	Name  Utf8Ref
	Value ElementValue
}

// ElementValue is the tagged union of annotation element values. Tag
// selects which field is populated: the primitive tags ('B', 'C', 'D',
// 'F', 'I', 'J', 'S', 'Z') fill Const with the resolved pool constant,
// 's' fills String, 'e' fills EnumType/EnumConst, 'c' fills Class,
// '@' fills Nested and '[' fills Array.
type ElementValue struct {
	Tag byte

	Const     Entry
	String    Utf8Ref
	EnumType  Utf8Ref
	EnumConst Utf8Ref
	Class     Utf8Ref
	Nested    *Annotation
	Array     []ElementValue
}

// maxElementValueDepth bounds nested annotation and array element
// values so hostile input cannot recurse without limit.
const maxElementValueDepth = 64

func decodeAnnotations(pool *ConstantPool, r *binary.Reader, name string) ([]Annotation, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, attrErr(name, err)
	}
	anns := make([]Annotation, count)
	for i := range anns {
		anns[i], err = decodeAnnotation(pool, r, name, 0)
		if err != nil {
			return nil, err
		}
	}
	return anns, nil
}

// decodeParameterAnnotations decodes the per-parameter annotation
// table of the RuntimeVisible/InvisibleParameterAnnotations bodies.
func decodeParameterAnnotations(pool *ConstantPool, r *binary.Reader, name string) ([][]Annotation, error) {
	numParams, err := r.ReadByte()
	if err != nil {
		return nil, attrErr(name, err)
	}
	params := make([][]Annotation, numParams)
	for i := range params {
		params[i], err = decodeAnnotations(pool, r, name)
		if err != nil {
			return nil, err
		}
	}
	return params, nil
}

func decodeAnnotation(pool *ConstantPool, r *binary.Reader, name string, depth int) (Annotation, error) {
	if depth > maxElementValueDepth {
		return Annotation{}, fmt.Errorf("%w: %s: annotation nesting too deep", ErrMalformedAttribute, name)
	}
	typeIdx, err := r.ReadU16()
	if err != nil {
		return Annotation{}, attrErr(name, err)
	}
	typ, err := pool.Utf8At(typeIdx)
	if err != nil {
		return Annotation{}, err
	}
	numPairs, err := r.ReadU16()
	if err != nil {
		return Annotation{}, attrErr(name, err)
	}
	pairs := make([]ElementValuePair, numPairs)
	for i := range pairs {
		nameIdx, err := r.ReadU16()
		if err != nil {
			return Annotation{}, attrErr(name, err)
		}
		elemName, err := pool.Utf8At(nameIdx)
		if err != nil {
			return Annotation{}, err
		}
		value, err := decodeElementValue(pool, r, name, depth+1)
		if err != nil {
			return Annotation{}, err
		}
		pairs[i] = ElementValuePair{Name: elemName, Value: value}
	}
	return Annotation{Type: typ, Pairs: pairs}, nil
}

func decodeElementValue(pool *ConstantPool, r *binary.Reader, name string, depth int) (ElementValue, error) {
	if depth > maxElementValueDepth {
		return ElementValue{}, fmt.Errorf("%w: %s: element value nesting too deep", ErrMalformedAttribute, name)
	}
	tag, err := r.ReadByte()
	if err != nil {
		return ElementValue{}, attrErr(name, err)
	}
	ev := ElementValue{Tag: tag}

	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		idx, err := r.ReadU16()
		if err != nil {
			return ElementValue{}, attrErr(name, err)
		}
		entry, err := pool.EntryAt(idx)
		if err != nil {
			return ElementValue{}, err
		}
		if kerr := checkElementConst(tag, entry, idx); kerr != nil {
			return ElementValue{}, kerr
		}
		ev.Const = entry

	case 's':
		idx, err := r.ReadU16()
		if err != nil {
			return ElementValue{}, attrErr(name, err)
		}
		ev.String, err = pool.Utf8At(idx)
		if err != nil {
			return ElementValue{}, err
		}

	case 'e':
		typeIdx, err := r.ReadU16()
		if err != nil {
			return ElementValue{}, attrErr(name, err)
		}
		ev.EnumType, err = pool.Utf8At(typeIdx)
		if err != nil {
			return ElementValue{}, err
		}
		constIdx, err := r.ReadU16()
		if err != nil {
			return ElementValue{}, attrErr(name, err)
		}
		ev.EnumConst, err = pool.Utf8At(constIdx)
		if err != nil {
			return ElementValue{}, err
		}

	case 'c':
		idx, err := r.ReadU16()
		if err != nil {
			return ElementValue{}, attrErr(name, err)
		}
		ev.Class, err = pool.Utf8At(idx)
		if err != nil {
			return ElementValue{}, err
		}

	case '@':
		nested, err := decodeAnnotation(pool, r, name, depth+1)
		if err != nil {
			return ElementValue{}, err
		}
		ev.Nested = &nested

	case '[':
		count, err := r.ReadU16()
		if err != nil {
			return ElementValue{}, attrErr(name, err)
		}
		ev.Array = make([]ElementValue, count)
		for i := range ev.Array {
			ev.Array[i], err = decodeElementValue(pool, r, name, depth+1)
			if err != nil {
				return ElementValue{}, err
			}
		}

	default:
		return ElementValue{}, fmt.Errorf("%w: %s: unknown element value tag %q", ErrMalformedAttribute, name, tag)
	}

	return ev, nil
}

// checkElementConst validates the pool kind behind a primitive element
// value tag.
func checkElementConst(tag byte, entry Entry, idx uint16) error {
	var want TagKind
	switch tag {
	case 'B', 'C', 'I', 'S', 'Z':
		want = TagInteger
	case 'D':
		want = TagDouble
	case 'F':
		want = TagFloat
	case 'J':
		want = TagLong
	}
	if entry.Tag() != want {
		return &PoolKindError{Index: idx, Want: want, Got: entry.Tag()}
	}
	return nil
}

// TypeAnnotation is a decoded type annotation: the target it applies
// to, the type path within that target and the annotation proper.
type TypeAnnotation struct {
	TargetType uint8
	Target     TargetInfo
	Path       []TypePathStep
	Annotation Annotation
}

// TargetInfo is the flattened target_info union. TargetType on the
// enclosing TypeAnnotation selects which fields are meaningful.
type TargetInfo struct {
	TypeParameter   uint8
	Supertype       uint16
	Bound           uint8
	FormalParameter uint8
	Throws          uint16
	LocalVars       []LocalVarTarget
	Catch           uint16
	Offset          uint16
	TypeArgument    uint8
}

// LocalVarTarget is one live range of an annotated local variable.
type LocalVarTarget struct {
	StartPC uint16
	Length  uint16
	Slot    uint16
}

// TypePathStep is one step of a type_path, locating the annotated
// part within a compound type.
type TypePathStep struct {
	Kind        uint8
	ArgumentIdx uint8
}

func decodeTypeAnnotations(pool *ConstantPool, r *binary.Reader, name string) ([]TypeAnnotation, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, attrErr(name, err)
	}
	anns := make([]TypeAnnotation, count)
	for i := range anns {
		anns[i], err = decodeTypeAnnotation(pool, r, name)
		if err != nil {
			return nil, err
		}
	}
	return anns, nil
}

func decodeTypeAnnotation(pool *ConstantPool, r *binary.Reader, name string) (TypeAnnotation, error) {
	targetType, err := r.ReadByte()
	if err != nil {
		return TypeAnnotation{}, attrErr(name, err)
	}
	target, err := decodeTargetInfo(r, targetType, name)
	if err != nil {
		return TypeAnnotation{}, err
	}

	pathLen, err := r.ReadByte()
	if err != nil {
		return TypeAnnotation{}, attrErr(name, err)
	}
	path := make([]TypePathStep, pathLen)
	for i := range path {
		kind, err := r.ReadByte()
		if err != nil {
			return TypeAnnotation{}, attrErr(name, err)
		}
		arg, err := r.ReadByte()
		if err != nil {
			return TypeAnnotation{}, attrErr(name, err)
		}
		path[i] = TypePathStep{Kind: kind, ArgumentIdx: arg}
	}

	ann, err := decodeAnnotation(pool, r, name, 0)
	if err != nil {
		return TypeAnnotation{}, err
	}
	return TypeAnnotation{TargetType: targetType, Target: target, Path: path, Annotation: ann}, nil
}

func decodeTargetInfo(r *binary.Reader, targetType uint8, name string) (TargetInfo, error) {
	var t TargetInfo
	switch {
	case targetType == 0x00 || targetType == 0x01: // type parameter of class or method
		v, err := r.ReadByte()
		if err != nil {
			return t, attrErr(name, err)
		}
		t.TypeParameter = v

	case targetType == 0x10: // extends / implements clause
		v, err := r.ReadU16()
		if err != nil {
			return t, attrErr(name, err)
		}
		t.Supertype = v

	case targetType == 0x11 || targetType == 0x12: // type parameter bound
		p, err := r.ReadByte()
		if err != nil {
			return t, attrErr(name, err)
		}
		b, err := r.ReadByte()
		if err != nil {
			return t, attrErr(name, err)
		}
		t.TypeParameter, t.Bound = p, b

	case targetType >= 0x13 && targetType <= 0x15: // field type, return type, receiver type

	case targetType == 0x16: // formal parameter
		v, err := r.ReadByte()
		if err != nil {
			return t, attrErr(name, err)
		}
		t.FormalParameter = v

	case targetType == 0x17: // throws clause
		v, err := r.ReadU16()
		if err != nil {
			return t, attrErr(name, err)
		}
		t.Throws = v

	case targetType == 0x40 || targetType == 0x41: // local variable ranges
		count, err := r.ReadU16()
		if err != nil {
			return t, attrErr(name, err)
		}
		t.LocalVars = make([]LocalVarTarget, count)
		for i := range t.LocalVars {
			start, err := r.ReadU16()
			if err != nil {
				return t, attrErr(name, err)
			}
			length, err := r.ReadU16()
			if err != nil {
				return t, attrErr(name, err)
			}
			slot, err := r.ReadU16()
			if err != nil {
				return t, attrErr(name, err)
			}
			t.LocalVars[i] = LocalVarTarget{StartPC: start, Length: length, Slot: slot}
		}

	case targetType == 0x42: // exception handler
		v, err := r.ReadU16()
		if err != nil {
			return t, attrErr(name, err)
		}
		t.Catch = v

	case targetType >= 0x43 && targetType <= 0x46: // instanceof, new, method references
		v, err := r.ReadU16()
		if err != nil {
			return t, attrErr(name, err)
		}
		t.Offset = v

	case targetType >= 0x47 && targetType <= 0x4B: // cast and explicit type arguments
		off, err := r.ReadU16()
		if err != nil {
			return t, attrErr(name, err)
		}
		arg, err := r.ReadByte()
		if err != nil {
			return t, attrErr(name, err)
		}
		t.Offset, t.TypeArgument = off, arg

	default:
		return t, fmt.Errorf("%w: %s: unknown type annotation target 0x%02X", ErrMalformedAttribute, name, targetType)
	}
	return t, nil
}
