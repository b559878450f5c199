package classfile

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/classfile-runtime/mutf8"
)

// maxResolveDepth bounds the reference chains followed while resolving
// a single slot. Valid pools never nest deeper than a MethodHandle
// pointing at a member ref pointing at NameAndType pointing at Utf8;
// anything deeper is a cycle or hostile input.
const maxResolveDepth = 16

// ResolvePool turns the raw constant table into a fully resolved,
// index-aligned pool. Entries are resolved in forward order; an entry
// referenced before its own turn is resolved early and memoized, so
// shared entries resolve exactly once. Cyclic input fails with
// ErrMalformedPool instead of exhausting the stack.
func ResolvePool(raw []RawConstant) (*ConstantPool, error) {
	r := &poolResolver{raw: raw, formed: make([]Entry, len(raw))}
	for i := range raw {
		if _, err := r.at(i, 0); err != nil {
			return nil, err
		}
	}
	Logger().Debug("constant pool resolved", zap.Int("entries", len(raw)))
	return &ConstantPool{entries: r.formed}, nil
}

type poolResolver struct {
	raw    []RawConstant
	formed []Entry // same length as raw; nil marks unresolved
}

// at resolves the 0-based slot i, memoizing the result.
func (r *poolResolver) at(i, depth int) (Entry, error) {
	if depth > maxResolveDepth {
		return nil, fmt.Errorf("%w: reference chain too deep at index %d (cycle?)", ErrMalformedPool, i+1)
	}
	if e := r.formed[i]; e != nil {
		return e, nil
	}

	rc := r.raw[i]
	var (
		e   Entry
		err error
	)
	switch rc.Tag {
	case TagUnusable:
		e = UnusableEntry{}

	case TagUtf8:
		s, derr := mutf8.Decode(rc.Data)
		if derr != nil {
			return nil, fmt.Errorf("constant pool index %d: %w", i+1, derr)
		}
		e = Utf8Entry{Value: s}

	case TagInteger:
		e = IntegerEntry{Value: int32(uint32(rc.Bits))}

	case TagFloat:
		e = FloatEntry{Value: math.Float32frombits(uint32(rc.Bits))}

	case TagLong:
		e = LongEntry{Value: int64(rc.Bits)}

	case TagDouble:
		e = DoubleEntry{Value: math.Float64frombits(rc.Bits)}

	case TagClass:
		name, uerr := r.utf8Ref(rc.Ref1, depth+1)
		if uerr != nil {
			return nil, uerr
		}
		e = ClassEntry{Name: name}

	case TagString:
		val, uerr := r.utf8Ref(rc.Ref1, depth+1)
		if uerr != nil {
			return nil, uerr
		}
		e = StringEntry{Value: val}

	case TagFieldRef, TagMethodRef, TagInterfaceMethodRef:
		class, cerr := r.classRef(rc.Ref1, depth+1)
		if cerr != nil {
			return nil, cerr
		}
		nat, nerr := r.nameAndTypeRef(rc.Ref2, depth+1)
		if nerr != nil {
			return nil, nerr
		}
		switch rc.Tag {
		case TagFieldRef:
			e = FieldRefEntry{Class: class, NameAndType: nat}
		case TagMethodRef:
			e = MethodRefEntry{Class: class, NameAndType: nat}
		default:
			e = InterfaceMethodRefEntry{Class: class, NameAndType: nat}
		}

	case TagNameAndType:
		name, nerr := r.utf8Ref(rc.Ref1, depth+1)
		if nerr != nil {
			return nil, nerr
		}
		desc, derr := r.utf8Ref(rc.Ref2, depth+1)
		if derr != nil {
			return nil, derr
		}
		e = NameAndTypeEntry{Name: name, Descriptor: desc}

	case TagMethodHandle:
		kind := MethodHandleKind(rc.RefKind)
		if kind < RefGetField || kind > RefInvokeInterface {
			return nil, fmt.Errorf("%w: index %d: invalid method handle kind %d", ErrMalformedPool, i+1, rc.RefKind)
		}
		ref, ferr := r.follow(rc.Ref1, depth+1)
		if ferr != nil {
			return nil, ferr
		}
		if kerr := checkHandleReferent(kind, ref, rc.Ref1); kerr != nil {
			return nil, kerr
		}
		e = MethodHandleEntry{Kind: kind, RefIndex: rc.Ref1, Referent: ref}

	case TagMethodType:
		desc, uerr := r.utf8Ref(rc.Ref1, depth+1)
		if uerr != nil {
			return nil, uerr
		}
		e = MethodTypeEntry{Descriptor: desc}

	case TagInvokeDynamic:
		nat, nerr := r.nameAndTypeRef(rc.Ref2, depth+1)
		if nerr != nil {
			return nil, nerr
		}
		e = InvokeDynamicEntry{BootstrapIndex: rc.Ref1, NameAndType: nat}

	default:
		err = fmt.Errorf("%w: index %d: unknown tag %d", ErrMalformedPool, i+1, byte(rc.Tag))
	}
	if err != nil {
		return nil, err
	}

	r.formed[i] = e
	return e, nil
}

// follow resolves a 1-based reference into the table.
func (r *poolResolver) follow(idx uint16, depth int) (Entry, error) {
	if idx == 0 || int(idx) > len(r.raw) {
		return nil, &PoolIndexError{Index: idx, Size: len(r.raw)}
	}
	return r.at(int(idx)-1, depth)
}

func (r *poolResolver) utf8Ref(idx uint16, depth int) (Utf8Ref, error) {
	e, err := r.follow(idx, depth)
	if err != nil {
		return Utf8Ref{}, err
	}
	u, ok := e.(Utf8Entry)
	if !ok {
		return Utf8Ref{}, &PoolKindError{Index: idx, Want: TagUtf8, Got: e.Tag()}
	}
	return Utf8Ref{Index: idx, Value: u.Value}, nil
}

func (r *poolResolver) classRef(idx uint16, depth int) (ClassRef, error) {
	e, err := r.follow(idx, depth)
	if err != nil {
		return ClassRef{}, err
	}
	c, ok := e.(ClassEntry)
	if !ok {
		return ClassRef{}, &PoolKindError{Index: idx, Want: TagClass, Got: e.Tag()}
	}
	return ClassRef{Index: idx, Name: c.Name}, nil
}

func (r *poolResolver) nameAndTypeRef(idx uint16, depth int) (NameAndTypeRef, error) {
	e, err := r.follow(idx, depth)
	if err != nil {
		return NameAndTypeRef{}, err
	}
	nt, ok := e.(NameAndTypeEntry)
	if !ok {
		return NameAndTypeRef{}, &PoolKindError{Index: idx, Want: TagNameAndType, Got: e.Tag()}
	}
	return NameAndTypeRef{Index: idx, Name: nt.Name, Descriptor: nt.Descriptor}, nil
}

// checkHandleReferent validates that a method handle's referent has
// the member kind its reference_kind requires.
func checkHandleReferent(kind MethodHandleKind, ref Entry, idx uint16) error {
	got := ref.Tag()
	switch kind {
	case RefGetField, RefGetStatic, RefPutField, RefPutStatic:
		if got != TagFieldRef {
			return &PoolKindError{Index: idx, Want: TagFieldRef, Got: got}
		}
	case RefInvokeVirtual, RefNewInvokeSpecial:
		if got != TagMethodRef {
			return &PoolKindError{Index: idx, Want: TagMethodRef, Got: got}
		}
	case RefInvokeStatic, RefInvokeSpecial:
		// Either member kind is legal for these since class file
		// version 52.
		if got != TagMethodRef && got != TagInterfaceMethodRef {
			return &PoolKindError{Index: idx, Want: TagMethodRef, Got: got}
		}
	case RefInvokeInterface:
		if got != TagInterfaceMethodRef {
			return &PoolKindError{Index: idx, Want: TagInterfaceMethodRef, Got: got}
		}
	}
	return nil
}
