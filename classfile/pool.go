package classfile

import "fmt"

// Entry is a fully resolved constant pool entry. Composite kinds own
// resolved copies of everything they reference; traversing a resolved
// entry never goes back to the raw table.
type Entry interface {
	Tag() TagKind
}

// Utf8Ref is a resolved reference to a Utf8 entry: the 1-based pool
// index it came from plus the decoded string. The string data is
// shared across all referencing entries.
type Utf8Ref struct {
	Index uint16
	Value string
}

// ClassRef is a resolved reference to a Class entry.
type ClassRef struct {
	Index uint16
	Name  Utf8Ref
}

// NameAndTypeRef is a resolved reference to a NameAndType entry.
type NameAndTypeRef struct {
	Index      uint16
	Name       Utf8Ref
	Descriptor Utf8Ref
}

// MethodHandleKind is the reference_kind of a MethodHandle entry,
// valid range 1-9.
type MethodHandleKind uint8

const (
	RefGetField MethodHandleKind = iota + 1
	RefGetStatic
	RefPutField
	RefPutStatic
	RefInvokeVirtual
	RefInvokeStatic
	RefInvokeSpecial
	RefNewInvokeSpecial
	RefInvokeInterface
)

func (k MethodHandleKind) String() string {
	switch k {
	case RefGetField:
		return "getField"
	case RefGetStatic:
		return "getStatic"
	case RefPutField:
		return "putField"
	case RefPutStatic:
		return "putStatic"
	case RefInvokeVirtual:
		return "invokeVirtual"
	case RefInvokeStatic:
		return "invokeStatic"
	case RefInvokeSpecial:
		return "invokeSpecial"
	case RefNewInvokeSpecial:
		return "newInvokeSpecial"
	case RefInvokeInterface:
		return "invokeInterface"
	default:
		return "invalid"
	}
}

type Utf8Entry struct{ Value string }

type IntegerEntry struct{ Value int32 }

type FloatEntry struct{ Value float32 }

type LongEntry struct{ Value int64 }

type DoubleEntry struct{ Value float64 }

type ClassEntry struct{ Name Utf8Ref }

type StringEntry struct{ Value Utf8Ref }

type FieldRefEntry struct {
	Class       ClassRef
	NameAndType NameAndTypeRef
}

type MethodRefEntry struct {
	Class       ClassRef
	NameAndType NameAndTypeRef
}

type InterfaceMethodRefEntry struct {
	Class       ClassRef
	NameAndType NameAndTypeRef
}

type NameAndTypeEntry struct {
	Name       Utf8Ref
	Descriptor Utf8Ref
}

type MethodHandleEntry struct {
	Kind     MethodHandleKind
	RefIndex uint16
	Referent Entry
}

type MethodTypeEntry struct{ Descriptor Utf8Ref }

type InvokeDynamicEntry struct {
	BootstrapIndex uint16
	NameAndType    NameAndTypeRef
}

// UnusableEntry fills the phantom slot after a Long or Double entry so
// the resolved pool stays index-aligned with the raw table.
type UnusableEntry struct{}

func (Utf8Entry) Tag() TagKind               { return TagUtf8 }
func (IntegerEntry) Tag() TagKind            { return TagInteger }
func (FloatEntry) Tag() TagKind              { return TagFloat }
func (LongEntry) Tag() TagKind               { return TagLong }
func (DoubleEntry) Tag() TagKind             { return TagDouble }
func (ClassEntry) Tag() TagKind              { return TagClass }
func (StringEntry) Tag() TagKind             { return TagString }
func (FieldRefEntry) Tag() TagKind           { return TagFieldRef }
func (MethodRefEntry) Tag() TagKind          { return TagMethodRef }
func (InterfaceMethodRefEntry) Tag() TagKind { return TagInterfaceMethodRef }
func (NameAndTypeEntry) Tag() TagKind        { return TagNameAndType }
func (MethodHandleEntry) Tag() TagKind       { return TagMethodHandle }
func (MethodTypeEntry) Tag() TagKind         { return TagMethodType }
func (InvokeDynamicEntry) Tag() TagKind      { return TagInvokeDynamic }
func (UnusableEntry) Tag() TagKind           { return TagUnusable }

// ConstantPool is the resolved, read-only constant pool. It is safe to
// share across concurrent decode calls; nothing mutates it after
// ResolvePool returns.
type ConstantPool struct {
	entries []Entry
}

// Len returns the number of pool slots, including unusable ones.
func (p *ConstantPool) Len() int {
	return len(p.entries)
}

// EntryAt returns the entry at the given 1-based index. This is the
// single place the 1-based to 0-based translation happens.
func (p *ConstantPool) EntryAt(idx uint16) (Entry, error) {
	if idx == 0 || int(idx) > len(p.entries) {
		return nil, &PoolIndexError{Index: idx, Size: len(p.entries)}
	}
	return p.entries[idx-1], nil
}

// Utf8At returns the Utf8 entry at idx as a resolved reference.
func (p *ConstantPool) Utf8At(idx uint16) (Utf8Ref, error) {
	e, err := p.EntryAt(idx)
	if err != nil {
		return Utf8Ref{}, err
	}
	u, ok := e.(Utf8Entry)
	if !ok {
		return Utf8Ref{}, &PoolKindError{Index: idx, Want: TagUtf8, Got: e.Tag()}
	}
	return Utf8Ref{Index: idx, Value: u.Value}, nil
}

// ClassAt returns the Class entry at idx as a resolved reference.
func (p *ConstantPool) ClassAt(idx uint16) (ClassRef, error) {
	e, err := p.EntryAt(idx)
	if err != nil {
		return ClassRef{}, err
	}
	c, ok := e.(ClassEntry)
	if !ok {
		return ClassRef{}, &PoolKindError{Index: idx, Want: TagClass, Got: e.Tag()}
	}
	return ClassRef{Index: idx, Name: c.Name}, nil
}

// NameAndTypeAt returns the NameAndType entry at idx as a resolved
// reference.
func (p *ConstantPool) NameAndTypeAt(idx uint16) (NameAndTypeRef, error) {
	e, err := p.EntryAt(idx)
	if err != nil {
		return NameAndTypeRef{}, err
	}
	nt, ok := e.(NameAndTypeEntry)
	if !ok {
		return NameAndTypeRef{}, &PoolKindError{Index: idx, Want: TagNameAndType, Got: e.Tag()}
	}
	return NameAndTypeRef{Index: idx, Name: nt.Name, Descriptor: nt.Descriptor}, nil
}

// FieldRefAt returns the FieldRef entry at idx.
func (p *ConstantPool) FieldRefAt(idx uint16) (FieldRefEntry, error) {
	e, err := p.EntryAt(idx)
	if err != nil {
		return FieldRefEntry{}, err
	}
	f, ok := e.(FieldRefEntry)
	if !ok {
		return FieldRefEntry{}, &PoolKindError{Index: idx, Want: TagFieldRef, Got: e.Tag()}
	}
	return f, nil
}

// MethodRefAt returns the MethodRef entry at idx.
func (p *ConstantPool) MethodRefAt(idx uint16) (MethodRefEntry, error) {
	e, err := p.EntryAt(idx)
	if err != nil {
		return MethodRefEntry{}, err
	}
	m, ok := e.(MethodRefEntry)
	if !ok {
		return MethodRefEntry{}, &PoolKindError{Index: idx, Want: TagMethodRef, Got: e.Tag()}
	}
	return m, nil
}

// InterfaceMethodRefAt returns the InterfaceMethodRef entry at idx.
func (p *ConstantPool) InterfaceMethodRefAt(idx uint16) (InterfaceMethodRefEntry, error) {
	e, err := p.EntryAt(idx)
	if err != nil {
		return InterfaceMethodRefEntry{}, err
	}
	m, ok := e.(InterfaceMethodRefEntry)
	if !ok {
		return InterfaceMethodRefEntry{}, &PoolKindError{Index: idx, Want: TagInterfaceMethodRef, Got: e.Tag()}
	}
	return m, nil
}

// MethodHandleAt returns the MethodHandle entry at idx.
func (p *ConstantPool) MethodHandleAt(idx uint16) (MethodHandleEntry, error) {
	e, err := p.EntryAt(idx)
	if err != nil {
		return MethodHandleEntry{}, err
	}
	h, ok := e.(MethodHandleEntry)
	if !ok {
		return MethodHandleEntry{}, &PoolKindError{Index: idx, Want: TagMethodHandle, Got: e.Tag()}
	}
	return h, nil
}

// InvokeDynamicAt returns the InvokeDynamic entry at idx.
func (p *ConstantPool) InvokeDynamicAt(idx uint16) (InvokeDynamicEntry, error) {
	e, err := p.EntryAt(idx)
	if err != nil {
		return InvokeDynamicEntry{}, err
	}
	d, ok := e.(InvokeDynamicEntry)
	if !ok {
		return InvokeDynamicEntry{}, &PoolKindError{Index: idx, Want: TagInvokeDynamic, Got: e.Tag()}
	}
	return d, nil
}

// LoadableAt returns the entry at idx if its kind may be pushed by the
// ldc family: Integer, Float, Long, Double, String, Class, MethodType
// or MethodHandle.
func (p *ConstantPool) LoadableAt(idx uint16) (Entry, error) {
	e, err := p.EntryAt(idx)
	if err != nil {
		return nil, err
	}
	switch e.Tag() {
	case TagInteger, TagFloat, TagLong, TagDouble, TagString, TagClass, TagMethodType, TagMethodHandle:
		return e, nil
	default:
		return nil, fmt.Errorf("%w: index %d: %s is not a loadable constant", ErrMalformedPool, idx, e.Tag())
	}
}
