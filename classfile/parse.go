package classfile

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/classfile-runtime/classfile/internal/binary"
)

const classMagic = 0xCAFEBABE

var (
	// ErrNotClassFile is returned when the input does not start with
	// the class file magic number.
	ErrNotClassFile = errors.New("classfile: bad magic")

	// ErrTruncated is returned when the class file ends inside a
	// structural region outside any attribute or instruction.
	ErrTruncated = errors.New("classfile: truncated class file")
)

// ClassFile is a fully decoded class file.
type ClassFile struct {
	Minor       uint16
	Major       uint16
	Pool        *ConstantPool
	AccessFlags uint16
	ThisClass   ClassRef
	// SuperClass has index 0 only for java/lang/Object.
	SuperClass ClassRef
	Interfaces []ClassRef
	Fields     []Field
	Methods    []Method
	Attributes []AttributeInfo
}

// Field is a decoded field_info member.
type Field struct {
	AccessFlags uint16
	Name        Utf8Ref
	Descriptor  Utf8Ref
	Attributes  []AttributeInfo
}

// Method is a decoded method_info member.
type Method struct {
	AccessFlags uint16
	Name        Utf8Ref
	Descriptor  Utf8Ref
	Attributes  []AttributeInfo
}

// Parse decodes a complete class file: magic and version, the raw
// constant table, pool resolution, then members and attributes against
// the resolved pool.
func Parse(data []byte) (*ClassFile, error) {
	r := binary.NewReader(data)

	magic, err := r.ReadU32()
	if err != nil {
		return nil, frameErr(err)
	}
	if magic != classMagic {
		return nil, fmt.Errorf("%w: 0x%08X", ErrNotClassFile, magic)
	}

	cf := &ClassFile{}
	if cf.Minor, err = r.ReadU16(); err != nil {
		return nil, frameErr(err)
	}
	if cf.Major, err = r.ReadU16(); err != nil {
		return nil, frameErr(err)
	}

	raw, err := readRawPool(r)
	if err != nil {
		return nil, err
	}
	if cf.Pool, err = ResolvePool(raw); err != nil {
		return nil, err
	}

	if cf.AccessFlags, err = r.ReadU16(); err != nil {
		return nil, frameErr(err)
	}

	thisIdx, err := r.ReadU16()
	if err != nil {
		return nil, frameErr(err)
	}
	if cf.ThisClass, err = cf.Pool.ClassAt(thisIdx); err != nil {
		return nil, err
	}

	superIdx, err := r.ReadU16()
	if err != nil {
		return nil, frameErr(err)
	}
	if superIdx != 0 {
		if cf.SuperClass, err = cf.Pool.ClassAt(superIdx); err != nil {
			return nil, err
		}
	}

	ifaceCount, err := r.ReadU16()
	if err != nil {
		return nil, frameErr(err)
	}
	cf.Interfaces = make([]ClassRef, ifaceCount)
	for i := range cf.Interfaces {
		idx, err := r.ReadU16()
		if err != nil {
			return nil, frameErr(err)
		}
		if cf.Interfaces[i], err = cf.Pool.ClassAt(idx); err != nil {
			return nil, err
		}
	}

	if cf.Fields, err = readFields(cf.Pool, r); err != nil {
		return nil, err
	}
	methods, err := readMembers(cf.Pool, r)
	if err != nil {
		return nil, err
	}
	cf.Methods = make([]Method, len(methods))
	for i, m := range methods {
		cf.Methods[i] = Method(m)
	}

	raws, err := readRawAttributes(r)
	if err != nil {
		return nil, frameErr(err)
	}
	if cf.Attributes, err = DecodeAttributes(cf.Pool, raws); err != nil {
		return nil, err
	}

	Logger().Debug("class file parsed",
		zap.String("class", cf.ThisClass.Name.Value),
		zap.Uint16("major", cf.Major),
		zap.Uint16("minor", cf.Minor),
		zap.Int("methods", len(cf.Methods)))

	return cf, nil
}

// readRawPool reads the constant_pool table into raw entries. The
// returned slice has count-1 slots; Long and Double entries are
// followed by an inserted unusable slot so raw indices stay aligned
// with the on-disk numbering.
func readRawPool(r *binary.Reader) ([]RawConstant, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, frameErr(err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: constant pool count 0", ErrMalformedPool)
	}

	raw := make([]RawConstant, 0, count-1)
	for i := 1; i < int(count); {
		tag, err := r.ReadByte()
		if err != nil {
			return nil, frameErr(err)
		}

		switch TagKind(tag) {
		case TagUtf8:
			length, err := r.ReadU16()
			if err != nil {
				return nil, frameErr(err)
			}
			data, err := r.ReadBytes(int(length))
			if err != nil {
				return nil, frameErr(err)
			}
			raw = append(raw, RawConstant{Tag: TagUtf8, Data: data})
			i++

		case TagInteger:
			bits, err := r.ReadU32()
			if err != nil {
				return nil, frameErr(err)
			}
			raw = append(raw, RawInteger(int32(bits)))
			i++

		case TagFloat:
			bits, err := r.ReadU32()
			if err != nil {
				return nil, frameErr(err)
			}
			raw = append(raw, RawFloat(bits))
			i++

		case TagLong:
			if i+1 >= int(count) {
				return nil, fmt.Errorf("%w: index %d: two-slot Long exceeds pool count %d", ErrMalformedPool, i, count)
			}
			bits, err := r.ReadU64()
			if err != nil {
				return nil, frameErr(err)
			}
			raw = append(raw, RawLong(int64(bits)), RawUnusable())
			i += 2

		case TagDouble:
			if i+1 >= int(count) {
				return nil, fmt.Errorf("%w: index %d: two-slot Double exceeds pool count %d", ErrMalformedPool, i, count)
			}
			bits, err := r.ReadU64()
			if err != nil {
				return nil, frameErr(err)
			}
			raw = append(raw, RawDouble(bits), RawUnusable())
			i += 2

		case TagClass, TagString, TagMethodType:
			ref, err := r.ReadU16()
			if err != nil {
				return nil, frameErr(err)
			}
			switch TagKind(tag) {
			case TagClass:
				raw = append(raw, RawClass(ref))
			case TagString:
				raw = append(raw, RawString(ref))
			default:
				raw = append(raw, RawMethodType(ref))
			}
			i++

		case TagFieldRef, TagMethodRef, TagInterfaceMethodRef, TagNameAndType, TagInvokeDynamic:
			ref1, err := r.ReadU16()
			if err != nil {
				return nil, frameErr(err)
			}
			ref2, err := r.ReadU16()
			if err != nil {
				return nil, frameErr(err)
			}
			switch TagKind(tag) {
			case TagFieldRef:
				raw = append(raw, RawFieldRef(ref1, ref2))
			case TagMethodRef:
				raw = append(raw, RawMethodRef(ref1, ref2))
			case TagInterfaceMethodRef:
				raw = append(raw, RawInterfaceMethodRef(ref1, ref2))
			case TagNameAndType:
				raw = append(raw, RawNameAndType(ref1, ref2))
			default:
				raw = append(raw, RawInvokeDynamic(ref1, ref2))
			}
			i++

		case TagMethodHandle:
			kind, err := r.ReadByte()
			if err != nil {
				return nil, frameErr(err)
			}
			ref, err := r.ReadU16()
			if err != nil {
				return nil, frameErr(err)
			}
			raw = append(raw, RawMethodHandle(kind, ref))
			i++

		default:
			return nil, fmt.Errorf("%w: index %d: unknown tag %d", ErrMalformedPool, i, tag)
		}
	}

	return raw, nil
}

// member is the shared shape of field_info and method_info.
type member struct {
	AccessFlags uint16
	Name        Utf8Ref
	Descriptor  Utf8Ref
	Attributes  []AttributeInfo
}

func readFields(pool *ConstantPool, r *binary.Reader) ([]Field, error) {
	members, err := readMembers(pool, r)
	if err != nil {
		return nil, err
	}
	fields := make([]Field, len(members))
	for i, m := range members {
		fields[i] = Field(m)
	}
	return fields, nil
}

func readMembers(pool *ConstantPool, r *binary.Reader) ([]member, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, frameErr(err)
	}
	members := make([]member, count)
	for i := range members {
		m := member{}
		if m.AccessFlags, err = r.ReadU16(); err != nil {
			return nil, frameErr(err)
		}
		nameIdx, err := r.ReadU16()
		if err != nil {
			return nil, frameErr(err)
		}
		if m.Name, err = pool.Utf8At(nameIdx); err != nil {
			return nil, err
		}
		descIdx, err := r.ReadU16()
		if err != nil {
			return nil, frameErr(err)
		}
		if m.Descriptor, err = pool.Utf8At(descIdx); err != nil {
			return nil, err
		}
		raws, err := readRawAttributes(r)
		if err != nil {
			return nil, frameErr(err)
		}
		if m.Attributes, err = DecodeAttributes(pool, raws); err != nil {
			return nil, err
		}
		members[i] = m
	}
	return members, nil
}

func frameErr(err error) error {
	if errors.Is(err, binary.ErrUnexpectedEnd) {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return err
}
