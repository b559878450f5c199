package classfile

// TagKind identifies a constant pool entry kind. The values are the
// tag bytes of the class-file format.
type TagKind byte

const (
	// TagUnusable marks the phantom slot following a Long or Double
	// entry. Those kinds occupy two pool slots; the raw table must
	// preserve the gap so external 1-based indices stay aligned.
	TagUnusable           TagKind = 0
	TagUtf8               TagKind = 1
	TagInteger            TagKind = 3
	TagFloat              TagKind = 4
	TagLong               TagKind = 5
	TagDouble             TagKind = 6
	TagClass              TagKind = 7
	TagString             TagKind = 8
	TagFieldRef           TagKind = 9
	TagMethodRef          TagKind = 10
	TagInterfaceMethodRef TagKind = 11
	TagNameAndType        TagKind = 12
	TagMethodHandle       TagKind = 15
	TagMethodType         TagKind = 16
	TagInvokeDynamic      TagKind = 18
)

func (t TagKind) String() string {
	switch t {
	case TagUnusable:
		return "Unusable"
	case TagUtf8:
		return "Utf8"
	case TagInteger:
		return "Integer"
	case TagFloat:
		return "Float"
	case TagLong:
		return "Long"
	case TagDouble:
		return "Double"
	case TagClass:
		return "Class"
	case TagString:
		return "String"
	case TagFieldRef:
		return "FieldRef"
	case TagMethodRef:
		return "MethodRef"
	case TagInterfaceMethodRef:
		return "InterfaceMethodRef"
	case TagNameAndType:
		return "NameAndType"
	case TagMethodHandle:
		return "MethodHandle"
	case TagMethodType:
		return "MethodType"
	case TagInvokeDynamic:
		return "InvokeDynamic"
	default:
		return "Unknown"
	}
}

// RawConstant is one byte-deserialized, unresolved constant pool slot
// as produced by the first-pass IO read. Index fields are 1-based
// references into the same table.
type RawConstant struct {
	Tag     TagKind
	Data    []byte // Utf8: modified UTF-8 payload
	Bits    uint64 // Integer/Float: low 32 bits; Long/Double: all 64
	Ref1    uint16 // name/class/utf8/descriptor/bootstrap/reference index
	Ref2    uint16 // name-and-type/descriptor index
	RefKind uint8  // MethodHandle reference kind
}

// Raw constant constructors, used by the framing reader and by tests
// to assemble raw tables without spelling out struct fields.

func RawUtf8(s string) RawConstant {
	return RawConstant{Tag: TagUtf8, Data: []byte(s)}
}

func RawInteger(v int32) RawConstant {
	return RawConstant{Tag: TagInteger, Bits: uint64(uint32(v))}
}

func RawFloat(bits uint32) RawConstant {
	return RawConstant{Tag: TagFloat, Bits: uint64(bits)}
}

func RawLong(v int64) RawConstant {
	return RawConstant{Tag: TagLong, Bits: uint64(v)}
}

func RawDouble(bits uint64) RawConstant {
	return RawConstant{Tag: TagDouble, Bits: bits}
}

func RawClass(nameIndex uint16) RawConstant {
	return RawConstant{Tag: TagClass, Ref1: nameIndex}
}

func RawString(utf8Index uint16) RawConstant {
	return RawConstant{Tag: TagString, Ref1: utf8Index}
}

func RawFieldRef(classIndex, nameAndTypeIndex uint16) RawConstant {
	return RawConstant{Tag: TagFieldRef, Ref1: classIndex, Ref2: nameAndTypeIndex}
}

func RawMethodRef(classIndex, nameAndTypeIndex uint16) RawConstant {
	return RawConstant{Tag: TagMethodRef, Ref1: classIndex, Ref2: nameAndTypeIndex}
}

func RawInterfaceMethodRef(classIndex, nameAndTypeIndex uint16) RawConstant {
	return RawConstant{Tag: TagInterfaceMethodRef, Ref1: classIndex, Ref2: nameAndTypeIndex}
}

func RawNameAndType(nameIndex, descriptorIndex uint16) RawConstant {
	return RawConstant{Tag: TagNameAndType, Ref1: nameIndex, Ref2: descriptorIndex}
}

func RawMethodHandle(kind uint8, referenceIndex uint16) RawConstant {
	return RawConstant{Tag: TagMethodHandle, RefKind: kind, Ref1: referenceIndex}
}

func RawMethodType(descriptorIndex uint16) RawConstant {
	return RawConstant{Tag: TagMethodType, Ref1: descriptorIndex}
}

func RawInvokeDynamic(bootstrapIndex, nameAndTypeIndex uint16) RawConstant {
	return RawConstant{Tag: TagInvokeDynamic, Ref1: bootstrapIndex, Ref2: nameAndTypeIndex}
}

func RawUnusable() RawConstant {
	return RawConstant{Tag: TagUnusable}
}

// RawAttribute is one attribute record as read by the IO pass: a name
// index into the constant pool, the declared length and the raw body.
type RawAttribute struct {
	NameIndex uint16
	Length    uint32
	Info      []byte
}
