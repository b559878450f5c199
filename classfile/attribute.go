package classfile

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/classfile-runtime/classfile/internal/binary"
	"github.com/wippyai/classfile-runtime/mutf8"
)

// Attribute is a decoded attribute body. AttrName returns the
// class-file attribute name the body was decoded as.
type Attribute interface {
	AttrName() string
}

// AttributeInfo pairs an attribute's resolved name with its decoded
// body.
type AttributeInfo struct {
	Name Utf8Ref
	Attr Attribute
}

// ExceptionHandler is one entry of a Code attribute's exception table.
// CatchType is the raw pool index of the caught class, kept unresolved
// so a stale or exotic entry never fails the enclosing Code attribute;
// index 0 catches all exception classes.
type ExceptionHandler struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// CodeAttr is the decoded Code attribute. Code keeps the raw bytecode
// region; Instructions is the decoded sequence over the same bytes.
type CodeAttr struct {
	MaxStack     uint16
	MaxLocals    uint16
	Code         []byte
	Instructions []Instruction
	Exceptions   []ExceptionHandler
	Attributes   []AttributeInfo
}

// ConstantValueAttr holds the resolved initializer constant of a
// static field: an Integer, Float, Long, Double or String entry.
type ConstantValueAttr struct {
	Value Entry
}

type StackMapTableAttr struct {
	Frames []StackMapFrame
}

type ExceptionsAttr struct {
	Classes []ClassRef
}

// InnerClass is one entry of the InnerClasses attribute. Outer and
// Name have index 0 when the inner class is local or anonymous.
type InnerClass struct {
	Inner       ClassRef
	Outer       ClassRef
	Name        Utf8Ref
	AccessFlags uint16
}

type InnerClassesAttr struct {
	Classes []InnerClass
}

// EnclosingMethodAttr locates a local or anonymous class within its
// enclosing method. Method has index 0 when the class is not
// immediately enclosed by a method or constructor.
type EnclosingMethodAttr struct {
	Class  ClassRef
	Method NameAndTypeRef
}

type SyntheticAttr struct{}

type DeprecatedAttr struct{}

type SignatureAttr struct {
	Signature Utf8Ref
}

type SourceFileAttr struct {
	File Utf8Ref
}

type SourceDebugExtensionAttr struct {
	Debug string
}

type LineNumber struct {
	StartPC uint16
	Line    uint16
}

type LineNumberTableAttr struct {
	Entries []LineNumber
}

type LocalVariable struct {
	StartPC    uint16
	Length     uint16
	Name       Utf8Ref
	Descriptor Utf8Ref
	Slot       uint16
}

type LocalVariableTableAttr struct {
	Entries []LocalVariable
}

type LocalVariableType struct {
	StartPC   uint16
	Length    uint16
	Name      Utf8Ref
	Signature Utf8Ref
	Slot      uint16
}

type LocalVariableTypeTableAttr struct {
	Entries []LocalVariableType
}

type RuntimeVisibleAnnotationsAttr struct {
	Annotations []Annotation
}

type RuntimeInvisibleAnnotationsAttr struct {
	Annotations []Annotation
}

type RuntimeVisibleParameterAnnotationsAttr struct {
	Parameters [][]Annotation
}

type RuntimeInvisibleParameterAnnotationsAttr struct {
	Parameters [][]Annotation
}

type RuntimeVisibleTypeAnnotationsAttr struct {
	Annotations []TypeAnnotation
}

type RuntimeInvisibleTypeAnnotationsAttr struct {
	Annotations []TypeAnnotation
}

type AnnotationDefaultAttr struct {
	Value ElementValue
}

// BootstrapMethod is one entry of the BootstrapMethods attribute: the
// bootstrap method handle plus its static arguments, all loadable
// constants.
type BootstrapMethod struct {
	Method    MethodHandleEntry
	Arguments []Entry
}

type BootstrapMethodsAttr struct {
	Methods []BootstrapMethod
}

// MethodParameter is one entry of the MethodParameters attribute. Name
// has index 0 for a formal parameter with no name.
type MethodParameter struct {
	Name        Utf8Ref
	AccessFlags uint16
}

type MethodParametersAttr struct {
	Parameters []MethodParameter
}

type NestHostAttr struct {
	Host ClassRef
}

type NestMembersAttr struct {
	Classes []ClassRef
}

type PermittedSubclassesAttr struct {
	Classes []ClassRef
}

// RecordComponent is one component of a Record attribute.
type RecordComponent struct {
	Name       Utf8Ref
	Descriptor Utf8Ref
	Attributes []AttributeInfo
}

type RecordAttr struct {
	Components []RecordComponent
}

// UnknownAttr preserves the raw body of an attribute whose name the
// decoder does not recognize. Unknown attributes never fail a decode.
type UnknownAttr struct {
	Name string
	Data []byte
}

func (CodeAttr) AttrName() string                               { return "Code" }
func (ConstantValueAttr) AttrName() string                      { return "ConstantValue" }
func (StackMapTableAttr) AttrName() string                      { return "StackMapTable" }
func (ExceptionsAttr) AttrName() string                         { return "Exceptions" }
func (InnerClassesAttr) AttrName() string                       { return "InnerClasses" }
func (EnclosingMethodAttr) AttrName() string                    { return "EnclosingMethod" }
func (SyntheticAttr) AttrName() string                          { return "Synthetic" }
func (DeprecatedAttr) AttrName() string                         { return "Deprecated" }
func (SignatureAttr) AttrName() string                          { return "Signature" }
func (SourceFileAttr) AttrName() string                         { return "SourceFile" }
func (SourceDebugExtensionAttr) AttrName() string               { return "SourceDebugExtension" }
func (LineNumberTableAttr) AttrName() string                    { return "LineNumberTable" }
func (LocalVariableTableAttr) AttrName() string                 { return "LocalVariableTable" }
func (LocalVariableTypeTableAttr) AttrName() string             { return "LocalVariableTypeTable" }
func (RuntimeVisibleAnnotationsAttr) AttrName() string          { return "RuntimeVisibleAnnotations" }
func (RuntimeInvisibleAnnotationsAttr) AttrName() string        { return "RuntimeInvisibleAnnotations" }
func (RuntimeVisibleParameterAnnotationsAttr) AttrName() string {
	return "RuntimeVisibleParameterAnnotations"
}
func (RuntimeInvisibleParameterAnnotationsAttr) AttrName() string {
	return "RuntimeInvisibleParameterAnnotations"
}
func (RuntimeVisibleTypeAnnotationsAttr) AttrName() string   { return "RuntimeVisibleTypeAnnotations" }
func (RuntimeInvisibleTypeAnnotationsAttr) AttrName() string { return "RuntimeInvisibleTypeAnnotations" }
func (AnnotationDefaultAttr) AttrName() string               { return "AnnotationDefault" }
func (BootstrapMethodsAttr) AttrName() string                { return "BootstrapMethods" }
func (MethodParametersAttr) AttrName() string                { return "MethodParameters" }
func (NestHostAttr) AttrName() string                        { return "NestHost" }
func (NestMembersAttr) AttrName() string                     { return "NestMembers" }
func (PermittedSubclassesAttr) AttrName() string             { return "PermittedSubclasses" }
func (RecordAttr) AttrName() string                          { return "Record" }
func (a UnknownAttr) AttrName() string                       { return a.Name }

// DecodeAttributes decodes a raw attribute table in order.
func DecodeAttributes(pool *ConstantPool, raws []RawAttribute) ([]AttributeInfo, error) {
	attrs := make([]AttributeInfo, len(raws))
	for i, raw := range raws {
		a, err := DecodeAttribute(pool, raw)
		if err != nil {
			return nil, err
		}
		attrs[i] = a
	}
	return attrs, nil
}

// DecodeAttribute resolves a raw attribute's name through the pool and
// decodes its body. Recognized names decode into their typed variant;
// anything else is preserved as an UnknownAttr so tool-specific and
// future attributes pass through without failing the class.
func DecodeAttribute(pool *ConstantPool, raw RawAttribute) (AttributeInfo, error) {
	name, err := pool.Utf8At(raw.NameIndex)
	if err != nil {
		return AttributeInfo{}, err
	}

	r := binary.NewReader(raw.Info)
	var attr Attribute

	switch name.Value {
	case "Code":
		attr, err = decodeCode(pool, r)
	case "ConstantValue":
		attr, err = decodeConstantValue(pool, r)
	case "StackMapTable":
		var frames []StackMapFrame
		frames, err = decodeStackMapTable(pool, r)
		attr = StackMapTableAttr{Frames: frames}
	case "Exceptions":
		var classes []ClassRef
		classes, err = decodeClassList(pool, r, name.Value)
		attr = ExceptionsAttr{Classes: classes}
	case "InnerClasses":
		attr, err = decodeInnerClasses(pool, r)
	case "EnclosingMethod":
		attr, err = decodeEnclosingMethod(pool, r)
	case "Synthetic":
		attr = SyntheticAttr{}
	case "Deprecated":
		attr = DeprecatedAttr{}
	case "Signature":
		var sig Utf8Ref
		sig, err = readUtf8(pool, r, name.Value)
		attr = SignatureAttr{Signature: sig}
	case "SourceFile":
		var file Utf8Ref
		file, err = readUtf8(pool, r, name.Value)
		attr = SourceFileAttr{File: file}
	case "SourceDebugExtension":
		var debug string
		debug, err = mutf8.Decode(raw.Info)
		attr = SourceDebugExtensionAttr{Debug: debug}
	case "LineNumberTable":
		attr, err = decodeLineNumberTable(r)
	case "LocalVariableTable":
		attr, err = decodeLocalVariableTable(pool, r)
	case "LocalVariableTypeTable":
		attr, err = decodeLocalVariableTypeTable(pool, r)
	case "RuntimeVisibleAnnotations":
		var anns []Annotation
		anns, err = decodeAnnotations(pool, r, name.Value)
		attr = RuntimeVisibleAnnotationsAttr{Annotations: anns}
	case "RuntimeInvisibleAnnotations":
		var anns []Annotation
		anns, err = decodeAnnotations(pool, r, name.Value)
		attr = RuntimeInvisibleAnnotationsAttr{Annotations: anns}
	case "RuntimeVisibleParameterAnnotations":
		var params [][]Annotation
		params, err = decodeParameterAnnotations(pool, r, name.Value)
		attr = RuntimeVisibleParameterAnnotationsAttr{Parameters: params}
	case "RuntimeInvisibleParameterAnnotations":
		var params [][]Annotation
		params, err = decodeParameterAnnotations(pool, r, name.Value)
		attr = RuntimeInvisibleParameterAnnotationsAttr{Parameters: params}
	case "RuntimeVisibleTypeAnnotations":
		var anns []TypeAnnotation
		anns, err = decodeTypeAnnotations(pool, r, name.Value)
		attr = RuntimeVisibleTypeAnnotationsAttr{Annotations: anns}
	case "RuntimeInvisibleTypeAnnotations":
		var anns []TypeAnnotation
		anns, err = decodeTypeAnnotations(pool, r, name.Value)
		attr = RuntimeInvisibleTypeAnnotationsAttr{Annotations: anns}
	case "AnnotationDefault":
		var value ElementValue
		value, err = decodeElementValue(pool, r, name.Value, 0)
		attr = AnnotationDefaultAttr{Value: value}
	case "BootstrapMethods":
		attr, err = decodeBootstrapMethods(pool, r)
	case "MethodParameters":
		attr, err = decodeMethodParameters(pool, r)
	case "NestHost":
		var host ClassRef
		host, err = readClass(pool, r, name.Value)
		attr = NestHostAttr{Host: host}
	case "NestMembers":
		var classes []ClassRef
		classes, err = decodeClassList(pool, r, name.Value)
		attr = NestMembersAttr{Classes: classes}
	case "PermittedSubclasses":
		var classes []ClassRef
		classes, err = decodeClassList(pool, r, name.Value)
		attr = PermittedSubclassesAttr{Classes: classes}
	case "Record":
		attr, err = decodeRecord(pool, r)
	default:
		Logger().Debug("unknown attribute preserved",
			zap.String("name", name.Value),
			zap.Int("size", len(raw.Info)))
		attr = UnknownAttr{Name: name.Value, Data: raw.Info}
	}
	if err != nil {
		return AttributeInfo{}, err
	}

	return AttributeInfo{Name: name, Attr: attr}, nil
}

func decodeCode(pool *ConstantPool, r *binary.Reader) (CodeAttr, error) {
	maxStack, err := r.ReadU16()
	if err != nil {
		return CodeAttr{}, attrErr("Code", err)
	}
	maxLocals, err := r.ReadU16()
	if err != nil {
		return CodeAttr{}, attrErr("Code", err)
	}
	codeLen, err := r.ReadU32()
	if err != nil {
		return CodeAttr{}, attrErr("Code", err)
	}
	code, err := r.ReadBytes(int(codeLen))
	if err != nil {
		return CodeAttr{}, attrErr("Code", err)
	}

	instrs, err := DecodeInstructions(pool, code)
	if err != nil {
		return CodeAttr{}, err
	}

	handlerCount, err := r.ReadU16()
	if err != nil {
		return CodeAttr{}, attrErr("Code", err)
	}
	handlers := make([]ExceptionHandler, handlerCount)
	for i := range handlers {
		h := ExceptionHandler{}
		if h.StartPC, err = r.ReadU16(); err != nil {
			return CodeAttr{}, attrErr("Code", err)
		}
		if h.EndPC, err = r.ReadU16(); err != nil {
			return CodeAttr{}, attrErr("Code", err)
		}
		if h.HandlerPC, err = r.ReadU16(); err != nil {
			return CodeAttr{}, attrErr("Code", err)
		}
		if h.CatchType, err = r.ReadU16(); err != nil {
			return CodeAttr{}, attrErr("Code", err)
		}
		handlers[i] = h
	}

	raws, err := readRawAttributes(r)
	if err != nil {
		return CodeAttr{}, attrErr("Code", err)
	}
	attrs, err := DecodeAttributes(pool, raws)
	if err != nil {
		return CodeAttr{}, err
	}

	return CodeAttr{
		MaxStack:     maxStack,
		MaxLocals:    maxLocals,
		Code:         code,
		Instructions: instrs,
		Exceptions:   handlers,
		Attributes:   attrs,
	}, nil
}

func decodeConstantValue(pool *ConstantPool, r *binary.Reader) (ConstantValueAttr, error) {
	idx, err := r.ReadU16()
	if err != nil {
		return ConstantValueAttr{}, attrErr("ConstantValue", err)
	}
	entry, err := pool.EntryAt(idx)
	if err != nil {
		return ConstantValueAttr{}, err
	}
	switch entry.Tag() {
	case TagInteger, TagFloat, TagLong, TagDouble, TagString:
		return ConstantValueAttr{Value: entry}, nil
	default:
		return ConstantValueAttr{}, fmt.Errorf("%w: ConstantValue: %s is not a field constant", ErrMalformedAttribute, entry.Tag())
	}
}

func decodeInnerClasses(pool *ConstantPool, r *binary.Reader) (InnerClassesAttr, error) {
	count, err := r.ReadU16()
	if err != nil {
		return InnerClassesAttr{}, attrErr("InnerClasses", err)
	}
	classes := make([]InnerClass, count)
	for i := range classes {
		ic := InnerClass{}
		innerIdx, err := r.ReadU16()
		if err != nil {
			return InnerClassesAttr{}, attrErr("InnerClasses", err)
		}
		if ic.Inner, err = pool.ClassAt(innerIdx); err != nil {
			return InnerClassesAttr{}, err
		}
		outerIdx, err := r.ReadU16()
		if err != nil {
			return InnerClassesAttr{}, attrErr("InnerClasses", err)
		}
		if outerIdx != 0 {
			if ic.Outer, err = pool.ClassAt(outerIdx); err != nil {
				return InnerClassesAttr{}, err
			}
		}
		nameIdx, err := r.ReadU16()
		if err != nil {
			return InnerClassesAttr{}, attrErr("InnerClasses", err)
		}
		if nameIdx != 0 {
			if ic.Name, err = pool.Utf8At(nameIdx); err != nil {
				return InnerClassesAttr{}, err
			}
		}
		if ic.AccessFlags, err = r.ReadU16(); err != nil {
			return InnerClassesAttr{}, attrErr("InnerClasses", err)
		}
		classes[i] = ic
	}
	return InnerClassesAttr{Classes: classes}, nil
}

func decodeEnclosingMethod(pool *ConstantPool, r *binary.Reader) (EnclosingMethodAttr, error) {
	classIdx, err := r.ReadU16()
	if err != nil {
		return EnclosingMethodAttr{}, attrErr("EnclosingMethod", err)
	}
	class, err := pool.ClassAt(classIdx)
	if err != nil {
		return EnclosingMethodAttr{}, err
	}
	methodIdx, err := r.ReadU16()
	if err != nil {
		return EnclosingMethodAttr{}, attrErr("EnclosingMethod", err)
	}
	var method NameAndTypeRef
	if methodIdx != 0 {
		if method, err = pool.NameAndTypeAt(methodIdx); err != nil {
			return EnclosingMethodAttr{}, err
		}
	}
	return EnclosingMethodAttr{Class: class, Method: method}, nil
}

func decodeLineNumberTable(r *binary.Reader) (LineNumberTableAttr, error) {
	count, err := r.ReadU16()
	if err != nil {
		return LineNumberTableAttr{}, attrErr("LineNumberTable", err)
	}
	entries := make([]LineNumber, count)
	for i := range entries {
		if entries[i].StartPC, err = r.ReadU16(); err != nil {
			return LineNumberTableAttr{}, attrErr("LineNumberTable", err)
		}
		if entries[i].Line, err = r.ReadU16(); err != nil {
			return LineNumberTableAttr{}, attrErr("LineNumberTable", err)
		}
	}
	return LineNumberTableAttr{Entries: entries}, nil
}

func decodeLocalVariableTable(pool *ConstantPool, r *binary.Reader) (LocalVariableTableAttr, error) {
	count, err := r.ReadU16()
	if err != nil {
		return LocalVariableTableAttr{}, attrErr("LocalVariableTable", err)
	}
	entries := make([]LocalVariable, count)
	for i := range entries {
		lv := LocalVariable{}
		if lv.StartPC, err = r.ReadU16(); err != nil {
			return LocalVariableTableAttr{}, attrErr("LocalVariableTable", err)
		}
		if lv.Length, err = r.ReadU16(); err != nil {
			return LocalVariableTableAttr{}, attrErr("LocalVariableTable", err)
		}
		nameIdx, err := r.ReadU16()
		if err != nil {
			return LocalVariableTableAttr{}, attrErr("LocalVariableTable", err)
		}
		if lv.Name, err = pool.Utf8At(nameIdx); err != nil {
			return LocalVariableTableAttr{}, err
		}
		descIdx, err := r.ReadU16()
		if err != nil {
			return LocalVariableTableAttr{}, attrErr("LocalVariableTable", err)
		}
		if lv.Descriptor, err = pool.Utf8At(descIdx); err != nil {
			return LocalVariableTableAttr{}, err
		}
		if lv.Slot, err = r.ReadU16(); err != nil {
			return LocalVariableTableAttr{}, attrErr("LocalVariableTable", err)
		}
		entries[i] = lv
	}
	return LocalVariableTableAttr{Entries: entries}, nil
}

func decodeLocalVariableTypeTable(pool *ConstantPool, r *binary.Reader) (LocalVariableTypeTableAttr, error) {
	count, err := r.ReadU16()
	if err != nil {
		return LocalVariableTypeTableAttr{}, attrErr("LocalVariableTypeTable", err)
	}
	entries := make([]LocalVariableType, count)
	for i := range entries {
		lv := LocalVariableType{}
		if lv.StartPC, err = r.ReadU16(); err != nil {
			return LocalVariableTypeTableAttr{}, attrErr("LocalVariableTypeTable", err)
		}
		if lv.Length, err = r.ReadU16(); err != nil {
			return LocalVariableTypeTableAttr{}, attrErr("LocalVariableTypeTable", err)
		}
		nameIdx, err := r.ReadU16()
		if err != nil {
			return LocalVariableTypeTableAttr{}, attrErr("LocalVariableTypeTable", err)
		}
		if lv.Name, err = pool.Utf8At(nameIdx); err != nil {
			return LocalVariableTypeTableAttr{}, err
		}
		sigIdx, err := r.ReadU16()
		if err != nil {
			return LocalVariableTypeTableAttr{}, attrErr("LocalVariableTypeTable", err)
		}
		if lv.Signature, err = pool.Utf8At(sigIdx); err != nil {
			return LocalVariableTypeTableAttr{}, err
		}
		if lv.Slot, err = r.ReadU16(); err != nil {
			return LocalVariableTypeTableAttr{}, attrErr("LocalVariableTypeTable", err)
		}
		entries[i] = lv
	}
	return LocalVariableTypeTableAttr{Entries: entries}, nil
}

func decodeBootstrapMethods(pool *ConstantPool, r *binary.Reader) (BootstrapMethodsAttr, error) {
	count, err := r.ReadU16()
	if err != nil {
		return BootstrapMethodsAttr{}, attrErr("BootstrapMethods", err)
	}
	methods := make([]BootstrapMethod, count)
	for i := range methods {
		handleIdx, err := r.ReadU16()
		if err != nil {
			return BootstrapMethodsAttr{}, attrErr("BootstrapMethods", err)
		}
		handle, err := pool.MethodHandleAt(handleIdx)
		if err != nil {
			return BootstrapMethodsAttr{}, err
		}
		argCount, err := r.ReadU16()
		if err != nil {
			return BootstrapMethodsAttr{}, attrErr("BootstrapMethods", err)
		}
		args := make([]Entry, argCount)
		for j := range args {
			argIdx, err := r.ReadU16()
			if err != nil {
				return BootstrapMethodsAttr{}, attrErr("BootstrapMethods", err)
			}
			if args[j], err = pool.LoadableAt(argIdx); err != nil {
				return BootstrapMethodsAttr{}, err
			}
		}
		methods[i] = BootstrapMethod{Method: handle, Arguments: args}
	}
	return BootstrapMethodsAttr{Methods: methods}, nil
}

func decodeMethodParameters(pool *ConstantPool, r *binary.Reader) (MethodParametersAttr, error) {
	count, err := r.ReadByte()
	if err != nil {
		return MethodParametersAttr{}, attrErr("MethodParameters", err)
	}
	params := make([]MethodParameter, count)
	for i := range params {
		nameIdx, err := r.ReadU16()
		if err != nil {
			return MethodParametersAttr{}, attrErr("MethodParameters", err)
		}
		var pname Utf8Ref
		if nameIdx != 0 {
			if pname, err = pool.Utf8At(nameIdx); err != nil {
				return MethodParametersAttr{}, err
			}
		}
		flags, err := r.ReadU16()
		if err != nil {
			return MethodParametersAttr{}, attrErr("MethodParameters", err)
		}
		params[i] = MethodParameter{Name: pname, AccessFlags: flags}
	}
	return MethodParametersAttr{Parameters: params}, nil
}

func decodeRecord(pool *ConstantPool, r *binary.Reader) (RecordAttr, error) {
	count, err := r.ReadU16()
	if err != nil {
		return RecordAttr{}, attrErr("Record", err)
	}
	components := make([]RecordComponent, count)
	for i := range components {
		rc := RecordComponent{}
		nameIdx, err := r.ReadU16()
		if err != nil {
			return RecordAttr{}, attrErr("Record", err)
		}
		if rc.Name, err = pool.Utf8At(nameIdx); err != nil {
			return RecordAttr{}, err
		}
		descIdx, err := r.ReadU16()
		if err != nil {
			return RecordAttr{}, attrErr("Record", err)
		}
		if rc.Descriptor, err = pool.Utf8At(descIdx); err != nil {
			return RecordAttr{}, err
		}
		raws, err := readRawAttributes(r)
		if err != nil {
			return RecordAttr{}, attrErr("Record", err)
		}
		if rc.Attributes, err = DecodeAttributes(pool, raws); err != nil {
			return RecordAttr{}, err
		}
		components[i] = rc
	}
	return RecordAttr{Components: components}, nil
}

// decodeClassList reads a u16-counted list of Class references, the
// shared body shape of Exceptions, NestMembers and PermittedSubclasses.
func decodeClassList(pool *ConstantPool, r *binary.Reader, name string) ([]ClassRef, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, attrErr(name, err)
	}
	classes := make([]ClassRef, count)
	for i := range classes {
		idx, err := r.ReadU16()
		if err != nil {
			return nil, attrErr(name, err)
		}
		if classes[i], err = pool.ClassAt(idx); err != nil {
			return nil, err
		}
	}
	return classes, nil
}

func readUtf8(pool *ConstantPool, r *binary.Reader, name string) (Utf8Ref, error) {
	idx, err := r.ReadU16()
	if err != nil {
		return Utf8Ref{}, attrErr(name, err)
	}
	return pool.Utf8At(idx)
}

func readClass(pool *ConstantPool, r *binary.Reader, name string) (ClassRef, error) {
	idx, err := r.ReadU16()
	if err != nil {
		return ClassRef{}, attrErr(name, err)
	}
	return pool.ClassAt(idx)
}

// readRawAttributes reads a u16-counted attribute table without
// decoding the bodies.
func readRawAttributes(r *binary.Reader) ([]RawAttribute, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	raws := make([]RawAttribute, count)
	for i := range raws {
		nameIdx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		length, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		info, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		raws[i] = RawAttribute{NameIndex: nameIdx, Length: length, Info: info}
	}
	return raws, nil
}

func attrErr(name string, err error) error {
	if errors.Is(err, binary.ErrUnexpectedEnd) {
		return fmt.Errorf("%w: %s", ErrTruncatedAttribute, name)
	}
	return err
}
