// Package classfile decodes JVM class files into a typed in-memory
// representation.
//
// The decoder is split into two passes. The IO pass reads the byte
// stream into raw structures: RawConstant slots, RawAttribute records
// and untouched bytecode regions. The construction pass, exposed
// through ResolvePool, DecodeAttribute and DecodeInstructions, turns
// those raw structures into resolved values where every constant pool
// reference has been followed, kind-checked and copied into place.
// Parse runs both passes over a complete class file.
//
// # Constant Pool
//
// The constant pool keeps the 1-based indexing of the on-disk format,
// including the phantom slot that follows every Long and Double entry.
// Composite entries own resolved copies of everything they reference,
// so traversing a resolved entry never touches the raw table again.
// Typed accessors (Utf8At, ClassAt, MethodRefAt and friends) verify
// the entry kind at the use site and fail with an error wrapping
// ErrMalformedPool on a mismatch.
//
// # Attributes
//
// Attribute bodies decode by name into typed variants: Code with its
// decoded instruction sequence and exception table, StackMapTable,
// the annotation families, BootstrapMethods and the rest of the
// standard set. Unrecognized names are preserved as UnknownAttr with
// the raw body intact rather than failing the class.
//
// # Bytecode
//
// DecodeInstructions walks a Code region byte by byte, producing one
// Instruction per opcode with a typed immediate. Compressed alias
// forms (aload_0 and friends, ldc_w) normalize onto their canonical
// opcode during decoding. Pool-referencing operands resolve through
// the pool with the same kind checks as direct accessors.
//
// Malformed input of any shape surfaces as an error wrapping one of
// the package sentinels; the decoder never panics on hostile bytes.
package classfile
