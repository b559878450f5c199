package classfile

import (
	"errors"
	"fmt"
)

// Decode errors. Malformed input always surfaces through one of these;
// hostile class files can never panic or abort the process.
var (
	// ErrMalformedPool covers out-of-range constant pool indices,
	// wrong-kind resolutions and reference cycles.
	ErrMalformedPool = errors.New("classfile: malformed constant pool")

	// ErrTruncatedAttribute is returned when an attribute body is
	// shorter than the layout its name implies.
	ErrTruncatedAttribute = errors.New("classfile: truncated attribute")

	// ErrMalformedAttribute is returned for attribute bodies with
	// structurally invalid contents, such as reserved stack map frame
	// types or unknown element value tags.
	ErrMalformedAttribute = errors.New("classfile: malformed attribute")

	// ErrTruncatedOperand is returned when a bytecode stream ends in
	// the middle of an instruction's operands.
	ErrTruncatedOperand = errors.New("classfile: truncated instruction operand")

	// ErrUnknownOpcode is returned for opcode bytes the format does not
	// assign (including the reserved breakpoint/impdep values).
	ErrUnknownOpcode = errors.New("classfile: unknown opcode")
)

// PoolIndexError reports a constant pool reference outside the table,
// including the mandatory-reference index 0.
type PoolIndexError struct {
	Index uint16
	Size  int
}

func (e *PoolIndexError) Error() string {
	return fmt.Sprintf("constant pool index %d out of range (pool size %d)", e.Index, e.Size)
}

func (e *PoolIndexError) Unwrap() error { return ErrMalformedPool }

// PoolKindError reports a constant pool entry that resolved to a
// different kind than its use site requires.
type PoolKindError struct {
	Index uint16
	Want  TagKind
	Got   TagKind
}

func (e *PoolKindError) Error() string {
	return fmt.Sprintf("constant pool index %d: expected %s, got %s", e.Index, e.Want, e.Got)
}

func (e *PoolKindError) Unwrap() error { return ErrMalformedPool }
