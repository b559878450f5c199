package classfile

import (
	"errors"
	"fmt"

	"github.com/wippyai/classfile-runtime/classfile/internal/binary"
)

// ErrMalformedCode is returned for structurally invalid instruction
// operands, such as inverted tableswitch bounds.
var ErrMalformedCode = errors.New("classfile: malformed code")

// Instruction is a decoded bytecode instruction: the canonical opcode,
// the code offset it was decoded at and the typed immediate, if any.
// Compressed alias opcodes (aload_0 and friends, ldc_w) are
// normalized during decoding; the alias byte is not preserved.
type Instruction struct {
	PC     int
	Opcode byte
	Imm    any
}

// LocalImm holds the local variable slot for the load/store families,
// ret and their wide forms.
type LocalImm struct {
	Slot uint16
}

// IincImm holds the slot and signed delta for iinc and wide iinc.
type IincImm struct {
	Slot  uint16
	Delta int16
}

// PushImm holds the sign-extended immediate for bipush and sipush.
type PushImm struct {
	Value int32
}

// BranchImm holds the signed 16-bit branch offset of the conditional
// branches, goto and jsr.
type BranchImm struct {
	Offset int16
}

// BranchWideImm holds the signed 32-bit offset of goto_w and jsr_w.
type BranchWideImm struct {
	Offset int32
}

// ConstantImm holds the resolved loadable constant for the ldc family.
type ConstantImm struct {
	Index uint16
	Entry Entry
}

// FieldImm holds the resolved field reference for the get/put field
// and static instructions.
type FieldImm struct {
	Index uint16
	Field FieldRefEntry
}

// MethodImm holds the resolved method reference for invokevirtual,
// invokespecial and invokestatic.
type MethodImm struct {
	Index  uint16
	Method MethodRefEntry
}

// InterfaceMethodImm holds the resolved interface method reference and
// the historical count operand of invokeinterface.
type InterfaceMethodImm struct {
	Index  uint16
	Method InterfaceMethodRefEntry
	Count  uint8
}

// InvokeDynamicImm holds the resolved call site for invokedynamic.
type InvokeDynamicImm struct {
	Index uint16
	Site  InvokeDynamicEntry
}

// ClassImm holds the resolved class reference for new, anewarray,
// checkcast and instanceof.
type ClassImm struct {
	Index uint16
	Class ClassRef
}

// NewArrayImm holds the primitive array type code for newarray.
type NewArrayImm struct {
	AType uint8
}

// MultiNewArrayImm holds the resolved element class and dimension
// count for multianewarray.
type MultiNewArrayImm struct {
	Index uint16
	Class ClassRef
	Dims  uint8
}

// TableSwitchImm holds the bounds and jump table of tableswitch.
// Offsets[i] is the branch offset taken for index Low+i.
type TableSwitchImm struct {
	Default int32
	Low     int32
	High    int32
	Offsets []int32
}

// MatchOffset is one match/offset pair of a lookupswitch.
type MatchOffset struct {
	Match  int32
	Offset int32
}

// LookupSwitchImm holds the sorted match/offset pairs of lookupswitch.
type LookupSwitchImm struct {
	Default int32
	Pairs   []MatchOffset
}

// DecodeInstructions decodes a Code attribute's bytecode region into
// an ordered instruction sequence, resolving pool operands through the
// given pool. Every opcode byte either decodes into a correctly shaped
// instruction or fails with a typed error; the reserved breakpoint and
// impdep opcodes fail with ErrUnknownOpcode like unassigned bytes.
func DecodeInstructions(pool *ConstantPool, code []byte) ([]Instruction, error) {
	r := binary.NewReader(code)
	instrs := make([]Instruction, 0, len(code)/2)

	for r.Remaining() > 0 {
		pc := r.Position()
		op, err := r.ReadByte()
		if err != nil {
			return nil, err
		}

		in := Instruction{PC: pc, Opcode: op}

		switch op {
		// Instructions with no operands.
		case OpNop, OpAconstNull,
			OpIconstM1, OpIconst0, OpIconst1, OpIconst2, OpIconst3, OpIconst4, OpIconst5,
			OpLconst0, OpLconst1, OpFconst0, OpFconst1, OpFconst2, OpDconst0, OpDconst1,
			OpIaload, OpLaload, OpFaload, OpDaload, OpAaload, OpBaload, OpCaload, OpSaload,
			OpIastore, OpLastore, OpFastore, OpDastore, OpAastore, OpBastore, OpCastore, OpSastore,
			OpPop, OpPop2, OpDup, OpDupX1, OpDupX2, OpDup2, OpDup2X1, OpDup2X2, OpSwap,
			OpIadd, OpLadd, OpFadd, OpDadd, OpIsub, OpLsub, OpFsub, OpDsub,
			OpImul, OpLmul, OpFmul, OpDmul, OpIdiv, OpLdiv, OpFdiv, OpDdiv,
			OpIrem, OpLrem, OpFrem, OpDrem, OpIneg, OpLneg, OpFneg, OpDneg,
			OpIshl, OpLshl, OpIshr, OpLshr, OpIushr, OpLushr,
			OpIand, OpLand, OpIor, OpLor, OpIxor, OpLxor,
			OpI2l, OpI2f, OpI2d, OpL2i, OpL2f, OpL2d, OpF2i, OpF2l, OpF2d,
			OpD2i, OpD2l, OpD2f, OpI2b, OpI2c, OpI2s,
			OpLcmp, OpFcmpl, OpFcmpg, OpDcmpl, OpDcmpg,
			OpIreturn, OpLreturn, OpFreturn, OpDreturn, OpAreturn, OpReturn,
			OpArraylength, OpAthrow, OpMonitorenter, OpMonitorexit:
			// No operand.

		case OpBipush:
			v, err := r.ReadI8()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			in.Imm = PushImm{Value: int32(v)}

		case OpSipush:
			v, err := r.ReadI16()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			in.Imm = PushImm{Value: int32(v)}

		case OpLdc:
			idx, err := r.ReadByte()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			imm, err := loadableImm(pool, uint16(idx), false)
			if err != nil {
				return nil, err
			}
			in.Imm = imm

		case OpLdcW:
			idx, err := r.ReadU16()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			imm, err := loadableImm(pool, idx, false)
			if err != nil {
				return nil, err
			}
			in.Opcode = OpLdc
			in.Imm = imm

		case OpLdc2W:
			idx, err := r.ReadU16()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			imm, err := loadableImm(pool, idx, true)
			if err != nil {
				return nil, err
			}
			in.Imm = imm

		case OpIload, OpLload, OpFload, OpDload, OpAload,
			OpIstore, OpLstore, OpFstore, OpDstore, OpAstore, OpRet:
			slot, err := r.ReadByte()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			in.Imm = LocalImm{Slot: uint16(slot)}

		// Compressed load forms: four aliases per family, slot baked
		// into the opcode. Normalized onto the canonical opcode.
		case OpIload0, OpIload1, OpIload2, OpIload3,
			OpLload0, OpLload1, OpLload2, OpLload3,
			OpFload0, OpFload1, OpFload2, OpFload3,
			OpDload0, OpDload1, OpDload2, OpDload3,
			OpAload0, OpAload1, OpAload2, OpAload3:
			in.Opcode = OpIload + (op-OpIload0)/4
			in.Imm = LocalImm{Slot: uint16((op - OpIload0) % 4)}

		case OpIstore0, OpIstore1, OpIstore2, OpIstore3,
			OpLstore0, OpLstore1, OpLstore2, OpLstore3,
			OpFstore0, OpFstore1, OpFstore2, OpFstore3,
			OpDstore0, OpDstore1, OpDstore2, OpDstore3,
			OpAstore0, OpAstore1, OpAstore2, OpAstore3:
			in.Opcode = OpIstore + (op-OpIstore0)/4
			in.Imm = LocalImm{Slot: uint16((op - OpIstore0) % 4)}

		case OpIinc:
			slot, err := r.ReadByte()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			delta, err := r.ReadI8()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			in.Imm = IincImm{Slot: uint16(slot), Delta: int16(delta)}

		case OpIfeq, OpIfne, OpIflt, OpIfge, OpIfgt, OpIfle,
			OpIfIcmpeq, OpIfIcmpne, OpIfIcmplt, OpIfIcmpge, OpIfIcmpgt, OpIfIcmple,
			OpIfAcmpeq, OpIfAcmpne, OpIfnull, OpIfnonnull, OpGoto, OpJsr:
			off, err := r.ReadI16()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			in.Imm = BranchImm{Offset: off}

		case OpGotoW, OpJsrW:
			off, err := r.ReadI32()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			in.Imm = BranchWideImm{Offset: off}

		case OpTableswitch:
			imm, err := decodeTableSwitch(r, pc)
			if err != nil {
				return nil, err
			}
			in.Imm = imm

		case OpLookupswitch:
			imm, err := decodeLookupSwitch(r, pc)
			if err != nil {
				return nil, err
			}
			in.Imm = imm

		case OpGetstatic, OpPutstatic, OpGetfield, OpPutfield:
			idx, err := r.ReadU16()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			field, err := pool.FieldRefAt(idx)
			if err != nil {
				return nil, err
			}
			in.Imm = FieldImm{Index: idx, Field: field}

		case OpInvokevirtual, OpInvokespecial, OpInvokestatic:
			idx, err := r.ReadU16()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			method, err := pool.MethodRefAt(idx)
			if err != nil {
				return nil, err
			}
			in.Imm = MethodImm{Index: idx, Method: method}

		case OpInvokeinterface:
			idx, err := r.ReadU16()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			method, err := pool.InterfaceMethodRefAt(idx)
			if err != nil {
				return nil, err
			}
			count, err := r.ReadByte()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			// Mandated zero padding byte.
			if _, err := r.ReadByte(); err != nil {
				return nil, operandErr(pc, op, err)
			}
			in.Imm = InterfaceMethodImm{Index: idx, Method: method, Count: count}

		case OpInvokedynamic:
			idx, err := r.ReadU16()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			site, err := pool.InvokeDynamicAt(idx)
			if err != nil {
				return nil, err
			}
			// Two mandated zero bytes.
			if err := r.Skip(2); err != nil {
				return nil, operandErr(pc, op, err)
			}
			in.Imm = InvokeDynamicImm{Index: idx, Site: site}

		case OpNew, OpAnewarray, OpCheckcast, OpInstanceof:
			idx, err := r.ReadU16()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			class, err := pool.ClassAt(idx)
			if err != nil {
				return nil, err
			}
			in.Imm = ClassImm{Index: idx, Class: class}

		case OpNewarray:
			atype, err := r.ReadByte()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			if atype < ArrayTypeBoolean || atype > ArrayTypeLong {
				return nil, fmt.Errorf("%w: invalid newarray type %d at pc %d", ErrMalformedCode, atype, pc)
			}
			in.Imm = NewArrayImm{AType: atype}

		case OpMultianewarray:
			idx, err := r.ReadU16()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			class, err := pool.ClassAt(idx)
			if err != nil {
				return nil, err
			}
			dims, err := r.ReadByte()
			if err != nil {
				return nil, operandErr(pc, op, err)
			}
			if dims == 0 {
				return nil, fmt.Errorf("%w: multianewarray with zero dimensions at pc %d", ErrMalformedCode, pc)
			}
			in.Imm = MultiNewArrayImm{Index: idx, Class: class, Dims: dims}

		case OpWide:
			wideIn, err := decodeWide(r, pc)
			if err != nil {
				return nil, err
			}
			in = wideIn

		default:
			return nil, fmt.Errorf("%w: 0x%02X at pc %d", ErrUnknownOpcode, op, pc)
		}

		instrs = append(instrs, in)
	}

	return instrs, nil
}

// loadableImm resolves the ldc family operand. wide selects the
// ldc2_w half of the loadable kinds (Long/Double) versus the rest.
func loadableImm(pool *ConstantPool, idx uint16, wide bool) (ConstantImm, error) {
	e, err := pool.LoadableAt(idx)
	if err != nil {
		return ConstantImm{}, err
	}
	twoSlot := e.Tag() == TagLong || e.Tag() == TagDouble
	if twoSlot != wide {
		return ConstantImm{}, fmt.Errorf("%w: index %d: %s not loadable by this ldc form", ErrMalformedPool, idx, e.Tag())
	}
	return ConstantImm{Index: idx, Entry: e}, nil
}

// decodeTableSwitch reads the aligned tableswitch operands. The
// operands start at the next 4-byte boundary relative to code start.
func decodeTableSwitch(r *binary.Reader, pc int) (TableSwitchImm, error) {
	if err := r.Skip(switchPadding(pc)); err != nil {
		return TableSwitchImm{}, operandErr(pc, OpTableswitch, err)
	}
	def, err := r.ReadI32()
	if err != nil {
		return TableSwitchImm{}, operandErr(pc, OpTableswitch, err)
	}
	low, err := r.ReadI32()
	if err != nil {
		return TableSwitchImm{}, operandErr(pc, OpTableswitch, err)
	}
	high, err := r.ReadI32()
	if err != nil {
		return TableSwitchImm{}, operandErr(pc, OpTableswitch, err)
	}
	if low > high {
		return TableSwitchImm{}, fmt.Errorf("%w: tableswitch bounds %d..%d at pc %d", ErrMalformedCode, low, high, pc)
	}
	n := int(high) - int(low) + 1
	if n > r.Remaining()/4 {
		return TableSwitchImm{}, operandErr(pc, OpTableswitch, binary.ErrUnexpectedEnd)
	}
	offsets := make([]int32, n)
	for i := range offsets {
		offsets[i], err = r.ReadI32()
		if err != nil {
			return TableSwitchImm{}, operandErr(pc, OpTableswitch, err)
		}
	}
	return TableSwitchImm{Default: def, Low: low, High: high, Offsets: offsets}, nil
}

// decodeLookupSwitch reads the aligned lookupswitch operands.
func decodeLookupSwitch(r *binary.Reader, pc int) (LookupSwitchImm, error) {
	if err := r.Skip(switchPadding(pc)); err != nil {
		return LookupSwitchImm{}, operandErr(pc, OpLookupswitch, err)
	}
	def, err := r.ReadI32()
	if err != nil {
		return LookupSwitchImm{}, operandErr(pc, OpLookupswitch, err)
	}
	npairs, err := r.ReadI32()
	if err != nil {
		return LookupSwitchImm{}, operandErr(pc, OpLookupswitch, err)
	}
	if npairs < 0 {
		return LookupSwitchImm{}, fmt.Errorf("%w: lookupswitch npairs %d at pc %d", ErrMalformedCode, npairs, pc)
	}
	if int(npairs) > r.Remaining()/8 {
		return LookupSwitchImm{}, operandErr(pc, OpLookupswitch, binary.ErrUnexpectedEnd)
	}
	pairs := make([]MatchOffset, npairs)
	for i := range pairs {
		match, err := r.ReadI32()
		if err != nil {
			return LookupSwitchImm{}, operandErr(pc, OpLookupswitch, err)
		}
		offset, err := r.ReadI32()
		if err != nil {
			return LookupSwitchImm{}, operandErr(pc, OpLookupswitch, err)
		}
		pairs[i] = MatchOffset{Match: match, Offset: offset}
	}
	return LookupSwitchImm{Default: def, Pairs: pairs}, nil
}

// decodeWide reads a wide-prefixed instruction: 16-bit slots for the
// load/store families and ret, 16-bit slot plus 16-bit delta for iinc.
func decodeWide(r *binary.Reader, pc int) (Instruction, error) {
	sub, err := r.ReadByte()
	if err != nil {
		return Instruction{}, operandErr(pc, OpWide, err)
	}
	switch sub {
	case OpIload, OpLload, OpFload, OpDload, OpAload,
		OpIstore, OpLstore, OpFstore, OpDstore, OpAstore, OpRet:
		slot, err := r.ReadU16()
		if err != nil {
			return Instruction{}, operandErr(pc, sub, err)
		}
		return Instruction{PC: pc, Opcode: sub, Imm: LocalImm{Slot: slot}}, nil
	case OpIinc:
		slot, err := r.ReadU16()
		if err != nil {
			return Instruction{}, operandErr(pc, sub, err)
		}
		delta, err := r.ReadI16()
		if err != nil {
			return Instruction{}, operandErr(pc, sub, err)
		}
		return Instruction{PC: pc, Opcode: OpIinc, Imm: IincImm{Slot: slot, Delta: delta}}, nil
	default:
		return Instruction{}, fmt.Errorf("%w: wide prefix on 0x%02X at pc %d", ErrUnknownOpcode, sub, pc)
	}
}

// switchPadding returns the number of padding bytes between a switch
// opcode at pc and its first 4-byte-aligned operand.
func switchPadding(pc int) int {
	return (4 - (pc+1)%4) % 4
}

func operandErr(pc int, op byte, err error) error {
	if errors.Is(err, binary.ErrUnexpectedEnd) {
		return fmt.Errorf("%w: opcode 0x%02X at pc %d", ErrTruncatedOperand, op, pc)
	}
	return err
}
