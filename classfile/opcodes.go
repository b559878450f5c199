package classfile

// JVM opcodes. The compressed alias forms of the load/store families
// and ldc_w are listed too; the decoder normalizes them onto the
// canonical opcode.
const (
	OpNop             byte = 0x00
	OpAconstNull      byte = 0x01
	OpIconstM1        byte = 0x02
	OpIconst0         byte = 0x03
	OpIconst1         byte = 0x04
	OpIconst2         byte = 0x05
	OpIconst3         byte = 0x06
	OpIconst4         byte = 0x07
	OpIconst5         byte = 0x08
	OpLconst0         byte = 0x09
	OpLconst1         byte = 0x0A
	OpFconst0         byte = 0x0B
	OpFconst1         byte = 0x0C
	OpFconst2         byte = 0x0D
	OpDconst0         byte = 0x0E
	OpDconst1         byte = 0x0F
	OpBipush          byte = 0x10
	OpSipush          byte = 0x11
	OpLdc             byte = 0x12
	OpLdcW            byte = 0x13
	OpLdc2W           byte = 0x14
	OpIload           byte = 0x15
	OpLload           byte = 0x16
	OpFload           byte = 0x17
	OpDload           byte = 0x18
	OpAload           byte = 0x19
	OpIload0          byte = 0x1A
	OpIload1          byte = 0x1B
	OpIload2          byte = 0x1C
	OpIload3          byte = 0x1D
	OpLload0          byte = 0x1E
	OpLload1          byte = 0x1F
	OpLload2          byte = 0x20
	OpLload3          byte = 0x21
	OpFload0          byte = 0x22
	OpFload1          byte = 0x23
	OpFload2          byte = 0x24
	OpFload3          byte = 0x25
	OpDload0          byte = 0x26
	OpDload1          byte = 0x27
	OpDload2          byte = 0x28
	OpDload3          byte = 0x29
	OpAload0          byte = 0x2A
	OpAload1          byte = 0x2B
	OpAload2          byte = 0x2C
	OpAload3          byte = 0x2D
	OpIaload          byte = 0x2E
	OpLaload          byte = 0x2F
	OpFaload          byte = 0x30
	OpDaload          byte = 0x31
	OpAaload          byte = 0x32
	OpBaload          byte = 0x33
	OpCaload          byte = 0x34
	OpSaload          byte = 0x35
	OpIstore          byte = 0x36
	OpLstore          byte = 0x37
	OpFstore          byte = 0x38
	OpDstore          byte = 0x39
	OpAstore          byte = 0x3A
	OpIstore0         byte = 0x3B
	OpIstore1         byte = 0x3C
	OpIstore2         byte = 0x3D
	OpIstore3         byte = 0x3E
	OpLstore0         byte = 0x3F
	OpLstore1         byte = 0x40
	OpLstore2         byte = 0x41
	OpLstore3         byte = 0x42
	OpFstore0         byte = 0x43
	OpFstore1         byte = 0x44
	OpFstore2         byte = 0x45
	OpFstore3         byte = 0x46
	OpDstore0         byte = 0x47
	OpDstore1         byte = 0x48
	OpDstore2         byte = 0x49
	OpDstore3         byte = 0x4A
	OpAstore0         byte = 0x4B
	OpAstore1         byte = 0x4C
	OpAstore2         byte = 0x4D
	OpAstore3         byte = 0x4E
	OpIastore         byte = 0x4F
	OpLastore         byte = 0x50
	OpFastore         byte = 0x51
	OpDastore         byte = 0x52
	OpAastore         byte = 0x53
	OpBastore         byte = 0x54
	OpCastore         byte = 0x55
	OpSastore         byte = 0x56
	OpPop             byte = 0x57
	OpPop2            byte = 0x58
	OpDup             byte = 0x59
	OpDupX1           byte = 0x5A
	OpDupX2           byte = 0x5B
	OpDup2            byte = 0x5C
	OpDup2X1          byte = 0x5D
	OpDup2X2          byte = 0x5E
	OpSwap            byte = 0x5F
	OpIadd            byte = 0x60
	OpLadd            byte = 0x61
	OpFadd            byte = 0x62
	OpDadd            byte = 0x63
	OpIsub            byte = 0x64
	OpLsub            byte = 0x65
	OpFsub            byte = 0x66
	OpDsub            byte = 0x67
	OpImul            byte = 0x68
	OpLmul            byte = 0x69
	OpFmul            byte = 0x6A
	OpDmul            byte = 0x6B
	OpIdiv            byte = 0x6C
	OpLdiv            byte = 0x6D
	OpFdiv            byte = 0x6E
	OpDdiv            byte = 0x6F
	OpIrem            byte = 0x70
	OpLrem            byte = 0x71
	OpFrem            byte = 0x72
	OpDrem            byte = 0x73
	OpIneg            byte = 0x74
	OpLneg            byte = 0x75
	OpFneg            byte = 0x76
	OpDneg            byte = 0x77
	OpIshl            byte = 0x78
	OpLshl            byte = 0x79
	OpIshr            byte = 0x7A
	OpLshr            byte = 0x7B
	OpIushr           byte = 0x7C
	OpLushr           byte = 0x7D
	OpIand            byte = 0x7E
	OpLand            byte = 0x7F
	OpIor             byte = 0x80
	OpLor             byte = 0x81
	OpIxor            byte = 0x82
	OpLxor            byte = 0x83
	OpIinc            byte = 0x84
	OpI2l             byte = 0x85
	OpI2f             byte = 0x86
	OpI2d             byte = 0x87
	OpL2i             byte = 0x88
	OpL2f             byte = 0x89
	OpL2d             byte = 0x8A
	OpF2i             byte = 0x8B
	OpF2l             byte = 0x8C
	OpF2d             byte = 0x8D
	OpD2i             byte = 0x8E
	OpD2l             byte = 0x8F
	OpD2f             byte = 0x90
	OpI2b             byte = 0x91
	OpI2c             byte = 0x92
	OpI2s             byte = 0x93
	OpLcmp            byte = 0x94
	OpFcmpl           byte = 0x95
	OpFcmpg           byte = 0x96
	OpDcmpl           byte = 0x97
	OpDcmpg           byte = 0x98
	OpIfeq            byte = 0x99
	OpIfne            byte = 0x9A
	OpIflt            byte = 0x9B
	OpIfge            byte = 0x9C
	OpIfgt            byte = 0x9D
	OpIfle            byte = 0x9E
	OpIfIcmpeq        byte = 0x9F
	OpIfIcmpne        byte = 0xA0
	OpIfIcmplt        byte = 0xA1
	OpIfIcmpge        byte = 0xA2
	OpIfIcmpgt        byte = 0xA3
	OpIfIcmple        byte = 0xA4
	OpIfAcmpeq        byte = 0xA5
	OpIfAcmpne        byte = 0xA6
	OpGoto            byte = 0xA7
	OpJsr             byte = 0xA8
	OpRet             byte = 0xA9
	OpTableswitch     byte = 0xAA
	OpLookupswitch    byte = 0xAB
	OpIreturn         byte = 0xAC
	OpLreturn         byte = 0xAD
	OpFreturn         byte = 0xAE
	OpDreturn         byte = 0xAF
	OpAreturn         byte = 0xB0
	OpReturn          byte = 0xB1
	OpGetstatic       byte = 0xB2
	OpPutstatic       byte = 0xB3
	OpGetfield        byte = 0xB4
	OpPutfield        byte = 0xB5
	OpInvokevirtual   byte = 0xB6
	OpInvokespecial   byte = 0xB7
	OpInvokestatic    byte = 0xB8
	OpInvokeinterface byte = 0xB9
	OpInvokedynamic   byte = 0xBA
	OpNew             byte = 0xBB
	OpNewarray        byte = 0xBC
	OpAnewarray       byte = 0xBD
	OpArraylength     byte = 0xBE
	OpAthrow          byte = 0xBF
	OpCheckcast       byte = 0xC0
	OpInstanceof      byte = 0xC1
	OpMonitorenter    byte = 0xC2
	OpMonitorexit     byte = 0xC3
	OpWide            byte = 0xC4
	OpMultianewarray  byte = 0xC5
	OpIfnull          byte = 0xC6
	OpIfnonnull       byte = 0xC7
	OpGotoW           byte = 0xC8
	OpJsrW            byte = 0xC9
)

// Array type codes for the newarray instruction.
const (
	ArrayTypeBoolean uint8 = 4
	ArrayTypeChar    uint8 = 5
	ArrayTypeFloat   uint8 = 6
	ArrayTypeDouble  uint8 = 7
	ArrayTypeByte    uint8 = 8
	ArrayTypeShort   uint8 = 9
	ArrayTypeInt     uint8 = 10
	ArrayTypeLong    uint8 = 11
)
