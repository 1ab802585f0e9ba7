package spirv

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/x448/float16"
)

// OperandKind distinguishes operand shapes.
type OperandKind uint8

const (
	// OperandIDRef references the result of another instruction.
	OperandIDRef OperandKind = iota
	// OperandLiteralInt32 is a single-word integer literal.
	OperandLiteralInt32
	// OperandLiteralInt64 is a two-word integer literal (low word first).
	OperandLiteralInt64
	// OperandLiteralFloat32 is a single-word float literal, stored as bits.
	OperandLiteralFloat32
	// OperandLiteralFloat64 is a two-word float literal, stored as bits.
	OperandLiteralFloat64
	// OperandLiteralString is a nul-terminated UTF-8 literal.
	OperandLiteralString
	// OperandEnum is a value of one of the operand enumerations.
	OperandEnum
	// OperandLiteralFloat16 is a half-precision float literal in the low
	// 16 bits of one word.
	OperandLiteralFloat16
)

func (k OperandKind) String() string {
	switch k {
	case OperandIDRef:
		return "IdRef"
	case OperandLiteralInt32:
		return "LiteralInt32"
	case OperandLiteralInt64:
		return "LiteralInt64"
	case OperandLiteralFloat32:
		return "LiteralFloat32"
	case OperandLiteralFloat64:
		return "LiteralFloat64"
	case OperandLiteralString:
		return "LiteralString"
	case OperandEnum:
		return "Enum"
	case OperandLiteralFloat16:
		return "LiteralFloat16"
	}
	return "Operand(" + strconv.Itoa(int(k)) + ")"
}

// Operand is one tagged instruction operand.
type Operand struct {
	Kind OperandKind
	Enum EnumKind

	// ID is set for OperandIDRef.
	ID uint32
	// Bits holds literal integers, float bit patterns and enum values.
	Bits uint64
	// Str is set for OperandLiteralString.
	Str string
}

// IDRef builds an id operand.
func IDRef(id uint32) Operand { return Operand{Kind: OperandIDRef, ID: id} }

// LiteralInt builds a single-word literal operand.
func LiteralInt(v uint32) Operand { return Operand{Kind: OperandLiteralInt32, Bits: uint64(v)} }

// LiteralInt64 builds a two-word literal operand.
func LiteralInt64(v uint64) Operand { return Operand{Kind: OperandLiteralInt64, Bits: v} }

// LiteralFloat16 builds a half-precision float literal operand.
func LiteralFloat16(f float32) Operand {
	return Operand{Kind: OperandLiteralFloat16, Bits: uint64(float16.Fromfloat32(f).Bits())}
}

// Float returns the value of a float literal operand.
func (o Operand) Float() (float64, bool) {
	switch o.Kind {
	case OperandLiteralFloat16:
		return float64(float16.Frombits(uint16(o.Bits)).Float32()), true
	case OperandLiteralFloat32:
		return float64(math.Float32frombits(uint32(o.Bits))), true
	case OperandLiteralFloat64:
		return math.Float64frombits(o.Bits), true
	}
	return 0, false
}

// LiteralFloat32 builds a single-word float literal operand.
func LiteralFloat32(f float32) Operand {
	return Operand{Kind: OperandLiteralFloat32, Bits: uint64(math.Float32bits(f))}
}

// LiteralFloat64 builds a two-word float literal operand.
func LiteralFloat64(f float64) Operand {
	return Operand{Kind: OperandLiteralFloat64, Bits: math.Float64bits(f)}
}

// LiteralString builds a string literal operand.
func LiteralString(s string) Operand { return Operand{Kind: OperandLiteralString, Str: s} }

// EnumValue builds an enum operand.
func EnumValue(kind EnumKind, v uint32) Operand {
	return Operand{Kind: OperandEnum, Enum: kind, Bits: uint64(v)}
}

// StorageClassOperand builds a storage class enum operand.
func StorageClassOperand(sc StorageClass) Operand {
	return EnumValue(EnumStorageClass, uint32(sc))
}

// IsID reports whether the operand references an id.
func (o Operand) IsID() bool { return o.Kind == OperandIDRef }

// StorageClass returns the operand as a storage class, if it is one.
func (o Operand) StorageClass() (StorageClass, bool) {
	if o.Kind != OperandEnum || o.Enum != EnumStorageClass {
		return 0, false
	}
	return StorageClass(o.Bits), true
}

// Words reports how many words the operand occupies in the binary form.
func (o Operand) Words() int {
	switch o.Kind {
	case OperandLiteralInt64, OperandLiteralFloat64:
		return 2
	case OperandLiteralString:
		return len(o.Str)/4 + 1
	default:
		return 1
	}
}

// String renders the operand in assembler syntax.
func (o Operand) String() string {
	switch o.Kind {
	case OperandIDRef:
		return "%" + strconv.FormatUint(uint64(o.ID), 10)
	case OperandLiteralInt32, OperandLiteralInt64:
		return strconv.FormatUint(o.Bits, 10)
	case OperandLiteralFloat16, OperandLiteralFloat32:
		f, _ := o.Float()
		return strconv.FormatFloat(f, 'g', -1, 32)
	case OperandLiteralFloat64:
		return strconv.FormatFloat(math.Float64frombits(o.Bits), 'g', -1, 64)
	case OperandLiteralString:
		return strconv.Quote(o.Str)
	case OperandEnum:
		return EnumName(o.Enum, uint32(o.Bits))
	}
	return fmt.Sprintf("<%s?>", o.Kind)
}

// Instruction is one decoded instruction record.
type Instruction struct {
	Op Op
	// ResultType and Result are zero when the opcode has none.
	ResultType uint32
	Result     uint32
	Operands   []Operand

	// Index is the ordinal of the instruction in its stream, Offset the word
	// offset of its first word in the binary (0 for assembled input).
	Index  uint32
	Offset uint32
}

// HasResult reports whether the instruction defines an id.
func (in *Instruction) HasResult() bool { return in.Result != 0 }

// HasResultType reports whether the instruction carries a result type id.
func (in *Instruction) HasResultType() bool { return in.ResultType != 0 }

// Operand returns the i-th operand and whether it exists.
func (in *Instruction) Operand(i int) (Operand, bool) {
	if i < 0 || i >= len(in.Operands) {
		return Operand{}, false
	}
	return in.Operands[i], true
}

// String renders the instruction in assembler syntax.
func (in *Instruction) String() string {
	var sb strings.Builder
	if in.Result != 0 {
		fmt.Fprintf(&sb, "%%%d = ", in.Result)
	}
	sb.WriteString(in.Op.String())
	if in.ResultType != 0 {
		fmt.Fprintf(&sb, " %%%d", in.ResultType)
	}
	for _, o := range in.Operands {
		sb.WriteByte(' ')
		sb.WriteString(o.String())
	}
	return sb.String()
}

// Magic is the SPIR-V magic number in host word order.
const Magic uint32 = 0x07230203

// Header is the five-word module header.
type Header struct {
	Magic     uint32
	Version   uint32
	Generator uint32
	Bound     uint32
	Schema    uint32
}

// VersionString renders the version word as "major.minor".
func (h Header) VersionString() string {
	return fmt.Sprintf("%d.%d", (h.Version>>16)&0xff, (h.Version>>8)&0xff)
}

func (h Header) String() string {
	return fmt.Sprintf("version %s generator 0x%08x bound %d", h.VersionString(), h.Generator, h.Bound)
}

// MakeVersion builds a version word.
func MakeVersion(major, minor uint8) uint32 {
	return uint32(major)<<16 | uint32(minor)<<8
}
