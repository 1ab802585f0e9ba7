package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Decoder
	DecInfo            Code = 1000
	DecBadMagic        Code = 1001
	DecTruncated       Code = 1002
	DecMalformed       Code = 1003
	DecUnknownOpcode   Code = 1004
	DecAssemblerSyntax Code = 1005

	// Module structure
	BldInfo                 Code = 2000
	BldNestedFunction       Code = 2001
	BldStrayFunctionEnd     Code = 2002
	BldInstrOutsideBlock    Code = 2003
	BldUnterminatedFunction Code = 2004
	BldDuplicateResult      Code = 2005
	BldDuplicateHeader      Code = 2006
	BldUnsupportedParameter Code = 2007
	BldFinished             Code = 2008

	// Type, constant and reference resolution
	ResInfo                Code = 3000
	ResMissingID           Code = 3001
	ResTypeMismatch        Code = 3002
	ResUnexpectedStorage   Code = 3003
	ResCyclicType          Code = 3004
	ResStructuralViolation Code = 3005

	// Lowering placeholders
	LowInfo                 Code = 4000
	LowUnhandledInstruction Code = 4001
	LowUnhandledType        Code = 4002
	LowUnhandledOperand     Code = 4003
	LowUnhandledOpcode      Code = 4004
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		DecInfo:                 "Decoder information",
		DecBadMagic:             "Not a SPIR-V module",
		DecTruncated:            "Truncated module",
		DecMalformed:            "Malformed instruction",
		DecUnknownOpcode:        "Opcode outside the operand grammar",
		DecAssemblerSyntax:      "Assembler syntax error",
		BldInfo:                 "Module structure information",
		BldNestedFunction:       "Function opened inside another function",
		BldStrayFunctionEnd:     "Function end without an open function",
		BldInstrOutsideBlock:    "Instruction before the first label",
		BldUnterminatedFunction: "Function is never closed",
		BldDuplicateResult:      "Result id defined twice",
		BldDuplicateHeader:      "Module header delivered twice",
		BldUnsupportedParameter: "Function parameter is not modeled",
		BldFinished:             "Builder already finished",
		ResInfo:                 "Resolution information",
		ResMissingID:            "Reference to an undefined id",
		ResTypeMismatch:         "Id has an unexpected kind",
		ResUnexpectedStorage:    "Unexpected storage class",
		ResCyclicType:           "Type refers to itself",
		ResStructuralViolation:  "Structural violation",
		LowInfo:                 "Lowering information",
		LowUnhandledInstruction: "Instruction has no lowering",
		LowUnhandledType:        "Type has no rendering",
		LowUnhandledOperand:     "Operand has no rendering",
		LowUnhandledOpcode:      "Value has no rendering",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DEC%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("BLD%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LOW%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
