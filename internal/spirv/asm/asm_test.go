package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spvdecomp/internal/spirv"
)

const counterSrc = `; Version: 1.3
               OpCapability Shader
               OpMemoryModel Logical GLSL450
               OpName %main "main"      ; entry
               OpName %counter "counter"
       %void = OpTypeVoid
       %fnty = OpTypeFunction %void
        %u32 = OpTypeInt 32 0
        %ptr = OpTypePointer Function %u32
       %five = OpConstant %u32 5
       %main = OpFunction %void None %fnty
      %entry = OpLabel
    %counter = OpVariable %ptr Function
          %x = OpLoad %u32 %counter
          %y = OpIAdd %u32 %x %five
               OpStore %counter %y
               OpReturn
               OpFunctionEnd
`

func TestAssembleNamedIDs(t *testing.T) {
	s, err := AssembleString("counter.spvasm", counterSrc)
	require.NoError(t, err)

	assert.Equal(t, spirv.MakeVersion(1, 3), s.Header.Version)
	require.Len(t, s.Instructions, 17)

	// %main, %counter, %void, ... numbered in order of first appearance.
	name := s.Instructions[2]
	assert.Equal(t, spirv.OpName, name.Op)
	assert.Equal(t, uint32(1), name.Operands[0].ID)
	assert.Equal(t, "main", name.Operands[1].Str)

	add := s.Instructions[13]
	assert.Equal(t, spirv.OpIAdd, add.Op)
	assert.Equal(t, uint32(10), add.Result)
	assert.Equal(t, uint32(5), add.ResultType)
	assert.Equal(t, []spirv.Operand{spirv.IDRef(9), spirv.IDRef(7)}, add.Operands)

	fn := s.Instructions[9]
	assert.Equal(t, spirv.OpFunction, fn.Op)
	assert.Equal(t, "None", fn.Operands[0].String())

	assert.Equal(t, uint32(11), s.Header.Bound)
}

func TestAssembleNumericIDsKeepNumbers(t *testing.T) {
	s, err := AssembleString("n", `
%7 = OpTypeInt 32 1
%a = OpConstant %7 -1
%3 = OpTypeFloat 64
%b = OpConstant %3 2.5e3
`)
	require.NoError(t, err)
	require.Len(t, s.Instructions, 4)

	assert.Equal(t, uint32(7), s.Instructions[0].Result)
	assert.Equal(t, uint32(8), s.Instructions[1].Result)
	assert.Equal(t, spirv.LiteralInt(0xffffffff), s.Instructions[1].Operands[0])
	assert.Equal(t, uint32(3), s.Instructions[2].Result)
	assert.Equal(t, spirv.LiteralFloat64(2500), s.Instructions[3].Operands[0])
}

func TestAssembleDisassembleRoundTrip(t *testing.T) {
	first, err := AssembleString("a", counterSrc)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, Disassemble(&sb, first))
	assert.Contains(t, sb.String(), "%10 = OpIAdd %5 %9 %7")

	second, err := AssembleString("b", sb.String())
	require.NoError(t, err)
	assert.Equal(t, first.Header.Version, second.Header.Version)
	assert.Equal(t, first.Instructions, second.Instructions)
}

func TestAssembleBinaryRoundTrip(t *testing.T) {
	s, err := AssembleString("a", counterSrc)
	require.NoError(t, err)

	bin, err := spirv.Encode(s)
	require.NoError(t, err)
	back, err := spirv.Decode(bin)
	require.NoError(t, err)

	require.Len(t, back.Instructions, len(s.Instructions))
	for i := range s.Instructions {
		assert.Equal(t, s.Instructions[i].String(), back.Instructions[i].String(), "instruction %d", i)
	}
}

func TestAssembleErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"unknown opcode", "OpFrobnicate %1", "unknown opcode OpFrobnicate"},
		{"missing result", "OpTypeVoid", "needs a result id"},
		{"stray result", "%1 = OpReturn", "has no result id"},
		{"extra operand", "OpReturnValue %1 %2", "unexpected operand %2"},
		{"bad enum", "OpCapability Teleport", "unknown Capability"},
		{"non-numeric constant", "%v = OpTypeVoid\n%c = OpConstant %v 1", "not a numeric type"},
		{"f16 overflow", "%h = OpTypeFloat 16\n%c = OpConstant %h 70000", "overflows f16"},
		{"syntax", "%1 = = OpTypeVoid", "n:1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AssembleString("n", tc.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestAssembleHalfFloatAndRawOperands(t *testing.T) {
	s, err := AssembleString("n", `
%h   = OpTypeFloat 16
%c   = OpConstant %h -0.5
%img = OpTypeImage %h 1 0 0 0 1 0
%si  = OpTypeSampledImage %img
%r   = OpImageSampleImplicitLod %h %si %c 1 %c
`)
	require.NoError(t, err)
	require.Len(t, s.Instructions, 5)

	c := s.Instructions[1].Operands[0]
	assert.Equal(t, spirv.OperandLiteralFloat16, c.Kind)
	assert.Equal(t, "-0.5", c.String())

	sample := s.Instructions[4]
	assert.Equal(t, uint32(5), sample.Result)
	assert.Equal(t, []spirv.Operand{
		spirv.IDRef(4), spirv.IDRef(2), spirv.LiteralInt(1), spirv.IDRef(2),
	}, sample.Operands)
}

func TestStripComment(t *testing.T) {
	assert.Equal(t, `OpName %1 "a;b"`, stripComment(`OpName %1 "a;b" ; trailing`))
	assert.Equal(t, "", stripComment("; whole line"))
	assert.Equal(t, "OpNop", stripComment("OpNop"))
}
