package decomp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spvdecomp/internal/diag"
	"spvdecomp/internal/spirv"
)

const twoFunctionsSrc = `
         OpName %f "first"
%void  = OpTypeVoid
%fnty  = OpTypeFunction %void
%u32   = OpTypeInt 32 0
%ptr   = OpTypePointer Function %u32
%f     = OpFunction %void None %fnty
%a     = OpLabel
%va    = OpVariable %ptr Function
         OpBranch %b
%b     = OpLabel
         OpReturn
         OpFunctionEnd
%g     = OpFunction %void None %fnty
%p     = OpFunctionParameter %u32
%c     = OpLabel
         OpReturn
         OpFunctionEnd
`

func TestBuilderStructure(t *testing.T) {
	m := mustBuild(t, twoFunctionsSrc, BuildOptions{})

	fns := m.Functions()
	require.Len(t, fns, 2)

	first := fns[0]
	assert.Equal(t, "first", m.Name(first.ID))
	require.Len(t, first.Blocks, 2)
	assert.Less(t, first.Blocks[0].Label, first.Blocks[1].Label)
	require.Len(t, first.Blocks[0].Instructions, 2)
	assert.Equal(t, spirv.OpVariable, first.Blocks[0].Instructions[0].Op)
	assert.Equal(t, spirv.OpBranch, first.Blocks[0].Instructions[1].Op)
	require.Len(t, first.Blocks[1].Instructions, 1)
	assert.Equal(t, spirv.OpReturn, first.Blocks[1].Instructions[0].Op)

	second := fns[1]
	require.Len(t, second.Blocks, 1)
	require.Len(t, second.Params, 1)
	assert.Empty(t, second.Blocks[0].Instructions[1:])
	assert.Equal(t, spirv.OpReturn, second.Blocks[0].Instructions[0].Op)

	// Parameters are indexed even though they are dropped from the blocks.
	param, ok := m.Lookup(second.Params[0])
	require.True(t, ok)
	assert.Equal(t, spirv.OpFunctionParameter, param.Op)

	diags := m.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diag.BldUnsupportedParameter, diags[0].Code)
	assert.Equal(t, diag.SevWarning, diags[0].Severity)
}

func TestBuilderIndexesEveryResult(t *testing.T) {
	s := assemble(t, twoFunctionsSrc)
	m, err := Build(s, BuildOptions{})
	require.NoError(t, err)

	for i := range s.Instructions {
		in := s.Instructions[i]
		if in.Result == 0 {
			continue
		}
		got, ok := m.Lookup(in.Result)
		require.True(t, ok, "%%%d is not indexed", in.Result)
		assert.Equal(t, in.Op, got.Op)
	}
	_, ok := m.Lookup(9999)
	assert.False(t, ok)
}

func TestBuilderStructuralViolations(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{
			name: "function end without function",
			src:  "OpFunctionEnd",
			code: diag.BldStrayFunctionEnd,
		},
		{
			name: "nested function",
			src: `%v = OpTypeVoid
%t = OpTypeFunction %v
%f = OpFunction %v None %t
%g = OpFunction %v None %t`,
			code: diag.BldNestedFunction,
		},
		{
			name: "instruction before label",
			src: `%v = OpTypeVoid
%t = OpTypeFunction %v
%f = OpFunction %v None %t
OpReturn`,
			code: diag.BldInstrOutsideBlock,
		},
		{
			name: "duplicate result",
			src: `%1 = OpTypeVoid
%1 = OpTypeBool`,
			code: diag.BldDuplicateResult,
		},
		{
			name: "unterminated function",
			src: `%v = OpTypeVoid
%t = OpTypeFunction %v
%f = OpFunction %v None %t
%l = OpLabel
OpReturn`,
			code: diag.BldUnterminatedFunction,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := buildErr(t, tc.src)
			assert.ErrorIs(t, err, ErrStructuralViolation)
			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, KindStructuralViolation, kind)

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tc.code, e.DiagCode())
		})
	}
}

func TestBuilderFinishTransfersOwnership(t *testing.T) {
	b := NewBuilder(BuildOptions{})
	require.NoError(t, b.OnHeader(spirv.Header{Magic: spirv.Magic}))
	assert.ErrorIs(t, b.OnHeader(spirv.Header{Magic: spirv.Magic}), ErrStructuralViolation)

	m, err := b.Finish()
	require.NoError(t, err)
	require.NotNil(t, m)

	_, err = b.Finish()
	assert.ErrorIs(t, err, ErrStructuralViolation)
	assert.ErrorIs(t, b.OnInstruction(spirv.Instruction{Op: spirv.OpNop}), ErrStructuralViolation)
	assert.ErrorIs(t, b.OnHeader(spirv.Header{}), ErrStructuralViolation)
}

func TestBuilderNames(t *testing.T) {
	src := "OpName %a \"cafe\u0301\"\n" + `
OpName %b "old"
OpName %b "new"
OpMemberName %s 1 "second"
%u = OpTypeInt 32 0
%s = OpTypeStruct %u %u
%a = OpTypeBool
%b = OpTypeVoid
`
	m := mustBuild(t, src, BuildOptions{})

	names := m.Names()
	require.Len(t, names, 2)
	a, ok := m.Lookup(names[0].ID)
	require.True(t, ok)
	assert.Equal(t, spirv.OpTypeBool, a.Op)
	assert.Equal(t, "caf\u00e9", names[0].Name, "names are NFC-normalized")
	assert.Equal(t, "new", names[1].Name, "last write wins")

	// %a=1 %b=2 %s=3 %u=4
	name, ok := m.MemberName(3, 1)
	assert.True(t, ok)
	assert.Equal(t, "second", name)
	_, ok = m.MemberName(3, 0)
	assert.False(t, ok)

	_, declared := m.DeclaredName(9999)
	assert.False(t, declared)
	assert.Equal(t, "id_9999", m.Name(9999))
}

func TestBuilderStructDeclarations(t *testing.T) {
	m := mustBuild(t, `
OpName %S "Light"
OpMemberName %S 0 "color"
OpMemberName %S 2 "count"
%u32 = OpTypeInt 32 0
%f32 = OpTypeFloat 32
%v3  = OpTypeVector %f32 3
%S   = OpTypeStruct %v3 %f32 %u32
%rt  = OpTypeRuntimeArray %S
%B   = OpTypeStruct %rt
`, BuildOptions{})

	structs := m.Structs()
	require.Len(t, structs, 2)
	assert.Equal(t, "Light", structs[0].Name)
	assert.Equal(t, []StructMember{
		{Index: 0, Name: "color", Type: "[f32; 3]"},
		{Index: 2, Name: "count", Type: "u32"},
	}, structs[0].Members)
	assert.Equal(t, fmt.Sprintf("id_%d", structs[1].ID), structs[1].Name)
	assert.Empty(t, structs[1].Members)
}

func TestBuilderStructMemberPolicy(t *testing.T) {
	src := `
OpMemberName %S 0 "bad"
%S = OpTypeStruct %missing
`
	_, err := Build(assemble(t, src), BuildOptions{})
	assert.ErrorIs(t, err, ErrMissingID)

	m, err := Build(assemble(t, src), BuildOptions{Policy: Lenient()})
	require.NoError(t, err)
	structs := m.Structs()
	require.Len(t, structs, 1)
	require.Len(t, structs[0].Members, 1)
	assert.Contains(t, structs[0].Members[0].Type, "[error: missing id")
	require.Len(t, m.Diagnostics(), 1)
	assert.Equal(t, diag.ResMissingID, m.Diagnostics()[0].Code)
}
