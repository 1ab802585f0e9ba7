package decomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spvdecomp/internal/diag"
	"spvdecomp/internal/spirv"
)

const typesSrc = `
 %1 = OpTypeInt 32 0
 %2 = OpTypeInt 8 1
 %3 = OpTypeFloat 64
 %4 = OpConstant %1 3
 %5 = OpTypeVector %3 4
 %6 = OpTypeArray %2 %4
 %7 = OpTypeRuntimeArray %1
 %8 = OpTypePointer StorageBuffer %7
 %9 = OpTypePointer Function %9
%10 = OpTypeSampler
%11 = OpTypeBool
%12 = OpTypeVoid
%13 = OpTypeInt 64 1
%14 = OpTypeInt 64 0
%15 = OpTypeFloat 32
%16 = OpTypeStruct %1 %11
%17 = OpTypePointer Function %16
%18 = OpTypeFloat 16
`

func TestResolveType(t *testing.T) {
	m := mustBuild(t, typesSrc, BuildOptions{})
	r := NewResolver(m)

	cases := map[uint32]string{
		1:  "u32",
		2:  "i8",
		3:  "f64",
		5:  "[f64; 4]",
		6:  "[i8; 3]",
		7:  "*mut u32",
		8:  "*mut *mut u32",
		11: "bool",
		12: "()",
		13: "i64",
		16: "id_16",
		17: "*mut id_16",
		18: "f16",
	}
	for id, want := range cases {
		got, err := r.ResolveType(id)
		require.NoError(t, err, "type %%%d", id)
		assert.Equal(t, want, got, "type %%%d", id)
	}
}

func TestResolveTypeFailures(t *testing.T) {
	m := mustBuild(t, typesSrc, BuildOptions{})
	r := NewResolver(m)

	_, err := r.ResolveType(999)
	assert.ErrorIs(t, err, ErrMissingID)

	_, err = r.ResolveType(4)
	assert.ErrorIs(t, err, ErrTypeMismatch, "a constant is not a type")

	_, err = r.ResolveType(9)
	assert.ErrorIs(t, err, ErrStructuralViolation, "self-referential pointer")
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, diag.ResCyclicType, e.DiagCode())
}

func TestResolveTypeUnhandledIsPlaceholder(t *testing.T) {
	m := mustBuild(t, typesSrc, BuildOptions{})
	bag := diag.NewBag(0)
	r := newResolver(m, diag.BagReporter{Bag: bag})

	got, err := r.ResolveType(10)
	require.NoError(t, err)
	assert.Equal(t, "[unhandled type OpTypeSampler]", got)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.LowUnhandledType, bag.Items()[0].Code)
}

func TestResolveConstantMatchesType(t *testing.T) {
	m := mustBuild(t, typesSrc, BuildOptions{})
	r := NewResolver(m)

	cases := []struct {
		typeID uint32
		lit    spirv.Operand
		want   string
	}{
		{1, spirv.LiteralInt(5), "5u32"},
		{1, spirv.LiteralInt(0xffffffff), "4294967295u32"},
		{2, spirv.LiteralInt(0xffffffff), "-1i8"},
		{2, spirv.LiteralInt(127), "127i8"},
		{13, spirv.LiteralInt64(0xfffffffffffffffe), "-2i64"},
		{14, spirv.LiteralInt64(0xffffffffffffffff), "18446744073709551615u64"},
		{15, spirv.LiteralFloat32(1.5), "1.5f32"},
		{3, spirv.LiteralFloat64(-0.25), "-0.25f64"},
		{18, spirv.LiteralFloat16(0.5), "0.5f16"},
		{18, spirv.LiteralFloat16(-1024), "-1024f16"},
	}
	for _, tc := range cases {
		got, err := r.ResolveConstant(tc.typeID, tc.lit)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)

		// The suffix always agrees with the rendered type.
		ty, err := r.ResolveType(tc.typeID)
		require.NoError(t, err)
		assert.Equal(t, ty, got[len(got)-len(ty):])
	}

	_, err := r.ResolveConstant(11, spirv.LiteralInt(1))
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = r.ResolveConstant(1, spirv.LiteralString("x"))
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = r.ResolveConstant(999, spirv.LiteralInt(1))
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestDerefPointer(t *testing.T) {
	m := mustBuild(t, typesSrc, BuildOptions{})
	r := NewResolver(m)

	pointee, err := r.DerefPointer(8)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), pointee)

	_, err = r.DerefPointer(1)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = r.DerefPointer(999)
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestResolvePlaceAndBoundValue(t *testing.T) {
	m := mustBuild(t, counterSrc, BuildOptions{})
	bag := diag.NewBag(0)
	r := newResolver(m, diag.BagReporter{Bag: bag})

	place, err := r.ResolvePlace(spirv.IDRef(2))
	require.NoError(t, err)
	assert.Equal(t, "counter", place)

	constant, err := r.ResolvePlace(spirv.IDRef(7))
	require.NoError(t, err)
	assert.Equal(t, "5u32", constant)

	bound, err := r.ResolvePlace(spirv.IDRef(9))
	require.NoError(t, err)
	assert.Equal(t, "id_9", bound)

	unknown, err := r.ResolvePlace(spirv.IDRef(500))
	require.NoError(t, err, "reads of unknown ids are optimistic")
	assert.Equal(t, "id_500", unknown)

	literal, err := r.ResolvePlace(spirv.LiteralInt(3))
	require.NoError(t, err)
	assert.Equal(t, "[unhandled LiteralInt32(3)]", literal)

	target, err := r.ResolveBoundValue(spirv.IDRef(2))
	require.NoError(t, err)
	assert.Equal(t, "counter", target)

	_, err = r.ResolveBoundValue(spirv.IDRef(500))
	assert.ErrorIs(t, err, ErrMissingID)

	notPlace, err := r.ResolveBoundValue(spirv.IDRef(10))
	require.NoError(t, err)
	assert.Equal(t, "[unhandled OpIAdd]", notPlace)

	codes := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	assert.Equal(t, []diag.Code{diag.LowUnhandledOperand, diag.LowUnhandledOpcode}, codes)
}
