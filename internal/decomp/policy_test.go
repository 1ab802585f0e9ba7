package decomp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spvdecomp/internal/diag"
)

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("", nil)
	require.NoError(t, err)
	for _, k := range []Kind{KindMissingID, KindTypeMismatch, KindUnexpectedStorageClass, KindStructuralViolation} {
		assert.False(t, p.Degrades(k), "strict must escalate %s", k)
	}

	p, err = ParsePolicy("Lenient", nil)
	require.NoError(t, err)
	assert.True(t, p.Degrades(KindMissingID))
	assert.True(t, p.Degrades(KindTypeMismatch))
	assert.True(t, p.Degrades(KindUnexpectedStorageClass))
	assert.False(t, p.Degrades(KindStructuralViolation))
	assert.Equal(t, "lenient(missing-id,type-mismatch,unexpected-storage-class)", p.String())

	p, err = ParsePolicy("strict", []string{"type-mismatch"})
	require.NoError(t, err)
	assert.True(t, p.Degrades(KindTypeMismatch))
	assert.False(t, p.Degrades(KindMissingID))

	_, err = ParsePolicy("yolo", nil)
	assert.Error(t, err)
	_, err = ParsePolicy("lenient", []string{"nope"})
	assert.Error(t, err)
}

func TestPolicyApply(t *testing.T) {
	bag := diag.NewBag(10)
	rep := diag.BagReporter{Bag: bag}
	at := diag.Span{Inst: 7}

	text, err := Lenient().apply(rep, at, missingID(4, "type %%%d is not declared", 4))
	require.NoError(t, err)
	assert.Equal(t, "[error: missing id: type %4 is not declared]", text)
	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	assert.Equal(t, diag.ResMissingID, d.Code)
	assert.Equal(t, uint32(4), d.Primary.ID)
	assert.Equal(t, uint32(7), d.Primary.Inst)

	_, err = Strict().apply(rep, at, missingID(4, "type %%%d is not declared", 4))
	assert.ErrorIs(t, err, ErrMissingID)

	sv := structural(0, 3, 0, "nested function")
	_, err = Lenient().apply(rep, at, sv)
	assert.ErrorIs(t, err, ErrStructuralViolation)

	plain := errors.New("io")
	_, err = Lenient().apply(rep, at, plain)
	assert.Same(t, plain, err)
	assert.Equal(t, 1, bag.Len())
}

func TestErrorMatching(t *testing.T) {
	err := fmt.Errorf("rendering: %w", missingID(4, "type %%%d is not declared", 4))

	assert.True(t, errors.Is(err, ErrMissingID))
	assert.False(t, errors.Is(err, ErrTypeMismatch))
	assert.Equal(t, "rendering: missing id: type %4 is not declared", err.Error())

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindMissingID, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	k, err := ParseKind("structural-violation")
	require.NoError(t, err)
	assert.Equal(t, KindStructuralViolation, k)
}

func TestLookupDialect(t *testing.T) {
	d, err := LookupDialect("")
	require.NoError(t, err)
	assert.Equal(t, "rust", d.Name)

	d, err = LookupDialect("neutral")
	require.NoError(t, err)
	assert.Equal(t, "bind y = x;", d.bindStmt("y", "x"))
	assert.Equal(t, "declare mutable x: T = 1;", d.declareStmt("x", "T", "1"))

	_, err = LookupDialect("cobol")
	assert.Error(t, err)
	assert.Equal(t, []string{"neutral", "rust"}, DialectNames())
}
