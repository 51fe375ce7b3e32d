package symbolstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/astidx/internal/types"
)

func TestComputeGUIDStableForSameInput(t *testing.T) {
	span := types.Span{StartLine: 1, StartCol: 0, EndLine: 3, EndCol: 1}
	a := ComputeGUID("/pkg/file.go", types.SymbolDeclaration, span)
	b := ComputeGUID("/pkg/file.go", types.SymbolDeclaration, span)
	assert.Equal(t, a, b)
}

func TestComputeGUIDDiffersByPathKindOrSpan(t *testing.T) {
	span := types.Span{StartLine: 1, StartCol: 0, EndLine: 3, EndCol: 1}
	base := ComputeGUID("/pkg/file.go", types.SymbolDeclaration, span)

	assert.NotEqual(t, base, ComputeGUID("/pkg/other.go", types.SymbolDeclaration, span))
	assert.NotEqual(t, base, ComputeGUID("/pkg/file.go", types.SymbolUsage, span))

	otherSpan := span
	otherSpan.EndCol++
	assert.NotEqual(t, base, ComputeGUID("/pkg/file.go", types.SymbolDeclaration, otherSpan))
}

func TestDenseStringZero(t *testing.T) {
	assert.Equal(t, "A", DenseString(0))
}

func TestDenseStringRoundTripsDistinctly(t *testing.T) {
	a := DenseString(types.SymbolID(1))
	b := DenseString(types.SymbolID(63))
	c := DenseString(types.SymbolID(64))
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
}

func TestFormatGUID(t *testing.T) {
	s := FormatGUID(types.SymbolID(63))
	assert.Contains(t, s, "63(")
}

func TestFileIDForStableAndDistinct(t *testing.T) {
	a := FileIDFor("/pkg/file.go")
	b := FileIDFor("/pkg/file.go")
	c := FileIDFor("/pkg/other.go")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
