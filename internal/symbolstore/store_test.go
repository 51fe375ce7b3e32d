package symbolstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/astidx/internal/types"
)

func sym(name string, kind types.SymbolKind, line int) types.SymbolInstance {
	span := types.Span{StartLine: line, StartCol: 0, EndLine: line, EndCol: len(name)}
	return types.SymbolInstance{
		GUID: ComputeGUID("/pkg/file.go", kind, span),
		Kind: kind,
		Name: name,
		Span: span,
	}
}

func TestAddOrUpdateSymbolsStoresAndMarksDirty(t *testing.T) {
	s := New()
	assert.False(t, s.NeedUpdate())

	syms := []types.SymbolInstance{sym("Foo", types.SymbolDeclaration, 1)}
	require.NoError(t, s.AddOrUpdateSymbols(types.FileID(1), "/pkg/file.go", syms))

	assert.True(t, s.NeedUpdate())
	assert.Equal(t, 1, s.FileCount())
	assert.Equal(t, 1, s.SymbolCount())

	snapshot := s.SymbolsByGUID()
	got, ok := snapshot[syms[0].GUID]
	require.True(t, ok)
	assert.Equal(t, "Foo", got.Name)
	assert.Equal(t, types.FileID(1), got.File)
	assert.Equal(t, "/pkg/file.go", got.Path)
}

func TestAddOrUpdateSymbolsReplacesPriorForSameFile(t *testing.T) {
	s := New()

	first := []types.SymbolInstance{sym("Foo", types.SymbolDeclaration, 1)}
	require.NoError(t, s.AddOrUpdateSymbols(types.FileID(1), "/pkg/file.go", first))
	require.Equal(t, 1, s.SymbolCount())

	second := []types.SymbolInstance{sym("Bar", types.SymbolDeclaration, 2)}
	require.NoError(t, s.AddOrUpdateSymbols(types.FileID(1), "/pkg/file.go", second))

	assert.Equal(t, 1, s.SymbolCount())
	snapshot := s.SymbolsByGUID()
	_, fooStillPresent := snapshot[first[0].GUID]
	assert.False(t, fooStillPresent)
	_, barPresent := snapshot[second[0].GUID]
	assert.True(t, barPresent)
}

func TestClearIndexResetsEverything(t *testing.T) {
	s := New()
	syms := []types.SymbolInstance{sym("Foo", types.SymbolDeclaration, 1)}
	require.NoError(t, s.AddOrUpdateSymbols(types.FileID(1), "/pkg/file.go", syms))
	s.CreateExtraIndexes(syms)
	require.False(t, s.NeedUpdate())

	s.ClearIndex()

	assert.Equal(t, 0, s.FileCount())
	assert.Equal(t, 0, s.SymbolCount())
	assert.True(t, s.NeedUpdate())
}

func TestCreateExtraIndexesClearsDirtyFlag(t *testing.T) {
	s := New()
	syms := []types.SymbolInstance{sym("Foo", types.SymbolDeclaration, 1)}
	require.NoError(t, s.AddOrUpdateSymbols(types.FileID(1), "/pkg/file.go", syms))
	require.True(t, s.NeedUpdate())

	s.CreateExtraIndexes(syms)
	assert.False(t, s.NeedUpdate())
}
