package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/standardbeagle/astidx/internal/types"
)

// fakeResolver returns canned text per path, or an error for paths in failOn.
type fakeResolver struct {
	mu     sync.Mutex
	text   map[string]string
	failOn map[string]bool
	reads  []string
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{text: make(map[string]string), failOn: make(map[string]bool)}
}

func (f *fakeResolver) Read(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, path)
	if f.failOn[path] {
		return "", fmt.Errorf("read failed: %s", path)
	}
	if t, ok := f.text[path]; ok {
		return t, nil
	}
	return "default text", nil
}

// fakeParser returns one declaration symbol per document, named after its
// path, unless the path is registered to fail.
type fakeParser struct {
	mu      sync.Mutex
	failOn  map[string]bool
	parsed  []string
	symbols map[string][]types.SymbolInstance
}

func newFakeParser() *fakeParser {
	return &fakeParser{failOn: make(map[string]bool), symbols: make(map[string][]types.SymbolInstance)}
}

func (f *fakeParser) Parse(ctx context.Context, doc types.Document) ([]types.SymbolInstance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parsed = append(f.parsed, doc.Path)
	if f.failOn[doc.Path] {
		return nil, fmt.Errorf("parse failed: %s", doc.Path)
	}
	if syms, ok := f.symbols[doc.Path]; ok {
		return syms, nil
	}
	return []types.SymbolInstance{{
		GUID: types.SymbolID(len(doc.Path)),
		Kind: types.SymbolDeclaration,
		Name: doc.Path,
		Path: doc.Path,
	}}, nil
}

// fakeStore is a minimal contracts.IndexStore that records every call
// instead of maintaining real resolve state, for exercising the indexer
// and resolver loops without the real symbolstore.Store.
type fakeStore struct {
	mu            sync.Mutex
	byFile        map[types.FileID][]types.SymbolInstance
	dirty         bool
	cleared       int
	updated       int
	resolvePasses int
}

func newFakeStore() *fakeStore {
	return &fakeStore{byFile: make(map[types.FileID][]types.SymbolInstance)}
}

func (f *fakeStore) AddOrUpdateSymbols(file types.FileID, path string, symbols []types.SymbolInstance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byFile[file] = symbols
	f.dirty = true
	return nil
}

func (f *fakeStore) ClearIndex() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byFile = make(map[types.FileID][]types.SymbolInstance)
	f.cleared++
	f.dirty = true
}

func (f *fakeStore) SymbolsByGUID() map[types.SymbolID]types.SymbolInstance {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[types.SymbolID]types.SymbolInstance)
	for _, syms := range f.byFile {
		for _, s := range syms {
			out[s.GUID] = s
		}
	}
	return out
}

func (f *fakeStore) ResolveTypes(symbols []types.SymbolInstance) types.ResolveStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolvePasses++
	return types.ResolveStats{}
}

func (f *fakeStore) ResolveImports(symbols []types.SymbolInstance) types.ResolveStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolvePasses++
	return types.ResolveStats{}
}

func (f *fakeStore) MergeUsagesToDeclarations(symbols []types.SymbolInstance) types.ResolveStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolvePasses++
	return types.ResolveStats{}
}

func (f *fakeStore) CreateExtraIndexes(symbols []types.SymbolInstance) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirty = false
	f.updated++
}

func (f *fakeStore) NeedUpdate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

func (f *fakeStore) symbolCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, syms := range f.byFile {
		n += len(syms)
	}
	return n
}
