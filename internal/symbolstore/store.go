// Package symbolstore implements the shared symbol store backing the
// indexing pipeline: a single reader-writer lock, a per-file-atomic write
// discipline for the indexer, and the three resolve passes the resolver
// drives.
package symbolstore

import (
	"sync"

	"github.com/standardbeagle/astidx/internal/types"
)

// Store is the concrete IndexStore. Zero value is not usable; use New.
type Store struct {
	mu sync.RWMutex

	byGUID map[types.SymbolID]*types.SymbolInstance
	byFile map[types.FileID][]types.SymbolID

	// Ancillary indexes, rebuilt wholesale by CreateExtraIndexes, which
	// also clears dirty in the same critical section.
	byName map[string][]types.SymbolID
	byKind map[types.SymbolKind][]types.SymbolID

	dirty bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		byGUID: make(map[types.SymbolID]*types.SymbolInstance),
		byFile: make(map[types.FileID][]types.SymbolID),
		byName: make(map[string][]types.SymbolID),
		byKind: make(map[types.SymbolKind][]types.SymbolID),
	}
}

// AddOrUpdateSymbols replaces file's prior symbols (if any) with symbols
// and marks the store dirty, atomically with respect to any reader. This
// is the per-file write the indexer performs once per successfully parsed
// document; the lock is held only for this one file, never across the
// parse step or the rest of the batch.
func (s *Store) AddOrUpdateSymbols(file types.FileID, path string, symbols []types.SymbolInstance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byFile[file]; ok {
		for _, g := range old {
			delete(s.byGUID, g)
		}
	}

	ids := make([]types.SymbolID, 0, len(symbols))
	for i := range symbols {
		sym := symbols[i]
		sym.File = file
		sym.Path = path
		cp := sym
		s.byGUID[sym.GUID] = &cp
		ids = append(ids, sym.GUID)
	}
	s.byFile[file] = ids
	s.dirty = true
	return nil
}

// ClearIndex atomically resets all symbol state, used on Reset.
func (s *Store) ClearIndex() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byGUID = make(map[types.SymbolID]*types.SymbolInstance)
	s.byFile = make(map[types.FileID][]types.SymbolID)
	s.byName = make(map[string][]types.SymbolID)
	s.byKind = make(map[types.SymbolKind][]types.SymbolID)
	s.dirty = true
}

// SymbolsByGUID returns a value-copy snapshot of every symbol currently in
// the store, used by the resolver to build the local ordered list it then
// runs its passes over.
func (s *Store) SymbolsByGUID() map[types.SymbolID]types.SymbolInstance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[types.SymbolID]types.SymbolInstance, len(s.byGUID))
	for id, sym := range s.byGUID {
		out[id] = *sym
	}
	return out
}

// NeedUpdate reports whether an Add or Reset has been applied since the
// last CreateExtraIndexes call.
func (s *Store) NeedUpdate() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// FileCount returns the number of distinct files with symbols, for
// diagnostics.
func (s *Store) FileCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byFile)
}

// SymbolCount returns the total number of symbols currently stored.
func (s *Store) SymbolCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byGUID)
}
