package symbolstore

import (
	"github.com/standardbeagle/astidx/internal/types"
)

// declarationNameIndex maps a declaration's Name to every GUID that declares that
// name, built fresh from the snapshot each pass is handed — the name-indexed symbol table used by every resolve pass. It is intentionally
// local to each pass rather than the store's own (stale-until-finalized)
// byName index: passes a/b/c run before CreateExtraIndexes rebuilds that
// index for query-side consumers.
func declarationNameIndex(symbols []types.SymbolInstance) map[string][]types.SymbolID {
	idx := make(map[string][]types.SymbolID)
	for _, sym := range symbols {
		if sym.Kind == types.SymbolDeclaration {
			idx[sym.Name] = append(idx[sym.Name], sym.GUID)
		}
	}
	return idx
}

// ResolveTypes binds each declaration's TypeRef to another declaration's
// GUID by name. Read-only on the store's structure;
// only the resolved-GUID field of already-present symbols is written, so
// a read lock suffices as long as PI's per-file writes are excluded while
// it holds it.
func (s *Store) ResolveTypes(symbols []types.SymbolInstance) types.ResolveStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := declarationNameIndex(symbols)
	var stats types.ResolveStats
	for _, sym := range symbols {
		if sym.Kind != types.SymbolDeclaration || sym.TypeRef == "" {
			continue
		}
		guid, found := firstOtherThan(idx[sym.TypeRef], sym.GUID)
		if !found {
			stats.NonFound++
			continue
		}
		stats.Found++
		if target, ok := s.byGUID[sym.GUID]; ok {
			target.ResolvedTypeGUID = guid
		}
	}
	return stats
}

// ResolveImports locates each import symbol's target declaration by name,
// across files.
func (s *Store) ResolveImports(symbols []types.SymbolInstance) types.ResolveStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := declarationNameIndex(symbols)
	var stats types.ResolveStats
	for _, sym := range symbols {
		if sym.Kind != types.SymbolImport || sym.ImportRef == "" {
			continue
		}
		guid, found := firstOtherThan(idx[sym.ImportRef], sym.GUID)
		if !found {
			stats.NonFound++
			continue
		}
		stats.Found++
		if target, ok := s.byGUID[sym.GUID]; ok {
			target.ResolvedImportGUID = guid
		}
	}
	return stats
}

// MergeUsagesToDeclarations resolves each usage symbol's referent using
// the declaration bindings. Usages are matched by
// name against declarations, same as pass a/b — the distinction between
// the three passes is which SymbolKind is the subject, not the lookup
// mechanism.
func (s *Store) MergeUsagesToDeclarations(symbols []types.SymbolInstance) types.ResolveStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := declarationNameIndex(symbols)
	var stats types.ResolveStats
	for _, sym := range symbols {
		if sym.Kind != types.SymbolUsage {
			continue
		}
		guid, found := firstOtherThan(idx[sym.Name], sym.GUID)
		if !found {
			stats.NonFound++
			continue
		}
		stats.Found++
		if target, ok := s.byGUID[sym.GUID]; ok {
			target.ResolvedDeclGUID = guid
		}
	}
	return stats
}

// CreateExtraIndexes rebuilds the ancillary name→symbol and kind→symbol
// maps from symbols and clears the dirty flag, both under one write-lock
// critical section. The two used to be separate locked calls (rebuild,
// then clear dirty); a file landing between them via AddOrUpdateSymbols
// set dirty=true only to have it unconditionally clobbered back to false,
// silently losing that file's pending-resolve state. Merging them closes
// the window: any AddOrUpdateSymbols now either fully precedes or fully
// follows this call.
func (s *Store) CreateExtraIndexes(symbols []types.SymbolInstance) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byName := make(map[string][]types.SymbolID, len(symbols))
	byKind := make(map[types.SymbolKind][]types.SymbolID, 4)
	for _, sym := range symbols {
		byName[sym.Name] = append(byName[sym.Name], sym.GUID)
		byKind[sym.Kind] = append(byKind[sym.Kind], sym.GUID)
	}
	s.byName = byName
	s.byKind = byKind
	s.dirty = false
}

func firstOtherThan(guids []types.SymbolID, self types.SymbolID) (types.SymbolID, bool) {
	for _, g := range guids {
		if g != self {
			return g, true
		}
	}
	return 0, false
}
