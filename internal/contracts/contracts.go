// Package contracts defines the small, stable external interfaces the
// ingestion pipeline depends on. Each has exactly one production
// implementation elsewhere in this module (internal/fsresolver,
// internal/tsparser, internal/symbolstore) and a fake in the pipeline's own
// tests; the pipeline package reaches these collaborators only through
// these interfaces (it imports internal/symbolstore solely for FileIDFor).
package contracts

import (
	"context"

	"github.com/standardbeagle/astidx/internal/types"
)

// FileTextResolver resolves a document's current text. The default
// implementation (internal/fsresolver) reads the on-disk file; a host may
// layer an in-memory overlay in front of it for files currently open in an
// editor.
type FileTextResolver interface {
	Read(ctx context.Context, path string) (string, error)
}

// Parser is pure, thread-safe, and deterministic: calling it twice on the
// same document with the same text yields the same symbols (modulo GUID
// stability guarantees documented in internal/symbolstore). On failure the
// returned error's message is an opaque classification string, used
// verbatim as the unparsed_suffixes histogram key.
type Parser interface {
	Parse(ctx context.Context, doc types.Document) ([]types.SymbolInstance, error)
}

// IndexStore is the shared symbol store. Implemented by
// internal/symbolstore.Store. AddOrUpdateSymbols replaces (never merges) a
// file's prior symbols and marks the store dirty; ClearIndex resets
// atomically; SymbolsByGUID snapshots the full symbol set for a resolve
// pass.
type IndexStore interface {
	AddOrUpdateSymbols(file types.FileID, path string, symbols []types.SymbolInstance) error
	ClearIndex()
	SymbolsByGUID() map[types.SymbolID]types.SymbolInstance

	ResolveTypes(symbols []types.SymbolInstance) types.ResolveStats
	ResolveImports(symbols []types.SymbolInstance) types.ResolveStats
	MergeUsagesToDeclarations(symbols []types.SymbolInstance) types.ResolveStats

	// CreateExtraIndexes rebuilds the ancillary name/kind indexes and
	// clears the dirty flag in the same locked critical section.
	CreateExtraIndexes(symbols []types.SymbolInstance)
	NeedUpdate() bool
}
