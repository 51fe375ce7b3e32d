// Package types holds the small set of value types shared across the
// ingestion pipeline: file identities, the documents producers submit, the
// events that flow through the two queues, and the symbols the parser
// hands back to the index store.
package types

import "time"

// FileID is a 32-bit identity for an indexed file. Workspace
// file enumeration is out of scope for this module, so Document carries no
// FileID of its own; internal/symbolstore.FileIDFor derives one from a
// path deterministically, standing in for whatever external allocator a
// full workspace scanner would otherwise provide.
type FileID uint32

// SymbolID is a stable, store-local identity for a SymbolInstance. See
// internal/symbolstore for how it is derived.
type SymbolID uint64

// Document is an (absolute path, optional in-memory text) pair. Equality
// is by Path; Text is only ever populated by PI right before handing the
// document to the Parser, never by producers.
type Document struct {
	Path string
	Text *string
}

// WithText returns a copy of d with Text set to text. Documents are
// value-typed and producers must not mutate one in place.
func (d Document) WithText(text string) Document {
	d.Text = &text
	return d
}

// HasText reports whether the document already carries resolved text.
func (d Document) HasText() bool {
	return d.Text != nil
}

// EventKind distinguishes an incremental Add from a full Reset.
type EventKind uint8

const (
	// EventAdd carries one or more documents whose symbols should be
	// (re)parsed and replace any prior symbols for those paths.
	EventAdd EventKind = iota
	// EventReset carries no documents and invalidates all prior pending
	// work and the entire index.
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventAdd:
		return "add"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is the immutable unit of work producers submit to the pipeline.
// Reset events carry no Docs; order-wise they invalidate all prior pending
// work (see the Cooldown Coalescer and ImmediateQueue semantics).
type Event struct {
	Kind     EventKind
	Docs     []Document
	PostedTS time.Time
}

// NewAddEvent builds an Add event for docs, stamped with the current
// monotonic-ish wall clock time used for cooldown comparisons.
func NewAddEvent(docs []Document) Event {
	return Event{Kind: EventAdd, Docs: docs, PostedTS: time.Now()}
}

// NewResetEvent builds a Reset event.
func NewResetEvent() Event {
	return Event{Kind: EventReset, PostedTS: time.Now()}
}

// SymbolKind classifies a SymbolInstance for resolution purposes. The
// precise per-language taxonomy is owned by the Parser (out of scope); the
// pipeline only needs to distinguish declarations, usages, and imports to
// run its three resolve passes.
type SymbolKind uint8

const (
	SymbolDeclaration SymbolKind = iota
	SymbolUsage
	SymbolImport
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolDeclaration:
		return "declaration"
	case SymbolUsage:
		return "usage"
	case SymbolImport:
		return "import"
	default:
		return "unknown"
	}
}

// Span is a half-open source range, 0-indexed, end-exclusive on both axes.
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol      int
}

// SymbolInstance is a parsed entity with a stable GUID, its containing
// file, and typed references to other GUIDs resolved lazily by the
// Resolver. Exclusively owned by the IndexStore; consumers only ever see
// copies, never pointers into store-internal slices.
type SymbolInstance struct {
	GUID SymbolID
	Kind SymbolKind
	Name string
	File FileID
	Path string
	Span Span

	// TypeRef is the name this symbol's declared type refers to, if any
	// (e.g. a variable's type annotation). Resolved by pass (a).
	TypeRef string
	// ImportRef is the module/path this import symbol refers to, if any.
	// Resolved by pass (b).
	ImportRef string

	// ResolvedTypeGUID is set by declaration type resolution (pass a).
	ResolvedTypeGUID SymbolID
	// ResolvedImportGUID is set by import resolution (pass b).
	ResolvedImportGUID SymbolID
	// ResolvedDeclGUID is set by usage→declaration linking (pass c): for a
	// SymbolUsage, the GUID of the declaration it refers to.
	ResolvedDeclGUID SymbolID
}

// ResolveStats is the return contract for each resolution pass: counts
// only, used for logging, never for flow control.
type ResolveStats struct {
	Found    uint64
	NonFound uint64
}

func (s ResolveStats) Add(other ResolveStats) ResolveStats {
	return ResolveStats{Found: s.Found + other.Found, NonFound: s.NonFound + other.NonFound}
}
