// Package tsparser is the default Parser adapter. Per-language
// symbol-extraction depth is explicitly out of scope for this module (the
// hard part is the pipeline around the parser, not the parser); this
// adapter wires a representative, not exhaustive, set of grammars — Go,
// JavaScript, Python — behind a single query-driven extraction loop,
// collapsed into data instead of one function per language.
package tsparser

import (
	"context"
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/standardbeagle/astidx/internal/alloc"
	"github.com/standardbeagle/astidx/internal/symbolstore"
	"github.com/standardbeagle/astidx/internal/types"
)

// captureBinding maps a tree-sitter query capture name to the SymbolKind
// it produces.
type captureBinding struct {
	capture string
	kind    types.SymbolKind
}

type langDef struct {
	language *tree_sitter.Language
	query    string
	binds    []captureBinding
}

// Adapter parses documents with tree-sitter, choosing the grammar by
// extension. tree_sitter.Parser is not safe for concurrent use, so Parse
// creates a fresh parser and compiles the extension's query on every call;
// the mutex guards only the extension table. PI's parallel fan-out
// (internal/ingest) is therefore safe across documents of any extension.
type Adapter struct {
	mu    sync.Mutex
	langs map[string]langDef

	// symbols pools the []types.SymbolInstance slices Parse builds, one
	// tier per typical batch size (CC's BatchCap is 32 by default). PI
	// calls Release once a parsed document's symbols have been copied
	// into the index store, so the backing array is reused for the next
	// document instead of re-allocated every parse.
	symbols *alloc.SlabAllocator[types.SymbolInstance]
}

// New builds the default adapter with Go, JavaScript, and Python wired.
func New() *Adapter {
	a := &Adapter{
		langs:   make(map[string]langDef),
		symbols: alloc.NewSlabAllocatorWithDefaults[types.SymbolInstance](),
	}

	a.register([]string{".go"}, tree_sitter.NewLanguage(tree_sitter_go.Language()), `
		(function_declaration name: (identifier) @decl.name) @decl
		(method_declaration name: (field_identifier) @decl.name) @decl
		(type_declaration (type_spec name: (type_identifier) @decl.name)) @decl
		(const_declaration (const_spec name: (identifier) @decl.name)) @decl
		(var_declaration (var_spec name: (identifier) @decl.name)) @decl
		(import_spec path: (interpreted_string_literal) @import.ref) @import
		(call_expression function: (identifier) @usage.name) @usage
		(call_expression function: (selector_expression field: (field_identifier) @usage.name)) @usage
	`, []captureBinding{
		{"decl.name", types.SymbolDeclaration},
		{"import.ref", types.SymbolImport},
		{"usage.name", types.SymbolUsage},
	})

	a.register([]string{".js", ".jsx"}, tree_sitter.NewLanguage(tree_sitter_javascript.Language()), `
		(function_declaration name: (identifier) @decl.name) @decl
		(class_declaration name: (identifier) @decl.name) @decl
		(variable_declarator name: (identifier) @decl.name) @decl
		(import_statement source: (string) @import.ref) @import
		(call_expression function: (identifier) @usage.name) @usage
	`, []captureBinding{
		{"decl.name", types.SymbolDeclaration},
		{"import.ref", types.SymbolImport},
		{"usage.name", types.SymbolUsage},
	})

	a.register([]string{".py"}, tree_sitter.NewLanguage(tree_sitter_python.Language()), `
		(function_definition name: (identifier) @decl.name) @decl
		(class_definition name: (identifier) @decl.name) @decl
		(import_from_statement module_name: (dotted_name) @import.ref) @import
		(call function: (identifier) @usage.name) @usage
	`, []captureBinding{
		{"decl.name", types.SymbolDeclaration},
		{"import.ref", types.SymbolImport},
		{"usage.name", types.SymbolUsage},
	})

	return a
}

func (a *Adapter) register(exts []string, lang *tree_sitter.Language, query string, binds []captureBinding) {
	q, err := tree_sitter.NewQuery(lang, query)
	if err != nil || q == nil {
		// A grammar/query mismatch disables that language rather than
		// failing adapter construction; Parse reports it as an
		// unsupported-extension error per file instead.
		return
	}
	def := langDef{language: lang, query: query, binds: binds}
	for _, ext := range exts {
		a.langs[ext] = def
	}
	_ = q
}

// Parse implements contracts.Parser.
func (a *Adapter) Parse(ctx context.Context, doc types.Document) ([]types.SymbolInstance, error) {
	if !doc.HasText() {
		return nil, fmt.Errorf("no text resolved for %s", doc.Path)
	}
	ext := extOf(doc.Path)

	a.mu.Lock()
	def, ok := a.langs[ext]
	a.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(def.language); err != nil {
		return nil, fmt.Errorf("set language for %s: %w", ext, err)
	}

	text := *doc.Text
	tree := parser.Parse([]byte(text), nil)
	if tree == nil {
		return nil, fmt.Errorf("parse failed for %s", doc.Path)
	}
	defer tree.Close()

	query, err := tree_sitter.NewQuery(def.language, def.query)
	if err != nil || query == nil {
		return nil, fmt.Errorf("compile query for %s: %w", ext, err)
	}
	defer query.Close()

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	kinds := make(map[uint32]types.SymbolKind, len(def.binds))
	for i, capName := range query.CaptureNames() {
		for _, b := range def.binds {
			if b.capture == capName {
				kinds[uint32(i)] = b.kind
			}
		}
	}

	out := a.symbols.Get(32)
	matches := cursor.Matches(query, tree.RootNode(), []byte(text))
	for {
		m := matches.Next()
		if m == nil {
			break
		}
		for _, c := range m.Captures {
			kind, ok := kinds[c.Index]
			if !ok {
				continue
			}
			node := c.Node
			start := node.StartPosition()
			end := node.EndPosition()
			span := types.Span{
				StartLine: int(start.Row), StartCol: int(start.Column),
				EndLine: int(end.Row), EndCol: int(end.Column),
			}
			name := text[node.StartByte():node.EndByte()]
			sym := types.SymbolInstance{
				Kind: kind,
				Name: name,
				Path: doc.Path,
				Span: span,
			}
			switch kind {
			case types.SymbolImport:
				sym.ImportRef = name
			}
			sym.GUID = symbolstore.ComputeGUID(doc.Path, kind, span)
			out = append(out, sym)
		}
	}
	return out, nil
}

// Release returns symbols' backing array to the adapter's slab pool. PI
// calls this once it has copied symbols into the index store (which
// value-copies each SymbolInstance, so the caller's slice is free to be
// reused or discarded). Safe to call with a slice Parse did not return.
func (a *Adapter) Release(symbols []types.SymbolInstance) {
	a.symbols.Put(symbols)
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i:]
		}
		if path[i] == '/' {
			break
		}
	}
	return ""
}
