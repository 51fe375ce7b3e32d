package symbolstore

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/astidx/internal/types"
)

// ComputeGUID derives a SymbolInstance's stable GUID from its containing
// path, kind, and source span. Re-parsing an unchanged span of an
// unchanged file yields the same GUID, which is what lets the Resolver's
// cross-file bindings (declaration ↔ usage ↔ import) survive an unrelated
// file's Add without being invalidated.
//
// Collisions are accepted as a practical risk, not eliminated: xxhash64
// over a few hundred thousand symbols has a negligible collision
// probability, and a collision merely causes two symbols to alias under
// resolution, not a crash.
func ComputeGUID(path string, kind types.SymbolKind, span types.Span) types.SymbolID {
	var buf [20]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(span.StartLine))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(span.StartCol))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(span.EndLine))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(span.EndCol))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(kind))

	h := xxhash.New()
	_, _ = h.WriteString(path)
	_, _ = h.Write(buf[:])
	return types.SymbolID(h.Sum64())
}

// denseAlphabet is a 63-symbol alphabet (A-Za-z0-9_) used to render a
// SymbolID as a short, human-readable token.
const denseAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_"

// DenseString renders id as a compact base-63 token, shortest-first with
// no leading zero digits (other than the id==0 case, rendered "A").
func DenseString(id types.SymbolID) string {
	if id == 0 {
		return string(denseAlphabet[0])
	}
	var out []byte
	v := uint64(id)
	for v > 0 {
		out = append(out, denseAlphabet[v%63])
		v /= 63
	}
	// reverse in place
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// FormatGUID is a convenience combining a GUID with its dense rendering,
// for output where both the raw and short forms are useful.
func FormatGUID(id types.SymbolID) string {
	return fmt.Sprintf("%d(%s)", uint64(id), DenseString(id))
}

// FileIDFor derives a stable FileID from a path. Workspace file
// enumeration — and whatever identity scheme it assigns — is out of scope
// for this module; the pipeline still needs *some* FileID to tag a
// SymbolInstance with, and deriving it from the path keeps that assignment
// independent of enumeration order and reproducible across restarts,
// standing in for an external allocator.
func FileIDFor(path string) types.FileID {
	return types.FileID(uint32(xxhash.Sum64String(path)))
}
