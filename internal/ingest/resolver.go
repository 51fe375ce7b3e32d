package ingest

import (
	"context"
	"time"

	"github.com/standardbeagle/astidx/internal/types"
)

// runResolver is RS's poll loop. It only ever runs while HoldOff is clear,
// so it never races PI's per-file writes; the three resolve passes
// themselves run under the store's read lock, and only the final
// CreateExtraIndexes step — which also clears the dirty flag — takes the
// write lock.
func (s *Service) runResolver(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		if s.holdOff.Load() {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.cfg.ResolvePoll):
			}
			continue
		}

		if !s.store.NeedUpdate() {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.cfg.ResolveRecheck):
			}
			continue
		}

		snapshot := s.store.SymbolsByGUID()
		symbols := make([]types.SymbolInstance, 0, len(snapshot))
		for _, sym := range snapshot {
			symbols = append(symbols, sym)
		}

		t0 := time.Now()
		typeStats := s.store.ResolveTypes(symbols)
		typeDur := time.Since(t0)
		s.sink.RecordResolvePass("types", typeDur)
		s.sink.Info("RS", "declaration type resolution: %d/%d in %s",
			typeStats.Found, typeStats.Found+typeStats.NonFound, typeDur)

		t1 := time.Now()
		importStats := s.store.ResolveImports(symbols)
		importDur := time.Since(t1)
		s.sink.RecordResolvePass("imports", importDur)
		s.sink.Info("RS", "import resolution: %d/%d in %s",
			importStats.Found, importStats.Found+importStats.NonFound, importDur)

		t2 := time.Now()
		usageStats := s.store.MergeUsagesToDeclarations(symbols)
		usageDur := time.Since(t2)
		s.sink.RecordResolvePass("usages", usageDur)
		s.sink.Info("RS", "usage-to-declaration merge: %d/%d in %s",
			usageStats.Found, usageStats.Found+usageStats.NonFound, usageDur)

		t3 := time.Now()
		s.store.CreateExtraIndexes(symbols)
		extraDur := time.Since(t3)
		s.sink.RecordResolvePass("extra_index", extraDur)
		s.sink.Info("RS", "extra index rebuild: %d symbols in %s", len(symbols), extraDur)

		s.sink.Info("RS", "resolved types=%d/%d imports=%d/%d usages=%d/%d",
			typeStats.Found, typeStats.Found+typeStats.NonFound,
			importStats.Found, importStats.Found+importStats.NonFound,
			usageStats.Found, usageStats.Found+usageStats.NonFound)
		s.sink.Complete()
	}
}
