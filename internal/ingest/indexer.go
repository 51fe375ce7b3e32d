package ingest

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	astidxerrors "github.com/standardbeagle/astidx/internal/errors"
	"github.com/standardbeagle/astidx/internal/hostctx"
	"github.com/standardbeagle/astidx/internal/symbolstore"
	"github.com/standardbeagle/astidx/internal/types"
)

// symbolReleaser is an optional capability a Parser may implement to take
// back ownership of a symbol slice it pooled (internal/tsparser.Adapter
// does, via its slab allocator). Not part of contracts.Parser itself since
// most test fakes have no pooling to release.
type symbolReleaser interface {
	Release(symbols []types.SymbolInstance)
}

// parseOutcome pairs a parsed document with its result, kept in input
// order so unparsed_suffixes and AddOrUpdateSymbols calls stay
// deterministic regardless of which goroutine finished first.
type parseOutcome struct {
	doc     types.Document
	symbols []types.SymbolInstance
	err     error
}

// runIndexer is PI's main loop. weak is the non-owning handle to the host
// context; PI terminates the moment it fails to upgrade.
func (s *Service) runIndexer(ctx context.Context, weak hostctx.Weak) {
	var (
		parsedCnt     int
		symbolsCnt    int
		t0            time.Time
		reportedStats bool
		holdOnReset   bool
	)

	for {
		if ctx.Err() != nil {
			return
		}

		batch := s.immediate.DrainAll()
		s.sink.SetQueueDepth("immediate", 0)

		if len(batch) == 0 {
			if !holdOnReset && !reportedStats && parsedCnt > 0 {
				s.sink.Info("PI", "parsed %d files, %d symbols in %s", parsedCnt, symbolsCnt, time.Since(t0))
				reportedStats = true
				parsedCnt = 0
				symbolsCnt = 0
			}
			if !holdOnReset {
				s.holdOff.Store(false)
				s.sink.SetHoldOff(false)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.cfg.PollIdle):
			}
			continue
		}

		holdOnReset = false
		reportedStats = false
		s.holdOff.Store(true)
		s.sink.SetHoldOff(true)
		if parsedCnt == 0 {
			t0 = time.Now()
		}

		unparsedSuffixes := make(map[string]int)

		for _, event := range batch {
			if _, ok := weak.Value(); !ok {
				s.sink.Info("PI", "%s", astidxerrors.NewShutdownError().Error())
				return
			}

			switch event.Kind {
			case types.EventReset:
				s.store.ClearIndex()
				holdOnReset = true
				parsedCnt = 0
				symbolsCnt = 0
				s.sink.Info("PI", "index reset")

			case types.EventAdd:
				resolved := make([]types.Document, 0, len(event.Docs))
				for _, doc := range event.Docs {
					text, err := s.resolver.Read(ctx, doc.Path)
					if err != nil {
						s.sink.Warn("PI", "read failed for %s: %v", doc.Path, err)
						unparsedSuffixes["read_error"]++
						continue
					}
					resolved = append(resolved, doc.WithText(text))
				}

				outcomes := s.parseAll(ctx, resolved)
				for _, o := range outcomes {
					if o.err != nil {
						unparsedSuffixes[o.err.Error()]++
						continue
					}
					file := symbolstore.FileIDFor(o.doc.Path)
					if err := s.store.AddOrUpdateSymbols(file, o.doc.Path, o.symbols); err != nil {
						s.sink.Warn("PI", "index update failed for %s: %v", o.doc.Path, err)
						unparsedSuffixes["index_error"]++
						continue
					}
					parsedCnt++
					symbolsCnt += len(o.symbols)
					s.sink.RecordParsed(1)
					s.sink.RecordSymbols(len(o.symbols))
					if releaser, ok := s.parser.(symbolReleaser); ok {
						releaser.Release(o.symbols)
					}
				}
			}
		}

		if len(unparsedSuffixes) > 0 {
			for reason, n := range unparsedSuffixes {
				s.sink.RecordUnparsed(reason, n)
			}
			s.sink.Warn("PI", "unparsed suffixes this batch: %v", unparsedSuffixes)
		}
	}
}

// parseAll parses docs concurrently, bounded by cfg.ParseWorkers (0 means
// runtime.NumCPU()), and returns outcomes in the same order as docs.
func (s *Service) parseAll(ctx context.Context, docs []types.Document) []parseOutcome {
	out := make([]parseOutcome, len(docs))
	if len(docs) == 0 {
		return out
	}

	limit := s.cfg.ParseWorkers
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			symbols, err := s.parser.Parse(gctx, doc)
			out[i] = parseOutcome{doc: doc, symbols: symbols, err: err}
			return nil
		})
	}
	_ = g.Wait() // per-document errors are carried in out[i].err, never fatal to the batch

	return out
}
