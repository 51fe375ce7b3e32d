package ingest

import (
	"context"
	"time"

	"github.com/standardbeagle/astidx/internal/types"
)

// runCoalescer is CC's tick loop. latest tracks the most recent non-reset
// event touching each path; it lives for the task's whole lifetime, not
// per tick.
func (s *Service) runCoalescer(ctx context.Context) {
	latest := make(map[string]Event)
	// carry holds events drained after a Reset, processed on the next tick.
	var carry []Event

	for {
		if ctx.Err() != nil {
			return
		}

		drained := append(carry, s.delayed.DrainAll()...)
		carry = nil
		haveReset := false
		for i, e := range drained {
			if e.Kind == types.EventReset {
				haveReset = true
				latest = make(map[string]Event)
				carry = drained[i+1:]
				break // reset has strict ordering: stop draining this tick
			}
			for _, doc := range e.Docs {
				latest[doc.Path] = e
			}
		}

		s.sink.SetQueueDepth("delayed", s.delayed.Len())

		if haveReset {
			s.immediate.Clear()
			s.immediate.PushBack(types.NewResetEvent())
			continue // reset coalesces past work but not its own boundary
		}

		now := time.Now()
		ready := make([]string, 0, len(latest))
		for path, e := range latest {
			if e.PostedTS.Add(s.cfg.Cooldown).Before(now) || e.PostedTS.Add(s.cfg.Cooldown).Equal(now) {
				ready = append(ready, path)
			}
			if len(ready) >= s.cfg.BatchCap {
				break
			}
		}

		if len(ready) > 0 {
			s.sink.Info("CC", "cooldown sees %d files on stack, launching parse for %d of them", len(latest), len(ready))
			docs := make([]types.Document, 0, len(ready))
			for _, p := range ready {
				delete(latest, p)
				docs = append(docs, types.Document{Path: p})
			}
			s.immediate.PushBack(types.NewAddEvent(docs))
			s.sink.SetQueueDepth("immediate", s.immediate.Len())
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.PollIdle):
		}
	}
}
