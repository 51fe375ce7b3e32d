// Package ingest is the three-stage concurrent pipeline: the Cooldown
// Coalescer (CC), the Parser/Indexer (PI), and the Resolver (RS), sharing
// a DelayedQueue, an ImmediateQueue, a HoldOff flag, and an IndexStore
// (internal/symbolstore).
//
//   - CC (coalescer.go) debounces per-path edits and emits batched Add
//     events to the ImmediateQueue after a quiet period, or propagates a
//     Reset immediately.
//   - PI (indexer.go) drains the ImmediateQueue, resolves each document's
//     text, parses documents in parallel, and applies symbol deltas to IX
//     under a per-file write lock.
//   - RS (resolver.go) runs the three global resolve passes once ingest
//     goes quiet, then rebuilds IX's ancillary indexes and marks it
//     updated.
//
// Queues and the HoldOff flag are internal to this package; external
// producers only ever see Service.Enqueue and Service.Start.
package ingest

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/standardbeagle/astidx/internal/contracts"
	"github.com/standardbeagle/astidx/internal/diag"
	"github.com/standardbeagle/astidx/internal/hostctx"
	"github.com/standardbeagle/astidx/internal/types"
)

// Event is the unit of work producers submit.
type Event = types.Event

// Config holds the pipeline's tunables. Zero values are not meaningful;
// use DefaultConfig and override individual fields.
type Config struct {
	// Cooldown is the minimum debounce window per path before CC flushes
	// it to the ImmediateQueue (recognized option: cooldown_secs).
	Cooldown time.Duration
	// BatchCap is the hard limit on documents per CC-emitted Add event.
	BatchCap int
	// PollIdle is how long PI and CC sleep on an empty queue.
	PollIdle time.Duration
	// ResolvePoll is how often RS checks HoldOff while it is set.
	ResolvePoll time.Duration
	// ResolveRecheck is how often RS checks NeedUpdate when not dirty.
	ResolveRecheck time.Duration
	// ParseWorkers bounds PI's parallel parse fan-out; 0 means
	// runtime.NumCPU().
	ParseWorkers int
}

// DefaultConfig returns the documented pipeline defaults.
func DefaultConfig() Config {
	return Config{
		Cooldown:       2 * time.Second,
		BatchCap:       32,
		PollIdle:       1 * time.Second,
		ResolvePoll:    100 * time.Millisecond,
		ResolveRecheck: 5 * time.Second,
		ParseWorkers:   0,
	}
}

// Service is the facade external producers and the host's supervisor use.
// The zero value is not usable; use New.
type Service struct {
	delayed   *queue
	immediate *queue
	holdOff   atomic.Bool

	store    contracts.IndexStore
	resolver contracts.FileTextResolver
	parser   contracts.Parser
	sink     *diag.Sink
	cfg      Config

	ctx    context.Context
	cancel context.CancelFunc
}

// New wires a Service against its collaborators. None of resolver, parser,
// store, or sink may be nil.
func New(resolver contracts.FileTextResolver, parser contracts.Parser, store contracts.IndexStore, sink *diag.Sink, cfg Config) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		delayed:   newQueue(),
		immediate: newQueue(),
		store:     store,
		resolver:  resolver,
		parser:    parser,
		sink:      sink,
		cfg:       cfg,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Enqueue is the sole entry point external producers use. If force is
// true the event bypasses CC entirely and lands directly on the
// ImmediateQueue, including Reset events — which does NOT clear the
// ImmediateQueue first; that asymmetry with the delayed-Reset path is
// intentional and preserved verbatim (see DESIGN.md). Enqueue never
// blocks beyond the queue's own short critical section.
func (s *Service) Enqueue(event Event, force bool) {
	if force {
		s.immediate.PushBack(event)
		return
	}
	s.delayed.PushBack(event)
}

// TaskHandles are the joinable handles Start returns, one per pipeline
// task, so a supervisor can wait for cooperative shutdown to finish.
type TaskHandles struct {
	Coalescer <-chan struct{}
	Indexer   <-chan struct{}
	Resolver  <-chan struct{}
}

// Start spawns CC, PI, and RS once and returns their task handles. host is
// weakened immediately: Start itself never blocks the host's own
// shutdown, even though the tasks it spawns keep running until the weak
// handle fails to upgrade (PI) or the supervisor calls Stop — the
// coalescer and resolver terminate only when their task handles are
// aborted by the supervisor.
func (s *Service) Start(host *hostctx.Context) TaskHandles {
	weak := hostctx.Weaken(host)

	coalescerDone := make(chan struct{})
	indexerDone := make(chan struct{})
	resolverDone := make(chan struct{})

	go func() {
		defer close(coalescerDone)
		s.runCoalescer(s.ctx)
	}()
	go func() {
		defer close(indexerDone)
		s.runIndexer(s.ctx, weak)
	}()
	go func() {
		defer close(resolverDone)
		s.runResolver(s.ctx)
	}()

	return TaskHandles{Coalescer: coalescerDone, Indexer: indexerDone, Resolver: resolverDone}
}

// Stop aborts CC and RS at their next poll/sleep check, and interrupts
// PI's own sleep too (PI's primary shutdown path remains the weak host
// handle failing to upgrade; Stop is the supervisor escape hatch granted
// to the coalescer and resolver directly).
func (s *Service) Stop() {
	s.cancel()
}
