package diag

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Sink is the diagnostic sink external collaborators are given: structured
// log events that are always visible, a sideband "AST COMPLETE" marker,
// and Prometheus counters/gauges describing pipeline health. One Sink is
// shared by the coalescer, indexer, and resolver tasks.
type Sink struct {
	logger   *log.Logger
	sideband io.Writer
	mu       sync.Mutex

	parsedTotal     prometheus.Counter
	symbolsTotal    prometheus.Counter
	unparsedTotal   *prometheus.CounterVec
	resolveDuration *prometheus.HistogramVec
	queueDepth      *prometheus.GaugeVec
	holdOff         prometheus.Gauge
}

// NewSink builds a Sink writing structured lines to logOut and the
// "AST COMPLETE" marker to sidebandOut. Either may be io.Discard.
// Metrics are registered against reg; pass a fresh *prometheus.Registry
// per Sink to avoid duplicate-registration panics across tests.
func NewSink(logOut, sidebandOut io.Writer, reg prometheus.Registerer) *Sink {
	s := &Sink{
		logger:   log.New(logOut, "", log.LstdFlags),
		sideband: sidebandOut,
		parsedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "astidx_parsed_files_total",
			Help: "Documents successfully read and parsed by the Parser/Indexer.",
		}),
		symbolsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "astidx_symbols_indexed_total",
			Help: "SymbolInstances written to the index store.",
		}),
		unparsedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "astidx_unparsed_total",
			Help: "Documents skipped due to read or parse failure, by reason.",
		}, []string{"reason"}),
		resolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "astidx_resolve_pass_duration_seconds",
			Help:    "Duration of each Resolver pass.",
			Buckets: prometheus.DefBuckets,
		}, []string{"pass"}),
		queueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "astidx_queue_depth",
			Help: "Number of events currently queued, by queue name.",
		}, []string{"queue"}),
		holdOff: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "astidx_hold_off",
			Help: "1 while ingest is active and the Resolver must not start a pass, 0 otherwise.",
		}),
	}
	if reg != nil {
		reg.MustRegister(s.parsedTotal, s.symbolsTotal, s.unparsedTotal, s.resolveDuration, s.queueDepth, s.holdOff)
	}
	return s
}

// Info logs an always-visible structured event.
func (s *Sink) Info(component, format string, args ...interface{}) {
	s.logger.Printf("[%s] %s", component, fmt.Sprintf(format, args...))
}

// Warn logs an always-visible warning, for recoverable per-document
// failures: file read failure, parse failure.
func (s *Sink) Warn(component, format string, args ...interface{}) {
	s.logger.Printf("[%s] WARN: %s", component, fmt.Sprintf(format, args...))
}

// Complete writes the literal "AST COMPLETE" marker to the sideband
// stream and logs the same event through the structured logger.
func (s *Sink) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.sideband, "AST COMPLETE")
	s.logger.Printf("[RS] AST COMPLETE")
}

// RecordParsed increments the parsed-files counter.
func (s *Sink) RecordParsed(n int) {
	if n <= 0 {
		return
	}
	s.parsedTotal.Add(float64(n))
}

// RecordSymbols increments the indexed-symbols counter.
func (s *Sink) RecordSymbols(n int) {
	if n <= 0 {
		return
	}
	s.symbolsTotal.Add(float64(n))
}

// RecordUnparsed increments the per-reason unparsed counter.
func (s *Sink) RecordUnparsed(reason string, n int) {
	s.unparsedTotal.WithLabelValues(reason).Add(float64(n))
}

// RecordResolvePass observes how long a named resolve pass took.
func (s *Sink) RecordResolvePass(pass string, d time.Duration) {
	s.resolveDuration.WithLabelValues(pass).Observe(d.Seconds())
}

// SetQueueDepth reports the current depth of a named queue.
func (s *Sink) SetQueueDepth(queue string, depth int) {
	s.queueDepth.WithLabelValues(queue).Set(float64(depth))
}

// SetHoldOff reports the current HoldOff flag value.
func (s *Sink) SetHoldOff(on bool) {
	if on {
		s.holdOff.Set(1)
	} else {
		s.holdOff.Set(0)
	}
}
