// Package engine implements the Command Dispatcher and the RECORD and
// CLASSIFY orchestrations of spec.md §4.7: it parses a positional argument
// stream into a Configuration and a command, and glues the Frequency
// Store, Candidate Index and Similarity Kernel together to serve it.
package engine

import (
	"github.com/c2h5oh/datasize"
	ethlog "github.com/ethereum/go-ethereum/log"

	"github.com/ledgerwatch/bandindex/index"
	"github.com/ledgerwatch/bandindex/kv"
	"github.com/ledgerwatch/bandindex/metrics"
)

// Options are deployment-level knobs that sit alongside the
// per-request Configuration: cache sizing, size guards and feature flags
// that spec.md leaves as Open Questions (§9) rather than wire parameters.
type Options struct {
	// FrequencyCacheSize sizes the Frequency Store's read cache, which is
	// built fresh for each request; <= 0 disables it.
	FrequencyCacheSize int

	// MaxFrequencyBytes bounds the decoded size of one request's
	// frequencies grammar; 0 disables the guard.
	MaxFrequencyBytes datasize.ByteSize

	// SkipThresholdOnEmptyQuery adopts the behavior spec.md §9 Open
	// Question 3 describes as a reference-code comment that was never
	// implemented: under STRICT, skip the threshold check entirely for
	// queries whose frequencies are empty. Defaults to false, matching
	// the reference's actual (not commented-intent) behavior.
	SkipThresholdOnEmptyQuery bool

	// Metrics, if non-nil, receives ambient instrumentation. A nil value
	// disables all metrics recording with no other behavior change.
	Metrics *metrics.Collector

	// Log receives structured log events. A nil value installs
	// ethlog.Root(), the package default logger.
	Log ethlog.Logger
}

func (o Options) logger() ethlog.Logger {
	if o.Log != nil {
		return o.Log
	}
	return ethlog.Root()
}

// Engine holds the Storage Adapter handle and Options shared across
// requests. It holds no other per-request state: every Frequency Store
// and Candidate Index instance is built fresh for the Configuration of
// the request being served, since both depend on the request's scope,
// bands, window and retention.
type Engine struct {
	store kv.Store
	opts  Options
}

// New constructs an Engine over store.
func New(store kv.Store, opts Options) *Engine {
	return &Engine{store: store, opts: opts}
}

func (e *Engine) frequencyStore(cfg Configuration) *index.FrequencyStore {
	return index.NewFrequencyStore(e.store, cfg.Scope, cfg.Bands, cfg.Window, cfg.Retention, e.opts.FrequencyCacheSize)
}

func (e *Engine) candidateIndex(cfg Configuration) *index.CandidateIndex {
	return index.NewCandidateIndex(e.store, cfg.Scope, cfg.Window, cfg.Retention)
}
