// Package metrics provides ambient, opt-in instrumentation for the
// engine: counters and a histogram a caller can register with their own
// prometheus.Registerer. Passing a nil *Collector to the engine disables
// all instrumentation with no behavior change — metrics are never a
// correctness dependency, matching spec.md's exclusion of metrics policy
// from the core's scope while still carrying the ambient observability
// every service in this corpus carries.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector holds the engine's prometheus collectors. The zero value is
// not usable; construct with New.
type Collector struct {
	RecordsTotal            prometheus.Counter
	ClassifyTotal           *prometheus.CounterVec
	ClassifyCandidatesFound prometheus.Histogram
}

// New constructs a Collector with fresh collectors under the given
// namespace/subsystem. It does not register them with any registry;
// callers do that themselves via Register.
func New(namespace, subsystem string) *Collector {
	return &Collector{
		RecordsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "records_total",
			Help:      "Total number of RECORD requests processed.",
		}),
		ClassifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "classify_total",
			Help:      "Total number of CLASSIFY requests processed, by filter discipline.",
		}, []string{"discipline"}),
		ClassifyCandidatesFound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "classify_candidates_found",
			Help:      "Number of candidates emitted as results per CLASSIFY request.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}

// Register registers every collector in c with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, coll := range []prometheus.Collector{c.RecordsTotal, c.ClassifyTotal, c.ClassifyCandidatesFound} {
		if err := reg.Register(coll); err != nil {
			return err
		}
	}
	return nil
}
