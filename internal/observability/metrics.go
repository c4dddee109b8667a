// Package observability exposes dupscan's run metrics (scan duration,
// pairs considered/admitted/scored, groups found) as Prometheus
// collectors, adapted from the host's own independent-registry-per-run
// Prometheus handler.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds dupscan's run-scoped Prometheus collectors, registered
// against an independent registry so repeated runs within one process
// (e.g. tests) never collide on re-registration.
type Metrics struct {
	registry *prometheus.Registry

	ScanDuration     prometheus.Histogram
	PairsConsidered  prometheus.Counter
	PairsAdmitted    prometheus.Counter
	PairsScored      prometheus.Counter
	GroupsFound      prometheus.Counter
	MethodsEligible  prometheus.Counter
	FilesParsed      prometheus.Counter
	FileParseErrors  prometheus.Counter
}

// New registers a fresh set of collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dupscan_scan_duration_seconds",
			Help:    "Wall-clock duration of a full detection run.",
			Buckets: prometheus.DefBuckets,
		}),
		PairsConsidered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dupscan_pairs_considered_total",
			Help: "Unordered eligible method pairs examined during candidate generation.",
		}),
		PairsAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dupscan_pairs_admitted_total",
			Help: "Pairs that passed the fingerprint admission predicate.",
		}),
		PairsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dupscan_pairs_scored_total",
			Help: "Pairs run through the full similarity scorer.",
		}),
		GroupsFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dupscan_groups_found_total",
			Help: "Duplicate groups assembled by a detection run.",
		}),
		MethodsEligible: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dupscan_methods_eligible_total",
			Help: "Methods that passed the eligibility filter.",
		}),
		FilesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dupscan_files_parsed_total",
			Help: "Source files successfully parsed.",
		}),
		FileParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dupscan_file_parse_errors_total",
			Help: "Source files that failed to parse and were skipped.",
		}),
	}

	registry.MustRegister(
		m.ScanDuration, m.PairsConsidered, m.PairsAdmitted, m.PairsScored,
		m.GroupsFound, m.MethodsEligible, m.FilesParsed, m.FileParseErrors,
	)

	return m
}

// Handler returns the /metrics scrape endpoint for this Metrics' registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NewServer builds the /metrics HTTP server for addr. The caller is
// responsible for running it (typically via a goroutine calling
// ListenAndServe) and shutting it down when the scan completes.
func NewServer(addr string, m *Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	return &http.Server{Addr: addr, Handler: mux}
}
