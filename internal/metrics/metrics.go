// Package metrics exposes Prometheus instrumentation for the facade's
// three operations. The core itself stays a pure function of its inputs
// (spec.md §5); this package is an optional, side-effect-only observer a
// caller can register against its own registry — nothing in the core
// depends on it.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Operation names used as the "op" label value across the metrics below.
const (
	OpGenerate = "generate"
	OpRecover  = "recover"
	OpConvert  = "convert"
)

var (
	// CallsTotal counts facade invocations by operation and outcome.
	CallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wordvault",
			Name:      "facade_calls_total",
			Help:      "Total facade operation calls, by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	// DerivationSeconds times the Argon2id-bound seed-to-key derivation
	// pipeline. spec.md §5 expects "a few hundred milliseconds on
	// commodity hardware" per call; these buckets straddle that range.
	DerivationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wordvault",
			Name:      "derivation_seconds",
			Help:      "Wall-clock time spent in the Argon2id-based key derivation pipeline.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)
)

// Register adds every collector in this package to reg. Callers that do
// not want Prometheus metrics simply never call this.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{CallsTotal, DerivationSeconds} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveCall records the outcome of one facade call.
func ObserveCall(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	CallsTotal.WithLabelValues(op, outcome).Inc()
}
