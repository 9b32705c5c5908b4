package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EstimatesBuilt = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "estimates_built_total",
		Help: "Estimates produced by the normalization pipeline",
	})
	StructuredParseFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "estimate_structured_parse_failures_total",
		Help: "Generator responses that fell through to free-text parsing",
	})
	SyntheticFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "estimate_synthetic_fallbacks_total",
		Help: "Estimates that required a synthetic default line item",
	})
	GeneratorCalls = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "estimate_generator_calls_total",
		Help: "Calls made to the text-generation backend",
	})
	GeneratorCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "estimate_generator_cache_hits_total",
		Help: "Generator responses served from the response cache",
	})
)

// Start registers the pipeline counters and serves /metrics on the
// given port in the background.
func Start(port string) {
	prometheus.MustRegister(
		EstimatesBuilt,
		StructuredParseFailures,
		SyntheticFallbacks,
		GeneratorCalls,
		GeneratorCacheHits,
	)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(":"+port, nil)
	}()
}
