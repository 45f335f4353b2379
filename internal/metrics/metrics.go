// Package metrics holds the Prometheus collectors for graph construction and
// forward passes. They are registered with the default registry at init and
// exposed on /metrics by the health server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/noma/internal/graph"
)

var (
	// NodesCreated counts graph nodes by kind.
	NodesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noma_nodes_created_total",
			Help: "Total number of graph nodes created, by node kind",
		},
		[]string{"kind"},
	)

	// ForwardPasses counts forward passes by outcome.
	ForwardPasses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noma_forward_passes_total",
			Help: "Total number of forward passes, by outcome",
		},
		[]string{"outcome"},
	)

	// ForwardPassDuration tracks how long forward passes take.
	ForwardPassDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "noma_forward_pass_duration_seconds",
			Help:    "Duration of forward passes in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)

	// CompileErrors counts functions that failed to compile, by error kind.
	CompileErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noma_compile_errors_total",
			Help: "Total number of functions that failed to compile, by reason",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(NodesCreated)
	prometheus.MustRegister(ForwardPasses)
	prometheus.MustRegister(ForwardPassDuration)
	prometheus.MustRegister(CompileErrors)
}

// Outcome labels for ForwardPasses.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ObserveGraph adds every node of g to NodesCreated.
func ObserveGraph(g *graph.ComputationalGraph) {
	for _, n := range g.Nodes() {
		NodesCreated.WithLabelValues(n.Type.Kind().String()).Inc()
	}
}

// ObserveForwardPass records one pass that started at start and ended with err.
func ObserveForwardPass(start time.Time, err error) {
	ForwardPassDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		ForwardPasses.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	ForwardPasses.WithLabelValues(OutcomeSuccess).Inc()
}

// ObserveCompileError records a failed compilation under reason.
func ObserveCompileError(reason string) {
	CompileErrors.WithLabelValues(reason).Inc()
}

// WriteTextfile writes the default registry in the node exporter textfile
// format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
