package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "descent_runs_total",
		Help: "Optimization runs by algorithm and outcome.",
	}, []string{"algorithm", "outcome"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "descent_run_duration_seconds",
		Help:    "Wall time of optimization runs.",
		Buckets: prometheus.DefBuckets,
	}, []string{"algorithm"})

	functionEvals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "descent_function_evaluations_total",
		Help: "Objective evaluations reported by finished runs.",
	}, []string{"algorithm"})
)

// outcomeLabel maps a run result to the metric outcome label.
func outcomeLabel(success bool) string {
	if success {
		return "converged"
	}
	return "budget_exhausted"
}
