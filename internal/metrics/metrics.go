// Package metrics provides Prometheus instrumentation for the match
// lifecycle: like throughput, match creation, and suggestion batch runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LikesTotal counts recordLike outcomes, labeled by result:
	// "created", "repeat", or "rejected".
	LikesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mangala_likes_total",
		Help: "Total number of like requests processed",
	}, []string{"result"})

	// MatchesTotal counts matches created by the promoter.
	MatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mangala_matches_total",
		Help: "Total number of matches created",
	})

	// SuggestionsCreated counts suggestion rows written by batch runs.
	SuggestionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mangala_suggestions_created_total",
		Help: "Total number of suggestion rows created by batch runs",
	})

	// SuggestionRunErrors counts per-user failures inside batch runs.
	SuggestionRunErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mangala_suggestion_run_errors_total",
		Help: "Total number of per-user errors during suggestion batch runs",
	})

	// SuggestionRunDuration records wall time of whole batch runs.
	SuggestionRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mangala_suggestion_run_duration_seconds",
		Help:    "Duration of suggestion batch runs in seconds",
		Buckets: []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300},
	})
)

func init() {
	prometheus.MustRegister(
		LikesTotal,
		MatchesTotal,
		SuggestionsCreated,
		SuggestionRunErrors,
		SuggestionRunDuration,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
