package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReactionToggles counts committed like toggles by entity kind and direction (like|unlike).
	ReactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "articleboard_reaction_toggles_total",
		Help: "Committed like/unlike toggles.",
	}, []string{"kind", "direction"})

	// ReactionToggleDuration observes how long the toggle transaction takes.
	ReactionToggleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "articleboard_reaction_toggle_duration_seconds",
		Help:    "Latency of the like toggle unit of work.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	ArticleCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "articleboard_article_cache_hits_total",
		Help: "Article detail reads served from cache.",
	})

	ArticleCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "articleboard_article_cache_misses_total",
		Help: "Article detail reads that went to the database.",
	})
)

// Direction returns the label value for a toggle result.
func Direction(liked bool) string {
	if liked {
		return "like"
	}
	return "unlike"
}
