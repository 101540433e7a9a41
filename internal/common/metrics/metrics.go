// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheme_engine_match_requests_total",
			Help: "Total number of match requests by outcome",
		},
		[]string{"status"},
	)

	MatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "scheme_engine_match_duration_seconds",
			Help: "Duration of full ranking runs in seconds",
		},
		[]string{"status"},
	)

	SchemesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheme_engine_schemes_scored_total",
			Help: "Total number of schemes scored across all ranking runs",
		},
	)

	FallbackRankings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheme_engine_fallback_rankings_total",
			Help: "Ranking runs that used the description-length fallback",
		},
	)

	CorpusSchemes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scheme_engine_corpus_schemes",
			Help: "Number of schemes in the active corpus snapshot",
		},
	)

	CorpusReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheme_engine_corpus_reloads_total",
			Help: "Corpus reload attempts by source and outcome",
		},
		[]string{"source", "status"},
	)

	EnrichmentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheme_engine_enrichment_requests_total",
			Help: "Enrichment overlay attempts by outcome",
		},
		[]string{"outcome"},
	)

	EnrichmentCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheme_engine_enrichment_cache_hits_total",
			Help: "Enrichment results served from cache",
		},
	)
)
