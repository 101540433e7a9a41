// internal/api/server.go
package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/schemesetu/scheme-engine/internal/common/config"
	apperrors "github.com/schemesetu/scheme-engine/internal/common/errors"
	"github.com/schemesetu/scheme-engine/internal/common/logger"
	"github.com/schemesetu/scheme-engine/internal/common/observability"
	"github.com/schemesetu/scheme-engine/internal/corpus"
	"github.com/schemesetu/scheme-engine/internal/engine/rank"
	"github.com/schemesetu/scheme-engine/internal/enrichment"
	"github.com/schemesetu/scheme-engine/pkg/vocabulary"
)

// Server wires the matching engine, corpus store, and enrichment client into
// the HTTP surface. Handlers hold no mutable state of their own; everything
// request-scoped lives on the stack.
type Server struct {
	config    *config.Config
	store     *corpus.Store
	source    corpus.Source
	tables    *vocabulary.Tables
	enricher  *enrichment.Client
	obs       *observability.Observability
	errors    *apperrors.ErrorHandler
	logger    logger.Logger
	startedAt time.Time
}

// Options carries the collaborators main assembles at boot. Enricher, Obs,
// and Tables may be nil; the server falls back to no enrichment, no otel
// recording, and the built-in vocabulary.
type Options struct {
	Config   *config.Config
	Store    *corpus.Store
	Source   corpus.Source
	Tables   *vocabulary.Tables
	Enricher *enrichment.Client
	Obs      *observability.Observability
	Logger   logger.Logger
}

func NewServer(opts Options) *Server {
	tables := opts.Tables
	if tables == nil {
		tables = vocabulary.Default()
	}
	return &Server{
		config:    opts.Config,
		store:     opts.Store,
		source:    opts.Source,
		tables:    tables,
		enricher:  opts.Enricher,
		obs:       opts.Obs,
		errors:    apperrors.NewErrorHandler(opts.Logger),
		logger:    opts.Logger,
		startedAt: time.Now().UTC(),
	}
}

// Routes builds the full handler tree, request logging included.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/match", s.handleMatch)
	mux.HandleFunc("GET /api/v1/schemes", s.handleListSchemes)
	mux.HandleFunc("POST /api/v1/schemes/resolve", s.handleResolveScheme)
	mux.HandleFunc("POST /api/v1/corpus/reload", s.handleCorpusReload)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s.withRequestContext(mux)
}

// ranker builds a per-request ranking pipeline. topK <= 0 keeps the
// configured default.
func (s *Server) ranker(topK int) *rank.Ranker {
	cfg := rank.Config{
		TopK:              s.config.Matching.TopK,
		MinScore:          s.config.Matching.MinScore,
		DisableSectorVeto: s.config.Matching.DisableSectorVeto,
	}
	if topK > 0 {
		cfg.TopK = topK
	}
	return rank.NewRanker(cfg, s.tables, s.logger)
}
