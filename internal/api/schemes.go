// internal/api/schemes.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/schemesetu/scheme-engine/internal/common/errors"
	"github.com/schemesetu/scheme-engine/internal/corpus"
	"github.com/schemesetu/scheme-engine/internal/models"
)

type schemeListResponse struct {
	Schemes       []models.Scheme `json:"schemes"`
	Count         int             `json:"count"`
	Total         int             `json:"total"`
	CorpusVersion string          `json:"corpusVersion"`
	RequestID     string          `json:"requestId"`
}

func (s *Server) handleListSchemes(w http.ResponseWriter, r *http.Request) {
	requestID := RequestID(r.Context())
	q := r.URL.Query()

	opts := corpus.FilterOptions{
		State:  q.Get("state"),
		Sector: q.Get("sector"),
		Query:  q.Get("q"),
	}
	if raw := q.Get("max_income"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			s.errors.RespondError(w, requestID,
				apperrors.NewInvalidRequestError("max_income must be a non-negative integer"))
			return
		}
		opts.MaxIncome = &v
	}
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			s.errors.RespondError(w, requestID,
				apperrors.NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		opts.Limit = v
	}

	snap := s.store.Snapshot()
	schemes := corpus.Filter(snap.Schemes, opts)
	if schemes == nil {
		schemes = []models.Scheme{}
	}

	s.writeJSON(w, http.StatusOK, schemeListResponse{
		Schemes:       schemes,
		Count:         len(schemes),
		Total:         len(snap.Schemes),
		CorpusVersion: snap.Version,
		RequestID:     requestID,
	})
}

type resolveRequest struct {
	Name string `json:"name"`
}

type resolveResponse struct {
	Scheme        models.Scheme `json:"scheme"`
	Score         float64       `json:"score"`
	ResolvedURL   string        `json:"resolvedUrl,omitempty"`
	HasValidLink  bool          `json:"hasValidLink"`
	CorpusVersion string        `json:"corpusVersion"`
	RequestID     string        `json:"requestId"`
}

// handleResolveScheme maps a user-typed scheme name to its best corpus
// match. Names below the lookup confidence floor report 404 rather than a
// wrong scheme.
func (s *Server) handleResolveScheme(w http.ResponseWriter, r *http.Request) {
	requestID := RequestID(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errors.RespondError(w, requestID,
			apperrors.NewInvalidRequestError("request body must be a JSON object: "+err.Error()))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.errors.RespondError(w, requestID,
			apperrors.NewInvalidRequestError("name is required"))
		return
	}

	snap := s.store.Snapshot()
	match, ok := corpus.Lookup(snap.Schemes, req.Name)
	if !ok {
		s.errors.RespondError(w, requestID, apperrors.NewSchemeNotFoundError(req.Name))
		return
	}

	resolvedURL, hasLink := corpus.NormalizeURL(match.Scheme.ApplicationURL)
	s.writeJSON(w, http.StatusOK, resolveResponse{
		Scheme:        match.Scheme,
		Score:         match.Score,
		ResolvedURL:   resolvedURL,
		HasValidLink:  hasLink,
		CorpusVersion: snap.Version,
		RequestID:     requestID,
	})
}

type reloadResponse struct {
	Status        string `json:"status"`
	Source        string `json:"source"`
	Schemes       int    `json:"schemes"`
	CorpusVersion string `json:"corpusVersion"`
	Checksum      string `json:"checksum"`
	LoadedAt      string `json:"loadedAt"`
	RequestID     string `json:"requestId"`
}

// handleCorpusReload pulls a fresh snapshot from the configured source. On
// failure the previous snapshot keeps serving and the source error maps to
// the response status.
func (s *Server) handleCorpusReload(w http.ResponseWriter, r *http.Request) {
	requestID := RequestID(r.Context())

	if s.source == nil {
		s.errors.RespondError(w, requestID,
			apperrors.NewCorpusSourceUnavailableError("unconfigured", errors.New("no corpus source configured")))
		return
	}
	if err := s.store.Reload(r.Context(), s.source); err != nil {
		s.errors.RespondError(w, requestID, err)
		return
	}

	snap := s.store.Snapshot()
	s.writeJSON(w, http.StatusOK, reloadResponse{
		Status:        "reloaded",
		Source:        snap.Source,
		Schemes:       len(snap.Schemes),
		CorpusVersion: snap.Version,
		Checksum:      snap.Checksum,
		LoadedAt:      snap.LoadedAt.Format(time.RFC3339),
		RequestID:     requestID,
	})
}
