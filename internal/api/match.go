// internal/api/match.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/schemesetu/scheme-engine/internal/common/errors"
	"github.com/schemesetu/scheme-engine/internal/common/metrics"
	"github.com/schemesetu/scheme-engine/internal/common/validation"
	"github.com/schemesetu/scheme-engine/internal/models"
)

const maxRequestBody = 1 << 20 // 1 MiB

// matchRequestSchema validates the decoded body before profile coercion.
// age and income carry no type so questionnaires may send them as strings
// or numbers; top_k is bounded to keep response sizes sane.
var matchRequestSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"profile": {
			Type: "object",
			Properties: map[string]validation.Property{
				"name":       {Type: "string", MaxLength: intPtr(200)},
				"age":        {},
				"income":     {},
				"state":      {Type: "string"},
				"occupation": {Type: "string"},
				"purpose":    {Type: "string"},
				"caste":      {Type: "string"},
			},
		},
		"top_k":  {Type: "number", Minimum: floatPtr(1), Maximum: floatPtr(50)},
		"enrich": {Type: "boolean"},
	},
	Required:             []string{"profile"},
	AdditionalProperties: true,
}

type matchResponse struct {
	Results       []models.MatchResult `json:"results"`
	Fallback      bool                 `json:"fallback"`
	CorpusVersion string               `json:"corpusVersion"`
	RequestID     string               `json:"requestId"`
	DurationMs    int64                `json:"durationMs"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	requestID := RequestID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.recordMatch(ctx, start, "invalid")
		s.errors.RespondError(w, requestID,
			apperrors.NewInvalidRequestError("request body must be a JSON object: "+err.Error()))
		return
	}

	if result := validation.ValidateInput(body, matchRequestSchema); !result.Valid {
		s.recordMatch(ctx, start, "invalid")
		s.errors.RespondError(w, requestID,
			apperrors.NewInvalidRequestError(strings.Join(result.GetErrorMessages(), "; ")))
		return
	}

	profileMap, ok := body["profile"].(map[string]interface{})
	if !ok {
		s.recordMatch(ctx, start, "invalid")
		s.errors.RespondError(w, requestID,
			apperrors.NewInvalidProfileError("profile must be a JSON object"))
		return
	}

	topK := 0
	if v, ok := body["top_k"].(float64); ok {
		topK = int(v)
	}
	enrich := true
	if v, ok := body["enrich"].(bool); ok {
		enrich = v
	}

	snap := s.store.Snapshot()
	out := s.ranker(topK).Rank(snap.Schemes, buildProfile(profileMap))

	if enrich && s.enricher != nil {
		out.Results = s.enricher.Overlay(ctx, out.Results)
	}
	if out.Results == nil {
		out.Results = []models.MatchResult{}
	}

	s.recordMatch(ctx, start, "success")
	s.writeJSON(w, http.StatusOK, matchResponse{
		Results:       out.Results,
		Fallback:      out.Fallback,
		CorpusVersion: snap.Version,
		RequestID:     requestID,
		DurationMs:    time.Since(start).Milliseconds(),
	})
}

func (s *Server) recordMatch(ctx context.Context, start time.Time, status string) {
	duration := time.Since(start)
	metrics.MatchRequestsTotal.WithLabelValues(status).Inc()
	metrics.MatchDuration.WithLabelValues(status).Observe(duration.Seconds())
	if s.obs != nil {
		s.obs.RecordMatchProcessed(ctx, status)
		s.obs.RecordMatchDuration(ctx, duration, status)
	}
}

// buildProfile coerces the validated profile map into the raw questionnaire
// shape. Numeric age/income values are rendered back to plain digit strings
// so the normalizer sees "250000", never "2.5e+06".
func buildProfile(m map[string]interface{}) models.UserProfile {
	return models.UserProfile{
		Name:          stringField(m, "name"),
		AgeRaw:        stringField(m, "age"),
		State:         stringField(m, "state"),
		Occupation:    stringField(m, "occupation"),
		Purpose:       stringField(m, "purpose"),
		IncomeRaw:     stringField(m, "income"),
		CasteCategory: stringField(m, "caste"),
	}
}

func stringField(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
