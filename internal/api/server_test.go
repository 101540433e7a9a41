// internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemesetu/scheme-engine/internal/common/config"
	apperrors "github.com/schemesetu/scheme-engine/internal/common/errors"
	"github.com/schemesetu/scheme-engine/internal/common/logger"
	"github.com/schemesetu/scheme-engine/internal/corpus"
	"github.com/schemesetu/scheme-engine/internal/models"
)

type stubSource struct {
	schemes []models.Scheme
	err     error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(ctx context.Context) ([]models.Scheme, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.schemes, nil
}

func testSchemes() []models.Scheme {
	return []models.Scheme{
		{
			ID:              "s1",
			Title:           "National Scholarship Portal",
			Description:     "Merit scholarship for students pursuing higher education.",
			EligibilityText: "Students between 18 and 25 years. Annual income below 250000.",
			Category:        "Education",
			ApplicationURL:  "https://scholarships.gov.in",
		},
		{
			ID:              "s2",
			Title:           "PM Kisan Samman Nidhi",
			Description:     "Income support for farmer families via kisan transfers.",
			EligibilityText: "Farmers with cultivable land. Annual income up to 200000.",
			Category:        "Agriculture",
			ApplicationURL:  "https://pmkisan.gov.in",
		},
		{
			ID:              "s3",
			Title:           "Senior Pension Scheme",
			Description:     "Monthly pension for senior citizens.",
			EligibilityText: "Citizens above 60 years.",
			Category:        "Social Welfare",
			ApplicationURL:  "N/A",
		},
		{
			ID:              "s4",
			Title:           "State Education Grant",
			Description:     "Tuition grant for students in state colleges.",
			EligibilityText: "Students up to 30 years.",
			Category:        "Education",
			State:           "Tamil Nadu",
			ApplicationURL:  "https://tn.gov.in/grants",
		},
	}
}

func newTestServer(t *testing.T, schemes []models.Scheme) *httptest.Server {
	t.Helper()

	log := logger.NewTestLogger(t)
	store := corpus.NewStore(log)
	src := &stubSource{schemes: schemes}
	if len(schemes) > 0 {
		require.NoError(t, store.Reload(context.Background(), src))
	}

	cfg := &config.Config{}
	cfg.App.Version = "test"
	cfg.Matching.TopK = 4
	cfg.Matching.MinScore = 15

	srv := NewServer(Options{
		Config: cfg,
		Store:  store,
		Source: src,
		Logger: log,
	})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestMatchEndpoint(t *testing.T) {
	ts := newTestServer(t, testSchemes())

	tests := []struct {
		name           string
		body           string
		wantStatus     int
		validateOutput func(t *testing.T, body map[string]interface{})
	}{
		{
			name:       "student profile ranks the scholarship first",
			body:       `{"profile":{"name":"Asha","age":"22","state":"Tamil Nadu","occupation":"student","purpose":"education scholarship","income":"200000"}}`,
			wantStatus: http.StatusOK,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				results, ok := body["results"].([]interface{})
				require.True(t, ok)
				require.NotEmpty(t, results)

				first := results[0].(map[string]interface{})
				scheme := first["scheme"].(map[string]interface{})
				assert.Equal(t, "s1", scheme["id"])
				assert.Equal(t, false, body["fallback"])
				assert.NotEmpty(t, body["corpusVersion"])
				assert.NotEmpty(t, body["requestId"])

				// The farm transfer scheme must not surface for an education goal.
				for _, r := range results {
					id := r.(map[string]interface{})["scheme"].(map[string]interface{})["id"]
					assert.NotEqual(t, "s2", id)
				}
			},
		},
		{
			name:       "numeric age and income are coerced",
			body:       `{"profile":{"age":22,"income":200000,"occupation":"student","purpose":"education"}}`,
			wantStatus: http.StatusOK,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				results := body["results"].([]interface{})
				assert.NotEmpty(t, results)
			},
		},
		{
			name:       "top_k caps the result count",
			body:       `{"profile":{"age":"22","occupation":"student","purpose":"education"},"top_k":1}`,
			wantStatus: http.StatusOK,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				results := body["results"].([]interface{})
				assert.Len(t, results, 1)
			},
		},
		{
			name:       "missing profile rejected",
			body:       `{"top_k":3}`,
			wantStatus: http.StatusBadRequest,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "INVALID_REQUEST", body["code"])
				assert.NotEmpty(t, body["requestId"])
			},
		},
		{
			name:       "top_k outside bounds rejected",
			body:       `{"profile":{"age":"22"},"top_k":500}`,
			wantStatus: http.StatusBadRequest,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "INVALID_REQUEST", body["code"])
			},
		},
		{
			name:       "profile as string rejected",
			body:       `{"profile":"not an object"}`,
			wantStatus: http.StatusBadRequest,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "INVALID_REQUEST", body["code"])
			},
		},
		{
			name:       "malformed json rejected",
			body:       `{"profile":{`,
			wantStatus: http.StatusBadRequest,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "INVALID_REQUEST", body["code"])
			},
		},
		{
			name:       "empty profile still answers",
			body:       `{"profile":{}}`,
			wantStatus: http.StatusOK,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				// Nothing to score on: every scheme misses the cutoff and the
				// description fallback kicks in.
				assert.Equal(t, true, body["fallback"])
				assert.NotEmpty(t, body["results"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/v1/match", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			tt.validateOutput(t, decodeBody(t, resp))
		})
	}
}

func TestMatchEndpointEmptyCorpus(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/v1/match", `{"profile":{"age":"22","occupation":"student"}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	results, ok := body["results"].([]interface{})
	require.True(t, ok, "results must be an empty array, not null")
	assert.Empty(t, results)
	assert.Equal(t, false, body["fallback"])
}

func TestListSchemesEndpoint(t *testing.T) {
	ts := newTestServer(t, testSchemes())

	tests := []struct {
		name           string
		query          string
		wantStatus     int
		validateOutput func(t *testing.T, body map[string]interface{})
	}{
		{
			name:       "unfiltered listing returns the corpus",
			query:      "",
			wantStatus: http.StatusOK,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, float64(4), body["count"])
				assert.Equal(t, float64(4), body["total"])
			},
		},
		{
			name:       "sector filter narrows to education",
			query:      "?sector=education",
			wantStatus: http.StatusOK,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				schemes := body["schemes"].([]interface{})
				require.Len(t, schemes, 2)
				assert.Equal(t, "s1", schemes[0].(map[string]interface{})["id"])
				assert.Equal(t, "s4", schemes[1].(map[string]interface{})["id"])
			},
		},
		{
			name:       "state filter matches the state column",
			query:      "?state=tamil+nadu",
			wantStatus: http.StatusOK,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				schemes := body["schemes"].([]interface{})
				require.Len(t, schemes, 1)
				assert.Equal(t, "s4", schemes[0].(map[string]interface{})["id"])
			},
		},
		{
			name:       "limit truncates the listing",
			query:      "?limit=2",
			wantStatus: http.StatusOK,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, float64(2), body["count"])
				assert.Equal(t, float64(4), body["total"])
			},
		},
		{
			name:       "bad max_income rejected",
			query:      "?max_income=lots",
			wantStatus: http.StatusBadRequest,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "INVALID_REQUEST", body["code"])
			},
		},
		{
			name:       "bad limit rejected",
			query:      "?limit=0",
			wantStatus: http.StatusBadRequest,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "INVALID_REQUEST", body["code"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/v1/schemes" + tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			tt.validateOutput(t, decodeBody(t, resp))
		})
	}
}

func TestResolveSchemeEndpoint(t *testing.T) {
	ts := newTestServer(t, testSchemes())

	tests := []struct {
		name           string
		body           string
		wantStatus     int
		validateOutput func(t *testing.T, body map[string]interface{})
	}{
		{
			name:       "partial title resolves",
			body:       `{"name":"national scholarship"}`,
			wantStatus: http.StatusOK,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				scheme := body["scheme"].(map[string]interface{})
				assert.Equal(t, "s1", scheme["id"])
				assert.Greater(t, body["score"].(float64), 0.45)
				assert.Equal(t, "https://scholarships.gov.in", body["resolvedUrl"])
				assert.Equal(t, true, body["hasValidLink"])
			},
		},
		{
			name:       "placeholder url never resolves to a link",
			body:       `{"name":"senior pension"}`,
			wantStatus: http.StatusOK,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				scheme := body["scheme"].(map[string]interface{})
				assert.Equal(t, "s3", scheme["id"])
				assert.Equal(t, false, body["hasValidLink"])
				assert.NotContains(t, body, "resolvedUrl")
			},
		},
		{
			name:       "unknown name reports 404",
			body:       `{"name":"xjqwv"}`,
			wantStatus: http.StatusNotFound,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "SCHEME_NOT_FOUND", body["code"])
			},
		},
		{
			name:       "blank name rejected",
			body:       `{"name":"   "}`,
			wantStatus: http.StatusBadRequest,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "INVALID_REQUEST", body["code"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/v1/schemes/resolve", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			tt.validateOutput(t, decodeBody(t, resp))
		})
	}
}

func TestCorpusReloadEndpoint(t *testing.T) {
	t.Run("reload swaps in a fresh snapshot", func(t *testing.T) {
		ts := newTestServer(t, testSchemes())

		resp := postJSON(t, ts.URL+"/api/v1/corpus/reload", "{}")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "reloaded", body["status"])
		assert.Equal(t, "stub", body["source"])
		assert.Equal(t, float64(4), body["schemes"])
		assert.NotEmpty(t, body["corpusVersion"])
		assert.NotEmpty(t, body["checksum"])
	})

	t.Run("source failure keeps serving and maps to 503", func(t *testing.T) {
		log := logger.NewTestLogger(t)
		store := corpus.NewStore(log)
		good := &stubSource{schemes: testSchemes()}
		require.NoError(t, store.Reload(context.Background(), good))

		cfg := &config.Config{}
		cfg.Matching.TopK = 4
		cfg.Matching.MinScore = 15

		srv := NewServer(Options{
			Config: cfg,
			Store:  store,
			Source: &stubSource{err: apperrors.NewCorpusSourceUnavailableError("stub", assert.AnError)},
			Logger: log,
		})
		ts := httptest.NewServer(srv.Routes())
		defer ts.Close()

		resp := postJSON(t, ts.URL+"/api/v1/corpus/reload", "{}")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "CORPUS_SOURCE_UNAVAILABLE", body["code"])

		// The earlier snapshot still answers.
		ready, err := http.Get(ts.URL + "/ready")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, ready.StatusCode)
		ready.Body.Close()
	})
}

func TestHealthAndReady(t *testing.T) {
	t.Run("ready reports 503 before the first load", func(t *testing.T) {
		ts := newTestServer(t, nil)

		resp, err := http.Get(ts.URL + "/ready")
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "not_ready", body["status"])

		health, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, health.StatusCode)
		hb := decodeBody(t, health)
		assert.Equal(t, "healthy", hb["status"])
	})

	t.Run("ready reports 200 once schemes are loaded", func(t *testing.T) {
		ts := newTestServer(t, testSchemes())

		resp, err := http.Get(ts.URL + "/ready")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "ready", body["status"])
		assert.Equal(t, float64(4), body["schemes"])
	})
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t, testSchemes())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/match",
		bytes.NewReader([]byte(`{"profile":{"age":"22","occupation":"student","purpose":"education"}}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "trace-me-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, "trace-me-123", resp.Header.Get("X-Request-ID"))

	body := decodeBody(t, resp)
	assert.Equal(t, "trace-me-123", body["requestId"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, testSchemes())

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
