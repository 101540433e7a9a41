// internal/corpus/elasticsearch_test.go
package corpus

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemesetu/scheme-engine/internal/common/config"
	"github.com/schemesetu/scheme-engine/internal/common/database"
)

func newESTestServer(t *testing.T, handler http.HandlerFunc) *database.ElasticsearchClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := database.NewElasticsearch(config.ElasticsearchConfig{URL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestElasticsearchSourceLoad(t *testing.T) {
	client := newESTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"hits": {
				"hits": [
					{"_id": "es-1", "_source": {"title": "PM Kisan", "eligibility": "Farmers above 18", "category": "Agriculture"}},
					{"_id": "es-2", "_source": {"id": "own-id", "title": "Scholarship"}},
					{"_id": "es-3", "_source": {"title": "   "}}
				]
			}
		}`)
	})

	src := NewElasticsearchSource(client, "schemes", 100)
	schemes, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, schemes, 2)
	assert.Equal(t, "es-1", schemes[0].ID)
	assert.Equal(t, "PM Kisan", schemes[0].Title)
	assert.Equal(t, "Farmers above 18", schemes[0].EligibilityText)

	// A document id inside _source wins over the hit id.
	assert.Equal(t, "own-id", schemes[1].ID)
}

func TestElasticsearchSourceSearchError(t *testing.T) {
	client := newESTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": {"reason": "index corrupted"}}`)
	})

	src := NewElasticsearchSource(client, "schemes", 100)
	_, err := src.Load(context.Background())
	assert.Error(t, err)
}
