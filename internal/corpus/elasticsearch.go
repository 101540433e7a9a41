// internal/corpus/elasticsearch.go
package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/schemesetu/scheme-engine/internal/common/database"
	apperrors "github.com/schemesetu/scheme-engine/internal/common/errors"
	"github.com/schemesetu/scheme-engine/internal/models"
)

// ElasticsearchSource reads the corpus from a scheme index. Results are
// sorted by _doc so a reload of an unchanged index yields the same order.
type ElasticsearchSource struct {
	es    *database.ElasticsearchClient
	index string
	limit int
}

func NewElasticsearchSource(es *database.ElasticsearchClient, index string, limit int) *ElasticsearchSource {
	return &ElasticsearchSource{es: es, index: index, limit: limit}
}

func (s *ElasticsearchSource) Name() string {
	return "elasticsearch"
}

func (s *ElasticsearchSource) Load(ctx context.Context) ([]models.Scheme, error) {
	search := s.es.Client.Search
	res, err := search(
		search.WithContext(ctx),
		search.WithIndex(s.index),
		search.WithBody(strings.NewReader(`{"query": {"match_all": {}}, "sort": ["_doc"]}`)),
		search.WithSize(s.limit),
	)
	if err != nil {
		return nil, apperrors.NewCorpusSourceUnavailableError("elasticsearch", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewCorpusLoadError("elasticsearch", fmt.Errorf("search failed: %s", res.Status()))
	}

	var body struct {
		Hits struct {
			Hits []struct {
				ID     string        `json:"_id"`
				Source models.Scheme `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, apperrors.NewCorpusDecodeError(err)
	}

	schemes := make([]models.Scheme, 0, len(body.Hits.Hits))
	for i, hit := range body.Hits.Hits {
		scheme := hit.Source
		if strings.TrimSpace(scheme.Title) == "" {
			continue
		}
		if scheme.ID == "" {
			scheme.ID = hit.ID
		}
		if scheme.ID == "" {
			scheme.ID = fmt.Sprintf("scheme-%04d", i+1)
		}
		schemes = append(schemes, scheme)
	}

	return schemes, nil
}
