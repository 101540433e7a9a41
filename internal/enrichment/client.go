// internal/enrichment/client.go
package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/schemesetu/scheme-engine/internal/common/database"
	apperrors "github.com/schemesetu/scheme-engine/internal/common/errors"
	httpclient "github.com/schemesetu/scheme-engine/internal/common/http"
	"github.com/schemesetu/scheme-engine/internal/common/logger"
	"github.com/schemesetu/scheme-engine/internal/common/metrics"
	"github.com/schemesetu/scheme-engine/internal/corpus"
	"github.com/schemesetu/scheme-engine/internal/models"
)

const (
	cacheKeyPrefix  = "enrich:scheme:"
	defaultMaxBatch = 10
)

// Config tunes the enrichment client. Timeout bounds the whole fetch; the
// ranking response never waits longer than this on enrichment.
type Config struct {
	Enabled  bool
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	MaxBatch int
}

// Client overlays canonical descriptions and application links from the
// enrichment service onto ranked results. Every failure path is silent to
// the caller: results come back unchanged and the failure is logged.
type Client struct {
	config Config
	http   *httpclient.Client
	cache  *database.RedisClient
	logger logger.Logger
}

// NewClient builds an enrichment client. cache may be nil, which disables
// the read-through cache but not enrichment itself.
func NewClient(cfg Config, cache *database.RedisClient, log logger.Logger) *Client {
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = defaultMaxBatch
	}
	return &Client{
		config: cfg,
		http:   httpclient.NewClient(cfg.Timeout),
		cache:  cache,
		logger: log,
	}
}

type enrichmentItem struct {
	SchemeName  string `json:"scheme_name"`
	Description string `json:"description,omitempty"`
	ApplyURL    string `json:"apply_url,omitempty"`
}

type enrichRequest struct {
	Items []enrichRequestItem `json:"items"`
}

type enrichRequestItem struct {
	SchemeName string `json:"scheme_name"`
	Context    string `json:"context,omitempty"`
}

// Overlay fetches enrichment data for the shortlist and applies it. Ranking
// order and scores are already final; only presentation fields change. On
// any fetch or cache failure the input comes back untouched.
func (c *Client) Overlay(ctx context.Context, results []models.MatchResult) []models.MatchResult {
	if !c.config.Enabled || len(results) == 0 {
		return results
	}

	found := make(map[string]enrichmentItem, len(results))
	var missing []enrichRequestItem
	for _, m := range results {
		key := nameKey(m.Scheme.Title)
		if key == "" {
			continue
		}
		if _, seen := found[key]; seen {
			continue
		}
		if item, ok := c.cacheGet(ctx, key); ok {
			found[key] = item
			continue
		}
		if len(missing) < c.config.MaxBatch {
			missing = append(missing, enrichRequestItem{SchemeName: m.Scheme.Title, Context: m.Scheme.Category})
		}
	}

	if len(missing) > 0 {
		fetched, err := c.fetch(ctx, missing)
		if err != nil {
			var stdErr *apperrors.StandardError
			code := apperrors.ErrCodeEnrichmentUnavailable
			if errors.As(err, &stdErr) {
				code = stdErr.Code
			}
			c.logger.Warn("enrichment skipped", map[string]interface{}{
				"code":    string(code),
				"error":   err.Error(),
				"schemes": len(missing),
			})
			if len(found) == 0 {
				return results
			}
		} else {
			for key, item := range fetched {
				found[key] = item
				c.cacheSet(ctx, key, item)
			}
		}
	}

	if len(found) == 0 {
		return results
	}

	out := make([]models.MatchResult, len(results))
	copy(out, results)
	for i := range out {
		item, ok := found[nameKey(out[i].Scheme.Title)]
		if !ok {
			continue
		}
		if desc := strings.TrimSpace(item.Description); desc != "" {
			out[i].Scheme.Description = desc
			out[i].Enriched = true
		}
		if raw := strings.TrimSpace(item.ApplyURL); raw != "" {
			if resolved, valid := corpus.NormalizeURL(raw); valid {
				out[i].ResolvedURL = resolved
				out[i].HasValidLink = true
				out[i].Enriched = true
			}
		}
	}
	return out
}

// fetch posts the batch to the enrichment service. Timeouts are classified
// separately from other failures so operators can tell a slow upstream from
// a broken one.
func (c *Client) fetch(ctx context.Context, items []enrichRequestItem) (map[string]enrichmentItem, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.http.PostJSON(ctx, c.config.BaseURL+"/enrich", enrichRequest{Items: items})
	if err != nil {
		outcome := outcomeForError(ctx, err)
		metrics.EnrichmentRequests.WithLabelValues(outcome).Inc()
		if outcome == "timeout" {
			return nil, apperrors.NewEnrichmentTimeoutError()
		}
		return nil, apperrors.NewEnrichmentUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.EnrichmentRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.NewEnrichmentUnavailableError(
			fmt.Errorf("enrichment service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload []enrichmentItem
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.EnrichmentRequests.WithLabelValues("error").Inc()
		return nil, apperrors.NewEnrichmentUnavailableError(fmt.Errorf("decode enrichment response: %w", err))
	}
	metrics.EnrichmentRequests.WithLabelValues("ok").Inc()

	out := make(map[string]enrichmentItem, len(payload))
	for _, item := range payload {
		if key := nameKey(item.SchemeName); key != "" {
			out[key] = item
		}
	}
	return out, nil
}

func (c *Client) cacheGet(ctx context.Context, key string) (enrichmentItem, bool) {
	if c.cache == nil {
		return enrichmentItem{}, false
	}
	raw, err := c.cache.Get(ctx, cacheKeyPrefix+key)
	if err != nil {
		return enrichmentItem{}, false
	}
	var item enrichmentItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return enrichmentItem{}, false
	}
	metrics.EnrichmentCacheHits.Inc()
	return item, true
}

// cacheSet is best-effort; a cache failure only costs the next request a
// fetch.
func (c *Client) cacheSet(ctx context.Context, key string, item enrichmentItem) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(item)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKeyPrefix+key, string(data), c.config.CacheTTL); err != nil {
		c.logger.Debug("enrichment cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func outcomeForError(ctx context.Context, err error) string {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return "timeout"
	}
	if strings.Contains(err.Error(), "Client.Timeout") || strings.Contains(err.Error(), "deadline exceeded") {
		return "timeout"
	}
	return "error"
}

func nameKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
