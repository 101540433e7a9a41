// internal/corpus/lookup_test.go
package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemesetu/scheme-engine/internal/models"
)

func lookupFixtures() []models.Scheme {
	return []models.Scheme{
		{ID: "1", Title: "PM Kisan Samman Nidhi", Description: "Income support for farmer families"},
		{ID: "2", Title: "Post Matric Scholarship", Description: "Scholarship for SC and ST students"},
		{ID: "3", Title: "Atal Pension Yojana", Description: "Pension for unorganised sector workers"},
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		expectedID string
		found      bool
	}{
		{name: "exact title", query: "Atal Pension Yojana", expectedID: "3", found: true},
		{name: "case insensitive", query: "pm kisan samman nidhi", expectedID: "1", found: true},
		{name: "partial title", query: "pension yojana", expectedID: "3", found: true},
		{name: "typo tolerated", query: "kisan saman nidhi", expectedID: "1", found: true},
		{name: "token overlap", query: "matric scholarship scheme", expectedID: "2", found: true},
		{name: "gibberish query", query: "xjqwv", found: false},
		{name: "empty query", query: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := Lookup(lookupFixtures(), tt.query)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expectedID, match.Scheme.ID)
				assert.Greater(t, match.Score, lookupThreshold)
			}
		})
	}
}

func TestLookupEmptyCorpus(t *testing.T) {
	_, ok := Lookup(nil, "anything")
	assert.False(t, ok)
}

func TestLookupTieKeepsCorpusOrder(t *testing.T) {
	schemes := []models.Scheme{
		{ID: "a", Title: "Solar Subsidy"},
		{ID: "b", Title: "Solar Subsidy"},
	}
	match, ok := Lookup(schemes, "solar subsidy")
	require.True(t, ok)
	assert.Equal(t, "a", match.Scheme.ID)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("pension", "pension"))
	assert.Equal(t, 0.0, similarity("abc", "xyz"))
	assert.InDelta(t, 0.857, similarity("mathematics", "matematica"), 0.01)
}
