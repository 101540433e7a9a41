// internal/engine/rank/rank.go
package rank

import (
	"sort"
	"strings"
	"time"

	"github.com/schemesetu/scheme-engine/internal/common/logger"
	"github.com/schemesetu/scheme-engine/internal/common/metrics"
	"github.com/schemesetu/scheme-engine/internal/corpus"
	"github.com/schemesetu/scheme-engine/internal/engine/criteria"
	"github.com/schemesetu/scheme-engine/internal/engine/eligibility"
	"github.com/schemesetu/scheme-engine/internal/engine/profile"
	"github.com/schemesetu/scheme-engine/internal/engine/relevance"
	"github.com/schemesetu/scheme-engine/internal/models"
	"github.com/schemesetu/scheme-engine/pkg/vocabulary"
)

const (
	DefaultTopK     = 4
	DefaultMinScore = 15

	sectorVetoPenalty = 50
	slowRankThreshold = 500 * time.Millisecond
)

// agricultureSignals mark a scheme as farm-targeted for the sector veto.
var agricultureSignals = []string{"farmer", "farming", "agricultur", "kisan", "crop"}

// Config tunes one Ranker. The zero value of DisableSectorVeto keeps the
// veto active.
type Config struct {
	TopK              int
	MinScore          int
	DisableSectorVeto bool
}

// Output is one complete ranking pass. Fallback marks results that only
// exist because every scheme fell below the cutoff.
type Output struct {
	Results  []models.MatchResult
	Fallback bool
}

// Ranker runs the scoring pipeline over a corpus snapshot. It holds no
// per-request state and is safe for concurrent use.
type Ranker struct {
	config Config
	tables *vocabulary.Tables
	logger logger.Logger
}

func NewRanker(cfg Config, tables *vocabulary.Tables, log logger.Logger) *Ranker {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if tables == nil {
		tables = vocabulary.Default()
	}
	return &Ranker{config: cfg, tables: tables, logger: log}
}

// Rank scores every scheme against the profile and returns the shortlist.
// The pass is deterministic: identical corpus and profile always produce
// identical output, with corpus order breaking score ties.
func (r *Ranker) Rank(schemes []models.Scheme, raw models.UserProfile) Output {
	start := time.Now()
	p := profile.NormalizeWith(r.tables, raw)

	all := make([]models.MatchResult, 0, len(schemes))
	for _, s := range schemes {
		all = append(all, r.scoreScheme(s, p))
	}
	metrics.SchemesScored.Add(float64(len(all)))

	kept := make([]models.MatchResult, 0, len(all))
	for _, m := range all {
		if m.Disqualified || m.TotalScore < r.config.MinScore {
			continue
		}
		kept = append(kept, m)
	}

	var output Output
	if len(kept) == 0 && len(all) > 0 {
		output.Fallback = true
		kept = fallbackByDescription(all, r.config.TopK)
		metrics.FallbackRankings.Inc()
	} else {
		sort.SliceStable(kept, func(i, j int) bool {
			if kept[i].HasValidLink != kept[j].HasValidLink {
				return kept[i].HasValidLink
			}
			return kept[i].TotalScore > kept[j].TotalScore
		})
		if len(kept) > r.config.TopK {
			kept = kept[:r.config.TopK]
		}
	}
	output.Results = kept

	duration := time.Since(start)
	fields := map[string]interface{}{
		"schemes":     len(all),
		"results":     len(output.Results),
		"fallback":    output.Fallback,
		"duration_ms": duration.Milliseconds(),
	}
	if duration > slowRankThreshold {
		r.logger.Warn("slow ranking pass", fields)
	} else {
		r.logger.Debug("ranking pass complete", fields)
	}
	return output
}

func (r *Ranker) scoreScheme(s models.Scheme, p profile.Profile) models.MatchResult {
	crit := criteria.ParseWith(r.tables, s.EligibilityText)
	elig := eligibility.ScoreWith(r.tables, p, crit)
	rel := relevance.Score(s, p)

	// A hard disqualifier zeroes the total outright; relevance never buys a
	// disqualified scheme back into contention.
	total := elig.Score + rel.Score
	mismatches := elig.Mismatches
	switch {
	case elig.Disqualified:
		total = 0
	case !r.config.DisableSectorVeto && r.vetoApplies(p, s):
		total -= sectorVetoPenalty
		mismatches = append(mismatches, "agriculture focus despite education goal")
	}

	resolved, hasLink := corpus.NormalizeURL(s.ApplicationURL)
	return models.MatchResult{
		Scheme:             s,
		EligibilityScore:   elig.Score,
		Disqualified:       elig.Disqualified,
		RelevanceScore:     rel.Score,
		TotalScore:         total,
		Reasons:            append(elig.Reasons, rel.Signals...),
		Mismatches:         mismatches,
		EligibilitySummary: criteria.Describe(crit),
		HasValidLink:       hasLink,
		ResolvedURL:        resolved,
	}
}

// vetoApplies reports the education/agriculture cross-domain case: a student
// profile chasing education pulled toward a farm scheme purely by token
// overlap.
func (r *Ranker) vetoApplies(p profile.Profile, s models.Scheme) bool {
	if !strings.Contains(p.Occupation, "student") || !strings.Contains(p.Purpose, "educat") {
		return false
	}
	text := corpus.SchemeText(s)
	for _, signal := range agricultureSignals {
		if strings.Contains(text, signal) {
			return true
		}
	}
	return false
}

// fallbackByDescription surfaces the most descriptive schemes when nothing
// clears the cutoff, so the caller always has something to show against a
// non-empty corpus.
func fallbackByDescription(all []models.MatchResult, topK int) []models.MatchResult {
	out := append([]models.MatchResult(nil), all...)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Scheme.Description) > len(out[j].Scheme.Description)
	})
	if len(out) > topK {
		out = out[:topK]
	}
	return out
}
