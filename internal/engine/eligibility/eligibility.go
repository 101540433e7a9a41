// internal/engine/eligibility/eligibility.go
package eligibility

import (
	"fmt"
	"strings"

	"github.com/schemesetu/scheme-engine/internal/engine/criteria"
	"github.com/schemesetu/scheme-engine/internal/engine/profile"
	"github.com/schemesetu/scheme-engine/pkg/vocabulary"
)

// Boost and penalty weights. Disqualification ignores the weights entirely
// and zeroes the score.
const (
	ageBoundBoost   = 25
	incomeBoost     = 20
	occupationBoost = 20
	sectorBoost     = 15
	casteBoost      = 25
	castePenalty    = 10
)

// Result carries the eligibility verdict for one profile against one
// scheme's criteria. Reasons explain every boost that fired; Mismatches
// explain disqualifiers and soft penalties.
type Result struct {
	Score        int
	Disqualified bool
	Reasons      []string
	Mismatches   []string
}

// Score evaluates a normalized profile against parsed criteria using the
// built-in vocabulary.
func Score(p profile.Profile, c criteria.Criteria) Result {
	return ScoreWith(vocabulary.Default(), p, c)
}

// ScoreWith is Score with an explicit vocabulary. Hard bounds are checked
// first and short-circuit: a profile outside any stated age or income bound
// is disqualified with a zero score and exactly one mismatch, the first
// bound that failed. A bound whose profile value is unknown never
// disqualifies.
func ScoreWith(tables *vocabulary.Tables, p profile.Profile, c criteria.Criteria) Result {
	var res Result

	if c.MinAge != nil && p.Age != nil && *p.Age < *c.MinAge {
		res.Disqualified = true
		res.Mismatches = append(res.Mismatches, fmt.Sprintf("age %d below minimum %d", *p.Age, *c.MinAge))
		return res
	}
	if c.MaxAge != nil && p.Age != nil && *p.Age > *c.MaxAge {
		res.Disqualified = true
		res.Mismatches = append(res.Mismatches, fmt.Sprintf("age %d above maximum %d", *p.Age, *c.MaxAge))
		return res
	}
	if c.MaxIncome != nil && p.Income != nil && *p.Income > *c.MaxIncome {
		res.Disqualified = true
		res.Mismatches = append(res.Mismatches, fmt.Sprintf("income %d exceeds limit %d", *p.Income, *c.MaxIncome))
		return res
	}

	score := 0

	// Surviving a stated age bound earns its boost even when the profile
	// age is unknown; an income boost additionally needs both values.
	if c.MinAge != nil {
		score += ageBoundBoost
		res.Reasons = append(res.Reasons, fmt.Sprintf("meets minimum age %d", *c.MinAge))
	}
	if c.MaxAge != nil {
		score += ageBoundBoost
		res.Reasons = append(res.Reasons, fmt.Sprintf("within maximum age %d", *c.MaxAge))
	}
	if c.MaxIncome != nil && p.Income != nil {
		score += incomeBoost
		res.Reasons = append(res.Reasons, fmt.Sprintf("income within limit %d", *c.MaxIncome))
	}

	if tag, ok := matchOccupation(tables, p, c); ok {
		score += occupationBoost
		res.Reasons = append(res.Reasons, "occupation matches "+tag)
	}
	if tag, ok := matchSector(tables, p, c); ok {
		score += sectorBoost
		res.Reasons = append(res.Reasons, "purpose aligns with "+tag+" sector")
	}

	if len(c.CasteHints) > 0 {
		if p.Caste != "" && containsString(c.CasteHints, p.Caste) {
			score += casteBoost
			res.Reasons = append(res.Reasons, "reserved category matches "+p.Caste)
		} else {
			score -= castePenalty
			res.Mismatches = append(res.Mismatches, "targets "+strings.Join(c.CasteHints, ", ")+" categories")
		}
	}

	if score < 0 {
		score = 0
	}
	res.Score = score
	return res
}

// matchOccupation returns the first criteria occupation whose tag or synonym
// appears in the profile occupation text. One boosted tag is enough; later
// tags are not inspected.
func matchOccupation(tables *vocabulary.Tables, p profile.Profile, c criteria.Criteria) (string, bool) {
	if p.Occupation == "" {
		return "", false
	}
	for _, tag := range c.Occupations {
		if profileContains(p.Occupation, p.OccupationCompact, tag) {
			return tag, true
		}
		for _, term := range tables.OccupationTerms(tag) {
			if profileContains(p.Occupation, p.OccupationCompact, term) {
				return tag, true
			}
		}
	}
	return "", false
}

func matchSector(tables *vocabulary.Tables, p profile.Profile, c criteria.Criteria) (string, bool) {
	if p.Purpose == "" {
		return "", false
	}
	for _, tag := range c.Sectors {
		if profileContains(p.Purpose, p.PurposeCompact, tag) {
			return tag, true
		}
		for _, term := range tables.SectorTerms(tag) {
			if profileContains(p.Purpose, p.PurposeCompact, term) {
				return tag, true
			}
		}
	}
	return "", false
}

func profileContains(normal, compact, term string) bool {
	if strings.Contains(normal, term) {
		return true
	}
	squeezed := strings.Join(strings.Fields(term), "")
	return squeezed != term && strings.Contains(compact, squeezed)
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
