// internal/corpus/lookup.go
package corpus

import (
	"strings"

	"github.com/schemesetu/scheme-engine/internal/models"
)

// Lookup scoring weights. An exact-ish containment dominates, the character
// ratio carries partial matches, and token overlap breaks up near-ties with
// description hits worth a fraction of title hits.
const (
	lookupThreshold  = 0.45
	substringWeight  = 1.2
	similarityWeight = 1.0
	overlapWeight    = 0.5
	descTokenWeight  = 0.2
)

// Match pairs a resolved scheme with its lookup confidence.
type Match struct {
	Scheme models.Scheme
	Score  float64
}

// Lookup resolves a user-typed scheme name against the corpus by fuzzy title
// match. Ties keep the earliest scheme in corpus order; scores below the
// threshold report no match at all.
func Lookup(schemes []models.Scheme, name string) (Match, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" || len(schemes) == 0 {
		return Match{}, false
	}
	queryTokens := lookupTokens(query)

	best := Match{Score: -1}
	for _, s := range schemes {
		if score := lookupScore(query, queryTokens, s); score > best.Score {
			best = Match{Scheme: s, Score: score}
		}
	}
	if best.Score < lookupThreshold {
		return Match{}, false
	}
	return best, true
}

func lookupScore(query string, queryTokens []string, s models.Scheme) float64 {
	title := strings.ToLower(s.Title)

	score := 0.0
	if strings.Contains(title, query) || strings.Contains(query, title) {
		score += substringWeight
	}
	score += similarityWeight * similarity(query, title)

	if len(queryTokens) > 0 {
		desc := strings.ToLower(s.Description)
		hits := 0.0
		for _, tok := range queryTokens {
			switch {
			case strings.Contains(title, tok):
				hits += 1.0
			case strings.Contains(desc, tok):
				hits += descTokenWeight
			}
		}
		score += overlapWeight * hits / float64(len(queryTokens))
	}
	return score
}

func lookupTokens(query string) []string {
	fields := strings.Fields(query)
	out := fields[:0]
	for _, f := range fields {
		if len(f) > 2 {
			out = append(out, f)
		}
	}
	return out
}

// similarity is the Ratcliff/Obershelp ratio: twice the matched character
// count over the combined length, recursing on the regions either side of
// the longest common substring.
func similarity(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 0
	}
	return 2 * float64(matchingChars(a, b)) / float64(len(a)+len(b))
}

func matchingChars(a, b string) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size + matchingChars(a[:ai], b[:bi]) + matchingChars(a[ai+size:], b[bi+size:])
}

func longestCommonSubstring(a, b string) (ai, bi, size int) {
	if a == "" || b == "" {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}
