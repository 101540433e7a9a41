// internal/corpus/filter.go
package corpus

import (
	"strings"

	"github.com/schemesetu/scheme-engine/internal/engine/criteria"
	"github.com/schemesetu/scheme-engine/internal/models"
)

// FilterOptions narrows a corpus listing. Zero values mean no constraint.
type FilterOptions struct {
	State     string
	Sector    string
	Query     string
	MaxIncome *int
	Limit     int
}

// SchemeText joins every text field of a scheme, lowercased, for substring
// checks.
func SchemeText(s models.Scheme) string {
	return strings.ToLower(strings.Join([]string{
		s.Title, s.Description, s.EligibilityText, s.Category, s.State, s.TagsText,
	}, " "))
}

// Filter applies the listing filters in corpus order. MaxIncome drops
// schemes whose parsed income ceiling sits below the given income. When the
// filters empty the list, the head of the corpus serves as a browsing
// fallback so a non-empty corpus never lists nothing.
func Filter(schemes []models.Scheme, opts FilterOptions) []models.Scheme {
	state := strings.ToLower(strings.TrimSpace(opts.State))
	sector := strings.ToLower(strings.TrimSpace(opts.Sector))
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	out := make([]models.Scheme, 0, len(schemes))
	for _, s := range schemes {
		if state != "" && !strings.Contains(strings.ToLower(s.State+" "+s.Title+" "+s.Description), state) {
			continue
		}
		if sector != "" && !strings.Contains(strings.ToLower(s.Category+" "+s.TagsText), sector) {
			continue
		}
		if query != "" && !strings.Contains(SchemeText(s), query) {
			continue
		}
		if opts.MaxIncome != nil {
			if ceiling := criteria.Parse(s.EligibilityText).MaxIncome; ceiling != nil && *ceiling < *opts.MaxIncome {
				continue
			}
		}
		out = append(out, s)
	}

	limit := opts.Limit
	if limit <= 0 || limit > len(schemes) {
		limit = len(schemes)
	}
	if len(out) == 0 {
		return schemes[:limit]
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
