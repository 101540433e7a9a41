// internal/engine/profile/profile.go
package profile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/schemesetu/scheme-engine/internal/models"
	"github.com/schemesetu/scheme-engine/pkg/vocabulary"
)

// Profile is the normalized form of a raw questionnaire submission. Optional
// numeric fields are nil when absent or unparseable; absence never becomes
// zero. Compact variants have all internal whitespace removed so matching
// survives spacing differences like "Tamil Nadu" vs "TamilNadu".
type Profile struct {
	Name              string
	Age               *int
	Income            *int
	State             string
	StateCompact      string
	Occupation        string
	OccupationCompact string
	Purpose           string
	PurposeCompact    string
	Caste             string
}

var (
	nonDigits = regexp.MustCompile(`[^\d]`)
	digitRun  = regexp.MustCompile(`\d+`)
)

// Normalize cleans and type-converts a raw profile using the built-in
// vocabulary for caste canonicalization.
func Normalize(raw models.UserProfile) Profile {
	return NormalizeWith(vocabulary.Default(), raw)
}

// NormalizeWith is Normalize with an explicit vocabulary. It never fails:
// a malformed field simply yields its unconstrained form.
func NormalizeWith(tables *vocabulary.Tables, raw models.UserProfile) Profile {
	p := Profile{Name: strings.TrimSpace(raw.Name)}

	p.Age = parseAge(raw.AgeRaw)
	p.Income = parseIncome(raw.IncomeRaw)
	p.State, p.StateCompact = normalizeText(raw.State)
	p.Occupation, p.OccupationCompact = normalizeText(raw.Occupation)
	p.Purpose, p.PurposeCompact = normalizeText(raw.Purpose)
	p.Caste = tables.CanonicalCaste(raw.CasteCategory)

	return p
}

// parseAge strips every non-digit character and parses what remains, so
// "25 yrs" and "2 5" both come out as 25. No digits at all means unknown.
func parseAge(raw string) *int {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

// parseIncome takes the first contiguous digit run, so "Rs. 250000 per annum"
// yields 250000 and "2.5 lakh" yields 2 rather than a guessed conversion.
func parseIncome(raw string) *int {
	digits := digitRun.FindString(raw)
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

func normalizeText(raw string) (normal, compact string) {
	fields := strings.Fields(strings.ToLower(raw))
	normal = strings.Join(fields, " ")
	compact = strings.Join(fields, "")
	return normal, compact
}
