// internal/engine/criteria/criteria.go
package criteria

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/schemesetu/scheme-engine/pkg/vocabulary"
)

// Criteria is the structured reading of one scheme's free-form eligibility
// text. Numeric bounds are nil when the text never states them. Slice fields
// preserve vocabulary order so repeated parses of the same text are
// byte-identical.
type Criteria struct {
	MinAge      *int
	MaxAge      *int
	MaxIncome   *int
	Occupations []string
	Sectors     []string
	Genders     []string
	CasteHints  []string
}

var (
	// Age bounds cap at three digits so amounts like "above 250000" can
	// never bind as an age.
	reAgeRange   = regexp.MustCompile(`\b(\d{1,3})\s*(?:to|-|–)\s*(\d{1,3})\s*years?\b`)
	reAgeBetween = regexp.MustCompile(`\bbetween\s+(\d{1,3})\s+and\s+(\d{1,3})\s*years?\b`)
	reAgeAbove   = regexp.MustCompile(`\babove\s+(\d{1,3})\b`)
	reAgeUpto    = regexp.MustCompile(`\bup\s?to\s+(\d{1,3})\b`)

	reIncomeCue = regexp.MustCompile(`\b(?:income|annual)\b`)
	reIncomeAmt = regexp.MustCompile(`\b(\d{5,7})\b`)
)

// Parse extracts structured criteria from eligibility text using the
// built-in vocabulary.
func Parse(text string) Criteria {
	return ParseWith(vocabulary.Default(), text)
}

// ParseWith is Parse with an explicit vocabulary. Empty or whitespace-only
// text yields an unconstrained Criteria, which scores as universally
// eligible downstream.
func ParseWith(tables *vocabulary.Tables, text string) Criteria {
	var c Criteria
	if strings.TrimSpace(text) == "" {
		return c
	}

	lowered := strings.ToLower(text)
	words := wordSet(lowered)

	parseAgeBounds(lowered, &c)
	parseIncomeCeiling(lowered, &c)

	for _, entry := range tables.Occupations {
		if containsTagOrTerm(lowered, entry) {
			c.Occupations = append(c.Occupations, entry.Tag)
		}
	}
	for _, entry := range tables.Sectors {
		if containsTagOrTerm(lowered, entry) {
			c.Sectors = append(c.Sectors, entry.Tag)
		}
	}

	// Gender cues are matched on whole words only; "women" must not also
	// register as "men".
	if words["women"] || words["female"] {
		c.Genders = append(c.Genders, "female")
	}
	if words["men"] || words["male"] {
		c.Genders = append(c.Genders, "male")
	}

	for _, code := range tables.CasteCodes {
		if words[code] {
			c.CasteHints = append(c.CasteHints, code)
		}
	}
	for _, phrase := range tables.CastePhrases {
		if strings.Contains(lowered, phrase.Text) && !containsString(c.CasteHints, phrase.Code) {
			c.CasteHints = append(c.CasteHints, phrase.Code)
		}
	}

	return c
}

// parseAgeBounds applies the two-tier age grammar: an explicit range wins,
// and only when no range is present do the one-sided "above N" and
// "upto N" forms bind.
func parseAgeBounds(lowered string, c *Criteria) {
	for _, re := range []*regexp.Regexp{reAgeRange, reAgeBetween} {
		if m := re.FindStringSubmatch(lowered); m != nil {
			c.MinAge = atoiPtr(m[1])
			c.MaxAge = atoiPtr(m[2])
			return
		}
	}
	if m := reAgeAbove.FindStringSubmatch(lowered); m != nil {
		c.MinAge = atoiPtr(m[1])
	}
	if m := reAgeUpto.FindStringSubmatch(lowered); m != nil {
		c.MaxAge = atoiPtr(m[1])
	}
}

// parseIncomeCeiling binds the first 5 to 7 digit amount as an annual income
// ceiling, but only when the text carries an income cue word. Plain numbers
// in other contexts stay unbound.
func parseIncomeCeiling(lowered string, c *Criteria) {
	if !reIncomeCue.MatchString(lowered) {
		return
	}
	if m := reIncomeAmt.FindStringSubmatch(lowered); m != nil {
		c.MaxIncome = atoiPtr(m[1])
	}
}

// IsEmpty reports whether no criterion at all was extracted.
func (c Criteria) IsEmpty() bool {
	return c.MinAge == nil && c.MaxAge == nil && c.MaxIncome == nil &&
		len(c.Occupations) == 0 && len(c.Sectors) == 0 &&
		len(c.Genders) == 0 && len(c.CasteHints) == 0
}

// Describe renders the criteria as short presentation bullets, one per
// extracted constraint, in a fixed order.
func Describe(c Criteria) []string {
	var out []string
	switch {
	case c.MinAge != nil && c.MaxAge != nil:
		out = append(out, fmt.Sprintf("age %d to %d years", *c.MinAge, *c.MaxAge))
	case c.MinAge != nil:
		out = append(out, fmt.Sprintf("minimum age %d years", *c.MinAge))
	case c.MaxAge != nil:
		out = append(out, fmt.Sprintf("maximum age %d years", *c.MaxAge))
	}
	if c.MaxIncome != nil {
		out = append(out, fmt.Sprintf("annual income up to %d", *c.MaxIncome))
	}
	if len(c.Occupations) > 0 {
		out = append(out, "for "+strings.Join(c.Occupations, ", "))
	}
	if len(c.Sectors) > 0 {
		out = append(out, "sector: "+strings.Join(c.Sectors, ", "))
	}
	if len(c.Genders) > 0 {
		out = append(out, "gender: "+strings.Join(c.Genders, ", "))
	}
	if len(c.CasteHints) > 0 {
		out = append(out, "category: "+strings.Join(c.CasteHints, ", "))
	}
	return out
}

func containsTagOrTerm(lowered string, entry vocabulary.Entry) bool {
	if strings.Contains(lowered, entry.Tag) {
		return true
	}
	for _, term := range entry.Terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

func wordSet(lowered string) map[string]bool {
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make(map[string]bool, len(fields))
	for _, f := range fields {
		words[f] = true
	}
	return words
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
