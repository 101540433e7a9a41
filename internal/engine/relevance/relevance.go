// internal/engine/relevance/relevance.go
package relevance

import (
	"regexp"
	"strings"

	"github.com/schemesetu/scheme-engine/internal/corpus"
	"github.com/schemesetu/scheme-engine/internal/engine/profile"
	"github.com/schemesetu/scheme-engine/internal/models"
)

const (
	tokenWeight = 4
	stateBonus  = 10
	youthBonus  = 8
	seniorBonus = 8
	linkBonus   = 5

	youthAgeCap    = 25
	seniorAgeFloor = 60
)

var (
	reYouth  = regexp.MustCompile(`youth|student`)
	reSenior = regexp.MustCompile(`senior|pension`)
)

// Result is the relevance verdict for one scheme. Signals name every bonus
// that fired, in scoring order.
type Result struct {
	Score   int
	Signals []string
}

// Score measures how well a scheme's text lines up with what the profile is
// looking for. All bonuses are additive, so the score is never negative.
func Score(s models.Scheme, p profile.Profile) Result {
	var res Result
	haystack := strings.ToLower(s.Title + " " + s.Description + " " + s.Category)

	score := 0

	// Every token instance counts; a purpose that repeats a word weighs it
	// twice. Tokens of one or two characters are connector noise.
	tokens := append(strings.Fields(p.Purpose), strings.Fields(p.Occupation)...)
	for _, token := range tokens {
		if len(token) <= 2 {
			continue
		}
		if strings.Contains(haystack, token) {
			score += tokenWeight
			res.Signals = append(res.Signals, "mentions "+token)
		}
	}

	if p.State != "" && containsState(haystack+" "+strings.ToLower(s.State), p) {
		score += stateBonus
		res.Signals = append(res.Signals, "available in "+p.State)
	}

	if p.Age != nil && *p.Age <= youthAgeCap && reYouth.MatchString(haystack) {
		score += youthBonus
		res.Signals = append(res.Signals, "youth oriented")
	}
	if p.Age != nil && *p.Age >= seniorAgeFloor && reSenior.MatchString(haystack) {
		score += seniorBonus
		res.Signals = append(res.Signals, "senior oriented")
	}

	if _, ok := corpus.NormalizeURL(s.ApplicationURL); ok {
		score += linkBonus
		res.Signals = append(res.Signals, "application link available")
	}

	res.Score = score
	return res
}

// containsState checks the plain form first, then the space-free form so
// "Tamil Nadu" still matches text that writes "TamilNadu".
func containsState(text string, p profile.Profile) bool {
	if strings.Contains(text, p.State) {
		return true
	}
	if p.StateCompact == "" || p.StateCompact == p.State {
		return false
	}
	return strings.Contains(strings.Join(strings.Fields(text), ""), p.StateCompact)
}
