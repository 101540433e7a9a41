// internal/models/match.go
package models

// MatchResult is one ranked scheme with its scoring breakdown. Results live
// for a single ranking run and are never persisted.
type MatchResult struct {
	Scheme             Scheme   `json:"scheme"`
	EligibilityScore   int      `json:"eligibilityScore"`
	Disqualified       bool     `json:"disqualified"`
	RelevanceScore     int      `json:"relevanceScore"`
	TotalScore         int      `json:"totalScore"`
	Reasons            []string `json:"reasons,omitempty"`
	Mismatches         []string `json:"mismatches,omitempty"`
	EligibilitySummary []string `json:"eligibilitySummary,omitempty"`
	HasValidLink       bool     `json:"hasValidLink"`
	ResolvedURL        string   `json:"resolvedUrl,omitempty"`
	Enriched           bool     `json:"enriched,omitempty"`
}
