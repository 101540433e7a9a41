// internal/models/scheme.go
package models

// Scheme is one government welfare program's record as supplied by the
// ingestion source. The matching engine reads it and never mutates it.
type Scheme struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	EligibilityText string `json:"eligibilityText"`
	Category        string `json:"category"`
	State           string `json:"state"`
	Level           string `json:"level"` // central / state / district
	TagsText        string `json:"tags"`
	ApplicationURL  string `json:"applicationUrl"` // raw value, may be a placeholder
}
