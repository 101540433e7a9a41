// internal/models/profile.go
package models

// UserProfile is the questionnaire output as submitted. Every field is free
// text and any subset may be empty; normalization happens downstream.
type UserProfile struct {
	Name          string `json:"name"`
	AgeRaw        string `json:"age"`
	State         string `json:"state"`
	Occupation    string `json:"occupation"`
	Purpose       string `json:"purpose"`
	IncomeRaw     string `json:"income,omitempty"`
	CasteCategory string `json:"caste,omitempty"`
}
