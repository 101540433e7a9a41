// internal/engine/profile/profile_test.go
package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemesetu/scheme-engine/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name           string
		raw            models.UserProfile
		validateOutput func(t *testing.T, p Profile)
	}{
		{
			name: "full profile",
			raw: models.UserProfile{
				Name:          "Asha",
				AgeRaw:        "22",
				State:         "  Tamil Nadu ",
				Occupation:    "Student",
				Purpose:       "Higher Education",
				IncomeRaw:     "Rs. 250000 per annum",
				CasteCategory: "Scheduled Caste",
			},
			validateOutput: func(t *testing.T, p Profile) {
				require.NotNil(t, p.Age)
				assert.Equal(t, 22, *p.Age)
				require.NotNil(t, p.Income)
				assert.Equal(t, 250000, *p.Income)
				assert.Equal(t, "tamil nadu", p.State)
				assert.Equal(t, "tamilnadu", p.StateCompact)
				assert.Equal(t, "student", p.Occupation)
				assert.Equal(t, "higher education", p.Purpose)
				assert.Equal(t, "highereducation", p.PurposeCompact)
				assert.Equal(t, "sc", p.Caste)
			},
		},
		{
			name: "age with unit suffix",
			raw:  models.UserProfile{AgeRaw: "45 yrs"},
			validateOutput: func(t *testing.T, p Profile) {
				require.NotNil(t, p.Age)
				assert.Equal(t, 45, *p.Age)
			},
		},
		{
			name: "age with stray spacing",
			raw:  models.UserProfile{AgeRaw: "2 5"},
			validateOutput: func(t *testing.T, p Profile) {
				require.NotNil(t, p.Age)
				assert.Equal(t, 25, *p.Age)
			},
		},
		{
			name: "missing age stays unknown",
			raw:  models.UserProfile{AgeRaw: "unknown"},
			validateOutput: func(t *testing.T, p Profile) {
				assert.Nil(t, p.Age)
			},
		},
		{
			name: "income takes first digit run",
			raw:  models.UserProfile{IncomeRaw: "2.5 lakh"},
			validateOutput: func(t *testing.T, p Profile) {
				require.NotNil(t, p.Income)
				assert.Equal(t, 2, *p.Income)
			},
		},
		{
			name: "empty income stays unknown",
			raw:  models.UserProfile{IncomeRaw: "none"},
			validateOutput: func(t *testing.T, p Profile) {
				assert.Nil(t, p.Income)
			},
		},
		{
			name: "caste outside vocabulary is lowercased",
			raw:  models.UserProfile{CasteCategory: " General "},
			validateOutput: func(t *testing.T, p Profile) {
				assert.Equal(t, "general", p.Caste)
			},
		},
		{
			name: "empty profile yields no constraints",
			raw:  models.UserProfile{},
			validateOutput: func(t *testing.T, p Profile) {
				assert.Nil(t, p.Age)
				assert.Nil(t, p.Income)
				assert.Empty(t, p.State)
				assert.Empty(t, p.Caste)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateOutput(t, Normalize(tt.raw))
		})
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	p := Normalize(models.UserProfile{Occupation: "  Dairy   Farmer \t"})
	assert.Equal(t, "dairy farmer", p.Occupation)
	assert.Equal(t, "dairyfarmer", p.OccupationCompact)
}
