// internal/corpus/csv_test.go
package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSV(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectError    bool
		validateOutput func(t *testing.T, r DecodeResult)
	}{
		{
			name: "canonical headers",
			input: "scheme_name,details,eligibility,schemeCategory,state,level,tags,official_url\n" +
				"PM Scholarship,Support for students,Students aged 18 to 25 years,Education,Maharashtra,central,students education,https://example.gov.in/apply\n",
			validateOutput: func(t *testing.T, r DecodeResult) {
				require.Len(t, r.Schemes, 1)
				s := r.Schemes[0]
				assert.Equal(t, "PM Scholarship", s.Title)
				assert.Equal(t, "Support for students", s.Description)
				assert.Equal(t, "Students aged 18 to 25 years", s.EligibilityText)
				assert.Equal(t, "Education", s.Category)
				assert.Equal(t, "Maharashtra", s.State)
				assert.Equal(t, "central", s.Level)
				assert.Equal(t, "students education", s.TagsText)
				assert.Equal(t, "https://example.gov.in/apply", s.ApplicationURL)
				assert.Equal(t, "scheme-0001", s.ID)
			},
		},
		{
			name: "synonym headers map to the same fields",
			input: "Name,About,Who Can Apply,Sector\n" +
				"Kisan Credit,Loans for farmers,Farmers above 18,Agriculture\n",
			validateOutput: func(t *testing.T, r DecodeResult) {
				require.Len(t, r.Schemes, 1)
				s := r.Schemes[0]
				assert.Equal(t, "Kisan Credit", s.Title)
				assert.Equal(t, "Loans for farmers", s.Description)
				assert.Equal(t, "Farmers above 18", s.EligibilityText)
				assert.Equal(t, "Agriculture", s.Category)
			},
		},
		{
			name: "url preference order",
			input: "title,link,application\n" +
				"Scheme A,https://fallback.example/a,https://preferred.example/a\n" +
				"Scheme B,https://fallback.example/b,\n",
			validateOutput: func(t *testing.T, r DecodeResult) {
				require.Len(t, r.Schemes, 2)
				assert.Equal(t, "https://preferred.example/a", r.Schemes[0].ApplicationURL)
				assert.Equal(t, "https://fallback.example/b", r.Schemes[1].ApplicationURL)
			},
		},
		{
			name: "rows without a title are skipped",
			input: "title,details\n" +
				",orphan details\n" +
				"Real Scheme,has a name\n" +
				"   ,blank name\n",
			validateOutput: func(t *testing.T, r DecodeResult) {
				require.Len(t, r.Schemes, 1)
				assert.Equal(t, "Real Scheme", r.Schemes[0].Title)
				assert.Equal(t, 2, r.Skipped)
			},
		},
		{
			name: "ragged rows tolerated",
			input: "title,details,eligibility\n" +
				"Short Row\n" +
				"Full Row,details here,above 18\n",
			validateOutput: func(t *testing.T, r DecodeResult) {
				require.Len(t, r.Schemes, 2)
				assert.Empty(t, r.Schemes[0].Description)
				assert.Equal(t, "details here", r.Schemes[1].Description)
			},
		},
		{
			name: "explicit id column wins over row numbering",
			input: "id,title\n" +
				"pm-kisan,PM Kisan\n",
			validateOutput: func(t *testing.T, r DecodeResult) {
				require.Len(t, r.Schemes, 1)
				assert.Equal(t, "pm-kisan", r.Schemes[0].ID)
			},
		},
		{
			name:        "empty input fails",
			input:       "",
			expectError: true,
		},
		{
			name:        "no recognizable title column fails",
			input:       "foo,bar\n1,2\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DecodeCSV(strings.NewReader(tt.input))
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateOutput(t, result)
		})
	}
}

func TestDecodeCSVBOMHeader(t *testing.T) {
	input := "\uFEFFscheme_name,details\nScheme,desc\n"
	result, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Schemes, 1)
	assert.Equal(t, "Scheme", result.Schemes[0].Title)
}
