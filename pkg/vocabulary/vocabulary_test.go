// pkg/vocabulary/vocabulary_test.go
package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	tables := Default()

	require.NotEmpty(t, tables.Occupations)
	require.NotEmpty(t, tables.Sectors)

	assert.Equal(t, "farmer", tables.Occupations[0].Tag)
	assert.Contains(t, tables.OccupationTerms("farmer"), "cultivator")
	assert.Contains(t, tables.SectorTerms("education"), "scholarship")
	assert.Equal(t, []string{"sc", "st", "obc", "ews"}, tables.CasteCodes)
}

func TestCanonicalCaste(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "short code passes through", input: "SC", expected: "sc"},
		{name: "long form collapses", input: "Scheduled Tribe", expected: "st"},
		{name: "phrase inside longer value", input: "economically weaker section", expected: "ews"},
		{name: "unknown value lowercased", input: " General ", expected: "general"},
		{name: "empty stays empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Default().CanonicalCaste(tt.input))
		})
	}
}

func TestParseMergesExtension(t *testing.T) {
	raw := []byte(`{
		"occupations": {
			"farmer": ["sharecropper"],
			"weaver": ["handloom worker", "loom operator"]
		},
		"sectors": {
			"water": ["borewell", "drinking water"]
		},
		"caste_codes": ["dnt"],
		"caste_phrases": {"denotified tribe": "dnt"}
	}`)

	tables, err := Parse(raw)
	require.NoError(t, err)

	// Existing tag keeps its built-in terms and gains the new one at the end.
	farmerTerms := tables.OccupationTerms("farmer")
	assert.Equal(t, "agriculture", farmerTerms[0])
	assert.Equal(t, "sharecropper", farmerTerms[len(farmerTerms)-1])

	// New tags land after the built-ins.
	last := tables.Occupations[len(tables.Occupations)-1]
	assert.Equal(t, "weaver", last.Tag)
	assert.Equal(t, []string{"handloom worker", "loom operator"}, last.Terms)

	assert.Contains(t, tables.SectorTerms("water"), "borewell")
	assert.Equal(t, "dnt", tables.CasteCodes[len(tables.CasteCodes)-1])
	assert.Equal(t, "dnt", tables.CanonicalCaste("Denotified Tribe community"))

	// The built-in tables must not be mutated by a merge.
	assert.NotContains(t, Default().OccupationTerms("farmer"), "sharecropper")
}

func TestParseRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `occupations: farmer`},
		{name: "unknown top-level key", raw: `{"occupation_tags": {}}`},
		{name: "terms not an array", raw: `{"occupations": {"farmer": "sharecropper"}}`},
		{name: "empty term", raw: `{"sectors": {"water": [""]}}`},
		{name: "phrase code not a string", raw: `{"caste_phrases": {"denotified tribe": 7}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables, err := Parse([]byte(tt.raw))
			assert.Error(t, err)
			assert.Nil(t, tables)
		})
	}
}

func TestMergeDeduplicates(t *testing.T) {
	tables, err := Parse([]byte(`{
		"occupations": {"farmer": ["agriculture", "FARMING", "tenant farmer"]},
		"caste_codes": ["sc", "dnt", "dnt"]
	}`))
	require.NoError(t, err)

	farmerTerms := tables.OccupationTerms("farmer")
	count := 0
	for _, term := range farmerTerms {
		if term == "agriculture" || term == "farming" {
			count++
		}
	}
	assert.Equal(t, 2, count, "built-in terms must not repeat")
	assert.Equal(t, "tenant farmer", farmerTerms[len(farmerTerms)-1])

	codes := 0
	for _, c := range tables.CasteCodes {
		if c == "dnt" {
			codes++
		}
	}
	assert.Equal(t, 1, codes)
}
