// pkg/vocabulary/vocabulary.go
package vocabulary

import (
	"sort"
	"strings"
)

// Entry maps a canonical tag to the lowercase terms that imply it in
// free-form eligibility text.
type Entry struct {
	Tag   string   `json:"tag"`
	Terms []string `json:"terms"`
}

// Phrase maps a long-form category phrase to its short category code.
type Phrase struct {
	Text string `json:"text"`
	Code string `json:"code"`
}

// Tables is the parser vocabulary: occupation and sector synonym tables plus
// the reservation category codes and their long-form phrases. Entries are
// ordered; parsers iterate them in declaration order so output stays
// deterministic. A Tables value is immutable after construction and safe to
// share across goroutines.
type Tables struct {
	Occupations  []Entry
	Sectors      []Entry
	CasteCodes   []string
	CastePhrases []Phrase

	occTerms map[string][]string
	secTerms map[string][]string
}

var defaultOccupations = []Entry{
	{Tag: "farmer", Terms: []string{"agriculture", "farming", "cultivator", "grower", "agricultural worker"}},
	{Tag: "student", Terms: []string{"studying", "scholar", "school", "college", "university"}},
	{Tag: "labourer", Terms: []string{"labour", "labor", "daily wage", "construction worker", "mgnrega"}},
	{Tag: "fisherman", Terms: []string{"fishing", "fisheries", "fisherfolk"}},
	{Tag: "artisan", Terms: []string{"craftsman", "handicraft", "weaver", "handloom"}},
	{Tag: "entrepreneur", Terms: []string{"business owner", "startup", "self-employed", "self employed", "msme"}},
	{Tag: "unemployed", Terms: []string{"jobless", "job seeker", "without employment"}},
}

var defaultSectors = []Entry{
	{Tag: "education", Terms: []string{"student", "school", "college", "scholarship", "study"}},
	{Tag: "agriculture", Terms: []string{"farmer", "farming", "agricultur", "crop", "irrigation", "kisan"}},
	{Tag: "health", Terms: []string{"medical", "hospital", "treatment", "ayushman", "insurance cover"}},
	{Tag: "housing", Terms: []string{"home", "shelter", "awas", "pucca"}},
	{Tag: "employment", Terms: []string{"job", "employment", "skill training", "livelihood", "wage"}},
	{Tag: "business", Terms: []string{"enterprise", "startup", "msme", "working capital", "mudra"}},
	{Tag: "pension", Terms: []string{"retirement", "old age", "senior citizen"}},
}

var defaultCasteCodes = []string{"sc", "st", "obc", "ews"}

var defaultCastePhrases = []Phrase{
	{Text: "scheduled caste", Code: "sc"},
	{Text: "scheduled tribe", Code: "st"},
	{Text: "other backward", Code: "obc"},
	{Text: "economically weaker", Code: "ews"},
}

var builtin = newTables(defaultOccupations, defaultSectors, defaultCasteCodes, defaultCastePhrases)

// Default returns the built-in vocabulary. The returned value is shared
// process-wide; callers must not mutate it.
func Default() *Tables {
	return builtin
}

func newTables(occ, sec []Entry, codes []string, phrases []Phrase) *Tables {
	t := &Tables{
		Occupations:  occ,
		Sectors:      sec,
		CasteCodes:   codes,
		CastePhrases: phrases,
		occTerms:     make(map[string][]string, len(occ)),
		secTerms:     make(map[string][]string, len(sec)),
	}
	for _, e := range occ {
		t.occTerms[e.Tag] = e.Terms
	}
	for _, e := range sec {
		t.secTerms[e.Tag] = e.Terms
	}
	return t
}

// OccupationTerms returns the synonym list for an occupation tag, or nil when
// the tag is unknown.
func (t *Tables) OccupationTerms(tag string) []string {
	return t.occTerms[tag]
}

// SectorTerms returns the synonym list for a sector tag, or nil when the tag
// is unknown.
func (t *Tables) SectorTerms(tag string) []string {
	return t.secTerms[tag]
}

// CanonicalCaste reduces a user-supplied category value to its short code.
// Long-form phrases collapse to their code; values outside the vocabulary
// come back lowercased and trimmed so mismatch notes can still show them.
func (t *Tables) CanonicalCaste(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return ""
	}
	for _, code := range t.CasteCodes {
		if v == code {
			return code
		}
	}
	for _, p := range t.CastePhrases {
		if strings.Contains(v, p.Text) {
			return p.Code
		}
	}
	return v
}

// extension is the on-disk shape of a vocabulary extension file. Maps keep
// the file format compact; merge sorts the keys so load order is stable.
type extension struct {
	Occupations  map[string][]string `json:"occupations"`
	Sectors      map[string][]string `json:"sectors"`
	CasteCodes   []string            `json:"caste_codes"`
	CastePhrases map[string]string   `json:"caste_phrases"`
}

// merge layers an extension over the base tables and returns a new Tables.
// Terms for an existing tag are appended in file order, new tags are appended
// after the built-ins in alphabetical order, and duplicates are dropped.
func merge(base *Tables, ext extension) *Tables {
	occ := mergeEntries(base.Occupations, ext.Occupations)
	sec := mergeEntries(base.Sectors, ext.Sectors)

	codes := append([]string(nil), base.CasteCodes...)
	for _, code := range ext.CasteCodes {
		code = strings.ToLower(strings.TrimSpace(code))
		if code != "" && !containsString(codes, code) {
			codes = append(codes, code)
		}
	}

	phrases := append([]Phrase(nil), base.CastePhrases...)
	for _, text := range sortedKeys(ext.CastePhrases) {
		p := Phrase{Text: strings.ToLower(strings.TrimSpace(text)), Code: strings.ToLower(strings.TrimSpace(ext.CastePhrases[text]))}
		if p.Text == "" || p.Code == "" {
			continue
		}
		if !containsPhrase(phrases, p.Text) {
			phrases = append(phrases, p)
		}
	}

	return newTables(occ, sec, codes, phrases)
}

func mergeEntries(base []Entry, ext map[string][]string) []Entry {
	out := make([]Entry, 0, len(base)+len(ext))
	seen := make(map[string]int, len(base))
	for i, e := range base {
		out = append(out, Entry{Tag: e.Tag, Terms: append([]string(nil), e.Terms...)})
		seen[e.Tag] = i
	}
	for _, tag := range sortedKeysOfLists(ext) {
		cleanTag := strings.ToLower(strings.TrimSpace(tag))
		if cleanTag == "" {
			continue
		}
		idx, exists := seen[cleanTag]
		if !exists {
			out = append(out, Entry{Tag: cleanTag})
			idx = len(out) - 1
			seen[cleanTag] = idx
		}
		for _, term := range ext[tag] {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" || term == cleanTag || containsString(out[idx].Terms, term) {
				continue
			}
			out[idx].Terms = append(out[idx].Terms, term)
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysOfLists(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsPhrase(list []Phrase, text string) bool {
	for _, p := range list {
		if p.Text == text {
			return true
		}
	}
	return false
}
