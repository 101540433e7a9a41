// internal/corpus/csv.go
package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/schemesetu/scheme-engine/internal/common/errors"
	"github.com/schemesetu/scheme-engine/internal/models"
)

// columnSynonyms maps normalized CSV header names to scheme fields. Real
// datasets disagree on naming, so every common variant routes to the same
// field.
var columnSynonyms = map[string]string{
	"scheme_name": "title",
	"schemename":  "title",
	"name":        "title",
	"title":       "title",
	"scheme":      "title",

	"details":     "description",
	"description": "description",
	"desc":        "description",
	"about":       "description",

	"eligibility":          "eligibility",
	"criteria":             "eligibility",
	"who_can_apply":        "eligibility",
	"eligibility_criteria": "eligibility",

	"schemecategory": "category",
	"category":       "category",
	"sector":         "category",
	"domain":         "category",

	"tags":  "tags",
	"state": "state",
	"level": "level",
	"id":    "id",
}

// urlColumns is the preference order for picking an application link when a
// row carries more than one URL-ish column.
var urlColumns = []string{
	"application",
	"official_url",
	"application_link",
	"apply",
	"apply_url",
	"applylink",
	"url",
	"link",
	"website",
}

// DecodeResult carries the decoded schemes plus row-level bookkeeping the
// callers log or print.
type DecodeResult struct {
	Schemes []models.Scheme
	Skipped int
}

// DecodeCSV reads a scheme corpus from CSV. Header names are normalized and
// mapped through the synonym table; rows without a title are skipped, not
// fatal. Schemes missing an explicit id column get deterministic row-order
// ids.
func DecodeCSV(r io.Reader) (DecodeResult, error) {
	var result DecodeResult

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return result, apperrors.NewCorpusDecodeError(fmt.Errorf("empty input"))
	}
	if err != nil {
		return result, apperrors.NewCorpusDecodeError(err)
	}

	fields := make(map[string]int)  // canonical field -> column index
	urlCols := make(map[string]int) // url column name -> column index
	for i, name := range header {
		normalized := normalizeHeader(name)
		if canonical, ok := columnSynonyms[normalized]; ok {
			if _, taken := fields[canonical]; !taken {
				fields[canonical] = i
			}
			continue
		}
		if isURLColumn(normalized) {
			if _, taken := urlCols[normalized]; !taken {
				urlCols[normalized] = i
			}
		}
	}
	if _, ok := fields["title"]; !ok {
		return result, apperrors.NewCorpusDecodeError(fmt.Errorf("no scheme name column in header %v", header))
	}

	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, apperrors.NewCorpusDecodeError(err)
		}
		row++

		title := strings.TrimSpace(cell(record, fields, "title"))
		if title == "" {
			result.Skipped++
			continue
		}

		scheme := models.Scheme{
			ID:              strings.TrimSpace(cell(record, fields, "id")),
			Title:           title,
			Description:     strings.TrimSpace(cell(record, fields, "description")),
			EligibilityText: strings.TrimSpace(cell(record, fields, "eligibility")),
			Category:        strings.TrimSpace(cell(record, fields, "category")),
			State:           strings.TrimSpace(cell(record, fields, "state")),
			Level:           strings.TrimSpace(cell(record, fields, "level")),
			TagsText:        strings.TrimSpace(cell(record, fields, "tags")),
			ApplicationURL:  pickURL(record, urlCols),
		}
		if scheme.ID == "" {
			scheme.ID = fmt.Sprintf("scheme-%04d", row)
		}
		result.Schemes = append(result.Schemes, scheme)
	}

	return result, nil
}

func normalizeHeader(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "\uFEFF")
	n = strings.ReplaceAll(n, " ", "_")
	n = strings.ReplaceAll(n, "-", "_")
	return n
}

func isURLColumn(normalized string) bool {
	for _, c := range urlColumns {
		if normalized == c {
			return true
		}
	}
	return false
}

func cell(record []string, fields map[string]int, field string) string {
	idx, ok := fields[field]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// pickURL returns the first non-empty URL cell in preference order.
func pickURL(record []string, urlCols map[string]int) string {
	for _, name := range urlColumns {
		idx, ok := urlCols[name]
		if !ok || idx >= len(record) {
			continue
		}
		if v := strings.TrimSpace(record[idx]); v != "" {
			return v
		}
	}
	return ""
}
