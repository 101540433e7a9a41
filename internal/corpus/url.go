// internal/corpus/url.go
package corpus

import (
	"net/url"
	"strings"
)

// Placeholder values that appear in the application URL column of real
// scheme datasets instead of an empty cell.
var urlPlaceholders = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"none": true,
	"nil":  true,
	"null": true,
	"nan":  true,
	"-":    true,
	"#":    true,
}

// NormalizeURL cleans a raw application link and reports whether it is
// usable. Bare "www." values get an https prefix; anything with internal
// whitespace, a placeholder value, or a non-http scheme is rejected. The
// returned string is only meaningful when the bool is true.
func NormalizeURL(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	v = strings.Trim(v, `"'`)
	v = strings.TrimSpace(v)

	if urlPlaceholders[strings.ToLower(v)] {
		return "", false
	}
	if strings.ContainsAny(v, " \t") {
		return "", false
	}
	if strings.HasPrefix(strings.ToLower(v), "www.") {
		v = "https://" + v
	}

	u, err := url.Parse(v)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Host == "" {
		return "", false
	}
	return v, true
}
