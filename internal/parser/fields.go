package parser

import (
	"net/url"
	"sort"
	"strings"
)

// Param is one key/value pair from the params field, kept in input order
type Param struct {
	Key   string
	Value string
}

// splitLines yields the trimmed, non-blank lines of text
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// splitPair cuts line at the first sep and trims both sides.
// ok is false when sep is missing or the key is empty.
func splitPair(line, sep string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, sep)
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

// ParseHeaders parses "Key: Value" lines. Lines without ':' or with an
// empty key are skipped; a later duplicate key overwrites an earlier one.
func ParseHeaders(text string) map[string]string {
	headers := make(map[string]string)
	for _, line := range splitLines(text) {
		key, value, ok := splitPair(line, ":")
		if !ok {
			continue
		}
		headers[key] = value
	}
	return headers
}

// ParseParams parses "key=value" lines. Duplicates are all kept.
func ParseParams(text string) []Param {
	var params []Param
	for _, line := range splitLines(text) {
		key, value, ok := splitPair(line, "=")
		if !ok {
			continue
		}
		params = append(params, Param{Key: key, Value: value})
	}
	return params
}

// ParseVariables parses "NAME=value" lines for the environment editor.
// The last assignment of a name wins.
func ParseVariables(text string) map[string]string {
	vars := make(map[string]string)
	for _, p := range ParseParams(text) {
		vars[p.Key] = p.Value
	}
	return vars
}

// encodeComponent escapes a query key or value, using %20 for spaces
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// AppendQuery appends params to rawURL, joining with '&' when rawURL
// already carries a '?' and with '?' otherwise
func AppendQuery(rawURL string, params []Param) string {
	if len(params) == 0 {
		return rawURL
	}

	pairs := make([]string, 0, len(params))
	for _, p := range params {
		pairs = append(pairs, encodeComponent(p.Key)+"="+encodeComponent(p.Value))
	}

	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + strings.Join(pairs, "&")
}

// SplitQuery separates the query string of rawURL into params so a stored
// request can be loaded back into the url and params fields
func SplitQuery(rawURL string) (string, []Param) {
	base, query, found := strings.Cut(rawURL, "?")
	if !found || query == "" {
		return rawURL, nil
	}

	var params []Param
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		if strings.TrimSpace(key) == "" {
			// Keep the original URL intact rather than lose data
			return rawURL, nil
		}
		params = append(params, Param{Key: key, Value: value})
	}
	return base, params
}

// FormatHeaders renders headers as "Key: Value" lines sorted by key
func FormatHeaders(headers map[string]string) string {
	return formatSorted(headers, ": ")
}

// FormatVariables renders variables as "NAME=value" lines sorted by name
func FormatVariables(vars map[string]string) string {
	return formatSorted(vars, "=")
}

// FormatParams renders params as "key=value" lines in order
func FormatParams(params []Param) string {
	lines := make([]string, 0, len(params))
	for _, p := range params {
		lines = append(lines, p.Key+"="+p.Value)
	}
	return strings.Join(lines, "\n")
}

func formatSorted(values map[string]string, sep string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+sep+values[k])
	}
	return strings.Join(lines, "\n")
}
