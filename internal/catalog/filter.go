package catalog

import "strings"

// Filter returns the records of all that match both the text query and the
// category. It never mutates all and always returns a fresh slice in input
// order.
//
// The query is trimmed and matched case-insensitively as a substring of
// Code, Name or Colour. An empty query matches everything. The category is
// compared case-insensitively for equality with Type; CategoryAll matches
// every record, including those without a Type.
func Filter(all []Record, query, category string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))
	anyCategory := IsAll(category)

	out := make([]Record, 0, len(all))
	for _, r := range all {
		if !matchesQuery(r, q) {
			continue
		}
		if !anyCategory && !strings.EqualFold(r.Type, category) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// IsAll reports whether category is the sentinel that disables category
// filtering. Surrounding space and case are ignored, so "ALL" from a flag
// or config file matches.
func IsAll(category string) bool {
	return strings.EqualFold(strings.TrimSpace(category), CategoryAll)
}

// matchesQuery expects q to be trimmed and lower-cased already.
func matchesQuery(r Record, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Code), q) ||
		strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Colour), q)
}
