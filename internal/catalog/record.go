package catalog

import "strings"

// CategoryAll is the category value that disables category filtering.
const CategoryAll = "all"

// Record is one catalogue entry. Every attribute is optional; absent and
// null JSON values decode to the empty string.
type Record struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Colour string `json:"colour"`
	Type   string `json:"type"`
	PDF    string `json:"pdf"`
}

// HasDocument reports whether the record links a document.
func (r Record) HasDocument() bool {
	return r.PDF != ""
}

// Categories returns the distinct non-empty Type values in first-seen order.
// Values differing only in case or surrounding space are reported once,
// using the first record's Type verbatim so Filter selects it.
func Categories(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	var out []string
	for _, r := range records {
		t := strings.TrimSpace(r.Type)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r.Type)
	}
	return out
}
