package manage

import "strings"

// DefaultPlaceholder is the search box hint text. A search for exactly this
// text is treated as an empty search.
const DefaultPlaceholder = "Search..."

// DefaultUnknown replaces missing optional values in projected rows.
const DefaultUnknown = "Unknown"

// MatchAny reports whether any field contains term, ignoring case.
// An empty term matches everything.
func MatchAny(term string, fields ...string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// isBlankTerm reports whether term means "no filter".
func isBlankTerm(term, placeholder string) bool {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return true
	}
	return placeholder != "" && strings.EqualFold(trimmed, strings.TrimSpace(placeholder))
}

// OrUnknown returns value, or placeholder when value is blank.
func OrUnknown(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
