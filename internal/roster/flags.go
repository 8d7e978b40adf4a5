package roster

import "strings"

// NormalizeFlag interprets a boolean-ish cell.
// "true" and "yes" (any case) become "true", "false" and blanks become "",
// anything else is returned unchanged so it can still be displayed.
func NormalizeFlag(raw string) string {
	v := strings.TrimSpace(raw)
	switch strings.ToLower(v) {
	case "true", "yes":
		return "true"
	case "false", "":
		return ""
	default:
		return raw
	}
}

// IsSelected reports whether a boolean-ish cell marks the option as selected
func IsSelected(raw string) bool {
	return NormalizeFlag(raw) == "true"
}
