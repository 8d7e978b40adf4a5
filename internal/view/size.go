package view

import "strings"

type sizeKeyword struct {
	keyword string
	code    string
}

// sizeKeywords is matched in order, so longer phrases come before the words they contain.
// Hyphens are read as spaces before matching ("X-Large" is "x large").
var sizeKeywords = []sizeKeyword{
	{"5xl", "5XL"},
	{"4xl", "4XL"},
	{"xxxl", "3XL"},
	{"3xl", "3XL"},
	{"2xl", "2XL"},
	{"xxl", "XXL"},
	{"xx large", "XXL"},
	{"extra extra large", "XXL"},
	{"double extra large", "XXL"},
	{"extra small", "XS"},
	{"x small", "XS"},
	{"xs", "XS"},
	{"extra large", "XL"},
	{"x large", "XL"},
	{"xl", "XL"},
	{"small", "S"},
	{"medium", "M"},
	{"large", "L"},
}

// SizeCode reduces a free-text size to a short initialism such as "XS" or "XL".
// Unknown sizes fall back to the upper-cased initials of their words.
func SizeCode(size string) string {
	lower := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(size, "-", " ")))
	if lower == "" {
		return ""
	}
	for _, k := range sizeKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.code
		}
	}

	var b strings.Builder
	for _, word := range strings.Fields(lower) {
		first := []rune(word)[0]
		b.WriteString(strings.ToUpper(string(first)))
	}
	return b.String()
}
