// Package phone normalizes contact numbers into the canonical key
// used as the customer document id. Input may carry Arabic-Indic
// digits, whitespace or a "+2" country prefix.
package phone

import "strings"

const countryPrefix = "+2"

var arabicDigits = map[rune]rune{
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
}

// Normalize translates Arabic-Indic digits to ASCII, strips
// whitespace, drops a leading "+2" prefix and removes any remaining
// non-digit characters. Returns "" for empty input.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range raw {
		if d, ok := arabicDigits[r]; ok {
			b.WriteRune(d)
			continue
		}
		b.WriteRune(r)
	}

	s := strings.Join(strings.Fields(b.String()), "")
	s = strings.TrimPrefix(s, countryPrefix)

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}

// Valid reports whether a normalized number matches the national
// format: 11 digits starting with "01".
func Valid(normalized string) bool {
	if len(normalized) != 11 || !strings.HasPrefix(normalized, "01") {
		return false
	}
	for _, r := range normalized {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
