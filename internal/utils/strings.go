package utils

import "strings"

// Unquote strips exactly one pair of surrounding double quotes.
// Settings values written by the legacy console were serialized as
// JSON strings, so a stored password may arrive as "\"2026\"".
func Unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// DigitsOnly keeps the numeric characters of a phone number, the form
// WhatsApp links expect.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
