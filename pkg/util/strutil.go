package util

import (
	"strings"
	"unicode"
)

// CleanName strips quote and backslash characters from a display name and
// capitalizes the first letter.
func CleanName(name string) string {
	cleaned := strings.NewReplacer(`"`, "", `\`, "").Replace(name)
	return Capitalize(cleaned)
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// EscapeLine flattens newlines for single-line display and drops pipe
// characters that would break the dashboard's table rendering.
func EscapeLine(s string) string {
	return strings.NewReplacer("\n", `\n`, "\r", `\n`, "|", "").Replace(s)
}

// Truncate shortens s to at most length characters and appends an ellipsis.
func Truncate(s string, length int) string {
	if length > len(s) {
		length = len(s)
	}
	return s[:length] + "..."
}

// MaskSecret renders a credential safe for logging: everything but the last
// three characters is replaced with X.
func MaskSecret(secret string) string {
	if strings.TrimSpace(secret) == "" {
		return ""
	}
	if len(secret) <= 3 {
		return strings.Repeat("X", len(secret))
	}
	return strings.Repeat("X", len(secret)-3) + secret[len(secret)-3:]
}
