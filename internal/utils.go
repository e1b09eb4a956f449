package internal

import (
	"time"
)

// Version is the lenslate release version
const Version = "0.4.0"

// phraseIDLayout mirrors the ISO-8601 form produced by JSON date encoders
const phraseIDLayout = "2006-01-02T15:04:05.000Z"

// GeneratePhraseID creates a phrasebook identifier from the given instant.
// Format: ISO-8601 UTC with millisecond precision, e.g. 2024-03-01T09:30:00.123Z
func GeneratePhraseID(now time.Time) string {
	return now.UTC().Format(phraseIDLayout)
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	result := ""
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			result += string(r)
		} else {
			result += "_"
		}
	}
	return result
}

// isAlphaNumeric checks if a rune is an ASCII letter or digit
func isAlphaNumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
