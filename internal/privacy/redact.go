package privacy

import (
	"regexp"
	"unicode/utf8"
)

const maxLogLength = 200

var (
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Matches: 555-123-4567, (555) 123-4567, 555.123.4567, +1-555-123-4567, 555-1234
	phoneRegex = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]\d{4}|\b\d{3}[-.\s]\d{4}\b`)

	ssnRegex = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

	creditCardRegex = regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}[-\s]\d{4}\b`)
)

// RedactSensitiveData removes PII from text. Short service numbers such as
// 988 or 741741 are left alone.
func RedactSensitiveData(text string) string {
	text = emailRegex.ReplaceAllString(text, "[EMAIL]")
	text = ssnRegex.ReplaceAllString(text, "[SSN]")
	text = creditCardRegex.ReplaceAllString(text, "[CARD]")
	text = phoneRegex.ReplaceAllString(text, "[PHONE]")
	return text
}

// SanitizeForLogging redacts and truncates text for log lines
func SanitizeForLogging(text string) string {
	redacted := RedactSensitiveData(text)

	if len(redacted) <= maxLogLength {
		return redacted
	}

	cut := maxLogLength - 3
	for cut > 0 && !utf8.RuneStart(redacted[cut]) {
		cut--
	}
	return redacted[:cut] + "..."
}

// SanitizeForAPI removes PII before text leaves for an external provider
func SanitizeForAPI(text string) string {
	return RedactSensitiveData(text)
}

// ContainsPII checks if text contains potential PII
func ContainsPII(text string) bool {
	return emailRegex.MatchString(text) ||
		phoneRegex.MatchString(text) ||
		ssnRegex.MatchString(text) ||
		creditCardRegex.MatchString(text)
}
