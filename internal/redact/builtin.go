package redact

import "regexp"

// BuiltinPatterns returns the seven required patterns in a stable order.
// Regex text is part of the external interface and must match exactly.
func BuiltinPatterns() []Pattern {
	return []Pattern{
		{
			Name:        "email",
			Regex:       regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`),
			Replacement: "[EMAIL_REDACTED]",
		},
		{
			Name:        "phone",
			Regex:       regexp.MustCompile(`\b(?:\+?\d{1,4}[-.\s]?)?(?:\(\d{1,4}\)[-.\s]?)?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{3,9}\b`),
			Replacement: "[PHONE_REDACTED]",
		},
		{
			Name:        "phoneIndonesia",
			Regex:       regexp.MustCompile(`(?:\+62|62|0)(?:2\d|8\d)[-.\s]?\d{3,4}[-.\s]?\d{3,5}\b`),
			Replacement: "[PHONE_REDACTED]",
		},
		{
			Name:        "creditCard",
			Regex:       regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b|\b\d{4}[-\s]?\d{6}[-\s]?\d{5}\b|\b\d{4}[-\s]?\d{6}[-\s]?\d{4}\b`),
			Replacement: "[CARD_REDACTED]",
		},
		{
			Name:        "ipAddress",
			Regex:       regexp.MustCompile(`(?i)\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b|\b(?:[A-F0-9]{1,4}:){7}[A-F0-9]{1,4}\b`),
			Replacement: "[IP_REDACTED]",
		},
		{
			Name:        "jwtToken",
			Regex:       regexp.MustCompile(`eyJ[a-zA-Z0-9_-]*\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]*`),
			Replacement: "[TOKEN_REDACTED]",
		},
		{
			Name:        "nopolIndonesia",
			Regex:       regexp.MustCompile(`\b[A-Z]{1,2}\s?[0-9]{1,4}\s?[A-Z]{1,3}\b`),
			Replacement: "[NOPOL_REDACTED]",
		},
	}
}
