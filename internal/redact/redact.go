// Package redact removes credentials from text before it is logged or shown
// to the operator. Database drivers echo connection strings in some of
// their errors; this keeps the password part of them out of the terminal.
package redact

import "regexp"

// Placeholders written in place of redacted text.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// pattern pairs a regular expression with its replacement.
type pattern struct {
	re          *regexp.Regexp
	replacement string
}

var patterns = []pattern{
	// user:password@ in postgres:// style URLs; the scheme and user are kept.
	{
		re:          regexp.MustCompile(`(?i)((?:postgres|postgresql|sqlite|file)://[^:/@\s]+):[^@\s]+@`),
		replacement: "${1}:" + RedactedCredentialPlaceholder + "@",
	},
	// password=secret in key/value DSNs and query strings.
	{
		re:          regexp.MustCompile(`(?i)\b(password|passwd|pwd)(\s*[=:]\s*)['"]?[^'"&\s]+['"]?`),
		replacement: "${1}${2}" + RedactedCredentialPlaceholder,
	},
	// Generic secrets and tokens passed as key/value pairs.
	{
		re:          regexp.MustCompile(`(?i)\b(api[_-]?key|token|secret)(\s*[=:]\s*)[A-Za-z0-9_\-.~+/]{8,}`),
		replacement: "${1}${2}" + RedactedKeyPlaceholder,
	},
}

// String redacts credentials from input.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, p := range patterns {
		result = p.re.ReplaceAllString(result, p.replacement)
	}
	return result
}

// Error redacts credentials from err's message.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
