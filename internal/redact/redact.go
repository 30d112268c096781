// Package redact removes credentials, password hashes, tokens and
// infrastructure details from strings before they are logged. The HTTP layer
// runs every logged error through Error.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedHashPlaceholder       = "[REDACTED_HASH]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order. Hashes and tokens go first so that later, looser
// patterns never see their fragments.
var rules = []rule{
	// bcrypt output, e.g. $2a$10$ followed by 53 characters of salt and digest
	{regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`), RedactedHashPlaceholder},
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), RedactedJWTPlaceholder},
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]+=*`), "Bearer " + RedactedTokenPlaceholder},
	// URL userinfo in connection strings
	{regexp.MustCompile(`(?i)(postgres|postgresql|pgx|sqlite|file)://[^@\s]+@`), RedactedCredentialPlaceholder},
	// key=value and key: value secrets, including libpq keyword DSNs
	{regexp.MustCompile(`(?i)(password|passwd|pwd|secret|jwt_secret)\s*[=:]\s*['"]?[^'"&\s]+['"]?`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|INDEX)(?:[\s\w,*()='"$?]+)?`,
	), RedactedSQLPlaceholder},
	{regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}(?::\d{1,5})?\b`), RedactedHostPlaceholder},
	{regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	), RedactedHostPlaceholder},
}

// String redacts sensitive information from input.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllLiteralString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
