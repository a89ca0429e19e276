package logger

import (
	"regexp"
	"strings"
)

// quotedLiteral matches single-quoted string literals in rendered SQL text.
var quotedLiteral = regexp.MustCompile(`'[^']*'`)

// Sanitizer masks sensitive data in rendered statements before they are
// logged. Quill interpolates values into the SQL text as literals, so a
// logged statement can carry passwords or tokens verbatim; the sanitizer
// replaces quoted literals with a mask whenever the statement references a
// sensitive column name.
type Sanitizer struct {
	sensitiveFields []string
	maskValue       string
	// Compiled patterns for faster matching
	patterns []*regexp.Regexp
}

// NewSanitizer creates a new sanitizer with the specified sensitive field names.
// If no fields are provided, a default set of common sensitive field names is used.
func NewSanitizer(sensitiveFields []string) *Sanitizer {
	if len(sensitiveFields) == 0 {
		// Default sensitive field names (common patterns)
		sensitiveFields = []string{
			"password", "passwd", "pwd",
			"token", "api_key", "apikey", "api_token",
			"secret", "auth", "authorization",
			"credit_card", "card_number", "cvv", "cvc",
			"ssn", "social_security",
			"private_key", "priv_key",
		}
	}

	// Compile patterns for efficient matching
	patterns := make([]*regexp.Regexp, 0, len(sensitiveFields))
	for _, field := range sensitiveFields {
		// Match field name in SQL (case-insensitive, with word boundaries)
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(field) + `\b`)
		patterns = append(patterns, pattern)
	}

	return &Sanitizer{
		sensitiveFields: sensitiveFields,
		maskValue:       "'***REDACTED***'",
		patterns:        patterns,
	}
}

// Sanitize returns a copy of the rendered statement safe for logging.
// When the statement references a sensitive column, every quoted literal in
// it is replaced by the mask value; the literal positions cannot be mapped
// back to individual columns once rendered, so all of them are masked.
// Statements without sensitive references are returned unchanged.
func (s *Sanitizer) Sanitize(sql string) string {
	if !s.containsSensitiveField(sql) {
		return sql
	}
	return quotedLiteral.ReplaceAllString(sql, s.maskValue)
}

// containsSensitiveField checks if the statement mentions any sensitive
// column name.
func (s *Sanitizer) containsSensitiveField(sql string) bool {
	sqlLower := strings.ToLower(sql)
	for _, pattern := range s.patterns {
		if pattern.MatchString(sqlLower) {
			return true
		}
	}
	return false
}
