// Package security provides injection detection for rendered Quill
// statements. Quill interpolates values into SQL text as literals instead of
// binding parameters, so the rendered text is the surface worth checking.
package security

import (
	"fmt"
	"regexp"
	"strings"
)

// Validator checks rendered statements against dangerous patterns.
type Validator struct {
	patterns []*regexp.Regexp
	strict   bool
}

// ValidatorOption configures the Validator.
type ValidatorOption func(*Validator)

// WithStrict enables strict validation mode (more aggressive).
func WithStrict(strict bool) ValidatorOption {
	return func(v *Validator) {
		v.strict = strict
	}
}

// NewValidator creates a statement validator with default dangerous patterns.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		patterns: compilePatterns(dangerousPatterns),
		strict:   false,
	}

	for _, opt := range opts {
		opt(v)
	}

	if v.strict {
		v.patterns = append(v.patterns, compilePatterns(strictPatterns)...)
	}

	return v
}

// dangerousPatterns contains SQL injection patterns to block.
// A quill statement ends with a single semicolon, so any statement keyword
// appearing after one means a value smuggled in a second statement.
var dangerousPatterns = []string{
	// SQL comment indicators (used to truncate the rest of a statement)
	`--`,       // SQL comment
	`/\*.*\*/`, // C-style comment
	`#[\s]`,    // MySQL comment (with space after)

	// Stacked queries (multiple statements)
	`;\s*DROP\s+`,     // ; DROP TABLE/DATABASE
	`;\s*DELETE\s+`,   // ; DELETE FROM
	`;\s*UPDATE\s+`,   // ; UPDATE
	`;\s*INSERT\s+`,   // ; INSERT INTO
	`;\s*TRUNCATE\s+`, // ; TRUNCATE TABLE
	`;\s*ALTER\s+`,    // ; ALTER TABLE
	`;\s*CREATE\s+`,   // ; CREATE TABLE

	// UNION-based attacks
	`UNION\s+ALL\s+SELECT`, // UNION ALL SELECT
	`UNION\s+SELECT`,       // UNION SELECT

	// Database-specific dangerous functions
	`XP_CMDSHELL`,    // SQL Server command execution
	`\bEXEC\s*\(`,    // EXEC() function with word boundary
	`\bEXECUTE\s*\(`, // EXECUTE() function with word boundary
	`SP_EXECUTESQL`,  // SQL Server dynamic SQL

	// Information schema queries (data exfiltration)
	`INFORMATION_SCHEMA`, // Access to metadata
	`PG_SLEEP\s*\(`,      // PostgreSQL sleep (timing attacks)
	`BENCHMARK\s*\(`,     // MySQL benchmark (timing attacks)
	`WAITFOR\s+DELAY`,    // SQL Server delay (timing attacks)

	// Boolean-based blind injection
	`\s+OR\s+1\s*=\s*1\b`,   // OR 1=1 (with word boundary to avoid false positives)
	`\s+OR\s+'1'\s*=\s*'1'`, // OR '1'='1'
	`\s+AND\s+1\s*=\s*0\b`,  // AND 1=0 (with word boundary)
}

// strictPatterns contains additional patterns for strict mode.
// These may have false positives but provide maximum security.
var strictPatterns = []string{
	`\bOR\b`,      // Any OR (quill never emits OR itself)
	`\bUNION\b`,   // Any UNION
	`\bEXEC\b`,    // Any EXEC
	`\bEXECUTE\b`, // Any EXECUTE
	`''`,          // Embedded quote pair (literal breakout attempt)
}

// compilePatterns compiles the pattern list, panicking on malformed entries
// since they are package constants.
func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// ValidateStatement checks a rendered statement for dangerous SQL injection
// patterns. Returns an error naming the first pattern detected.
func (v *Validator) ValidateStatement(sql string) error {
	// Normalize for pattern matching
	normalized := strings.ToUpper(sql)

	for _, pattern := range v.patterns {
		if pattern.MatchString(normalized) {
			return fmt.Errorf("dangerous pattern detected in statement: %s", pattern.String())
		}
	}

	return nil
}
