// Package sandbox executes free-text SQL read-only. Every statement passes a
// lexical guard before it reaches the database: a read-only prefix, no
// mutating keyword anywhere, a single statement. Execution then runs inside
// a read-only transaction with a statement timeout and an injected row limit.
// The guard exists because the ad-hoc query surface exposes the full loaded
// schema, backup columns included, to callers who compose their own SQL.
package sandbox

import (
	"fmt"
	"regexp"
	"strings"
)

// Guard rule identifiers, reported in rejections.
const (
	RuleReadOnlyPrefix     = "read_only_prefix"
	RuleMutatingKeyword    = "mutating_keyword"
	RuleMultipleStatements = "multiple_statements"
	RuleEmptyStatement     = "empty_statement"
)

// Violation is a structured pre-execution rejection naming the rule that
// failed. It reaches callers as response data, not as an error.
type Violation struct {
	Rule   string `json:"rule"`
	Detail string `json:"detail"`
}

func (v *Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Detail)
}

// mutatingKeywords are rejected as whole words anywhere in the statement,
// case-insensitively. The list is deliberately broad: anything that writes
// data, changes schema, or escalates privileges.
var mutatingKeywords = []string{
	"insert", "update", "delete", "drop", "alter", "create", "truncate",
	"grant", "revoke", "copy", "vacuum", "reindex", "cluster", "comment",
	"merge", "call", "do", "lock", "listen", "notify", "refresh", "reset",
	"set", "discard", "prepare", "execute", "deallocate",
}

var keywordPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(mutatingKeywords))
	for _, keyword := range mutatingKeywords {
		patterns[keyword] = regexp.MustCompile(`(?i)\b` + keyword + `\b`)
	}
	return patterns
}()

var limitPattern = regexp.MustCompile(`(?i)\blimit\b`)

// Check validates one statement against every guard rule and returns the
// first violation, or nil when the statement may execute.
func Check(query string) *Violation {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return &Violation{Rule: RuleEmptyStatement, Detail: "statement is empty"}
	}

	// Keyword check runs first so "DELETE FROM x" is rejected for the
	// DELETE, not merely for its prefix.
	for _, keyword := range mutatingKeywords {
		if keywordPatterns[keyword].MatchString(trimmed) {
			return &Violation{Rule: RuleMutatingKeyword, Detail: fmt.Sprintf("statement contains forbidden keyword %s", strings.ToUpper(keyword))}
		}
	}

	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return &Violation{Rule: RuleReadOnlyPrefix, Detail: "statement must start with SELECT or WITH"}
	}

	if clauses := statementCount(trimmed); clauses > 1 {
		return &Violation{Rule: RuleMultipleStatements, Detail: fmt.Sprintf("statement contains %d semicolon-delimited clauses, expected 1", clauses)}
	}

	return nil
}

// statementCount counts semicolon-delimited clauses, ignoring a trailing
// semicolon.
func statementCount(query string) int {
	trimmed := strings.TrimRight(strings.TrimSpace(query), ";")
	if trimmed == "" {
		return 0
	}
	return strings.Count(trimmed, ";") + 1
}

// HasRowLimit reports whether the statement already carries a LIMIT clause.
func HasRowLimit(query string) bool {
	return limitPattern.MatchString(query)
}
