// Package monitor classifies command output against success and failure patterns.
package monitor

import (
	"regexp"
	"strings"
)

// Matcher holds optional success and failure patterns
type Matcher struct {
	success *regexp.Regexp
	failure *regexp.Regexp
}

// Compile compiles a single pattern
func Compile(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Expr: expr, Err: err}
	}
	return re, nil
}

// NewMatcher compiles the given patterns. An empty pattern is not configured.
func NewMatcher(success, failure string) (*Matcher, error) {
	m := &Matcher{}
	if success != "" {
		re, err := Compile(success)
		if err != nil {
			return nil, err
		}
		m.success = re
	}
	if failure != "" {
		re, err := Compile(failure)
		if err != nil {
			return nil, err
		}
		m.failure = re
	}
	return m, nil
}

// NewRegexpMatcher creates a matcher from already compiled patterns. Either may be nil.
func NewRegexpMatcher(success, failure *regexp.Regexp) *Matcher {
	return &Matcher{
		success: success,
		failure: failure,
	}
}

// HasPatterns reports whether at least one pattern is configured
func (m *Matcher) HasPatterns() bool {
	return m.success != nil || m.failure != nil
}

// Classify checks the output of one run.
// Every line is checked against the failure pattern before any line is
// checked against the success pattern, so failure wins within a batch.
func (m *Matcher) Classify(stdout, stderr []byte) MatchResult {
	if !m.HasPatterns() {
		return MatchResult{Verdict: NoMatch}
	}

	lines := splitLines(stdout, stderr)

	if m.failure != nil {
		for _, line := range lines {
			if m.failure.MatchString(line) {
				return MatchResult{Verdict: MatchedFailure, Line: line}
			}
		}
	}

	if m.success != nil {
		for _, line := range lines {
			if m.success.MatchString(line) {
				return MatchResult{Verdict: MatchedSuccess, Line: line}
			}
		}
	}

	return MatchResult{Verdict: NoMatch}
}

// splitLines splits stdout and then stderr into lines.
// Invalid UTF-8 is replaced rather than rejected.
func splitLines(stdout, stderr []byte) []string {
	var lines []string
	lines = appendLines(lines, stdout)
	lines = appendLines(lines, stderr)
	return lines
}

func appendLines(lines []string, data []byte) []string {
	if len(data) == 0 {
		return lines
	}

	text := strings.ToValidUTF8(string(data), "�")
	text = strings.TrimSuffix(text, "\n")
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, strings.TrimSuffix(line, "\r"))
	}
	return lines
}
