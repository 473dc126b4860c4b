package monitor

import "fmt"

// Verdict is the classification of one batch of output.
type Verdict int

const (
	// NoMatch means neither pattern matched
	NoMatch Verdict = iota
	// MatchedSuccess means the success pattern matched and the failure pattern did not
	MatchedSuccess
	// MatchedFailure means the failure pattern matched
	MatchedFailure
)

func (v Verdict) String() string {
	switch v {
	case MatchedSuccess:
		return "success"
	case MatchedFailure:
		return "failure"
	default:
		return "no match"
	}
}

// MatchResult represents a pattern match result.
type MatchResult struct {
	Verdict Verdict
	// Line is the output line that decided the verdict
	Line string
}

// PatternError is returned when a regular expression does not compile.
type PatternError struct {
	Expr string
	Err  error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Expr, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
