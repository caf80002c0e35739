package engine

import (
	"errors"
	"fmt"

	"apicompat/internal/diagnostic"
	"apicompat/internal/rules"
)

var (
	// ErrNoFilter is returned by New without a filter.
	ErrNoFilter = errors.New("filter is required")
	// ErrNoRules is returned by New without a rule set.
	ErrNoRules = errors.New("rule set is required")
)

// RuleError aborts a run. It names the rule, the identity key of the node
// and, when known, the side the failure relates to.
type RuleError struct {
	Rule string
	Key  string
	Side int // diagnostic.NoSide when not tied to a side
	Err  error
}

func newRuleError(rule, key string, err error) *RuleError {
	side := diagnostic.NoSide

	var sideErr *rules.SideError
	if errors.As(err, &sideErr) {
		side = sideErr.Side
	}

	return &RuleError{Rule: rule, Key: key, Side: side, Err: err}
}

func (e *RuleError) Error() string {
	if e.Side == diagnostic.NoSide {
		return fmt.Sprintf("rule %s failed on %s: %v", e.Rule, e.Key, e.Err)
	}

	return fmt.Sprintf("rule %s failed on %s (side %d): %v", e.Rule, e.Key, e.Side, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
