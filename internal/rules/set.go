package rules

import (
	"errors"
	"fmt"
	"slices"
)

// Predicate selects rules by metadata.
type Predicate func(Metadata) bool

// All selects every rule.
func All(Metadata) bool { return true }

// StrictOnly drops advisory rules.
func StrictOnly(m Metadata) bool { return !m.Advisory }

// Named selects the rules with the given names.
func Named(names ...string) Predicate {
	return func(m Metadata) bool { return slices.Contains(names, m.Name) }
}

// Without drops the rules with the given names.
func Without(names ...string) Predicate {
	return func(m Metadata) bool { return !slices.Contains(names, m.Name) }
}

// And selects rules accepted by every predicate. Nil predicates are ignored.
func And(preds ...Predicate) Predicate {
	return func(m Metadata) bool {
		for _, p := range preds {
			if p != nil && !p(m) {
				return false
			}
		}

		return true
	}
}

// Set is an ordered list of rules.
type Set struct {
	rules []Rule
}

// NewSet creates a set holding rules in the given order.
func NewSet(rules ...Rule) *Set {
	return &Set{rules: append([]Rule(nil), rules...)}
}

// Add appends rules and returns the set.
func (s *Set) Add(rules ...Rule) *Set {
	s.rules = append(s.rules, rules...)

	return s
}

// Rules returns the rules in order.
func (s *Set) Rules() []Rule {
	return slices.Clone(s.rules)
}

// Len returns the number of rules.
func (s *Set) Len() int {
	return len(s.rules)
}

// Select returns a new set with the rules accepted by pred, order preserved.
// A nil predicate selects all rules.
func (s *Set) Select(pred Predicate) *Set {
	if pred == nil {
		pred = All
	}

	out := &Set{}

	for _, r := range s.rules {
		if pred(r.Metadata()) {
			out.rules = append(out.rules, r)
		}
	}

	return out
}

// Names returns the rule names in order.
func (s *Set) Names() []string {
	names := make([]string, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.Metadata().Name
	}

	return names
}

// Lookup returns the rule with the given name.
func (s *Set) Lookup(name string) (Rule, bool) {
	for _, r := range s.rules {
		if r.Metadata().Name == name {
			return r, true
		}
	}

	return nil, false
}

// Validate checks that every rule is non-nil and has a unique, non-empty name.
func (s *Set) Validate() error {
	seen := make(map[string]bool, len(s.rules))

	for i, r := range s.rules {
		if r == nil {
			return fmt.Errorf("rule %d: %w", i, errNilRule)
		}

		name := r.Metadata().Name
		if name == "" {
			return fmt.Errorf("rule %d: empty name", i)
		}

		if seen[name] {
			return fmt.Errorf("rule %q: duplicate name", name)
		}

		seen[name] = true
	}

	return nil
}

var errNilRule = errors.New("rule is nil")

// Default returns the standard rule list.
func Default() *Set {
	return NewSet(
		TypeMustExist{},
		MemberMustExist{},
		ParameterTypeCannotChange{},
		CannotReduceVisibility{},
		CannotAddAttribute{},
		CannotRemoveAttribute{},
		CannotChangeAttribute{},
	)
}

// Extended returns Default followed by ElementAdded.
func Extended() *Set {
	return Default().Add(ElementAdded{})
}
