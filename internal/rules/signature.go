package rules

import (
	"fmt"

	"apicompat/internal/identity"
	"apicompat/internal/mapping"
	"apicompat/internal/match"
	"apicompat/internal/symbol"
)

// ParameterTypeCannotChange pairs a method that exists only on the baseline
// with a method of the same name, parameter count and generic arity that
// exists only on another side of the same type, and reports the pair as a
// signature change.
//
// When several candidates qualify, the one with the closest parameter list
// wins (see match.RankSignatures); an equally ranked runner-up is named in
// the message as an ambiguous pairing. The pairing is a heuristic and the
// rule is advisory.
//
// With more than two sides, each side missing the method is paired on its
// own, even when the method still exists on other implementations.
type ParameterTypeCannotChange struct{}

func (ParameterTypeCannotChange) Metadata() Metadata {
	return Metadata{
		Name:        "ParameterTypeCannotChange",
		Advisory:    true,
		Description: "a removed method replaced by a same-name overload is a signature change",
	}
}

func (ParameterTypeCannotChange) Diff(ctx *Context, node mapping.Node) ([]Finding, error) {
	mm, ok := node.(*mapping.MemberMapping)
	if !ok || mm.Type == nil {
		return nil, nil
	}

	base := mm.Baseline()
	if base == nil || base.Kind != symbol.KindMethod {
		return nil, nil
	}

	var out []Finding

	for _, side := range mm.Absent() {
		ranked := match.RankSignatures(base, replacements(mm, base, side))

		best := ranked.Best()
		if best == nil {
			continue
		}

		msg := fmt.Sprintf("Method '%s' in the %s changed its signature to '%s' in the %s.",
			identity.Signature(base), ctx.SideName(0), identity.Signature(best.Symbol), ctx.SideName(side))
		if ranked.IsAmbiguous() {
			msg += fmt.Sprintf(" The pairing is ambiguous: '%s' matches equally well.", identity.Signature(ranked[1].Symbol))
		}

		out = append(out, Finding{
			Type:    Changed,
			Message: msg,
			Sides:   []int{0, side},
		})
	}

	return out, nil
}

// replacements returns the sibling methods present only on side, shaped like base.
func replacements(mm *mapping.MemberMapping, base *symbol.Symbol, side int) []*symbol.Symbol {
	var out []*symbol.Symbol

	for _, sib := range mm.Type.Members {
		if sib == mm || sib.Baseline() != nil {
			continue
		}

		c := sib.Element(side)
		if c == nil || c.Kind != symbol.KindMethod {
			continue
		}

		if c.Name == base.Name &&
			c.Constructor == base.Constructor &&
			c.ExplicitInterface == base.ExplicitInterface &&
			len(c.Parameters) == len(base.Parameters) &&
			c.GenericArity == base.GenericArity {
			out = append(out, c)
		}
	}

	return out
}
