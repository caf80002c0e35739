package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apicompat/internal/rules"
)

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the difference rules and whether the current config enables them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			available := a.settings.RuleSet()
			pred := a.settings.RulePredicate()
			w := cmd.OutOrStdout()

			for _, r := range rules.Extended().Rules() {
				m := r.Metadata()

				kind := "strict"
				if m.Advisory {
					kind = "advisory"
				}

				state := "off"
				if _, ok := available.Lookup(m.Name); ok && pred(m) {
					state = "on"
				}

				fmt.Fprintf(w, "%-28s %-8s %-3s %s\n", m.Name, kind, state, m.Description)
			}

			return nil
		},
	}
}
