package config

import (
	"log/slog"

	"apicompat/internal/filter"
	"apicompat/internal/logging"
	"apicompat/internal/rules"
	"apicompat/internal/symbol"
)

// FilterConfig converts the surface options to a filter configuration.
func (s *Settings) FilterConfig() (filter.Config, error) {
	allowed, err := symbol.ParseVisibilitySet(s.AllowedAccessibilities)
	if err != nil {
		return filter.Config{}, err
	}

	cfg := filter.Config{
		ExcludeAttributes:        s.ExcludeAttributes,
		IncludeForwardedTypes:    s.IncludeForwardedTypes,
		AllowedAccessibilities:   allowed,
		AlwaysDiffMembers:        s.AlwaysDiffMembers,
		ExcludeCompilerGenerated: s.ExcludeCompilerGenerated,
		IgnoredAttributes:        append([]string(nil), s.IgnoredAttributes...),
	}

	return cfg, cfg.Validate()
}

// RuleSet returns the rules available to a run.
func (s *Settings) RuleSet() *rules.Set {
	if s.RuleFilter.ReportAdditions {
		return rules.Extended()
	}

	return rules.Default()
}

// RulePredicate combines the include, exclude and strict options.
func (s *Settings) RulePredicate() rules.Predicate {
	var preds []rules.Predicate

	if len(s.RuleFilter.Include) > 0 {
		preds = append(preds, rules.Named(s.RuleFilter.Include...))
	}

	if len(s.RuleFilter.Exclude) > 0 {
		preds = append(preds, rules.Without(s.RuleFilter.Exclude...))
	}

	if s.RuleFilter.Strict {
		preds = append(preds, rules.StrictOnly)
	}

	return rules.And(preds...)
}

// LogLevel returns the configured log level.
func (s *Settings) LogLevel() slog.Level {
	level, err := logging.ParseLevel(s.Log.Level)
	if err != nil {
		return slog.LevelWarn
	}

	return level
}
