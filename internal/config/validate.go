package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"apicompat/internal/logging"
	"apicompat/internal/rules"
	"apicompat/internal/symbol"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("visibility", func(fl validator.FieldLevel) bool {
		_, err := symbol.ParseVisibility(fl.Field().String())
		return err == nil
	})

	_ = v.RegisterValidation("rulename", func(fl validator.FieldLevel) bool {
		_, ok := rules.Extended().Lookup(fl.Field().String())
		return ok
	})

	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := logging.ParseLevel(fl.Field().String())
		return err == nil
	})

	return v
}

// Validate checks field values and the rule filter's consistency.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	for _, name := range s.RuleFilter.Include {
		for _, excluded := range s.RuleFilter.Exclude {
			if name == excluded {
				return fmt.Errorf("invalid config: rule %q is both included and excluded", name)
			}
		}
	}

	if !s.RuleFilter.ReportAdditions {
		for _, name := range s.RuleFilter.Include {
			if _, ok := rules.Default().Lookup(name); !ok {
				return fmt.Errorf("invalid config: rule %q requires ruleFilter.reportAdditions", name)
			}
		}
	}

	return nil
}
