// Package config loads the command-line tool's settings from a YAML, TOML or
// JSON file, with APICOMPAT_* environment variables layered on top.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"apicompat/internal/symbol"
)

// EnvPrefix prefixes environment overrides, e.g. APICOMPAT_REPORT_FORMAT.
const EnvPrefix = "APICOMPAT"

// Settings is the full tool configuration.
type Settings struct {
	ExcludeAttributes        bool     `mapstructure:"excludeAttributes"`
	IncludeForwardedTypes    bool     `mapstructure:"includeForwardedTypes"`
	AllowedAccessibilities   []string `mapstructure:"allowedAccessibilities"   validate:"min=1,dive,visibility"`
	AlwaysDiffMembers        bool     `mapstructure:"alwaysDiffMembers"`
	ExcludeCompilerGenerated bool     `mapstructure:"excludeCompilerGenerated"`
	IgnoredAttributes        []string `mapstructure:"ignoredAttributes"        validate:"dive,required"`

	RuleFilter RuleFilter `mapstructure:"ruleFilter"`

	// Baselines are suppression files applied to every run.
	Baselines []string `mapstructure:"baselines" validate:"dive,required"`
	// ValidateBaseline warns about suppressions that matched nothing.
	ValidateBaseline bool `mapstructure:"validateBaseline"`

	Report ReportSettings `mapstructure:"report"`
	Log    LogSettings    `mapstructure:"log"`

	// Jobs limits parallel batch jobs; 0 uses GOMAXPROCS.
	Jobs int `mapstructure:"jobs" validate:"gte=0"`
	// SideNames override the names used in messages, by side index.
	SideNames []string `mapstructure:"sideNames" validate:"dive,required"`
}

// RuleFilter selects rules by name and kind.
type RuleFilter struct {
	Include []string `mapstructure:"include" validate:"dive,rulename"`
	Exclude []string `mapstructure:"exclude" validate:"dive,rulename"`
	// Strict drops advisory rules.
	Strict bool `mapstructure:"strict"`
	// ReportAdditions enables the ElementAdded rule.
	ReportAdditions bool `mapstructure:"reportAdditions"`
}

type ReportSettings struct {
	Format string `mapstructure:"format" validate:"oneof=text json"`
	Color  string `mapstructure:"color"  validate:"oneof=auto always never"`
}

type LogSettings struct {
	Level string `mapstructure:"level" validate:"loglevel"`
}

// Default returns the settings used when nothing is configured.
func Default() *Settings {
	return &Settings{
		ExcludeAttributes:        true,
		AllowedAccessibilities:   visibilityNames(symbol.DefaultVisibilities),
		ExcludeCompilerGenerated: true,
		Report: ReportSettings{
			Format: "text",
			Color:  "auto",
		},
		Log: LogSettings{Level: "warn"},
	}
}

// Load reads settings from path. An empty path looks for .apicompat.{yaml,toml,json}
// in the working directory and falls back to defaults when there is none.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".apicompat")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func setDefaults(v *viper.Viper, d *Settings) {
	v.SetDefault("excludeAttributes", d.ExcludeAttributes)
	v.SetDefault("includeForwardedTypes", d.IncludeForwardedTypes)
	v.SetDefault("allowedAccessibilities", d.AllowedAccessibilities)
	v.SetDefault("alwaysDiffMembers", d.AlwaysDiffMembers)
	v.SetDefault("excludeCompilerGenerated", d.ExcludeCompilerGenerated)
	v.SetDefault("ignoredAttributes", d.IgnoredAttributes)
	v.SetDefault("ruleFilter.include", d.RuleFilter.Include)
	v.SetDefault("ruleFilter.exclude", d.RuleFilter.Exclude)
	v.SetDefault("ruleFilter.strict", d.RuleFilter.Strict)
	v.SetDefault("ruleFilter.reportAdditions", d.RuleFilter.ReportAdditions)
	v.SetDefault("baselines", d.Baselines)
	v.SetDefault("validateBaseline", d.ValidateBaseline)
	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("report.color", d.Report.Color)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("jobs", d.Jobs)
	v.SetDefault("sideNames", d.SideNames)
}

func visibilityNames(s symbol.VisibilitySet) []string {
	vs := s.Slice()
	names := make([]string, len(vs))

	for i, v := range vs {
		names[i] = v.String()
	}

	return names
}
