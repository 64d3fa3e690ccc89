package config

import (
	"fmt"
	"strings"
)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// ValidateDetailed performs thorough config validation with suggestions.
func (c *Config) ValidateDetailed() *ValidationResult {
	result := &ValidationResult{}

	if len(c.Include) == 0 {
		result.Errors = append(result.Errors, "include: at least one pattern required")
	}
	for _, pattern := range c.Include {
		if !strings.ContainsAny(pattern, "*?{") && !hasSourceExtension(pattern) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("include: pattern %q has no wildcard or source extension; did you mean %q?", pattern, strings.TrimSuffix(pattern, "/")+"/**/*.vue"))
		}
	}

	rules := []struct {
		field string
		level Level
	}{
		{"rules.require-prop-types", c.Rules.RequirePropTypes},
		{"rules.require-valid-default-prop", c.Rules.RequireValidDefaultProp},
	}
	for _, r := range rules {
		if err := r.level.check(r.field); err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
	}
	if !c.Rules.RequirePropTypes.Enabled() && !c.Rules.RequireValidDefaultProp.Enabled() {
		result.Warnings = append(result.Warnings, "rules: every rule is off; nothing will be reported")
	}

	switch c.Output.Format {
	case "", "text", "json":
	default:
		result.Errors = append(result.Errors,
			fmt.Sprintf("output.format: invalid value %q; must be text or json", c.Output.Format))
	}
	switch c.Output.Color {
	case "", "auto", "always", "never":
	default:
		result.Errors = append(result.Errors,
			fmt.Sprintf("output.color: invalid value %q; must be auto, always or never", c.Output.Color))
	}

	if c.Strict && c.Quiet {
		result.Warnings = append(result.Warnings, "strict and quiet are both set; quiet drops warnings before strict can promote them")
	}

	if c.Jobs < 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("jobs: must not be negative, got %d", c.Jobs))
	}

	for _, list := range [][]string{c.Macros.Props, c.Macros.WithDefaults, c.Macros.Model, c.Macros.Factories} {
		for _, name := range list {
			if strings.TrimSpace(name) == "" {
				result.Errors = append(result.Errors, "macros: callee names must not be empty")
			}
		}
	}

	return result
}

func hasSourceExtension(pattern string) bool {
	for _, ext := range []string{".vue", ".js", ".jsx", ".mjs", ".ts", ".tsx", ".mts", ".json"} {
		if strings.HasSuffix(pattern, ext) {
			return true
		}
	}
	return false
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}
