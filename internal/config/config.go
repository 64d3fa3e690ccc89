package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"
)

// Level is the reporting level of a lint rule.
type Level string

const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelOff   Level = "off"
)

// DefaultFileNames are the config files looked up in the working directory
// when no --config flag is given, in order.
var DefaultFileNames = []string{
	"proplint.config.json",
	"proplint.config.yaml",
	"proplint.config.yml",
	".proplintrc.json",
	".proplintrc.yml",
}

// Config represents the proplint configuration.
type Config struct {
	Include []string     `json:"include" yaml:"include"`
	Exclude []string     `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Rules   RulesConfig  `json:"rules" yaml:"rules"`
	Macros  MacrosConfig `json:"macros,omitzero" yaml:"macros,omitempty"`
	Output  OutputConfig `json:"output,omitzero" yaml:"output,omitempty"`

	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty"` // report warnings as errors
	Quiet  bool `json:"quiet,omitempty" yaml:"quiet,omitempty"`   // suppress warnings
	Jobs   int  `json:"jobs,omitzero" yaml:"jobs,omitempty"`      // concurrent files (0 = GOMAXPROCS)
}

// RulesConfig sets the level of each rule.
type RulesConfig struct {
	RequirePropTypes        Level `json:"require-prop-types,omitempty" yaml:"require-prop-types,omitempty"`
	RequireValidDefaultProp Level `json:"require-valid-default-prop,omitempty" yaml:"require-valid-default-prop,omitempty"`
}

// MacrosConfig overrides the callee names recognized as Vue macros and
// component factories. Empty lists keep the built-in names.
type MacrosConfig struct {
	Props        []string `json:"props,omitempty" yaml:"props,omitempty"`
	WithDefaults []string `json:"withDefaults,omitempty" yaml:"withDefaults,omitempty"`
	Model        []string `json:"model,omitempty" yaml:"model,omitempty"`
	Factories    []string `json:"factories,omitempty" yaml:"factories,omitempty"` // e.g. "defineComponent", "*.component"
}

// OutputConfig controls how diagnostics are printed.
type OutputConfig struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // "text" (default) or "json"
	Color  string `json:"color,omitempty" yaml:"color,omitempty"`   // "auto" (default), "always", "never"
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Include: []string{"**/*.{vue,js,jsx,mjs,ts,tsx,mts}"},
		Exclude: []string{"**/*.d.ts", "node_modules/**", "dist/**"},
		Rules: RulesConfig{
			RequirePropTypes:        LevelError,
			RequireValidDefaultProp: LevelError,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
	}
}

// Find returns the first default config file present in dir, or "" when
// there is none.
func Find(dir string) string {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads and parses a proplint config file. The format is chosen by
// extension: .yaml and .yml are YAML, anything else is JSON. Fields absent
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %q: %w", path, err)
	}

	return &config, nil
}

// Validate checks the config for logical errors.
func (c *Config) Validate() error {
	if len(c.Include) == 0 {
		return fmt.Errorf("include must have at least one pattern")
	}
	if err := c.Rules.RequirePropTypes.check("rules.require-prop-types"); err != nil {
		return err
	}
	if err := c.Rules.RequireValidDefaultProp.check("rules.require-valid-default-prop"); err != nil {
		return err
	}
	switch c.Output.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("output.format must be \"text\" or \"json\", got %q", c.Output.Format)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}

func (l Level) check(field string) error {
	switch l {
	case "", LevelError, LevelWarn, LevelOff:
		return nil
	}
	return fmt.Errorf("%s must be one of error, warn or off, got %q", field, string(l))
}

// Enabled reports whether a rule at this level reports anything. An unset
// level counts as error.
func (l Level) Enabled() bool {
	return l != LevelOff
}
