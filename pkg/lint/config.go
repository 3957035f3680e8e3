package lint

import "strings"

// Default file selection.
var (
	DefaultInclude = []string{
		"CLAUDE.md",
		"AGENTS.md",
		".claude/**",
		".github/copilot-instructions.md",
	}
	DefaultIgnore          = []string{"node_modules", ".git", "target"}
	DefaultHistoricalFiles = []string{"changelog*", "retro*", "history*", "archive*", "restart*"}
)

// Config is the validated configuration the engine consumes. It is built
// once before a run and never modified afterwards.
type Config struct {
	Include         []string
	Ignore          []string // directory globs
	IgnoreFiles     []string // subtracted after include matches
	HistoricalFiles []string
	Strict          bool

	// Rules holds per-rule settings keyed by rule ID.
	Rules map[string]RuleConfig

	CustomPatterns []CustomPattern
}

// RuleConfig holds the per-rule settings of a [checkers.<rule>] table.
// Nil pointers mean "not set".
type RuleConfig struct {
	Enabled  *bool
	Strict   *bool // overrides the definition's StrictOnly
	Severity *Severity
	Scope    []string
	Options  Options
}

// CustomPattern is a user-defined regex rule, reported as custom:<Name>.
type CustomPattern struct {
	Name     string `koanf:"name" toml:"name"`
	Pattern  string `koanf:"pattern" toml:"pattern"`
	Severity string `koanf:"severity" toml:"severity,omitempty"` // empty means warning
	Message  string `koanf:"message" toml:"message"`
}

// CustomRulePrefix prefixes the ID of every custom pattern rule.
const CustomRulePrefix = "custom:"

// NewConfig creates the default configuration with every rule at its
// default settings.
func NewConfig() Config {
	return Config{
		Include:         append([]string(nil), DefaultInclude...),
		Ignore:          append([]string(nil), DefaultIgnore...),
		HistoricalFiles: append([]string(nil), DefaultHistoricalFiles...),
		Rules:           make(map[string]RuleConfig),
	}
}

// Rule returns the settings for a rule, or the zero value.
func (c Config) Rule(id string) RuleConfig {
	return c.Rules[id]
}

// IsActive reports whether a definition runs under this configuration:
// enabled (default true) and either not strict-only or strict mode on.
func (c Config) IsActive(def RuleDef) bool {
	rc := c.Rule(def.ID)
	if rc.Enabled != nil && !*rc.Enabled {
		return false
	}
	strictOnly := def.StrictOnly
	if rc.Strict != nil {
		strictOnly = *rc.Strict
	}
	return !strictOnly || c.Strict
}

// IsCustomRule reports whether id names a custom pattern rule.
func IsCustomRule(id string) bool {
	return strings.HasPrefix(id, CustomRulePrefix)
}
