// Package config loads spectralint configuration for the CLI.
//
// Values are layered with koanf, lowest to highest precedence: built-in
// defaults, the project config file (.spectralintrc.toml or
// .spectralintrc.yaml), SPECTRALINT_* environment variables, and flags
// set on the command line. The result is validated and converted to the
// lint.Config the engine consumes.
package config

import (
	"github.com/leapstack-labs/spectralint/pkg/lint"
)

// Config file names searched in the project root, in order.
var ConfigFileNames = []string{
	".spectralintrc.toml",
	".spectralintrc.yaml",
	".spectralintrc.yml",
}

// Defaults for CLI-only settings.
const (
	DefaultFormat = "auto"
	DefaultFailOn = lint.SeverityError
	EnvPrefix     = "SPECTRALINT_"
)

// Config holds everything read from defaults, the config file, the
// environment and flags.
type Config struct {
	Include         []string `koanf:"include"`
	Ignore          []string `koanf:"ignore"`
	IgnoreFiles     []string `koanf:"ignore_files"`
	HistoricalFiles []string `koanf:"historical_files"`
	Strict          bool     `koanf:"strict"`

	Format  string        `koanf:"format"`
	FailOn  lint.Severity `koanf:"fail_on"`
	Jobs    int           `koanf:"jobs"`
	Verbose bool          `koanf:"verbose"`

	Checkers Checkers `koanf:"checkers"`

	// Set by the loader, not read from any source.
	Root       string `koanf:"-"`
	ConfigFile string `koanf:"-"`
}

// Checkers is the [checkers] table. Every key other than custom_patterns
// names a rule by its config key and is collected in Rules.
type Checkers struct {
	CustomPatterns []lint.CustomPattern `koanf:"custom_patterns"`
	Rules          map[string]any       `koanf:",remain"`
}

// CheckerConfig is one [checkers.<rule>] table. Keys other than the
// common ones are rule options.
type CheckerConfig struct {
	Enabled  *bool          `koanf:"enabled"`
	Strict   *bool          `koanf:"strict"`
	Severity *lint.Severity `koanf:"severity"`
	Scope    []string       `koanf:"scope"`
	Options  map[string]any `koanf:",remain"`
}

// defaults returns the flat default values loaded before any other layer.
func defaults() map[string]any {
	return map[string]any{
		"include":          append([]string(nil), lint.DefaultInclude...),
		"ignore":           append([]string(nil), lint.DefaultIgnore...),
		"ignore_files":     []string{},
		"historical_files": append([]string(nil), lint.DefaultHistoricalFiles...),
		"strict":           false,
		"format":           DefaultFormat,
		"fail_on":          DefaultFailOn.String(),
		"jobs":             0,
		"verbose":          false,
	}
}
