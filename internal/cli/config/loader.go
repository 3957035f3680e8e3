package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in a command context.
type loggerKey struct{}

// flagKeys maps command line flags to config keys. Flags not listed here
// (--config, --watch) are not configuration.
var flagKeys = map[string]string{
	"format":  "format",
	"fail-on": "fail_on",
	"strict":  "strict",
	"jobs":    "jobs",
	"verbose": "verbose",
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	Root  string         // project root, searched for a config file
	File  string         // explicit config file, overrides the search
	Flags *pflag.FlagSet // only flags that were set are applied
}

// Load builds the configuration from every layer and validates it.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	root := opts.Root
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	path, err := findConfigFile(absRoot, opts.File)
	if err != nil {
		return nil, err
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 3. Environment: SPECTRALINT_FAIL_ON -> fail_on,
	// SPECTRALINT_CHECKERS__FILE_SIZE__MAX_LINES -> checkers.file_size.max_lines
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag:           "koanf",
		DecoderConfig: decoderConfig(&cfg),
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Root = absRoot
	cfg.ConfigFile = path

	if err := cfg.Validate(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// findConfigFile returns the explicit file if given, otherwise the first
// known config file name present in root, otherwise "".
func findConfigFile(root, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(root, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// parserFor picks a koanf parser from the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("config file %s: unsupported format (use .toml, .yaml or .yml)", path)
	}
}

// envValue maps an environment variable to a config key. Numbers and
// booleans are converted so that rule options read them like file values.
// Variables that do not name a top-level key (SPECTRALINT_TOKEN for a CI
// secret, say) are skipped.
func envValue(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if !isTopLevelKey(strings.SplitN(key, ".", 2)[0]) {
		return "", nil
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return key, n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return key, f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return key, b
	}
	return key, value
}

func isTopLevelKey(key string) bool {
	if key == "checkers" {
		return true
	}
	_, ok := defaults()[key]
	return ok
}

// decoderConfig returns the mapstructure settings shared by the top level
// and the per-checker decode. Unknown keys are errors.
func decoderConfig(result any) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			severityHook(),
			mapstructure.StringToSliceHookFunc(","),
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		TagName:          "koanf",
		Result:           result,
	}
}

var severityType = reflect.TypeOf(lint.SeverityInfo)

// severityHook decodes "info", "warning" and "error" into lint.Severity.
func severityHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != severityType || from.Kind() != reflect.String {
			return data, nil
		}
		s := reflect.ValueOf(data).String()
		sev, ok := lint.ParseSeverity(s)
		if !ok {
			return nil, fmt.Errorf("invalid severity %q (expected info, warning or error)", s)
		}
		return sev, nil
	}
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without importing the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.New(slog.DiscardHandler)
}
