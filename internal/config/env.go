// This file contains environment variable and flag layering for configuration.

package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	apperrors "github.com/agbru/errdemo/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// loadDotEnv loads a dotenv file into the process environment. Variables
// already set win over the file. A missing file is only an error when the
// path was given explicitly.
func loadDotEnv(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	return apperrors.NewConfigError("loading env file %s: %v", path, err)
}

// envOverride declares a single configuration key that can be set from the
// environment or a flag. envKey is the variable name without the ERRDEMO_
// prefix; flags lists the long flag names bound to the same field.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

// envOverrides is the declarative table of every layered key.
var envOverrides = []envOverride{
	// Numeric overrides
	{"AGE", []string{"age"}, func(c *AppConfig, v string) error {
		return parseInt("age", v, &c.Age)
	}},
	{"MAX_ATTEMPTS", []string{"max-attempts"}, func(c *AppConfig, v string) error {
		return parseInt("max-attempts", v, &c.MaxAttempts)
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) error {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return apperrors.NewConfigError("invalid value %q for timeout: %v", v, err)
		}
		c.Timeout = parsed
		return nil
	}},

	// String overrides
	{"ONLY", []string{"only"}, func(c *AppConfig, v string) error {
		c.Units = splitList(v)
		return nil
	}},
	{"MISSING_FILE", []string{"missing-file"}, func(c *AppConfig, v string) error {
		c.MissingFile = v
		return nil
	}},
	{"INPUT", []string{"input"}, func(c *AppConfig, v string) error {
		c.Input = v
		return nil
	}},
	{"THEME", []string{"theme"}, func(c *AppConfig, v string) error {
		c.Theme = v
		return nil
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) error {
		c.LogLevel = strings.ToLower(v)
		return nil
	}},
	{"LOG_FORMAT", []string{"log-format"}, func(c *AppConfig, v string) error {
		c.LogFormat = strings.ToLower(v)
		return nil
	}},
	{"METRICS_OUT", []string{"metrics-out"}, func(c *AppConfig, v string) error {
		c.MetricsOut = v
		return nil
	}},

	// Boolean overrides
	{"KEEP_GOING", []string{"keep-going"}, func(c *AppConfig, v string) error {
		c.KeepGoing = parseBoolEnv(v, c.KeepGoing)
		return nil
	}},
	{"VERBOSE", []string{"verbose"}, func(c *AppConfig, v string) error {
		c.Verbose = parseBoolEnv(v, c.Verbose)
		return nil
	}},
	{"SUMMARY", []string{"summary"}, func(c *AppConfig, v string) error {
		c.Summary = parseBoolEnv(v, c.Summary)
		return nil
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) error {
		c.NoColor = parseBoolEnv(v, c.NoColor)
		return nil
	}},
}

func parseInt(name, v string, dst *int) error {
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return apperrors.NewConfigError("invalid value %q for %s: not an integer", v, name)
	}
	*dst = parsed
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
func isFlagSetAny(fs *pflag.FlagSet, names ...string) bool {
	if fs == nil {
		return false
	}
	for _, name := range names {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > File > Defaults.
func applyEnvOverrides(cfg *AppConfig, fs *pflag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if err := o.apply(cfg, val); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyFlags copies the values of explicitly set flags onto cfg.
func applyFlags(cfg *AppConfig, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	for _, o := range envOverrides {
		for _, name := range o.flags {
			if !fs.Changed(name) {
				continue
			}
			if err := o.apply(cfg, flagValue(fs, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

// flagValue renders a flag's parsed value in the same form the environment
// would carry it.
func flagValue(fs *pflag.FlagSet, name string) string {
	f := fs.Lookup(name)
	if f == nil {
		return ""
	}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return strings.Join(sv.GetSlice(), ",")
	}
	return f.Value.String()
}
