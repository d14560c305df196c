// Package config holds errdemo's runtime configuration and the layering that
// resolves it from flags, environment, .env files and YAML config files.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/spf13/pflag"
	"gopkg.in/go-playground/validator.v9"

	apperrors "github.com/agbru/errdemo/internal/errors"
)

// EnvPrefix is prepended to every environment variable errdemo reads.
const EnvPrefix = "ERRDEMO_"

// Defaults applied before any other layer.
const (
	DefaultAge         = -5
	DefaultMissingFile = "nonexistent_file.txt"
	DefaultTimeout     = 5 * time.Minute
	DefaultTheme       = "dark"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "console"
	DefaultEnvFile     = ".env"
)

// AppConfig aggregates every setting of a run.
type AppConfig struct {
	// Units restricts the run to these unit IDs. Empty runs every unit.
	Units []string `yaml:"units"`
	// KeepGoing continues past units whose failure was not handled.
	KeepGoing bool `yaml:"keep_going"`
	// Age is the value checked by the negative-age unit.
	Age int `yaml:"age"`
	// MissingFile is the path the file-not-found unit tries to open.
	MissingFile string `yaml:"missing_file" validate:"required"`
	// Input is a file to read operator input from. Empty or "-" means stdin.
	Input string `yaml:"input"`
	// MaxAttempts bounds the read-number unit. Zero means unlimited.
	MaxAttempts int `yaml:"max_attempts" validate:"gte=0"`
	// Timeout bounds the whole run. Zero disables the deadline.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
	// Verbose prints a header before each unit.
	Verbose bool `yaml:"verbose"`
	// Summary prints a per-unit table to stderr after the run.
	Summary bool `yaml:"summary"`
	// NoColor disables colored output.
	NoColor bool `yaml:"no_color"`
	// Theme is one of dark, light, orange, none.
	Theme string `yaml:"theme" validate:"oneof=dark light orange none"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
	// LogFormat is console or json.
	LogFormat string `yaml:"log_format" validate:"oneof=console json"`
	// MetricsOut is a path where the run's Prometheus metrics are written
	// in text exposition format. Empty disables the export.
	MetricsOut string `yaml:"metrics_out"`

	// ConfigFile is a YAML file layered under env and flags.
	ConfigFile string `yaml:"-"`
	// EnvFile is a dotenv file loaded into the process environment.
	EnvFile string `yaml:"-"`
}

// Default returns the configuration used when nothing else is set.
func Default() AppConfig {
	return AppConfig{
		Age:         DefaultAge,
		MissingFile: DefaultMissingFile,
		Timeout:     DefaultTimeout,
		Theme:       DefaultTheme,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		EnvFile:     DefaultEnvFile,
	}
}

// BindFlags registers every configuration flag on fs, writing into cfg.
// cfg should hold Default() so flag defaults match the documented ones.
func BindFlags(fs *pflag.FlagSet, cfg *AppConfig) {
	fs.StringSliceVar(&cfg.Units, "only", cfg.Units, "run only these units (comma-separated IDs)")
	fs.BoolVarP(&cfg.KeepGoing, "keep-going", "k", cfg.KeepGoing, "continue after a unit fails with an unhandled condition")
	fs.IntVar(&cfg.Age, "age", cfg.Age, "value checked by the negative-age unit")
	fs.StringVar(&cfg.MissingFile, "missing-file", cfg.MissingFile, "path opened by the file-not-found unit")
	fs.StringVarP(&cfg.Input, "input", "i", cfg.Input, "read operator input from this file instead of stdin")
	fs.IntVar(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "maximum prompts in the read-number unit (0 = unlimited)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "deadline for the whole run (0 = none)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "print a header before each unit")
	fs.BoolVar(&cfg.Summary, "summary", cfg.Summary, "print a per-unit summary to stderr")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "color theme: dark, light, orange, none")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console, json")
	fs.StringVar(&cfg.MetricsOut, "metrics-out", cfg.MetricsOut, "write Prometheus metrics to this file")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", cfg.ConfigFile, "YAML configuration file")
	fs.StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "dotenv file loaded before reading ERRDEMO_* variables")
}

// Resolve layers the configuration sources: defaults, then the YAML file,
// then ERRDEMO_* variables (after loading the dotenv file), then the flags
// explicitly set on fs. flagged holds the values the flags were parsed into.
// The result is validated.
func Resolve(fs *pflag.FlagSet, flagged AppConfig) (AppConfig, error) {
	cfg := Default()
	cfg.ConfigFile = flagged.ConfigFile
	cfg.EnvFile = flagged.EnvFile

	if err := loadDotEnv(cfg.EnvFile, fs.Changed("env-file")); err != nil {
		return AppConfig{}, err
	}
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = getEnvString("CONFIG", "")
	}
	if cfg.ConfigFile != "" {
		if err := LoadFile(cfg.ConfigFile, &cfg); err != nil {
			return AppConfig{}, err
		}
	}
	if err := applyEnvOverrides(&cfg, fs); err != nil {
		return AppConfig{}, err
	}
	if err := applyFlags(&cfg, fs); err != nil {
		return AppConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints and reports the first violation as an
// apperrors.ValidationError named after the corresponding flag.
func (c AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewConfigError("invalid configuration: %v", err)
	}
	fe := fieldErrs[0]
	return apperrors.ValidationError{
		Field:   strcase.ToKebab(fe.Field()),
		Message: describe(fe),
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gte":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
