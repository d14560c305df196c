package config

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/errdemo/internal/errors"
)

// LoadFile decodes a YAML configuration file onto cfg. Keys absent from the
// file keep their current values; unknown keys are rejected.
//
// Example:
//
//	age: 30
//	keep_going: true
//	units: [read-number, negative-age]
//	timeout: 30s
func LoadFile(path string, cfg *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.NewConfigError("opening config file: %v", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewConfigError("parsing config file %s: %v", path, err)
	}
	return nil
}
