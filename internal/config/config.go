// Package config handles .ofsaav.yaml configuration files. CLI flags take
// precedence; the file supplies defaults for anything the flags leave unset.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GooferByte/OfsaaValidator/internal/report"
)

// FileName is the expected config file name in the working directory.
const FileName = ".ofsaav.yaml"

// DefaultThreshold is the quality score a file must reach for a zero exit.
const DefaultThreshold = 95.0

// Config represents the contents of a .ofsaav.yaml file.
type Config struct {
	TemplatesDir string  `yaml:"templates_dir,omitempty"`
	OutputFormat string  `yaml:"output_format,omitempty"`
	OutputDir    string  `yaml:"output_dir,omitempty"`
	Threshold    float64 `yaml:"quality_threshold,omitempty"`
	Workers      int     `yaml:"workers,omitempty"`
}

// Load reads the config file from the given directory. A missing file is
// not an error: it returns a zero-value Config.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path) //nolint:gosec // user-provided directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", FileName, err)
	}
	return &cfg, nil
}

// Write marshals the config to YAML and writes it to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // best-effort close
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// Validate checks all fields and reports every problem at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.OutputFormat != "" {
		if _, err := report.Get(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}
	if cfg.Threshold < 0 || cfg.Threshold > 100 {
		errs = append(errs, fmt.Sprintf("quality_threshold: must be between 0 and 100, got %g", cfg.Threshold))
	}
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Sprintf("workers: must be non-negative, got %d", cfg.Workers))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Merge fills the zero-valued fields of primary from fallback and returns
// the result. Neither input is modified.
func Merge(primary, fallback *Config) *Config {
	out := *primary
	if out.TemplatesDir == "" {
		out.TemplatesDir = fallback.TemplatesDir
	}
	if out.OutputFormat == "" {
		out.OutputFormat = fallback.OutputFormat
	}
	if out.OutputDir == "" {
		out.OutputDir = fallback.OutputDir
	}
	if out.Threshold == 0 {
		out.Threshold = fallback.Threshold
	}
	if out.Workers == 0 {
		out.Workers = fallback.Workers
	}
	return &out
}
