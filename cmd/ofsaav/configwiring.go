package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/GooferByte/OfsaaValidator/internal/config"
)

// Defaults applied after merging CLI flags with the config file.
const (
	defaultTemplatesDir = "templates"
	defaultFormat       = "console"
)

// loadRunConfig builds the effective configuration for a validate run: CLI
// flags win, the .ofsaav.yaml file in the working directory fills the gaps,
// and built-in defaults cover the rest.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	fileCfg, err := config.Load(".")
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "ofsaav: failed to load %s (%v)", config.FileName, err)
	}
	if err := config.Validate(fileCfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "ofsaav: %v", err)
	}

	cfg := config.Merge(flagConfig(cmd.Flags()), fileCfg)

	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = defaultTemplatesDir
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = defaultFormat
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = config.DefaultThreshold
	}

	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "ofsaav: %v", err)
	}
	return cfg, nil
}

// flagConfig lifts explicitly set validate flags into a Config so they take
// precedence over the config file during the merge.
func flagConfig(fs *pflag.FlagSet) *config.Config {
	cfg := &config.Config{}
	if fs.Changed("templates") {
		cfg.TemplatesDir = validateTemplates
	}
	if fs.Changed("format") {
		cfg.OutputFormat = validateFormat
	}
	if fs.Changed("output") {
		cfg.OutputDir = validateOutput
	}
	if fs.Changed("threshold") {
		cfg.Threshold = validateThreshold
	}
	if fs.Changed("workers") {
		cfg.Workers = validateWorkers
	}
	return cfg
}
