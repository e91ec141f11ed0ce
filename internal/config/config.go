// Package config provides configuration management for commitlog using
// koanf. Configuration is loaded with priority: environment variables >
// project config (.commitlog.yml) > defaults. A legacy JSON project
// config (.commitlog.json) is still read, with a migration warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/commitlog/internal/conventional"
)

const (
	// ProjectConfigPath is the default project config file.
	ProjectConfigPath = ".commitlog.yml"
	// LegacyProjectConfigPath is the deprecated JSON project config file.
	LegacyProjectConfigPath = ".commitlog.json"
	// envPrefix is the prefix for environment variable overrides,
	// e.g. COMMITLOG_FORMAT=json.
	envPrefix = "COMMITLOG_"
)

// Configuration holds every knob the commitlog CLI exposes outside of
// flags. The core pipeline receives these values as explicit arguments;
// nothing in this package is process-wide state.
type Configuration struct {
	// Format is the default output format (markdown, json, yaml, csv, raw).
	Format string `koanf:"format"`

	// Output is the default output path. "-" writes to stdout.
	Output string `koanf:"output"`

	// Labels maps commit types to display labels used by the renderers,
	// e.g. feat -> Features. Types without a label render as-is.
	Labels map[string]string `koanf:"labels"`

	// Types overrides the type-to-category vocabulary, mapping commit
	// types to category identifiers (feature, fix, chore, ...). Entries
	// extend and override the built-in Conventional Commits table.
	Types map[string]string `koanf:"types"`

	// IgnoreTypes lists commit types the renderers skip. The core still
	// parses and classifies them; only presentation is affected.
	IgnoreTypes []string `koanf:"ignore_types"`

	// BreakingLabel is the display label for the breaking-changes group.
	BreakingLabel string `koanf:"breaking_label"`

	// Parallelism is the number of commit messages parsed concurrently.
	Parallelism int `koanf:"parallelism"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path.
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr).
	WarningWriter io.Writer
}

// Load loads configuration from the project file and environment.
// Priority: environment variables > project config > defaults.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter(opts.WarningWriter)); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadProjectConfig loads the project-level config, preferring YAML over
// the legacy JSON file. A custom path is used verbatim when given.
func loadProjectConfig(k *koanf.Koanf, customPath string, warnings io.Writer) error {
	if customPath != "" {
		if err := k.Load(file.Provider(customPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config %s: %w", customPath, err)
		}
		return nil
	}

	if fileExists(ProjectConfigPath) {
		if err := k.Load(file.Provider(ProjectConfigPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", ProjectConfigPath, err)
		}
		return nil
	}

	if fileExists(LegacyProjectConfigPath) {
		if err := k.Load(file.Provider(LegacyProjectConfigPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", LegacyProjectConfigPath, err)
		}
		fmt.Fprintf(warnings, "Warning: using deprecated JSON config at %s\n", LegacyProjectConfigPath)
		fmt.Fprintf(warnings, "  Rename it to %s in YAML format.\n", ProjectConfigPath)
	}

	return nil
}

// CategoryTable builds the classifier vocabulary: the built-in table
// extended and overridden by the Types mapping. Validate has already
// checked that every category identifier resolves.
func (c *Configuration) CategoryTable() conventional.Table {
	table := conventional.DefaultTable()
	for typ, name := range c.Types {
		if cat, ok := conventional.ParseCategory(name); ok {
			table[strings.ToLower(typ)] = cat
		}
	}
	return table
}

// warningWriter returns the warning writer or defaults to stderr.
func warningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: COMMITLOG_BREAKING_LABEL -> breaking_label.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}
