// Package config holds the project-level JSON configuration (vhdllint.json,
// loaded once per run) and the per-directory VHDLLINT.cfg override chain
// (loaded once per file, see cfgchain.go). The JSON layer sets run-wide
// defaults for flags the user didn't pass on the command line; the
// VHDLLINT.cfg chain then layers directory-local overrides on top, exactly
// as spec §6 describes.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/intrepidcs/vhdllint/internal/validator"
)

// Config is the top-level project configuration for vhdllint, grounded on
// the teacher's own Config/DefaultConfig/Load/LoadFile/Save shape
// (internal/config/config.go) but holding the CLI-surface defaults this
// port actually has a use for instead of the teacher's multi-file indexing
// options.
type Config struct {
	// Output selects the default formatter: emacs, vs7, eclipse, junit,
	// sed or gsed.
	Output string `json:"output,omitempty"`

	// Verbose is the minimum confidence a diagnostic must carry to print.
	Verbose int `json:"verbose,omitempty"`

	// Counting selects total, toplevel or detailed category counting.
	Counting string `json:"counting,omitempty"`

	// LineLength is the maximum line length before whitespace/line_length
	// fires; 0 disables the check.
	LineLength int `json:"lineLength,omitempty"`

	// Extensions lists the file extensions (without the leading dot)
	// recursive discovery treats as VHDL source.
	Extensions []string `json:"extensions,omitempty"`

	// Filters is prepended to the run's category filter list, in addition
	// to rules.DefaultFilters.
	Filters []string `json:"filters,omitempty"`

	// Exclude lists glob patterns passed to internal/discover's
	// FilterExcluded for every run using this config.
	Exclude []string `json:"exclude,omitempty"`

	// IgnorePatterns are filename glob patterns skipped entirely, without
	// even opening the file.
	IgnorePatterns []string `json:"ignorePatterns,omitempty"`

	// Recursive and Quiet mirror their CLI flag counterparts.
	Recursive bool `json:"recursive,omitempty"`
	Quiet     bool `json:"quiet,omitempty"`
}

// DefaultConfig returns the configuration a run starts from before any
// vhdllint.json, VHDLLINT.cfg or CLI flag is applied.
func DefaultConfig() *Config {
	return &Config{
		Output:     "emacs",
		Verbose:    1,
		Counting:   "total",
		LineLength: 80,
		Extensions: []string{"vhd", "vhdl"},
	}
}

// Load finds and loads vhdllint.json, searching (in order) the current
// working directory, rootPath (if different), and the user config
// directory, matching the teacher's Load search order. Returns
// DefaultConfig if no file is found.
func Load(rootPath string) (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, "vhdllint.json"),
		filepath.Join(cwd, ".vhdllint.json"),
	}

	if info, err := os.Stat(rootPath); err == nil && info.IsDir() {
		absRoot, _ := filepath.Abs(rootPath)
		if absRoot != cwd {
			searchPaths = append(searchPaths,
				filepath.Join(rootPath, "vhdllint.json"),
				filepath.Join(rootPath, ".vhdllint.json"),
			)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "vhdllint", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads and validates a specific vhdllint.json file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	v, err := validator.New()
	if err != nil {
		return nil, fmt.Errorf("loading config schema: %w", err)
	}
	if err := v.ValidateJSON(data); err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in zero-valued fields from DefaultConfig, the way the
// teacher's applyDefaults backfills missing JSON keys.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Output == "" {
		c.Output = d.Output
	}
	if c.Verbose == 0 {
		c.Verbose = d.Verbose
	}
	if c.Counting == "" {
		c.Counting = d.Counting
	}
	if c.LineLength == 0 {
		c.LineLength = d.LineLength
	}
	if len(c.Extensions) == 0 {
		c.Extensions = d.Extensions
	}
}

// Save writes the configuration to path as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ShouldIgnoreFile reports whether filePath matches one of the config's
// IgnorePatterns, by full path or by base name.
func (c *Config) ShouldIgnoreFile(filePath string) bool {
	for _, pattern := range c.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, filePath); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(filePath)); matched {
			return true
		}
	}
	return false
}

// ExtensionSet returns Extensions as a lookup set, for internal/discover.
func (c *Config) ExtensionSet() map[string]bool {
	set := make(map[string]bool, len(c.Extensions))
	for _, ext := range c.Extensions {
		set[ext] = true
	}
	return set
}
