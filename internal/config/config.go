package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/docverify/internal/classifier"
	"github.com/harrison/docverify/internal/filelock"
)

// FileName is the configuration file looked up by LoadConfigFromDir.
const FileName = ".docverify.yaml"

// ClassifierConfig holds the tags and markers that decide how a block is verified
type ClassifierConfig struct {
	// ConfigTag is the fence language of configuration snippets
	ConfigTag string `yaml:"config_tag"`

	// QueryTags are the fence languages of query snippets
	QueryTags []string `yaml:"query_tags"`

	// UsersMarker marks a snippet as a users document
	UsersMarker string `yaml:"users_marker"`

	// LibMarker marks a library-only fragment that is never validated
	LibMarker string `yaml:"lib_marker"`
}

// Rules converts the configuration into classifier rules.
func (c ClassifierConfig) Rules() classifier.Rules {
	return classifier.Rules{
		ConfigTag:   c.ConfigTag,
		QueryTags:   append([]string(nil), c.QueryTags...),
		UsersMarker: c.UsersMarker,
		LibMarker:   c.LibMarker,
	}
}

// Config represents docverify configuration options
type Config struct {
	// DocsRoot is the directory scanned for documentation pages
	DocsRoot string `yaml:"docs_root"`

	// Extensions are the file extensions treated as documentation pages
	Extensions []string `yaml:"extensions"`

	// ExcludeDirs are directory names skipped during discovery
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// ExcludeGlobs are doublestar patterns, relative to DocsRoot, skipped during discovery
	ExcludeGlobs []string `yaml:"exclude_globs"`

	// ScratchPath is the fixed file config snippets are staged in
	ScratchPath string `yaml:"scratch_path"`

	// UniqueScratch stages snippets in a per-run temporary file instead of ScratchPath
	UniqueScratch bool `yaml:"unique_scratch"`

	// Timeout bounds each validator invocation (0 = wait indefinitely)
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables per-run log files when non-empty
	LogDir string `yaml:"log_dir"`

	// DryRun classifies blocks without invoking any verifier
	DryRun bool `yaml:"dry_run"`

	// Allowlist adds query substrings to the built-in parser exceptions
	Allowlist []string `yaml:"allowlist"`

	// Classifier contains the block classification rules
	Classifier ClassifierConfig `yaml:"classifier"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		DocsRoot:    "docs",
		Extensions:  []string{".md"},
		ExcludeDirs: []string{"node_modules"},
		ScratchPath: filelock.DefaultScratchPath,
		Timeout:     0,
		LogLevel:    "info",
		Classifier: ClassifierConfig{
			ConfigTag:   "toml",
			QueryTags:   []string{"postgresql"},
			UsersMarker: "[[users]]",
			LibMarker:   "[lib]",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are written as strings ("30s", "2m")
	type yamlConfig struct {
		DocsRoot      string           `yaml:"docs_root"`
		Extensions    []string         `yaml:"extensions"`
		ExcludeDirs   []string         `yaml:"exclude_dirs"`
		ExcludeGlobs  []string         `yaml:"exclude_globs"`
		ScratchPath   string           `yaml:"scratch_path"`
		UniqueScratch bool             `yaml:"unique_scratch"`
		Timeout       string           `yaml:"timeout"`
		LogLevel      string           `yaml:"log_level"`
		LogDir        string           `yaml:"log_dir"`
		DryRun        bool             `yaml:"dry_run"`
		Allowlist     []string         `yaml:"allowlist"`
		Classifier    ClassifierConfig `yaml:"classifier"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.DocsRoot != "" {
		cfg.DocsRoot = yamlCfg.DocsRoot
	}
	if len(yamlCfg.Extensions) > 0 {
		cfg.Extensions = yamlCfg.Extensions
	}
	if yamlCfg.ExcludeDirs != nil {
		cfg.ExcludeDirs = yamlCfg.ExcludeDirs
	}
	if len(yamlCfg.ExcludeGlobs) > 0 {
		cfg.ExcludeGlobs = yamlCfg.ExcludeGlobs
	}
	if yamlCfg.ScratchPath != "" {
		cfg.ScratchPath = yamlCfg.ScratchPath
	}
	if yamlCfg.UniqueScratch {
		cfg.UniqueScratch = true
	}
	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.DryRun {
		cfg.DryRun = true
	}
	if len(yamlCfg.Allowlist) > 0 {
		cfg.Allowlist = yamlCfg.Allowlist
	}

	c := yamlCfg.Classifier
	if c.ConfigTag != "" {
		cfg.Classifier.ConfigTag = c.ConfigTag
	}
	if c.QueryTags != nil {
		cfg.Classifier.QueryTags = c.QueryTags
	}
	if c.UsersMarker != "" {
		cfg.Classifier.UsersMarker = c.UsersMarker
	}
	if c.LibMarker != "" {
		cfg.Classifier.LibMarker = c.LibMarker
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .docverify.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(docsRoot *string, timeout *time.Duration, logLevel *string, logDir *string, dryRun *bool) {
	if docsRoot != nil {
		c.DocsRoot = *docsRoot
	}
	if timeout != nil {
		c.Timeout = *timeout
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if dryRun != nil {
		c.DryRun = *dryRun
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.DocsRoot == "" {
		return fmt.Errorf("docs_root cannot be empty")
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	// Timeout can be 0 (no timeout) or positive, negative is invalid
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}

	if !c.UniqueScratch && c.ScratchPath == "" {
		return fmt.Errorf("scratch_path cannot be empty unless unique_scratch is enabled")
	}

	if c.Classifier.ConfigTag == "" {
		return fmt.Errorf("classifier.config_tag cannot be empty")
	}
	if c.Classifier.UsersMarker == "" {
		return fmt.Errorf("classifier.users_marker cannot be empty")
	}
	for _, tag := range c.Classifier.QueryTags {
		if tag == c.Classifier.ConfigTag {
			return fmt.Errorf("classifier.query_tags cannot contain the config tag %q", tag)
		}
	}

	for _, entry := range c.Allowlist {
		if entry == "" {
			return fmt.Errorf("allowlist entries cannot be empty")
		}
	}

	return nil
}
