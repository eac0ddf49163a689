// Package config resolves jsontab's runtime configuration.
//
// Precedence, lowest to highest:
//
//  1. built-in defaults
//  2. YAML config file: an explicit --config path, or the nearest of
//     .jsontab.yml, .jsontab.yaml, jsontab.yml, jsontab.yaml found
//     walking up from the working directory
//  3. environment variables (JSONTAB_SEPARATOR, JSONTAB_DELIMITER,
//     JSONTAB_FILENAME, JSONTAB_RECORD_PATH, JSONTAB_DEBUG)
//
// OUTPUT_DIRECTORY is environment-only and required: it names the
// directory the result file is written into and is never read from the
// config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/jsontab/jsontab/internal/errors"
)

// Environment variable names read by Resolve.
const (
	EnvOutputDir  = "OUTPUT_DIRECTORY"
	EnvSeparator  = "JSONTAB_SEPARATOR"
	EnvDelimiter  = "JSONTAB_DELIMITER"
	EnvFilename   = "JSONTAB_FILENAME"
	EnvRecordPath = "JSONTAB_RECORD_PATH"
	EnvDebug      = "JSONTAB_DEBUG"
)

// DefaultFilename is the result file name inside OUTPUT_DIRECTORY.
const DefaultFilename = "result.csv"

// Config represents the complete configuration for jsontab
type Config struct {
	// OutputDir comes from the OUTPUT_DIRECTORY environment variable
	// only; it is deliberately not a YAML key.
	OutputDir string `yaml:"-"`

	// Separator joins path segments into column names.
	Separator string `yaml:"separator"`
	// Delimiter separates CSV fields; exactly one character.
	Delimiter string `yaml:"delimiter"`
	// Filename is the bare name of the result file.
	Filename string `yaml:"filename"`
	// RecordPath optionally selects a subtree of the input document
	// (gjson dot notation) to normalize instead of the whole document.
	RecordPath string `yaml:"record_path"`
	// Debug enables debug logging to stderr.
	Debug bool `yaml:"debug"`

	// File is the path of the loaded config file, empty when running on
	// defaults. Set by Resolve, not serialized.
	File string `yaml:"-"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Separator: ".",
		Delimiter: ",",
		Filename:  DefaultFilename,
	}
}

// LoadConfig loads configuration from a YAML file, on top of defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and
// its parents, returning the first match or "".
func FindConfigFile() string {
	configNames := []string{".jsontab.yml", ".jsontab.yaml", "jsontab.yml", "jsontab.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Resolve builds the effective configuration: defaults, then the config
// file (explicitPath if given, discovery otherwise), then environment
// overrides, then validation.
func Resolve(explicitPath string) (*Config, error) {
	cfg := NewConfig()

	path := explicitPath
	if path == "" {
		path = FindConfigFile()
	}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		cfg.File = path
	}

	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvironment overrides config values from the process environment.
// Unset variables leave the current values alone.
func (c *Config) applyEnvironment() {
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvSeparator); v != "" {
		c.Separator = v
	}
	if v := os.Getenv(EnvDelimiter); v != "" {
		c.Delimiter = v
	}
	if v := os.Getenv(EnvFilename); v != "" {
		c.Filename = v
	}
	if v := os.Getenv(EnvRecordPath); v != "" {
		c.RecordPath = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Debug = debug
		}
	}
}

// Validate checks the resolved configuration. All failures are
// configuration errors (exit code 1). The output directory's existence
// is not checked here; a missing directory surfaces as an output error
// at write time.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.NewConfigurationError(fmt.Sprintf("%s is required", EnvOutputDir), errors.ErrMissingOutputDir)
	}
	if c.Separator == "" {
		return errors.NewConfigurationError("separator must not be empty", nil)
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return errors.NewConfigurationError(fmt.Sprintf("delimiter must be a single character, got %q", c.Delimiter), nil)
	}
	switch c.DelimiterRune() {
	case '"', '\r', '\n':
		return errors.NewConfigurationError(fmt.Sprintf("delimiter %q cannot be used in csv output", c.Delimiter), nil)
	}
	if c.Filename == "" {
		return errors.NewConfigurationError("filename must not be empty", nil)
	}
	if c.Filename == "." || c.Filename == ".." || filepath.Base(c.Filename) != c.Filename {
		return errors.NewConfigurationError(fmt.Sprintf("filename %q must be a bare file name", c.Filename), nil)
	}
	return nil
}

// DelimiterRune returns the delimiter as the rune encoding/csv expects.
// Only meaningful after Validate has accepted the config.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
