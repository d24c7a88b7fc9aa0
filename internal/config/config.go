package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the project configuration file searched for by LoadConfig
const FileName = "codegen.json"

// Model formats understood by the loaders
const (
	FormatJSON    = "json"
	FormatGraphQL = "graphql"
)

// Config represents the codegen.json configuration file
type Config struct {
	Name     string `json:"name"`
	Model    string `json:"model"`
	Language string `json:"language"`
	Output   string `json:"output"`
	Indent   string `json:"indent"`

	DeclarationExtension string `json:"declarationExtension"`
	DefinitionExtension  string `json:"definitionExtension"`
	IncludeComments      bool   `json:"includeComments"`

	Watch WatchConfig `json:"watch"`

	// set when Watch.Patterns came from the model format rather than the file
	derivedPatterns bool
}

// WatchConfig contains the file patterns watched by `smithy-codegen watch`
type WatchConfig struct {
	Patterns []string `json:"patterns"`
	Exclude  []string `json:"exclude"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	config := &Config{}
	config.ApplyDefaults()
	return config
}

// ModelFormat infers the model format from the model file extension
func (c *Config) ModelFormat() string {
	switch strings.ToLower(filepath.Ext(c.Model)) {
	case ".gql", ".graphql":
		return FormatGraphQL
	default:
		return FormatJSON
	}
}

// ApplyDefaults fills every unset field with its default
func (c *Config) ApplyDefaults() {
	if c.Model == "" {
		c.Model = "./model.json"
	}
	if c.Language == "" {
		c.Language = "cpp"
	}
	if c.Output == "" {
		c.Output = "./build"
	}
	if c.Indent == "" {
		c.Indent = "    "
	}
	if c.DeclarationExtension == "" {
		c.DeclarationExtension = "h"
	}
	if c.DefinitionExtension == "" {
		c.DefinitionExtension = "cpp"
	}
	if len(c.Watch.Patterns) == 0 {
		c.Watch.Patterns = defaultPatterns(c.ModelFormat())
		c.derivedPatterns = true
	}
	if len(c.Watch.Exclude) == 0 {
		c.Watch.Exclude = []string{FileName, "build/", "node_modules/", ".git/"}
	}
}

// SetModel points the config at another model file. Watch patterns that were
// derived from the previous model format follow the new one.
func (c *Config) SetModel(path string) {
	c.Model = path
	if c.derivedPatterns {
		c.Watch.Patterns = defaultPatterns(c.ModelFormat())
	}
}

// defaultPatterns returns the watch patterns for a model format
func defaultPatterns(format string) []string {
	switch format {
	case FormatGraphQL:
		return []string{"*.okra.gql", "**/*.okra.gql", "*.graphql", "**/*.graphql"}
	default:
		return []string{"*.json", "**/*.json"}
	}
}

// Parse decodes a codegen.json document and applies defaults
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.ApplyDefaults()
	return &config, nil
}

// LoadConfig loads codegen.json from the current directory or a parent directory
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// loadConfigFromDir searches for codegen.json in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("no %s found in %s or any parent directory", FileName, startDir)
}

// Marshal encodes the configuration as indented JSON
func (c *Config) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes the configuration to path
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ResolvePath resolves a config-relative path against the project directory
func ResolvePath(projectDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectDir, path)
}
