package linter

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/pkglint/pkg/storage"
)

// ConfigFileNames are searched, in order, by LoadConfigFromDir
var ConfigFileNames = []string{"pkglint.yaml", "pkglint.yml", ".pkglint.yaml", ".pkglint.yml"}

// Config represents the lint configuration
type Config struct {
	Version string `yaml:"version"`
	// Include overrides the root manifest's workspaces globs
	Include []string `yaml:"include,omitempty"`
	// Exclude skips package directories, relative to the workspace root
	Exclude []string     `yaml:"exclude,omitempty"`
	Rules   []RuleConfig `yaml:"rules"`
}

// RuleConfig enables one rule
type RuleConfig struct {
	Name string `yaml:"name"`
	// Include and Exclude select packages by name. An empty Include selects every package.
	Include              []string `yaml:"include,omitempty"`
	Exclude              []string `yaml:"exclude,omitempty"`
	IncludeWorkspaceRoot bool     `yaml:"includeWorkspaceRoot,omitempty"`
	// Options are decoded by the rule factory. Must stay a value: yaml.v3 leaves a
	// *yaml.Node field empty.
	Options yaml.Node `yaml:"options,omitempty"`
}

// OptionsNode returns the rule options, or nil when the entry has none
func (c *RuleConfig) OptionsNode() *yaml.Node {
	if c.Options.Kind == 0 {
		return nil
	}
	return &c.Options
}

// Applies reports whether the rule should check the named package
func (c RuleConfig) Applies(name string, isRoot bool) bool {
	if isRoot && !c.IncludeWorkspaceRoot {
		return false
	}
	if len(c.Include) > 0 && !MatchAny(c.Include, name) {
		return false
	}
	return !MatchAny(c.Exclude, name)
}

// Excludes reports whether the package directory rel, relative to the workspace root, is
// excluded from the run
func (c *Config) Excludes(rel string) bool {
	return MatchAny(c.Exclude, filepath.ToSlash(rel))
}

// MatchName matches a package name against a glob. "*" matches every name, including
// scoped ones.
func MatchName(pattern, name string) bool {
	if pattern == "*" || pattern == name {
		return true
	}
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}

// MatchAny reports whether name matches any of patterns
func MatchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if MatchName(p, name) {
			return true
		}
	}
	return false
}

// DefaultConfig returns the configuration used when no file is found
func DefaultConfig() *Config {
	return &Config{
		Version: "v1",
		Rules: []RuleConfig{
			{Name: "alphabetical-dependencies"},
		},
	}
}

// ParseConfig decodes a configuration document
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	for i, rule := range config.Rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("rule %d has no name", i)
		}
	}
	return &config, nil
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// LoadConfigFromDir searches files for a config file in dir
func LoadConfigFromDir(files storage.Reader, dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := files.Stat(path); err != nil {
			continue
		}
		data, err := files.ReadFile(path)
		if err != nil {
			return nil, err
		}
		config, err := ParseConfig(data)
		if err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
		return config, nil
	}

	// Return default if no config found
	return DefaultConfig(), nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
