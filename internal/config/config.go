// Package config manages YAML-based configuration and CLI flags for
// the build host.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"hostbridge/internal/compiler"
)

// Config holds all configuration options for hostbridge.
type Config struct {
	// Project root against which relative paths resolve.
	BasePath string `yaml:"base_path"`

	// Compile a pristine git ref instead of the working tree.
	GitRef string `yaml:"git_ref,omitempty"`

	Port      int      `yaml:"port"`
	Watch     bool     `yaml:"watch"`
	Resources bool     `yaml:"resources"`
	Target    string   `yaml:"target"`
	Exclude   []string `yaml:"exclude"`

	// Extensions of source files the watcher reports.
	Extensions []string `yaml:"extensions"`

	// Internal: path to config file for saving
	configPath string
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		BasePath:   ".",
		Port:       8418,
		Watch:      true,
		Resources:  true,
		Target:     "es2015",
		Exclude:    []string{"node_modules", ".git", "dist"},
		Extensions: []string{".ts", ".md", ".html", ".css"},
	}
}

// GetConfigDir returns the config directory path.
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/hostbridge"
	}
	return filepath.Join(home, ".config", "hostbridge")
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Load loads configuration from file and command line flags.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Sentinel values so we can tell whether a flag was set
	base := flag.String("base", "", "Project base directory")
	port := flag.Int("port", 0, "Dev server port")
	watch := flag.Bool("watch", true, "Enable file watching")
	target := flag.String("target", "", "Compiler language target")
	configFile := flag.String("config", "", "Configuration file path")

	flag.StringVar(base, "b", "", "Project base directory (shorthand)")

	flag.Parse()

	// Determine config file path
	var cfgPath string
	if *configFile != "" {
		cfgPath = *configFile
	} else {
		globalConfig := GetConfigPath()
		if _, err := os.Stat(globalConfig); err == nil {
			cfgPath = globalConfig
		} else if _, err := os.Stat("hostbridge.yaml"); err == nil {
			cfgPath = "hostbridge.yaml"
		}
	}

	if cfgPath != "" {
		if err := cfg.loadFromFile(cfgPath); err != nil && *configFile != "" {
			// Only fail when the user explicitly named the file
			return nil, err
		}
		cfg.configPath = cfgPath
	} else {
		cfg.configPath = GetConfigPath()
	}

	// Command line flags override config file (only if explicitly set)
	if *base != "" {
		cfg.BasePath = *base
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *target != "" {
		cfg.Target = *target
	}
	cfg.Watch = *watch

	if abs, err := filepath.Abs(cfg.BasePath); err == nil {
		cfg.BasePath = abs
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Save saves the current configuration to the config file.
func (c *Config) Save() error {
	configDir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// Copy without internal fields for saving
	saveConfig := struct {
		BasePath   string   `yaml:"base_path"`
		GitRef     string   `yaml:"git_ref,omitempty"`
		Port       int      `yaml:"port"`
		Watch      bool     `yaml:"watch"`
		Resources  bool     `yaml:"resources"`
		Target     string   `yaml:"target"`
		Exclude    []string `yaml:"exclude"`
		Extensions []string `yaml:"extensions"`
	}{
		BasePath:   c.BasePath,
		GitRef:     c.GitRef,
		Port:       c.Port,
		Watch:      c.Watch,
		Resources:  c.Resources,
		Target:     c.Target,
		Exclude:    c.Exclude,
		Extensions: c.Extensions,
	}

	data, err := yaml.Marshal(saveConfig)
	if err != nil {
		return err
	}

	return os.WriteFile(c.configPath, data, 0644)
}

// GetConfigFilePath returns the path to the config file.
func (c *Config) GetConfigFilePath() string {
	return c.configPath
}

// CompilerOptions builds the compiler options from the configuration.
func (c *Config) CompilerOptions() (compiler.Options, error) {
	target, err := compiler.ParseTarget(c.Target)
	if err != nil {
		return compiler.Options{}, fmt.Errorf("config: %w", err)
	}
	return compiler.Options{
		Target:  target,
		RootDir: c.BasePath,
	}, nil
}

// IsExcluded checks if a path should be excluded.
func (c *Config) IsExcluded(path string) bool {
	base := filepath.Base(path)
	for _, exclude := range c.Exclude {
		if matched, _ := filepath.Match(exclude, base); matched {
			return true
		}
	}
	return false
}

// IsSourceFile checks if a file has a watched extension.
func (c *Config) IsSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
