package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment describes one Abaqus installation jobs can be submitted to.
// Command is the solver executable; ExtraArgs are appended to every
// invocation (license server flags, academic edition switches). JobRoot is
// where job directories are created; empty means ./jobs under the current
// directory.
type Environment struct {
	Name      string   `yaml:"name"`
	Command   string   `yaml:"command"`
	ExtraArgs []string `yaml:"extra_args,omitempty"`
	JobRoot   string   `yaml:"job_root,omitempty"`
}

// Config holds the solver environment configurations
type Config struct {
	Environments []Environment `yaml:"environments"`
	Selected     string        `yaml:"selected,omitempty"`
}

// ConfigDir returns the fea-sim configuration directory.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".fea-sim"), nil
}

// LoadEnvironments loads solver environments from the default location
func LoadEnvironments() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadEnvironmentsFromFile(filepath.Join(dir, "environments.yaml"))
}

// LoadEnvironmentsFromFile loads solver environments from a specific file
func LoadEnvironmentsFromFile(path string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveEnvironments saves the solver environment configuration
func SaveEnvironments(config *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "environments.yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Resolve returns the environment with the given name, the selected
// environment when name is empty, or the first configured one.
func (c *Config) Resolve(name string) (*Environment, error) {
	if name == "" {
		name = c.Selected
	}
	if name == "" && len(c.Environments) > 0 {
		return &c.Environments[0], nil
	}
	for i := range c.Environments {
		if c.Environments[i].Name == name {
			return &c.Environments[i], nil
		}
	}
	return nil, fmt.Errorf("environment %s not found", name)
}

// getDefaultConfig returns a default configuration
func getDefaultConfig() *Config {
	return &Config{
		Environments: []Environment{
			{
				Name:    "Local",
				Command: "abaqus",
			},
		},
	}
}
