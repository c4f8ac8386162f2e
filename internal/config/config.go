// Package config loads the application configuration from
// equishift_config.yaml in the current or home directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ProposalConfig overrides the built-in proposal heuristic tuning.
// Unset values keep their defaults.
type ProposalConfig struct {
	DisqualifyThreshold *int `yaml:"disqualifyThreshold,omitempty"`
	TeamLeaderBand      *int `yaml:"teamLeaderBand,omitempty" validate:"omitempty,min=0"`
	FillBand            *int `yaml:"fillBand,omitempty" validate:"omitempty,min=0"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string         `yaml:"databaseURL" validate:"required"`
	PlanSheetID string         `yaml:"planSheetID,omitempty"`
	Proposal    ProposalConfig `yaml:"proposal,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from equishift_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// findConfigFile searches for equishift_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "equishift_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
