package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads and parses configuration from a file. A directory path is
// resolved to config.yaml inside it.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %s\n"+
			"Hint: Check the path or run with --config flag", absPath)
	}

	if info.IsDir() {
		absPath = filepath.Join(absPath, "config.yaml")
		if _, err := os.Stat(absPath); err != nil {
			return nil, fmt.Errorf("directory provided but config.yaml not found: %s", absPath)
		}
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Apply environment variable interpolation before parsing.
	interpolated := interpolateEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(interpolated), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// DiscoverConfigPath finds the config file by checking standard locations.
// Priority order: $FORKRUN_CONFIG, ~/.config/forkrun/config.yaml, ./forkrun.yaml
func DiscoverConfigPath() (string, error) {
	if path := os.Getenv("FORKRUN_CONFIG"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		userConfig := filepath.Join(homeDir, ".config", "forkrun", "config.yaml")
		if _, err := os.Stat(userConfig); err == nil {
			return userConfig, nil
		}
	}

	legacyConfig := "./forkrun.yaml"
	if _, err := os.Stat(legacyConfig); err == nil {
		return legacyConfig, nil
	}

	return "", fmt.Errorf("no config found (checked: $FORKRUN_CONFIG, ~/.config/forkrun/config.yaml, ./forkrun.yaml)")
}

// applyDefaults merges default values into cfg where not explicitly set.
func applyDefaults(cfg *Config) {
	defaults := Defaults()

	if cfg.Service.LogLevel == "" {
		cfg.Service.LogLevel = defaults.Service.LogLevel
	}
	if cfg.Java.Executable == "" {
		cfg.Java.Executable = defaults.Java.Executable
	}
	if cfg.Analysis.Timeout == 0 {
		cfg.Analysis.Timeout = defaults.Analysis.Timeout
	}
	if cfg.Launcher.LibDir == "" {
		cfg.Launcher.LibDir = defaults.Launcher.LibDir
	}
	if cfg.History.Path == "" {
		cfg.History.Path = defaults.History.Path
	}
	if cfg.Control.Listen == "" {
		cfg.Control.Listen = defaults.Control.Listen
	}
}

// interpolateEnv replaces ${VAR} with environment variable values.
// Undefined variables are left as-is (not expanded).
func interpolateEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return match
	})
}

// validate performs basic validation on the configuration.
func validate(cfg *Config) error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[cfg.Service.LogLevel] {
		return fmt.Errorf("service.log_level must be one of: debug, info, warn, error (got %q)", cfg.Service.LogLevel)
	}

	if cfg.Java.Executable == "" {
		return fmt.Errorf("java.executable is required")
	}

	if cfg.Analysis.Timeout <= 0 {
		return fmt.Errorf("analysis.timeout must be positive")
	}

	if cfg.Launcher.LibDir == "" {
		return fmt.Errorf("launcher.lib_dir is required")
	}

	// Unresolved placeholders in analysis properties would leak ${VAR} text
	// into the settings file handed to the child.
	for key, value := range cfg.Analysis.Properties {
		if envVarPattern.MatchString(value) {
			matches := envVarPattern.FindStringSubmatch(value)
			if len(matches) > 1 {
				return fmt.Errorf("analysis.properties.%s: environment variable ${%s} is not set", key, matches[1])
			}
			return fmt.Errorf("analysis.properties.%s: unresolved environment variable", key)
		}
	}

	return nil
}
