// Package config loads the launcher's YAML configuration.
package config

import "time"

// Config is the root configuration for forkrun.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Java     JavaConfig     `yaml:"java"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Launcher LauncherConfig `yaml:"launcher"`
	History  HistoryConfig  `yaml:"history"`
	Control  ControlConfig  `yaml:"control"`
}

// ServiceConfig holds process-level settings.
type ServiceConfig struct {
	LogLevel string `yaml:"log_level"`
}

// JavaConfig describes how the child JVM is launched.
type JavaConfig struct {
	Executable string            `yaml:"executable"`
	JvmArgs    []string          `yaml:"jvm_args"`
	Env        map[string]string `yaml:"env"`
}

// AnalysisConfig holds the analysis properties and execution bounds.
type AnalysisConfig struct {
	Properties map[string]string `yaml:"properties"`
	Timeout    time.Duration     `yaml:"timeout"`
}

// LauncherConfig locates the launcher artifact.
type LauncherConfig struct {
	LibDir string `yaml:"lib_dir"`
}

// HistoryConfig configures the run-history database.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// ControlConfig configures the optional stop/status HTTP server.
type ControlConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			LogLevel: "info",
		},
		Java: JavaConfig{
			Executable: "java",
		},
		Analysis: AnalysisConfig{
			Timeout: 1 * time.Hour,
		},
		Launcher: LauncherConfig{
			LibDir: "lib",
		},
		History: HistoryConfig{
			Path: "forkrun.db",
		},
		Control: ControlConfig{
			Enabled: false,
			Listen:  "127.0.0.1:8085",
		},
	}
}
