package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
service:
  log_level: debug
java:
  executable: /opt/java17/bin/java
  jvm_args: ["-Xmx512m"]
  env:
    SONAR_HOME: /opt/sonar
analysis:
  properties:
    sonar.host.url: https://sonar.example.com
    sonar.login: admin
  timeout: 30m
launcher:
  lib_dir: /usr/share/forkrun/lib
history:
  path: /var/lib/forkrun/runs.db
control:
  enabled: true
  listen: 127.0.0.1:9999
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Service.LogLevel)
	assert.Equal(t, "/opt/java17/bin/java", cfg.Java.Executable)
	assert.Equal(t, []string{"-Xmx512m"}, cfg.Java.JvmArgs)
	assert.Equal(t, "/opt/sonar", cfg.Java.Env["SONAR_HOME"])
	assert.Equal(t, "https://sonar.example.com", cfg.Analysis.Properties["sonar.host.url"])
	assert.Equal(t, 30*time.Minute, cfg.Analysis.Timeout)
	assert.Equal(t, "/usr/share/forkrun/lib", cfg.Launcher.LibDir)
	assert.Equal(t, "/var/lib/forkrun/runs.db", cfg.History.Path)
	assert.True(t, cfg.Control.Enabled)
	assert.Equal(t, "127.0.0.1:9999", cfg.Control.Listen)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
analysis:
  properties:
    sonar.login: admin
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	defaults := Defaults()
	assert.Equal(t, defaults.Service.LogLevel, cfg.Service.LogLevel)
	assert.Equal(t, defaults.Java.Executable, cfg.Java.Executable)
	assert.Equal(t, defaults.Analysis.Timeout, cfg.Analysis.Timeout)
	assert.Equal(t, defaults.Launcher.LibDir, cfg.Launcher.LibDir)
	assert.Equal(t, defaults.History.Path, cfg.History.Path)
	assert.Equal(t, defaults.Control.Listen, cfg.Control.Listen)
	assert.False(t, cfg.Control.Enabled)
}

func TestLoadDirectoryResolvesConfigYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("service: {log_level: warn}\n"), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Service.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadInterpolatesEnvVars(t *testing.T) {
	t.Setenv("FORKRUN_TEST_TOKEN", "sekrit")

	path := writeConfig(t, `
analysis:
  properties:
    sonar.login: "${FORKRUN_TEST_TOKEN}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sekrit", cfg.Analysis.Properties["sonar.login"])
}

func TestLoadRejectsUnresolvedEnvVarInProperties(t *testing.T) {
	path := writeConfig(t, `
analysis:
  properties:
    sonar.login: "${FORKRUN_DEFINITELY_UNSET_VAR}"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORKRUN_DEFINITELY_UNSET_VAR")
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	path := writeConfig(t, "service: {log_level: loud}\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	path := writeConfig(t, "analysis: {timeout: -5m}\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}
