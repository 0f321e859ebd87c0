// Package runner is the public entry point of forkrun. A ForkedRunner
// accumulates analysis properties and JVM settings, writes the settings file
// the child reads, builds the java command, and interprets the exit status as
// success, graceful stop, or failure.
package runner

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/mattjoyce/forkrun/internal/artifact"
	"github.com/mattjoyce/forkrun/internal/command"
	"github.com/mattjoyce/forkrun/internal/exec"
	"github.com/mattjoyce/forkrun/internal/log"
)

const (
	// MainClass is the entry point of the forked analysis engine.
	MainClass = "org.sonar.runner.impl.BatchLauncherMain"

	// launcherArtifact is the logical name of the jar handed to -cp.
	launcherArtifact = "sonar-runner-impl"

	// DefaultTimeout bounds a run when the caller sets no explicit timeout.
	DefaultTimeout = 1 * time.Hour
)

// ForkedRunner launches one analysis child process per Execute call.
// Collaborators are injected at construction so tests can substitute them.
type ForkedRunner struct {
	locator  artifact.Locator
	executor exec.CommandExecutor
	monitor  exec.ProcessMonitor

	javaExecutable string
	jvmArgs        []string
	jvmEnv         map[string]string
	globalProps    map[string]string
	stdout         exec.StreamConsumer
	stderr         exec.StreamConsumer
	timeout        time.Duration

	// settingsWriter is swappable so tests can capture the merged property set.
	settingsWriter func(map[string]string) (string, error)

	lastCommand string
	lastStatus  int

	logger *slog.Logger
}

// ForkCommand pairs a built command with the settings file it references. The
// file's lifetime is scoped to one execution.
type ForkCommand struct {
	Command      command.Command
	SettingsPath string
}

// New returns a ForkedRunner using the given collaborators. monitor may be
// nil, in which case no external stop channel exists and a 143 exit is
// treated as a failure like any other.
func New(locator artifact.Locator, executor exec.CommandExecutor, monitor exec.ProcessMonitor) *ForkedRunner {
	return &ForkedRunner{
		locator:        locator,
		executor:       executor,
		monitor:        monitor,
		javaExecutable: "java",
		jvmEnv:         map[string]string{},
		globalProps:    map[string]string{},
		timeout:        DefaultTimeout,
		settingsWriter: writeSettingsFile,
		logger:         log.WithComponent("runner"),
	}
}

// SetJavaExecutable overrides the java binary used to launch the child.
func (r *ForkedRunner) SetJavaExecutable(path string) *ForkedRunner {
	r.javaExecutable = path
	return r
}

// AddJvmArguments appends JVM arguments, e.g. "-Xmx512m".
func (r *ForkedRunner) AddJvmArguments(args ...string) *ForkedRunner {
	r.jvmArgs = append(r.jvmArgs, args...)
	return r
}

// AddJvmEnvVariables adds env variables to the child's environment overlay.
func (r *ForkedRunner) AddJvmEnvVariables(env map[string]string) *ForkedRunner {
	maps.Copy(r.jvmEnv, env)
	return r
}

// SetJvmEnvVariable sets a single env variable on the child's overlay.
func (r *ForkedRunner) SetJvmEnvVariable(key, value string) *ForkedRunner {
	r.jvmEnv[key] = value
	return r
}

// SetGlobalProperty sets one analysis property. Later calls with the same key
// overwrite.
func (r *ForkedRunner) SetGlobalProperty(key, value string) *ForkedRunner {
	r.globalProps[key] = value
	return r
}

// SetStdOut routes the child's stdout lines to consumer.
func (r *ForkedRunner) SetStdOut(consumer exec.StreamConsumer) *ForkedRunner {
	r.stdout = consumer
	return r
}

// SetStdErr routes the child's stderr lines to consumer.
func (r *ForkedRunner) SetStdErr(consumer exec.StreamConsumer) *ForkedRunner {
	r.stderr = consumer
	return r
}

// SetTimeout bounds how long Execute waits for the child.
func (r *ForkedRunner) SetTimeout(d time.Duration) *ForkedRunner {
	r.timeout = d
	return r
}

// JvmArguments returns a copy of the accumulated JVM arguments.
func (r *ForkedRunner) JvmArguments() []string {
	return slices.Clone(r.jvmArgs)
}

// GlobalProperties returns a copy of the accumulated analysis properties.
func (r *ForkedRunner) GlobalProperties() map[string]string {
	return maps.Clone(r.globalProps)
}

// CreateCommand writes props to a fresh settings file and builds the command
// referencing it. Only analysis properties reach the file; JVM arguments and
// env variables stay on the command.
func (r *ForkedRunner) CreateCommand(props map[string]string) (*ForkCommand, error) {
	settingsPath, err := r.settingsWriter(props)
	if err != nil {
		return nil, err
	}

	jarPath, err := r.locator.Locate(launcherArtifact)
	if err != nil {
		os.Remove(settingsPath)
		return nil, fmt.Errorf("locate launcher artifact: %w", err)
	}

	cmd := command.Java(r.javaExecutable, r.jvmArgs, jarPath, MainClass, settingsPath, r.jvmEnv)
	return &ForkCommand{Command: cmd, SettingsPath: settingsPath}, nil
}

// Execute runs one analysis child to completion. It merges computed defaults
// under the caller's global properties, writes the settings file, spawns the
// child, and interprets the exit status. The settings file is removed on
// every path.
func (r *ForkedRunner) Execute() error {
	props := r.mergedProperties()

	fork, err := r.CreateCommand(props)
	if err != nil {
		return err
	}
	defer os.Remove(fork.SettingsPath)

	stdout := r.stdout
	if stdout == nil {
		stdout = exec.NewPrintConsumer(os.Stdout)
	}
	stderr := r.stderr
	if stderr == nil {
		stderr = exec.NewPrintConsumer(os.Stderr)
	}

	r.lastCommand = fork.Command.String()
	r.logger.Info("launching analysis engine", "command", r.lastCommand, "timeout", r.timeout)

	status, err := r.executor.Execute(fork.Command, stdout, stderr, r.timeout, r.monitor)
	r.lastStatus = status
	if err != nil {
		return err
	}

	switch {
	case status == 0:
		return nil
	case status == exec.StopExitStatus && r.monitor != nil && r.monitor.Stop():
		// 143 alone is ambiguous: a child could return it on its own. Only the
		// monitor's confirmation makes it a graceful stop.
		stdout.ConsumeLine(fmt.Sprintf("SonarQube Runner was stopped [status=%d]", status))
		return nil
	default:
		return fmt.Errorf("Error status [command: %s]: %d", fork.Command, status)
	}
}

// LastCommand returns the textual form of the command built by the most
// recent Execute call, for run-history records.
func (r *ForkedRunner) LastCommand() string { return r.lastCommand }

// LastStatus returns the exit status observed by the most recent Execute call.
func (r *ForkedRunner) LastStatus() int { return r.lastStatus }

// mergedProperties layers computed defaults under the caller's global
// properties. Caller values win on key collision.
func (r *ForkedRunner) mergedProperties() map[string]string {
	props := map[string]string{
		"sonar.working.directory": ".sonar",
		"sonar.host.url":          "http://localhost:9000",
		"sonar.sourceEncoding":    "UTF-8",
	}
	maps.Copy(props, r.globalProps)
	return props
}
