package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJavaArgumentOrder(t *testing.T) {
	cmd := Java("java", []string{"-Xmx512m", "-server"}, "/lib/launcher.jar",
		"org.sonar.runner.impl.BatchLauncherMain", "/tmp/settings.properties", nil)

	assert.Equal(t, []string{
		"java",
		"-Xmx512m", "-server",
		"-cp", "/lib/launcher.jar",
		"org.sonar.runner.impl.BatchLauncherMain",
		"/tmp/settings.properties",
	}, cmd.Argv())
}

func TestJavaNoJvmArgs(t *testing.T) {
	cmd := Java("java", nil, "/lib/launcher.jar", "Main", "/tmp/s.properties", nil)

	argv := cmd.Argv()
	require.Len(t, argv, 5)
	assert.Equal(t, "-cp", argv[1])
	assert.Equal(t, "/tmp/s.properties", argv[4])
}

func TestCommandIsImmutable(t *testing.T) {
	args := []string{"-a", "-b"}
	env := map[string]string{"K": "v"}
	cmd := New("exe", args, env)

	args[0] = "mutated"
	env["K"] = "mutated"

	assert.Equal(t, []string{"-a", "-b"}, cmd.Arguments())
	assert.Equal(t, "v", cmd.EnvVariables()["K"])

	// Accessors return copies too.
	cmd.Arguments()[0] = "mutated"
	cmd.EnvVariables()["K"] = "mutated"
	assert.Equal(t, "-a", cmd.Arguments()[0])
	assert.Equal(t, "v", cmd.EnvVariables()["K"])
}

func TestEnvironOverlayWins(t *testing.T) {
	t.Setenv("FORKRUN_ENV_TEST", "original")

	cmd := New("exe", nil, map[string]string{"FORKRUN_ENV_TEST": "override"})

	var matches []string
	for _, kv := range cmd.Environ() {
		if strings.HasPrefix(kv, "FORKRUN_ENV_TEST=") {
			matches = append(matches, kv)
		}
	}
	assert.Equal(t, []string{"FORKRUN_ENV_TEST=override"}, matches)
}

func TestEnvironKeepsBaseEnvironment(t *testing.T) {
	t.Setenv("FORKRUN_ENV_KEEP", "kept")

	cmd := New("exe", nil, map[string]string{"FORKRUN_ENV_NEW": "added"})

	environ := cmd.Environ()
	assert.Contains(t, environ, "FORKRUN_ENV_KEEP=kept")
	assert.Contains(t, environ, "FORKRUN_ENV_NEW=added")
}

func TestString(t *testing.T) {
	cmd := New("java", []string{"-cp", "a.jar", "Main"}, nil)
	assert.Equal(t, "java -cp a.jar Main", cmd.String())
}
