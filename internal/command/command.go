// Package command models an external process invocation: executable path,
// ordered argument list, and an environment overlay applied on top of the
// current process environment. A Command is immutable once built.
package command

import (
	"maps"
	"os"
	"slices"
	"strings"
)

// Command describes one child process invocation.
type Command struct {
	executable string
	arguments  []string
	env        map[string]string
}

// New builds a Command. The argument slice and environment map are copied, so
// later mutation by the caller does not leak into the Command.
func New(executable string, arguments []string, env map[string]string) Command {
	c := Command{
		executable: executable,
		arguments:  slices.Clone(arguments),
		env:        maps.Clone(env),
	}
	if c.env == nil {
		c.env = map[string]string{}
	}
	return c
}

// Executable returns the path of the program to run.
func (c Command) Executable() string { return c.executable }

// Arguments returns a copy of the argument list, not including the executable.
func (c Command) Arguments() []string { return slices.Clone(c.arguments) }

// EnvVariables returns a copy of the environment overlay.
func (c Command) EnvVariables() map[string]string { return maps.Clone(c.env) }

// Argv returns the full argument vector, executable first.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.arguments)+1)
	argv = append(argv, c.executable)
	return append(argv, c.arguments...)
}

// Environ returns the current process environment overlaid with the Command's
// variables, in the KEY=VALUE form expected by os/exec. Overlay keys win on
// collision.
func (c Command) Environ() []string {
	base := os.Environ()
	if len(c.env) == 0 {
		return base
	}
	environ := make([]string, 0, len(base)+len(c.env))
	for _, kv := range base {
		key, _, ok := strings.Cut(kv, "=")
		if ok {
			if _, overridden := c.env[key]; overridden {
				continue
			}
		}
		environ = append(environ, kv)
	}
	keys := make([]string, 0, len(c.env))
	for k := range c.env {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		environ = append(environ, k+"="+c.env[k])
	}
	return environ
}

// String renders the command as a single shell-like line, used in error
// messages and run history.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}
