package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// writeSettingsFile serializes props as key=value lines into a fresh file in
// the OS temp dir and returns its path. The file holds analysis properties
// only; JVM arguments and environment variables never go through here. The
// caller owns the file and removes it after the run.
func writeSettingsFile(props map[string]string) (string, error) {
	path := filepath.Join(os.TempDir(), "sonar-settings-"+uuid.NewString()+".properties")

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(escapeKey(key))
		b.WriteByte('=')
		b.WriteString(escapeValue(props[key]))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return "", fmt.Errorf("write settings file: %w", err)
	}
	return path, nil
}

// readSettingsFile parses a key=value settings file back into a map, the
// inverse of writeSettingsFile. Tests use it to verify what a run would hand
// the child.
func readSettingsFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	props := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := cutUnescaped(line)
		if !ok {
			return nil, fmt.Errorf("malformed settings line: %q", line)
		}
		props[unescape(key)] = unescape(value)
	}
	return props, nil
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "=", `\=`)

var valueEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)

func escapeKey(s string) string { return keyEscaper.Replace(s) }

func escapeValue(s string) string { return valueEscaper.Replace(s) }

// cutUnescaped splits at the first '=' not preceded by a backslash.
func cutUnescaped(line string) (key, value string, ok bool) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '=':
			return line[:i], line[i+1:], true
		}
	}
	return "", "", false
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
