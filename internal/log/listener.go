package log

import "sync"

// Level is the severity attached to a routed output line.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Listener receives lines routed from a child process output stream,
// tagged with the severity implied by the stream of origin.
type Listener interface {
	Log(line string, level Level)
}

// Single-slot listener registry. At most one listener is active at a time;
// registering a new one replaces the prior. Read at line-delivery time, so it
// may change between runs.
var (
	listenerMu sync.RWMutex
	listener   Listener
)

// SetListener registers l as the process-wide output listener. Passing nil
// clears the registration.
func SetListener(l Listener) {
	listenerMu.Lock()
	defer listenerMu.Unlock()
	listener = l
}

// CurrentListener returns the registered listener, or nil if none is set.
func CurrentListener() Listener {
	listenerMu.RLock()
	defer listenerMu.RUnlock()
	return listener
}
