package exec

import (
	"fmt"
	"io"

	"github.com/mattjoyce/forkrun/internal/log"
)

// StreamConsumer is a sink invoked once per line of output produced by one of
// the child's streams.
type StreamConsumer interface {
	ConsumeLine(line string)
}

// PrintConsumer writes each received line to w, unbuffered, one line per call.
type PrintConsumer struct {
	w io.Writer
}

// NewPrintConsumer returns a consumer printing to w.
func NewPrintConsumer(w io.Writer) *PrintConsumer {
	return &PrintConsumer{w: w}
}

func (c *PrintConsumer) ConsumeLine(line string) {
	fmt.Fprintln(c.w, line)
}

// LogConsumer routes each line to the process-wide log listener, tagged with
// the severity of its stream of origin. When no listener is registered it
// falls back to the print consumer. The listener registration is read at
// line-delivery time, so it may change between runs.
type LogConsumer struct {
	level    log.Level
	fallback StreamConsumer
}

// NewLogConsumer returns a consumer tagging lines with level and falling back
// to printing on fallback when no listener is set.
func NewLogConsumer(level log.Level, fallback StreamConsumer) *LogConsumer {
	return &LogConsumer{level: level, fallback: fallback}
}

func (c *LogConsumer) ConsumeLine(line string) {
	if l := log.CurrentListener(); l != nil {
		l.Log(line, c.level)
		return
	}
	c.fallback.ConsumeLine(line)
}
