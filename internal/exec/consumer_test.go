package exec

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattjoyce/forkrun/internal/log"
)

type logEntry struct {
	line  string
	level log.Level
}

type recordingListener struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingListener) Log(line string, level log.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{line: line, level: level})
}

func (l *recordingListener) all() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), l.entries...)
}

func TestPrintConsumerWritesOneLinePerCall(t *testing.T) {
	var buf bytes.Buffer
	c := NewPrintConsumer(&buf)
	c.ConsumeLine("first")
	c.ConsumeLine("second")
	assert.Equal(t, "first\nsecond\n", buf.String())
}

func TestLogConsumerRoutesToListenerWithSeverity(t *testing.T) {
	listener := &recordingListener{}
	log.SetListener(listener)
	defer log.SetListener(nil)

	var buf bytes.Buffer
	stdout := NewLogConsumer(log.LevelInfo, NewPrintConsumer(&buf))
	stderr := NewLogConsumer(log.LevelError, NewPrintConsumer(&buf))

	stdout.ConsumeLine("test1")
	stderr.ConsumeLine("test2")

	entries := listener.all()
	assert.Equal(t, []logEntry{
		{line: "test1", level: log.LevelInfo},
		{line: "test2", level: log.LevelError},
	}, entries)
	assert.Empty(t, buf.String(), "listener set: nothing should be printed")
}

func TestLogConsumerFallsBackToPrintWithoutListener(t *testing.T) {
	log.SetListener(nil)

	var buf bytes.Buffer
	c := NewLogConsumer(log.LevelInfo, NewPrintConsumer(&buf))
	c.ConsumeLine("hello")

	assert.Equal(t, "hello\n", buf.String())
}

func TestLogConsumerReadsListenerAtDeliveryTime(t *testing.T) {
	defer log.SetListener(nil)

	var buf bytes.Buffer
	c := NewLogConsumer(log.LevelInfo, NewPrintConsumer(&buf))

	c.ConsumeLine("printed")

	listener := &recordingListener{}
	log.SetListener(listener)
	c.ConsumeLine("routed")

	assert.Equal(t, "printed\n", buf.String())
	assert.Equal(t, []logEntry{{line: "routed", level: log.LevelInfo}}, listener.all())
}
