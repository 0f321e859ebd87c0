package control

import "sync/atomic"

// StopMonitor is the production ProcessMonitor: a latch flipped by the control
// server when an external stop is requested. The executor polls Stop while the
// child runs; the runner reads it again afterwards to corroborate a
// stop-shaped exit status.
type StopMonitor struct {
	stopped atomic.Bool
}

func NewStopMonitor() *StopMonitor {
	return &StopMonitor{}
}

// Stop reports whether an external stop has been requested.
func (m *StopMonitor) Stop() bool {
	return m.stopped.Load()
}

// RequestStop latches the stop flag.
func (m *StopMonitor) RequestStop() {
	m.stopped.Store(true)
}

// Reset clears the flag so the monitor can serve a subsequent run.
func (m *StopMonitor) Reset() {
	m.stopped.Store(false)
}
