package exec

// ProcessMonitor is the sole cancellation channel for a running child. The
// executor polls Stop while the child runs; a true return means an external
// stop was requested and the child should be terminated. The runner consults
// the same method afterwards to corroborate that a stop-shaped exit status
// really was a stop and not a failure.
type ProcessMonitor interface {
	Stop() bool
}
