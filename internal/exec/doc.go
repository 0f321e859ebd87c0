// Package exec runs an external command as a real child process and resolves
// it to a single exit status.
//
// The executor wires the child's stdout and stderr to two independently
// supplied StreamConsumers, one line per call, in arrival order per stream.
// No ordering is guaranteed between the two streams. While the child runs the
// executor polls a ProcessMonitor; a confirmed stop request terminates the
// child and resolves the call with StopExitStatus. A child that outlives the
// timeout is terminated and the call fails with ErrTimeout.
//
// The call only returns after the child has terminated and both stream
// readers have drained, so callers never observe a partial result.
package exec
