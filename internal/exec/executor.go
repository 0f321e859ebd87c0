package exec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/mattjoyce/forkrun/internal/command"
	"github.com/mattjoyce/forkrun/internal/log"
)

// StopExitStatus is the status reported when the child was terminated through
// the process monitor. It matches the conventional exit status of a process
// killed by SIGTERM (128+15).
const StopExitStatus = 143

const (
	// defaultPollInterval bounds how quickly an external stop request is noticed.
	defaultPollInterval = 500 * time.Millisecond

	// terminationGracePeriod is the time we wait after SIGTERM before sending SIGKILL.
	terminationGracePeriod = 5 * time.Second

	// maxLineBytes caps a single output line fed to a consumer.
	maxLineBytes = 1 << 20
)

// ErrTimeout is returned when the child does not terminate within the allotted
// time and no stop was requested.
var ErrTimeout = errors.New("command did not terminate within timeout")

// CommandExecutor spawns a command and resolves it to an exit status.
type CommandExecutor interface {
	Execute(cmd command.Command, stdout, stderr StreamConsumer, timeout time.Duration, monitor ProcessMonitor) (int, error)
}

// DefaultExecutor runs commands as real child processes via os/exec.
type DefaultExecutor struct {
	logger       *slog.Logger
	pollInterval time.Duration
}

// NewExecutor returns a DefaultExecutor.
func NewExecutor() *DefaultExecutor {
	return &DefaultExecutor{
		logger:       log.WithComponent("exec"),
		pollInterval: defaultPollInterval,
	}
}

// Execute spawns cmd and blocks until it terminates, the monitor requests a
// stop, or timeout elapses. Both output streams are consumed line by line
// concurrently and are fully drained before Execute returns.
func (e *DefaultExecutor) Execute(cmd command.Command, stdout, stderr StreamConsumer, timeout time.Duration, monitor ProcessMonitor) (int, error) {
	proc := exec.Command(cmd.Executable(), cmd.Arguments()...)
	proc.Env = cmd.Environ()
	// Own process group, so termination reaches pipeline members and
	// grandchildren that inherited the output pipes.
	proc.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdoutPipe, err := proc.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("create stdout pipe: %w", err)
	}
	stderrPipe, err := proc.StderrPipe()
	if err != nil {
		return -1, fmt.Errorf("create stderr pipe: %w", err)
	}

	if err := proc.Start(); err != nil {
		return -1, fmt.Errorf("start %s: %w", cmd.Executable(), err)
	}
	e.logger.Debug("child process started", "pid", proc.Process.Pid, "executable", cmd.Executable())

	// One reader goroutine per stream. Each terminates when its stream hits
	// end-of-input, i.e. when the child closed that stream.
	var readers sync.WaitGroup
	readers.Add(2)
	go e.consumeLines(stdoutPipe, stdout, &readers)
	go e.consumeLines(stderrPipe, stderr, &readers)

	// proc.Wait must not run before the pipe readers have drained, or os/exec
	// closes the pipes under them.
	waitCh := make(chan error, 1)
	go func() {
		readers.Wait()
		waitCh <- proc.Wait()
	}()

	timeoutTimer := time.NewTimer(timeout)
	defer timeoutTimer.Stop()
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-waitCh:
			if err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					status := exitErr.ExitCode()
					e.logger.Debug("child exited", "status", status)
					return status, nil
				}
				return -1, fmt.Errorf("wait for %s: %w", cmd.Executable(), err)
			}
			e.logger.Debug("child exited", "status", 0)
			return 0, nil

		case <-ticker.C:
			if monitor != nil && monitor.Stop() {
				e.logger.Info("stop requested, terminating child", "pid", proc.Process.Pid)
				e.terminate(proc, waitCh)
				return StopExitStatus, nil
			}

		case <-timeoutTimer.C:
			e.logger.Warn("child exceeded timeout, terminating", "pid", proc.Process.Pid, "timeout", timeout)
			e.terminate(proc, waitCh)
			return -1, fmt.Errorf("%w (%s) [command: %s]", ErrTimeout, timeout, cmd)
		}
	}
}

// terminate sends SIGTERM, waits for the grace period, then escalates to
// SIGKILL. It normally returns once the child has been reaped and the readers
// drained, but the post-SIGKILL wait is bounded so Execute always resolves.
func (e *DefaultExecutor) terminate(proc *exec.Cmd, waitCh <-chan error) {
	if proc.Process == nil {
		return
	}
	e.signal(proc, syscall.SIGTERM)

	grace := time.NewTimer(terminationGracePeriod)
	defer grace.Stop()

	select {
	case <-waitCh:
		return
	case <-grace.C:
	}

	e.logger.Warn("child did not exit after SIGTERM, sending SIGKILL")
	e.signal(proc, syscall.SIGKILL)

	reap := time.NewTimer(terminationGracePeriod)
	defer reap.Stop()
	select {
	case <-waitCh:
	case <-reap.C:
		e.logger.Error("child not reaped after SIGKILL, abandoning wait", "pid", proc.Process.Pid)
	}
}

// signal targets the child's process group, falling back to the direct child
// when the group is already gone.
func (e *DefaultExecutor) signal(proc *exec.Cmd, sig syscall.Signal) {
	if err := syscall.Kill(-proc.Process.Pid, sig); err != nil {
		if err := proc.Process.Signal(sig); err != nil {
			e.logger.Error("failed to signal child", "signal", sig, "error", err)
		}
	}
}

func (e *DefaultExecutor) consumeLines(r io.Reader, consumer StreamConsumer, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		consumer.ConsumeLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		// Keep draining so the child is not wedged writing to a full pipe.
		// Undelivered output is lost, which the log line records.
		e.logger.Warn("output stream truncated, discarding remainder", "error", err)
		_, _ = io.Copy(io.Discard, r)
	}
}
