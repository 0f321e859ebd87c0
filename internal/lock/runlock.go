// Package lock guards an analysis working directory against concurrent
// launches. Two runners sharing one sonar.working.directory would trample each
// other's settings and report files.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// RunLock is a single-run lock implemented via a PID file + flock(2).
// Keep the lock alive by keeping the file descriptor open.
type RunLock struct {
	path string
	f    *os.File
}

// Acquire takes an exclusive non-blocking lock on <workDir>/forkrun.pid,
// writes the current PID into the file, and returns a handle that must be
// released. A failure means another launch owns the directory.
func Acquire(workDir string) (*RunLock, error) {
	if workDir == "" {
		return nil, fmt.Errorf("working directory is empty")
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}

	lockPath := filepath.Join(workDir, "forkrun.pid")
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("acquire lock (another run may own %s): %w", workDir, err)
	}

	if err := writePID(f); err != nil {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		_ = f.Close()
		return nil, err
	}

	return &RunLock{path: lockPath, f: f}, nil
}

func writePID(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate lock file: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return fmt.Errorf("seek lock file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("write pid: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync lock file: %w", err)
	}
	return nil
}

func (l *RunLock) Path() string { return l.path }

func (l *RunLock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	err := l.f.Close()
	l.f = nil
	return err
}
