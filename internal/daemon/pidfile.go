//go:build unix

// Package daemon manages a detached board process: its PID file, liveness
// checks, termination and the log file it writes to.
package daemon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNotRunning is returned when no live process is recorded in the PID file.
var ErrNotRunning = errors.New("daemon: not running")

// ReadPID parses the PID stored at path.
func ReadPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("daemon: malformed pid file %s", path)
	}
	return pid, nil
}

// WritePID records pid at path, creating the parent directory if needed.
func WritePID(path string, pid int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create pid dir: %w", err)
	}
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o644)
}

// RemovePID deletes the PID file. A missing file is not an error.
func RemovePID(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Running returns the PID recorded at path if that process is still alive.
// A stale or unreadable PID file is removed and reported as ErrNotRunning.
func Running(path string) (int, error) {
	pid, err := ReadPID(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, ErrNotRunning
		}
		_ = RemovePID(path)
		return 0, ErrNotRunning
	}

	if !Alive(pid) {
		_ = RemovePID(path)
		return 0, ErrNotRunning
	}
	return pid, nil
}
