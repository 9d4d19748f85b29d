//go:build unix

package daemon

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadPID returns the pid of a process that has already exited and been reaped.
func deadPID(t *testing.T) int {
	t.Helper()
	cmd := exec.Command("true")
	require.NoError(t, cmd.Run())
	return cmd.Process.Pid
}

func TestWriteReadPID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.pid")

	require.NoError(t, WritePID(path, 4242))

	pid, err := ReadPID(path)
	require.NoError(t, err)
	assert.Equal(t, 4242, pid)
}

func TestReadPID_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0o644))

	_, err := ReadPID(path)
	assert.Error(t, err)
}

func TestReadPID_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pid")
	require.NoError(t, os.WriteFile(path, []byte("  123\n"), 0o644))

	pid, err := ReadPID(path)
	require.NoError(t, err)
	assert.Equal(t, 123, pid)
}

func TestRemovePID_Missing(t *testing.T) {
	assert.NoError(t, RemovePID(filepath.Join(t.TempDir(), "absent.pid")))
}

func TestRunning_Self(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pid")
	require.NoError(t, WritePID(path, os.Getpid()))

	pid, err := Running(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
	assert.FileExists(t, path)
}

func TestRunning_NoFile(t *testing.T) {
	_, err := Running(filepath.Join(t.TempDir(), "board.pid"))
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestRunning_StaleFileRemoved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pid")
	require.NoError(t, WritePID(path, deadPID(t)))

	_, err := Running(path)
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.NoFileExists(t, path)
}

func TestRunning_GarbageFileRemoved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pid")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	_, err := Running(path)
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.NoFileExists(t, path)
}
