//go:build unix

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/listenupapp/board-server/internal/config"
)

// options are the flags shared by every command.
type options struct {
	port       int
	dataDir    string
	foreground bool
}

// paths are the files a board instance keeps in its data directory.
type paths struct {
	dataDir string
	pidFile string
	logFile string
}

// resolve fills unset flags from the environment and defaults, the same way
// the server does, so the CLI and the server agree on the data directory.
func (o *options) resolve() (paths, error) {
	if o.port == 0 {
		o.port = config.DefaultPort
		if env := os.Getenv("PORT"); env != "" {
			p, err := strconv.Atoi(env)
			if err != nil {
				return paths{}, fmt.Errorf("invalid PORT %q: %w", env, err)
			}
			o.port = p
		}
	}
	if o.port < 1 || o.port > 65535 {
		return paths{}, fmt.Errorf("port %d out of range", o.port)
	}

	dir, err := config.ResolveDataDir(o.dataDir)
	if err != nil {
		return paths{}, err
	}
	o.dataDir = dir

	storage := config.StorageConfig{DataDir: dir}
	return paths{
		dataDir: dir,
		pidFile: storage.PIDFile(),
		logFile: storage.LogFile(),
	}, nil
}

// serverArgs are the config flags handed to the server process.
func (o *options) serverArgs() []string {
	return []string{
		"--port", strconv.Itoa(o.port),
		"--data-dir", o.dataDir,
	}
}
