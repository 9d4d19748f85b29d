//go:build unix

// Command board runs the message board and manages it as a background
// service: start, stop, restart, status and logs.
package main

import (
	"fmt"
	"os"

	"github.com/listenupapp/board-server/internal/di/providers"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	providers.Version = version

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
