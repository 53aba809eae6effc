// Package sysopen opens filesystem paths in the platform file browser.
package sysopen

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open launches the platform file browser on path. Fire-and-forget:
// the browser process is started but not waited on.
func Open(path string) error {
	var argv []string
	switch runtime.GOOS {
	case "windows":
		argv = []string{"explorer", path}
	case "darwin":
		argv = []string{"open", path}
	default:
		argv = []string{"xdg-open", path}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	go func() { _ = cmd.Wait() }() // reap
	return nil
}
