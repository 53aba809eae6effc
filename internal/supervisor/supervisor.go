// Package supervisor owns the child-process lifecycle: spawn, merged
// line-by-line output relay, and exit-code collection.
package supervisor

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/iamglitched-debug/glitched.launcher/internal/launch"
)

// maxLineBytes bounds a single output line; the game can log very long
// stack traces.
const maxLineBytes = 1 << 20

// Supervisor runs one command to completion per Launch call. It keeps
// no state between launches and performs no retries.
type Supervisor struct{}

// Launch starts argv in dir with stderr merged into stdout, relays each
// output line to sink in arrival order, waits for the process, and
// returns exactly one Outcome.
//
// Invalid UTF-8 sequences in the output are dropped from the affected
// line rather than failing the read. Any exit code, non-zero included,
// is a normal outcome; only spawn and read faults are failures.
func (s *Supervisor) Launch(ctx context.Context, argv []string, dir string, sink launch.Sink) launch.Outcome {
	if len(argv) == 0 {
		return launch.Fail("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	out, err := cmd.StdoutPipe()
	if err != nil {
		return launch.Fail("opening output pipe: %v", err)
	}
	// StdoutPipe set cmd.Stdout to the pipe's write end; sharing it
	// merges both streams in arrival order.
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return launch.Fail("starting %s: %v", argv[0], err)
	}

	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		sink(strings.ToValidUTF8(scanner.Text(), ""))
	}
	readErr := scanner.Err()
	if readErr != nil {
		// The child may still be blocked writing into the pipe (e.g.
		// a line past the scanner limit); drain it so Wait can return.
		_, _ = io.Copy(io.Discard, out)
	}

	waitErr := cmd.Wait()

	if readErr != nil {
		return launch.Fail("reading process output: %v", readErr)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return launch.Exited(exitErr.ExitCode())
		}
		return launch.Fail("waiting for %s: %v", argv[0], waitErr)
	}
	return launch.Exited(0)
}
