// Package launch orchestrates a single game launch: it validates a
// declarative request, resolves the local environment, builds the child
// process command, and supervises it to a terminal outcome.
package launch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinMemoryMB is the smallest accepted heap limit.
const MinMemoryMB = 128

// initialHeapCapMB caps the initial heap flag; requests below the cap
// use their full limit as the initial heap.
const initialHeapCapMB = 512

// Loader identifies the mod-loader kind for a launch.
type Loader int

const (
	LoaderNone Loader = iota
	LoaderFabric
	LoaderForge
)

func (l Loader) String() string {
	switch l {
	case LoaderFabric:
		return "fabric"
	case LoaderForge:
		return "forge"
	default:
		return "vanilla"
	}
}

// ParseLoader parses a loader name. Empty, "none" and "vanilla" all
// mean no loader.
func ParseLoader(s string) (Loader, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "vanilla":
		return LoaderNone, nil
	case "fabric":
		return LoaderFabric, nil
	case "forge":
		return LoaderForge, nil
	default:
		return LoaderNone, fmt.Errorf("unknown loader %q", s)
	}
}

// Request describes one launch. It is immutable once submitted.
type Request struct {
	Username string
	Version  string
	Loader   Loader
	MemoryMB int
	Width    int
	Height   int
}

// Validate reports the first problem with the request, or nil.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username must not be empty")
	}
	if r.Version == "" {
		return errors.New("version must not be empty")
	}
	if r.MemoryMB < MinMemoryMB {
		return fmt.Errorf("memory limit %dMB is below the minimum %dMB", r.MemoryMB, MinMemoryMB)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("window size %dx%d is invalid", r.Width, r.Height)
	}
	return nil
}

// JVMArgs derives the heap flags: maximum heap is the requested limit,
// initial heap is the smaller of 512MB and the limit.
func (r Request) JVMArgs() []string {
	initial := r.MemoryMB
	if initial > initialHeapCapMB {
		initial = initialHeapCapMB
	}
	return []string{
		fmt.Sprintf("-Xmx%dM", r.MemoryMB),
		fmt.Sprintf("-Xms%dM", initial),
	}
}

// GameArgs derives the window-size game arguments. Width and height are
// passed as separate arguments, not combined flags.
func (r Request) GameArgs() []string {
	return []string{
		"--width", strconv.Itoa(r.Width),
		"--height", strconv.Itoa(r.Height),
	}
}
