package launch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iamglitched-debug/glitched.launcher/internal/history"
	"github.com/iamglitched-debug/glitched.launcher/internal/identity"
)

// Sink receives plain-text log lines in emission order. Implementations
// must not block for long: the launch worker calls it inline.
type Sink func(line string)

// Target is a resolved, runnable install: the exact version id the
// command builder needs, the mod directory for that version, and the
// game directory the process runs in.
type Target struct {
	VersionID string
	ModDir    string
	GameDir   string
}

// Resolver ensures the requested version and loader are usable locally.
// Implemented by environment.LocalResolver.
type Resolver interface {
	// EnsureInstalled is idempotent and safe to call when the target is
	// already installed. Failures are returned, never raised past the
	// engine.
	EnsureInstalled(ctx context.Context, version string, loader Loader) (Target, error)
	// ListVersions returns version ids for the given channel, or an
	// empty slice on failure.
	ListVersions(ctx context.Context, channel string) []string
}

// Builder produces the child-process argument vector. Pure: no I/O.
// Implemented by command.JavaBuilder.
type Builder interface {
	Build(target Target, id identity.Identity, req Request) ([]string, error)
}

// Launcher runs the built command to completion, relaying output lines
// to the sink. Implemented by supervisor.Supervisor.
type Launcher interface {
	Launch(ctx context.Context, argv []string, dir string, sink Sink) Outcome
}

// ErrLaunchInFlight is returned by Launch while a previous launch has
// not reached its terminal outcome.
var ErrLaunchInFlight = errors.New("a launch is already in progress")

// Engine runs the resolve, build, launch, stream sequence for one
// request at a time.
type Engine struct {
	Resolver Resolver
	Builder  Builder
	Launcher Launcher
	History  history.Store // optional
	Log      zerolog.Logger

	busy atomic.Bool
}

// Launch runs the request on a new background worker and returns a
// channel that delivers the single terminal outcome. At most one launch
// is in flight per engine; further calls fail with ErrLaunchInFlight
// until the outcome has been produced.
func (e *Engine) Launch(ctx context.Context, req Request, sink Sink) (<-chan Outcome, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrLaunchInFlight
	}
	done := make(chan Outcome, 1)
	go func() {
		out := e.Run(ctx, req, sink)
		// Clear before delivering so a caller that has seen the
		// outcome can start the next launch immediately.
		e.busy.Store(false)
		done <- out
	}()
	return done, nil
}

// Run executes the full sequence synchronously. A terminal outcome is
// returned on every code path: validation, resolver, builder and spawn
// failures all degrade to a logged line plus a failure outcome, and a
// panic anywhere in the sequence is recovered at this boundary.
func (e *Engine) Run(ctx context.Context, req Request, sink Sink) (out Outcome) {
	runID := uuid.New().String()
	started := time.Now()

	rec := &history.Record{
		ID:        runID,
		Username:  req.Username,
		Version:   req.Version,
		Loader:    req.Loader.String(),
		StartedAt: started.UTC(),
	}

	defer func() {
		if r := recover(); r != nil {
			// Last-resort diagnostic: nothing escapes the worker.
			sink(fmt.Sprintf("launcher crashed: %v\n%s", r, debug.Stack()))
			e.Log.Error().Str("run_id", runID).Interface("panic", r).
				Bytes("stack", debug.Stack()).Msg("launch worker panicked")
			out = Fail("panic: %v", r)
		}
		sink(out.String())
		rec.DurationMS = time.Since(started).Milliseconds()
		rec.ExitCode = out.ExitCode
		rec.FailureReason = out.FailureReason
		if e.History != nil {
			if err := e.History.Save(rec); err != nil {
				e.Log.Warn().Err(err).Str("run_id", runID).Msg("saving launch record")
			}
		}
		e.Log.Info().Str("run_id", runID).Str("outcome", out.String()).Msg("launch finished")
	}()

	fail := func(stage, format string, args ...any) Outcome {
		o := Fail(format, args...)
		rec.Stages = append(rec.Stages, history.Stage{Name: stage, Status: "fail", Detail: o.FailureReason})
		sink(o.FailureReason)
		return o
	}
	pass := func(stage string) {
		rec.Stages = append(rec.Stages, history.Stage{Name: stage, Status: "pass"})
	}

	if err := req.Validate(); err != nil {
		return fail("validate", "invalid launch request: %v", err)
	}
	pass("validate")

	sink(fmt.Sprintf("Ensuring %s (%s) is installed...", req.Version, req.Loader))
	target, err := e.Resolver.EnsureInstalled(ctx, req.Version, req.Loader)
	if err != nil {
		return fail("resolve", "resolving %s (%s): %v", req.Version, req.Loader, err)
	}
	pass("resolve")
	sink("Using version " + target.VersionID)

	id := identity.Offline(req.Username)
	sink(fmt.Sprintf("Using offline user: %s (%s)", id.Name, id.ID))

	argv, err := e.Builder.Build(target, id, req)
	if err != nil {
		return fail("build", "building launch command: %v", err)
	}
	pass("build")

	sink("Launching " + target.VersionID + "...")
	out = e.Launcher.Launch(ctx, argv, target.GameDir, func(line string) {
		rec.Lines++
		sink(line)
	})
	status := "pass"
	if out.ExitCode == nil {
		status = "fail"
	}
	rec.Stages = append(rec.Stages, history.Stage{Name: "launch", Status: status, Detail: out.FailureReason})
	return out
}
