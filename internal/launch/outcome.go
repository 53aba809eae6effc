package launch

import "fmt"

// Outcome is the terminal result of one launch. Exactly one of ExitCode
// or FailureReason is set: ExitCode for a process that ran to its own
// termination (any code, non-zero included), FailureReason when the
// process could not be started or the sequence failed before or during
// the run.
type Outcome struct {
	ExitCode      *int
	FailureReason string
}

// Exited wraps a normal process termination.
func Exited(code int) Outcome {
	return Outcome{ExitCode: &code}
}

// Fail wraps a setup, spawn or stream failure.
func Fail(format string, args ...any) Outcome {
	return Outcome{FailureReason: fmt.Sprintf(format, args...)}
}

// OK reports whether the process exited on its own with code zero.
func (o Outcome) OK() bool {
	return o.ExitCode != nil && *o.ExitCode == 0
}

func (o Outcome) String() string {
	if o.ExitCode != nil {
		return fmt.Sprintf("exited with code %d", *o.ExitCode)
	}
	return "failed: " + o.FailureReason
}
