// Package history provides structured persistence and retrieval of
// launch records. Records are stored as JSON files on disk with an
// optional in-memory LRU cache in front.
package history

import "time"

// Record holds the durable trace of one launch run.
type Record struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Version  string `json:"version"`
	Loader   string `json:"loader"`

	Stages []Stage `json:"stages,omitempty"`

	ExitCode      *int   `json:"exit_code,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
	Lines      int       `json:"lines"` // output lines relayed from the child
}

// Stage holds the outcome of a single launch stage.
type Stage struct {
	Name   string `json:"name"`   // validate, resolve, build, launch
	Status string `json:"status"` // pass, fail
	Detail string `json:"detail,omitempty"`
}

// Store persists and retrieves launch records.
type Store interface {
	Save(rec *Record) error
	Load(id string) (*Record, error)
	// List returns the most recent records, newest first, capped at
	// limit (no cap when limit <= 0).
	List(limit int) ([]*Record, error)
}
