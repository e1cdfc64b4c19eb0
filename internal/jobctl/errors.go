package jobctl

import (
	"errors"
	"fmt"
)

// Sentinel errors, returned bare (never wrapped) so callers can match them
// with errors.Is — mirrors the teacher's own sentinel-error convention
// (redis.ErrChannelNotFound) rather than introducing a custom error type
// hierarchy.
var (
	// ErrNoSuchJob is returned by Table lookups (Current, MostRecentStopped,
	// MostRecentResumable) when no eligible job exists.
	ErrNoSuchJob = errors.New("no such job")

	// ErrEmptyCommand is returned by BuildJob when the token list is empty.
	// A pipeline segment with no argv (e.g. a line starting with "|", or
	// "||") is not rejected here; it becomes a Process with an empty Argv.
	ErrEmptyCommand = errors.New("command not found")

	// ErrPipelineTooLong is returned by BuildJob when a command line would
	// produce more than maxPipelineMembers processes.
	ErrPipelineTooLong = errors.New("too many pipeline members")
)

// RedirectError reports a parent-side failure to open an explicit
// redirection file, rendered per spec §7 as "yash: <path>: <msg>".
type RedirectError struct {
	Path string
	Err  error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("yash: %s: %s", e.Path, e.Err)
}

func (e *RedirectError) Unwrap() error { return e.Err }
