// Package clustererr defines the fatal error kinds shared by the density
// and mpp pipelines. Every kind is a wrapped sentinel so callers can test
// with errors.Is while still getting a message with the offending detail.
package clustererr

import "fmt"

// ErrBadArgument indicates a missing or contradictory flag/parameter
// combination that was caught before any kernel ran.
var ErrBadArgument = fmt.Errorf("bad argument")

// ErrIoFailure indicates a file could not be read or written.
var ErrIoFailure = fmt.Errorf("io failure")

// ErrDeadState indicates MPP future-state selection found no outgoing
// probability for a state.
var ErrDeadState = fmt.Errorf("dead state")

// ErrNotConverged indicates the MPP fixed-point iteration exceeded its
// round budget without the trajectory stabilizing.
var ErrNotConverged = fmt.Errorf("not converged")

// ErrReductionFailure indicates an inter-worker gather/broadcast/barrier
// call failed (closed channel, cancelled context, malformed payload).
var ErrReductionFailure = fmt.Errorf("reduction failure")

// BadArgument wraps ErrBadArgument with a human-readable reason.
func BadArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadArgument, fmt.Sprintf(format, args...))
}

// IoFailure wraps ErrIoFailure with the failing path and underlying cause.
func IoFailure(path string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrIoFailure, path, cause)
}

// DeadStateError carries the offending state id alongside ErrDeadState.
type DeadStateError struct {
	State int
}

func (e *DeadStateError) Error() string {
	return fmt.Sprintf("%s: state %d has no outgoing probability", ErrDeadState, e.State)
}

func (e *DeadStateError) Unwrap() error {
	return ErrDeadState
}

// DeadState builds a DeadStateError for the given microstate id.
func DeadState(state int) error {
	return &DeadStateError{State: state}
}

// NotConverged wraps ErrNotConverged with the round budget that was hit.
func NotConverged(rounds int) error {
	return fmt.Errorf("%w: exceeded %d rounds", ErrNotConverged, rounds)
}

// ReductionFailure wraps ErrReductionFailure with the collective call that failed.
func ReductionFailure(op string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrReductionFailure, op, cause)
}
