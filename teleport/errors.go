package teleport

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShots is returned for a non-positive shot count.
	ErrInvalidShots = errors.New("shot count must be positive")
	// ErrInvalidAngle is returned for a NaN or infinite angle.
	ErrInvalidAngle = errors.New("angle must be finite")
	// ErrInvariant marks every InvariantError.
	ErrInvariant = errors.New("simulation invariant violated")
)

// A ConstructionError reports an operation that makes a Protocol unusable,
// e.g. a conditional that reads a slot before any measurement writes it.
type ConstructionError struct {
	Index  int
	Op     Operation
	Reason string
}

func (e *ConstructionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid protocol: %s", e.Reason)
	}
	return fmt.Sprintf("invalid protocol: operation %d (%v): %s", e.Index, e.Op, e.Reason)
}

// An InvariantError reports a state the engine must never reach, such as
// probability mass drifting away from 1. It carries a dump of the state at
// the failing step.
type InvariantError struct {
	Step int
	Op   Operation
	// Err is the underlying cause, if any.
	Err error
	// Amplitudes is the state vector after the failing step.
	Amplitudes []complex128
	// Classical renders the bit store, '-' for unset slots.
	Classical string
	// Dump is the human-readable state listing.
	Dump string
}

func (e *InvariantError) Error() string {
	msg := fmt.Sprintf("%v at step %d (%v)", ErrInvariant, e.Step, e.Op)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + "\nclassical: " + e.Classical + "\n" + e.Dump
}

func (e *InvariantError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvariant}
	}
	return []error{ErrInvariant, e.Err}
}
