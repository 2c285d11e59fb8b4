package motionplan

import "github.com/pkg/errors"

// Status is the outcome of a call to Scheduler.Solve (spec §6).
type Status int

const (
	// StatusExactSolution means the top level reported a solution that
	// satisfies the goal exactly.
	StatusExactSolution Status = iota
	// StatusApproximateSolution means the termination condition fired but
	// the best-known path does not yet satisfy the goal.
	StatusApproximateSolution
	// StatusTimeout means the termination condition fired with no
	// solution of any kind.
	StatusTimeout
	// StatusInvalidStart means the seeded start state failed validity or
	// bounds checks.
	StatusInvalidStart
	// StatusInvalidGoal means the problem's goal could not be satisfied by
	// any sampleable state, or is otherwise malformed.
	StatusInvalidGoal
)

func (s Status) String() string {
	switch s {
	case StatusExactSolution:
		return "ExactSolution"
	case StatusApproximateSolution:
		return "ApproximateSolution"
	case StatusTimeout:
		return "Timeout"
	case StatusInvalidStart:
		return "InvalidStart"
	case StatusInvalidGoal:
		return "InvalidGoal"
	default:
		return "Unknown"
	}
}

// InvalidProblemError reports an absent or invalid start/goal at solve
// entry (spec §7); fatal.
type InvalidProblemError struct {
	cause error
}

func NewInvalidProblemError(reason string) error {
	return &InvalidProblemError{cause: errors.New(reason)}
}

func (e *InvalidProblemError) Error() string { return "invalid problem: " + e.cause.Error() }
func (e *InvalidProblemError) Unwrap() error  { return e.cause }

// ConfigurationError reports an unknown strategy name or incompatible
// projection dimensions, detected at setup (spec §7); fatal.
type ConfigurationError struct {
	cause error
}

func NewConfigurationError(reason string) error {
	return &ConfigurationError{cause: errors.New(reason)}
}

func WrapConfigurationError(cause error, reason string) error {
	return &ConfigurationError{cause: errors.Wrap(cause, reason)}
}

func (e *ConfigurationError) Error() string { return "configuration error: " + e.cause.Error() }
func (e *ConfigurationError) Unwrap() error  { return e.cause }

// PlanningFailure reports that the termination condition fired before any
// solution was found (spec §7); reported as a status, never panics.
var ErrPlanningFailure = errors.New("planner termination condition fired before a solution was found")

// NumericDegeneracyError reports a recoverable numeric edge case (zero
// fiber measure, zero maxDistance, zero-dim state); absorbed within a
// single grow() call and logged once (spec §7).
type NumericDegeneracyError struct {
	cause error
}

func NewNumericDegeneracyError(reason string) error {
	return &NumericDegeneracyError{cause: errors.New(reason)}
}

func (e *NumericDegeneracyError) Error() string { return "numeric degeneracy: " + e.cause.Error() }
func (e *NumericDegeneracyError) Unwrap() error  { return e.cause }

// InternalInvariantError reports a structural bug (tree detachment leaves
// an orphan, NN/graph disagreement); always fatal, never expected to fire
// on correct input (spec §7).
type InternalInvariantError struct {
	cause error
}

func NewInternalInvariantError(reason string) error {
	return &InternalInvariantError{cause: errors.New(reason)}
}

func (e *InternalInvariantError) Error() string { return "internal invariant violated: " + e.cause.Error() }
func (e *InternalInvariantError) Unwrap() error  { return e.cause }
