package sim

import (
	"errors"
	"fmt"
)

// ConfigurationError reports an invalid or contradictory sizing parameter.
// Fatal: the run aborts before anything is submitted to the engine.
type ConfigurationError struct {
	Field  string      // dotted config path, e.g. "workload.thresholds.medium"
	Value  interface{} // offending value
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// PlacementError reports that a task could not be bound to any VM.
// Fatal: the run aborts before submission.
type PlacementError struct {
	Policy string
	TaskID int
	Tier   Tier
	Reason string
}

func (e *PlacementError) Error() string {
	if e.TaskID < 0 {
		return fmt.Sprintf("placement %q: %s", e.Policy, e.Reason)
	}
	return fmt.Sprintf("placement %q: task %d (tier %s): %s", e.Policy, e.TaskID, e.Tier, e.Reason)
}

// ErrEmptyResult is returned when metrics are requested over zero successful
// completed tasks. Reported as "no data", never as NaN.
var ErrEmptyResult = errors.New("no successful completed tasks to aggregate")

// EngineInvocationError wraps a failure of the external engine call itself.
// The run is not resumable after this error.
type EngineInvocationError struct {
	Engine string
	Err    error
}

func (e *EngineInvocationError) Error() string {
	return fmt.Sprintf("engine %s: %v", e.Engine, e.Err)
}

func (e *EngineInvocationError) Unwrap() error {
	return e.Err
}

// configErr is shorthand for building a *ConfigurationError.
func configErr(field string, value interface{}, reason string) error {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}
