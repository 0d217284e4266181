package runner

import (
	"errors"
	"fmt"
)

// ErrNoRequirements is returned by Requirements when any task in the list
// carries no metadata record, so its context dependencies are unknown. This
// is a configuration error surfaced at inspection time, before any execution.
var ErrNoRequirements = errors.New("no requirements metadata attached to task")

// ErrNotImplemented is returned when Execute is called on the bare Base
// contract instead of a concrete strategy.
var ErrNotImplemented = errors.New("execute not implemented on base runner")

// TaskError reports a task failure during Execute. It records which task
// failed and unwraps to the task's own error, so errors.Is and errors.As see
// the original failure unchanged.
type TaskError struct {
	// Index is the task's 0-based position in the runner's task list.
	Index int

	// Name is the task's name, or "" when unnamed.
	Name string

	// Err is the error the task returned.
	Err error
}

// Error returns a message locating the failed task.
func (e *TaskError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("task %d (%s) failed: %v", e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("task %d failed: %v", e.Index, e.Err)
}

// Unwrap returns the task's underlying error.
func (e *TaskError) Unwrap() error {
	return e.Err
}
