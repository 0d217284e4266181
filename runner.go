package runner

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"

	"github.com/activitykit/runner/task"
)

// DefaultTaskTimeout is the per-task timeout, in seconds, assumed for any
// task that declares none.
const DefaultTaskTimeout = 600

// Context is the key-value mapping threaded through (sequential) or held
// fixed for (parallel) a run. Runners never mutate the mapping a caller
// passes in; results are always new mappings.
type Context map[string]any

// Clone returns an independent shallow copy of the context. A nil context
// clones to an empty, writable mapping.
func (c Context) Clone() Context {
	if c == nil {
		return Context{}
	}
	return maps.Clone(c)
}

// Activity is the opaque workflow-step handle passed unchanged to every
// task. Runners never inspect it.
type Activity = any

// Runner owns a fixed, ordered task list and executes it under one strategy.
// One runner serves one activity attempt: construct, optionally inspect
// Timeout and Requirements, call Execute once, discard.
type Runner interface {
	// Timeout returns the aggregate worst-case timeout for the task list.
	Timeout() string

	// Requirements returns the context keys the task list depends on.
	Requirements() ([]string, error)

	// Execute runs the task list and returns the merged result mapping.
	Execute(ctx context.Context, activity Activity, input Context) (Context, error)
}

// Base holds the task list and derives its static metadata. Concrete
// strategies embed Base and provide Execute; calling Execute on Base itself
// is a programming error and returns ErrNotImplemented.
type Base struct {
	tasks []*task.Task
}

// NewBase creates a Base over the given tasks. The slice is copied, so the
// task list is fixed from this point on.
func NewBase(tasks ...*task.Task) Base {
	return Base{tasks: slices.Clone(tasks)}
}

// Tasks returns a copy of the task list in execution order.
func (b Base) Tasks() []*task.Task {
	return slices.Clone(b.tasks)
}

// Timeout returns the sum, in seconds, of every task's declared timeout,
// substituting DefaultTaskTimeout for tasks with no metadata or no declared
// timeout. The sum is pessimistic on purpose: it assumes fully sequential
// execution even for the parallel strategy, so the value stays a safe upper
// bound for the workflow step regardless of strategy. The result is a string
// because workflow-scheduling interfaces take textual durations.
//
// Timeout is a pure function of the task list; it never executes anything
// and returns the same value on every call.
func (b Base) Timeout() string {
	total := 0
	for _, t := range b.tasks {
		seconds := DefaultTaskTimeout
		if meta := t.Metadata(); meta != nil && meta.TimeoutSeconds > 0 {
			seconds = meta.TimeoutSeconds
		}
		total += seconds
	}
	return strconv.Itoa(total)
}

// Requirements returns the sorted, deduplicated union of every task's
// declared requirements. It fails with ErrNoRequirements as soon as it finds
// a task carrying no metadata record at all: an unannotated task makes the
// requirement set unknowable, and treating it as empty would be unsafe.
//
// Like Timeout, Requirements never executes anything and is stable across
// calls.
func (b Base) Requirements() ([]string, error) {
	seen := make(map[string]struct{})
	for i, t := range b.tasks {
		meta := t.Metadata()
		if meta == nil {
			if name := t.Name(); name != "" {
				return nil, fmt.Errorf("task %d (%s): %w", i, name, ErrNoRequirements)
			}
			return nil, fmt.Errorf("task %d: %w", i, ErrNoRequirements)
		}
		for _, key := range meta.Requirements {
			seen[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Execute on the bare contract is not a strategy. It exists so Base satisfies
// Runner for embedding purposes, and always fails.
func (b Base) Execute(ctx context.Context, activity Activity, input Context) (Context, error) {
	return nil, ErrNotImplemented
}
