// Package task wraps callable units of work with optional execution metadata.
//
// A Task pairs a Func with an optional Metadata record declaring the task's
// worst-case timeout and the context keys it reads. Runners never inspect the
// function itself; everything they derive before execution comes from the
// metadata record, and its absence is an explicit, checkable state rather
// than something probed by reflection.
package task

import (
	"context"
	"slices"
)

// Func is a unit of work. It receives the execution context mapping, plus the
// opaque activity handle supplied by the surrounding scheduler. The returned
// mapping holds the values the task contributes to the run's result; a nil
// return means the task produced nothing.
//
// Implementations must treat the input mapping as read-only from the caller's
// perspective: the runner hands each invocation its own copy, but the values
// inside may be shared.
type Func func(ctx context.Context, input map[string]any, activity any) (map[string]any, error)

// Metadata is the side-record attached to an annotated task.
//
// TimeoutSeconds is the declared worst-case runtime in seconds; zero means
// "not declared" and runners substitute their default. Requirements lists the
// context keys the task reads.
type Metadata struct {
	// TimeoutSeconds is the declared per-task timeout in seconds (0 = undeclared).
	TimeoutSeconds int

	// Requirements lists context keys the task depends on.
	Requirements []string
}

// Task is a callable unit of work with an optional metadata record.
//
// Tasks are immutable after construction. A task built without WithTimeout or
// WithRequirements carries no metadata at all; runners tolerate that when
// deriving timeouts but reject it when deriving requirements.
type Task struct {
	fn   Func
	name string
	meta *Metadata
}

// Option configures a Task during construction.
type Option func(*Task)

// WithName sets a human-readable task name used in observer events and error
// messages. Naming a task does not annotate it with metadata.
func WithName(name string) Option {
	return func(t *Task) {
		t.name = name
	}
}

// WithTimeout declares the task's worst-case runtime in seconds and attaches
// a metadata record if none exists yet.
func WithTimeout(seconds int) Option {
	return func(t *Task) {
		t.ensureMetadata()
		t.meta.TimeoutSeconds = seconds
	}
}

// WithRequirements declares the context keys the task reads and attaches a
// metadata record if none exists yet. Calling it with no keys still marks the
// task as annotated, meaning "depends on nothing".
func WithRequirements(keys ...string) Option {
	return func(t *Task) {
		t.ensureMetadata()
		t.meta.Requirements = append(t.meta.Requirements, keys...)
	}
}

// New creates a Task from fn and the given options.
//
// Without WithTimeout or WithRequirements the task has no metadata record and
// Metadata returns nil.
func New(fn Func, opts ...Option) *Task {
	t := &Task{fn: fn}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the task's name, or "" when unnamed.
func (t *Task) Name() string {
	return t.name
}

// Metadata returns a copy of the task's metadata record, or nil when the task
// was never annotated. Returning a copy keeps the record immutable, so
// derived values like aggregate timeouts stay stable across calls.
func (t *Task) Metadata() *Metadata {
	if t.meta == nil {
		return nil
	}
	meta := *t.meta
	meta.Requirements = slices.Clone(t.meta.Requirements)
	return &meta
}

// Call invokes the wrapped function.
func (t *Task) Call(ctx context.Context, input map[string]any, activity any) (map[string]any, error) {
	return t.fn(ctx, input, activity)
}

func (t *Task) ensureMetadata() {
	if t.meta == nil {
		t.meta = &Metadata{}
	}
}
