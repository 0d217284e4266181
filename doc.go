// Package runner provides execution strategies for ordered lists of tasks
// sharing a key-value context. One runner serves one activity attempt.
//
// # Runner Contract
//
// Every runner owns a fixed task list and derives two pieces of static
// metadata from it without executing anything:
//
//   - Timeout: the string form of the summed per-task timeouts in seconds,
//     with DefaultTaskTimeout (600) substituted for undeclared tasks. The sum
//     is pessimistic and never credits parallelism, so it stays a safe upper
//     bound for an external scheduler under either strategy.
//   - Requirements: the sorted union of declared per-task context keys.
//     Any task with no metadata record makes the set unknowable, and
//     Requirements fails with ErrNoRequirements rather than guessing empty.
//
// Both are pure functions of the task list: safe to call before or after
// Execute, any number of times, always with the same result.
//
// # Sequential Strategy
//
// Sequential runs tasks one at a time in list order. Each task's input is the
// caller's context overlaid with everything earlier tasks produced in this
// run, so later steps can read earlier outputs. The first error stops the
// run with no partial result, since downstream tasks may depend on the
// failed task's output.
//
// # Parallel Strategy
//
// Parallel submits every task to a fixed-size worker pool (default three
// workers) with an independent copy of the original context; no task sees
// another's output. A single collector goroutine merges outputs as tasks
// complete, in whatever order they complete, later merges overwriting
// earlier ones on collision.
//
// Parallel execution is all-or-nothing. On the first task error the pool
// context is cancelled and the error propagates only after every in-flight
// task has returned; no goroutine outlives Execute. Collected outputs are
// discarded. Tasks still queued at cancellation time never start.
//
// # What the runner does not do
//
// The runner enforces no timeouts (Timeout is advisory metadata for the
// scheduler that owns the activity), performs no retries, and persists
// nothing. All recovery policy belongs to the surrounding workflow engine.
//
// # Observability
//
// Strategies resolve an observer by the configured name and emit run.start,
// task.start, task.complete and run.complete events, each carrying the run's
// generated ID. Use the "noop" observer for zero overhead.
package runner
