package runner

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/activitykit/runner/config"
	"github.com/activitykit/runner/observability"
	"github.com/activitykit/runner/task"
)

// Sequential executes tasks strictly in list order, single-threaded.
//
// Each task sees the caller-supplied context overlaid with the outputs of
// every task that ran before it in this run, accumulated values winning on
// key collision. This models a pipeline where later steps depend on earlier
// ones. The first task error aborts the run: no partial result is returned
// and no further tasks execute.
type Sequential struct {
	Base
	cfg config.SequentialConfig
}

// NewSequential creates a sequential runner over the given tasks.
func NewSequential(cfg config.SequentialConfig, tasks ...*task.Task) *Sequential {
	return &Sequential{
		Base: NewBase(tasks...),
		cfg:  cfg,
	}
}

// Execute runs the tasks in order and returns the merged result mapping.
//
// The caller's input mapping is never mutated. Each task is invoked with an
// ephemeral copy of input overlaid with the accumulated outputs so far; its
// return value (nil treated as empty) is folded into the accumulator, later
// keys overwriting earlier ones. Cancellation is checked before each task.
//
// Task errors come back wrapped in *TaskError, unwrapping to the task's own
// error.
func (s *Sequential) Execute(ctx context.Context, activity Activity, input Context) (Context, error) {
	observer, err := observability.Get(s.cfg.Observer)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observer: %w", err)
	}

	runID := uuid.New().String()
	tasks := s.Base.tasks

	observer.OnEvent(ctx, observability.Event{
		Type:      EventRunStart,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "runner.Sequential",
		Data: map[string]any{
			"run_id":     runID,
			"strategy":   "sequential",
			"task_count": len(tasks),
		},
	})

	result := Context{}

	for i, t := range tasks {
		if err := ctx.Err(); err != nil {
			taskErr := &TaskError{
				Index: i,
				Name:  t.Name(),
				Err:   fmt.Errorf("run cancelled: %w", err),
			}
			s.emitComplete(ctx, observer, runID, i, true)
			return nil, taskErr
		}

		observer.OnEvent(ctx, observability.Event{
			Type:      EventTaskStart,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "runner.Sequential",
			Data: map[string]any{
				"run_id":      runID,
				"task_index":  i,
				"task_name":   t.Name(),
				"total_tasks": len(tasks),
			},
		})

		// Accumulated outputs win over the original input on collision.
		taskInput := input.Clone()
		maps.Copy(taskInput, result)

		output, err := t.Call(ctx, taskInput, activity)

		observer.OnEvent(ctx, observability.Event{
			Type:      EventTaskComplete,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "runner.Sequential",
			Data: map[string]any{
				"run_id":      runID,
				"task_index":  i,
				"task_name":   t.Name(),
				"total_tasks": len(tasks),
				"error":       err != nil,
			},
		})

		if err != nil {
			s.emitComplete(ctx, observer, runID, i, true)
			return nil, &TaskError{Index: i, Name: t.Name(), Err: err}
		}

		maps.Copy(result, output)
	}

	s.emitComplete(ctx, observer, runID, len(tasks), false)
	return result, nil
}

func (s *Sequential) emitComplete(ctx context.Context, observer observability.Observer, runID string, completed int, failed bool) {
	observer.OnEvent(ctx, observability.Event{
		Type:      EventRunComplete,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "runner.Sequential",
		Data: map[string]any{
			"run_id":          runID,
			"strategy":        "sequential",
			"tasks_completed": completed,
			"error":           failed,
		},
	})
}
