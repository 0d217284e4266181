package runner

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/activitykit/runner/config"
	"github.com/activitykit/runner/observability"
	"github.com/activitykit/runner/task"
)

// Parallel executes all tasks concurrently against a fixed-size worker pool.
//
// Every task receives its own copy of the same caller-supplied context; no
// task observes another task's output. Outputs are merged in completion
// order, which is non-deterministic, so on key collision the surviving value
// is whichever task's merge happened last. This suits independent,
// side-effect-isolated tasks that only need the original input.
//
// Execution is all-or-nothing. On the first task error the pool context is
// cancelled, every in-flight task is awaited, already-collected outputs are
// discarded, and the error propagates wrapped in *TaskError. Tasks still
// queued when the cancellation lands never start.
type Parallel struct {
	Base
	cfg config.ParallelConfig
}

// NewParallel creates a bounded-parallel runner over the given tasks. A
// non-positive MaxWorkers falls back to config.DefaultMaxWorkers.
func NewParallel(cfg config.ParallelConfig, tasks ...*task.Task) *Parallel {
	return &Parallel{
		Base: NewBase(tasks...),
		cfg:  cfg,
	}
}

type indexedTask struct {
	index int
	task  *task.Task
}

type taskResult struct {
	index  int
	name   string
	output map[string]any
	err    error
}

// Execute submits every task to the worker pool and returns the merged
// result mapping once all of them have completed.
//
// The caller's input mapping is never mutated; each task gets an independent
// clone. Merging happens in a single collector goroutine, so the result map
// is never written concurrently.
func (p *Parallel) Execute(ctx context.Context, activity Activity, input Context) (Context, error) {
	observer, err := observability.Get(p.cfg.Observer)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observer: %w", err)
	}

	runID := uuid.New().String()
	tasks := p.Base.tasks

	workers := p.cfg.MaxWorkers
	if workers <= 0 {
		workers = config.DefaultMaxWorkers
	}

	observer.OnEvent(ctx, observability.Event{
		Type:      EventRunStart,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "runner.Parallel",
		Data: map[string]any{
			"run_id":      runID,
			"strategy":    "parallel",
			"task_count":  len(tasks),
			"max_workers": workers,
		},
	})

	if len(tasks) == 0 {
		p.emitComplete(ctx, observer, runID, 0, false)
		return Context{}, nil
	}

	queue := make(chan indexedTask, len(tasks))
	results := make(chan taskResult, len(tasks))
	done := make(chan struct{})

	// Single collector goroutine owns the merged map, so completed outputs
	// never race. It also records the first error it observes.
	merged := Context{}
	var firstErr *TaskError
	completed := 0

	go func() {
		defer close(done)
		for res := range results {
			if res.err != nil {
				if firstErr == nil {
					firstErr = &TaskError{Index: res.index, Name: res.name, Err: res.err}
				}
				continue
			}
			completed++
			maps.Copy(merged, res.output)
		}
	}()

	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for workerID := 0; workerID < workers; workerID++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			p.runWorker(poolCtx, cancel, workerID, runID, queue, results, activity, input, observer, len(tasks))
		}(workerID)
	}

	for i, t := range tasks {
		queue <- indexedTask{index: i, task: t}
	}
	close(queue)

	wg.Wait()
	close(results)
	<-done

	if firstErr != nil {
		p.emitComplete(ctx, observer, runID, completed, true)
		return nil, firstErr
	}

	if err := ctx.Err(); err != nil {
		p.emitComplete(ctx, observer, runID, completed, true)
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	p.emitComplete(ctx, observer, runID, completed, false)
	return merged, nil
}

// runWorker drains the queue until it closes or the pool context is
// cancelled. Each task is invoked with its own clone of the input context.
// On task error the worker cancels the pool and exits; sibling workers
// finish their in-flight task and then stop pulling work.
func (p *Parallel) runWorker(
	ctx context.Context,
	cancel context.CancelFunc,
	workerID int,
	runID string,
	queue <-chan indexedTask,
	results chan<- taskResult,
	activity Activity,
	input Context,
	observer observability.Observer,
	total int,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case work, ok := <-queue:
			if !ok {
				return
			}

			observer.OnEvent(ctx, observability.Event{
				Type:      EventTaskStart,
				Level:     observability.LevelVerbose,
				Timestamp: time.Now(),
				Source:    "runner.Parallel",
				Data: map[string]any{
					"run_id":      runID,
					"worker_id":   workerID,
					"task_index":  work.index,
					"task_name":   work.task.Name(),
					"total_tasks": total,
				},
			})

			output, err := work.task.Call(ctx, input.Clone(), activity)

			observer.OnEvent(ctx, observability.Event{
				Type:      EventTaskComplete,
				Level:     observability.LevelVerbose,
				Timestamp: time.Now(),
				Source:    "runner.Parallel",
				Data: map[string]any{
					"run_id":      runID,
					"worker_id":   workerID,
					"task_index":  work.index,
					"task_name":   work.task.Name(),
					"total_tasks": total,
					"error":       err != nil,
				},
			})

			results <- taskResult{
				index:  work.index,
				name:   work.task.Name(),
				output: output,
				err:    err,
			}

			if err != nil {
				cancel()
				return
			}
		}
	}
}

func (p *Parallel) emitComplete(ctx context.Context, observer observability.Observer, runID string, completed int, failed bool) {
	observer.OnEvent(ctx, observability.Event{
		Type:      EventRunComplete,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "runner.Parallel",
		Data: map[string]any{
			"run_id":          runID,
			"strategy":        "parallel",
			"tasks_completed": completed,
			"error":           failed,
		},
	})
}
