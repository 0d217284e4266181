package runner

import "github.com/activitykit/runner/observability"

const (
	EventRunStart     observability.EventType = "run.start"
	EventRunComplete  observability.EventType = "run.complete"
	EventTaskStart    observability.EventType = "task.start"
	EventTaskComplete observability.EventType = "task.complete"
)
