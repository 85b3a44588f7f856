// Package jobs hosts the background worker and its scheduled tasks.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStkReconcile closes pending mobile-money pushes whose callback
	// never arrived.
	TaskStkReconcile = "stk:reconcile"
	// TaskAnalyticsWarmup precomputes the dashboard KPI cache.
	TaskAnalyticsWarmup = "analytics:warmup"
)

// StkReconcilePayload carries scheduling metadata.
type StkReconcilePayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewStkReconcileTask constructs the reconcile task.
func NewStkReconcileTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(StkReconcilePayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStkReconcile, body, asynq.Queue(QueueDefault)), nil
}

// AnalyticsWarmupPayload carries scheduling metadata.
type AnalyticsWarmupPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewAnalyticsWarmupTask constructs the warmup task.
func NewAnalyticsWarmupTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(AnalyticsWarmupPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalyticsWarmup, body, asynq.Queue(QueueDefault)), nil
}
