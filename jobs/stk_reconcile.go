package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// StaleReconciler fails pending pushes older than maxAge.
type StaleReconciler interface {
	ReconcileStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

// NewStkReconcileHandler builds the handler closing stale pushes.
func NewStkReconcileHandler(svc StaleReconciler, maxAge time.Duration, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload StkReconcilePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		closed, err := svc.ReconcileStale(ctx, maxAge)
		if err != nil {
			return err
		}
		if closed > 0 {
			logger.Info("closed stale stk pushes", slog.Int64("count", closed))
		}
		return nil
	}
}
