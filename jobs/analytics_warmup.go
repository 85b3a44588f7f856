package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/dashel-erp/dashel-erp/internal/analytics"
)

// DashboardLoader computes the dashboard KPI block, populating the cache
// as a side effect.
type DashboardLoader interface {
	Dashboard(ctx context.Context) (analytics.DashboardStats, error)
}

// NewAnalyticsWarmupHandler builds the handler that primes the KPI cache
// so the first dashboard request after an invalidation stays fast.
func NewAnalyticsWarmupHandler(svc DashboardLoader, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload AnalyticsWarmupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if _, err := svc.Dashboard(ctx); err != nil {
			return err
		}
		logger.Debug("dashboard cache warmed")
		return nil
	}
}
