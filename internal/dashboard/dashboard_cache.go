package dashboard

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// GetDashboardKey is the cache key for one employee's dashboard view.
func GetDashboardKey(employeeID string) string {
	return "dashboards:employee:" + employeeID
}

// CacheInvalidator drops the cached dashboard after a leave state change
// commits. The write path holds it behind a small interface so it never
// learns about redis directly.
type CacheInvalidator struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewCacheInvalidator(rdb *redis.Client, logger ...*zap.Logger) *CacheInvalidator {
	l := zap.L().Named("dashboard.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.cache")
	}
	return &CacheInvalidator{rdb: rdb, logger: l}
}

func (i *CacheInvalidator) InvalidateEmployee(ctx context.Context, employeeID string) {
	if i.rdb == nil || employeeID == "" {
		return
	}
	if err := i.rdb.Del(ctx, GetDashboardKey(employeeID)).Err(); err != nil {
		i.logger.Warn("failed to invalidate dashboard cache",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
	}
}
