package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutboxHealthChecker(t *testing.T) {
	ctx := context.Background()

	t.Run("empty backlog is healthy", func(t *testing.T) {
		check := OutboxHealthChecker(func(ctx context.Context) (int, error) {
			return 0, nil
		})
		result := check(ctx)
		assert.Equal(t, HealthStatusHealthy, result.Status)
	})

	t.Run("pending retries degrade", func(t *testing.T) {
		check := OutboxHealthChecker(func(ctx context.Context) (int, error) {
			return 3, nil
		})
		result := check(ctx)
		assert.Equal(t, HealthStatusDegraded, result.Status)
		assert.Contains(t, result.Message, "3")
	})

	t.Run("lookup failure degrades", func(t *testing.T) {
		check := OutboxHealthChecker(func(ctx context.Context) (int, error) {
			return 0, errors.New("db closed")
		})
		result := check(ctx)
		assert.Equal(t, HealthStatusDegraded, result.Status)
	})
}

func TestGetOverallHealth(t *testing.T) {
	ctx := context.Background()

	registry := NewHealthRegistry()
	registry.Register("database", func(ctx context.Context) HealthCheckResult {
		return HealthCheckResult{Status: HealthStatusHealthy}
	})
	registry.Register("outbox", func(ctx context.Context) HealthCheckResult {
		return HealthCheckResult{Status: HealthStatusDegraded}
	})

	overall := registry.GetOverallHealth(ctx)

	assert.Equal(t, HealthStatusDegraded, overall.Status)
	assert.Len(t, overall.Checks, 2)
}
