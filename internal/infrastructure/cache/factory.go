package cache

import (
	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore creates the idempotency store the deployment calls
// for: Redis when enabled, otherwise in-memory. A Redis connection failure
// falls back to in-memory so a missing Redis never blocks startup;
// in-memory state is per-process, which is acceptable for single-instance
// deployments.
func NewIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger) shared.IdempotencyStore {
	if !cfg.Enabled {
		return NewInMemoryIdempotencyStore()
	}

	store, err := NewRedisIdempotencyStore(cfg)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory idempotency store",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore()
	}

	logger.Info("using redis idempotency store", zap.String("addr", cfg.Addr()))
	return store
}
