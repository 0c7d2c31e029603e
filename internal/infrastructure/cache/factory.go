package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/shelfsync/backend/internal/domain/inventory"
	"github.com/shelfsync/backend/internal/domain/sibling"
	"github.com/shelfsync/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Coordination bundles the lease manager and change feed used by the services
type Coordination struct {
	Leases inventory.LeaseManager
	Feed   sibling.ChangeFeed
	// Distributed is true when both are backed by Redis
	Distributed bool
	client      *redis.Client
}

// NewCoordination builds Redis-backed coordination when Redis is enabled and
// reachable, and in-memory coordination otherwise. In-memory leases only
// serialize sweeps within this process.
func NewCoordination(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Coordination {
	if cfg.Enabled {
		client, err := NewRedisClient(ctx, cfg)
		if err == nil {
			logger.Info("using Redis sync leases and change feed", zap.String("addr", cfg.Addr()))
			return &Coordination{
				Leases:      NewRedisLeaseManager(client, ""),
				Feed:        NewRedisChangeFeed(client, logger),
				Distributed: true,
				client:      client,
			}
		}
		logger.Warn("Redis unavailable, falling back to in-memory coordination. "+
			"Sync leases will not be shared across instances.", zap.Error(err))
	}
	return &Coordination{
		Leases: NewInMemoryLeaseManager(),
		Feed:   NewInMemoryChangeFeed(),
	}
}

// Ping checks the Redis connection when one is in use
func (c *Coordination) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis client
func (c *Coordination) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
