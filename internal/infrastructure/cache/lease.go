package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shelfsync/backend/internal/domain/inventory"
)

const defaultLeasePrefix = "lease:"

// releaseScript deletes the key only while it still holds the caller's token,
// so an expired lease never releases its successor.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLeaseManager implements inventory.LeaseManager with SET NX PX
type RedisLeaseManager struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisLeaseManager creates a lease manager on a shared Redis client
func NewRedisLeaseManager(client redis.UniversalClient, prefix string) *RedisLeaseManager {
	if prefix == "" {
		prefix = defaultLeasePrefix
	}
	return &RedisLeaseManager{client: client, prefix: prefix}
}

// TryAcquire takes the lease or fails with inventory.ErrLeaseHeld
func (m *RedisLeaseManager) TryAcquire(ctx context.Context, key string, ttl time.Duration) (inventory.Lease, error) {
	token := uuid.NewString()
	ok, err := m.client.SetNX(ctx, m.prefix+key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lease %s: %w", key, err)
	}
	if !ok {
		return nil, inventory.ErrLeaseHeld
	}
	return &redisLease{client: m.client, key: m.prefix + key, token: token}, nil
}

type redisLease struct {
	client redis.UniversalClient
	key    string
	token  string
}

func (l *redisLease) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("failed to release lease %s: %w", l.key, err)
	}
	return nil
}

var _ inventory.LeaseManager = (*RedisLeaseManager)(nil)
