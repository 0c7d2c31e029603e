package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/shelfsync/backend/internal/domain/sibling"
	"go.uber.org/zap"
)

// RedisChangeFeed implements sibling.ChangeFeed on Redis Pub/Sub.
// Messages carry no payload; subscribers re-read the set on each signal.
type RedisChangeFeed struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewRedisChangeFeed creates a change feed on a shared Redis client
func NewRedisChangeFeed(client redis.UniversalClient, logger *zap.Logger) *RedisChangeFeed {
	return &RedisChangeFeed{client: client, logger: logger.Named("change-feed")}
}

// Publish signals the topic's subscribers
func (f *RedisChangeFeed) Publish(ctx context.Context, topic sibling.Topic) error {
	if err := f.client.Publish(ctx, topic.String(), "changed").Err(); err != nil {
		return fmt.Errorf("failed to publish change on %s: %w", topic, err)
	}
	return nil
}

// Subscribe opens a watch on the topic once Redis confirms the subscription
func (f *RedisChangeFeed) Subscribe(ctx context.Context, topic sibling.Topic) (sibling.Watch, error) {
	pubsub := f.client.Subscribe(ctx, topic.String())
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	w := &redisWatch{
		pubsub:  pubsub,
		changes: make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.forward(pubsub.Channel())
	f.logger.Debug("watch opened", zap.String("topic", topic.String()))
	return w, nil
}

type redisWatch struct {
	pubsub  *redis.PubSub
	changes chan struct{}
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// forward coalesces messages: a pending signal already covers later changes
func (w *redisWatch) forward(msgs <-chan *redis.Message) {
	defer close(w.done)
	defer close(w.changes)
	for {
		select {
		case <-w.stop:
			return
		case _, ok := <-msgs:
			if !ok {
				return
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

func (w *redisWatch) Changes() <-chan struct{} {
	return w.changes
}

func (w *redisWatch) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.pubsub.Close()
		<-w.done
	})
	return err
}

var _ sibling.ChangeFeed = (*RedisChangeFeed)(nil)
