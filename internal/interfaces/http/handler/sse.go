package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	accountapp "github.com/shelfsync/backend/internal/application/account"
	"github.com/shelfsync/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// DefaultHeartbeat is the SSE keep-alive interval
const DefaultHeartbeat = 25 * time.Second

// SSE event names
const (
	EventSnapshot  = "snapshot"
	EventHeartbeat = "heartbeat"
)

// watchFunc starts a subscription that calls fn with every new snapshot
type watchFunc[T any] func(ctx context.Context, fn func(T)) (*accountapp.Subscription, error)

// latest holds at most one pending snapshot; a newer snapshot replaces an unsent one
type latest[T any] struct {
	ch chan T
}

func newLatest[T any]() *latest[T] {
	return &latest[T]{ch: make(chan T, 1)}
}

// put never blocks. It has a single producer, the subscription goroutine.
func (l *latest[T]) put(v T) {
	for {
		select {
		case l.ch <- v:
			return
		default:
			select {
			case <-l.ch:
			default:
			}
		}
	}
}

// streamSnapshots serves a live list as Server-Sent Events: one "snapshot" event
// with the current list, then one per change, with heartbeats in between.
// Slow clients skip intermediate snapshots and only receive the latest one.
func streamSnapshots[T any](c *gin.Context, heartbeat time.Duration, watch watchFunc[T], onError func(error)) {
	ctx := c.Request.Context()
	pending := newLatest[T]()

	sub, err := watch(ctx, pending.put)
	if err != nil {
		onError(err)
		return
	}
	defer sub.Close()

	// Streams outlive the server's write timeout
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	log := logger.L(ctx)
	log.Debug("sse stream opened", zap.String("path", c.FullPath()))

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-sub.Done():
			return false
		case snapshot := <-pending.ch:
			c.SSEvent(EventSnapshot, snapshot)
			return true
		case now := <-ticker.C:
			c.SSEvent(EventHeartbeat, gin.H{"timestamp": now.Unix()})
			return true
		}
	})

	log.Debug("sse stream closed", zap.String("path", c.FullPath()))
}
