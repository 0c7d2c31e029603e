package cache

import (
	"context"
	"sync"

	"github.com/shelfsync/backend/internal/domain/sibling"
)

// InMemoryChangeFeed implements sibling.ChangeFeed within one process
type InMemoryChangeFeed struct {
	mu       sync.Mutex
	watchers map[string]map[*memoryWatch]struct{}
}

// NewInMemoryChangeFeed creates an in-process change feed
func NewInMemoryChangeFeed() *InMemoryChangeFeed {
	return &InMemoryChangeFeed{watchers: make(map[string]map[*memoryWatch]struct{})}
}

// Publish signals every open watch on the topic without blocking
func (f *InMemoryChangeFeed) Publish(_ context.Context, topic sibling.Topic) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for w := range f.watchers[topic.String()] {
		select {
		case w.changes <- struct{}{}:
		default:
		}
	}
	return nil
}

// Subscribe opens a watch on the topic
func (f *InMemoryChangeFeed) Subscribe(_ context.Context, topic sibling.Topic) (sibling.Watch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w := &memoryWatch{feed: f, channel: topic.String(), changes: make(chan struct{}, 1)}
	if f.watchers[w.channel] == nil {
		f.watchers[w.channel] = make(map[*memoryWatch]struct{})
	}
	f.watchers[w.channel][w] = struct{}{}
	return w, nil
}

// Watchers returns the number of open watches on a topic
func (f *InMemoryChangeFeed) Watchers(topic sibling.Topic) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.watchers[topic.String()])
}

type memoryWatch struct {
	feed    *InMemoryChangeFeed
	channel string
	changes chan struct{}
	closed  bool
}

func (w *memoryWatch) Changes() <-chan struct{} {
	return w.changes
}

func (w *memoryWatch) Close() error {
	w.feed.mu.Lock()
	defer w.feed.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	delete(w.feed.watchers[w.channel], w)
	if len(w.feed.watchers[w.channel]) == 0 {
		delete(w.feed.watchers, w.channel)
	}
	close(w.changes)
	return nil
}

var _ sibling.ChangeFeed = (*InMemoryChangeFeed)(nil)
