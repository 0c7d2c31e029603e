package account

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/account"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/domain/sibling"
)

// memoryStore is an in-memory sibling.Store that commits through sibling.Apply
type memoryStore[T sibling.Member] struct {
	mu         sync.Mutex
	collection string
	clone      func(T) T
	sets       map[uuid.UUID][]T
	commits    int
	failNext   error
	interleave func()
}

func newMemoryStore[T sibling.Member](collection string, clone func(T) T) *memoryStore[T] {
	return &memoryStore[T]{collection: collection, clone: clone, sets: make(map[uuid.UUID][]T)}
}

func (s *memoryStore[T]) Collection() string { return s.collection }

func (s *memoryStore[T]) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneAll(s.sets[ownerID]), nil
}

func (s *memoryStore[T]) FindByID(_ context.Context, ownerID, id uuid.UUID) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.sets[ownerID] {
		if m.GetID() == id {
			return s.clone(m), nil
		}
	}
	var zero T
	return zero, shared.ErrNotFound
}

func (s *memoryStore[T]) Commit(_ context.Context, batch sibling.Batch[T]) error {
	if hook := s.interleave; hook != nil {
		s.interleave = nil
		hook()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failNext; err != nil {
		s.failNext = nil
		return err
	}
	result, err := sibling.Apply(s.cloneAll(s.sets[batch.OwnerID]), batch)
	if err != nil {
		return err
	}
	s.sets[batch.OwnerID] = s.cloneAll(result)
	s.commits++
	return nil
}

func (s *memoryStore[T]) cloneAll(list []T) []T {
	out := make([]T, len(list))
	for i, m := range list {
		out[i] = s.clone(m)
	}
	return out
}

func cloneAddress(a *account.SavedAddress) *account.SavedAddress {
	c := *a
	return &c
}

func clonePaymentMethod(p *account.PaymentMethod) *account.PaymentMethod {
	c := *p
	return &c
}

// memoryFeed is an in-process sibling.ChangeFeed
type memoryFeed struct {
	mu   sync.Mutex
	subs map[string][]chan struct{}
}

type memoryWatch struct {
	feed  *memoryFeed
	topic string
	ch    chan struct{}
	once  sync.Once
}

func newMemoryFeed() *memoryFeed {
	return &memoryFeed{subs: make(map[string][]chan struct{})}
}

func (f *memoryFeed) Publish(_ context.Context, topic sibling.Topic) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs[topic.String()] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (f *memoryFeed) Subscribe(_ context.Context, topic sibling.Topic) (sibling.Watch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{}, 1)
	f.subs[topic.String()] = append(f.subs[topic.String()], ch)
	return &memoryWatch{feed: f, topic: topic.String(), ch: ch}, nil
}

func (w *memoryWatch) Changes() <-chan struct{} { return w.ch }

func (w *memoryWatch) Close() error {
	w.once.Do(func() {
		w.feed.mu.Lock()
		defer w.feed.mu.Unlock()
		subs := w.feed.subs[w.topic]
		for i, ch := range subs {
			if ch == w.ch {
				w.feed.subs[w.topic] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		close(w.ch)
	})
	return nil
}

var errStoreDown = errors.New("document store unavailable")
