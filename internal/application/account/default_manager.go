package account

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/domain/sibling"
	"go.uber.org/zap"
)

// ErrSubscriptionsUnavailable is returned by Subscribe when no change feed is configured
var ErrSubscriptionsUnavailable = errors.New("account: live subscriptions are not configured")

// DefaultManager enforces "at most one default" over an owner's sibling set.
// Every operation reads the set, builds one version-checked batch and commits it
// atomically; a concurrent change makes the commit fail with shared.ErrConcurrencyConflict.
type DefaultManager[T sibling.Member] struct {
	store  sibling.Store[T]
	feed   sibling.ChangeFeed
	logger *zap.Logger
}

// NewDefaultManager creates a new DefaultManager. feed may be nil.
func NewDefaultManager[T sibling.Member](store sibling.Store[T], feed sibling.ChangeFeed, logger *zap.Logger) *DefaultManager[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultManager[T]{store: store, feed: feed, logger: logger}
}

// List returns the owner's set
func (m *DefaultManager[T]) List(ctx context.Context, ownerID uuid.UUID) ([]T, error) {
	return m.store.ListByOwner(ctx, ownerID)
}

// Get returns one member of the owner's set
func (m *DefaultManager[T]) Get(ctx context.Context, ownerID, id uuid.UUID) (T, error) {
	return m.store.FindByID(ctx, ownerID, id)
}

// Default returns the owner's default member or shared.ErrNotFound
func (m *DefaultManager[T]) Default(ctx context.Context, ownerID uuid.UUID) (T, error) {
	members, err := m.store.ListByOwner(ctx, ownerID)
	if err != nil {
		var zero T
		return zero, err
	}
	if d, ok := sibling.DefaultOf(members); ok {
		return d, nil
	}
	var zero T
	return zero, shared.ErrNotFound
}

// Add inserts a new member. With makeDefault, every current default is cleared in the same batch.
func (m *DefaultManager[T]) Add(ctx context.Context, member T, makeDefault bool) error {
	ownerID := member.GetOwnerID()
	member.SetDefault(makeDefault)

	batch := sibling.NewBatch[T](ownerID)
	if makeDefault {
		members, err := m.store.ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		clearDefaults(batch, members, uuid.Nil)
	}
	batch.Insert(member)

	return m.commit(ctx, batch)
}

// Update overwrites a member with its new state. If the member is flagged default,
// every other default is cleared in the same batch. The member's version must be
// the one it was read with.
func (m *DefaultManager[T]) Update(ctx context.Context, member T) error {
	ownerID := member.GetOwnerID()

	batch := sibling.NewBatch[T](ownerID)
	if member.IsDefault() {
		members, err := m.store.ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		clearDefaults(batch, members, member.GetID())
	}
	batch.Overwrite(member, member.GetVersion())

	return m.commit(ctx, batch)
}

// SetDefault makes target the owner's only default
func (m *DefaultManager[T]) SetDefault(ctx context.Context, ownerID, targetID uuid.UUID) error {
	members, err := m.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	var target T
	found := false
	for _, member := range members {
		if member.GetID() == targetID {
			target, found = member, true
			break
		}
	}
	if !found {
		return shared.ErrNotFound
	}

	batch := sibling.NewBatch[T](ownerID)
	clearDefaults(batch, members, targetID)
	if !target.IsDefault() {
		batch.SetDefault(targetID, target.GetVersion())
	}
	if batch.Len() == 0 {
		return nil
	}

	return m.commit(ctx, batch)
}

// Delete removes a member. Deleting the default leaves the owner without one.
func (m *DefaultManager[T]) Delete(ctx context.Context, ownerID, targetID uuid.UUID) error {
	target, err := m.store.FindByID(ctx, ownerID, targetID)
	if err != nil {
		return err
	}

	batch := sibling.NewBatch[T](ownerID).Delete(targetID, target.GetVersion())
	return m.commit(ctx, batch)
}

func (m *DefaultManager[T]) commit(ctx context.Context, batch *sibling.Batch[T]) error {
	if err := m.store.Commit(ctx, *batch); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			m.logger.Info("sibling batch rejected by concurrent change",
				zap.String("collection", m.store.Collection()),
				zap.String("owner_id", batch.OwnerID.String()),
			)
			return err
		}
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return fmt.Errorf("commit %s batch: %w", m.store.Collection(), err)
	}

	if m.feed != nil {
		topic := sibling.Topic{Collection: m.store.Collection(), OwnerID: batch.OwnerID}
		if err := m.feed.Publish(context.WithoutCancel(ctx), topic); err != nil {
			m.logger.Warn("failed to publish sibling change",
				zap.String("topic", topic.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func clearDefaults[T sibling.Member](batch *sibling.Batch[T], members []T, except uuid.UUID) {
	for _, member := range members {
		if member.IsDefault() && member.GetID() != except {
			batch.ClearDefault(member.GetID(), member.GetVersion())
		}
	}
}

// Subscription is a live view of an owner's set. Close stops it.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Close stops the subscription and waits for its callback to return
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// Done is closed when the subscription has stopped
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Subscribe calls fn with the owner's current set, then again after every committed change,
// until ctx is cancelled or the subscription is closed.
func (m *DefaultManager[T]) Subscribe(ctx context.Context, ownerID uuid.UUID, fn func([]T)) (*Subscription, error) {
	if m.feed == nil {
		return nil, ErrSubscriptionsUnavailable
	}

	topic := sibling.Topic{Collection: m.store.Collection(), OwnerID: ownerID}
	subCtx, cancel := context.WithCancel(ctx)
	watch, err := m.feed.Subscribe(subCtx, topic)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	initial, err := m.store.ListByOwner(subCtx, ownerID)
	if err != nil {
		cancel()
		_ = watch.Close()
		return nil, err
	}

	sub := &Subscription{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(sub.done)
		defer func() {
			if err := watch.Close(); err != nil {
				m.logger.Debug("failed to close sibling watch", zap.Error(err))
			}
		}()

		fn(initial)
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-watch.Changes():
				if !ok {
					return
				}
				snapshot, err := m.store.ListByOwner(subCtx, ownerID)
				if err != nil {
					if subCtx.Err() != nil {
						return
					}
					m.logger.Warn("failed to reload sibling snapshot",
						zap.String("topic", topic.String()),
						zap.Error(err),
					)
					continue
				}
				fn(snapshot)
			}
		}
	}()

	return sub, nil
}
