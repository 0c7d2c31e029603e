package sibling

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Store persists sibling sets. Implementations commit a batch atomically, check
// every write's expected version, and reject a batch that would leave more than
// one default for the owner.
type Store[T Member] interface {
	// Collection returns the name of the sibling collection
	Collection() string

	// ListByOwner returns all members of an owner's set, oldest first
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]T, error)

	// FindByID finds one member of an owner's set
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (T, error)

	// Commit applies the batch as a single atomic transaction
	Commit(ctx context.Context, batch Batch[T]) error
}

// Topic names the change stream of one owner's sibling set
type Topic struct {
	Collection string
	OwnerID    uuid.UUID
}

// String returns the channel name of the topic
func (t Topic) String() string {
	return fmt.Sprintf("siblings:%s:%s", t.Collection, t.OwnerID)
}

// Watch is a live subscription to a topic. Changes carries one signal per
// committed batch; it is closed after Close.
type Watch interface {
	Changes() <-chan struct{}
	Close() error
}

// ChangeFeed broadcasts committed changes to sibling sets
type ChangeFeed interface {
	// Publish signals subscribers of the topic that the set changed
	Publish(ctx context.Context, topic Topic) error

	// Subscribe opens a watch on the topic
	Subscribe(ctx context.Context, topic Topic) (Watch, error)
}
