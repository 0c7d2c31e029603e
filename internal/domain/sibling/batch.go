package sibling

import (
	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/shared"
)

// WriteKind is the kind of a single write within a batch
type WriteKind string

const (
	WriteInsert       WriteKind = "insert"
	WriteOverwrite    WriteKind = "overwrite"
	WriteClearDefault WriteKind = "clear_default"
	WriteSetDefault   WriteKind = "set_default"
	WriteDelete       WriteKind = "delete"
)

// Errors raised when committing a batch
var (
	ErrOwnerMismatch    = shared.NewDomainError("OWNER_MISMATCH", "Member does not belong to the batch owner")
	ErrMultipleDefaults = shared.NewDomainError("MULTIPLE_DEFAULTS", "Batch would leave more than one default")
	ErrEmptyBatch       = shared.NewDomainError("EMPTY_BATCH", "Batch has no writes")
	ErrDuplicateWrite   = shared.NewDomainError("DUPLICATE_WRITE", "Batch writes the same member twice")
)

// Write is one document write. Every write except an insert carries the
// version the caller observed; a mismatch at commit time rejects the batch.
type Write[T Member] struct {
	Kind            WriteKind
	ID              uuid.UUID
	Member          T
	ExpectedVersion int
}

// Batch is an ordered list of writes against one owner's sibling set,
// committed all-or-nothing
type Batch[T Member] struct {
	OwnerID uuid.UUID
	Writes  []Write[T]
}

// NewBatch creates an empty batch for an owner
func NewBatch[T Member](ownerID uuid.UUID) *Batch[T] {
	return &Batch[T]{OwnerID: ownerID}
}

// Insert adds a new member
func (b *Batch[T]) Insert(member T) *Batch[T] {
	b.Writes = append(b.Writes, Write[T]{Kind: WriteInsert, ID: member.GetID(), Member: member})
	return b
}

// Overwrite replaces a stored member with the given state
func (b *Batch[T]) Overwrite(member T, expectedVersion int) *Batch[T] {
	b.Writes = append(b.Writes, Write[T]{Kind: WriteOverwrite, ID: member.GetID(), Member: member, ExpectedVersion: expectedVersion})
	return b
}

// ClearDefault unsets the default flag on a stored member
func (b *Batch[T]) ClearDefault(id uuid.UUID, expectedVersion int) *Batch[T] {
	b.Writes = append(b.Writes, Write[T]{Kind: WriteClearDefault, ID: id, ExpectedVersion: expectedVersion})
	return b
}

// SetDefault sets the default flag on a stored member
func (b *Batch[T]) SetDefault(id uuid.UUID, expectedVersion int) *Batch[T] {
	b.Writes = append(b.Writes, Write[T]{Kind: WriteSetDefault, ID: id, ExpectedVersion: expectedVersion})
	return b
}

// Delete removes a stored member
func (b *Batch[T]) Delete(id uuid.UUID, expectedVersion int) *Batch[T] {
	b.Writes = append(b.Writes, Write[T]{Kind: WriteDelete, ID: id, ExpectedVersion: expectedVersion})
	return b
}

// Len returns the number of writes
func (b *Batch[T]) Len() int {
	return len(b.Writes)
}

// Validate checks the batch shape before it reaches a store
func (b *Batch[T]) Validate() error {
	if len(b.Writes) == 0 {
		return ErrEmptyBatch
	}
	for _, w := range b.Writes {
		if (w.Kind == WriteInsert || w.Kind == WriteOverwrite) && w.Member.GetOwnerID() != b.OwnerID {
			return ErrOwnerMismatch
		}
	}
	return nil
}

// Apply applies a batch to an owner's current members and returns the resulting set.
// Every write is checked before anything is mutated, so on error the given
// members and the batch's members are left untouched.
func Apply[T Member](members []T, batch Batch[T]) ([]T, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]T, len(members))
	for _, m := range members {
		byID[m.GetID()] = m
	}

	defaults := make(map[uuid.UUID]bool, len(members))
	for _, m := range members {
		defaults[m.GetID()] = m.IsDefault()
	}
	seen := make(map[uuid.UUID]struct{}, len(batch.Writes))
	for _, w := range batch.Writes {
		if _, dup := seen[w.ID]; dup {
			return nil, ErrDuplicateWrite
		}
		seen[w.ID] = struct{}{}

		current, exists := byID[w.ID]
		if w.Kind == WriteInsert {
			if exists {
				return nil, shared.ErrAlreadyExists
			}
			defaults[w.ID] = w.Member.IsDefault()
			continue
		}
		if !exists {
			return nil, shared.ErrNotFound
		}
		if current.GetVersion() != w.ExpectedVersion {
			return nil, shared.ErrConcurrencyConflict
		}
		switch w.Kind {
		case WriteOverwrite:
			defaults[w.ID] = w.Member.IsDefault()
		case WriteClearDefault:
			defaults[w.ID] = false
		case WriteSetDefault:
			defaults[w.ID] = true
		case WriteDelete:
			delete(defaults, w.ID)
		}
	}
	count := 0
	for _, isDefault := range defaults {
		if isDefault {
			count++
		}
	}
	if count > 1 {
		return nil, ErrMultipleDefaults
	}

	result := append([]T(nil), members...)
	for _, w := range batch.Writes {
		idx := -1
		for i, m := range result {
			if m.GetID() == w.ID {
				idx = i
				break
			}
		}
		switch w.Kind {
		case WriteInsert:
			result = append(result, w.Member)
		case WriteOverwrite:
			w.Member.IncrementVersion()
			result[idx] = w.Member
		case WriteClearDefault:
			result[idx].SetDefault(false)
			result[idx].IncrementVersion()
		case WriteSetDefault:
			result[idx].SetDefault(true)
			result[idx].IncrementVersion()
		case WriteDelete:
			result = append(result[:idx], result[idx+1:]...)
		}
	}
	return result, nil
}
