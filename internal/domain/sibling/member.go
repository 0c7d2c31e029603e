package sibling

import (
	"github.com/google/uuid"
)

// Member is an entity that belongs to an owner's sibling set
type Member interface {
	GetID() uuid.UUID
	GetOwnerID() uuid.UUID
	GetVersion() int
	IncrementVersion()
	IsDefault() bool
	SetDefault(isDefault bool)
}

// CountDefaults returns how many members are flagged default
func CountDefaults[T Member](members []T) int {
	n := 0
	for _, m := range members {
		if m.IsDefault() {
			n++
		}
	}
	return n
}

// DefaultOf returns the default member, if any
func DefaultOf[T Member](members []T) (T, bool) {
	for _, m := range members {
		if m.IsDefault() {
			return m, true
		}
	}
	var zero T
	return zero, false
}
