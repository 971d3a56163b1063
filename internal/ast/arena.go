package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is append-only storage addressed by 1-based indices; index 0 is the
// "none" value of every id type built on it.
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Allocate appends value and returns its index. Indices are never reused, so
// they double as the tree's id counter.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return a.Len()
}

// Get returns nil for 0 and for indices that were never allocated.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || uint64(index) > uint64(len(a.data)) {
		return nil
	}
	return &a.data[index-1]
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}
