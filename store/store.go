// This package contains the main [Store] interface and the storage shapes used by the
// capacity policies of a buffer.
package store

import "iter"

// Store is an in-memory FIFO container for buffer items.
//
// Implementations are not considered thread-safe. A buffer owns exactly one store and only
// touches it while holding its lock.
type Store[Item any] interface {
	// Push appends an item to the tail of the store.
	//
	// The caller must make sure the store has room for the item; pushing into a full bounded
	// store panics.
	Push(item Item)
	// Pop removes and returns the item at the head of the store.
	//
	// Popping from an empty store panics.
	Pop() Item
	// Len returns the number of items in the store.
	Len() int
	// Iter returns a sequence of all items in the store, oldest first.
	Iter() iter.Seq[Item]
	// Reset clears all items from the store.
	Reset()
}
