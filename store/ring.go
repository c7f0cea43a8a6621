package store

import "iter"

var _ Store[any] = (*RingStore[any])(nil)

// RingStore is a fixed-size circular store.
type RingStore[Item any] struct {
	items []Item
	head  int
	size  int
}

func Ring[Item any](capacity int) *RingStore[Item] {
	if capacity < 1 {
		panic("capacity can't be < 1")
	}
	return &RingStore[Item]{
		items: make([]Item, capacity),
	}
}

func (s *RingStore[Item]) Push(item Item) {
	if s.size == len(s.items) {
		panic("ring is full")
	}
	s.items[(s.head+s.size)%len(s.items)] = item
	s.size++
}

func (s *RingStore[Item]) Pop() Item {
	if s.size == 0 {
		panic("ring is empty")
	}
	var zero Item
	item := s.items[s.head]
	s.items[s.head] = zero
	s.head = (s.head + 1) % len(s.items)
	s.size--
	return item
}

func (s *RingStore[Item]) Len() int {
	return s.size
}

// Cap returns the fixed number of slots of the ring.
func (s *RingStore[Item]) Cap() int {
	return len(s.items)
}

func (s *RingStore[Item]) Iter() iter.Seq[Item] {
	return iterRing(s.items, s.head, s.size)
}

func (s *RingStore[Item]) Reset() {
	clear(s.items)
	s.head = 0
	s.size = 0
}

func iterRing[Item any](items []Item, head, size int) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for i := range size {
			if !yield(items[(head+i)%len(items)]) {
				return
			}
		}
	}
}
