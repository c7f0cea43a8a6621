package store

import "iter"

var _ Store[any] = (*QueueStore[any])(nil)

const minQueueSize = 8

// QueueStore is a circular store that doubles its backing slice whenever it runs out of room.
// It never refuses a push.
type QueueStore[Item any] struct {
	items []Item
	head  int
	size  int
}

// Queue returns an empty growable store. The hint is the initial number of slots and is
// rounded up to a small minimum.
func Queue[Item any](hint int) *QueueStore[Item] {
	if hint < 0 {
		panic("hint can't be < 0")
	}
	return &QueueStore[Item]{
		items: make([]Item, max(hint, minQueueSize)),
	}
}

func (s *QueueStore[Item]) Push(item Item) {
	if s.size == len(s.items) {
		s.grow()
	}
	s.items[(s.head+s.size)%len(s.items)] = item
	s.size++
}

func (s *QueueStore[Item]) Pop() Item {
	if s.size == 0 {
		panic("queue is empty")
	}
	var zero Item
	item := s.items[s.head]
	s.items[s.head] = zero
	s.head = (s.head + 1) % len(s.items)
	s.size--
	return item
}

func (s *QueueStore[Item]) Len() int {
	return s.size
}

func (s *QueueStore[Item]) Iter() iter.Seq[Item] {
	return iterRing(s.items, s.head, s.size)
}

func (s *QueueStore[Item]) Reset() {
	clear(s.items)
	s.head = 0
	s.size = 0
}

func (s *QueueStore[Item]) grow() {
	items := make([]Item, len(s.items)*2)
	n := copy(items, s.items[s.head:])
	copy(items[n:], s.items[:s.head])
	s.items = items
	s.head = 0
}
