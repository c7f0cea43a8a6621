package store

import "iter"

var _ Store[any] = (*CellStore[any])(nil)

// CellStore holds at most one item.
type CellStore[Item any] struct {
	item     Item
	occupied bool
}

func Cell[Item any]() *CellStore[Item] {
	return &CellStore[Item]{}
}

func (s *CellStore[Item]) Push(item Item) {
	if s.occupied {
		panic("cell is occupied")
	}
	s.item = item
	s.occupied = true
}

func (s *CellStore[Item]) Pop() Item {
	if !s.occupied {
		panic("cell is empty")
	}
	item := s.item
	var zero Item
	s.item = zero
	s.occupied = false
	return item
}

func (s *CellStore[Item]) Len() int {
	if s.occupied {
		return 1
	}
	return 0
}

func (s *CellStore[Item]) Iter() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		if s.occupied {
			yield(s.item)
		}
	}
}

func (s *CellStore[Item]) Reset() {
	var zero Item
	s.item = zero
	s.occupied = false
}
