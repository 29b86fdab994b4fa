package book

import "slices"

// orderedSet keeps insertion order and ignores repeated additions.
type orderedSet[T comparable] struct {
	items []T
}

func newOrderedSet[T comparable](items ...T) orderedSet[T] {
	var s orderedSet[T]
	for _, it := range items {
		s.add(it)
	}
	return s
}

func (s *orderedSet[T]) add(v T) {
	if !slices.Contains(s.items, v) {
		s.items = append(s.items, v)
	}
}

func (s *orderedSet[T]) remove(v T) {
	s.items = slices.DeleteFunc(s.items, func(it T) bool { return it == v })
}

func (s *orderedSet[T]) has(v T) bool {
	return slices.Contains(s.items, v)
}

func (s *orderedSet[T]) clear() {
	s.items = nil
}

// values returns copy, never internal slice.
func (s *orderedSet[T]) values() []T {
	return append(make([]T, 0, len(s.items)), s.items...)
}
