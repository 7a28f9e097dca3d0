package tfbsmatrix

/*OrderedSet insertion-ordered set of comparable keys */
type OrderedSet[K comparable] struct {
	keys  []K
	index map[K]int
}

/*NewOrderedSet ... */
func NewOrderedSet[K comparable]() *OrderedSet[K] {
	return &OrderedSet[K]{index: make(map[K]int)}
}

/*Add insert key if absent and return its position */
func (s *OrderedSet[K]) Add(key K) int {
	if pos, isInside := s.index[key]; isInside {
		return pos
	}

	s.index[key] = len(s.keys)
	s.keys = append(s.keys, key)

	return len(s.keys) - 1
}

/*Contains ... */
func (s *OrderedSet[K]) Contains(key K) bool {
	_, isInside := s.index[key]
	return isInside
}

/*Len ... */
func (s *OrderedSet[K]) Len() int {
	return len(s.keys)
}

/*Keys return a copy of the keys in insertion order */
func (s *OrderedSet[K]) Keys() []K {
	keys := make([]K, len(s.keys))
	copy(keys, s.keys)

	return keys
}
