package tetris2048

import "math/rand"

// Supplier hands out the type of the next tetromino to spawn.
type Supplier interface {
	Next() Type
}

// RandomSupplier draws types uniformly from the seven shapes.
type RandomSupplier struct {
	rng *rand.Rand
}

// NewRandomSupplier creates a supplier backed by rng.
func NewRandomSupplier(rng *rand.Rand) *RandomSupplier {
	return &RandomSupplier{rng: rng}
}

// Next returns a uniformly random type.
func (s *RandomSupplier) Next() Type {
	return AllTypes[s.rng.Intn(len(AllTypes))]
}

// SequenceSupplier cycles through a fixed list of types. Useful for replays
// and tests.
type SequenceSupplier struct {
	types []Type
	next  int
}

// NewSequenceSupplier creates a supplier that repeats types in order.
// An empty list yields TypeO forever.
func NewSequenceSupplier(types ...Type) *SequenceSupplier {
	return &SequenceSupplier{types: types}
}

// Next returns the next type in the sequence.
func (s *SequenceSupplier) Next() Type {
	if len(s.types) == 0 {
		return TypeO
	}
	t := s.types[s.next]
	s.next = (s.next + 1) % len(s.types)
	return t
}
