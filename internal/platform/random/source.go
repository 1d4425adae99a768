package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is the randomness dependency of the rules engine.
type Source interface {
	// IntN returns a uniform value in [0, n). It panics when n <= 0.
	IntN(n int) int
}

// PCGSource is a seeded Source safe for use from several goroutines.
type PCGSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewPCGSource(seed uint64) *PCGSource {
	return &PCGSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeeded seeds from the wall clock. Use NewPCGSource in tests.
func NewTimeSeeded() *PCGSource {
	return NewPCGSource(uint64(time.Now().UnixNano()))
}

func (s *PCGSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.IntN(n)
}

// Sequence replays fixed values, wrapping around. Values are reduced modulo n.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

func NewSequence(values ...int) *Sequence {
	return &Sequence{values: append([]int(nil), values...)}
}

func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		panic("random: invalid argument to IntN")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}
