// Package rng provides the random source shared by pets, the shop and the
// story engine. Production sessions use a time-seeded RNG; tests inject a
// scripted Sequence.
package rng

import (
	"math/rand"
	"time"
)

// Source is the capability every stochastic operation takes.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n must be > 0.
	Intn(n int) int
}

// RNG wraps math/rand.Rand and remembers its seed so a session can be
// replayed.
type RNG struct {
	seed int64
	src  *rand.Rand
}

// New creates an RNG from a seed. A zero seed means "unseeded": the current
// time is used instead.
func New(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Float64 returns a random value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.src.Float64()
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	return r.src.Intn(n)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Sequence is a scripted Source that replays fixed values in order and
// wraps around. Intn maps the next value onto [0, n).
type Sequence struct {
	values []float64
	next   int
}

// NewSequence returns a Sequence over values. An empty Sequence always
// yields 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next scripted value.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Intn returns floor(next * n), clamped to [0, n).
func (s *Sequence) Intn(n int) int {
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Draws returns how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.next
}
