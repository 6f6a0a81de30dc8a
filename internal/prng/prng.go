// Package prng implements the deterministic pseudo-random source that every
// value generator draws from. It is a plain linear congruential generator:
// reproducible across runs for a given seed and call order, and in no way
// suitable for secrets.
package prng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// LCG parameters. Changing these changes every sequence ever generated,
// which would invalidate existing seeded fixtures.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Source is a seeded pseudo-random number source. A Source is owned by a
// single generator instance and is not safe for concurrent use.
type Source struct {
	state int64
}

// New creates a Source from an explicit seed. The seed is reduced into the
// generator's state space, so any finite integer is acceptable.
func New(seed int64) *Source {
	state := seed % lcgModulus
	if state < 0 {
		state += lcgModulus
	}
	return &Source{state: state}
}

// NewFromEntropy creates a Source with a seed drawn from the operating
// system's entropy, returning the seed so callers can report it for
// reproducibility.
func NewFromEntropy() (*Source, int64) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Entropy read failures are effectively impossible on supported
		// platforms; fall back to wall clock rather than aborting.
		seed := time.Now().UnixNano()
		return New(seed), seed
	}
	seed := int64(binary.BigEndian.Uint64(buf[:]) & math.MaxInt64)
	return New(seed), seed
}

// Next advances the generator and returns the next value in [0, 1).
func (s *Source) Next() float64 {
	s.state = (s.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(s.state) / lcgModulus
}

// IntBetween returns a uniform integer in [min, max], inclusive on both ends.
// A draw is consumed even when min == max, so degenerate bounds do not shift
// the stream position. min > max is undefined and returns min without a draw.
func (s *Source) IntBetween(min, max int) int {
	if min > max {
		return min
	}
	return int(math.Floor(s.Next()*float64(max-min+1))) + min
}

// Index returns a uniform index in [0, n).
func (s *Source) Index(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("prng: cannot pick from empty set")
	}
	return int(math.Floor(s.Next() * float64(n))), nil
}

// Choice returns a uniformly chosen element of items.
func (s *Source) Choice(items []string) (string, error) {
	i, err := s.Index(len(items))
	if err != nil {
		return "", err
	}
	return items[i], nil
}

// Bool returns true with probability one half.
func (s *Source) Bool() bool {
	return s.Next() < 0.5
}

// StringOf returns a string of length characters drawn from charset.
func (s *Source) StringOf(length int, charset string) (string, error) {
	if len(charset) == 0 {
		return "", fmt.Errorf("prng: cannot draw from empty charset")
	}
	b := make([]byte, length)
	for i := range b {
		idx := int(math.Floor(s.Next() * float64(len(charset))))
		b[i] = charset[idx]
	}
	return string(b), nil
}

// Read fills p with deterministic pseudo-random bytes, satisfying io.Reader
// so the Source can feed consumers of random byte streams (UUID generation).
func (s *Source) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(math.Floor(s.Next() * 256))
	}
	return len(p), nil
}
