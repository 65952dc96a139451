// Package seedrand provides a deterministic RNG seeded from strings.
// Mission sets and the featured shop rotation must reproduce identically
// for a given day/week across processes and binary versions, so seeds
// come from FNV-1a over the UTF-8 key string, never a language
// built-in string hash, and the stream is splitmix64.
package seedrand

// fnv1a64 hashes a string with 64-bit FNV-1a.
func fnv1a64(s string) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}

// Source is a splitmix64 stream. Not safe for concurrent use; callers
// create one per generation pass.
type Source struct {
	state uint64
}

// New creates a Source from a raw numeric seed.
func New(seed uint64) *Source {
	if seed == 0 {
		seed = 1
	}
	return &Source{state: seed}
}

// FromString creates a Source seeded from a key string such as a
// "YYYY-MM-DD" date or "YYYY-Www" ISO week.
func FromString(key string) *Source {
	return New(fnv1a64(key))
}

// Next returns the next 64 random bits.
func (s *Source) Next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Intn returns a uniform int in [0, n). n must be > 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Next() % uint64(n))
}

// Float64 returns a uniform float64 in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Next()>>11) / (1 << 53)
}

// Float64InRange returns a uniform float64 in [lo, hi).
func (s *Source) Float64InRange(lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// Shuffle permutes n elements using the Fisher-Yates swap callback.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}
