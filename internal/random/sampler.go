package random

import (
	"math/rand"
	"time"
)

// codeAlphabet deliberately omits easily-confused letters (I, O).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// Sampler provides the randomness used for join codes and player sampling
type Sampler struct {
	random *rand.Rand
}

// Config for the sampler
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new sampler
func New(cfg *Config) *Sampler {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &Sampler{
		random: random,
	}
}

// Code generates a human-shareable join code of the given length
func (s *Sampler) Code(length int) string {
	if length < 1 {
		length = 5
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = codeAlphabet[s.random.Intn(len(codeAlphabet))]
	}
	return string(buf)
}

// Sample returns n distinct elements picked from ids. When ids has fewer than
// n elements a shuffled copy of the whole slice is returned.
func (s *Sampler) Sample(ids []string, n int) []string {
	shuffled := make([]string, len(ids))
	copy(shuffled, ids)
	s.random.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
