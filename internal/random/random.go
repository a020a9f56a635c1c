// Package random provides the injectable random source shared by the
// generators. Every generator takes a Source so tests can seed it.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	mathrand "math/rand/v2"
	"slices"
	"sync"
	"time"
)

// Source is the subset of *rand.Rand the generators use.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// New returns a ChaCha8-backed generator for a fixed seed.
func New(seed uint64) *mathrand.Rand {
	var seedArray [32]byte
	binary.LittleEndian.PutUint64(seedArray[:8], seed)
	// #nosec G404 -- Using math/rand intentionally for deterministic colour generation, not cryptography
	return mathrand.New(mathrand.NewChaCha8(seedArray))
}

// NewSeed returns a non-deterministic seed from crypto/rand.
func NewSeed() uint64 {
	var randomBytes [8]byte
	if _, err := rand.Read(randomBytes[:]); err != nil {
		return uint64(time.Now().UnixNano()) // #nosec G115 -- seed only
	}
	return binary.LittleEndian.Uint64(randomBytes[:])
}

// NewRandom returns a generator with a non-deterministic seed.
func NewRandom() *mathrand.Rand {
	return New(NewSeed())
}

// Between returns a uniform value in [lo, hi).
func Between(rng Source, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// CoinFlip returns true with probability one half.
func CoinFlip(rng Source) bool {
	return rng.Float64() > 0.5
}

// Pick returns a uniformly chosen element. It panics on an empty slice.
func Pick[T any](rng Source, items []T) T {
	return items[rng.IntN(len(items))]
}

// Reader adapts a Source to an io.Reader of uniform bytes, for APIs such as
// uuid.NewRandomFromReader that draw entropy from a reader.
func Reader(rng Source) io.Reader {
	return &reader{rng: rng}
}

type reader struct {
	rng Source
}

func (r *reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.IntN(256))
	}
	return len(p), nil
}

// Locked wraps a Source with a mutex so one seeded stream can be shared
// between goroutines.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// IntN implements Source.
func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// Float64 implements Source.
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// Mode determines how the seed for a run is chosen.
type Mode string

const (
	// ModeRandom uses a non-deterministic seed (varies each run).
	ModeRandom Mode = "random"
	// ModeManual uses a user-provided seed value.
	ModeManual Mode = "manual"
)

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeRandom, ModeManual}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: random, manual)", s)
}

// Config holds configuration for seed selection.
type Config struct {
	Mode  Mode
	Value uint64 // only used when Mode is ModeManual
}

// Seed resolves the configured seed.
func (c Config) Seed() (uint64, error) {
	switch c.Mode {
	case ModeManual:
		return c.Value, nil
	case ModeRandom, "":
		return NewSeed(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", c.Mode)
	}
}

// Source builds a generator from the configuration.
func (c Config) Source() (*mathrand.Rand, error) {
	seed, err := c.Seed()
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}
