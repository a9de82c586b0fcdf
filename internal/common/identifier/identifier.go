package identifier

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/fitforge/teamsync/internal/common/identifier Generator

// JoinCodeAlphabet is the character set for join codes. Visually confusable
// characters (0/O, 1/I/L) are excluded so codes survive being read aloud or
// retyped from a screenshot.
const JoinCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// JoinCodeLength is the number of characters in a join code
const JoinCodeLength = 6

// Generator produces row identifiers and join codes, injectable so tests can
// fix both.
type Generator interface {
	// NewID returns a unique row identifier
	NewID() string

	// NewJoinCode returns a short human-enterable admission code
	NewJoinCode() string
}

// DefaultGenerator implements Generator with UUIDs and a seeded random
// source for codes.
type DefaultGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// New returns a generator seeded from the current time
func New() *DefaultGenerator {
	return &DefaultGenerator{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewID returns a new UUID string
func (g *DefaultGenerator) NewID() string {
	return uuid.New().String()
}

// NewJoinCode returns a 6-character code drawn from JoinCodeAlphabet
func (g *DefaultGenerator) NewJoinCode() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]byte, JoinCodeLength)
	for i := range out {
		out[i] = JoinCodeAlphabet[g.rand.Intn(len(JoinCodeAlphabet))]
	}
	return string(out)
}
