// Package random generates high-entropy seeds for the dice roller.
//
// Rolls are deterministic per seed, so replayability hinges on every roll
// carrying an explicit seed. When a caller does not supply one, these
// helpers draw a fresh seed from crypto/rand.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed draws a random seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Resolve returns seed unchanged when the caller supplied one, and a fresh
// random seed when seed is zero. Zero means "no seed given" at the request
// boundaries; callers that need full control of the source should roll
// through dice.RollWithRng instead.
func Resolve(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	return NewSeed()
}
