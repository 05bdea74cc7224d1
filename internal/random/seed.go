// Package random draws seeds for the sampler's pseudo-random generators.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a non-zero random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if s := int64(binary.LittleEndian.Uint64(b[:])); s != 0 {
			return s, nil
		}
	}
}

// Resolve returns seed, or a fresh one from NewSeed when seed is zero.
func Resolve(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	return NewSeed()
}
