// Package register simulates a small quantum register as a dense vector of
// complex amplitudes, together with the classical bits that measurements
// write into.
//
// Basis state i has qubit k in state (i>>k)&1. Gates are applied in place by
// combining amplitudes pairwise (one-qubit gates) or four at a time (two-qubit
// gates), so no operator over the full 2^n space is ever built.
package register

import (
	"errors"
	"fmt"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// MaxQubits bounds the size of a State. The vector has 2^n entries.
const MaxQubits = 16

var (
	// ErrZeroMass is returned when a collapse would keep no probability mass.
	ErrZeroMass = errors.New("collapse retains zero probability mass")
	// ErrPosition is returned for qubit positions outside the register.
	ErrPosition = errors.New("qubit position out of range")
)

// minRetainedMass is the smallest branch mass Collapse renormalizes.
const minRetainedMass = 1e-24

// A State is the amplitude vector of an n-qubit register. The zero value is
// not usable; create States with New.
type State struct {
	amps []complex128
	n    int
}

// New returns an n-qubit register in the all-zero basis state.
func New(n int) (*State, error) {
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("register of %d qubits, must be in [1, %d]", n, MaxQubits)
	}
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &State{amps: amps, n: n}, nil
}

// NumQubits returns the number of qubit positions in s.
func (s *State) NumQubits() int {
	return s.n
}

// Amplitudes returns a copy of the amplitude vector.
func (s *State) Amplitudes() []complex128 {
	r := make([]complex128, len(s.amps))
	copy(r, s.amps)
	return r
}

// Amplitude returns the amplitude of basis state i.
func (s *State) Amplitude(i int) complex128 {
	return s.amps[i]
}

// Probabilities returns |a_i|² for every basis state.
func (s *State) Probabilities() []float64 {
	r := make([]float64, len(s.amps))
	for i, a := range s.amps {
		r[i] = sqAbs(a)
	}
	return r
}

// Norm returns the total probability mass, which is 1 for a valid state.
func (s *State) Norm() float64 {
	return floats.Sum(s.Probabilities())
}

// Normalized reports whether the total probability mass is within tol of 1.
func (s *State) Normalized(tol float64) bool {
	return scalar.EqualWithinAbs(s.Norm(), 1, tol)
}

// String dumps every basis amplitude, one per line, as |q_{n-1}…q_0⟩: a.
func (s *State) String() string {
	var sb strings.Builder
	for i, a := range s.amps {
		fmt.Fprintf(&sb, "|%0*b⟩: %.6g (p=%.6g)\n", s.n, i, a, sqAbs(a))
	}
	return sb.String()
}

func (s *State) checkPosition(q int) error {
	if q < 0 || q >= s.n {
		return fmt.Errorf("position %d in %d-qubit register: %w", q, s.n, ErrPosition)
	}
	return nil
}

func sqAbs(a complex128) float64 {
	m := cmplx.Abs(a)
	return m * m
}
