package register

import (
	"fmt"
	"math"
)

// A Source provides uniformly distributed values in [0, 1). *rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
}

// ProbabilityOfOne returns the probability that position q reads 1,
// marginalized over every other position.
func (s *State) ProbabilityOfOne(q int) (float64, error) {
	if err := s.checkPosition(q); err != nil {
		return 0, err
	}
	bit := 1 << q
	var p float64
	for i, a := range s.amps {
		if i&bit != 0 {
			p += sqAbs(a)
		}
	}
	return p, nil
}

// Collapse projects position q onto value and renormalizes. It fails with
// ErrZeroMass if the retained branch carries (numerically) no probability,
// leaving s untouched.
func (s *State) Collapse(q int, value bool) error {
	if err := s.checkPosition(q); err != nil {
		return err
	}
	bit := 1 << q
	keep := func(i int) bool { return (i&bit != 0) == value }
	var mass float64
	for i, a := range s.amps {
		if keep(i) {
			mass += sqAbs(a)
		}
	}
	if mass < minRetainedMass {
		return fmt.Errorf("qubit %d to %d (mass %g): %w", q, b2i(value), mass, ErrZeroMass)
	}
	f := complex(math.Sqrt(mass), 0)
	for i := range s.amps {
		if keep(i) {
			s.amps[i] /= f
		} else {
			s.amps[i] = 0
		}
	}
	return nil
}

// SampleAndCollapse draws u from src and reads 1 iff u < P(q=1), so the
// boundary goes to 0. The state is collapsed onto the result.
func (s *State) SampleAndCollapse(q int, src Source) (bool, error) {
	p1, err := s.ProbabilityOfOne(q)
	if err != nil {
		return false, err
	}
	bit := src.Float64() < p1
	if err := s.Collapse(q, bit); err != nil {
		return false, err
	}
	return bit, nil
}

// Measure samples position q, collapses s and records the result in slot of
// c.
func (s *State) Measure(q int, src Source, c *Classical, slot int) (bool, error) {
	if _, ok, err := c.Read(slot); err != nil {
		return false, err
	} else if ok {
		return false, fmt.Errorf("measuring qubit %d: %w", q, &SlotError{Slot: slot, Err: ErrSlotWritten})
	}
	bit, err := s.SampleAndCollapse(q, src)
	if err != nil {
		return false, err
	}
	if err := c.Write(slot, bit); err != nil {
		return false, err
	}
	return bit, nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
