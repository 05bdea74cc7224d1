package teleport

import (
	"errors"
	"fmt"

	"github.com/alan-christopher/teleport/teleport/gate"
	"github.com/alan-christopher/teleport/teleport/register"
)

// NormTolerance bounds how far total probability may drift from 1 after any
// gate before a shot is aborted.
const NormTolerance = 1e-9

// An Observer is called after every operation of a shot with the live state
// and classical store. It must not modify or retain either.
type Observer func(step int, op Operation, s *register.State, c *register.Classical)

// Run executes one shot of p, drawing measurement outcomes from src.
func (p *Protocol) Run(src register.Source) (Outcome, error) {
	return p.RunObserved(src, nil)
}

// RunObserved is Run with obs invoked after each operation. obs may be nil.
func (p *Protocol) RunObserved(src register.Source, obs Observer) (Outcome, error) {
	s, err := register.New(p.numQubits)
	if err != nil {
		return "", err
	}
	c := register.NewClassical(p.numQubits)
	for i, op := range p.ops {
		if err := step(s, c, op, src); err != nil {
			return "", invariant(i, op, s, c, err)
		}
		if op.IsGate() && !s.Normalized(NormTolerance) {
			return "", invariant(i, op, s, c, fmt.Errorf("norm drifted to %.12f", s.Norm()))
		}
		if obs != nil {
			obs(i, op, s, c)
		}
	}
	if !c.Complete() {
		return "", invariant(len(p.ops)-1, p.ops[len(p.ops)-1], s, c, errors.New("classical store incomplete"))
	}
	return Outcome(c.Bits().String()), nil
}

func step(s *register.State, c *register.Classical, op Operation, src register.Source) error {
	switch op.kind {
	case KindBarrier:
		return nil
	case KindRotate:
		return s.Apply1(gate.RY(op.angle), op.qubits[0])
	case KindHadamard:
		return s.Apply1(gate.H(), op.qubits[0])
	case KindControlledNot:
		return s.Apply2(gate.CNOT(), op.qubits[0], op.qubits[1])
	case KindControlledZ:
		return s.Apply2(gate.CZ(), op.qubits[0], op.qubits[1])
	case KindMeasure:
		_, err := s.Measure(op.qubits[0], src, c, op.slot)
		return err
	case KindConditionalX:
		return applyIfSet(s, c, op.slot, gate.X(), op.qubits[0])
	case KindConditionalZ:
		return applyIfSet(s, c, op.slot, gate.Z(), op.qubits[0])
	}
	return fmt.Errorf("unknown operation kind %v", op.kind)
}

// applyIfSet applies m to target iff slot holds 1.
func applyIfSet(s *register.State, c *register.Classical, slot int, m gate.Matrix2, target int) error {
	bit, err := c.MustRead(slot)
	if err != nil {
		return err
	}
	if !bit {
		return nil
	}
	return s.Apply1(m, target)
}

func invariant(i int, op Operation, s *register.State, c *register.Classical, err error) *InvariantError {
	return &InvariantError{
		Step:       i,
		Op:         op,
		Err:        err,
		Amplitudes: s.Amplitudes(),
		Classical:  c.String(),
		Dump:       s.String(),
	}
}
