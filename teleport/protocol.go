// Package teleport simulates the three-qubit quantum teleportation protocol.
//
// A Protocol is an immutable list of Operations. Each shot replays it against
// a fresh register.State and register.Classical pair, drawing measurement
// outcomes from an injected Source, and yields an Outcome bitstring. Shots are
// aggregated into Counts, and Analyze compares the receiver's read-out with
// the distribution predicted by the preparation angle.
package teleport

import (
	"fmt"
	"math"
	"strings"

	"github.com/alan-christopher/teleport/teleport/register"
)

// Register positions used by the teleportation protocols.
const (
	// SenderData holds the state being teleported.
	SenderData = 0
	// SenderPair is the sender's half of the entangled pair.
	SenderPair = 1
	// Receiver is the receiver's half of the pair, which ends up holding the
	// teleported state.
	Receiver = 2

	numQubits = 3
)

// A Protocol is a validated, read-only operation sequence over a register of
// fixed width. It is safe for concurrent use.
type Protocol struct {
	numQubits int
	ops       []Operation
}

// NewProtocol validates ops against a register of numQubits positions with as
// many classical slots. Every slot must be written by exactly one Measure, and
// conditionals may only read slots written earlier.
func NewProtocol(numQubits int, ops ...Operation) (*Protocol, error) {
	if numQubits < 1 || numQubits > register.MaxQubits {
		return nil, &ConstructionError{
			Index:  -1,
			Reason: fmt.Sprintf("register width %d outside [1, %d]", numQubits, register.MaxQubits),
		}
	}
	written := make([]bool, numQubits)
	for i, op := range ops {
		fail := func(format string, args ...interface{}) error {
			return &ConstructionError{Index: i, Op: op, Reason: fmt.Sprintf(format, args...)}
		}
		for _, q := range op.Qubits() {
			if q < 0 || q >= numQubits {
				return nil, fail("qubit %d outside [0, %d)", q, numQubits)
			}
		}
		switch op.kind {
		case KindBarrier, KindHadamard:
		case KindRotate:
			if math.IsNaN(op.angle) || math.IsInf(op.angle, 0) {
				return nil, fail("%v", ErrInvalidAngle)
			}
		case KindControlledNot, KindControlledZ:
			if op.qubits[0] == op.qubits[1] {
				return nil, fail("control and target are both qubit %d", op.qubits[0])
			}
		case KindMeasure:
			if op.slot < 0 || op.slot >= numQubits {
				return nil, fail("slot %d outside [0, %d)", op.slot, numQubits)
			}
			if written[op.slot] {
				return nil, fail("slot %d is measured twice", op.slot)
			}
			written[op.slot] = true
		case KindConditionalX, KindConditionalZ:
			if op.slot < 0 || op.slot >= numQubits {
				return nil, fail("slot %d outside [0, %d)", op.slot, numQubits)
			}
			if !written[op.slot] {
				return nil, fail("slot %d is read before it is measured", op.slot)
			}
		default:
			return nil, fail("unknown operation kind")
		}
	}
	for slot, ok := range written {
		if !ok {
			return nil, &ConstructionError{Index: -1, Reason: fmt.Sprintf("slot %d is never measured", slot)}
		}
	}
	return &Protocol{
		numQubits: numQubits,
		ops:       append([]Operation(nil), ops...),
	}, nil
}

// Teleportation returns the standard protocol teleporting RY(theta)|0⟩ from
// SenderData to Receiver, correcting with classically controlled X and Z.
func Teleportation(theta float64) (*Protocol, error) {
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return nil, fmt.Errorf("teleportation(%v): %w", theta, ErrInvalidAngle)
	}
	return NewProtocol(numQubits,
		Rotate(SenderData, theta),
		Barrier(),
		Hadamard(SenderPair),
		ControlledNot(SenderPair, Receiver),
		Barrier(),
		ControlledNot(SenderData, SenderPair),
		Hadamard(SenderData),
		Barrier(),
		Measure(SenderData, SenderData),
		Measure(SenderPair, SenderPair),
		Barrier(),
		ConditionalX(SenderPair, Receiver),
		ConditionalZ(SenderData, Receiver),
		Barrier(),
		Measure(Receiver, Receiver),
	)
}

// DeferredTeleportation is Teleportation with the corrections applied as
// quantum controlled gates after the sender's measurements. The receiver's
// statistics match Teleportation for every theta.
func DeferredTeleportation(theta float64) (*Protocol, error) {
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return nil, fmt.Errorf("deferred teleportation(%v): %w", theta, ErrInvalidAngle)
	}
	return NewProtocol(numQubits,
		Rotate(SenderData, theta),
		Barrier(),
		Hadamard(SenderPair),
		ControlledNot(SenderPair, Receiver),
		Barrier(),
		ControlledNot(SenderData, SenderPair),
		Hadamard(SenderData),
		Barrier(),
		Measure(SenderData, SenderData),
		Measure(SenderPair, SenderPair),
		Barrier(),
		ControlledNot(SenderPair, Receiver),
		ControlledZ(SenderData, Receiver),
		Barrier(),
		Measure(Receiver, Receiver),
	)
}

// NumQubits returns the register width, which is also the number of
// classical slots.
func (p *Protocol) NumQubits() int {
	return p.numQubits
}

// Len returns the number of operations, barriers included.
func (p *Protocol) Len() int {
	return len(p.ops)
}

// Ops returns a copy of the operation sequence.
func (p *Protocol) Ops() []Operation {
	return append([]Operation(nil), p.ops...)
}

// String lists one operation per line.
func (p *Protocol) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "qreg q[%d]; creg c[%d];\n", p.numQubits, p.numQubits)
	for _, op := range p.ops {
		b.WriteString(op.String())
		b.WriteString(";\n")
	}
	return b.String()
}
