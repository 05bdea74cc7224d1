package teleport

import "fmt"

// A Kind tags the variant held by an Operation.
type Kind int

const (
	KindBarrier Kind = iota
	KindRotate
	KindHadamard
	KindControlledNot
	KindControlledZ
	KindMeasure
	KindConditionalX
	KindConditionalZ
)

var kindNames = map[Kind]string{
	KindBarrier:       "barrier",
	KindRotate:        "ry",
	KindHadamard:      "h",
	KindControlledNot: "cx",
	KindControlledZ:   "cz",
	KindMeasure:       "measure",
	KindConditionalX:  "if-x",
	KindConditionalZ:  "if-z",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// An Operation is one step of a Protocol. Operations are values: they carry no
// state and cannot be changed once built.
type Operation struct {
	kind   Kind
	qubits [2]int
	slot   int
	angle  float64
}

// Rotate prepares q with a Y rotation by theta.
func Rotate(q int, theta float64) Operation {
	return Operation{kind: KindRotate, qubits: [2]int{q, -1}, slot: -1, angle: theta}
}

// Hadamard applies H to q.
func Hadamard(q int) Operation {
	return Operation{kind: KindHadamard, qubits: [2]int{q, -1}, slot: -1}
}

// ControlledNot flips target when control is 1.
func ControlledNot(control, target int) Operation {
	return Operation{kind: KindControlledNot, qubits: [2]int{control, target}, slot: -1}
}

// ControlledZ negates the amplitude of states where control and target are
// both 1.
func ControlledZ(control, target int) Operation {
	return Operation{kind: KindControlledZ, qubits: [2]int{control, target}, slot: -1}
}

// Measure reads q into the classical slot.
func Measure(q, slot int) Operation {
	return Operation{kind: KindMeasure, qubits: [2]int{q, -1}, slot: slot}
}

// ConditionalX applies X to target iff slot holds 1.
func ConditionalX(slot, target int) Operation {
	return Operation{kind: KindConditionalX, qubits: [2]int{target, -1}, slot: slot}
}

// ConditionalZ applies Z to target iff slot holds 1.
func ConditionalZ(slot, target int) Operation {
	return Operation{kind: KindConditionalZ, qubits: [2]int{target, -1}, slot: slot}
}

// Barrier marks a stage boundary. It never affects the simulation.
func Barrier() Operation {
	return Operation{kind: KindBarrier, qubits: [2]int{-1, -1}, slot: -1}
}

// Kind returns the variant of op.
func (op Operation) Kind() Kind {
	return op.kind
}

// Qubits returns the register positions op acts on: control before target
// for two-qubit gates, the corrected qubit for conditionals, nothing for
// barriers.
func (op Operation) Qubits() []int {
	switch op.kind {
	case KindBarrier:
		return nil
	case KindControlledNot, KindControlledZ:
		return []int{op.qubits[0], op.qubits[1]}
	default:
		return []int{op.qubits[0]}
	}
}

// Slot returns the classical slot op writes (Measure) or reads (conditionals).
func (op Operation) Slot() (int, bool) {
	switch op.kind {
	case KindMeasure, KindConditionalX, KindConditionalZ:
		return op.slot, true
	}
	return 0, false
}

// Angle returns the rotation angle of a Rotate and 0 for everything else.
func (op Operation) Angle() float64 {
	return op.angle
}

// IsGate reports whether op is a unitary applied unconditionally.
func (op Operation) IsGate() bool {
	switch op.kind {
	case KindRotate, KindHadamard, KindControlledNot, KindControlledZ:
		return true
	}
	return false
}

// String renders op in an OpenQASM-like form, e.g. "cx q[1],q[2]".
func (op Operation) String() string {
	switch op.kind {
	case KindBarrier:
		return "barrier"
	case KindRotate:
		return fmt.Sprintf("ry(%.4g) q[%d]", op.angle, op.qubits[0])
	case KindHadamard:
		return fmt.Sprintf("h q[%d]", op.qubits[0])
	case KindControlledNot, KindControlledZ:
		return fmt.Sprintf("%s q[%d],q[%d]", op.kind, op.qubits[0], op.qubits[1])
	case KindMeasure:
		return fmt.Sprintf("measure q[%d] -> c[%d]", op.qubits[0], op.slot)
	case KindConditionalX:
		return fmt.Sprintf("if (c[%d]==1) x q[%d]", op.slot, op.qubits[0])
	case KindConditionalZ:
		return fmt.Sprintf("if (c[%d]==1) z q[%d]", op.slot, op.qubits[0])
	}
	return op.kind.String()
}
