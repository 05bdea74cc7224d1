// Package gate describes the unitary operators used by the teleportation
// protocol as small matrices in the computational basis.
//
// Single-qubit gates are 2x2, indexed [out][in] over |0⟩, |1⟩. Two-qubit gates
// are 4x4 over the local index 2*c + t, where c is the first (control) qubit
// and t the second (target) qubit, so |ct⟩ = |00⟩, |01⟩, |10⟩, |11⟩.
package gate

import "math"

// A Matrix2 is a single-qubit operator.
type Matrix2 [2][2]complex128

// A Matrix4 is a two-qubit operator.
type Matrix4 [4][4]complex128

// RY returns the real rotation by theta about the Y axis. Applied to |0⟩ it
// yields cos(θ/2)|0⟩ + sin(θ/2)|1⟩.
func RY(theta float64) Matrix2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Matrix2{
		{c, -s},
		{s, c},
	}
}

// H returns the Hadamard gate.
func H() Matrix2 {
	f := complex(1/math.Sqrt2, 0)
	return Matrix2{
		{f, f},
		{f, -f},
	}
}

// X returns the Pauli-X (bit flip) gate.
func X() Matrix2 {
	return Matrix2{
		{0, 1},
		{1, 0},
	}
}

// Z returns the Pauli-Z (phase flip) gate.
func Z() Matrix2 {
	return Matrix2{
		{1, 0},
		{0, -1},
	}
}

// CNOT returns the controlled-NOT gate: identity when the control is 0, X on
// the target when it is 1.
func CNOT() Matrix4 {
	return Controlled(X())
}

// CZ returns the controlled-Z gate, which negates |11⟩ and leaves the other
// basis states alone.
func CZ() Matrix4 {
	return Controlled(Z())
}

// Controlled lifts u to a two-qubit gate that applies u to the target only
// when the control is 1.
func Controlled(u Matrix2) Matrix4 {
	var m Matrix4
	m[0][0], m[1][1] = 1, 1
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			m[2+r][2+c] = u[r][c]
		}
	}
	return m
}

// Mul returns the product ab.
func (a Matrix2) Mul(b Matrix2) Matrix2 {
	var m Matrix2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				m[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return m
}

// Dagger returns the conjugate transpose of a.
func (a Matrix2) Dagger() Matrix2 {
	var m Matrix2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			m[i][j] = complex(real(a[j][i]), -imag(a[j][i]))
		}
	}
	return m
}

// Dagger returns the conjugate transpose of a.
func (a Matrix4) Dagger() Matrix4 {
	var m Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m[i][j] = complex(real(a[j][i]), -imag(a[j][i]))
		}
	}
	return m
}

// Mul returns the product ab.
func (a Matrix4) Mul(b Matrix4) Matrix4 {
	var m Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				m[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return m
}
