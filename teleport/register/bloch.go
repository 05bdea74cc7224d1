package register

import "math/cmplx"

// A Bloch vector describes the reduced state of one qubit. Pure states lie on
// the unit sphere; |0⟩ is (0, 0, 1).
type Bloch struct {
	X, Y, Z float64
}

// Bloch returns the Bloch vector of position q after tracing out every other
// position.
func (s *State) Bloch(q int) (Bloch, error) {
	if err := s.checkPosition(q); err != nil {
		return Bloch{}, err
	}
	bit := 1 << q
	var rho00, rho11 float64
	var rho01 complex128
	for i, a := range s.amps {
		if i&bit != 0 {
			continue
		}
		b := s.amps[i|bit]
		rho00 += sqAbs(a)
		rho11 += sqAbs(b)
		rho01 += a * cmplx.Conj(b)
	}
	return Bloch{
		X: 2 * real(rho01),
		Y: -2 * imag(rho01),
		Z: rho00 - rho11,
	}, nil
}
