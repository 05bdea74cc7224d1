package register

import (
	"fmt"

	"github.com/alan-christopher/teleport/teleport/gate"
)

// Apply1 applies the single-qubit operator m to position q.
func (s *State) Apply1(m gate.Matrix2, q int) error {
	if err := s.checkPosition(q); err != nil {
		return err
	}
	bit := 1 << q
	for i := range s.amps {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a0, a1 := s.amps[i], s.amps[j]
		s.amps[i] = m[0][0]*a0 + m[0][1]*a1
		s.amps[j] = m[1][0]*a0 + m[1][1]*a1
	}
	return nil
}

// Apply2 applies the two-qubit operator m with c as its first (control) qubit
// and t as its second (target) qubit.
func (s *State) Apply2(m gate.Matrix4, c, t int) error {
	if err := s.checkPosition(c); err != nil {
		return err
	}
	if err := s.checkPosition(t); err != nil {
		return err
	}
	if c == t {
		return fmt.Errorf("two-qubit gate on a single position %d", c)
	}
	cb, tb := 1<<c, 1<<t
	for i := range s.amps {
		if i&(cb|tb) != 0 {
			continue
		}
		// Local index 2*c + t.
		idx := [4]int{i, i | tb, i | cb, i | cb | tb}
		var in [4]complex128
		for k, j := range idx {
			in[k] = s.amps[j]
		}
		for r, j := range idx {
			s.amps[j] = m[r][0]*in[0] + m[r][1]*in[1] + m[r][2]*in[2] + m[r][3]*in[3]
		}
	}
	return nil
}
