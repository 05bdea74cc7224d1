package teleport

import (
	"errors"
	"math"
	"testing"

	"github.com/alan-christopher/teleport/teleport/register"
)

// scriptSource replays vals in order, wrapping around.
type scriptSource struct {
	vals []float64
	i    int
}

func (s *scriptSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// Draws of 0 force a 1 and 0.99 forces a 0 on the sender's evenly split
// measurements.
func draw(bit bool) float64 {
	if bit {
		return 0
	}
	return 0.99
}

func TestForcedBranches(t *testing.T) {
	theta := math.Pi / 3
	wantP0, wantP1 := ExpectedProbabilities(theta)
	wantBloch := ExpectedBloch(theta)
	builders := map[string]func(float64) (*Protocol, error){
		"classical": Teleportation,
		"deferred":  DeferredTeleportation,
	}
	for name, build := range builders {
		p, err := build(theta)
		if err != nil {
			t.Fatal(err)
		}
		ops := p.Ops()
		last := len(ops) - 1
		for _, m0 := range []bool{false, true} {
			for _, m1 := range []bool{false, true} {
				src := &scriptSource{vals: []float64{draw(m0), draw(m1), 0.5}}
				checked := false
				obs := func(step int, op Operation, s *register.State, c *register.Classical) {
					if step != last-1 {
						return
					}
					checked = true
					p1, err := s.ProbabilityOfOne(Receiver)
					if err != nil {
						t.Fatal(err)
					}
					if math.Abs(p1-wantP1) > 1e-9 || math.Abs(1-p1-wantP0) > 1e-9 {
						t.Errorf("%s m0=%v m1=%v: got P(1)=%v, want %v", name, m0, m1, p1, wantP1)
					}
					b, err := s.Bloch(Receiver)
					if err != nil {
						t.Fatal(err)
					}
					if math.Abs(b.X-wantBloch.X) > 1e-9 || math.Abs(b.Y) > 1e-9 || math.Abs(b.Z-wantBloch.Z) > 1e-9 {
						t.Errorf("%s m0=%v m1=%v: got Bloch %+v, want %+v", name, m0, m1, b, wantBloch)
					}
				}
				o, err := p.RunObserved(src, obs)
				if err != nil {
					t.Fatal(err)
				}
				if !checked {
					t.Fatalf("%s: observer never reached step %d", name, last-1)
				}
				if o.Bit(SenderData) != m0 || o.Bit(SenderPair) != m1 {
					t.Errorf("%s: got outcome %q, want sender bits %v %v", name, o, m0, m1)
				}
			}
		}
	}
}

func TestObserverSeesEveryStep(t *testing.T) {
	p, err := Teleportation(0.7)
	if err != nil {
		t.Fatal(err)
	}
	var steps []int
	_, err = p.RunObserved(&scriptSource{vals: []float64{0.3}}, func(step int, _ Operation, _ *register.State, _ *register.Classical) {
		steps = append(steps, step)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != p.Len() {
		t.Fatalf("got %d observations, want %d", len(steps), p.Len())
	}
	for i, s := range steps {
		if s != i {
			t.Errorf("observation %d: got step %d", i, s)
		}
	}
}

func TestRunOutcomeShape(t *testing.T) {
	p, err := Teleportation(math.Pi)
	if err != nil {
		t.Fatal(err)
	}
	o, err := p.Run(&scriptSource{vals: []float64{0.99, 0.99, 0.5}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := o, Outcome("001"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunZeroMassIsInvariant(t *testing.T) {
	p, err := NewProtocol(1, Measure(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	// A negative draw selects the impossible |1⟩ branch of |0⟩.
	_, err = p.Run(&scriptSource{vals: []float64{-1}})
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("got %v, want ErrInvariant", err)
	}
	if !errors.Is(err, register.ErrZeroMass) {
		t.Errorf("got %v, want it to wrap register.ErrZeroMass", err)
	}
	var ierr *InvariantError
	if !errors.As(err, &ierr) {
		t.Fatalf("got %T, want *InvariantError", err)
	}
	if ierr.Step != 0 || ierr.Op.Kind() != KindMeasure {
		t.Errorf("got step %d op %v, want step 0 measure", ierr.Step, ierr.Op)
	}
	if len(ierr.Amplitudes) != 2 || ierr.Amplitudes[0] != 1 {
		t.Errorf("got amplitudes %v, want untouched |0⟩", ierr.Amplitudes)
	}
	if ierr.Classical != "-" || ierr.Dump == "" {
		t.Errorf("got classical %q dump %q", ierr.Classical, ierr.Dump)
	}
}

func TestPreparationProbability(t *testing.T) {
	for _, theta := range []float64{0, 0.3, math.Pi / 3, math.Pi / 2, 2.5, math.Pi, -1} {
		p, err := Teleportation(theta)
		if err != nil {
			t.Fatal(err)
		}
		_, want := ExpectedProbabilities(theta)
		_, err = p.RunObserved(&scriptSource{vals: []float64{0.5}}, func(step int, _ Operation, s *register.State, _ *register.Classical) {
			if step != 0 {
				return
			}
			got, err := s.ProbabilityOfOne(SenderData)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-want) > 1e-12 {
				t.Errorf("θ=%v: got P(1)=%v, want %v", theta, got, want)
			}
		})
		if err != nil {
			t.Fatalf("θ=%v: %v", theta, err)
		}
	}
}
