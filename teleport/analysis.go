package teleport

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/alan-christopher/teleport/teleport/register"
)

// FidelityThreshold is the score at or above which a run is reported as a
// successful teleportation.
const FidelityThreshold = 0.95

// Analysis compares the receiver's measured distribution with the one
// predicted for RY(Theta)|0⟩.
type Analysis struct {
	Theta      float64
	Shots      int
	ExpectedP0 float64
	ExpectedP1 float64
	MeasuredP0 float64
	MeasuredP1 float64
	// Fidelity is the Bhattacharyya coefficient of the expected and measured
	// distributions.
	Fidelity float64
}

// ExpectedProbabilities returns cos²(θ/2) and sin²(θ/2).
func ExpectedProbabilities(theta float64) (p0, p1 float64) {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return c * c, s * s
}

// ExpectedBloch returns the Bloch vector of RY(θ)|0⟩.
func ExpectedBloch(theta float64) register.Bloch {
	return register.Bloch{X: math.Sin(theta), Y: 0, Z: math.Cos(theta)}
}

// Analyze scores counts against theta using the Receiver slot.
func Analyze(theta float64, counts Counts) (Analysis, error) {
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return Analysis{}, fmt.Errorf("analyze(%v): %w", theta, ErrInvalidAngle)
	}
	shots := counts.Total()
	if shots <= 0 {
		return Analysis{}, fmt.Errorf("analyze: empty counts: %w", ErrInvalidShots)
	}
	a := Analysis{Theta: theta, Shots: shots}
	a.ExpectedP0, a.ExpectedP1 = ExpectedProbabilities(theta)
	a.MeasuredP0, a.MeasuredP1 = counts.SlotProbabilities(Receiver)
	a.Fidelity = math.Sqrt(a.ExpectedP0*a.MeasuredP0) + math.Sqrt(a.ExpectedP1*a.MeasuredP1)
	return a, nil
}

// Passed reports whether Fidelity reaches FidelityThreshold.
func (a Analysis) Passed() bool {
	return a.Fidelity >= FidelityThreshold
}

// Distance returns the Bhattacharyya distance, -ln(Fidelity).
func (a Analysis) Distance() float64 {
	return stat.Bhattacharyya(
		[]float64{a.ExpectedP0, a.ExpectedP1},
		[]float64{a.MeasuredP0, a.MeasuredP1},
	)
}

// Band returns the half-width of the normal-approximation interval around
// ExpectedP0 that MeasuredP0 falls in with the given confidence.
func (a Analysis) Band(confidence float64) float64 {
	if a.Shots <= 0 || confidence <= 0 || confidence >= 1 {
		return 0
	}
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.5 + confidence/2)
	return z * math.Sqrt(a.ExpectedP0*a.ExpectedP1/float64(a.Shots))
}

// WithinBand reports whether MeasuredP0 lies inside Band(confidence).
func (a Analysis) WithinBand(confidence float64) bool {
	return math.Abs(a.MeasuredP0-a.ExpectedP0) <= a.Band(confidence)+1e-12
}
