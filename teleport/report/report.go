// Package report renders simulation runs for downstream tools: as
// google.protobuf.Struct messages, as JSON, or as length-prefixed frames on a
// stream.
package report

import (
	"fmt"
	"math"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/alan-christopher/teleport/teleport"
)

// A Run is everything worth reporting about one sampled protocol.
type Run struct {
	Protocol string
	Seed     int64
	Workers  int
	Counts   teleport.Counts
	Analysis teleport.Analysis
}

// Encode converts r to a Struct. Seeds are encoded as strings so they survive
// the float64 number representation.
func Encode(r Run) (*structpb.Struct, error) {
	counts := make(map[string]interface{}, len(r.Counts))
	probs := make(map[string]interface{}, len(r.Counts))
	for _, row := range r.Counts.Sorted() {
		counts[string(row.Outcome)] = row.Count
		probs[string(row.Outcome)] = row.Probability
	}
	sender := make(map[string]interface{})
	for o, n := range r.Counts.Marginal(teleport.SenderData, teleport.SenderPair) {
		sender[string(o)] = n
	}
	a := r.Analysis
	analysis := map[string]interface{}{
		"theta":       a.Theta,
		"shots":       a.Shots,
		"expected_p0": a.ExpectedP0,
		"expected_p1": a.ExpectedP1,
		"measured_p0": a.MeasuredP0,
		"measured_p1": a.MeasuredP1,
		"fidelity":    a.Fidelity,
		"passed":      a.Passed(),
	}
	// JSON has no encoding for infinities, which a zero fidelity produces.
	if d := a.Distance(); !math.IsInf(d, 0) && !math.IsNaN(d) {
		analysis["distance"] = d
	}
	s, err := structpb.NewStruct(map[string]interface{}{
		"protocol":      r.Protocol,
		"seed":          strconv.FormatInt(r.Seed, 10),
		"workers":       r.Workers,
		"counts":        counts,
		"probabilities": probs,
		"sender":        sender,
		"analysis":      analysis,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding run: %w", err)
	}
	return s, nil
}

// Decode reverses Encode. Derived fields (probabilities, sender marginals,
// distance, passed) are recomputed rather than read.
func Decode(s *structpb.Struct) (Run, error) {
	f := s.GetFields()
	var r Run
	r.Protocol = f["protocol"].GetStringValue()
	seed, err := strconv.ParseInt(f["seed"].GetStringValue(), 10, 64)
	if err != nil {
		return Run{}, fmt.Errorf("decoding seed: %w", err)
	}
	r.Seed = seed
	r.Workers = int(f["workers"].GetNumberValue())
	r.Counts = make(teleport.Counts)
	for o, v := range f["counts"].GetStructValue().GetFields() {
		n := v.GetNumberValue()
		if n != math.Trunc(n) || n < 0 {
			return Run{}, fmt.Errorf("decoding count for %q: %v is not a count", o, n)
		}
		r.Counts[teleport.Outcome(o)] = int(n)
	}
	a := f["analysis"].GetStructValue().GetFields()
	r.Analysis = teleport.Analysis{
		Theta:      a["theta"].GetNumberValue(),
		Shots:      int(a["shots"].GetNumberValue()),
		ExpectedP0: a["expected_p0"].GetNumberValue(),
		ExpectedP1: a["expected_p1"].GetNumberValue(),
		MeasuredP0: a["measured_p0"].GetNumberValue(),
		MeasuredP1: a["measured_p1"].GetNumberValue(),
		Fidelity:   a["fidelity"].GetNumberValue(),
	}
	return r, nil
}

// JSON renders r as indented JSON.
func JSON(r Run) ([]byte, error) {
	s, err := Encode(r)
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
}
