package teleport

import (
	"sort"

	"github.com/alan-christopher/teleport/teleport/bitmap"
)

// An Outcome is the classical read-out of one shot: character k is '0' or '1'
// for slot k.
type Outcome string

// Bit returns the value of slot. Slots past the end read as 0.
func (o Outcome) Bit(slot int) bool {
	return slot >= 0 && slot < len(o) && o[slot] == '1'
}

// Bits converts o to a bitmap, slot 0 first.
func (o Outcome) Bits() (bitmap.Dense, error) {
	return bitmap.FromString(string(o))
}

// Counts maps each observed Outcome to the number of shots that produced it.
type Counts map[Outcome]int

// An OutcomeCount is one row of Counts.Sorted.
type OutcomeCount struct {
	Outcome     Outcome
	Count       int
	Probability float64
}

// Add records one shot.
func (c Counts) Add(o Outcome) {
	c[o]++
}

// Merge adds every count in o to c.
func (c Counts) Merge(o Counts) {
	for k, v := range o {
		c[k] += v
	}
}

// Total returns the number of shots recorded.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Clone returns an independent copy of c.
func (c Counts) Clone() Counts {
	r := make(Counts, len(c))
	for k, v := range c {
		r[k] = v
	}
	return r
}

// Probability returns the empirical frequency of o, or 0 for empty Counts.
func (c Counts) Probability(o Outcome) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c[o]) / float64(total)
}

// Sorted lists the observed outcomes in lexical order of their bitstrings.
func (c Counts) Sorted() []OutcomeCount {
	total := c.Total()
	rows := make([]OutcomeCount, 0, len(c))
	for o, n := range c {
		rows = append(rows, OutcomeCount{Outcome: o, Count: n, Probability: float64(n) / float64(total)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Outcome < rows[j].Outcome })
	return rows
}

// Marginal projects every outcome onto slots, summing counts that agree on
// them. Keys keep the selected slots in increasing slot order.
func (c Counts) Marginal(slots ...int) Counts {
	r := make(Counts)
	for o, n := range c {
		d, err := o.Bits()
		if err != nil {
			continue
		}
		key := bitmap.Select(d, bitmap.Mask(d.Size(), slots...))
		r[Outcome(key.String())] += n
	}
	return r
}

// SlotProbabilities returns the empirical probability that slot read 0 and 1.
func (c Counts) SlotProbabilities(slot int) (p0, p1 float64) {
	total := c.Total()
	if total == 0 {
		return 0, 0
	}
	ones := 0
	for o, n := range c {
		if o.Bit(slot) {
			ones += n
		}
	}
	p1 = float64(ones) / float64(total)
	return 1 - p1, p1
}
