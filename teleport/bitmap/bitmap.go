// Package bitmap provides densely-packed arrays of booleans, used for the
// classical side of a simulation: measured bits, written-slot masks and the
// outcome bitstrings read out of them.
package bitmap

import (
	"fmt"
	"math/bits"
)

const byteSize = 8

// Select selects a subset of bits from data, according to which bits are set in
// mask.
func Select(data, mask Dense) Dense {
	var d Dense
	for i := 0; i < data.Size(); i++ {
		if !mask.Get(i) {
			continue
		}
		d.AppendBit(data.Get(i))
	}
	return d
}

// Empty returns an empty, dense bitmap.
func Empty() Dense {
	return Dense{}
}

// FromString converts a string of '1's and '0's to a Dense. The first
// character becomes bit 0. Spaces are ignored.
func FromString(s string) (Dense, error) {
	d := Dense{}
	for _, c := range s {
		switch c {
		case '1':
			d.AppendBit(true)
		case '0':
			d.AppendBit(false)
		case ' ':
			continue
		default:
			return Dense{}, fmt.Errorf("invalid bitmap string rep: %s", s)
		}
	}
	return d, nil
}

// Mask returns a bitmap of length n with exactly the given positions set.
// Positions outside [0, n) are ignored.
func Mask(n int, positions ...int) Dense {
	d := NewDense(nil, n)
	for _, p := range positions {
		if p < 0 || p >= n {
			continue
		}
		d.Set(p, true)
	}
	return d
}

// CountOnes returns the total number of bits set in d.
func CountOnes(d Dense) int {
	var sum int
	for _, b := range d.bits {
		sum += bits.OnesCount8(b)
	}
	return sum
}

// BytesFor returns the number of bytes necessary to hold the provided number of
// bits.
func BytesFor(bits int) int {
	return (bits + byteSize - 1) / byteSize
}
