package bitmap

import "strings"

// A Dense is a bitmap where every bit is explicitly represented.
type Dense struct {
	bits []byte
	len  int
}

// NewDense returns a new dense bitmap whose contents are a view of data, and
// whose length is bitLen. If bitLen is longer than data, then trailing zeros
// are added. If bitLen is negative, then it is inferred from data.
func NewDense(data []byte, bitLen int) Dense {
	if bitLen < 0 {
		bitLen = len(data) * byteSize
	}
	r := Dense{
		bits: data,
		len:  bitLen,
	}
	r.allocSpace()
	return r
}

// Get returns the i-th bit in this bitmap. Bits past the end read as false.
func (d Dense) Get(i int) bool {
	if i < 0 || i >= d.len {
		return false
	}
	j, pos := i/byteSize, i%byteSize
	if j >= len(d.bits) {
		return false
	}
	return 0 < d.bits[j]&(1<<pos)
}

// Set assigns the i-th bit. It panics if i is out of range, like a slice
// index would.
func (d *Dense) Set(i int, bit bool) {
	if i < 0 || i >= d.len {
		panic("bitmap: index out of range")
	}
	j, pos := i/byteSize, i%byteSize
	if bit {
		d.bits[j] |= 1 << pos
	} else {
		d.bits[j] &= ^(1 << pos)
	}
}

// Size returns the number of bits in this bitmap.
func (d Dense) Size() int {
	return d.len
}

// SizeBytes returns the number of bytes in this bitmap.
func (d Dense) SizeBytes() int {
	return BytesFor(d.len)
}

// Data returns a view of the bytes underlying this bitmap. Modifying the
// returned slice modifies this bitmap.
func (d Dense) Data() []byte {
	return d.bits
}

// Clone returns a copy of d that shares no memory with it.
func (d Dense) Clone() Dense {
	b := make([]byte, len(d.bits))
	copy(b, d.bits)
	return Dense{bits: b, len: d.len}
}

// String renders d as a string of '0's and '1's, bit 0 first. It is the
// inverse of FromString.
func (d Dense) String() string {
	var sb strings.Builder
	sb.Grow(d.len)
	for i := 0; i < d.len; i++ {
		if d.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// AppendBit adds a single bit to the end of d.
func (d *Dense) AppendBit(bit bool) {
	i, pos := d.len/byteSize, d.len%byteSize
	d.len += 1
	if pos == 0 && i >= len(d.bits) {
		d.bits = append(d.bits, 0)
	}
	if bit {
		d.bits[i] |= 1 << pos
	} else {
		d.bits[i] &= ^(1 << pos)
	}
}

func (d *Dense) allocSpace() {
	for len(d.bits) < d.SizeBytes() {
		d.bits = append(d.bits, 0)
	}
}
