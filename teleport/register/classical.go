package register

import (
	"errors"
	"fmt"

	"github.com/alan-christopher/teleport/teleport/bitmap"
)

var (
	// ErrSlotWritten is returned when a classical slot is written twice.
	ErrSlotWritten = errors.New("classical slot already written")
	// ErrSlotUnset is returned when an unwritten classical slot is read.
	ErrSlotUnset = errors.New("classical slot not yet written")
	// ErrSlotRange is returned for slots outside the classical register.
	ErrSlotRange = errors.New("classical slot out of range")
)

// A SlotError reports a misuse of a single classical slot.
type SlotError struct {
	Slot int
	Err  error
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("slot %d: %v", e.Slot, e.Err)
}

func (e *SlotError) Unwrap() error {
	return e.Err
}

// Classical is a write-once classical bit store. Each slot starts unset and
// takes exactly one value.
type Classical struct {
	values  bitmap.Dense
	written bitmap.Dense
}

// NewClassical returns a store with n unset slots.
func NewClassical(n int) *Classical {
	return &Classical{
		values:  bitmap.NewDense(nil, n),
		written: bitmap.NewDense(nil, n),
	}
}

// Size returns the number of slots.
func (c *Classical) Size() int {
	return c.values.Size()
}

// Write records bit in slot.
func (c *Classical) Write(slot int, bit bool) error {
	if slot < 0 || slot >= c.Size() {
		return &SlotError{Slot: slot, Err: ErrSlotRange}
	}
	if c.written.Get(slot) {
		return &SlotError{Slot: slot, Err: ErrSlotWritten}
	}
	c.values.Set(slot, bit)
	c.written.Set(slot, true)
	return nil
}

// Read returns the value in slot and whether it has been written.
func (c *Classical) Read(slot int) (bit, ok bool, err error) {
	if slot < 0 || slot >= c.Size() {
		return false, false, &SlotError{Slot: slot, Err: ErrSlotRange}
	}
	return c.values.Get(slot), c.written.Get(slot), nil
}

// MustRead returns the value in slot, failing with ErrSlotUnset if it has not
// been written.
func (c *Classical) MustRead(slot int) (bool, error) {
	bit, ok, err := c.Read(slot)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, &SlotError{Slot: slot, Err: ErrSlotUnset}
	}
	return bit, nil
}

// Complete reports whether every slot has been written.
func (c *Classical) Complete() bool {
	return bitmap.CountOnes(c.written) == c.Size()
}

// Bits returns the slot values as a bitmap, slot 0 first. Unset slots read
// as 0.
func (c *Classical) Bits() bitmap.Dense {
	return c.values.Clone()
}

// String renders the store slot 0 first, with '-' for unset slots.
func (c *Classical) String() string {
	r := []byte(c.values.String())
	for i := range r {
		if !c.written.Get(i) {
			r[i] = '-'
		}
	}
	return string(r)
}
