package report

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"
)

// MaxFrameBytes bounds the payload a Framer will accept.
const MaxFrameBytes = 1 << 24

// A Framer reads and writes framed protocol buffers on a stream. The frame is
// trivial: little-endian int32 length | proto.
type Framer struct {
	r io.Reader
	w io.Writer
}

// NewFramer returns a Framer over rw.
func NewFramer(rw io.ReadWriter) *Framer {
	return &Framer{r: rw, w: rw}
}

// NewFrameWriter returns a write-only Framer.
func NewFrameWriter(w io.Writer) *Framer {
	return &Framer{w: w}
}

func (f *Framer) Write(m proto.Message) error {
	marshalled, err := proto.Marshal(m)
	if err != nil {
		return err
	}
	if len(marshalled) > MaxFrameBytes {
		return fmt.Errorf("frame of %d bytes exceeds %d", len(marshalled), MaxFrameBytes)
	}
	if err := binary.Write(f.w, binary.LittleEndian, int32(len(marshalled))); err != nil {
		return err
	}
	if _, err := f.w.Write(marshalled); err != nil {
		return err
	}
	return nil
}

// Read fills m from the next frame. It returns io.EOF if the stream ends
// cleanly between frames.
func (f *Framer) Read(m proto.Message) error {
	if f.r == nil {
		return errors.New("framer is write-only")
	}
	var mLen int32
	if err := binary.Read(f.r, binary.LittleEndian, &mLen); err != nil {
		return err
	}
	if mLen < 0 || mLen > MaxFrameBytes {
		return fmt.Errorf("invalid frame length %d", mLen)
	}
	marshalled := make([]byte, mLen)
	if _, err := io.ReadFull(f.r, marshalled); err != nil {
		return err
	}
	return proto.Unmarshal(marshalled, m)
}

// WriteRun encodes r and writes it as one frame.
func (f *Framer) WriteRun(r Run) error {
	s, err := Encode(r)
	if err != nil {
		return err
	}
	return f.Write(s)
}
