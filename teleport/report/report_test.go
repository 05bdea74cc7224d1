package report

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"net"
	"reflect"
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/alan-christopher/teleport/teleport"
)

func mustRun(t *testing.T) Run {
	t.Helper()
	counts := teleport.Counts{"000": 60, "011": 10, "101": 15, "110": 15}
	a, err := teleport.Analyze(math.Pi/3, counts)
	if err != nil {
		t.Fatal(err)
	}
	return Run{Protocol: "teleportation", Seed: 1<<62 + 1, Workers: 4, Counts: counts, Analysis: a}
}

func TestEncodeDecode(t *testing.T) {
	want := mustRun(t)
	s, err := Encode(want)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(s)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	sender := s.GetFields()["sender"].GetStructValue().AsMap()
	wantSender := map[string]interface{}{"00": 60.0, "01": 10.0, "10": 15.0, "11": 15.0}
	if !reflect.DeepEqual(sender, wantSender) {
		t.Errorf("sender: got %v, want %v", sender, wantSender)
	}
}

func TestDecodeRejectsFractionalCount(t *testing.T) {
	s, err := structpb.NewStruct(map[string]interface{}{
		"seed":   "1",
		"counts": map[string]interface{}{"000": 1.5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(s); err == nil {
		t.Error("got nil error, want a rejected count")
	}
}

func TestJSON(t *testing.T) {
	b, err := JSON(mustRun(t))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Protocol string
		Seed     string
		Analysis struct {
			Passed bool
		}
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, b)
	}
	if got.Protocol != "teleportation" || got.Seed != "4611686018427387905" || !got.Analysis.Passed {
		t.Errorf("got %+v", got)
	}
}

func TestJSONZeroFidelity(t *testing.T) {
	a, err := teleport.Analyze(0, teleport.Counts{"001": 5})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := JSON(Run{Counts: teleport.Counts{"001": 5}, Analysis: a}); err != nil {
		t.Errorf("got %v, want infinite distance to be omitted", err)
	}
}

func TestSendReceive(t *testing.T) {
	l, r := net.Pipe()
	writer, reader := NewFramer(l), NewFramer(r)
	want := mustRun(t)
	msg, err := Encode(want)
	if err != nil {
		t.Fatal(err)
	}
	msg2 := new(structpb.Struct)

	// net.Pipe() doesn't buffer, so both ends run asynchronously.
	wErr := make(chan error, 1)
	rErr := make(chan error, 1)
	go func() { wErr <- writer.WriteRun(want) }()
	go func() { rErr <- reader.Read(msg2) }()

	if err := <-wErr; err != nil {
		t.Fatalf("error writing message: %v", err)
	}
	if err := <-rErr; err != nil {
		t.Fatalf("error reading message: %v", err)
	}
	if !proto.Equal(msg2, msg) {
		t.Errorf("Message mangled in transit: got %v, want %v", msg2, msg)
	}
}

func TestReadFrames(t *testing.T) {
	var buf bytes.Buffer
	f := NewFramer(&buf)
	for _, p := range []string{"a", "b"} {
		s, err := structpb.NewStruct(map[string]interface{}{"protocol": p})
		if err != nil {
			t.Fatal(err)
		}
		if err := f.Write(s); err != nil {
			t.Fatal(err)
		}
	}
	for _, want := range []string{"a", "b"} {
		got := new(structpb.Struct)
		if err := f.Read(got); err != nil {
			t.Fatal(err)
		}
		if p := got.GetFields()["protocol"].GetStringValue(); p != want {
			t.Errorf("got %q, want %q", p, want)
		}
	}
	if err := f.Read(new(structpb.Struct)); err != io.EOF {
		t.Errorf("got %v, want io.EOF", err)
	}
}

func TestReadRejectsBadLength(t *testing.T) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, int32(-5)); err != nil {
		t.Fatal(err)
	}
	if err := NewFramer(&buf).Read(new(structpb.Struct)); err == nil {
		t.Error("got nil error, want invalid frame length")
	}
}

func TestFrameWriterCannotRead(t *testing.T) {
	var buf bytes.Buffer
	f := NewFrameWriter(&buf)
	if err := f.WriteRun(mustRun(t)); err != nil {
		t.Fatal(err)
	}
	if err := f.Read(new(structpb.Struct)); err == nil {
		t.Error("got nil error reading from a write-only framer")
	}
	got := new(structpb.Struct)
	if err := NewFramer(&buf).Read(got); err != nil {
		t.Fatal(err)
	}
	if p := got.GetFields()["protocol"].GetStringValue(); p != "teleportation" {
		t.Errorf("got protocol %q, want teleportation", p)
	}
}
