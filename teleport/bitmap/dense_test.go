package bitmap

import (
	"reflect"
	"testing"
)

func TestDenseGet(t *testing.T) {
	tcs := []struct {
		name  string
		data  Dense
		edata []bool
	}{
		{"implicit zeros", Dense{len: 3}, []bool{false, false, false}},
		{"aligned", mustDense(t, "10101010"), []bool{true, false, true, false, true, false, true, false}},
		{"multibyte",
			mustDense(t, "00000000 101"),
			[]bool{false, false, false, false, false, false, false, false, true, false, true}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var d []bool
			for i := 0; i < tc.data.Size(); i++ {
				d = append(d, tc.data.Get(i))
			}
			if !reflect.DeepEqual(d, tc.edata) {
				t.Errorf("t.Get() == %v, want %v", d, tc.edata)
			}
		})
	}
}

func TestDenseGetOutOfRange(t *testing.T) {
	d := mustDense(t, "111")
	if d.Get(-1) || d.Get(3) || d.Get(100) {
		t.Errorf("out of range Get() returned true for %v", d)
	}
}

func TestDenseSet(t *testing.T) {
	tcs := []struct {
		name string
		d    Dense
		i    int
		bit  bool
		eout string
	}{
		{"set zero", NewDense(nil, 3), 0, true, "100"},
		{"set last", NewDense(nil, 3), 2, true, "001"},
		{"clear", mustDense(t, "111"), 1, false, "101"},
		{"second byte", NewDense(nil, 10), 9, true, "0000000001"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			tc.d.Set(tc.i, tc.bit)
			if got := tc.d.String(); got != tc.eout {
				t.Errorf("got %q, want %q", got, tc.eout)
			}
		})
	}
}

func TestDenseSetPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Set() past the end did not panic")
		}
	}()
	d := NewDense(nil, 3)
	d.Set(3, true)
}

func TestDenseStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "0", "1", "010", "0000000011", "110110111"} {
		t.Run(s, func(t *testing.T) {
			if got := mustDense(t, s).String(); got != s {
				t.Errorf("FromString(%q).String() == %q", s, got)
			}
		})
	}
}

func TestDenseClone(t *testing.T) {
	d := mustDense(t, "101")
	c := d.Clone()
	c.Set(1, true)
	if d.String() != "101" {
		t.Errorf("mutating clone changed original: %v", d)
	}
	if c.String() != "111" {
		t.Errorf("got clone %v, want 111", c)
	}
}

func TestDenseAppendBit(t *testing.T) {
	var d Dense
	want := "1011001011"
	for _, c := range want {
		d.AppendBit(c == '1')
	}
	if d.Size() != len(want) {
		t.Errorf("got size %d, want %d", d.Size(), len(want))
	}
	if d.SizeBytes() != 2 {
		t.Errorf("got %d bytes, want 2", d.SizeBytes())
	}
	if got := d.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
