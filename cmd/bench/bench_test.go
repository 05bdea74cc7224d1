package main

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestApplyCartesian(t *testing.T) {
	var got [][]interface{}
	applyCartesian(func(x []interface{}) {
		got = append(got, append([]interface{}(nil), x...))
	}, [][]interface{}{{1, 2}, {"a"}, {0.5, 1.5}})
	want := [][]interface{}{
		{1, "a", 0.5},
		{1, "a", 1.5},
		{2, "a", 0.5},
		{2, "a", 1.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBench(t *testing.T) {
	tcs := []struct {
		name string
		exp  Experiment
		ok   bool
	}{
		{"classical", Experiment{Theta: math.Pi / 2, Shots: 500, Workers: 2}, true},
		{"deferred", Experiment{Theta: math.Pi / 2, Shots: 500, Workers: 2, Deferred: true}, true},
		{"no shots", Experiment{Theta: 1, Shots: 0, Workers: 1}, false},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			exp := tc.exp
			err := bench(context.Background(), &exp, 9)
			if (err == nil) != tc.ok || exp.Succeeded != tc.ok {
				t.Fatalf("got err %v succeeded %v, want ok=%v", err, exp.Succeeded, tc.ok)
			}
			if tc.ok && !exp.Passed {
				t.Errorf("got fidelity %v, want a pass", exp.Fidelity)
			}
		})
	}
}

func TestLineTemplateMatchesHeader(t *testing.T) {
	if got, want := strings.Count(lineTmpl(), "{{"), len(strings.Split(header(), ", ")); got != want {
		t.Errorf("template has %d fields, header has %d", got, want)
	}
}
