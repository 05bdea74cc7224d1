// bench.go samples the teleportation protocol for each entry in the cartesian
// product of a collection of parameters, e.g. preparation angle and shot
// count, and outputs a CSV of relevant statistics for each combination, e.g.
// measured distribution, fidelity and wall time.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/alan-christopher/teleport/internal/config"
	"github.com/alan-christopher/teleport/teleport"
)

var (
	theta = flag.Float64Slice("theta", []float64{0, 0.5235987755982988, 1.0471975511965976, 1.5707963267948966, 3.141592653589793},
		"The RY preparation angles to teleport, in radians.")
	shots    = flag.IntSlice("shots", []int{1024}, "The number of shots to sample per combination.")
	workers  = flag.IntSlice("workers", []int{0}, "Sampler goroutines; zero uses GOMAXPROCS.")
	deferred = flag.IntSlice("deferred", []int{0}, "1 to apply the corrections as quantum controlled gates, 0 classically.")
	seed     = flag.Int64("seed", 1, "The sampler seed shared by every combination.")
)

var (
	inputs  = []string{"theta", "shots", "workers", "deferred"}
	columns = []string{"Theta", "Shots", "Workers", "Deferred", "ExpectedP0", "MeasuredP0",
		"Fidelity", "Distance", "Band95", "WithinBand", "Passed", "Millis", "Succeeded"}
)

// An Experiment packages together the result of benchmarking a single
// parameterization for easy formatting.
type Experiment struct {
	// Fields corresponding to experiment parameters
	Theta    float64
	Shots    int
	Workers  int
	Deferred bool

	// Fields corresponding to experiment results
	ExpectedP0 float64
	MeasuredP0 float64
	Fidelity   float64
	Distance   float64
	Band95     float64
	WithinBand bool
	Passed     bool
	Millis     int64
	Succeeded  bool
}

func main() {
	flag.Parse()
	fmt.Println(header())
	tmpl := template.Must(template.New("line").Parse(lineTmpl()))
	var args [][]interface{}
	for _, inp := range inputs {
		args = append(args, lookupInput(inp))
	}
	ctx := context.Background()
	applyCartesian(func(args []interface{}) {
		exp := &Experiment{
			Theta:    args[inpIndex("theta")].(float64),
			Shots:    args[inpIndex("shots")].(int),
			Workers:  args[inpIndex("workers")].(int),
			Deferred: args[inpIndex("deferred")].(int) != 0,
		}
		if err := bench(ctx, exp, *seed); err != nil {
			log.Warn("benching failed", "theta", exp.Theta, "shots", exp.Shots, "workers", exp.Workers, "err", err)
		}
		if err := tmpl.Execute(os.Stdout, exp); err != nil {
			config.Exitf("BUG: could not fill in line template: %v", err)
		}
	}, args)
}

func inpIndex(v string) int {
	for i, inp := range inputs {
		if inp == v {
			return i
		}
	}
	return -1
}

func bench(ctx context.Context, exp *Experiment, seed int64) error {
	build := teleport.Teleportation
	if exp.Deferred {
		build = teleport.DeferredTeleportation
	}
	p, err := build(exp.Theta)
	if err != nil {
		return err
	}
	s, err := teleport.NewSampler(teleport.SamplerOpts{Workers: exp.Workers, Seed: seed})
	if err != nil {
		return err
	}
	exp.Workers = s.Workers()
	start := time.Now()
	counts, err := s.Run(ctx, p, exp.Shots)
	exp.Millis = time.Since(start).Milliseconds()
	if err != nil {
		return err
	}
	a, err := teleport.Analyze(exp.Theta, counts)
	if err != nil {
		return err
	}
	exp.ExpectedP0 = a.ExpectedP0
	exp.MeasuredP0 = a.MeasuredP0
	exp.Fidelity = a.Fidelity
	exp.Distance = a.Distance()
	exp.Band95 = a.Band(0.95)
	exp.WithinBand = a.WithinBand(0.95)
	exp.Passed = a.Passed()
	exp.Succeeded = true
	return nil
}

func header() string {
	return strings.Join(columns, ", ")
}

func lineTmpl() string {
	var els []string
	for _, c := range columns {
		els = append(els, "{{."+c+"}}")
	}
	return strings.Join(els, ", ") + "\n"
}

func lookupInput(name string) []interface{} {
	var r []interface{}
	if v, err := flag.CommandLine.GetIntSlice(name); err == nil {
		for _, val := range v {
			r = append(r, val)
		}
	} else if v, err := flag.CommandLine.GetFloat64Slice(name); err == nil {
		for _, val := range v {
			r = append(r, val)
		}
	} else {
		config.Exitf("Unknown type for input %s", name)
	}
	return r
}

// applyCartesian calls f once per element of the cartesian product of args.
func applyCartesian(f func([]interface{}), args [][]interface{}) {
	for i := range args {
		if len(args[i]) == 1 {
			continue
		}
		l := make([][]interface{}, len(args))
		r := make([][]interface{}, len(args))
		copy(l, args)
		copy(r, args)
		l[i] = args[i][:1]
		r[i] = args[i][1:]
		applyCartesian(f, l)
		applyCartesian(f, r)
		return
	}
	x := make([]interface{}, 0, len(args))
	for _, a := range args {
		x = append(x, a[0])
	}
	f(x)
}
