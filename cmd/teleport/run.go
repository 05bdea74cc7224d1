package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/alan-christopher/teleport/internal/config"
	"github.com/alan-christopher/teleport/internal/random"
	"github.com/alan-christopher/teleport/teleport"
	"github.com/alan-christopher/teleport/teleport/register"
	"github.com/alan-christopher/teleport/teleport/report"
)

// Config parameterizes one run of the command.
type Config struct {
	Theta    float64
	Shots    int
	Seed     int64
	Workers  int
	Deferred bool
	Trace    bool
	Format   string
	Logger   *log.Logger
}

// Run samples the configured protocol and writes the result to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if err := config.ValidateFormat(cfg.Format); err != nil {
		return err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed, err := random.Resolve(cfg.Seed)
	if err != nil {
		return err
	}

	name, build := "teleportation", teleport.Teleportation
	if cfg.Deferred {
		name, build = "deferred", teleport.DeferredTeleportation
	}
	p, err := build(cfg.Theta)
	if err != nil {
		return err
	}
	sampler, err := teleport.NewSampler(teleport.SamplerOpts{
		Workers: cfg.Workers,
		Seed:    seed,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	logger.Info("sampling", "protocol", name, "theta", cfg.Theta, "shots", cfg.Shots, "seed", seed, "workers", sampler.Workers())
	counts, err := sampler.Run(ctx, p, cfg.Shots)
	if err != nil {
		return fmt.Errorf("sampling %s: %w", name, err)
	}
	a, err := teleport.Analyze(cfg.Theta, counts)
	if err != nil {
		return err
	}
	if !a.Passed() {
		logger.Warn("fidelity below threshold", "fidelity", a.Fidelity, "threshold", teleport.FidelityThreshold)
	}

	run := report.Run{Protocol: name, Seed: seed, Workers: sampler.Workers(), Counts: counts, Analysis: a}
	switch cfg.Format {
	case config.FormatJSON:
		b, err := report.JSON(run)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", b)
		return err
	case config.FormatFrames:
		return report.NewFrameWriter(out).WriteRun(run)
	}
	writeText(out, run)
	if cfg.Trace {
		return writeTrace(out, p, seed)
	}
	return nil
}

func writeText(out io.Writer, r report.Run) {
	a := r.Analysis
	fmt.Fprintf(out, "Teleporting RY(%.4f)|0⟩ with %s, %d shots (seed %d, %d workers)\n\n",
		a.Theta, r.Protocol, a.Shots, r.Seed, r.Workers)
	fmt.Fprintln(out, "outcome  count  probability")
	for _, row := range r.Counts.Sorted() {
		fmt.Fprintf(out, "%-7s  %5d  %.4f\n", row.Outcome, row.Count, row.Probability)
	}
	fmt.Fprintln(out, "\nsender  count")
	for _, row := range r.Counts.Marginal(teleport.SenderData, teleport.SenderPair).Sorted() {
		fmt.Fprintf(out, "%-6s  %5d\n", row.Outcome, row.Count)
	}
	verdict := "PASS"
	if !a.Passed() {
		verdict = "FAIL"
	}
	fmt.Fprintf(out, "\nreceiver  expected P(0)=%.4f P(1)=%.4f  measured P(0)=%.4f P(1)=%.4f\n",
		a.ExpectedP0, a.ExpectedP1, a.MeasuredP0, a.MeasuredP1)
	fmt.Fprintf(out, "fidelity  %.4f (distance %.4f, 95%% band ±%.4f): %s\n",
		a.Fidelity, a.Distance(), a.Band(0.95), verdict)
	b := teleport.ExpectedBloch(a.Theta)
	fmt.Fprintf(out, "bloch     expected (%.3f, %.3f, %.3f)\n", b.X, b.Y, b.Z)
}

// writeTrace replays one shot and dumps the state at every barrier and after
// the last operation.
func writeTrace(out io.Writer, p *teleport.Protocol, seed int64) error {
	fmt.Fprintln(out, "\ntrace")
	last := p.Len() - 1
	o, err := p.RunObserved(rand.New(rand.NewSource(seed)), func(step int, op teleport.Operation, s *register.State, c *register.Classical) {
		if op.Kind() != teleport.KindBarrier && step != last {
			return
		}
		fmt.Fprintf(out, "step %d, classical %s\n%s", step, c, s)
		if b, err := s.Bloch(teleport.Receiver); err == nil {
			fmt.Fprintf(out, "receiver bloch (%.3f, %.3f, %.3f)\n", b.X, b.Y, b.Z)
		}
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "outcome %s\n", o)
	return err
}
