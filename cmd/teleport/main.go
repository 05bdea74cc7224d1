// teleport samples the three-qubit teleportation protocol for one preparation
// angle and reports the receiver's statistics, the sender's outcome
// breakdown and the fidelity against the predicted distribution.
package main

import (
	"context"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/alan-christopher/teleport/internal/config"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		config.Exitf("teleport: %v", err)
	}

	var cfg Config
	flag.Float64Var(&cfg.Theta, "theta", math.Pi/3, "The RY preparation angle of the teleported qubit, in radians.")
	flag.IntVar(&cfg.Shots, "shots", 1024, "The number of times to run the protocol.")
	flag.Int64Var(&cfg.Seed, "seed", env.Seed, "The sampler seed. Zero draws a fresh one. (TELEPORT_SEED)")
	flag.IntVar(&cfg.Workers, "workers", env.Workers, "Sampler goroutines; zero uses GOMAXPROCS. (TELEPORT_WORKERS)")
	flag.BoolVar(&cfg.Deferred, "deferred", false, "Apply the corrections as quantum controlled gates instead of classically.")
	flag.BoolVar(&cfg.Trace, "trace", false, "Print the state vector at every stage of one extra shot.")
	flag.StringVar(&cfg.Format, "format", env.Format, "Output format: text, json or frames. (TELEPORT_FORMAT)")
	level := flag.String("log-level", env.LogLevel, "Log level for diagnostics on stderr. (TELEPORT_LOG_LEVEL)")
	flag.Parse()

	lvl, err := config.ParseLevel(*level)
	if err != nil {
		config.Exitf("teleport: %v", err)
	}
	cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		Prefix:          "teleport",
		ReportTimestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("teleport: %v", err)
	}
}
