package teleport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/alan-christopher/teleport/teleport/register"
)

// RunShots runs p shots times in sequence, drawing all randomness from src.
func RunShots(p *Protocol, shots int, src register.Source) (Counts, error) {
	if p == nil {
		return nil, errors.New("nil protocol")
	}
	if shots <= 0 {
		return nil, fmt.Errorf("%d shots: %w", shots, ErrInvalidShots)
	}
	counts := make(Counts)
	for i := 0; i < shots; i++ {
		o, err := p.Run(src)
		if err != nil {
			return nil, fmt.Errorf("shot %d: %w", i, err)
		}
		counts.Add(o)
	}
	return counts, nil
}

// SamplerOpts configure a Sampler.
type SamplerOpts struct {
	// Workers is the number of goroutines shots are spread over. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int
	// Seed drives every worker's random source. A Sampler with the same Seed
	// and Workers produces the same Counts.
	Seed int64
	// Logger receives per-worker debug lines. Nil discards them.
	Logger *log.Logger
}

// A Sampler runs shots of a Protocol in parallel.
type Sampler struct {
	workers int
	seed    int64
	logger  *log.Logger
}

// NewSampler validates opts and returns a Sampler.
func NewSampler(opts SamplerOpts) (*Sampler, error) {
	if opts.Workers < 0 {
		return nil, errors.New("worker count must be non-negative")
	}
	s := &Sampler{
		workers: opts.Workers,
		seed:    opts.Seed,
		logger:  opts.Logger,
	}
	if s.workers == 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s, nil
}

// Workers returns the configured worker count.
func (s *Sampler) Workers() int {
	return s.workers
}

// Run executes shots shots of p. Worker w gets shots/W shots, plus one if
// w < shots%W, and its own *rand.Rand seeded from a generator over Seed.
// The first failing shot cancels the batch, as does ctx.
func (s *Sampler) Run(ctx context.Context, p *Protocol, shots int) (Counts, error) {
	if p == nil {
		return nil, errors.New("nil protocol")
	}
	if shots <= 0 {
		return nil, fmt.Errorf("%d shots: %w", shots, ErrInvalidShots)
	}
	workers := min(s.workers, shots)
	parent := rand.New(rand.NewSource(s.seed))
	seeds := make([]int64, workers)
	for w := range seeds {
		seeds[w] = parent.Int63()
	}

	partials := make([]Counts, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		n := shots / workers
		if w < shots%workers {
			n++
		}
		g.Go(func() error {
			s.logger.Debug("sampler worker starting", "worker", w, "shots", n, "seed", seeds[w])
			r := rand.New(rand.NewSource(seeds[w]))
			local := make(Counts)
			for i := 0; i < n; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				o, err := p.Run(r)
				if err != nil {
					return fmt.Errorf("worker %d shot %d: %w", w, i, err)
				}
				local.Add(o)
			}
			partials[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make(Counts)
	for _, part := range partials {
		counts.Merge(part)
	}
	s.logger.Debug("sampler finished", "shots", counts.Total(), "outcomes", len(counts))
	return counts, nil
}
