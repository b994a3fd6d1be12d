// Package parallel provides data-parallel loops for backend primitives.
package parallel

import (
	"golang.org/x/sync/errgroup"

	"github.com/born-ml/posemachine/internal/envconfig"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns defaults from the environment (CPM_NUM_THREADS, CPM_MIN_CHUNK).
func DefaultConfig() Config {
	n := max(int(envconfig.NumThreads()), 1)
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: max(int(envconfig.MinChunk()), 1),
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
// Each index is handled by exactly one goroutine, so f may write to
// index-owned memory without synchronization.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < 2*cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				f(i)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail
}

// ForBatch iterates the batch*channels pattern common in CNN primitives.
func ForBatch(batch, channels int, f func(b, c int), cfg Config) {
	n := batch * channels
	For(n, func(k int) {
		f(k/channels, k%channels)
	}, cfg)
}
