// Package parallel provides the worker-splitting helper the CPU kernels
// use for large tensors.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how loops are split across goroutines.
type Config struct {
	Enabled      bool // Whether to run loops in parallel at all.
	NumWorkers   int  // Goroutines to split the range across.
	MinChunkSize int  // Smallest range worth parallelizing.
}

// DefaultConfig sizes the pool from the CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1024,
	}
}

// For runs f(i) for i in [0, n), splitting the range across workers when
// it is large enough to amortize the goroutine overhead. The chunks are
// disjoint, so f may write to per-index output without synchronization.
func For(n int, cfg Config, f func(i int)) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
