// Package parallel provides chunked goroutine helpers for CPU-bound loops.
// The evaluation matrix of a cross-validation search, forest training and
// large matrix fills all run through these helpers.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits items across up to NumCPU workers and calls fn with the
// half-open range [start, end) assigned to each worker. It returns after all
// workers finish. Writers must touch disjoint slots; the caller provides any
// aggregation after the barrier.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := min(runtime.NumCPU(), items)

	// Ceiling division so every item lands in exactly one chunk.
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := min(start+chunk, items)

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) sequentially when items is at or
// below threshold, and falls back to Parallelize above it. Small inputs skip
// the goroutine overhead.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}

	Parallelize(items, fn)
}
