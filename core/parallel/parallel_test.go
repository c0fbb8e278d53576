package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	for _, items := range []int{0, 1, 7, 100, 1001} {
		hits := make([]int32, items)

		Parallelize(items, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})

		for i, h := range hits {
			if h != 1 {
				t.Fatalf("items=%d: index %d visited %d times, want 1", items, i, h)
			}
		}
	}
}

func TestParallelizeDisjointSlotWrites(t *testing.T) {
	// Each index writes only its own slot; after the barrier the result
	// must be complete regardless of scheduling.
	const items = 512
	out := make([]int, items)

	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = i * i
		}
	})

	for i, v := range out {
		if v != i*i {
			t.Fatalf("slot %d = %d, want %d", i, v, i*i)
		}
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	tests := []struct {
		name      string
		items     int
		threshold int
	}{
		{"below threshold runs sequentially", 10, 100},
		{"above threshold runs in parallel", 500, 100},
		{"equal to threshold runs sequentially", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var total int64

			ParallelizeWithThreshold(tt.items, tt.threshold, func(start, end int) {
				atomic.AddInt64(&total, int64(end-start))
			})

			if total != int64(tt.items) {
				t.Errorf("processed %d items, want %d", total, tt.items)
			}
		})
	}
}

func BenchmarkParallelize(b *testing.B) {
	work := func(start, end int) {
		s := 0.0
		for i := start; i < end; i++ {
			s += float64(i)
		}
		_ = s
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Parallelize(100000, work)
	}
}
