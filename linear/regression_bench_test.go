package linear

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// benchData builds a noisy linear system y = Xw + 1 with w_j = 0.5(j+1).
func benchData(rows, cols int) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(7, 7))

	X := mat.NewDense(rows, cols, nil)
	y := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		sum := 1.0
		for j := 0; j < cols; j++ {
			v := rng.Float64()*2 - 1
			X.Set(i, j, v)
			sum += v * 0.5 * float64(j+1)
		}
		y.Set(i, 0, sum+(rng.Float64()-0.5)*0.1)
	}
	return X, y
}

func BenchmarkLinearRegressionFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"500x10", 500, 10},   // below the parallel copy threshold
		{"2000x10", 2000, 10}, // above it
		{"10000x20", 10000, 20},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := benchData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lr := NewLinearRegression()
				if err := lr.Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// Predict dominates the per-fold cost once a model is fitted, so it gets
// its own benchmark at validation-fold-like sizes.
func BenchmarkLinearRegressionPredict(b *testing.B) {
	X, y := benchData(5000, 20)
	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		b.Fatal(err)
	}

	sizes := []struct {
		name string
		rows int
	}{
		{"200x20", 200},
		{"1000x20", 1000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			Xv := X.Slice(0, size.rows, 0, 20)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := lr.Predict(Xv); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
