package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/Matt-Int/crossval/pkg/errors"
)

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	r, c := scaled.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 2, c)

	// Each column should have mean 0 after scaling.
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += scaled.At(i, j)
		}
		assert.InDelta(t, 0.0, sum/float64(r), 1e-12, "column %d mean", j)
	}

	// Unit variance (population variance, matching Fit).
	for j := 0; j < c; j++ {
		sumSq := 0.0
		for i := 0; i < r; i++ {
			sumSq += scaled.At(i, j) * scaled.At(i, j)
		}
		assert.InDelta(t, 1.0, sumSq/float64(r), 1e-12, "column %d variance", j)
	}
}

func TestStandardScalerRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		5, -1,
		7, 0,
		9, 4,
	})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	restored, err := scaler.InverseTransform(scaled)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, X.At(i, j), restored.At(i, j), 1e-12)
		}
	}
}

func TestStandardScalerZeroVariance(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{2, 2, 2})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	// Constant columns scale by 1 so the output stays finite.
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, scaled.At(i, 0))
	}
}

func TestStandardScalerNotFitted(t *testing.T) {
	scaler := NewStandardScalerDefault()

	_, err := scaler.Transform(mat.NewDense(1, 1, []float64{1}))

	require.Error(t, err)
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))
}

func TestStandardScalerDimensionMismatch(t *testing.T) {
	scaler := NewStandardScalerDefault()
	require.NoError(t, scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))

	_, err := scaler.Transform(mat.NewDense(2, 3, nil))

	require.Error(t, err)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}
