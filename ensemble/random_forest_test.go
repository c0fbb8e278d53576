package ensemble

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/Matt-Int/crossval/pkg/errors"
)

// curvedData draws n rows of three uniform features on [-2, 2] with the
// nonlinear target y = x0^2 + x1 + noise. Trees pick this up where a single
// linear fit cannot.
func curvedData(n int, sigma float64, seed uint64) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(seed, seed))
	X := mat.NewDense(n, 3, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			X.Set(i, j, rng.Float64()*4-2)
		}
		y.Set(i, 0, X.At(i, 0)*X.At(i, 0)+X.At(i, 1)+sigma*rng.NormFloat64())
	}
	return X, y
}

func TestRandomForestDefaults(t *testing.T) {
	rf := NewRandomForestRegressor()

	assert.Equal(t, 100, rf.NEstimators)
	assert.Equal(t, 0, rf.MaxFeatures)
	assert.Equal(t, 5, rf.MinSamplesLeaf)
	assert.Equal(t, 0, rf.MaxDepth)
	assert.Equal(t, int64(42), rf.RandomState)
	assert.False(t, rf.IsFitted())
	assert.Equal(t, 0, rf.NumTrees())
}

func TestRandomForestFitsNonlinearData(t *testing.T) {
	X, y := curvedData(400, 0.1, 3)

	rf := NewRandomForestRegressor().
		WithNEstimators(50).
		WithMaxFeatures(2).
		WithMinSamplesLeaf(2)
	require.NoError(t, rf.Fit(X, y))

	assert.True(t, rf.IsFitted())
	assert.Equal(t, 50, rf.NumTrees())

	score, err := rf.Score(X, y)
	require.NoError(t, err)
	assert.Greater(t, score, 0.85, "training R^2 on smooth nonlinear data")
}

func TestRandomForestGeneralizes(t *testing.T) {
	X, y := curvedData(500, 0.1, 9)
	XTrain := X.Slice(0, 400, 0, 3)
	yTrain := y.Slice(0, 400, 0, 1)
	XTest := X.Slice(400, 500, 0, 3)
	yTest := y.Slice(400, 500, 0, 1)

	rf := NewRandomForestRegressor().
		WithNEstimators(50).
		WithMaxFeatures(2).
		WithMinSamplesLeaf(2)
	require.NoError(t, rf.Fit(XTrain, yTrain))

	score, err := rf.Score(XTest, yTest)
	require.NoError(t, err)
	assert.Greater(t, score, 0.5, "held-out R^2 must beat the mean baseline by a margin")
}

func TestRandomForestDeterministicByState(t *testing.T) {
	X, y := curvedData(200, 0.2, 5)

	fitAndPredict := func(state int64) mat.Matrix {
		rf := NewRandomForestRegressor().
			WithNEstimators(20).
			WithRandomState(state)
		require.NoError(t, rf.Fit(X, y))
		predictions, err := rf.Predict(X)
		require.NoError(t, err)
		return predictions
	}

	first := fitAndPredict(7)
	second := fitAndPredict(7)
	third := fitAndPredict(8)

	assert.True(t, mat.Equal(first, second), "same state must reproduce the forest")
	assert.False(t, mat.Equal(first, third), "different states must grow different forests")
}

func TestRandomForestMtryDefault(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	fitWithColumns := func(p int) *RandomForestRegressor {
		n := 60
		X := mat.NewDense(n, p, nil)
		y := mat.NewDense(n, 1, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < p; j++ {
				X.Set(i, j, rng.NormFloat64())
			}
			y.Set(i, 0, X.At(i, 0)+0.1*rng.NormFloat64())
		}
		rf := NewRandomForestRegressor().WithNEstimators(3)
		require.NoError(t, rf.Fit(X, y))
		return rf
	}

	// max(1, p/3): six columns draw two candidates, two columns still one.
	assert.Equal(t, 2, fitWithColumns(6).trees[0].MaxFeatures)
	assert.Equal(t, 1, fitWithColumns(2).trees[0].MaxFeatures)
}

func TestRandomForestFitValidation(t *testing.T) {
	X := mat.NewDense(10, 2, nil)
	y := mat.NewDense(10, 1, nil)
	for i := 0; i < 10; i++ {
		X.Set(i, 0, float64(i))
		y.Set(i, 0, float64(i))
	}

	tests := []struct {
		name string
		rf   *RandomForestRegressor
		X    mat.Matrix
		y    mat.Matrix
	}{
		{"empty X", NewRandomForestRegressor(), &mat.Dense{}, y},
		{"row mismatch", NewRandomForestRegressor(), X, mat.NewDense(4, 1, nil)},
		{"y not a column", NewRandomForestRegressor(), X, mat.NewDense(10, 2, nil)},
		{"zero trees", NewRandomForestRegressor().WithNEstimators(0), X, y},
		{"mtry beyond columns", NewRandomForestRegressor().WithMaxFeatures(3), X, y},
		{"negative mtry", NewRandomForestRegressor().WithMaxFeatures(-1), X, y},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.rf.Fit(tt.X, tt.y))
		})
	}
}

func TestRandomForestPredictValidation(t *testing.T) {
	rf := NewRandomForestRegressor()

	_, err := rf.Predict(mat.NewDense(1, 3, nil))
	var notFitted *errors.NotFittedError
	assert.ErrorAs(t, err, &notFitted)

	X, y := curvedData(60, 0.1, 2)
	require.NoError(t, rf.WithNEstimators(5).Fit(X, y))

	_, err = rf.Predict(mat.NewDense(2, 5, nil))
	var dimErr *errors.DimensionError
	assert.ErrorAs(t, err, &dimErr)
}

func TestRandomForestGetParams(t *testing.T) {
	rf := NewRandomForestRegressor().
		WithNEstimators(25).
		WithMaxFeatures(2).
		WithMinSamplesLeaf(3).
		WithMaxDepth(8).
		WithRandomState(1126)

	params := rf.GetParams()
	assert.Equal(t, 25, params["n_estimators"])
	assert.Equal(t, 2, params["max_features"])
	assert.Equal(t, 3, params["min_samples_leaf"])
	assert.Equal(t, 8, params["max_depth"])
	assert.Equal(t, int64(1126), params["random_state"])
}
