package linear

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matt-Int/crossval/core/model"
	"github.com/Matt-Int/crossval/dataset"
	"github.com/Matt-Int/crossval/pkg/errors"
)

func TestLinearBackendNumericFeatures(t *testing.T) {
	// y = 3*x0 - 2*x1 + 4, noiseless, so the backend must reproduce the
	// targets exactly.
	n := 50
	rng := rand.New(rand.NewPCG(8, 8))
	x0 := make([]float64, n)
	x1 := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x0[i] = rng.NormFloat64()
		x1[i] = rng.NormFloat64()
		y[i] = 3*x0[i] - 2*x1[i] + 4
	}

	ds, err := dataset.New(
		dataset.NumericColumn("y", y),
		dataset.NumericColumn("x0", x0),
		dataset.NumericColumn("x1", x1),
	)
	require.NoError(t, err)

	fitted, err := Backend().Fit(ds, model.NewConfig("linear", nil))
	require.NoError(t, err)

	preds, err := fitted.Predict(ds)
	require.NoError(t, err)
	require.Len(t, preds, n)
	for i, p := range preds {
		assert.InDelta(t, y[i], p, 1e-8, "record %d", i)
	}
}

func TestLinearBackendCategoricalFeatures(t *testing.T) {
	// One numeric column plus a three-level zone with additive shifts. The
	// dropped-first-level encoding keeps the design matrix full rank, so the
	// noiseless targets are reproduced exactly.
	n := 60
	rng := rand.New(rand.NewPCG(4, 4))
	zones := []string{"north", "south", "east"}
	shift := map[string]float64{"north": 0, "south": 5, "east": -3}

	x := make([]float64, n)
	zone := make([]string, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = rng.NormFloat64()
		zone[i] = zones[i%len(zones)]
		y[i] = 2*x[i] + shift[zone[i]] + 1
	}

	ds, err := dataset.New(
		dataset.NumericColumn("y", y),
		dataset.NumericColumn("x", x),
		dataset.CategoricalColumn("zone", zone),
	)
	require.NoError(t, err)

	fitted, err := Backend().Fit(ds, model.NewConfig("linear", nil))
	require.NoError(t, err)

	preds, err := fitted.Predict(ds)
	require.NoError(t, err)
	for i, p := range preds {
		assert.InDelta(t, y[i], p, 1e-8, "record %d", i)
	}
}

func TestLinearBackendIgnoresUnknownParams(t *testing.T) {
	ds, err := dataset.New(
		dataset.NumericColumn("y", []float64{2, 4, 6, 8}),
		dataset.NumericColumn("x", []float64{1, 2, 3, 4}),
	)
	require.NoError(t, err)

	cfg := model.NewConfig("linear", model.Params{"mtry": 3})
	_, err = Backend().Fit(ds, cfg)
	assert.NoError(t, err)
}

func TestLinearBackendEmptyData(t *testing.T) {
	ds, err := dataset.New(
		dataset.NumericColumn("y", []float64{1, 2}),
		dataset.NumericColumn("x", []float64{1, 2}),
	)
	require.NoError(t, err)
	empty := ds.Subset(nil)

	_, err = Backend().Fit(empty, model.NewConfig("linear", nil))
	assert.ErrorIs(t, err, errors.ErrEmptyDataset)

	fitted, err := Backend().Fit(ds, model.NewConfig("linear", nil))
	require.NoError(t, err)

	_, err = fitted.Predict(empty)
	assert.ErrorIs(t, err, errors.ErrEmptyDataset)
}
