package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matt-Int/crossval/core/model"
	"github.com/Matt-Int/crossval/dataset"
	"github.com/Matt-Int/crossval/pkg/errors"
)

func TestFinalizeFitsOnFullTrainingSubset(t *testing.T) {
	ds := sequentialDataset(t, 100)
	train, holdout, err := TrainTestSplit(ds, 0.75, 1)
	require.NoError(t, err)

	var fitSize, predictCalls int
	be := model.BackendFunc(func(tr *dataset.Dataset, _ model.Config) (model.Fitted, error) {
		fitSize = tr.Len()
		return model.FittedFunc(func(ds *dataset.Dataset) ([]float64, error) {
			predictCalls++
			return ds.Targets(), nil
		}), nil
	})

	report, err := Finalize(model.NewConfig("mock", nil), train, holdout, be)
	require.NoError(t, err)

	assert.Equal(t, train.Len(), fitSize, "the final fit must see the entire training subset, not a fold")
	assert.Equal(t, 1, predictCalls, "the holdout subset is predicted exactly once")
	assert.Equal(t, 0.0, report.RMSE)
	assert.Equal(t, holdout.Targets(), report.Actuals)
	assert.Equal(t, holdout.Targets(), report.Predictions, "the mock echoes actuals")
	assert.Equal(t, "mock", report.Config.Family)
	assert.NotNil(t, report.Model, "the selected model is retained for downstream use")
}

func TestFinalizeRMSE(t *testing.T) {
	ds := sequentialDataset(t, 60)
	train, holdout, err := TrainTestSplit(ds, 0.5, 9)
	require.NoError(t, err)

	report, err := Finalize(model.NewConfig("mock", nil), train, holdout, offsetBackend(3))
	require.NoError(t, err)

	assert.InDelta(t, 3.0, report.RMSE, 1e-12)
	assert.Len(t, report.Predictions, holdout.Len())
	assert.Len(t, report.Actuals, holdout.Len())
	for i := range report.Predictions {
		assert.InDelta(t, report.Actuals[i]+3, report.Predictions[i], 1e-12)
	}
}

func TestFinalizeEmptySubsets(t *testing.T) {
	ds := sequentialDataset(t, 10)
	empty := ds.Subset(nil)

	_, err := Finalize(model.NewConfig("mock", nil), empty, ds, offsetBackend(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyDataset))

	_, err = Finalize(model.NewConfig("mock", nil), ds, empty, offsetBackend(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyDataset))

	_, err = Finalize(model.NewConfig("mock", nil), nil, ds, offsetBackend(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyDataset))
}

func TestFinalizeWrapsBackendFailures(t *testing.T) {
	ds := sequentialDataset(t, 20)
	train, holdout, err := TrainTestSplit(ds, 0.5, 2)
	require.NoError(t, err)

	t.Run("fit failure", func(t *testing.T) {
		be := model.BackendFunc(func(_ *dataset.Dataset, _ model.Config) (model.Fitted, error) {
			return nil, errors.New("no convergence")
		})

		_, err := Finalize(model.NewConfig("linear", nil), train, holdout, be)
		require.Error(t, err)

		var fitErr *errors.ModelFitError
		require.True(t, errors.As(err, &fitErr))
		assert.Equal(t, "linear", fitErr.Family)
		assert.Equal(t, -1, fitErr.Fold, "final fit failures carry fold index -1")
		assert.Contains(t, err.Error(), "full training set")
	})

	t.Run("predict failure", func(t *testing.T) {
		be := model.BackendFunc(func(_ *dataset.Dataset, _ model.Config) (model.Fitted, error) {
			return model.FittedFunc(func(_ *dataset.Dataset) ([]float64, error) {
				return nil, errors.New("bad matrix")
			}), nil
		})

		_, err := Finalize(model.NewConfig("linear", nil), train, holdout, be)
		require.Error(t, err)

		var predErr *errors.PredictionError
		require.True(t, errors.As(err, &predErr))
		assert.Equal(t, -1, predErr.Fold)
		assert.Contains(t, err.Error(), "holdout set")
	})
}
