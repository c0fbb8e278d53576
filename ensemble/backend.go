package ensemble

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Matt-Int/crossval/core/model"
	"github.com/Matt-Int/crossval/dataset"
	"github.com/Matt-Int/crossval/pkg/errors"
)

// Backend returns the model.Backend for the "forest" family, seeded so that
// repeated searches over the same data reproduce the same forests.
//
// Configuration parameters map onto the forest hyperparameters: "mtry" sets
// the candidate features per split (default max(1, p/3)), "ntree" the number
// of trees (default 100), "min_node" the minimum records per leaf (default
// 5) and "max_depth" the depth limit (default unlimited). Trees split on
// categorical level codes directly, so the forest consumes the dataset
// matrix without one-hot expansion.
func Backend(seed int64) model.Backend {
	return backend{seed: seed}
}

type backend struct {
	seed int64
}

// Fit implements model.Backend.
func (b backend) Fit(train *dataset.Dataset, cfg model.Config) (model.Fitted, error) {
	if train.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyDataset, "ensemble.Backend.Fit")
	}
	if train.NumFeatures() == 0 {
		return nil, errors.NewValueError("ensemble.Backend.Fit", "dataset has no feature columns")
	}

	rf := NewRandomForestRegressor().
		WithNEstimators(cfg.Params.GetInt("ntree", 100)).
		WithMaxFeatures(cfg.Params.GetInt("mtry", 0)).
		WithMinSamplesLeaf(cfg.Params.GetInt("min_node", 5)).
		WithMaxDepth(cfg.Params.GetInt("max_depth", 0)).
		WithRandomState(b.seed)

	if err := rf.Fit(train.Matrix(), train.TargetMatrix()); err != nil {
		return nil, err
	}

	return &fittedForest{model: rf}, nil
}

// fittedForest is a trained forest frozen at fit time.
type fittedForest struct {
	model *RandomForestRegressor
}

// Predict implements model.Fitted.
func (f *fittedForest) Predict(ds *dataset.Dataset) ([]float64, error) {
	if ds.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyDataset, "ensemble.Fitted.Predict")
	}

	raw, err := f.model.Predict(ds.Matrix())
	if err != nil {
		return nil, err
	}

	preds := make([]float64, ds.Len())
	mat.Col(preds, 0, raw)
	return preds, nil
}

// Model returns the underlying forest, for inspection.
func (f *fittedForest) Model() *RandomForestRegressor {
	return f.model
}
