package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Matt-Int/crossval/core/model"
	"github.com/Matt-Int/crossval/dataset"
	"github.com/Matt-Int/crossval/pkg/errors"
	"github.com/Matt-Int/crossval/preprocessing"
)

// Backend returns the model.Backend for the "linear" family.
//
// Fit one-hot expands categorical feature columns with an encoder fitted on
// the training data only, then solves the normal equations. The encoder drops
// each first level, otherwise the indicator block plus the intercept would
// make the design matrix singular. The family takes no hyperparameters;
// unknown parameters on the configuration are ignored.
func Backend() model.Backend {
	return backend{}
}

type backend struct{}

// Fit implements model.Backend.
func (backend) Fit(train *dataset.Dataset, _ model.Config) (model.Fitted, error) {
	if train.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyDataset, "linear.Backend.Fit")
	}
	if train.NumFeatures() == 0 {
		return nil, errors.NewValueError("linear.Backend.Fit", "dataset has no feature columns")
	}

	encoder := preprocessing.NewOneHotEncoderDropFirst(train.CategoricalIndices())
	X, err := encoder.FitTransform(train.Matrix())
	if err != nil {
		return nil, err
	}

	lr := NewLinearRegression()
	if err := lr.Fit(X, train.TargetMatrix()); err != nil {
		return nil, err
	}

	return &fittedLinear{model: lr, encoder: encoder}, nil
}

// fittedLinear is a trained linear model plus the transformer that shaped
// its design matrix. Both are frozen at fit time.
type fittedLinear struct {
	model   *LinearRegression
	encoder model.Transformer
}

// Predict implements model.Fitted.
func (f *fittedLinear) Predict(ds *dataset.Dataset) ([]float64, error) {
	if ds.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyDataset, "linear.Fitted.Predict")
	}

	X, err := f.encoder.Transform(ds.Matrix())
	if err != nil {
		return nil, err
	}

	raw, err := f.model.Predict(X)
	if err != nil {
		return nil, err
	}

	preds := make([]float64, ds.Len())
	mat.Col(preds, 0, raw)
	return preds, nil
}

// Model returns the underlying regression model, for weight inspection.
func (f *fittedLinear) Model() *LinearRegression {
	return f.model
}
