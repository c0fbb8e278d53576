package selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Matt-Int/crossval/core/model"
	"github.com/Matt-Int/crossval/dataset"
	"github.com/Matt-Int/crossval/metrics"
	"github.com/Matt-Int/crossval/pkg/errors"
)

// finalFold marks backend errors raised outside the fold matrix, i.e. during
// the final fit on the full training subset.
const finalFold = -1

// Evaluate fits cfg on the fold's training records, predicts the fold's
// validation records and scores the predictions with RMSE. Neither ds nor
// the fold assignment is mutated; the fitted model is discarded once its
// score is computed.
//
// An empty validation set is rejected before any fitting happens. Backend
// failures — returned errors, panics, prediction/target length mismatches
// and NaN or Inf predictions — surface as ModelFitError or PredictionError
// carrying the configuration family and fold index.
func Evaluate(ds *dataset.Dataset, fold FoldAssignment, cfg model.Config, be model.Backend) (float64, error) {
	if len(fold.ValidateIndices) == 0 {
		return 0, errors.NewEmptyValidationSetError(fold.Index)
	}

	train := ds.Subset(fold.TrainIndices)
	validate := ds.Subset(fold.ValidateIndices)

	fitted, err := fitBackend(be, train, cfg)
	if err != nil {
		return 0, errors.NewModelFitError(cfg.Family, fold.Index, err)
	}

	preds, err := validatedPredictions(fitted, validate, cfg.Family, fold.Index)
	if err != nil {
		return 0, err
	}

	return metrics.RMSE(validate.TargetVec(), mat.NewVecDense(len(preds), preds))
}

// fitBackend calls be.Fit with panic recovery, so one misbehaving backend
// surfaces as an error instead of killing an evaluation worker.
func fitBackend(be model.Backend, train *dataset.Dataset, cfg model.Config) (fitted model.Fitted, err error) {
	defer errors.Recover(&err, "backend fit")
	return be.Fit(train, cfg)
}

// validatedPredictions predicts every record of ds and checks the result is
// usable for scoring: one prediction per record, none of them NaN or Inf.
// Every failure mode comes back as a PredictionError for family and fold.
func validatedPredictions(fitted model.Fitted, ds *dataset.Dataset, family string, fold int) ([]float64, error) {
	preds, err := predictFitted(fitted, ds)
	if err != nil {
		return nil, errors.NewPredictionError(family, fold, err)
	}
	if len(preds) != ds.Len() {
		return nil, errors.NewPredictionError(family, fold,
			errors.NewDimensionError("predictions", ds.Len(), len(preds), 0))
	}
	if err := errors.CheckNumericalStability("predictions", preds); err != nil {
		return nil, errors.NewPredictionError(family, fold, err)
	}
	return preds, nil
}

// predictFitted calls fitted.Predict with panic recovery.
func predictFitted(fitted model.Fitted, ds *dataset.Dataset) (preds []float64, err error) {
	defer errors.Recover(&err, "fitted predict")
	return fitted.Predict(ds)
}
