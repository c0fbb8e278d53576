package selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Matt-Int/crossval/core/model"
	"github.com/Matt-Int/crossval/dataset"
	"github.com/Matt-Int/crossval/metrics"
	"github.com/Matt-Int/crossval/pkg/errors"
	"github.com/Matt-Int/crossval/pkg/log"
)

// FinalReport carries the artifacts of the final holdout evaluation: the
// model refitted on the entire training subset, its holdout RMSE, and the
// prediction/actual arrays a reporting sink consumes.
type FinalReport struct {
	Config      model.Config
	Model       model.Fitted
	RMSE        float64
	Predictions []float64
	Actuals     []float64
}

// Finalize refits best on the entire training subset — not per fold — and
// evaluates it exactly once on the holdout subset. This is the only stage
// that reads the holdout data; everything upstream works on folds of the
// training subset, which is what makes the reported RMSE an unbiased
// estimate.
//
// Backend failures surface as ModelFitError or PredictionError with fold
// index -1. An empty subset on either side is an error here even though the
// splitter tolerates producing one.
func Finalize(best model.Config, train, holdout *dataset.Dataset, be model.Backend) (*FinalReport, error) {
	if train == nil || train.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyDataset, "selection.Finalize: train subset")
	}
	if holdout == nil || holdout.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyDataset, "selection.Finalize: holdout subset")
	}

	fitted, err := fitBackend(be, train, best)
	if err != nil {
		return nil, errors.NewModelFitError(best.Family, finalFold, err)
	}

	preds, err := validatedPredictions(fitted, holdout, best.Family, finalFold)
	if err != nil {
		return nil, err
	}

	actuals := holdout.Targets()
	rmse, err := metrics.RMSE(mat.NewVecDense(len(actuals), actuals), mat.NewVecDense(len(preds), preds))
	if err != nil {
		return nil, err
	}

	log.GetLoggerWithName("selection").Info("holdout evaluated",
		log.OperationKey, log.OperationFinalize,
		log.ConfigKey, best.Key(),
		log.TrainSizeKey, train.Len(),
		log.HoldoutSizeKey, holdout.Len(),
		log.RMSEKey, rmse,
	)

	return &FinalReport{
		Config:      best,
		Model:       fitted,
		RMSE:        rmse,
		Predictions: preds,
		Actuals:     actuals,
	}, nil
}
