package selection

import (
	"github.com/Matt-Int/crossval/core/model"
	"github.com/Matt-Int/crossval/dataset"
	"github.com/Matt-Int/crossval/pkg/errors"
)

// Experiment bundles a full selection run: train/holdout split,
// cross-validated search over the candidate configurations, final refit and
// holdout evaluation. It is the single entry point for the usual workflow;
// callers needing finer control compose TrainTestSplit, SelectBest and
// Finalize directly.
//
// The one Seed value drives both the splitter and the fold generator, so a
// stored (dataset, Experiment) pair reproduces a run exactly.
type Experiment struct {
	Proportion float64
	Folds      int
	Seed       int64
	Configs    []model.Config
	Backend    model.Backend
}

// Report is the complete outcome of an experiment.
type Report struct {
	TrainSize   int
	HoldoutSize int
	Selection   *Result
	Final       *FinalReport
}

// Run executes the experiment on ds. Experiment fields are validated before
// any data is touched; stage errors propagate unchanged.
func (e *Experiment) Run(ds *dataset.Dataset) (*Report, error) {
	if e.Proportion <= 0 || e.Proportion >= 1 {
		return nil, errors.NewInvalidProportionError(e.Proportion)
	}
	if e.Folds < 2 {
		return nil, errors.NewInvalidFoldCountError(e.Folds, dsLen(ds))
	}
	if len(e.Configs) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyConfigSet, "selection.Experiment.Run")
	}
	if e.Backend == nil {
		return nil, errors.NewValueError("selection.Experiment.Run", "backend must not be nil")
	}

	train, holdout, err := TrainTestSplit(ds, e.Proportion, e.Seed)
	if err != nil {
		return nil, err
	}

	sel, err := SelectBest(train, e.Configs, e.Folds, e.Seed, e.Backend)
	if err != nil {
		return nil, err
	}

	final, err := Finalize(sel.Best, train, holdout, e.Backend)
	if err != nil {
		return nil, err
	}

	return &Report{
		TrainSize:   train.Len(),
		HoldoutSize: holdout.Len(),
		Selection:   sel,
		Final:       final,
	}, nil
}

func dsLen(ds *dataset.Dataset) int {
	if ds == nil {
		return 0
	}
	return ds.Len()
}
