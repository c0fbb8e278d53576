package selection

import (
	"gonum.org/v1/gonum/stat"

	"github.com/Matt-Int/crossval/core/model"
	"github.com/Matt-Int/crossval/core/parallel"
	"github.com/Matt-Int/crossval/dataset"
	"github.com/Matt-Int/crossval/pkg/errors"
	"github.com/Matt-Int/crossval/pkg/log"
)

// ConfigScore aggregates the per-fold scores of one configuration.
// FoldScores is indexed by fold; Mean is the arithmetic mean the selection
// compares and Std the sample standard deviation across folds.
type ConfigScore struct {
	Config     model.Config
	FoldScores []float64
	Mean       float64
	Std        float64
}

// Result is the outcome of a SelectBest run. Scores preserves the
// declaration order of the candidate configurations.
type Result struct {
	Best   model.Config
	Scores []ConfigScore
	Folds  int
	Seed   int64
}

// Score returns the aggregated score of cfg, or false when cfg was not among
// the evaluated candidates.
func (r *Result) Score(cfg model.Config) (ConfigScore, bool) {
	for _, cs := range r.Scores {
		if cs.Config.Equal(cfg) {
			return cs, true
		}
	}
	return ConfigScore{}, false
}

// SelectBest evaluates every candidate configuration with v-fold
// cross-validation on the training subset and returns the configuration
// with the smallest mean RMSE.
//
// One fold set is built from (v, seed) and shared by every configuration,
// so differences in mean score reflect the configurations rather than
// partition luck. The |configs| x v evaluation matrix runs on parallel
// workers; each cell writes only its own slot, which keeps aggregation
// deterministic regardless of scheduling. Exactly |configs| x v fit and
// predict calls are made.
//
// Ties resolve to the earliest-declared configuration. A failing cell aborts
// the whole selection — a mean over partial fold scores would silently
// mislead it — and the first error in declaration order is returned.
func SelectBest(train *dataset.Dataset, configs []model.Config, v int, seed int64, be model.Backend) (*Result, error) {
	if len(configs) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyConfigSet, "selection.SelectBest")
	}

	folds, err := NewKFold(v, seed).Split(train)
	if err != nil {
		return nil, err
	}

	logger := log.GetLoggerWithName("selection")
	logger.Info("starting model selection",
		log.OperationKey, log.OperationSelect,
		log.SamplesKey, train.Len(),
		log.FoldsKey, v,
		log.SeedKey, seed,
		"configurations", len(configs),
	)

	cells := len(configs) * v
	scores := make([]float64, cells)
	cellErrs := make([]error, cells)

	parallel.Parallelize(cells, func(start, end int) {
		for cell := start; cell < end; cell++ {
			ci, fi := cell/v, cell%v
			score, err := Evaluate(train, folds[fi], configs[ci], be)
			if err != nil {
				cellErrs[cell] = err
				continue
			}
			scores[cell] = score
			logger.Debug("fold evaluated",
				log.OperationKey, log.OperationEvaluate,
				log.ConfigKey, configs[ci].Key(),
				log.FoldKey, fi,
				log.RMSEKey, score,
			)
		}
	})

	// Declaration-order scan after the barrier: the reported failure does
	// not depend on goroutine scheduling.
	for cell, cellErr := range cellErrs {
		if cellErr != nil {
			logger.Error("fold evaluation failed",
				log.ErrAttr(cellErr),
				log.ConfigKey, configs[cell/v].Key(),
				log.FoldKey, cell%v,
			)
			return nil, cellErr
		}
	}

	result := &Result{Scores: make([]ConfigScore, len(configs)), Folds: v, Seed: seed}
	for ci, cfg := range configs {
		foldScores := make([]float64, v)
		copy(foldScores, scores[ci*v:(ci+1)*v])

		cs := ConfigScore{
			Config:     cfg,
			FoldScores: foldScores,
			Mean:       stat.Mean(foldScores, nil),
			Std:        stat.StdDev(foldScores, nil),
		}
		result.Scores[ci] = cs

		logger.Info("configuration evaluated",
			log.ConfigKey, cfg.Key(),
			log.FamilyKey, cfg.Family,
			log.MeanRMSEKey, cs.Mean,
			log.StdRMSEKey, cs.Std,
		)
	}

	// Strictly-smaller comparison keeps the first minimum on ties.
	best := 0
	for ci := 1; ci < len(result.Scores); ci++ {
		if result.Scores[ci].Mean < result.Scores[best].Mean {
			best = ci
		}
	}
	result.Best = configs[best]

	logger.Info("configuration selected",
		log.ConfigKey, result.Best.Key(),
		log.MeanRMSEKey, result.Scores[best].Mean,
	)

	return result, nil
}
