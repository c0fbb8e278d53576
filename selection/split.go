// Package selection implements cross-validated model selection for
// regression: train/holdout splitting, v-fold partitioning, per-fold
// fit/predict/RMSE evaluation, mean-score aggregation and final holdout
// evaluation.
//
// The package is the reproducibility boundary of a selection run. Every
// operation that shuffles records takes an explicit seed and builds a fresh
// generator from it, so identical inputs always produce identical partitions,
// scores and winners — there is no shared random state between stages.
//
// Model families stay behind the model.Backend capability: the search fits
// and predicts, nothing more. Validation errors (bad proportion, bad fold
// count, empty inputs) are raised before any work starts; backend failures
// are wrapped with the configuration family and fold index that produced
// them and abort the remaining evaluation matrix.
package selection

import (
	"math"
	"math/rand/v2"

	"github.com/Matt-Int/crossval/dataset"
	"github.com/Matt-Int/crossval/pkg/errors"
	"github.com/Matt-Int/crossval/pkg/log"
)

// TrainTestSplit partitions ds into disjoint training and holdout subsets.
//
// Record indices are shuffled by a PCG generator seeded from seed, the first
// round(proportion * n) of them become the training subset and the rest the
// holdout subset. Rounding is half-up, so splitting 5 records at 0.75 yields
// 4 training records. Together the subsets cover ds exactly: no record is
// duplicated or dropped.
//
// The same (dataset, proportion, seed) always produces the identical
// partition. When rounding leaves either side empty the call still succeeds
// but emits a DegenerateSplitWarning through the pkg/errors warning hook.
func TrainTestSplit(ds *dataset.Dataset, proportion float64, seed int64) (train, holdout *dataset.Dataset, err error) {
	if proportion <= 0 || proportion >= 1 {
		return nil, nil, errors.NewInvalidProportionError(proportion)
	}
	if ds == nil || ds.Len() == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyDataset, "selection.TrainTestSplit")
	}

	n := ds.Len()
	indices := shuffledIndices(n, seed)

	// Round half up: floor(p*n + 0.5).
	trainSize := int(math.Floor(proportion*float64(n) + 0.5))

	switch trainSize {
	case 0:
		errors.Warn(errors.NewDegenerateSplitWarning(proportion, n, "train"))
	case n:
		errors.Warn(errors.NewDegenerateSplitWarning(proportion, n, "holdout"))
	}

	train = ds.Subset(indices[:trainSize])
	holdout = ds.Subset(indices[trainSize:])

	log.GetLoggerWithName("selection").Debug("dataset split",
		log.OperationKey, log.OperationSplit,
		log.SamplesKey, n,
		log.ProportionKey, proportion,
		log.SeedKey, seed,
		log.TrainSizeKey, train.Len(),
		log.HoldoutSizeKey, holdout.Len(),
	)

	return train, holdout, nil
}

// shuffledIndices returns the indices 0..n-1 shuffled by a fresh PCG
// generator built from seed. The splitter and the fold generator share this
// source, so one seed value reproduces a whole selection run.
func shuffledIndices(n int, seed int64) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	return indices
}
