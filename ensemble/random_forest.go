// Package ensemble implements bagged tree ensembles. RandomForestRegressor
// trains CART trees on bootstrap resamples with per-split feature
// subsampling and averages their predictions; Backend exposes the forest to
// the model-selection search as the "forest" family.
package ensemble

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/Matt-Int/crossval/core/model"
	"github.com/Matt-Int/crossval/core/parallel"
	"github.com/Matt-Int/crossval/metrics"
	"github.com/Matt-Int/crossval/pkg/errors"
	"github.com/Matt-Int/crossval/tree"
)

// Sequential cutoff for prediction row loops.
const predictParallelThreshold = 1000

// RandomForestRegressor is a bagged ensemble of regression trees. Each tree
// is grown on a bootstrap resample of the training data, drawing MaxFeatures
// candidate columns at every split; the forest predicts the mean of its
// trees.
//
// All randomness derives from RandomState and the tree index, so fitting the
// same data with the same state reproduces the forest exactly no matter how
// the training work is scheduled.
type RandomForestRegressor struct {
	model.BaseEstimator

	// NEstimators is the number of trees.
	NEstimators int
	// MaxFeatures is the number of candidate features per split; 0 selects
	// the regression default of max(1, p/3) for p feature columns.
	MaxFeatures int
	// MinSamplesLeaf is the minimum number of records per leaf.
	MinSamplesLeaf int
	// MaxDepth limits tree depth; 0 means unlimited.
	MaxDepth int
	// RandomState seeds the bootstrap and feature draws.
	RandomState int64

	trees     []*tree.DecisionTreeRegressor
	nFeatures int
}

// NewRandomForestRegressor creates a forest with the usual regression
// defaults: 100 trees, max(1, p/3) candidate features per split, at least 5
// records per leaf and unbounded depth.
func NewRandomForestRegressor() *RandomForestRegressor {
	return &RandomForestRegressor{
		NEstimators:    100,
		MaxFeatures:    0,
		MinSamplesLeaf: 5,
		MaxDepth:       0,
		RandomState:    42,
	}
}

// WithNEstimators sets the number of trees.
func (rf *RandomForestRegressor) WithNEstimators(n int) *RandomForestRegressor {
	rf.NEstimators = n
	return rf
}

// WithMaxFeatures sets the number of candidate features per split.
func (rf *RandomForestRegressor) WithMaxFeatures(m int) *RandomForestRegressor {
	rf.MaxFeatures = m
	return rf
}

// WithMinSamplesLeaf sets the minimum number of records per leaf.
func (rf *RandomForestRegressor) WithMinSamplesLeaf(n int) *RandomForestRegressor {
	rf.MinSamplesLeaf = n
	return rf
}

// WithMaxDepth limits the depth of every tree.
func (rf *RandomForestRegressor) WithMaxDepth(depth int) *RandomForestRegressor {
	rf.MaxDepth = depth
	return rf
}

// WithRandomState seeds the bootstrap and feature draws.
func (rf *RandomForestRegressor) WithRandomState(seed int64) *RandomForestRegressor {
	rf.RandomState = seed
	return rf
}

// Fit trains the forest on X and the column vector y. Trees are grown in
// parallel; each takes its randomness from a generator keyed on RandomState
// and its own index, so the result is independent of scheduling.
func (rf *RandomForestRegressor) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "RandomForestRegressor.Fit")

	r, c := X.Dims()
	yr, yc := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("RandomForestRegressor.Fit", "empty data", errors.ErrEmptyDataset)
	}
	if yr != r {
		return errors.NewDimensionError("RandomForestRegressor.Fit", r, yr, 0)
	}
	if yc != 1 {
		return errors.NewValueError("RandomForestRegressor.Fit", "y must be a column vector")
	}
	if rf.NEstimators < 1 {
		return errors.NewValueError("RandomForestRegressor.Fit",
			fmt.Sprintf("number of trees must be at least 1, got %d", rf.NEstimators))
	}
	if rf.MaxFeatures < 0 || rf.MaxFeatures > c {
		return errors.NewValueError("RandomForestRegressor.Fit",
			fmt.Sprintf("max features must satisfy 0 <= m <= %d, got %d", c, rf.MaxFeatures))
	}

	mtry := rf.MaxFeatures
	if mtry == 0 {
		mtry = c / 3
		if mtry < 1 {
			mtry = 1
		}
	}

	trees := make([]*tree.DecisionTreeRegressor, rf.NEstimators)
	errs := make([]error, rf.NEstimators)

	parallel.Parallelize(rf.NEstimators, func(start, end int) {
		for t := start; t < end; t++ {
			trees[t], errs[t] = rf.growTree(X, y, r, c, mtry, t)
		}
	})

	for t, treeErr := range errs {
		if treeErr != nil {
			return errors.Wrapf(treeErr, "RandomForestRegressor.Fit: tree %d", t)
		}
	}

	rf.trees = trees
	rf.nFeatures = c
	rf.SetFitted()

	return nil
}

// growTree builds tree t on a bootstrap resample. The generator is keyed on
// (RandomState, t) so every tree draws an independent, reproducible stream.
func (rf *RandomForestRegressor) growTree(X, y mat.Matrix, r, c, mtry, t int) (*tree.DecisionTreeRegressor, error) {
	rng := rand.New(rand.NewPCG(uint64(rf.RandomState), uint64(t)))

	Xb := mat.NewDense(r, c, nil)
	yb := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		src := rng.IntN(r)
		for j := 0; j < c; j++ {
			Xb.Set(i, j, X.At(src, j))
		}
		yb.Set(i, 0, y.At(src, 0))
	}

	dt := tree.NewDecisionTreeRegressor(
		tree.WithMaxDepth(rf.MaxDepth),
		tree.WithMinSamplesLeaf(rf.MinSamplesLeaf),
		tree.WithMaxFeatures(mtry),
		tree.WithSeed(int64(rng.Uint64())),
	)
	if err := dt.Fit(Xb, yb); err != nil {
		return nil, err
	}
	return dt, nil
}

// Predict returns an r x 1 matrix holding the mean tree prediction per row.
func (rf *RandomForestRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := rf.RequireFitted("RandomForestRegressor", "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != rf.nFeatures {
		return nil, errors.NewDimensionError("RandomForestRegressor.Predict", rf.nFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)

	parallel.ParallelizeWithThreshold(r, predictParallelThreshold, func(start, end int) {
		x := make([]float64, c)
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				x[j] = X.At(i, j)
			}
			var sum float64
			for _, dt := range rf.trees {
				sum += dt.PredictRow(x)
			}
			predictions.Set(i, 0, sum/float64(len(rf.trees)))
		}
	})

	return predictions, nil
}

// Score returns the coefficient of determination R^2 on (X, y).
func (rf *RandomForestRegressor) Score(X, y mat.Matrix) (float64, error) {
	if err := rf.RequireFitted("RandomForestRegressor", "Score"); err != nil {
		return 0, err
	}

	predictions, err := rf.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	yVec := mat.NewVecDense(r, nil)
	predVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
		predVec.SetVec(i, predictions.At(i, 0))
	}

	return metrics.R2Score(yVec, predVec)
}

// NumTrees returns the number of fitted trees, or 0 before fitting.
func (rf *RandomForestRegressor) NumTrees() int {
	return len(rf.trees)
}

// GetParams returns the forest's hyperparameters.
func (rf *RandomForestRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":     rf.NEstimators,
		"max_features":     rf.MaxFeatures,
		"min_samples_leaf": rf.MinSamplesLeaf,
		"max_depth":        rf.MaxDepth,
		"random_state":     rf.RandomState,
	}
}
