// Package tree implements a CART regression tree with exact greedy
// variance-reduction splits. It is the building block of the forest
// ensemble: the per-split feature subsampling behind the forest's mtry
// hyperparameter lives here as the MaxFeatures option.
package tree

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/Matt-Int/crossval/core/model"
	"github.com/Matt-Int/crossval/metrics"
	"github.com/Matt-Int/crossval/pkg/errors"
)

// node is one slot of the flat tree representation. Internal nodes carry a
// split; leaves carry the mean target of their training records.
type node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     float64
	Leaf      bool
}

// DecisionTreeRegressor is a CART regression tree. Splits minimize the sum
// of squared errors of the two children; leaves predict the mean target of
// the records that reached them.
type DecisionTreeRegressor struct {
	model.BaseEstimator

	// MaxDepth limits the tree depth; 0 means unlimited.
	MaxDepth int
	// MinSamplesLeaf is the minimum number of records in a leaf.
	MinSamplesLeaf int
	// MaxFeatures is the number of features drawn as split candidates at
	// each node; 0 means all features are considered.
	MaxFeatures int
	// Seed drives the per-split feature draws.
	Seed int64

	nodes     []node
	nFeatures int
}

// Option configures a DecisionTreeRegressor.
type Option func(*DecisionTreeRegressor)

// WithMaxDepth limits the tree depth. Zero leaves it unlimited.
func WithMaxDepth(depth int) Option {
	return func(dt *DecisionTreeRegressor) {
		dt.MaxDepth = depth
	}
}

// WithMinSamplesLeaf sets the minimum number of records per leaf.
func WithMinSamplesLeaf(n int) Option {
	return func(dt *DecisionTreeRegressor) {
		dt.MinSamplesLeaf = n
	}
}

// WithMaxFeatures sets the number of candidate features per split. Zero
// considers every feature.
func WithMaxFeatures(m int) Option {
	return func(dt *DecisionTreeRegressor) {
		dt.MaxFeatures = m
	}
}

// WithSeed sets the seed for the per-split feature draws.
func WithSeed(seed int64) Option {
	return func(dt *DecisionTreeRegressor) {
		dt.Seed = seed
	}
}

// NewDecisionTreeRegressor creates a regression tree. Without options the
// tree grows unbounded, considers every feature at every split and keeps at
// least one record per leaf.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	dt := &DecisionTreeRegressor{MinSamplesLeaf: 1}
	for _, opt := range opts {
		opt(dt)
	}
	return dt
}

// Fit grows the tree on X and the column vector y.
//
// Feature subsampling is driven by a fresh generator built from Seed, so the
// same (X, y, options) always grow the identical tree.
func (dt *DecisionTreeRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	yr, yc := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("DecisionTreeRegressor.Fit", "empty data", errors.ErrEmptyDataset)
	}
	if yr != r {
		return errors.NewDimensionError("DecisionTreeRegressor.Fit", r, yr, 0)
	}
	if yc != 1 {
		return errors.NewValueError("DecisionTreeRegressor.Fit", "y must be a column vector")
	}
	if dt.MinSamplesLeaf < 1 {
		return errors.NewValueError("DecisionTreeRegressor.Fit",
			fmt.Sprintf("min samples leaf must be at least 1, got %d", dt.MinSamplesLeaf))
	}
	if dt.MaxDepth < 0 {
		return errors.NewValueError("DecisionTreeRegressor.Fit",
			fmt.Sprintf("max depth must not be negative, got %d", dt.MaxDepth))
	}
	if dt.MaxFeatures < 0 || dt.MaxFeatures > c {
		return errors.NewValueError("DecisionTreeRegressor.Fit",
			fmt.Sprintf("max features must satisfy 0 <= m <= %d, got %d", c, dt.MaxFeatures))
	}

	targets := make([]float64, r)
	for i := 0; i < r; i++ {
		targets[i] = y.At(i, 0)
	}

	indices := make([]int, r)
	for i := range indices {
		indices[i] = i
	}

	b := &treeBuilder{
		X:           X,
		y:           targets,
		maxDepth:    dt.MaxDepth,
		minLeaf:     dt.MinSamplesLeaf,
		maxFeatures: dt.MaxFeatures,
		nFeatures:   c,
		rng:         rand.New(rand.NewPCG(uint64(dt.Seed), uint64(dt.Seed))),
	}
	b.buildNode(indices, 0)

	dt.nodes = b.nodes
	dt.nFeatures = c
	dt.SetFitted()

	return nil
}

// Predict returns an r x 1 matrix of predictions for X.
func (dt *DecisionTreeRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := dt.RequireFitted("DecisionTreeRegressor", "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != dt.nFeatures {
		return nil, errors.NewDimensionError("DecisionTreeRegressor.Predict", dt.nFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	x := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			x[j] = X.At(i, j)
		}
		predictions.Set(i, 0, dt.PredictRow(x))
	}

	return predictions, nil
}

// PredictRow walks the tree for a single feature row. The caller must pass
// exactly NFeatures values; PredictRow panics on an unfitted tree.
func (dt *DecisionTreeRegressor) PredictRow(x []float64) float64 {
	idx := 0
	for {
		nd := &dt.nodes[idx]
		if nd.Leaf {
			return nd.Value
		}
		if x[nd.Feature] <= nd.Threshold {
			idx = nd.Left
		} else {
			idx = nd.Right
		}
	}
}

// Score returns the coefficient of determination R^2 on (X, y).
func (dt *DecisionTreeRegressor) Score(X, y mat.Matrix) (float64, error) {
	if err := dt.RequireFitted("DecisionTreeRegressor", "Score"); err != nil {
		return 0, err
	}

	predictions, err := dt.Predict(X)
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

// NumLeaves returns the number of leaves, or 0 before fitting.
func (dt *DecisionTreeRegressor) NumLeaves() int {
	leaves := 0
	for _, nd := range dt.nodes {
		if nd.Leaf {
			leaves++
		}
	}
	return leaves
}

// GetParams returns the tree's hyperparameters.
func (dt *DecisionTreeRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"max_depth":        dt.MaxDepth,
		"min_samples_leaf": dt.MinSamplesLeaf,
		"max_features":     dt.MaxFeatures,
		"seed":             dt.Seed,
	}
}

// splitInfo describes the best split found for a node.
type splitInfo struct {
	feature   int
	threshold float64
	gain      float64
}

type treeBuilder struct {
	X           mat.Matrix
	y           []float64
	maxDepth    int
	minLeaf     int
	maxFeatures int
	nFeatures   int
	rng         *rand.Rand
	nodes       []node
}

// buildNode grows the subtree over indices and returns its node slot.
func (b *treeBuilder) buildNode(indices []int, depth int) int {
	nodeIdx := len(b.nodes)

	mean, sse := b.meanAndSSE(indices)

	// Stop when the node cannot split: depth or size limits reached, or the
	// targets are constant up to float noise.
	if (b.maxDepth > 0 && depth >= b.maxDepth) ||
		len(indices) < 2*b.minLeaf ||
		sse <= 1e-12 {
		b.nodes = append(b.nodes, node{Leaf: true, Value: mean, Left: -1, Right: -1})
		return nodeIdx
	}

	best := b.findBestSplit(indices)
	if best.gain <= 0 {
		b.nodes = append(b.nodes, node{Leaf: true, Value: mean, Left: -1, Right: -1})
		return nodeIdx
	}

	left, right := b.partition(indices, best)

	b.nodes = append(b.nodes, node{Feature: best.feature, Threshold: best.threshold})
	leftIdx := b.buildNode(left, depth+1)
	rightIdx := b.buildNode(right, depth+1)
	b.nodes[nodeIdx].Left = leftIdx
	b.nodes[nodeIdx].Right = rightIdx

	return nodeIdx
}

// meanAndSSE computes the target mean and the sum of squared deviations from
// it. The two-pass form keeps the SSE of constant targets at zero, which the
// leaf check relies on.
func (b *treeBuilder) meanAndSSE(indices []int) (float64, float64) {
	var sum float64
	for _, idx := range indices {
		sum += b.y[idx]
	}
	mean := sum / float64(len(indices))

	var sse float64
	for _, idx := range indices {
		d := b.y[idx] - mean
		sse += d * d
	}
	return mean, sse
}

// findBestSplit scans the candidate features for the split with the largest
// variance reduction.
func (b *treeBuilder) findBestSplit(indices []int) splitInfo {
	best := splitInfo{gain: math.Inf(-1)}
	for _, feature := range b.candidateFeatures() {
		if split := b.findFeatureSplit(indices, feature); split.gain > best.gain {
			best = split
		}
	}
	return best
}

// candidateFeatures returns the features considered at one split: all of
// them, or a seeded random draw of maxFeatures distinct columns. This draw
// is the mtry mechanism the forest sweeps over.
func (b *treeBuilder) candidateFeatures() []int {
	if b.maxFeatures == 0 || b.maxFeatures >= b.nFeatures {
		all := make([]int, b.nFeatures)
		for j := range all {
			all[j] = j
		}
		return all
	}
	return b.rng.Perm(b.nFeatures)[:b.maxFeatures]
}

// findFeatureSplit finds the threshold with the largest variance reduction
// for one feature, scanning the sorted values with running sums.
func (b *treeBuilder) findFeatureSplit(indices []int, feature int) splitInfo {
	values := make([]struct{ value, target float64 }, len(indices))
	for i, idx := range indices {
		values[i] = struct{ value, target float64 }{b.X.At(idx, feature), b.y[idx]}
	}
	sort.Slice(values, func(i, j int) bool { return values[i].value < values[j].value })

	var totalSum, totalSumSq float64
	for _, v := range values {
		totalSum += v.target
		totalSumSq += v.target * v.target
	}

	n := len(values)
	parentSSE := totalSumSq - totalSum*totalSum/float64(n)

	best := splitInfo{feature: feature, gain: math.Inf(-1)}
	var leftSum, leftSumSq float64
	leftCount := 0

	for i := 0; i < n-1; i++ {
		leftSum += values[i].target
		leftSumSq += values[i].target * values[i].target
		leftCount++

		// No threshold separates equal values.
		if values[i].value == values[i+1].value {
			continue
		}

		rightCount := n - leftCount
		if leftCount < b.minLeaf || rightCount < b.minLeaf {
			continue
		}

		rightSum := totalSum - leftSum
		rightSumSq := totalSumSq - leftSumSq

		leftSSE := leftSumSq - leftSum*leftSum/float64(leftCount)
		rightSSE := rightSumSq - rightSum*rightSum/float64(rightCount)

		if gain := parentSSE - leftSSE - rightSSE; gain > best.gain {
			best.gain = gain
			best.threshold = (values[i].value + values[i+1].value) / 2
		}
	}

	return best
}

// partition splits indices by the chosen threshold, preserving order.
func (b *treeBuilder) partition(indices []int, split splitInfo) ([]int, []int) {
	var left, right []int
	for _, idx := range indices {
		if b.X.At(idx, split.feature) <= split.threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	return left, right
}
