package selection

import (
	"github.com/Matt-Int/crossval/dataset"
	"github.com/Matt-Int/crossval/pkg/errors"
)

// FoldAssignment pairs one validation fold with the union of all other
// folds. Indices refer to records of the dataset the assignment was derived
// from; both slices preserve the shuffled order and never overlap.
type FoldAssignment struct {
	Index           int
	TrainIndices    []int
	ValidateIndices []int
}

// KFold deterministically partitions a dataset into NSplits near-equal
// disjoint folds. Fold sizes follow the largest-remainder rule: every fold
// gets n/v records and the first n%v folds get one extra, so no two folds
// differ by more than one record.
type KFold struct {
	NSplits int
	Seed    int64
}

// NewKFold creates a fold generator for v folds seeded with seed.
func NewKFold(v int, seed int64) *KFold {
	return &KFold{NSplits: v, Seed: seed}
}

// Split shuffles the record indices of ds and slices them into NSplits fold
// assignments. The validation sets, concatenated, reconstruct ds exactly;
// each train set is the complement of its validation set.
//
// The fold count must satisfy 2 <= v <= ds.Len(); anything else is an
// InvalidFoldCountError. Identical (dataset length, v, seed) always yields
// identical assignments.
func (kf *KFold) Split(ds *dataset.Dataset) ([]FoldAssignment, error) {
	n := 0
	if ds != nil {
		n = ds.Len()
	}
	if kf.NSplits < 2 || kf.NSplits > n {
		return nil, errors.NewInvalidFoldCountError(kf.NSplits, n)
	}

	indices := shuffledIndices(n, kf.Seed)

	folds := make([]FoldAssignment, kf.NSplits)
	foldSize := n / kf.NSplits
	remainder := n % kf.NSplits

	start := 0
	for i := 0; i < kf.NSplits; i++ {
		size := foldSize
		if i < remainder {
			size++
		}

		validate := make([]int, size)
		copy(validate, indices[start:start+size])

		train := make([]int, 0, n-size)
		train = append(train, indices[:start]...)
		train = append(train, indices[start+size:]...)

		folds[i] = FoldAssignment{Index: i, TrainIndices: train, ValidateIndices: validate}
		start += size
	}

	return folds, nil
}
