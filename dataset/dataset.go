// Package dataset provides the tabular data model for cross-validated model
// selection: an ordered collection of records with named feature columns and
// one numeric target column.
//
// A Dataset is immutable after construction. Splitters and fold generators
// derive new datasets through Subset, so every stage of a selection pipeline
// can share the same backing data without defensive copying.
//
// Categorical features are stored as level codes: the code for the i-th
// distinct label (in first-appearance order) is float64(i). The level labels
// are retained on the column, so reports can translate codes back.
package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Matt-Int/crossval/pkg/errors"
)

// Kind identifies how a feature column is interpreted by model backends.
type Kind int

const (
	// Numeric columns hold measurements on a continuous or ordered scale.
	Numeric Kind = iota
	// Categorical columns hold level codes standing in for discrete labels.
	Categorical
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k == Categorical {
		return "categorical"
	}
	return "numeric"
}

// Column is a named feature column. For categorical columns, Values holds
// whole-number level codes and Levels the corresponding labels in
// first-appearance order. For numeric columns, Levels is nil.
type Column struct {
	Name   string
	Kind   Kind
	Values []float64
	Levels []string
}

// NumericColumn builds a numeric column over the given values.
func NumericColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: Numeric, Values: values}
}

// CategoricalColumn builds a categorical column from string labels. Codes
// are assigned in first-appearance order, so the first distinct label gets
// code 0, the second code 1, and so on.
func CategoricalColumn(name string, labels []string) Column {
	codes := make([]float64, len(labels))
	index := make(map[string]int, 8)
	var levels []string

	for i, label := range labels {
		code, ok := index[label]
		if !ok {
			code = len(levels)
			index[label] = code
			levels = append(levels, label)
		}
		codes[i] = float64(code)
	}

	return Column{Name: name, Kind: Categorical, Values: codes, Levels: levels}
}

// Dataset is an ordered, immutable collection of records: feature columns
// plus one designated numeric target column, all of equal length.
type Dataset struct {
	features []Column
	target   Column
	n        int
}

// New builds a dataset from a target column and feature columns.
//
// It validates the structural invariants up front: every column must have
// the same length, at least one record must be present, column names must be
// unique and distinct from the target name, the target must not contain NaN,
// and categorical codes must be whole numbers within their level range.
func New(target Column, features ...Column) (*Dataset, error) {
	n := len(target.Values)
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyDataset, "dataset.New")
	}

	for i, v := range target.Values {
		if math.IsNaN(v) {
			return nil, errors.NewValueError("dataset.New",
				fmt.Sprintf("target %q contains NaN at record %d", target.Name, i))
		}
	}

	seen := map[string]bool{target.Name: true}
	for _, col := range features {
		if len(col.Values) != n {
			return nil, errors.NewDimensionError("dataset.New", n, len(col.Values), 0)
		}
		if seen[col.Name] {
			return nil, errors.NewValueError("dataset.New",
				fmt.Sprintf("duplicate column name %q", col.Name))
		}
		seen[col.Name] = true

		if col.Kind == Categorical {
			if err := validateCodes(col); err != nil {
				return nil, err
			}
		}
	}

	return &Dataset{features: features, target: target, n: n}, nil
}

// FromMatrix builds a dataset with purely numeric features from an n x p
// design matrix, one feature name per column, and a target vector y of
// length n.
func FromMatrix(names []string, X *mat.Dense, targetName string, y []float64) (*Dataset, error) {
	rows, cols := X.Dims()
	if len(names) != cols {
		return nil, errors.NewDimensionError("dataset.FromMatrix", cols, len(names), 1)
	}
	if len(y) != rows {
		return nil, errors.NewDimensionError("dataset.FromMatrix", rows, len(y), 0)
	}

	features := make([]Column, cols)
	for j := 0; j < cols; j++ {
		values := make([]float64, rows)
		mat.Col(values, j, X)
		features[j] = NumericColumn(names[j], values)
	}

	targetValues := make([]float64, len(y))
	copy(targetValues, y)

	return New(NumericColumn(targetName, targetValues), features...)
}

func validateCodes(col Column) error {
	limit := float64(len(col.Levels))
	for i, code := range col.Values {
		if code != math.Trunc(code) || code < 0 || code >= limit {
			return errors.NewValueError("dataset.New",
				fmt.Sprintf("column %q has invalid level code %g at record %d", col.Name, code, i))
		}
	}
	return nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return d.n
}

// NumFeatures returns the number of feature columns.
func (d *Dataset) NumFeatures() int {
	return len(d.features)
}

// FeatureNames returns the feature column names in column order.
func (d *Dataset) FeatureNames() []string {
	names := make([]string, len(d.features))
	for j, col := range d.features {
		names[j] = col.Name
	}
	return names
}

// TargetName returns the name of the target column.
func (d *Dataset) TargetName() string {
	return d.target.Name
}

// Levels returns the level labels of feature j, or nil for numeric columns.
func (d *Dataset) Levels(j int) []string {
	levels := d.features[j].Levels
	if levels == nil {
		return nil
	}
	out := make([]string, len(levels))
	copy(out, levels)
	return out
}

// CategoricalIndices returns the indices of categorical feature columns in
// column order.
func (d *Dataset) CategoricalIndices() []int {
	var indices []int
	for j, col := range d.features {
		if col.Kind == Categorical {
			indices = append(indices, j)
		}
	}
	return indices
}

// Row returns a copy of the feature values of record i.
func (d *Dataset) Row(i int) []float64 {
	row := make([]float64, len(d.features))
	for j, col := range d.features {
		row[j] = col.Values[i]
	}
	return row
}

// Target returns the target value of record i.
func (d *Dataset) Target(i int) float64 {
	return d.target.Values[i]
}

// Targets returns a copy of the target column values in record order.
func (d *Dataset) Targets() []float64 {
	out := make([]float64, d.n)
	copy(out, d.target.Values)
	return out
}

// Subset returns a new dataset containing the records selected by indices,
// in the given order. The new dataset owns its storage, so later use never
// mutates or aliases the parent. Indices may repeat; Subset panics if any
// index is out of range. The result may be empty.
func (d *Dataset) Subset(indices []int) *Dataset {
	features := make([]Column, len(d.features))
	for j, col := range d.features {
		values := make([]float64, len(indices))
		for i, idx := range indices {
			values[i] = col.Values[idx]
		}
		features[j] = Column{Name: col.Name, Kind: col.Kind, Values: values, Levels: col.Levels}
	}

	targetValues := make([]float64, len(indices))
	for i, idx := range indices {
		targetValues[i] = d.target.Values[idx]
	}

	return &Dataset{
		features: features,
		target:   Column{Name: d.target.Name, Kind: Numeric, Values: targetValues},
		n:        len(indices),
	}
}

// Matrix returns the n x p design matrix of feature values, with categorical
// columns as their level codes. It panics on an empty dataset or a dataset
// with no features, matching gonum's zero-dimension rule.
func (d *Dataset) Matrix() *mat.Dense {
	p := len(d.features)
	data := make([]float64, d.n*p)
	for j, col := range d.features {
		for i, v := range col.Values {
			data[i*p+j] = v
		}
	}
	return mat.NewDense(d.n, p, data)
}

// TargetVec returns the target column as a vector. It panics on an empty
// dataset.
func (d *Dataset) TargetVec() *mat.VecDense {
	return mat.NewVecDense(d.n, d.Targets())
}

// TargetMatrix returns the target column as an n x 1 matrix. It panics on an
// empty dataset.
func (d *Dataset) TargetMatrix() *mat.Dense {
	return mat.NewDense(d.n, 1, d.Targets())
}
