// Package crossval provides cross-validated model selection for regression
// in Go: split a dataset into training and holdout subsets, score candidate
// model configurations with v-fold cross-validation, pick the winner and
// report an unbiased holdout error.
//
// # Features
//
// - Reproducible by construction: one seed drives the split and the folds
// - Fair comparison: every configuration is scored on the same fold set
// - Parallel evaluation matrix with deterministic aggregation
// - Pluggable model families behind a two-method backend interface
// - Structured logging and typed errors throughout
//
// # Quick Start
//
// Select between a linear model and a small forest grid:
//
//	package main
//
//	import (
//	    "log"
//	    "os"
//
//	    "github.com/Matt-Int/crossval/core/model"
//	    "github.com/Matt-Int/crossval/ensemble"
//	    "github.com/Matt-Int/crossval/linear"
//	    "github.com/Matt-Int/crossval/report"
//	    "github.com/Matt-Int/crossval/selection"
//	)
//
//	func main() {
//	    ds := loadDataset() // *dataset.Dataset
//
//	    configs := []model.Config{model.NewConfig("linear", nil)}
//	    configs = append(configs, model.Grid{"mtry": {1, 2, 3}}.Configs("forest")...)
//
//	    experiment := &selection.Experiment{
//	        Proportion: 0.75,
//	        Folds:      5,
//	        Seed:       42,
//	        Configs:    configs,
//	        Backend: model.NewRegistry().
//	            Register("linear", linear.Backend()).
//	            Register("forest", ensemble.Backend(42)),
//	    }
//
//	    rep, err := experiment.Run(ds)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    report.WriteSummary(os.Stdout, rep)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - dataset: immutable tabular records with named features and one target
//   - selection: splitter, fold generator, evaluator, selector and experiment
//   - linear: least-squares backend for the "linear" family
//   - tree: CART regression tree with per-split feature subsampling
//   - ensemble: bagged random forest backend for the "forest" family
//   - metrics: regression metrics (MSE, RMSE, MAE, R²)
//   - preprocessing: scaling and one-hot encoding
//   - report: score-table summary and predicted-vs-actual scatter plot
//   - core/model: configuration, backend interfaces and the family registry
//   - core/parallel: parallel processing utilities
//
// # Reproducibility
//
// Every randomized stage derives its generator from an explicit seed, so a
// stored (dataset, Experiment) pair reproduces a run exactly: the same
// partition, the same folds, the same forests, the same scores. Parallel
// execution never changes results; workers write disjoint slots and
// aggregation happens after a barrier in declaration order.
package crossval
