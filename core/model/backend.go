package model

import (
	"github.com/Matt-Int/crossval/dataset"
)

// Backend turns a configuration into a fitted model. It is the only
// capability the selection core requires from a model family: the search
// never inspects model internals, it only fits and predicts.
//
// Implementations must treat the training dataset as read-only and must not
// retain state between Fit calls, because a cross-validation search fits the
// same backend many times concurrently.
type Backend interface {
	// Fit trains a model of the configured family on the training data.
	Fit(train *dataset.Dataset, cfg Config) (Fitted, error)
}

// Fitted is a trained model produced by a Backend.
type Fitted interface {
	// Predict returns one predicted target value per record, in record order.
	Predict(ds *dataset.Dataset) ([]float64, error)
}

// BackendFunc adapts a function to the Backend interface, mirroring
// http.HandlerFunc. Tests use it to stub model families without a real
// training procedure.
type BackendFunc func(train *dataset.Dataset, cfg Config) (Fitted, error)

// Fit implements Backend.
func (f BackendFunc) Fit(train *dataset.Dataset, cfg Config) (Fitted, error) {
	return f(train, cfg)
}

// FittedFunc adapts a function to the Fitted interface.
type FittedFunc func(ds *dataset.Dataset) ([]float64, error)

// Predict implements Fitted.
func (f FittedFunc) Predict(ds *dataset.Dataset) ([]float64, error) {
	return f(ds)
}
