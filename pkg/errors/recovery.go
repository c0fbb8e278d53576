// Package errors provides comprehensive error handling utilities for crossval.
//
// This file converts panics from model code into structured errors so a
// misbehaving backend cannot take down a selection run.

package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError is a recovered panic carried as an error. It keeps the original
// panic value and the stack captured at recovery time.
type PanicError struct {
	// PanicValue is the value passed to panic()
	PanicValue interface{}

	// StackTrace is the goroutine stack at recovery time
	StackTrace string

	// Operation identifies where the panic was recovered
	Operation string
}

// NewPanicError captures the current stack and wraps the panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap returns nil; the panic value is not an error chain.
func (e *PanicError) Unwrap() error {
	return nil
}

// String returns the message followed by the captured stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// Recover converts an in-flight panic into a PanicError assigned to *err.
// Use it with defer on functions with a named error return:
//
//	func (rf *RandomForestRegressor) Fit(X, y mat.Matrix) (err error) {
//	    defer errors.Recover(&err, "RandomForestRegressor.Fit")
//	    ...
//	}
//
// When *err already holds an error, the panic message wraps it so neither
// failure is lost.
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	if *err != nil {
		*err = fmt.Errorf("panic in %s: %v (original error: %w)", operation, r, *err)
		return
	}
	*err = NewPanicError(operation, r)
}

// SafeExecute runs fn and converts a panic into the returned error, so one
// misbehaving configuration cannot kill a worker.
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
