package model

import "github.com/Matt-Int/crossval/pkg/errors"

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// FittedState はモデルが学習済みの状態
	FittedState
)

// String は学習状態の文字列表現を返す
func (s EstimatorState) String() string {
	if s == FittedState {
		return "fitted"
	}
	return "not fitted"
}

// BaseEstimator は全てのモデルの基底となる構造体
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == FittedState
}

// SetFitted はモデルを学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.state = FittedState
}

// Reset はモデルを初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}

// RequireFitted は未学習の場合に NotFittedError を返す。
// Predict や Score の先頭でガードとして使う。
func (e *BaseEstimator) RequireFitted(estimator, method string) error {
	if e.IsFitted() {
		return nil
	}
	return errors.NewNotFittedError(estimator, method)
}
