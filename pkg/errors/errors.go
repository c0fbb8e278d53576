// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// 交差検証によるモデル選択で発生する失敗（不正な分割指定、学習・予測の失敗など）を
// 構造化された情報として提供します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("CrossVal-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// これにより、DegenerateSplitWarningなどのカスタム警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	データ分割に関する警告型
//
// ===========================================================================

// DegenerateSplitWarning は丸め処理の結果、訓練側または検証側が空になった場合に発生する警告です。
// 分割自体は成功として扱われますが、後続のステージが空の部分集合を拒否する可能性があります。
type DegenerateSplitWarning struct {
	Proportion float64
	Samples    int
	Side       string // "train" or "holdout"
}

func (w *DegenerateSplitWarning) Error() string {
	return fmt.Sprintf("splitting %d records with proportion %g leaves the %s side empty", w.Samples, w.Proportion, w.Side)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DegenerateSplitWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("proportion", w.Proportion).
		Int("samples", w.Samples).
		Str("side", w.Side).
		Str("type", "DegenerateSplitWarning")
}

// NewDegenerateSplitWarning は新しいDegenerateSplitWarningを作成します。
func NewDegenerateSplitWarning(proportion float64, samples int, side string) *DegenerateSplitWarning {
	return &DegenerateSplitWarning{Proportion: proportion, Samples: samples, Side: side}
}

// UnseenCategoryWarning は学習時に存在しなかったカテゴリ値が変換時に現れた場合に発生する警告です。
// 該当する行はすべてゼロのインジケータとして符号化されます。
type UnseenCategoryWarning struct {
	Column int
	Code   float64
}

func (w *UnseenCategoryWarning) Error() string {
	return fmt.Sprintf("category code %g in column %d was not seen during fit; encoded as zeros", w.Code, w.Column)
}

// NewUnseenCategoryWarning は新しいUnseenCategoryWarningを作成します。
func NewUnseenCategoryWarning(column int, code float64) *UnseenCategoryWarning {
	return &UnseenCategoryWarning{Column: column, Code: code}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` や `Transform` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("crossval: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("crossval: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
// `ValueError`よりも具体的なバリデーションロジックの失敗を示します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("crossval: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、長さゼロのベクトルでRMSEを計算しようとした場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("crossval: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError は機械学習モデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("crossval: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("crossval: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	交差検証・モデル選択のエラー型
//
// ===========================================================================

// InvalidProportionError は訓練比率が開区間 (0, 1) の外にある場合のエラーです。
type InvalidProportionError struct {
	Proportion float64
}

func (e *InvalidProportionError) Error() string {
	return fmt.Sprintf("crossval: split: proportion must satisfy 0 < p < 1, got %g", e.Proportion)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidProportionError) MarshalZerologObject(event *zerolog.Event) {
	event.Float64("proportion", e.Proportion).
		Str("type", "InvalidProportionError")
}

// NewInvalidProportionError は新しいInvalidProportionErrorを作成し、スタックトレースを付与します。
func NewInvalidProportionError(proportion float64) error {
	err := &InvalidProportionError{Proportion: proportion}
	return errors.WithStack(err)
}

// InvalidFoldCountError はフォールド数が 2 <= v <= サンプル数 を満たさない場合のエラーです。
type InvalidFoldCountError struct {
	Folds   int
	Samples int
}

func (e *InvalidFoldCountError) Error() string {
	return fmt.Sprintf("crossval: kfold: fold count must satisfy 2 <= v <= %d, got %d", e.Samples, e.Folds)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidFoldCountError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("folds", e.Folds).
		Int("samples", e.Samples).
		Str("type", "InvalidFoldCountError")
}

// NewInvalidFoldCountError は新しいInvalidFoldCountErrorを作成し、スタックトレースを付与します。
func NewInvalidFoldCountError(folds, samples int) error {
	err := &InvalidFoldCountError{Folds: folds, Samples: samples}
	return errors.WithStack(err)
}

// EmptyValidationSetError はフォールドの検証集合が空の場合のエラーです。
// 正しく生成されたフォールドでは発生しませんが、評価器は学習前に必ず検査します。
type EmptyValidationSetError struct {
	Fold int
}

func (e *EmptyValidationSetError) Error() string {
	return fmt.Sprintf("crossval: evaluate: validation set for fold %d is empty", e.Fold)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *EmptyValidationSetError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("fold", e.Fold).
		Str("type", "EmptyValidationSetError")
}

// NewEmptyValidationSetError は新しいEmptyValidationSetErrorを作成し、スタックトレースを付与します。
func NewEmptyValidationSetError(fold int) error {
	err := &EmptyValidationSetError{Fold: fold}
	return errors.WithStack(err)
}

// ModelFitError はモデルの学習が失敗した場合のエラーです。
// どの設定ファミリーがどのフォールドで失敗したかを保持し、元のエラーをラップします。
// Foldが負の場合は全訓練データでの最終学習を意味します。
type ModelFitError struct {
	Family string
	Fold   int
	Err    error
}

func (e *ModelFitError) Error() string {
	if e.Fold < 0 {
		return fmt.Sprintf("crossval: fit failed for family %q on full training set: %v", e.Family, e.Err)
	}
	return fmt.Sprintf("crossval: fit failed for family %q on fold %d: %v", e.Family, e.Fold, e.Err)
}

func (e *ModelFitError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ModelFitError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("family", e.Family).
		Int("fold", e.Fold).
		Str("type", "ModelFitError")
}

// NewModelFitError は新しいModelFitErrorを作成し、スタックトレースを付与します。
func NewModelFitError(family string, fold int, err error) error {
	fitErr := &ModelFitError{Family: family, Fold: fold, Err: err}
	return errors.WithStack(fitErr)
}

// PredictionError は学習済みモデルの予測が失敗した場合のエラーです。
// 予測値と実測値の長さの不一致や、NaN/Infを含む予測もこのエラーとして報告されます。
// Foldが負の場合はホールドアウト集合での最終予測を意味します。
type PredictionError struct {
	Family string
	Fold   int
	Err    error
}

func (e *PredictionError) Error() string {
	if e.Fold < 0 {
		return fmt.Sprintf("crossval: prediction failed for family %q on holdout set: %v", e.Family, e.Err)
	}
	return fmt.Sprintf("crossval: prediction failed for family %q on fold %d: %v", e.Family, e.Fold, e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *PredictionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("family", e.Family).
		Int("fold", e.Fold).
		Str("type", "PredictionError")
}

// NewPredictionError は新しいPredictionErrorを作成し、スタックトレースを付与します。
func NewPredictionError(family string, fold int, err error) error {
	predErr := &PredictionError{Family: family, Fold: fold, Err: err}
	return errors.WithStack(predErr)
}

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// NaN、Inf、オーバーフロー、アンダーフローなどを検出します。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "Evaluate.predictions"）
	Values    []float64 // 問題のある値
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("crossval: numerical instability detected in %s. Values: [%s]", e.Operation, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyDataset は空のデータセットが渡された場合のエラーです。
	ErrEmptyDataset = New("empty dataset")

	// ErrEmptyConfigSet は評価すべきモデル設定が一つもない場合のエラーです。
	ErrEmptyConfigSet = New("empty config set")

	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")
)
