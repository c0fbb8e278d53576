package model

import "gonum.org/v1/gonum/mat"

// Transformer は特徴量変換器のインターフェース。
// 学習データで Fit した変換器をそのまま検証・ホールドアウトデータに
// 適用することで、前処理を通じた情報漏洩を防ぐ。
type Transformer interface {
	// Fit は変換パラメータを学習データのみから推定する
	Fit(X mat.Matrix) error

	// Transform は学習済みパラメータでデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform は Fit に続けて Transform を実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
