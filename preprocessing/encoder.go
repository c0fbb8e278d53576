package preprocessing

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/Matt-Int/crossval/core/model"
	"github.com/Matt-Int/crossval/pkg/errors"
)

// OneHotEncoder はカテゴリ列（レベルコード）をインジケータ列に展開する変換器。
// 水準数は訓練データのみから学習するため、分割後に適用しても検証データの
// カテゴリ情報が学習側に漏れることはない。
//
// 入力行列のカテゴリ列は非負の整数コードを保持している必要がある
// （dataset.CategoricalColumn が生成する形式）。変換後は各カテゴリ列が
// 学習済み水準ぶんのインジケータ列に置き換わり、数値列はそのままの
// 順序で通過する。学習時に存在しなかったコードはすべてゼロのブロックに
// 符号化され、UnseenCategoryWarning が発行される。
//
// DropFirst を有効にすると各カテゴリ列の最初の水準（コード0）が基準水準
// として省かれ、k水準が k-1 列になる。切片付きの線形モデルでは全水準を
// 展開すると計画行列が特異になるため、線形ファミリーはこのモードを使う。
type OneHotEncoder struct {
	model.BaseEstimator

	// CategoricalCols は入力行列中のカテゴリ列のインデックス（昇順に正規化される）
	CategoricalCols []int

	// DropFirst は基準水準（コード0）の列を省くかどうか
	DropFirst bool

	// NFeatures は学習時の入力特徴量数
	NFeatures int

	// levels は各カテゴリ列の水準数（CategoricalColsと同じ並び）
	levels []int

	// outputCols は変換後の列数
	outputCols int
}

// NewOneHotEncoder は指定したカテゴリ列を全水準のインジケータに展開する
// エンコーダを作成する。categoricalCols が空の場合、変換は恒等写像になる。
func NewOneHotEncoder(categoricalCols []int) *OneHotEncoder {
	cols := make([]int, len(categoricalCols))
	copy(cols, categoricalCols)
	sort.Ints(cols)
	return &OneHotEncoder{CategoricalCols: cols}
}

// NewOneHotEncoderDropFirst は基準水準を省くエンコーダを作成する。
// コード0の水準はすべてゼロのブロックとして表現される。
func NewOneHotEncoderDropFirst(categoricalCols []int) *OneHotEncoder {
	enc := NewOneHotEncoder(categoricalCols)
	enc.DropFirst = true
	return enc
}

// blockWidth は1カテゴリ列が展開後に占める列数を返す
func (e *OneHotEncoder) blockWidth(nLevels int) int {
	if e.DropFirst {
		if nLevels <= 1 {
			return 0
		}
		return nLevels - 1
	}
	return nLevels
}

// Fit は訓練データからカテゴリ列ごとの水準数を学習する。
// 水準数は観測された最大コード+1として記録される。
func (e *OneHotEncoder) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyDataset)
	}

	for _, col := range e.CategoricalCols {
		if col < 0 || col >= c {
			return errors.NewValueError("OneHotEncoder.Fit",
				fmt.Sprintf("categorical column index %d out of range [0, %d)", col, c))
		}
	}

	e.NFeatures = c
	e.levels = make([]int, len(e.CategoricalCols))

	for k, col := range e.CategoricalCols {
		maxCode := -1
		for i := 0; i < r; i++ {
			v := X.At(i, col)
			if v != math.Trunc(v) || v < 0 {
				return errors.NewValueError("OneHotEncoder.Fit",
					fmt.Sprintf("column %d has non-integer or negative level code %g at record %d", col, v, i))
			}
			if int(v) > maxCode {
				maxCode = int(v)
			}
		}
		e.levels[k] = maxCode + 1
	}

	e.outputCols = c - len(e.CategoricalCols)
	for _, n := range e.levels {
		e.outputCols += e.blockWidth(n)
	}

	e.SetFitted()
	return nil
}

// Transform はカテゴリ列をインジケータ列に展開した新しい行列を返す。
// 学習時に存在しなかったコードの行は該当ブロックがすべてゼロになる。
func (e *OneHotEncoder) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := e.RequireFitted("OneHotEncoder", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != e.NFeatures {
		return nil, errors.NewDimensionError("OneHotEncoder.Transform", e.NFeatures, c, 1)
	}

	result := mat.NewDense(r, e.outputCols, nil)

	for i := 0; i < r; i++ {
		out := 0
		k := 0
		for j := 0; j < c; j++ {
			if k < len(e.CategoricalCols) && e.CategoricalCols[k] == j {
				nLevels := e.levels[k]
				width := e.blockWidth(nLevels)
				code := X.At(i, j)
				idx := int(code)

				switch {
				case code != math.Trunc(code) || idx < 0 || idx >= nLevels:
					// 未知の水準: ブロックはゼロのまま
					errors.Warn(errors.NewUnseenCategoryWarning(j, code))
				case e.DropFirst:
					if idx > 0 {
						result.Set(i, out+idx-1, 1)
					}
					// idx == 0 は基準水準: ゼロのまま
				default:
					result.Set(i, out+idx, 1)
				}

				out += width
				k++
				continue
			}
			result.Set(i, out, X.At(i, j))
			out++
		}
	}

	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (e *OneHotEncoder) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := e.Fit(X); err != nil {
		return nil, err
	}
	return e.Transform(X)
}

// NumOutputFeatures は変換後の列数を返す（未学習の場合は0）
func (e *OneHotEncoder) NumOutputFeatures() int {
	if !e.IsFitted() {
		return 0
	}
	return e.outputCols
}

// Levels は学習したカテゴリ列ごとの水準数を返す（CategoricalColsと同じ並び）
func (e *OneHotEncoder) Levels() []int {
	out := make([]int, len(e.levels))
	copy(out, e.levels)
	return out
}

// GetParams はエンコーダのパラメータを取得する
func (e *OneHotEncoder) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"categorical_cols": e.CategoricalCols,
		"drop_first":       e.DropFirst,
	}
}

// String はエンコーダの文字列表現を返す
func (e *OneHotEncoder) String() string {
	if !e.IsFitted() {
		return fmt.Sprintf("OneHotEncoder(categorical_cols=%v, drop_first=%t)", e.CategoricalCols, e.DropFirst)
	}
	return fmt.Sprintf("OneHotEncoder(categorical_cols=%v, drop_first=%t, n_features=%d, n_output=%d)",
		e.CategoricalCols, e.DropFirst, e.NFeatures, e.outputCols)
}
