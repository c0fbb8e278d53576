package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matt-Int/crossval/pkg/errors"
)

func TestPredictionScatterBuildsPlot(t *testing.T) {
	predictions := []float64{1.1, 1.9, 3.2, 4.0}
	actuals := []float64{1.0, 2.0, 3.0, 4.0}

	p, err := PredictionScatter(predictions, actuals)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "actual", p.X.Label.Text)
	assert.Equal(t, "predicted", p.Y.Label.Text)
}

func TestSavePredictionScatterWritesFile(t *testing.T) {
	predictions := []float64{10.5, 20.1, 29.8, 41.2, 50.0}
	actuals := []float64{10, 20, 30, 40, 50}

	path := filepath.Join(t.TempDir(), "scatter.png")
	require.NoError(t, SavePredictionScatter(predictions, actuals, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPredictionScatterValidation(t *testing.T) {
	_, err := PredictionScatter(nil, nil)
	var valueErr *errors.ValueError
	assert.ErrorAs(t, err, &valueErr)

	_, err = PredictionScatter([]float64{1, 2}, []float64{1, 2, 3})
	var dimErr *errors.DimensionError
	assert.ErrorAs(t, err, &dimErr)
}
