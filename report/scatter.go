// Package report renders the artifacts of a finished model selection run:
// a predicted-versus-actual scatter plot for the holdout evaluation and a
// plain-text summary of the score table. The selection core never imports
// this package; it consumes the selection output like any other caller.
package report

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Matt-Int/crossval/pkg/errors"
)

// PredictionScatter plots predicted against actual target values, one point
// per holdout record, with the identity line y = x for reference. Points on
// the line are perfect predictions; vertical distance from it is the signed
// prediction error.
func PredictionScatter(predictions, actuals []float64) (*plot.Plot, error) {
	if len(actuals) == 0 {
		return nil, errors.NewValueError("report.PredictionScatter", "no records to plot")
	}
	if len(predictions) != len(actuals) {
		return nil, errors.NewDimensionError("report.PredictionScatter", len(actuals), len(predictions), 0)
	}

	points := make(plotter.XYs, len(actuals))
	for i := range actuals {
		points[i].X = actuals[i]
		points[i].Y = predictions[i]
	}

	p := plot.New()
	p.Title.Text = "Holdout predictions"
	p.X.Label.Text = "actual"
	p.Y.Label.Text = "predicted"

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, errors.Wrap(err, "report.PredictionScatter")
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 20, G: 80, B: 200, A: 220}
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)

	lo, hi := valueRange(predictions, actuals)
	identity, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return nil, errors.Wrap(err, "report.PredictionScatter")
	}
	identity.LineStyle.Color = color.RGBA{R: 120, G: 120, B: 120, A: 180}
	identity.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(identity)
	p.Legend.Add("y = x", identity)

	return p, nil
}

// SavePredictionScatter renders the scatter plot to path. The format follows
// the file extension (png, svg, pdf, ...).
func SavePredictionScatter(predictions, actuals []float64, path string) error {
	p, err := PredictionScatter(predictions, actuals)
	if err != nil {
		return err
	}
	if err := p.Save(4*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "report.SavePredictionScatter")
	}
	return nil
}

// valueRange returns the smallest and largest value across both series, so
// the identity line spans every plotted point.
func valueRange(predictions, actuals []float64) (lo, hi float64) {
	lo, hi = actuals[0], actuals[0]
	for _, s := range [][]float64{actuals, predictions} {
		for _, v := range s {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}
