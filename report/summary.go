package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Matt-Int/crossval/pkg/errors"
	"github.com/Matt-Int/crossval/selection"
)

// WriteSummary writes a plain-text account of a selection run to w: the
// cross-validation score table in candidate declaration order, the selected
// configuration, and the holdout RMSE of the final model.
func WriteSummary(w io.Writer, rep *selection.Report) error {
	if rep == nil || rep.Selection == nil || rep.Final == nil {
		return errors.NewValueError("report.WriteSummary", "report is incomplete")
	}

	fmt.Fprintf(w, "Cross-validated model selection (%d folds, seed %d)\n",
		rep.Selection.Folds, rep.Selection.Seed)
	fmt.Fprintf(w, "Training records: %d, holdout records: %d\n\n",
		rep.TrainSize, rep.HoldoutSize)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONFIGURATION\tMEAN RMSE\tSTD\t")
	for _, cs := range rep.Selection.Scores {
		marker := ""
		if cs.Config.Equal(rep.Selection.Best) {
			marker = "  <- selected"
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%s\n", cs.Config.Key(), cs.Mean, cs.Std, marker)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "report.WriteSummary")
	}

	fmt.Fprintf(w, "\nSelected: %s\n", rep.Final.Config.Key())
	fmt.Fprintf(w, "Holdout RMSE: %.4f over %d records\n", rep.Final.RMSE, len(rep.Final.Actuals))

	return nil
}
