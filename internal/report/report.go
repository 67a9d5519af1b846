// Package report writes sweep results to disk as JSON and CSV so external
// plotting tools can render them.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/option-pricer/internal/sweep"
)

// WriteJSON writes the curve to curve.json in outdir.
func WriteJSON(points []sweep.Point, outdir string) error {
	b, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "curve.json"), b, 0644)
}

// WriteCSV writes the curve to curve.csv in outdir, one row per grid point.
func WriteCSV(points []sweep.Point, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "curve.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"spot", "call_price", "put_price", "call_delta", "put_delta", "gamma", "vega"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			fmt.Sprintf("%.4f", p.Spot),
			fmt.Sprintf("%.4f", p.CallPrice),
			fmt.Sprintf("%.4f", p.PutPrice),
			fmt.Sprintf("%.4f", p.CallDelta),
			fmt.Sprintf("%.4f", p.PutDelta),
			fmt.Sprintf("%.6f", p.Gamma),
			fmt.Sprintf("%.4f", p.Vega),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
