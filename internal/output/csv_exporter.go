package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/fire-projector/internal/domain"
)

// CSVExporter writes one row per projected year in whole currency units.
type CSVExporter struct{}

func (c CSVExporter) Name() string { return "csv" }

func (c CSVExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Portfolio", "Growth", "Investment", "Expenses", "Income", "ReachedTarget"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, s := range report.Result.Snapshots {
		row := []string{
			intToString(s.Year),
			floatToString(s.Portfolio),
			floatToString(s.Growth),
			floatToString(s.Investment),
			floatToString(s.Expenses),
			floatToString(s.Income),
			boolToString(reachedTargetAt(report.Result, i)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
