package output

import (
	"encoding/json"

	"github.com/rpgo/fire-projector/internal/domain"
)

// JSONFormatter serializes the projection report as pretty-printed JSON.
// Reports carrying NaN or Inf values cannot be encoded and return an error.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
