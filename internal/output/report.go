package output

import (
	"time"

	"github.com/finplan/finplan/internal/domain"
)

// Report bundles one snapshot's full output graph for formatting. The
// formatters only read it; all numbers were already derived by the engine.
type Report struct {
	GeneratedAt time.Time             `json:"generatedAt"`
	Metrics     domain.DerivedMetrics `json:"metrics"`
	Risk        domain.RiskAssessment `json:"risk"`
}

// Formatter renders a report in one output format.
type Formatter interface {
	Format(r *Report) (string, error)
}

// NewFormatter selects a formatter by name: "table", "json" or "csv".
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return &JSONFormatter{Pretty: true}
	case "csv":
		return &CSVFormatter{}
	default:
		return &TableFormatter{}
	}
}
