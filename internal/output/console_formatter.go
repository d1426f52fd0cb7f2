package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/fire-projector/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	writeSummary(&buf, report)
	return buf.Bytes(), nil
}

func writeSummary(buf *bytes.Buffer, report *domain.ProjectionReport) {
	p := report.Parameters
	s := report.Summary
	d := report.Display

	fmt.Fprintln(buf, "NET WORTH PROJECTION SUMMARY")
	fmt.Fprintln(buf, "================================")
	fmt.Fprintf(buf, "Starting portfolio: %s\n", FormatAmount(p.InitialPortfolio, d))
	fmt.Fprintf(buf, "Target net worth:   %s\n", FormatAmount(p.TargetValue, d))

	fmt.Fprintln(buf, outcomeLine(report))

	if s.NonFinite || s.YearsToTarget == 0 {
		return
	}
	fmt.Fprintf(buf, "  Total invested:     %s\n", FormatMoney(s.TotalInvested, d))
	fmt.Fprintf(buf, "  Market gains:       %s\n", FormatMoney(s.TotalMarketGains, d))
	if s.CrossoverYear > 0 {
		fmt.Fprintf(buf, "  Crossover year:     %d (returns exceed new investment)\n", s.CrossoverYear)
	}
	if !s.ExpenseMultiple.IsZero() {
		fmt.Fprintf(buf, "  Final portfolio is %sx final-year expenses\n", s.ExpenseMultiple.StringFixed(1))
	}
}

// outcomeLine states how the projection ended.
func outcomeLine(report *domain.ProjectionReport) string {
	d := report.Display
	years := report.Summary.YearsToTarget
	final := report.Result.Final().Portfolio
	switch report.Result.StopReason {
	case domain.StopTargetReached:
		if years == 0 {
			return "Target already reached today."
		}
		return fmt.Sprintf("Target reached in %d years with %s.", years, FormatAmount(final, d))
	case domain.StopMaxYears:
		return fmt.Sprintf("Target NOT reached within %d years (portfolio %s).", report.Result.MaxYears, FormatAmount(final, d))
	case domain.StopNonFinite:
		return fmt.Sprintf("Projection stopped at year %d: values are no longer finite.", years)
	case domain.StopCancelled:
		return fmt.Sprintf("Projection cancelled at year %d.", years)
	}
	return fmt.Sprintf("Projection ended at year %d.", years)
}
