package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/fire-projector/internal/domain"
)

// ConsoleTableFormatter renders assumptions, summary and the full year table.
type ConsoleTableFormatter struct{}

func (c ConsoleTableFormatter) Name() string { return "console" }

func (c ConsoleTableFormatter) Extension() string { return "txt" }

func (c ConsoleTableFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	d := report.Display
	p := report.Parameters

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "YEAR-BY-YEAR NET WORTH PROJECTION")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "STARTING POINT:")
	fmt.Fprintf(&buf, "  Portfolio:          %s\n", FormatAmount(p.InitialPortfolio, d))
	fmt.Fprintf(&buf, "  Gross income:       %s\n", FormatAmount(p.InitialIncome, d))
	fmt.Fprintf(&buf, "  Post-tax income:    %s\n", FormatAmount(p.InitialPostTaxIncome, d))
	fmt.Fprintf(&buf, "  Expenses:           %s\n", FormatAmount(p.InitialExpenses, d))
	fmt.Fprintln(&buf)
	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	headers := []string{"Year", "Portfolio", "Growth", "Investment", "Expenses", "Income"}
	rows := make([][]string, 0, len(report.Result.Snapshots))
	for _, s := range report.Result.Snapshots {
		rows = append(rows, []string{
			intToString(s.Year),
			FormatAmount(s.Portfolio, d),
			FormatAmount(s.Growth, d),
			FormatAmount(s.Investment, d),
			FormatAmount(s.Expenses, d),
			FormatAmount(s.Income, d),
		})
	}
	writeTable(&buf, headers, rows)
	fmt.Fprintln(&buf)
	writeSummary(&buf, report)
	return buf.Bytes(), nil
}

// writeTable right-aligns every column except the first.
func writeTable(buf *bytes.Buffer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := len([]rune(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	line := func(cells []string) {
		for i, cell := range cells {
			pad := strings.Repeat(" ", widths[i]-len([]rune(cell)))
			if i == 0 {
				buf.WriteString(cell + pad)
			} else {
				buf.WriteString("  " + pad + cell)
			}
		}
		buf.WriteString("\n")
	}

	line(headers)
	total := 0
	for _, w := range widths {
		total += w + 2
	}
	buf.WriteString(strings.Repeat("-", total-2) + "\n")
	for _, row := range rows {
		line(row)
	}
}
