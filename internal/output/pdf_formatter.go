package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rpgo/fire-projector/internal/calculation"
	"github.com/rpgo/fire-projector/internal/domain"
)

// PDFFormatter renders the report as an A4 PDF document.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 15.0
	pdfContentWidth = 210.0 - pdfMarginLeft - pdfMarginRight
)

var pdfColumnWidths = []float64{16, 34, 32, 32, 33, 33}

type pdfReport struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	report *domain.ProjectionReport
}

func (p PDFFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	r := &pdfReport{
		pdf:    fpdf.New("P", "mm", "A4", ""),
		report: report,
	}
	r.tr = r.pdf.UnicodeTranslatorFromDescriptor("")
	r.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	r.pdf.SetAutoPageBreak(true, pdfMarginBottom)
	r.pdf.SetCreationDate(calculation.Now())
	r.pdf.SetTitle("Net Worth Projection Report", true)

	r.addSummaryPage()
	r.addYearByYearTable()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// text makes s printable with the core fonts, which have no rupee glyph.
func (r *pdfReport) text(s string) string {
	return r.tr(strings.ReplaceAll(s, "₹", "Rs."))
}

func (r *pdfReport) amount(v float64) string {
	return r.text(FormatAmount(v, r.report.Display))
}

func (r *pdfReport) addSummaryPage() {
	rep := r.report
	p := rep.Parameters
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 12, "Net Worth Projection Report", "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("Generated: %s", rep.GeneratedAt.Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)

	r.drawSectionHeader("Starting Point")
	r.drawKeyValue("Portfolio", r.amount(p.InitialPortfolio))
	r.drawKeyValue("Gross income", r.amount(p.InitialIncome))
	r.drawKeyValue("Post-tax income", r.amount(p.InitialPostTaxIncome))
	r.drawKeyValue("Expenses", r.amount(p.InitialExpenses))
	r.drawKeyValue("Target", r.amount(p.TargetValue))
	r.pdf.Ln(4)

	r.drawSectionHeader("Outcome")
	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.MultiCell(pdfContentWidth, 6, r.text(outcomeLine(rep)), "", "L", false)
	s := rep.Summary
	if !s.NonFinite {
		d := rep.Display
		r.drawKeyValue("Final portfolio", r.text(FormatMoney(s.FinalPortfolio, d)))
		r.drawKeyValue("Total invested", r.text(FormatMoney(s.TotalInvested, d)))
		r.drawKeyValue("Market gains", r.text(FormatMoney(s.TotalMarketGains, d)))
		if s.CrossoverYear > 0 {
			r.drawKeyValue("Crossover year", intToString(s.CrossoverYear))
		}
		if !s.ExpenseMultiple.IsZero() {
			r.drawKeyValue("Portfolio / expenses", s.ExpenseMultiple.StringFixed(2)+"x")
		}
	}
	r.pdf.Ln(4)

	if len(rep.Assumptions) > 0 {
		r.drawSectionHeader("Key Assumptions")
		r.pdf.SetFont("Arial", "", 10)
		r.pdf.SetTextColor(50, 50, 50)
		for _, a := range rep.Assumptions {
			r.pdf.MultiCell(pdfContentWidth, 5, r.text("- "+a), "", "L", false)
		}
	}
}

func (r *pdfReport) addYearByYearTable() {
	r.pdf.AddPage()
	r.drawSectionHeader("Year by Year")
	headers := []string{"Year", "Portfolio", "Growth", "Investment", "Expenses", "Income"}
	r.drawTableHeader(headers, pdfColumnWidths)

	_, pageHeight := r.pdf.GetPageSize()
	for i, s := range r.report.Result.Snapshots {
		if r.pdf.GetY()+5 > pageHeight-pdfMarginBottom {
			r.pdf.AddPage()
			r.drawTableHeader(headers, pdfColumnWidths)
		}
		r.drawTableRow([]string{
			intToString(s.Year),
			r.amount(s.Portfolio),
			r.amount(s.Growth),
			r.amount(s.Investment),
			r.amount(s.Expenses),
			r.amount(s.Income),
		}, pdfColumnWidths, reachedTargetAt(r.report.Result, i))
	}
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 9, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(pdfMarginLeft, r.pdf.GetY(), pdfMarginLeft+pdfContentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *pdfReport) drawKeyValue(key, value string) {
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(55, 6, key, "", 0, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.CellFormat(pdfContentWidth-55, 6, value, "", 1, "L", false, 0, "")
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

// drawTableRow draws one table row, highlighted when asked.
func (r *pdfReport) drawTableRow(cells []string, widths []float64, highlight bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.SetFont("Arial", "", 9)
	if highlight {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(226, 240, 217)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
