package output

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/rpgo/fire-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with an inline SVG chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

const (
	htmlChartWidth  = 860
	htmlChartHeight = 360
)

//go:embed templates/*.html.tmpl
var htmlTemplateFS embed.FS

var htmlTemplate = template.Must(template.New("report.html.tmpl").Funcs(template.FuncMap{
	// amount and money are rebound per execution to the report's display settings.
	"amount": func(float64) string { return "" },
	"money":  func(decimal.Decimal) string { return "" },
	"rate":   FormatRate,
}).ParseFS(htmlTemplateFS, "templates/*.html.tmpl"))

type htmlData struct {
	Report *domain.ProjectionReport
	Chart  Chart
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := executeHTML(&buf, "report.html.tmpl", report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderReportBody renders the summary, chart, assumptions and table without
// the surrounding document, for embedding in another page.
func RenderReportBody(report *domain.ProjectionReport) (template.HTML, error) {
	var buf bytes.Buffer
	if err := executeHTML(&buf, "body", report); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func executeHTML(buf *bytes.Buffer, name string, report *domain.ProjectionReport) error {
	t, err := htmlTemplate.Clone()
	if err != nil {
		return err
	}
	d := report.Display
	t.Funcs(template.FuncMap{
		"amount": func(v float64) string { return FormatAmount(v, d) },
		"money":  func(v decimal.Decimal) string { return FormatMoney(v, d) },
	})
	return t.ExecuteTemplate(buf, name, htmlData{
		Report: report,
		Chart:  BuildChart(report, htmlChartWidth, htmlChartHeight),
	})
}
