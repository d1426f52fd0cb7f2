package output

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/fire-projector/internal/calculation"
	"github.com/rpgo/fire-projector/internal/domain"
)

func referenceParams() domain.ProjectionParameters {
	return domain.ProjectionParameters{
		InitialPortfolio:     20000000,
		InitialIncome:        10000000,
		InitialExpenses:      1200000,
		IncomeGrowthRate:     0.125,
		ExpenseGrowthRate:    0.05,
		XIRR:                 0.25,
		TargetValue:          8000000000,
		InitialPostTaxIncome: 6500000,
		InflationRate:        0.06,
	}
}

func buildTestReport(t *testing.T, params domain.ProjectionParameters, maxYears int) *domain.ProjectionReport {
	t.Helper()
	engine := calculation.NewProjectionEngineWithMaxYears(maxYears)
	result, err := engine.Project(context.Background(), params)
	if result == nil {
		t.Fatalf("projection returned no result: %v", err)
	}
	return &domain.ProjectionReport{
		Parameters:  params,
		Result:      *result,
		Summary:     calculation.Summarize(params, result),
		Assumptions: calculation.GenerateAssumptions(params),
		Display:     domain.DisplaySettings{Unit: "crore", CurrencySymbol: "₹"},
		GeneratedAt: time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t, referenceParams(), 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Target reached in 22 years with ₹826.82 Cr.") {
		t.Fatalf("expected target line, got: %s", content)
	}
	if !strings.Contains(content, "Crossover year:     2") {
		t.Fatalf("expected crossover year, got: %s", content)
	}
}

func TestConsoleLiteFormatterNotReached(t *testing.T) {
	params := referenceParams()
	params.XIRR = -0.5
	params.InitialPostTaxIncome = 0
	out, err := ConsoleFormatter{}.Format(buildTestReport(t, params, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "Target NOT reached within 10 years") {
		t.Fatalf("expected non-convergence line, got: %s", out)
	}
}

func TestConsoleTableFormatterRows(t *testing.T) {
	out, err := ConsoleTableFormatter{}.Format(buildTestReport(t, referenceParams(), 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"YEAR-BY-YEAR NET WORTH PROJECTION", "KEY ASSUMPTIONS:", "₹3.03 Cr", "₹826.82 Cr"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in console table output", want)
		}
	}
}

func TestCSVExporterRows(t *testing.T) {
	out, err := CSVExporter{}.Format(buildTestReport(t, referenceParams(), 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 24 {
		t.Fatalf("expected header + 23 rows, got %d", len(lines))
	}
	if lines[1] != "0,20000000,0,0,1200000,6500000,false" {
		t.Fatalf("unexpected year 0 row: %s", lines[1])
	}
	if lines[2] != "1,30300000,10300000,5300000,1200000,6500000,false" {
		t.Fatalf("unexpected year 1 row: %s", lines[2])
	}
	if !strings.HasPrefix(lines[23], "22,8268220499,") || !strings.HasSuffix(lines[23], ",true") {
		t.Fatalf("unexpected final row: %s", lines[23])
	}
}

func TestCSVExporterMarksOnlyStoppingYear(t *testing.T) {
	// Year 1 reports a rounded 1000 while the unrounded 999.6 is still short.
	params := domain.ProjectionParameters{InitialPostTaxIncome: 999.6, TargetValue: 1000}
	out, err := CSVExporter{}.Format(buildTestReport(t, params, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[2], "1,1000,") || !strings.HasSuffix(lines[2], ",false") {
		t.Fatalf("year 1 must not be marked: %s", lines[2])
	}
	if !strings.HasPrefix(lines[3], "2,1999,") || !strings.HasSuffix(lines[3], ",true") {
		t.Fatalf("unexpected stopping row: %s", lines[3])
	}
}

func TestCSVExporterUnconvergedMarksNothing(t *testing.T) {
	out, err := CSVExporter{}.Format(buildTestReport(t, referenceParams(), 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), ",true") {
		t.Fatalf("no row should reach the target:\n%s", out)
	}
}

func TestReachedTargetAt(t *testing.T) {
	result := domain.ProjectionResult{
		Converged: true,
		Snapshots: []domain.YearSnapshot{{Year: 0, Portfolio: 900}, {Year: 1, Portfolio: 1000}, {Year: 2, Portfolio: 1100}},
	}
	if reachedTargetAt(result, 1) || !reachedTargetAt(result, 2) {
		t.Fatalf("only the final converged row qualifies")
	}
	result.Converged = false
	if reachedTargetAt(result, 2) {
		t.Fatalf("unconverged runs mark no row")
	}
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	report := buildTestReport(t, referenceParams(), 0)
	out, err := JSONFormatter{}.Format(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded domain.ProjectionReport
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded.Result.Snapshots) != 23 || decoded.Result.Final().Portfolio != 8268220499 {
		t.Fatalf("json lost projection data: %+v", decoded.Result.Final())
	}
}

func TestJSONFormatterRejectsNonFinite(t *testing.T) {
	params := referenceParams()
	params.XIRR = math.NaN()
	if _, err := (JSONFormatter{}).Format(buildTestReport(t, params, 0)); err == nil {
		t.Fatalf("expected error encoding NaN values")
	}
}

func TestHTMLFormatterSections(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t, referenceParams(), 0))
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"Projection Summary",
		"Key Assumptions",
		"Nominal projection (no inflation adjustment)",
		"<polyline",
		"reached in <strong>22 years</strong>",
		"₹826.82 Cr",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in HTML output", want)
		}
	}
}

func TestRenderReportBodyOmitsDocument(t *testing.T) {
	body, err := RenderReportBody(buildTestReport(t, referenceParams(), 0))
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if strings.Contains(string(body), "<!DOCTYPE html>") {
		t.Fatalf("body fragment should not contain the document wrapper")
	}
	if !strings.Contains(string(body), "Year by Year") {
		t.Fatalf("expected table section in body fragment")
	}
}

func TestPDFFormatterProducesDocument(t *testing.T) {
	out, err := PDFFormatter{}.Format(buildTestReport(t, referenceParams(), 0))
	if err != nil {
		t.Fatalf("pdf format error: %v", err)
	}
	if len(out) < 1000 {
		t.Fatalf("pdf output suspiciously small: %d bytes", len(out))
	}
}

func TestBuildChartScalesSeries(t *testing.T) {
	c := BuildChart(buildTestReport(t, referenceParams(), 0), 800, 400)
	if len(c.Series) != 3 {
		t.Fatalf("expected 3 series, got %d", len(c.Series))
	}
	points := strings.Fields(c.Series[0].Points)
	if len(points) != 23 {
		t.Fatalf("expected 23 portfolio points, got %d", len(points))
	}
	// The final portfolio is the maximum so it sits on the top edge.
	if !strings.HasSuffix(points[22], ","+strconv.FormatFloat(c.Top, 'f', 1, 64)) {
		t.Fatalf("expected last point at top edge, got %s", points[22])
	}
	if len(c.XTicks) == 0 || c.XTicks[0].Label != "0" {
		t.Fatalf("expected x ticks starting at year 0")
	}
}

func TestBuildChartEmptyResult(t *testing.T) {
	c := BuildChart(&domain.ProjectionReport{}, 800, 400)
	if len(c.Series) != 0 {
		t.Fatalf("expected no series for empty result")
	}
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console", "console.golden", ConsoleTableFormatter{}},
		{"console_lite", "console_lite.golden", ConsoleFormatter{}},
		{"csv", "csv.golden", CSVExporter{}},
		{"html", "html_prefix.golden", HTMLFormatter{}},
		{"pdf", "pdf_prefix.golden", PDFFormatter{}},
	}

	report := buildTestReport(t, referenceParams(), 0)
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(report)
		if err != nil {
			t.Fatalf("%s: format error: %v", tc.name, err)
		}
		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			// only first line to keep golden small & stable
			line := firstLine(string(out)) + "\n"
			if err := os.WriteFile(goldenPath, []byte(line), 0644); err != nil {
				t.Fatalf("%s: update golden failed: %v", tc.name, err)
			}
		}
		data, err := os.ReadFile(goldenPath)
		if err != nil {
			t.Fatalf("%s: read golden: %v", tc.name, err)
		}
		if !strings.HasPrefix(string(out), strings.TrimSpace(string(data))) {
			t.Fatalf("%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
		}
	}
}

func TestGetFormatterByNameAliases(t *testing.T) {
	cases := map[string]string{
		"console":     "console",
		"TABLE":       "console",
		"summary":     "console-lite",
		" csv-yearly": "csv",
		"html-report": "html",
		"json":        "json",
		"pdf-report":  "pdf",
	}
	for in, want := range cases {
		f := GetFormatterByName(in)
		if f == nil {
			t.Fatalf("%q: expected formatter", in)
		}
		if f.Name() != want {
			t.Fatalf("%q: got %s want %s", in, f.Name(), want)
		}
	}
	if GetFormatterByName("xml") != nil {
		t.Fatalf("expected nil for unknown format")
	}
}

func TestExtensionFor(t *testing.T) {
	if got := ExtensionFor(ConsoleFormatter{}); got != "txt" {
		t.Fatalf("console-lite extension = %s", got)
	}
	if got := ExtensionFor(CSVExporter{}); got != "csv" {
		t.Fatalf("csv extension = %s", got)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestFormatterFuncWritesFile(t *testing.T) {
	ff := FormatterFunc{ID: "years", F: func(r *domain.ProjectionReport) ([]byte, error) {
		return []byte(intToString(r.Summary.YearsToTarget)), nil
	}}
	name, err := WriteFormatted(ff, buildTestReport(t, referenceParams(), 0), t.TempDir())
	if err != nil {
		t.Fatalf("write error: %v", err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(data) != "22" || filepath.Ext(name) != ".years" {
		t.Fatalf("unexpected output %q in %s", data, name)
	}
}
