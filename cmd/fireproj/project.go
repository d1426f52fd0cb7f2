package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/rpgo/fire-projector/internal/calculation"
	"github.com/rpgo/fire-projector/internal/config"
	"github.com/rpgo/fire-projector/internal/domain"
	"github.com/rpgo/fire-projector/internal/output"
	"github.com/rpgo/fire-projector/internal/service"
	"github.com/spf13/cobra"
)

type projectOptions struct {
	configFile  string
	format      string
	outputDir   string
	maxYears    int
	unit        string
	verbose     bool
	debug       bool
	adjust      bool
	fieldValues map[string]*string
}

func newProjectCmd() *cobra.Command {
	opts := &projectOptions{fieldValues: map[string]*string{}}
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run a projection and print or save the report",
		Long: `Run a projection from a configuration file (or the built-in example)
with optional per-field overrides. Rate overrides are percentages, e.g.
--xirr 12.5. Text formats print to stdout unless --output is set; other
formats are written to --output (default: current directory).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd.Context(), cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configFile, "config", "c", "", "configuration file (YAML)")
	f.StringVarP(&opts.format, "format", "f", "console", "report format: "+strings.Join(output.AvailableFormatterNames(), ", ")+", all")
	f.StringVarP(&opts.outputDir, "output", "o", "", "directory for report files")
	f.IntVar(&opts.maxYears, "max-years", 0, "year bound for the projection (overrides the configuration)")
	f.StringVar(&opts.unit, "unit", "", "display unit: "+strings.Join(domain.DisplayUnitNames(), ", "))
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	f.BoolVar(&opts.debug, "debug", false, "log effective rates and every projected year")
	f.BoolVar(&opts.adjust, "adjust-inflation", false, "report values in today's money")
	for _, field := range config.ParameterFields {
		v := new(string)
		opts.fieldValues[field.Key] = v
		f.StringVar(v, flagName(field.Key), "", field.Label)
	}
	return cmd
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func loadConfiguration(path string) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	if path == "" {
		return parser.CreateExampleConfiguration(), nil
	}
	return parser.LoadFromFile(path)
}

// applyOverrides layers explicitly set flags over the configured parameters.
func applyOverrides(cmd *cobra.Command, opts *projectOptions, base domain.ProjectionParameters) (domain.ProjectionParameters, error) {
	values := url.Values{}
	for _, field := range config.ParameterFields {
		if cmd.Flags().Changed(flagName(field.Key)) {
			values.Set(field.Key, *opts.fieldValues[field.Key])
		}
	}
	params, err := config.ParseParameters(values, base)
	if err != nil {
		return base, err
	}
	params.AdjustForInflation = base.AdjustForInflation
	if cmd.Flags().Changed("adjust-inflation") {
		params.AdjustForInflation = opts.adjust
	}
	return params, nil
}

func runProject(ctx context.Context, cmd *cobra.Command, opts *projectOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := calculation.NewStdLogger(cmd.ErrOrStderr(), opts.verbose || opts.debug)

	cfg, err := loadConfiguration(opts.configFile)
	if err != nil {
		return err
	}
	params, err := applyOverrides(cmd, opts, cfg.Parameters)
	if err != nil {
		return err
	}
	maxYears := cfg.Projection.MaxYears
	if opts.maxYears != 0 {
		if opts.maxYears < 0 || opts.maxYears > config.MaxYearsLimit {
			return fmt.Errorf("--max-years must be between 1 and %d", config.MaxYearsLimit)
		}
		maxYears = opts.maxYears
	}
	display := cfg.Display
	if opts.unit != "" {
		if !config.IsKnownDisplayUnit(opts.unit) {
			return fmt.Errorf("unknown display unit %q (known: %s)", opts.unit, strings.Join(domain.DisplayUnitNames(), ", "))
		}
		display.Unit = opts.unit
	}

	engine := calculation.NewProjectionEngineWithMaxYears(maxYears)
	engine.Debug = opts.debug
	engine.SetLogger(logger)
	svc := service.NewProjectionService(engine, nil, logger, display)

	report, runErr := svc.Run(ctx, params)
	if report == nil {
		return runErr
	}
	if err := emitReport(cmd.OutOrStdout(), report, opts); err != nil {
		return err
	}
	return runErr
}

func emitReport(stdout io.Writer, report *domain.ProjectionReport, opts *projectOptions) error {
	format := output.NormalizeFormatName(opts.format)
	if opts.outputDir == "" && (format == "console" || format == "console-lite") {
		data, err := output.GetFormatterByName(format).Format(report)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	dir := opts.outputDir
	if dir == "" {
		dir = "."
	}
	files, err := output.GenerateReport(report, format, dir)
	for _, f := range files {
		fmt.Fprintf(stdout, "Report written: %s\n", f)
	}
	return err
}
