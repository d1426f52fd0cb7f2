package config

import (
	"fmt"
	"math"
	"os"

	"github.com/rpgo/fire-projector/internal/calculation"
	"github.com/rpgo/fire-projector/internal/domain"
	"gopkg.in/yaml.v3"
)

// MaxYearsLimit caps projection.max_years in configuration files.
const MaxYearsLimit = 10000

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes configuration bytes, applies defaults and validates the result.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ApplyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills unset projection and display settings.
func ApplyDefaults(config *domain.Configuration) {
	if config.Projection.MaxYears == 0 {
		config.Projection.MaxYears = calculation.DefaultMaxYears
	}
	if config.Display.Unit == "" {
		config.Display.Unit = DefaultDisplayUnit
	}
	if config.Display.CurrencySymbol == "" {
		config.Display.CurrencySymbol = DefaultCurrencySymbol
	}
}

// ValidateConfiguration validates the loaded configuration.
// Parameter values are only required to be numbers; any real value is a
// legal input to the projection.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateParameters(&config.Parameters); err != nil {
		return fmt.Errorf("parameters validation failed: %w", err)
	}

	if config.Projection.MaxYears <= 0 || config.Projection.MaxYears > MaxYearsLimit {
		return fmt.Errorf("projection max_years must be between 1 and %d", MaxYearsLimit)
	}

	if !IsKnownDisplayUnit(config.Display.Unit) {
		return fmt.Errorf("display unit %q is not supported", config.Display.Unit)
	}

	return nil
}

// validateParameters rejects values YAML can express but a form field cannot
// (.nan, .inf).
func (ip *InputParser) validateParameters(p *domain.ProjectionParameters) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"initial_portfolio", p.InitialPortfolio},
		{"initial_income", p.InitialIncome},
		{"initial_expenses", p.InitialExpenses},
		{"income_growth_rate", p.IncomeGrowthRate},
		{"expense_growth_rate", p.ExpenseGrowthRate},
		{"xirr", p.XIRR},
		{"target_value", p.TargetValue},
		{"initial_post_tax_income", p.InitialPostTaxIncome},
		{"inflation_rate", p.InflationRate},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidParameter, f.name)
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Parameters: domain.ProjectionParameters{
			InitialPortfolio:     20000000,   // 2 crore
			InitialIncome:        10000000,   // 1 crore gross
			InitialExpenses:      1200000,    // 12 lakh
			IncomeGrowthRate:     0.125,
			ExpenseGrowthRate:    0.05,
			XIRR:                 0.25,
			TargetValue:          8000000000, // 800 crore
			InitialPostTaxIncome: 6500000,    // 65 lakh
			InflationRate:        0.06,
			AdjustForInflation:   false,
		},
		Projection: domain.ProjectionSettings{
			MaxYears: calculation.DefaultMaxYears,
		},
		Display: domain.DisplaySettings{
			Unit:           DefaultDisplayUnit,
			CurrencySymbol: DefaultCurrencySymbol,
		},
	}
}
