package domain

// Configuration is the top-level YAML document consumed by the CLI.
type Configuration struct {
	Parameters ProjectionParameters `yaml:"parameters" json:"parameters"`
	Projection ProjectionSettings   `yaml:"projection" json:"projection"`
	Display    DisplaySettings      `yaml:"display" json:"display"`
}

// ProjectionSettings controls the engine loop.
type ProjectionSettings struct {
	MaxYears int `yaml:"max_years" json:"max_years"`
}

// DisplaySettings is presentation only and never changes computed values.
type DisplaySettings struct {
	Unit           string `yaml:"unit" json:"unit"`                       // none|thousand|lakh|million|crore|billion
	CurrencySymbol string `yaml:"currency_symbol" json:"currency_symbol"` // e.g. "₹"
	Locale         string `yaml:"locale,omitempty" json:"locale,omitempty"`
}
