package domain

import "strings"

// DisplayUnit is a presentation denomination such as a crore (10,000,000).
type DisplayUnit struct {
	Name    string
	Label   string
	Divisor float64
}

var displayUnits = []DisplayUnit{
	{Name: "none", Label: "", Divisor: 1},
	{Name: "thousand", Label: "K", Divisor: 1e3},
	{Name: "lakh", Label: "L", Divisor: 1e5},
	{Name: "million", Label: "M", Divisor: 1e6},
	{Name: "crore", Label: "Cr", Divisor: 1e7},
	{Name: "billion", Label: "B", Divisor: 1e9},
}

// LookupDisplayUnit resolves a unit by name (case-insensitive).
func LookupDisplayUnit(name string) (DisplayUnit, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, u := range displayUnits {
		if u.Name == n {
			return u, true
		}
	}
	return DisplayUnit{}, false
}

// DisplayUnitNames lists the supported unit names.
func DisplayUnitNames() []string {
	names := make([]string, 0, len(displayUnits))
	for _, u := range displayUnits {
		names = append(names, u.Name)
	}
	return names
}

// Scale converts an amount into this unit.
func (u DisplayUnit) Scale(amount float64) float64 {
	if u.Divisor == 0 {
		return amount
	}
	return amount / u.Divisor
}
