package compliance

import (
	"strconv"
)

// Limit is a one- or two-sided bound on a measured value
type Limit struct {
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Unit string   `json:"unit"`
}

func atLeast(v float64, unit string) Limit {
	return Limit{Min: &v, Unit: unit}
}

func atMost(v float64, unit string) Limit {
	return Limit{Max: &v, Unit: unit}
}

// NamedLimit pairs a test identifier with its limit
type NamedLimit struct {
	Test  string `json:"test"`
	Limit Limit  `json:"limit"`
}

// Part31Limits are the numeric sheath limits of Part 31, in evaluation order
var Part31Limits = []NamedLimit{
	{"tensileStrength", atLeast(8, "N/mm²")},
	{"elongationAtBreak", atLeast(200, "%")},
	{"tearResistance", atLeast(5, "N/mm")},
	{"criticalOxygenIndex", atLeast(29, "%")},
	{"temperatureIndex", atLeast(250, "°C")},
	{"toxicityIndex", atMost(5, "per 100g")},
	{"smokeIndex", atMost(20, "-")},
	{"coldElongation", atLeast(20, "%")},
	{"insulationResistance", atLeast(0.1, "MΩ·km")},
	{"hotSet", atMost(175, "%")},
	{"hotSetPermanent", atMost(25, "%")},
	{"pressureTest", atMost(50, "%")},
	{"ozoneResistance", atLeast(120, "hours")},
	{"uvResistance", atLeast(1000, "hours")},
}

var testLabels = map[string]string{
	"tensileStrength":      "Tensile Strength",
	"elongationAtBreak":    "Elongation at Break",
	"tearResistance":       "Tear Resistance",
	"criticalOxygenIndex":  "Critical Oxygen Index",
	"temperatureIndex":     "Temperature Index",
	"toxicityIndex":        "Toxicity Index",
	"smokeIndex":           "Smoke Index",
	"halogenContent":       "Halogen Content",
	"coldElongation":       "Cold Elongation (-30°C)",
	"heatShock":            "Heat Shock (150°C, 4h)",
	"insulationResistance": "Insulation Resistance",
	"hotSet":               "Hot Set Test - Max Elongation",
	"hotSetPermanent":      "Hot Set - Permanent Elongation",
	"pressureTest":         "Pressure Test (120°C)",
	"ozoneResistance":      "Ozone Resistance",
	"uvResistance":         "UV Resistance",
}

// Label returns the display label of a test, or the identifier itself
func Label(test string) string {
	if label, ok := testLabels[test]; ok {
		return label
	}
	return test
}

// FormatLimit renders a limit as printed in the results table
func FormatLimit(l Limit) string {
	switch {
	case l.Min != nil && l.Max != nil:
		return formatNumber(*l.Min) + " - " + formatNumber(*l.Max)
	case l.Min != nil:
		return "≥ " + formatNumber(*l.Min)
	case l.Max != nil:
		return "≤ " + formatNumber(*l.Max)
	default:
		return "Per Standard"
	}
}

// formatNumber prints the shortest representation, so 8 is "8" and 0.1 is "0.1"
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
