// Package compliance evaluates measured test values against DEF STAN 61-12
// limits and provides the per-standard reference data used on reports.
package compliance

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pwpl/pds-engine/internal/models"
)

// NotTestedValue is shown in place of a missing measurement
const NotTestedValue = "Not Tested"

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseMeasurement reads the leading decimal number of a value such as
// "12.5 N/mm²". ok is false when no number leads the string.
func ParseMeasurement(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Evaluate compares supplied measurements against the limit table of a
// standard. Only Part 31 carries a limit table; other standards yield an
// empty result set.
func Evaluate(standard models.Standard, params map[string]string) []models.ComplianceResult {
	results := make([]models.ComplianceResult, 0, len(Part31Limits)+2)
	if standard != models.StandardPart31 {
		return results
	}

	for _, nl := range Part31Limits {
		results = append(results, evaluateNumeric(nl.Test, params[nl.Test], nl.Limit))
	}

	if v := params["halogenContent"]; v != "" {
		results = append(results, evaluateText("halogenContent", "Halogen Content", v, "Negative", "negative", "none"))
	}
	if v := params["heatShock"]; v != "" {
		results = append(results, evaluateText("heatShock", "Heat Shock Test", v, "No Cracking", "no crack", "pass"))
	}

	return results
}

func evaluateNumeric(test, raw string, limit Limit) models.ComplianceResult {
	result := models.ComplianceResult{
		Test:   test,
		Label:  Label(test),
		Value:  raw,
		Limit:  FormatLimit(limit),
		Unit:   limit.Unit,
		Status: models.StatusNotTested,
	}
	if raw == "" {
		result.Value = NotTestedValue
	}

	value, ok := ParseMeasurement(raw)
	if !ok {
		return result
	}

	var deviation float64
	switch {
	case limit.Min != nil:
		deviation = value - *limit.Min
		result.Status = statusOf(value >= *limit.Min && (limit.Max == nil || value <= *limit.Max))
	case limit.Max != nil:
		deviation = *limit.Max - value
		result.Status = statusOf(value <= *limit.Max)
	default:
		return result
	}

	d := strconv.FormatFloat(deviation, 'f', 2, 64)
	result.Deviation = &d
	return result
}

func evaluateText(test, label, raw, limit string, passPhrases ...string) models.ComplianceResult {
	lower := strings.ToLower(raw)
	passed := false
	for _, phrase := range passPhrases {
		if strings.Contains(lower, phrase) {
			passed = true
			break
		}
	}
	return models.ComplianceResult{
		Test:   test,
		Label:  label,
		Value:  raw,
		Limit:  limit,
		Unit:   "-",
		Status: statusOf(passed),
	}
}

func statusOf(pass bool) models.ComplianceStatus {
	if pass {
		return models.StatusPass
	}
	return models.StatusFail
}

// Overall is the logical AND of every result having passed. NOT_TESTED
// counts against compliance. An empty result set is vacuously compliant.
func Overall(results []models.ComplianceResult) bool {
	for _, r := range results {
		if r.Status != models.StatusPass {
			return false
		}
	}
	return true
}
