package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwpl/pds-engine/internal/models"
)

func findResult(t *testing.T, results []models.ComplianceResult, test string) models.ComplianceResult {
	t.Helper()
	for _, r := range results {
		if r.Test == test {
			return r
		}
	}
	require.Failf(t, "result not found", "test %s", test)
	return models.ComplianceResult{}
}

func TestEvaluate_TensileStrength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		status    models.ComplianceStatus
		deviation string
	}{
		{"above minimum", "10", models.StatusPass, "2.00"},
		{"at minimum", "8", models.StatusPass, "0.00"},
		{"below minimum", "5", models.StatusFail, "-3.00"},
		{"with unit suffix", "12.5 N/mm²", models.StatusPass, "4.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Evaluate(models.StandardPart31, map[string]string{"tensileStrength": tt.value})
			r := findResult(t, results, "tensileStrength")
			assert.Equal(t, tt.status, r.Status)
			require.NotNil(t, r.Deviation)
			assert.Equal(t, tt.deviation, *r.Deviation)
			assert.Equal(t, "≥ 8", r.Limit)
			assert.Equal(t, "N/mm²", r.Unit)
			assert.Equal(t, "Tensile Strength", r.Label)
		})
	}
}

func TestEvaluate_NotTested(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		r := findResult(t, Evaluate(models.StandardPart31, nil), "tensileStrength")
		assert.Equal(t, models.StatusNotTested, r.Status)
		assert.Equal(t, NotTestedValue, r.Value)
		assert.Nil(t, r.Deviation)
	})

	t.Run("non numeric", func(t *testing.T) {
		r := findResult(t, Evaluate(models.StandardPart31, map[string]string{"tensileStrength": "n/a"}), "tensileStrength")
		assert.Equal(t, models.StatusNotTested, r.Status)
		assert.Equal(t, "n/a", r.Value)
	})
}

func TestEvaluate_MaxLimits(t *testing.T) {
	results := Evaluate(models.StandardPart31, map[string]string{
		"toxicityIndex": "2.8",
		"smokeIndex":    "25",
	})

	tox := findResult(t, results, "toxicityIndex")
	assert.Equal(t, models.StatusPass, tox.Status)
	assert.Equal(t, "2.20", *tox.Deviation)
	assert.Equal(t, "≤ 5", tox.Limit)

	smoke := findResult(t, results, "smokeIndex")
	assert.Equal(t, models.StatusFail, smoke.Status)
	assert.Equal(t, "-5.00", *smoke.Deviation)
}

func TestEvaluate_TextualTests(t *testing.T) {
	t.Run("omitted when not supplied", func(t *testing.T) {
		results := Evaluate(models.StandardPart31, map[string]string{})
		assert.Len(t, results, len(Part31Limits))
	})

	t.Run("halogen and heat shock", func(t *testing.T) {
		results := Evaluate(models.StandardPart31, map[string]string{
			"halogenContent": "Negative (Lassaigne)",
			"heatShock":      "Cracked",
		})
		require.Len(t, results, len(Part31Limits)+2)

		halogen := findResult(t, results, "halogenContent")
		assert.Equal(t, models.StatusPass, halogen.Status)
		assert.Equal(t, "Negative", halogen.Limit)

		shock := findResult(t, results, "heatShock")
		assert.Equal(t, models.StatusFail, shock.Status)
		assert.Equal(t, "No Cracking", shock.Limit)
	})

	t.Run("none and pass phrases", func(t *testing.T) {
		results := Evaluate(models.StandardPart31, map[string]string{
			"halogenContent": "None detected",
			"heatShock":      "PASS",
		})
		assert.Equal(t, models.StatusPass, findResult(t, results, "halogenContent").Status)
		assert.Equal(t, models.StatusPass, findResult(t, results, "heatShock").Status)
	})
}

func TestEvaluate_Part18HasNoLimitTable(t *testing.T) {
	results := Evaluate(models.StandardPart18, map[string]string{"tensileStrength": "10"})
	assert.Empty(t, results)
}

func TestOverall(t *testing.T) {
	pass := models.ComplianceResult{Status: models.StatusPass}
	fail := models.ComplianceResult{Status: models.StatusFail}
	notTested := models.ComplianceResult{Status: models.StatusNotTested}

	assert.True(t, Overall([]models.ComplianceResult{pass, pass}))
	assert.False(t, Overall([]models.ComplianceResult{pass, fail}))
	assert.False(t, Overall([]models.ComplianceResult{pass, notTested}))
	assert.True(t, Overall(nil))
}

func TestOverall_AllPart31Passing(t *testing.T) {
	params := map[string]string{
		"tensileStrength":      "12.5",
		"elongationAtBreak":    "285",
		"tearResistance":       "7.8",
		"criticalOxygenIndex":  "32.1",
		"temperatureIndex":     "275",
		"toxicityIndex":        "2.8",
		"smokeIndex":           "15",
		"coldElongation":       "25",
		"insulationResistance": "0.3",
		"hotSet":               "120",
		"hotSetPermanent":      "10",
		"pressureTest":         "30",
		"ozoneResistance":      "150",
		"uvResistance":         "1200",
	}
	results := Evaluate(models.StandardPart31, params)
	assert.True(t, Overall(results))

	delete(params, "uvResistance")
	assert.False(t, Overall(Evaluate(models.StandardPart31, params)))
}

func TestFormatLimit(t *testing.T) {
	lo, hi := 1.5, 3.0
	assert.Equal(t, "≥ 0.1", FormatLimit(atLeast(0.1, "MΩ·km")))
	assert.Equal(t, "≤ 175", FormatLimit(atMost(175, "%")))
	assert.Equal(t, "1.5 - 3", FormatLimit(Limit{Min: &lo, Max: &hi}))
	assert.Equal(t, "Per Standard", FormatLimit(Limit{}))
}

func TestParseMeasurement(t *testing.T) {
	v, ok := ParseMeasurement(" 32.5% ")
	assert.True(t, ok)
	assert.InDelta(t, 32.5, v, 1e-9)

	v, ok = ParseMeasurement(".5")
	assert.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-9)

	_, ok = ParseMeasurement("approx 3")
	assert.False(t, ok)
}

func TestReferences(t *testing.T) {
	assert.Equal(t, "DEF STAN 61-12 Part 18 (Issue 4, 6 January 1995) / Customer TDS / NES 518", EnhancedReference(models.StandardPart18))
	assert.Equal(t, "DEF STAN 61-12 Part 31 (Issue 2, 20th January 2006)", Reference(models.StandardPart31))
	assert.Equal(t, "DEF STAN 61-12", Reference("other"))
	assert.Equal(t, "DEF STAN 61-12 / Customer TDS / NES 518", EnhancedReference("other"))
	assert.Equal(t, "LFH Equipment Wires and Cables", Details(models.StandardPart18).Subtitle)
}

func TestSampleData(t *testing.T) {
	p18 := SampleData(models.StandardPart18)
	assert.Len(t, p18.InsulationTests, 6)
	assert.Len(t, p18.JacketTests, 6)
	assert.Nil(t, p18.SheathTests)

	p31 := SampleData(models.StandardPart31)
	assert.Len(t, p31.SheathTests, 8)
	assert.Equal(t, "Halogen Content", p31.SheathTests[7].Parameter)

	assert.True(t, SampleData("unknown").IsEmpty())
}
