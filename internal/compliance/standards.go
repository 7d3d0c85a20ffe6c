package compliance

import (
	"github.com/pwpl/pds-engine/internal/models"
)

var standardDetails = map[models.Standard]models.StandardDetails{
	models.StandardPart31: {
		Title:    "Def Stan 61-12 Part 31 (Issue 2)",
		Subtitle: "Limited Fire Hazard (LFH) Sheathing Materials",
		Date:     "20th January 2006",
		Scope:    "Requirements and test methods for sheaths suitable for temperatures from -30°C to +105°C",
	},
	models.StandardPart18: {
		Title:    "Def Stan 61-12 Part 18 (Issue 4)",
		Subtitle: "LFH Equipment Wires and Cables",
		Date:     "6 January 1995",
		Scope:    "Requirements for equipment wires and cables suitable for temperatures from -50°C to +120°C",
	},
}

var standardReferences = map[models.Standard]string{
	models.StandardPart31: "DEF STAN 61-12 Part 31 (Issue 2, 20th January 2006)",
	models.StandardPart18: "DEF STAN 61-12 Part 18 (Issue 4, 6 January 1995)",
}

const (
	genericReference = "DEF STAN 61-12"
	customerSuffix   = " / Customer TDS / NES 518"
)

// Details returns the title block of a standard, zero value if unknown
func Details(standard models.Standard) models.StandardDetails {
	return standardDetails[standard]
}

// Reference returns the citation used on compliance reports
func Reference(standard models.Standard) string {
	if ref, ok := standardReferences[standard]; ok {
		return ref
	}
	return genericReference
}

// EnhancedReference returns the citation used on production data sheets
func EnhancedReference(standard models.Standard) string {
	return Reference(standard) + customerSuffix
}

// SampleData returns the recorded type-test results shown on production
// data sheets for a standard. Unknown standards get an empty block.
func SampleData(standard models.Standard) *models.ComplianceData {
	switch standard {
	case models.StandardPart18:
		return &models.ComplianceData{
			InsulationTests: []models.ComplianceTest{
				pass("Critical Oxygen Index", "≥ 29%", "32.5%"),
				pass("Smoke Density", "≤ 12%", "8.2%"),
				pass("Toxicity Index", "≤ 0.2", "0.15"),
				pass("Temperature Index", "≥ 250°C", "285°C"),
				pass("Insulation Resistance", "≥ 0.20 MΩ/km", "0.35 MΩ/km"),
				pass("Cold Bend Test (-50°C)", "No cracks", "Pass"),
			},
			JacketTests: []models.ComplianceTest{
				pass("Critical Oxygen Index", "≥ 29%", "31.8%"),
				pass("Smoke Density", "≤ 12%", "9.1%"),
				pass("Toxicity Index", "≤ 0.2", "0.18"),
				pass("Temperature Index", "≥ 250°C", "275°C"),
				pass("HCl Gas Content", "≤ 10 cm³/m", "2.5 cm³/m"),
				pass("Cold Elongation (-30°C)", "≥ 20%", "25%"),
			},
		}
	case models.StandardPart31:
		return &models.ComplianceData{
			SheathTests: []models.ComplianceTest{
				pass("Tensile Strength", "≥ 8 N/mm²", "12.5 N/mm²"),
				pass("Elongation at Break", "≥ 200%", "285%"),
				pass("Tear Resistance", "≥ 5 N/mm", "7.8 N/mm"),
				pass("Critical Oxygen Index", "≥ 29%", "32.1%"),
				pass("Temperature Index", "≥ 250°C", "275°C"),
				pass("Toxicity Index", "≤ 5 per 100g", "2.8 per 100g"),
				pass("Smoke Index", "≤ 20", "15"),
				pass("Halogen Content", "Negative", "Not Detected"),
			},
		}
	default:
		return &models.ComplianceData{}
	}
}

func pass(parameter, limit, result string) models.ComplianceTest {
	return models.ComplianceTest{Parameter: parameter, Limit: limit, Result: result, Status: models.StatusPass}
}
