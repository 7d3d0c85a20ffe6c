// Package modelname turns free-text cable model names into structured
// conductor, insulation and shielding descriptions.
package modelname

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pwpl/pds-engine/internal/models"
)

var (
	multicorePattern = regexp.MustCompile(`\d+C\s*X`)
	awgPattern       = regexp.MustCompile(`X(\d+)`)
	strandPattern    = regexp.MustCompile(`\((\d+)/(\d+\.?\d*)\)`)
	corePattern      = regexp.MustCompile(`(\d+)C`)
)

// Defaults applied when a token is missing from the name
const (
	DefaultAWG            = "12"
	DefaultStrandCount    = "37"
	DefaultStrandDiameter = "0.30"
	DefaultCoreCount      = "1"

	InsulationMaterial = "GFR 340 LFH"
)

// productRule maps a predicate on the normalized name to a product type
type productRule struct {
	match       func(name string) bool
	productType models.ProductType
}

func containsAny(tokens ...string) func(string) bool {
	return func(name string) bool {
		for _, t := range tokens {
			if strings.Contains(name, t) {
				return true
			}
		}
		return false
	}
}

// productRules is evaluated top to bottom; the first match wins.
// "TYPE 1SB" must precede "TYPE 1" since the latter is its prefix.
var productRules = []productRule{
	{containsAny("TYPE 1SB", "TYPE 1SBM"), models.ProductType1SB},
	{containsAny("TYPE 1"), models.ProductType1},
	{containsAny("TYPE 2SB", "TYPE 2SBM"), models.ProductType2SB},
	{containsAny("TYPE 2"), models.ProductType2},
	{containsAny("LFH SHEATH", "SHEATH"), models.ProductLFHSheath},
	{multicorePattern.MatchString, models.ProductMulticore},
	{containsAny("1C"), models.ProductSingleCore},
}

// colorKeywords are checked in order; the first one present is used
var colorKeywords = []struct {
	keyword string
	color   string
}{
	{"WHITE", "White"},
	{"BLACK", "Black"},
	{"RED", "Red"},
	{"BLUE", "Blue"},
	{"GREEN", "Green"},
}

// Parse reads a model name. It never fails: every missing token falls back
// to a documented default.
func Parse(modelName string) models.ParsedModel {
	name := strings.ToUpper(strings.TrimSpace(modelName))

	productType := detectProductType(name)

	return models.ParsedModel{
		ProductType:       productType,
		ConductorDetails:  parseConductor(name),
		InsulationDetails: parseInsulation(name),
		ShieldingDetails:  parseShielding(name),
		Standard:          detectStandard(name, productType),
		OriginalName:      modelName,
	}
}

func detectProductType(name string) models.ProductType {
	for _, rule := range productRules {
		if rule.match(name) {
			return rule.productType
		}
	}
	return models.ProductEquipmentWire
}

func parseConductor(name string) models.ConductorDetails {
	awg := DefaultAWG
	if m := awgPattern.FindStringSubmatch(name); m != nil {
		awg = m[1]
	}

	strandCount, strandDiameter := DefaultStrandCount, DefaultStrandDiameter
	if m := strandPattern.FindStringSubmatch(name); m != nil {
		strandCount, strandDiameter = m[1], m[2]
	}

	coreCount := DefaultCoreCount
	if m := corePattern.FindStringSubmatch(name); m != nil {
		coreCount = m[1]
	}

	material := models.MaterialCopper
	if strings.Contains(name, "ATC") {
		material = models.MaterialATC
	}

	row := lookupAWG(awg)

	return models.ConductorDetails{
		Material:        material,
		AWG:             awg,
		StrandCount:     strandCount,
		StrandDiameter:  strandDiameter,
		CoreCount:       coreCount,
		BunchedDiameter: row.BunchedDiameter,
		Resistance:      row.Resistance,
		CurrentRating:   row.CurrentRating,
	}
}

func parseInsulation(name string) models.InsulationDetails {
	thickness := "0.20"
	if strings.Contains(name, "TYPE 2") {
		thickness = "0.23"
	}

	color := "White"
	for _, c := range colorKeywords {
		if strings.Contains(name, c.keyword) {
			color = c.color
			break
		}
	}

	return models.InsulationDetails{
		Material:  InsulationMaterial,
		Thickness: thickness,
		Color:     color,
		OD:        InsulationOD(thickness),
	}
}

// InsulationOD returns the outer diameter range for a wall thickness over
// the 2.1 mm bunched core, rounded to one decimal.
func InsulationOD(thickness string) string {
	t, err := strconv.ParseFloat(thickness, 64)
	if err != nil {
		t = 0
	}
	low := 2.1 + 2*t
	high := low + 0.2
	return strconv.FormatFloat(low, 'f', 1, 64) + "-" + strconv.FormatFloat(high, 'f', 1, 64)
}

func parseShielding(name string) *models.ShieldingDetails {
	if !strings.Contains(name, "SHIELD") && !strings.Contains(name, "SCREEN") {
		return nil
	}
	return &models.ShieldingDetails{
		Material:          models.MaterialATC,
		Construction:      "24*7*0.13",
		Coverage:          "85",
		DiameterOverBraid: "7.55",
	}
}

func detectStandard(name string, productType models.ProductType) models.Standard {
	if productType == models.ProductLFHSheath || strings.Contains(name, "SHEATH") {
		return models.StandardPart31
	}
	return models.StandardPart18
}
