package specs

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pwpl/pds-engine/internal/models"
)

// ProductParts are the fields read from a free-form product name for the
// standard data sheet
type ProductParts struct {
	Conductor string
	Cores     string
	AWG       string
	Stranding string
	Unit      string
}

// DefaultProductParts fill any field a product name does not supply
var DefaultProductParts = ProductParts{
	Conductor: "ATC",
	Cores:     "3C",
	AWG:       "12",
	Stranding: "37/0.30",
	Unit:      "MM",
}

// productPatterns are tried in order; the first match wins
var productPatterns = []struct {
	re     *regexp.Regexp
	fields func(m []string) ProductParts
}{
	{
		// ATC 3C X12 (37/0.30) MM
		re: regexp.MustCompile(`(?i)^(\w+)\s+(\d+C?)\s*X\s*(\d+)\s*\((\d+/\d+\.\d+)\)\s*(\w+)$`),
		fields: func(m []string) ProductParts {
			return ProductParts{Conductor: m[1], Cores: m[2], AWG: m[3], Stranding: m[4], Unit: m[5]}
		},
	},
	{
		// ATC 3C X 12 AWG SHIELDED
		re: regexp.MustCompile(`(?i)^(\w+)\s+(\d+C?)\s*X\s*(\d+)\s*AWG\s*(.*)$`),
		fields: func(m []string) ProductParts {
			return ProductParts{Conductor: m[1], Cores: m[2], AWG: m[3]}
		},
	},
	{
		// UL1007 22AWG
		re: regexp.MustCompile(`(?i)^(\w+)\s+(.+)$`),
		fields: func(m []string) ProductParts {
			return ProductParts{Conductor: m[1]}
		},
	},
}

// ParseProductName splits a product name with the first matching pattern.
// Fields the pattern does not capture keep their defaults.
func ParseProductName(input string) ProductParts {
	input = strings.TrimSpace(input)
	for _, p := range productPatterns {
		m := p.re.FindStringSubmatch(input)
		if m == nil {
			continue
		}
		parts := p.fields(m)
		fillDefaults(&parts)
		return parts
	}
	return DefaultProductParts
}

func fillDefaults(p *ProductParts) {
	for _, f := range []struct {
		field *string
		def   string
	}{
		{&p.Conductor, DefaultProductParts.Conductor},
		{&p.Cores, DefaultProductParts.Cores},
		{&p.AWG, DefaultProductParts.AWG},
		{&p.Stranding, DefaultProductParts.Stranding},
		{&p.Unit, DefaultProductParts.Unit},
	} {
		if *f.field == "" {
			*f.field = f.def
		}
	}
}

// CoreNumber is the core count without its C suffix
func (p ProductParts) CoreNumber() string {
	return strings.TrimRight(p.Cores, "Cc")
}

// TechnicalSpecifications builds the fixed A) to I) tables of a standard
// production data sheet, with the AWG and core count of productName filled
// in.
func TechnicalSpecifications(productName string) models.SpecificationSet {
	parts := ParseProductName(productName)
	awg := parts.AWG
	cores := parts.CoreNumber()

	sequence := 3
	if n := CoreCount(cores); n > 0 {
		sequence = n
	}

	return models.SpecificationSet{
		Conductor: rows(
			[3]string{"Conductor Material", "Visual", "Tinned Copper (TC)"},
			[3]string{"Conductor Size", "AWG", awg},
			[3]string{"No of strands", "Nos", "37"},
			[3]string{"Strand diameter", "mm", "0.30"},
			[3]string{"Bunched Dia", "mm(nom)", "2.1"},
			[3]string{"Conductor Resistance at 20°C (max)", "Ω/Km", "7.6"},
		),
		Insulation: rows(
			[3]string{"Material", "Visual", "Cross-linked Polyethylene (XLPE)"},
			[3]string{"Thickness", "mm", "0.23"},
			[3]string{"OD", "mm", "2.5-2.7"},
			[3]string{"Color", "Visual", "White"},
			[3]string{"No of cores", "Nos", cores},
			[3]string{"Identification Marking", "Visual", "Number marking on each core with 50 mm intervals"},
		),
		Twisting: rows(
			[3]string{"Core sequence", "Visual", CoreSequence(sequence)},
			[3]string{"Laid up diameter", "mm(max)", "5.8"},
			[3]string{"Lay direction", "Visual", "RH"},
			[3]string{"Lay length", "mm", "70-90"},
			[3]string{"Wrap tape", "Visual", "Polyester tape with 20% coverage"},
		),
		InnerJacket: rows(
			[3]string{"Material", "Visual", "Polyethylene (PE)"},
			[3]string{"Thickness", "mm(Nom)", "0.50"},
			[3]string{"OD", "mm", "6.9-7.0"},
		),
		Shielding: rows(
			[3]string{"Material", "Visual", "Tinned Copper (TC)"},
			[3]string{"Construction", "Nos/mm", "24*7*0.13"},
			[3]string{"Coverage (min)", "%", "85"},
			[3]string{"Diameter over Braid", "mm(max)", "7.55"},
		),
		Jacket: rows(
			[3]string{"Material", "Visual", "Polyvinyl Chloride (PVC)"},
			[3]string{"Thickness", "mm(Nom)", "1.40"},
			[3]string{"OD", "mm", "10.3-10.5"},
			[3]string{"Color", "Visual", "Black"},
			[3]string{"Marking on Cable", "Visual", fmt.Sprintf("DEF STAN 61-12 %sC X %s AWG 600V SHIELDED CABLE", cores, awg)},
		),
		Electrical: rows(
			[3]string{"Conductor Resistance at 20°C (max)", "Ω/Km", "5.64"},
			[3]string{"Maximum current rating", "Amps", "15"},
			[3]string{"Operating temperature", "°C", "-40 to +85°C"},
			[3]string{"Operating voltage", "V", "600V"},
			[3]string{"Dielectric Strength", "Volts", "1500"},
			[3]string{"Insulation Resistance", "MΩ.km", "100"},
			[3]string{"Bending Radius", "mm", "10XOD (Flexing) 4XOD(Fixed)"},
		),
		InsulationTests: rows(
			[3]string{"Insulation resistance at 20°C", "MΩ.km", "100"},
			[3]string{"Dielectric strength test", "Volts", "1500"},
			[3]string{"High voltage test", "Volts", "2000"},
			[3]string{"Temperature test", "°C", "85"},
			[3]string{"Cold bend test", "°C", "-40"},
			[3]string{"Aging test", "Hours", "168"},
			[3]string{"Flame test", "Visual", "Pass"},
		),
		JacketTests: rows(
			[3]string{"Tensile strength (Min)", "MPa", "12.5"},
			[3]string{"Elongation (Min)", "%", "150"},
			[3]string{"Cold bend test", "°C", "-40"},
			[3]string{"Heat shock test", "°C", "150"},
			[3]string{"Oil resistance test", "Hours", "24"},
			[3]string{"Aging test", "Hours", "168"},
			[3]string{"Flame test", "Visual", "Pass"},
		),
	}
}
