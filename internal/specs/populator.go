// Package specs joins a parsed model against the fixed construction and
// test tables to produce the sectioned datasheet content.
package specs

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pwpl/pds-engine/internal/models"
)

// MaxCores is the largest core count a datasheet is built for
const MaxCores = 100

// Populator builds specification sets from parsed models
type Populator struct {
	now func() time.Time
}

// Option configures a Populator
type Option func(*Populator)

// WithClock sets the clock used for the cable marking batch date
func WithClock(now func() time.Time) Option {
	return func(p *Populator) {
		p.now = now
	}
}

// NewPopulator creates a new populator
func NewPopulator(opts ...Option) *Populator {
	p := &Populator{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Populate produces the full specification set for a parsed model.
// Twisting and inner jacket appear only for multicore cables, shielding
// only when a screen was detected, and the electrical and test tables only
// for Part 18.
func (p *Populator) Populate(parsed models.ParsedModel) models.PopulatedSpec {
	cond := parsed.ConductorDetails
	ins := parsed.InsulationDetails

	set := models.SpecificationSet{
		Conductor:  conductorRows(cond),
		Insulation: insulationRows(ins, cond.CoreCount),
		Jacket:     jacketRows(cond, p.now()),
	}

	if cores := CoreCount(cond.CoreCount); cores > 1 {
		set.Twisting = twistingRows(cores)
		set.InnerJacket = innerJacketRows()
	}

	if parsed.ShieldingDetails != nil {
		set.Shielding = shieldingRows(*parsed.ShieldingDetails)
	}

	// Part 31 has no counterpart tables here; its test data comes from
	// compliance evaluation only.
	if parsed.Standard == models.StandardPart18 {
		set.Electrical = electricalRows(cond)
		set.InsulationTests = testRows(insulationTests)
		set.JacketTests = testRows(jacketTests)
	}

	return models.PopulatedSpec{
		Specifications:    set,
		Standard:          parsed.Standard,
		ProductType:       parsed.ProductType,
		ConductorDetails:  cond,
		InsulationDetails: ins,
		ShieldingDetails:  parsed.ShieldingDetails,
	}
}

// CoreCount parses a core count, 0 if it is not an integer
func CoreCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// rows numbers a list of (parameter, units, specification) triples from 1
func rows(triples ...[3]string) []models.SpecificationItem {
	items := make([]models.SpecificationItem, len(triples))
	for i, t := range triples {
		items[i] = models.SpecificationItem{
			Sno:            i + 1,
			Parameter:      t[0],
			Units:          t[1],
			Specifications: t[2],
		}
	}
	return items
}

func conductorRows(c models.ConductorDetails) []models.SpecificationItem {
	return rows(
		[3]string{"Conductor Material", "Visual", c.Material},
		[3]string{"Bunched conductor Size", "AWG", c.AWG},
		[3]string{"No of strands", "Nos", c.StrandCount},
		[3]string{"Strand diameter", "mm", c.StrandDiameter},
		[3]string{"Bunched Dia", "mm(nom)", c.BunchedDiameter},
		[3]string{"Conductor Resistance at 20 deg C (max)", "Ω/Km (Max)", c.Resistance},
	)
}

func insulationRows(ins models.InsulationDetails, cores string) []models.SpecificationItem {
	return rows(
		[3]string{"Material", "Visual", ins.Material},
		[3]string{"Thickness", "mm", ins.Thickness},
		[3]string{"OD", "mm", ins.OD},
		[3]string{"Color", "Visual", ins.Color},
		[3]string{"No of cores", "Nos", cores},
		[3]string{"Identification Marking", "Visual", "Number marking on each core with 50 mm intervals"},
	)
}

// CoreSequence lists core numbers 1..n joined by five dots, e.g.
// "1.....2.....3(White core)". n is capped at MaxCores.
func CoreSequence(n int) string {
	n = min(max(n, 0), MaxCores)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = strconv.Itoa(i + 1)
	}
	return strings.Join(parts, ".....") + "(White core)"
}

func twistingRows(cores int) []models.SpecificationItem {
	return rows(
		[3]string{"Core sequence", "Visual", CoreSequence(cores)},
		[3]string{"Laid up diameter", "mm(max)", "5.8"},
		[3]string{"Lay direction", "Visual", "RH"},
		[3]string{"Lay length", "mm", "70-90"},
		[3]string{"Wrap tape", "Visual", "Polyester tape with 20% coverage"},
	)
}

func innerJacketRows() []models.SpecificationItem {
	return rows(
		[3]string{"Material", "Visual", "GFR 340 LFH (Sleeve type Extrusion)"},
		[3]string{"Thickness", "mm(Nom)", "0.50"},
		[3]string{"OD", "mm", "6.9-7.0"},
	)
}

func shieldingRows(s models.ShieldingDetails) []models.SpecificationItem {
	return rows(
		[3]string{"Material", "Visual", s.Material},
		[3]string{"Construction", "Nos/mm", s.Construction},
		[3]string{"Coverage (min)", "%", s.Coverage},
		[3]string{"Diameter over Braid", "mm(max)", s.DiameterOverBraid},
	)
}

// MarkingText is the legend printed along the outer jacket
func MarkingText(cores, awg string, at time.Time) string {
	batch := strings.ToUpper(at.Format("Jan 2006"))
	return fmt.Sprintf("CUSTOMER NAME %sC X %s AWG 600V PART NO. SHIELDED DOUBLE SHEATHED LFH CABLE BATCH NO. %s Marking Intervals Every -1 Mtr",
		cores, awg, batch)
}

func jacketRows(c models.ConductorDetails, at time.Time) []models.SpecificationItem {
	return rows(
		[3]string{"Material", "Visual", "GFR 340 LFH (Pressure type Extrusion)"},
		[3]string{"Thickness", "mm(Nom)", "1.40"},
		[3]string{"OD", "mm", "10.3-10.5"},
		[3]string{"Color", "Visual", "Black"},
		[3]string{"Marking on Cable", "Visual", MarkingText(c.CoreCount, c.AWG, at)},
	)
}

func electricalRows(c models.ConductorDetails) []models.SpecificationItem {
	return rows(
		[3]string{"Conductor Resistance (20°C)", "Ω/km", c.Resistance + " (max), 5.64 (measured)"},
		[3]string{"Current Rating", "A", "~" + c.CurrentRating},
		[3]string{"Voltage Rating", "V", "600"},
		[3]string{"Dielectric Strength", "V", "1500 (core-to-core, 1 min)"},
		[3]string{"Bending Radius", "mm", "10×OD (flexing), 4×OD (fixed)"},
	)
}

// sampleTest is a fixed Part 18 test row with its recorded result
type sampleTest struct {
	parameter string
	unit      string
	spec      string
	result    string
}

var insulationTests = []sampleTest{
	{"Critical Oxygen Index", "%", "≥ 29", "32.5"},
	{"Smoke Density", "%", "≤ 12", "8.2"},
	{"Toxicity Index", "-", "≤ 0.2", "0.15"},
	{"Temperature Index", "°C", "≥ 250", "285"},
	{"Insulation Resistance", "MΩ/km", "≥ 0.20", "0.35"},
	{"Cold Bend Test (-50°C)", "-", "No cracks", "Pass"},
}

var jacketTests = []sampleTest{
	{"Critical Oxygen Index", "%", "≥ 29", "31.8"},
	{"Smoke Density", "%", "≤ 12", "9.1"},
	{"Toxicity Index", "-", "≤ 0.2", "0.18"},
	{"Temperature Index", "°C", "≥ 250", "275"},
	{"HCl Gas Content", "cm³/m", "≤ 10", "2.5"},
	{"Cold Elongation (-30°C)", "%", "≥ 20", "25"},
}

func testRows(tests []sampleTest) []models.SpecificationItem {
	items := make([]models.SpecificationItem, len(tests))
	for i, t := range tests {
		items[i] = models.SpecificationItem{
			Sno:            i + 1,
			Parameter:      t.parameter,
			Units:          t.unit,
			Specifications: t.spec,
			TestResult:     t.result,
		}
	}
	return items
}
