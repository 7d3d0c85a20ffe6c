package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/pwpl/pds-engine/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var documentTemplates = template.Must(
	template.New("documents").Funcs(template.FuncMap{
		"statusClass": statusClass,
		"deviation":   deviation,
		"upper":       strings.ToUpper,
	}).ParseFS(templateFS, "templates/*.html"),
)

// sectionTitles gives the lettered headings of specification tables
var sectionTitles = map[string]string{
	models.SectionConductor:   "A) Conductor",
	models.SectionInsulation:  "B) Insulation",
	models.SectionTwisting:    "C) Twisting",
	models.SectionInnerJacket: "D) Inner Jacket",
	models.SectionShielding:   "E) Shielding",
	models.SectionJacket:      "F) Jacket",
	models.SectionElectrical:  "G) Electrical Parameters",
}

// testSectionTitles head the specification test tables, printed only when
// the record carries no compliance data of its own
var testSectionTitles = map[string]string{
	models.SectionInsulationTests: "H) Test on Insulation",
	models.SectionJacketTests:     "I) Test on Inner Jacket & Outer Jacket",
}

// PackingStandards is the fixed J) table printed on every data sheet
var PackingStandards = []models.SpecificationItem{
	{Sno: 1, Parameter: "Standard Length", Units: "m", Specifications: "500 ± 5%"},
	{Sno: 2, Parameter: "Identification Tag", Units: "Visual", Specifications: "Cable specification details on each drum/reel"},
}

// Renderer writes report records as printable documents
type Renderer struct {
	printScript bool
	loc         *time.Location
}

// RenderOption configures a Renderer
type RenderOption func(*Renderer)

// WithPrintScript toggles the script that opens the print dialog on load
func WithPrintScript(enabled bool) RenderOption {
	return func(r *Renderer) {
		r.printScript = enabled
	}
}

// WithLocation sets the time zone used for the generated-at line
func WithLocation(loc *time.Location) RenderOption {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// NewRenderer creates a new document renderer
func NewRenderer(opts ...RenderOption) *Renderer {
	r := &Renderer{
		printScript: true,
		loc:         time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type tableView struct {
	Title string
	Items []models.SpecificationItem
}

type testTableView struct {
	Title string
	Tests []models.ComplianceTest
}

type documentView struct {
	Record      *models.ReportRecord
	Heading     string
	Subheading  string
	Enhanced    bool
	Sections    []tableView
	TestTables  []testTableView
	Packing     tableView
	GeneratedAt string
	PrintScript bool
}

type complianceView struct {
	Record        *models.ReportRecord
	Details       models.StandardDetails
	OverallStatus string
	GeneratedAt   string
	PrintScript   bool
}

// RenderHTML writes the printable HTML document for a record. Every
// interpolated field is escaped.
func (r *Renderer) RenderHTML(w io.Writer, rec *models.ReportRecord) error {
	if err := Validate(rec); err != nil {
		return err
	}

	generated := rec.GeneratedAt.In(r.loc).Format("02/01/2006, 15:04:05")

	if rec.Type == models.ReportCompliance {
		view := complianceView{
			Record:        rec,
			OverallStatus: "NON-COMPLIANT",
			GeneratedAt:   generated,
			PrintScript:   r.printScript,
		}
		if rec.StandardDetails != nil {
			view.Details = *rec.StandardDetails
		}
		if rec.OverallCompliance {
			view.OverallStatus = "COMPLIANT"
		}
		return execute(w, "compliance.html", view)
	}

	view := documentView{
		Record:      rec,
		Heading:     "PRODUCTION DATA SHEET",
		Enhanced:    rec.Type == models.ReportEnhanced,
		Sections:    specificationTables(rec.Specifications, rec.ComplianceData.IsEmpty()),
		TestTables:  testTables(rec),
		Packing:     tableView{Title: "J) Packing Standards", Items: PackingStandards},
		GeneratedAt: generated,
		PrintScript: r.printScript,
	}
	if view.Enhanced {
		view.Heading = "ENHANCED PRODUCTION DATA SHEET"
		view.Subheading = "Auto-Generated with Def Stan 61-12 Compliance"
	}
	return execute(w, "datasheet.html", view)
}

func execute(w io.Writer, name string, data any) error {
	if err := documentTemplates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

func specificationTables(set *models.SpecificationSet, withTests bool) []tableView {
	var tables []tableView
	for _, sec := range set.Sections() {
		title, ok := sectionTitles[sec.Key]
		if !ok && withTests {
			title, ok = testSectionTitles[sec.Key]
		}
		if !ok {
			continue
		}
		tables = append(tables, tableView{Title: title, Items: sec.Items})
	}
	return tables
}

// testTables picks the H) and I) tables for the record's standard
func testTables(rec *models.ReportRecord) []testTableView {
	data := rec.ComplianceData
	if data.IsEmpty() {
		return nil
	}

	var tables []testTableView
	switch rec.StandardName() {
	case models.StandardPart18:
		if data.InsulationTests != nil {
			tables = append(tables, testTableView{"H) Insulation Tests - Def Stan 61-12 Part 18", data.InsulationTests})
		}
		if data.JacketTests != nil {
			tables = append(tables, testTableView{"I) Jacket Tests - Def Stan 61-12 Part 18", data.JacketTests})
		}
	case models.StandardPart31:
		if data.SheathTests != nil {
			tables = append(tables, testTableView{"H) Sheath Tests - Def Stan 61-12 Part 31", data.SheathTests})
		}
	}
	return tables
}

func statusClass(status models.ComplianceStatus) string {
	return strings.ReplaceAll(strings.ToLower(string(status)), "_", "-")
}

func deviation(d *string) string {
	if d == nil || *d == "" {
		return "-"
	}
	return *d
}
