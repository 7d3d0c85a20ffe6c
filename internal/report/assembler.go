// Package report assembles datasheet and compliance report records and
// renders them as printable HTML or plain text.
package report

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pwpl/pds-engine/internal/compliance"
	"github.com/pwpl/pds-engine/internal/models"
	"github.com/pwpl/pds-engine/internal/specs"
)

// Document header constants for production data sheets
const (
	Company           = "PARAS WIRES PVT LTD, BENGALURU"
	CompanyLocation   = "Plot No. 17-O Phase-2 Sector 1, Bidadi Industrial Ramanagara Taluk & Dist-562109"
	DefaultCustomer   = "A & A Alloys"
	RevisionNo        = "00"
	FormatNo          = "PWPL/MKT/02"
	PreparedBy        = "Harshitha"
	ApprovedBy        = "Ravi"
	StandardReference = "DEF STAN 61-12 / Customer TDS / NES 518"
)

// Header constants for standards compliance reports
const (
	ComplianceCompany    = "MINISTRY OF DEFENCE"
	ComplianceLocation   = "Defence Standards - Crown Copyright"
	ComplianceCustomer   = "Standards Compliance Report"
	ComplianceRevisionNo = "01"
	CompliancePreparedBy = "Automated Compliance System"
	ComplianceApprovedBy = "Standards Authority"
)

const (
	dateLayout = "02/01/2006"
	timeLayout = "15:04"
)

// RandSource draws bounded integers for placeholder document numbers
type RandSource interface {
	Int64N(n int64) int64
}

type globalRand struct{}

func (globalRand) Int64N(n int64) int64 { return rand.Int64N(n) }

// Assembler builds report records. Document numbers are presentation
// placeholders drawn at random; they are not checked for uniqueness.
type Assembler struct {
	rnd RandSource
	now func() time.Time
}

// Option configures an Assembler
type Option func(*Assembler)

// WithRand sets the random source for document numbers
func WithRand(r RandSource) Option {
	return func(a *Assembler) {
		a.rnd = r
	}
}

// WithClock sets the clock for dates and timestamps
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		a.now = now
	}
}

// NewAssembler creates a new report assembler
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		rnd: globalRand{},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// between returns a random integer in [lo, hi)
func (a *Assembler) between(lo, hi int64) int64 {
	return lo + a.rnd.Int64N(hi-lo)
}

// datasheetHeader fills the metadata common to production data sheets
func (a *Assembler) datasheetHeader(typ models.ReportType, itemDescription string) *models.ReportRecord {
	now := a.now()
	return &models.ReportRecord{
		Type:               typ,
		Company:            Company,
		Location:           CompanyLocation,
		DatasheetNo:        fmt.Sprintf("A%d", a.between(600, 1600)),
		Date:               now.Format(dateLayout),
		Time:               now.Format(timeLayout),
		Customer:           DefaultCustomer,
		RevNo:              RevisionNo,
		ItemDescription:    itemDescription,
		CustomerPartNo:     fmt.Sprintf("%d", a.between(100_000_000_000, 1_000_000_000_000)),
		ManufacturerPartNo: fmt.Sprintf("%d", a.between(10_000_000_000_000, 100_000_000_000_000)),
		ReferenceStandard:  StandardReference,
		FormatNo:           FormatNo,
		PreparedBy:         PreparedBy,
		ApprovedBy:         ApprovedBy,
		GeneratedAt:        now,
	}
}

// BuildStandardReport builds the plain production data sheet for a
// product from the fixed technical tables.
func (a *Assembler) BuildStandardReport(productName string) *models.ReportRecord {
	rec := a.datasheetHeader(models.ReportStandard, productName)
	set := specs.TechnicalSpecifications(productName)
	rec.ProductName = productName
	rec.Specifications = &set
	return rec
}

// BuildEnhancedReport builds a full production data sheet from a parsed
// model and its populated specifications.
func (a *Assembler) BuildEnhancedReport(modelName string, parsed models.ParsedModel, populated models.PopulatedSpec) *models.ReportRecord {
	rec := a.datasheetHeader(models.ReportEnhanced, modelName)

	specs := populated.Specifications
	rec.ProductName = modelName
	rec.Standard = parsed.Standard
	rec.ReferenceStandard = compliance.EnhancedReference(parsed.Standard)
	rec.Specifications = &specs
	rec.ParsedModel = &parsed
	rec.ComplianceData = compliance.SampleData(parsed.Standard)
	return rec
}

// ComplianceRequest holds the inputs of a standards compliance report
type ComplianceRequest struct {
	ProductName    string            `json:"product_name"`
	Standard       models.Standard   `json:"standard"`
	WireType       string            `json:"wire_type"`
	ConductorSize  string            `json:"conductor_size"`
	TestParameters map[string]string `json:"test_parameters"`
}

// BuildComplianceReport evaluates the supplied measurements and wraps the
// results in a compliance report record.
func (a *Assembler) BuildComplianceReport(req ComplianceRequest) *models.ReportRecord {
	now := a.now()
	reportID := fmt.Sprintf("DEF-%06d", a.rnd.Int64N(1_000_000))
	results := compliance.Evaluate(req.Standard, req.TestParameters)
	details := compliance.Details(req.Standard)

	return &models.ReportRecord{
		Type:              models.ReportCompliance,
		Company:           ComplianceCompany,
		Location:          ComplianceLocation,
		DatasheetNo:       reportID,
		Date:              now.Format(dateLayout),
		Customer:          ComplianceCustomer,
		RevNo:             ComplianceRevisionNo,
		ItemDescription:   req.ProductName,
		ReferenceStandard: compliance.Reference(req.Standard),
		ReportID:          reportID,
		ProductName:       req.ProductName,
		Standard:          req.Standard,
		WireType:          req.WireType,
		ConductorSize:     req.ConductorSize,
		TestParameters:    req.TestParameters,
		ComplianceResults: results,
		OverallCompliance: compliance.Overall(results),
		StandardDetails:   &details,
		PreparedBy:        CompliancePreparedBy,
		ApprovedBy:        ComplianceApprovedBy,
		GeneratedAt:       now,
	}
}
