package models

import (
	"time"
)

// ReportType distinguishes the document layouts
type ReportType string

const (
	ReportStandard   ReportType = "standard"
	ReportEnhanced   ReportType = "enhanced-pds"
	ReportCompliance ReportType = "compliance"
)

// IsKnown reports whether t is a supported report type
func (t ReportType) IsKnown() bool {
	return t == ReportStandard || t == ReportEnhanced || t == ReportCompliance
}

// ReportRecord is an assembled datasheet or compliance report
type ReportRecord struct {
	Type               ReportType `json:"type"`
	Company            string     `json:"company"`
	Location           string     `json:"location"`
	DatasheetNo        string     `json:"datasheetNo"`
	Date               string     `json:"date"`
	Time               string     `json:"time,omitempty"`
	Customer           string     `json:"customer"`
	RevNo              string     `json:"revNo"`
	ItemDescription    string     `json:"itemDescription"`
	CustomerPartNo     string     `json:"customerPartNo,omitempty"`
	ManufacturerPartNo string     `json:"manufacturerPartNo,omitempty"`
	ReferenceStandard  string     `json:"referenceStandard"`
	FormatNo           string     `json:"formatNo,omitempty"`

	Specifications *SpecificationSet `json:"specifications,omitempty"`
	ParsedModel    *ParsedModel      `json:"parsedModel,omitempty"`
	ComplianceData *ComplianceData   `json:"complianceData,omitempty"`

	// Compliance report fields
	ReportID          string             `json:"reportId,omitempty"`
	ProductName       string             `json:"productName,omitempty"`
	Standard          Standard           `json:"standard,omitempty"`
	WireType          string             `json:"wireType,omitempty"`
	ConductorSize     string             `json:"conductorSize,omitempty"`
	TestParameters    map[string]string  `json:"testParameters,omitempty"`
	ComplianceResults []ComplianceResult `json:"complianceResults,omitempty"`
	OverallCompliance bool               `json:"overallCompliance"`
	StandardDetails   *StandardDetails   `json:"standardDetails,omitempty"`

	PreparedBy  string    `json:"preparedBy"`
	ApprovedBy  string    `json:"approvedBy"`
	GeneratedAt time.Time `json:"generatedAt"`

	// Set when a production datasheet was merged into the report
	ProductionDatasheet *DatasheetProvenance `json:"productionDatasheet,omitempty"`
	Integrated          map[string]string    `json:"integrated,omitempty"`
}

// StandardName returns the standard the report was generated against
func (r *ReportRecord) StandardName() Standard {
	if r.Standard != "" {
		return r.Standard
	}
	if r.ParsedModel != nil {
		return r.ParsedModel.Standard
	}
	return ""
}

// ArchivedReport is a rendered report kept for later retrieval
type ArchivedReport struct {
	ID          string        `json:"id"`
	Type        ReportType    `json:"type"`
	DatasheetNo string        `json:"datasheet_no"`
	ItemName    string        `json:"item_name"`
	Standard    Standard      `json:"standard,omitempty"`
	Record      *ReportRecord `json:"record"`
	ExportKey   string        `json:"export_key,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ReportFilters narrows archive listings
type ReportFilters struct {
	Type     ReportType
	Standard Standard
	Limit    int
	Offset   int
}
