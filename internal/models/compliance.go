package models

// ComplianceStatus is the outcome of a single test evaluation
type ComplianceStatus string

const (
	StatusPass      ComplianceStatus = "PASS"
	StatusFail      ComplianceStatus = "FAIL"
	StatusNotTested ComplianceStatus = "NOT_TESTED"
)

// ComplianceResult is a measured value compared against a limit
type ComplianceResult struct {
	Test      string           `json:"test"`
	Label     string           `json:"label"`
	Value     string           `json:"value"`
	Limit     string           `json:"limit"`
	Unit      string           `json:"unit"`
	Status    ComplianceStatus `json:"status"`
	Deviation *string          `json:"deviation,omitempty"`
}

// ComplianceTest is a row of a per-standard sample test table
type ComplianceTest struct {
	Parameter string           `json:"parameter"`
	Limit     string           `json:"limit"`
	Result    string           `json:"result"`
	Status    ComplianceStatus `json:"status"`
}

// ComplianceData groups sample test tables by what was tested
type ComplianceData struct {
	InsulationTests []ComplianceTest `json:"insulationTests,omitempty"`
	JacketTests     []ComplianceTest `json:"jacketTests,omitempty"`
	SheathTests     []ComplianceTest `json:"sheathTests,omitempty"`
}

// IsEmpty reports whether no test group is present
func (c *ComplianceData) IsEmpty() bool {
	return c == nil || (c.InsulationTests == nil && c.JacketTests == nil && c.SheathTests == nil)
}

// StandardDetails describes a standard on compliance reports
type StandardDetails struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Date     string `json:"date"`
	Scope    string `json:"scope"`
}
