package models

// StandardInfo is a selectable standard with its wire types and test plan
type StandardInfo struct {
	ID        Standard         `yaml:"id" json:"id"`
	Label     string           `yaml:"label" json:"label"`
	WireTypes []WireType       `yaml:"wire_types" json:"wireTypes"`
	Tests     []TestDefinition `yaml:"tests" json:"tests"`
}

// WireType is a construction variant listed under a standard
type WireType struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// ConductorSize is a stranded conductor option, e.g. "12-awg-37-0.30"
type ConductorSize struct {
	ID             string `yaml:"id" json:"id"`
	Label          string `yaml:"label" json:"label"`
	AWG            string `yaml:"awg" json:"awg"`
	Strands        int    `yaml:"strands" json:"strands"`
	StrandDiameter string `yaml:"strand_diameter" json:"strandDiameter"`
}

// TestDefinition describes a test parameter operators may record
type TestDefinition struct {
	Test   string `yaml:"test" json:"test"`
	Label  string `yaml:"label" json:"label"`
	Unit   string `yaml:"unit" json:"unit"`
	Limit  string `yaml:"limit" json:"limit"`
	Method string `yaml:"method" json:"method"`
}
