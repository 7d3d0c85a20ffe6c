package models

// ProductType classifies a cable by its model name
type ProductType string

const (
	ProductType1         ProductType = "type-1"
	ProductType1SB       ProductType = "type-1sb"
	ProductType2         ProductType = "type-2"
	ProductType2SB       ProductType = "type-2sb"
	ProductLFHSheath     ProductType = "lfh-sheath"
	ProductMulticore     ProductType = "multicore-cable"
	ProductSingleCore    ProductType = "single-core"
	ProductEquipmentWire ProductType = "equipment-wire"
)

// Standard identifies a DEF STAN 61-12 part
type Standard string

const (
	StandardPart18 Standard = "def-stan-61-12-part-18"
	StandardPart31 Standard = "def-stan-61-12-part-31"
)

// IsKnown reports whether s is one of the supported parts
func (s Standard) IsKnown() bool {
	return s == StandardPart18 || s == StandardPart31
}

// Conductor materials
const (
	MaterialCopper = "Copper"
	MaterialATC    = "ATC"
)

// ParsedModel is the structured reading of a free-text model name
type ParsedModel struct {
	ProductType       ProductType       `json:"productType"`
	ConductorDetails  ConductorDetails  `json:"conductorDetails"`
	InsulationDetails InsulationDetails `json:"insulationDetails"`
	ShieldingDetails  *ShieldingDetails `json:"shieldingDetails,omitempty"`
	Standard          Standard          `json:"standard"`
	OriginalName      string            `json:"originalName"`
}

// ConductorDetails holds conductor attributes as printed on the sheet
type ConductorDetails struct {
	Material        string `json:"material"`
	AWG             string `json:"awg"`
	StrandCount     string `json:"strandCount"`
	StrandDiameter  string `json:"strandDiameter"`
	CoreCount       string `json:"coreCount"`
	BunchedDiameter string `json:"bunchedDiameter"`
	Resistance      string `json:"resistance"`
	CurrentRating   string `json:"currentRating"`
}

// InsulationDetails holds insulation attributes
type InsulationDetails struct {
	Material  string `json:"material"`
	Thickness string `json:"thickness"`
	Color     string `json:"color"`
	OD        string `json:"od"`
}

// ShieldingDetails holds braid screen attributes
type ShieldingDetails struct {
	Material          string `json:"material"`
	Construction      string `json:"construction"`
	Coverage          string `json:"coverage"`
	DiameterOverBraid string `json:"diameterOverBraid"`
}
