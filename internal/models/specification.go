package models

// SpecificationItem is one row of a datasheet section table
type SpecificationItem struct {
	Sno            int    `json:"sno"`
	Parameter      string `json:"parameter"`
	Units          string `json:"units"`
	Specifications string `json:"specifications"`
	TestResult     string `json:"testResult,omitempty"`
}

// Section keys in lettered document order
const (
	SectionConductor       = "conductor"
	SectionInsulation      = "insulation"
	SectionTwisting        = "twisting"
	SectionInnerJacket     = "innerJacket"
	SectionShielding       = "shielding"
	SectionJacket          = "jacket"
	SectionElectrical      = "electrical"
	SectionInsulationTests = "insulationTests"
	SectionJacketTests     = "jacketTests"
)

// SpecificationSet holds the sections of a datasheet.
// A nil slice means the section is absent from the document.
type SpecificationSet struct {
	Conductor       []SpecificationItem `json:"conductor,omitempty"`
	Insulation      []SpecificationItem `json:"insulation,omitempty"`
	Twisting        []SpecificationItem `json:"twisting,omitempty"`
	InnerJacket     []SpecificationItem `json:"innerJacket,omitempty"`
	Shielding       []SpecificationItem `json:"shielding,omitempty"`
	Jacket          []SpecificationItem `json:"jacket,omitempty"`
	Electrical      []SpecificationItem `json:"electrical,omitempty"`
	InsulationTests []SpecificationItem `json:"insulationTests,omitempty"`
	JacketTests     []SpecificationItem `json:"jacketTests,omitempty"`
}

// Section is a named, present section of a SpecificationSet
type Section struct {
	Key   string
	Items []SpecificationItem
}

// Sections returns the present sections in document order
func (s *SpecificationSet) Sections() []Section {
	if s == nil {
		return nil
	}

	all := []Section{
		{SectionConductor, s.Conductor},
		{SectionInsulation, s.Insulation},
		{SectionTwisting, s.Twisting},
		{SectionInnerJacket, s.InnerJacket},
		{SectionShielding, s.Shielding},
		{SectionJacket, s.Jacket},
		{SectionElectrical, s.Electrical},
		{SectionInsulationTests, s.InsulationTests},
		{SectionJacketTests, s.JacketTests},
	}

	present := make([]Section, 0, len(all))
	for _, sec := range all {
		if sec.Items != nil {
			present = append(present, sec)
		}
	}
	return present
}

// Section returns the items of a section by key
func (s *SpecificationSet) Section(key string) ([]SpecificationItem, bool) {
	for _, sec := range s.Sections() {
		if sec.Key == key {
			return sec.Items, true
		}
	}
	return nil, false
}

// PopulatedSpec is the output of specification population
type PopulatedSpec struct {
	Specifications    SpecificationSet  `json:"specifications"`
	Standard          Standard          `json:"standard"`
	ProductType       ProductType       `json:"productType"`
	ConductorDetails  ConductorDetails  `json:"conductorDetails"`
	InsulationDetails InsulationDetails `json:"insulationDetails"`
	ShieldingDetails  *ShieldingDetails `json:"shieldingDetails,omitempty"`
}
