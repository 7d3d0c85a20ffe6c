package modelname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwpl/pds-engine/internal/models"
)

func TestParse_ProductType(t *testing.T) {
	tests := []struct {
		name string
		want models.ProductType
	}{
		{"Type 1SB 20 AWG", models.ProductType1SB},
		{"TYPE 1SBM 85", models.ProductType1SB},
		{"type 1 white", models.ProductType1},
		{"TYPE 2SBM 3 core", models.ProductType2SB},
		{"TYPE 2 BLACK", models.ProductType2},
		{"LFH SHEATH 85C", models.ProductLFHSheath},
		{"outer sheath compound", models.ProductLFHSheath},
		{"4C X 18 AWG", models.ProductMulticore},
		{"ATC 3CX12", models.ProductMulticore},
		{"1C 22 AWG", models.ProductSingleCore},
		{"hook-up wire", models.ProductEquipmentWire},
		{"", models.ProductEquipmentWire},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.name).ProductType)
		})
	}
}

func TestParse_EndToEndMulticoreScreened(t *testing.T) {
	parsed := Parse("ATC 3C X12 (37/0.30) MM SHIELDED")

	assert.Equal(t, models.ProductMulticore, parsed.ProductType)
	assert.Equal(t, models.StandardPart18, parsed.Standard)
	assert.Equal(t, "ATC 3C X12 (37/0.30) MM SHIELDED", parsed.OriginalName)

	c := parsed.ConductorDetails
	assert.Equal(t, models.MaterialATC, c.Material)
	assert.Equal(t, "12", c.AWG)
	assert.Equal(t, "37", c.StrandCount)
	assert.Equal(t, "0.30", c.StrandDiameter)
	assert.Equal(t, "3", c.CoreCount)

	require.NotNil(t, parsed.ShieldingDetails)
	assert.Equal(t, "ATC", parsed.ShieldingDetails.Material)
	assert.Equal(t, "24*7*0.13", parsed.ShieldingDetails.Construction)
	assert.Equal(t, "85", parsed.ShieldingDetails.Coverage)
	assert.Equal(t, "7.55", parsed.ShieldingDetails.DiameterOverBraid)
}

func TestParse_Defaults(t *testing.T) {
	parsed := Parse("  equipment wire  ")

	c := parsed.ConductorDetails
	assert.Equal(t, DefaultAWG, c.AWG)
	assert.Equal(t, DefaultStrandCount, c.StrandCount)
	assert.Equal(t, DefaultStrandDiameter, c.StrandDiameter)
	assert.Equal(t, DefaultCoreCount, c.CoreCount)
	assert.Equal(t, models.MaterialCopper, c.Material)

	ins := parsed.InsulationDetails
	assert.Equal(t, InsulationMaterial, ins.Material)
	assert.Equal(t, "0.20", ins.Thickness)
	assert.Equal(t, "White", ins.Color)
	assert.Equal(t, "2.5-2.7", ins.OD)

	assert.Nil(t, parsed.ShieldingDetails)
	assert.Equal(t, models.StandardPart18, parsed.Standard)
}

func TestParse_AWGTableLookup(t *testing.T) {
	for awg, row := range awgTable {
		t.Run("AWG "+awg, func(t *testing.T) {
			c := Parse("1C X" + awg).ConductorDetails
			assert.Equal(t, awg, c.AWG)
			assert.Equal(t, row.BunchedDiameter, c.BunchedDiameter)
			assert.Equal(t, row.Resistance, c.Resistance)
			assert.Equal(t, row.CurrentRating, c.CurrentRating)
		})
	}

	t.Run("unknown gauge uses AWG 12 row", func(t *testing.T) {
		c := Parse("1C X40").ConductorDetails
		assert.Equal(t, "40", c.AWG)
		assert.False(t, KnownAWG("40"))
		assert.Equal(t, "2.1", c.BunchedDiameter)
		assert.Equal(t, "7.6", c.Resistance)
		assert.Equal(t, "20.0", c.CurrentRating)
	})
}

func TestParse_Insulation(t *testing.T) {
	t.Run("type 2 wall", func(t *testing.T) {
		ins := Parse("TYPE 2 RED").InsulationDetails
		assert.Equal(t, "0.23", ins.Thickness)
		assert.Equal(t, "2.6-2.8", ins.OD)
		assert.Equal(t, "Red", ins.Color)
	})

	t.Run("color order wins over position", func(t *testing.T) {
		assert.Equal(t, "Black", Parse("GREEN BLACK").InsulationDetails.Color)
	})

	t.Run("od helper", func(t *testing.T) {
		assert.Equal(t, "2.5-2.7", InsulationOD("0.20"))
		assert.Equal(t, "2.6-2.8", InsulationOD("0.23"))
	})
}

func TestParse_Standard(t *testing.T) {
	assert.Equal(t, models.StandardPart31, Parse("LFH SHEATH").Standard)
	assert.Equal(t, models.StandardPart31, Parse("TYPE 2 SHEATHED").Standard)
	assert.Equal(t, models.StandardPart18, Parse("TYPE 1SB SCREENED").Standard)
}

func TestParse_ScreenSignalsShielding(t *testing.T) {
	assert.NotNil(t, Parse("2C X20 SCREENED").ShieldingDetails)
	assert.Nil(t, Parse("2C X20").ShieldingDetails)
}

func TestParse_AlwaysKnownStandardAndIdempotent(t *testing.T) {
	inputs := []string{"", "???", "TYPE 9", "sheath", "12C X 30 (7/0.10) blue screen", "x", "(1/1)"}
	for _, in := range inputs {
		first := Parse(in)
		assert.True(t, first.Standard.IsKnown(), "input %q", in)
		assert.Equal(t, first, Parse(in), "input %q", in)
	}
}
