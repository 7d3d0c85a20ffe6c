package specs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ProductParts
	}{
		{
			name:  "full construction",
			input: "ATC 3C X12 (37/0.30) MM",
			want:  ProductParts{Conductor: "ATC", Cores: "3C", AWG: "12", Stranding: "37/0.30", Unit: "MM"},
		},
		{
			name:  "awg form",
			input: "TC 4C x 16 AWG SHIELDED",
			want:  ProductParts{Conductor: "TC", Cores: "4C", AWG: "16", Stranding: "37/0.30", Unit: "MM"},
		},
		{
			name:  "free text keeps defaults",
			input: "UL1007 22AWG",
			want:  ProductParts{Conductor: "UL1007", Cores: "3C", AWG: "12", Stranding: "37/0.30", Unit: "MM"},
		},
		{
			name:  "single word",
			input: "cable",
			want:  DefaultProductParts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseProductName(tt.input))
		})
	}
}

func TestTechnicalSpecifications(t *testing.T) {
	set := TechnicalSpecifications("TC 4C x 16 AWG SHIELDED")

	assert.Len(t, set.Conductor, 6)
	assert.Len(t, set.Insulation, 6)
	assert.Len(t, set.Twisting, 5)
	assert.Len(t, set.InnerJacket, 3)
	assert.Len(t, set.Shielding, 4)
	assert.Len(t, set.Jacket, 5)
	assert.Len(t, set.Electrical, 7)
	assert.Len(t, set.InsulationTests, 7)
	assert.Len(t, set.JacketTests, 7)

	assert.Equal(t, "16", set.Conductor[1].Specifications)
	assert.Equal(t, "4", set.Insulation[4].Specifications)
	assert.Equal(t, "1.....2.....3.....4(White core)", set.Twisting[0].Specifications)
	assert.Equal(t, "DEF STAN 61-12 4C X 16 AWG 600V SHIELDED CABLE", set.Jacket[4].Specifications)

	for _, sec := range set.Sections() {
		require.NotEmpty(t, sec.Items, sec.Key)
		assert.Equal(t, 1, sec.Items[0].Sno)
	}
}

func TestTechnicalSpecifications_Defaults(t *testing.T) {
	set := TechnicalSpecifications("")

	assert.Equal(t, "12", set.Conductor[1].Specifications)
	assert.Equal(t, "3", set.Insulation[4].Specifications)
	assert.Equal(t, "1.....2.....3(White core)", set.Twisting[0].Specifications)
}

func TestTechnicalSpecifications_OversizedCores(t *testing.T) {
	set := TechnicalSpecifications("ATC 100000000000000C X12 (37/0.30) MM")
	assert.Equal(t, CoreSequence(MaxCores), set.Twisting[0].Specifications)
}
