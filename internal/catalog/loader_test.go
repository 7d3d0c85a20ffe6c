package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwpl/pds-engine/internal/models"
)

func TestDefaultLoader(t *testing.T) {
	l, err := NewDefaultLoader()
	require.NoError(t, err)

	standards := l.ListStandards()
	require.Len(t, standards, 2)
	assert.Equal(t, models.StandardPart18, standards[0].ID)
	assert.Equal(t, models.StandardPart31, standards[1].ID)

	assert.Len(t, l.WireTypes(models.StandardPart18), 7)
	assert.Len(t, l.WireTypes(models.StandardPart31), 1)
	assert.Len(t, l.Tests(models.StandardPart31), 16)
	assert.Len(t, l.Tests(models.StandardPart18), 10)

	sizes := l.ConductorSizes()
	require.Len(t, sizes, 10)
	assert.Equal(t, "30-awg-7-0.10", sizes[0].ID)

	size, ok := l.GetConductorSize("12-awg-37-0.30")
	require.True(t, ok)
	assert.Equal(t, 37, size.Strands)
	assert.Equal(t, "0.30", size.StrandDiameter)
}

func TestLoader_UnknownStandard(t *testing.T) {
	l, err := NewDefaultLoader()
	require.NoError(t, err)

	assert.Nil(t, l.GetStandard("def-stan-00-56"))
	assert.Nil(t, l.WireTypes("def-stan-00-56"))
	assert.Nil(t, l.Tests("def-stan-00-56"))
}

func TestLoadFromFS_SkipsInvalid(t *testing.T) {
	fsys := fstest.MapFS{
		"good.yaml": {Data: []byte(`
standard:
  id: def-stan-61-12-part-18
  label: Custom Part 18
  wire_types:
    - {id: type-9, label: Type 9}
`)},
		"no-id.yaml": {Data: []byte("standard:\n  label: Missing id\n")},
		"broken.yml": {Data: []byte("standard: [\n")},
		"empty.yaml": {Data: []byte("other: 1\n")},
		"notes.txt":  {Data: []byte("ignored")},
	}

	l := NewLoader()
	require.NoError(t, l.LoadFromFS(fsys))

	standards := l.ListStandards()
	require.Len(t, standards, 1)
	assert.Equal(t, "Custom Part 18", standards[0].Label)
	assert.Equal(t, []models.WireType{{ID: "type-9", Label: "Type 9"}}, standards[0].WireTypes)
}

func TestLoadFromDir_Overrides(t *testing.T) {
	l, err := NewDefaultLoader()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sizes.yaml"), []byte(`
conductor_sizes:
  - {id: 22-awg-7-0.25, label: "22 AWG (7/0.25) tinned", awg: "22", strands: 7, strand_diameter: "0.25"}
  - {id: 10-awg-37-0.40, label: "10 AWG (37/0.40)", awg: "10", strands: 37, strand_diameter: "0.40"}
`), 0o644))

	require.NoError(t, l.LoadFromDir(dir))

	sizes := l.ConductorSizes()
	require.Len(t, sizes, 11)
	assert.Equal(t, "10-awg-37-0.40", sizes[10].ID)

	size, ok := l.GetConductorSize("22-awg-7-0.25")
	require.True(t, ok)
	assert.Equal(t, "22 AWG (7/0.25) tinned", size.Label)
}

func TestLoadFromFile_Missing(t *testing.T) {
	err := NewLoader().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
