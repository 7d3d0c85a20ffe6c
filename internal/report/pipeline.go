package report

import (
	"fmt"

	"github.com/pwpl/pds-engine/internal/modelname"
	"github.com/pwpl/pds-engine/internal/models"
	"github.com/pwpl/pds-engine/internal/specs"
)

// Pipeline runs parse, populate and assemble for a single model name
type Pipeline struct {
	populator *specs.Populator
	assembler *Assembler
}

// NewPipeline creates a new generation pipeline
func NewPipeline(populator *specs.Populator, assembler *Assembler) *Pipeline {
	return &Pipeline{
		populator: populator,
		assembler: assembler,
	}
}

// Assembler returns the underlying assembler
func (p *Pipeline) Assembler() *Assembler {
	return p.assembler
}

// Generate builds a validated production data sheet. When standard is set
// it overrides the standard detected from the model name.
func (p *Pipeline) Generate(modelName string, standard models.Standard) (*models.ReportRecord, error) {
	parsed := modelname.Parse(modelName)
	if standard == "" {
		standard = parsed.Standard
	}
	if err := ValidateInput(modelName, standard); err != nil {
		return nil, err
	}
	if err := ValidateCoreCount(parsed); err != nil {
		return nil, err
	}
	parsed.Standard = standard

	populated := p.populator.Populate(parsed)
	rec := p.assembler.BuildEnhancedReport(modelName, parsed, populated)

	if err := Validate(rec); err != nil {
		return nil, fmt.Errorf("generated report failed validation: %w", err)
	}
	return rec, nil
}
