package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pwpl/pds-engine/internal/models"
	"github.com/pwpl/pds-engine/internal/specs"
)

var (
	// ErrInvalidInput marks missing or malformed generation inputs
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidReport marks an assembled record with the wrong shape
	ErrInvalidReport = errors.New("invalid report")
)

// ValidationError describes a single failed check
type ValidationError struct {
	Field  string
	Reason string
	kind   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap exposes ErrInvalidInput or ErrInvalidReport to errors.Is
func (e *ValidationError) Unwrap() error {
	return e.kind
}

func inputError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason, kind: ErrInvalidInput}
}

func reportError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason, kind: ErrInvalidReport}
}

// ValidateProductName checks that a product name was supplied
func ValidateProductName(productName string) error {
	if strings.TrimSpace(productName) == "" {
		return inputError("product_name", "product name is required")
	}
	return nil
}

// ValidateInput checks the user-supplied product name and standard
func ValidateInput(productName string, standard models.Standard) error {
	if err := ValidateProductName(productName); err != nil {
		return err
	}
	if standard == "" {
		return inputError("standard", "standard selection is required")
	}
	if !standard.IsKnown() {
		return inputError("standard", fmt.Sprintf("unknown standard %q", standard))
	}
	return nil
}

// ValidateCoreCount rejects parsed core counts above specs.MaxCores
func ValidateCoreCount(parsed models.ParsedModel) error {
	raw := strings.TrimSpace(parsed.ConductorDetails.CoreCount)
	if raw == "" {
		return nil
	}
	n := specs.CoreCount(raw)
	if n > specs.MaxCores || (n == 0 && strings.Trim(raw, "0") != "") {
		return inputError("core_count", fmt.Sprintf("core count %s exceeds the maximum of %d", raw, specs.MaxCores))
	}
	return nil
}

// Validate checks the structure of an assembled record before it is shown
// or rendered. A record that fails is discarded whole.
func Validate(rec *models.ReportRecord) error {
	if rec == nil {
		return reportError("report", "report is missing")
	}
	if rec.Type == "" {
		return reportError("type", "report type is missing")
	}
	if !rec.Type.IsKnown() {
		return reportError("type", fmt.Sprintf("invalid report type %q", rec.Type))
	}

	if rec.Type == models.ReportCompliance {
		if rec.ReportID == "" {
			return reportError("reportId", "compliance report id is missing")
		}
		return nil
	}

	if rec.Specifications == nil {
		return reportError("specifications", "report is missing specifications")
	}
	for _, sec := range rec.Specifications.Sections() {
		if len(sec.Items) == 0 {
			return reportError("specifications."+sec.Key, "section has no rows")
		}
	}
	if rec.Type == models.ReportEnhanced && len(rec.Specifications.Conductor) == 0 {
		return reportError("specifications.conductor", "production data sheet requires a conductor section")
	}
	return nil
}
