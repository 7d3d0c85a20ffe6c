package datasheets

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/pwpl/pds-engine/internal/models"
)

// ProvenanceKey is the report key holding the merged datasheet source
const ProvenanceKey = "production_datasheet"

// Report keys filled from datasheet rows
const (
	FieldItemDescription   = "itemDescription"
	FieldConductorType     = "conductor_type"
	FieldInsulationType    = "insulation_type"
	FieldVoltageRating     = "voltage_rating"
	FieldTemperatureRating = "temperature_rating"
	FieldReferenceStandard = "referenceStandard"
	FieldAWGSize           = "awg_size"
)

// fieldMappings lists, per report key, the row labels searched for in the
// first column of each sheet
var fieldMappings = []struct {
	key    string
	labels []string
}{
	{FieldItemDescription, []string{"Product Name", "Wire Name", "Cable Type", "Description", "Item Description"}},
	{FieldConductorType, []string{"Conductor Type", "Conductor Material", "Material"}},
	{FieldInsulationType, []string{"Insulation Type", "Insulation Material", "Insulation"}},
	{FieldVoltageRating, []string{"Voltage Rating", "Rated Voltage", "Voltage"}},
	{FieldTemperatureRating, []string{"Temperature Rating", "Operating Temperature", "Temp Rating"}},
	{FieldReferenceStandard, []string{"Standards", "Reference Standard", "Standard"}},
	{FieldAWGSize, []string{"AWG Size", "Conductor Size", "Size", "Gauge"}},
}

// ExtractFields reads mapped report fields from the sheets of ds. Sheets
// are visited in name order, the first row of each sheet is its header,
// and the first non-empty value found for a key wins.
func ExtractFields(ds *models.Datasheet) map[string]string {
	out := make(map[string]string)
	for _, name := range sortedSheetNames(ds) {
		rows := ds.Sheets[name]
		if len(rows) < 2 {
			continue
		}
		data := rows[1:]

		for _, m := range fieldMappings {
			if _, done := out[m.key]; done {
				continue
			}
			for _, label := range m.labels {
				if value, ok := lookup(data, label); ok {
					out[m.key] = value
					break
				}
			}
		}
	}
	return out
}

// lookup finds the first row whose first cell contains label, ignoring case,
// and returns its trimmed second cell when that is non-empty
func lookup(rows [][]string, label string) (string, bool) {
	want := strings.ToLower(label)
	for _, row := range rows {
		if len(row) == 0 || !strings.Contains(strings.ToLower(row[0]), want) {
			continue
		}
		if len(row) < 2 {
			return "", false
		}
		value := strings.TrimSpace(row[1])
		return value, value != ""
	}
	return "", false
}

// IntegrateRecord merges the best datasheet for wireName into rec through
// in. Failures are logged and leave rec unchanged. Reports whether a
// datasheet was merged.
func IntegrateRecord(ctx context.Context, in Integrator, wireName string, rec *models.ReportRecord) bool {
	data, err := json.Marshal(rec)
	if err != nil {
		return false
	}
	var report map[string]any
	if err := json.Unmarshal(data, &report); err != nil {
		return false
	}

	out, err := in.Integrate(ctx, wireName, report)
	if err != nil {
		slog.Warn("datasheet integration failed, using base report",
			"wire_name", wireName,
			"error", err,
		)
		return false
	}

	raw, ok := out[ProvenanceKey]
	if !ok {
		return false
	}
	var prov models.DatasheetProvenance
	if !remarshal(raw, &prov) || prov.SourceFile == "" {
		return false
	}
	rec.ProductionDatasheet = &prov

	integrated := make(map[string]string)
	for _, m := range fieldMappings {
		value, ok := out[m.key].(string)
		if !ok || value == "" {
			continue
		}
		switch m.key {
		case FieldItemDescription:
			if rec.ItemDescription == "" {
				rec.ItemDescription = value
			}
		case FieldReferenceStandard:
			if rec.ReferenceStandard == "" {
				rec.ReferenceStandard = value
			}
		default:
			integrated[m.key] = value
		}
	}
	if len(integrated) > 0 {
		rec.Integrated = integrated
	}
	return true
}

func remarshal(in any, out any) bool {
	data, err := json.Marshal(in)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// disabled is the Integrator used when datasheet integration is switched off
type disabled struct{}

// Disabled returns an Integrator whose search finds nothing and whose
// integration returns the report unchanged
func Disabled() Integrator {
	return disabled{}
}

func (disabled) Search(_ context.Context, wireName string) (*SearchResult, error) {
	return &SearchResult{WireName: wireName, Datasheets: []models.DatasheetMatch{}}, nil
}

func (disabled) Integrate(_ context.Context, _ string, report map[string]any) (map[string]any, error) {
	return report, nil
}
