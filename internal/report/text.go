package report

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/pwpl/pds-engine/internal/models"
)

// RenderText writes the plain-text summary used for copying a report
func (r *Renderer) RenderText(w io.Writer, rec *models.ReportRecord) error {
	if err := Validate(rec); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	title := "PARAS WIRES PRODUCTION DATA SHEET"
	if rec.Type == models.ReportCompliance {
		title = "STANDARDS COMPLIANCE REPORT"
	}
	fmt.Fprintln(bw, title)
	fmt.Fprintln(bw, strings.Repeat("=", len(title)))
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "Product: %s\n", rec.ItemDescription)
	fmt.Fprintf(bw, "Standard: %s\n", rec.ReferenceStandard)
	fmt.Fprintf(bw, "Generated: %s\n", rec.GeneratedAt.In(r.loc).Format("02/01/2006, 15:04:05"))

	if rec.Type == models.ReportCompliance {
		writeComplianceResults(bw, rec)
		return bw.Flush()
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "SPECIFICATIONS:")
	for i, sec := range rec.Specifications.Sections() {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "- %s:\n", HeadingKey(sec.Key))
		for _, item := range sec.Items {
			fmt.Fprintf(bw, "  %s: %s\n", item.Parameter, item.Specifications)
		}
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "REFERENCE STANDARDS:")
	if std := rec.StandardName(); std != "" {
		fmt.Fprintf(bw, "- STANDARD: %s\n", std)
	}
	fmt.Fprintf(bw, "- REFERENCE STANDARD: %s\n", rec.ReferenceStandard)

	if !rec.ComplianceData.IsEmpty() {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "COMPLIANCE DATA:")
		groups := []struct {
			key   string
			tests []models.ComplianceTest
		}{
			{"insulationTests", rec.ComplianceData.InsulationTests},
			{"jacketTests", rec.ComplianceData.JacketTests},
			{"sheathTests", rec.ComplianceData.SheathTests},
		}
		for _, g := range groups {
			if g.tests == nil {
				continue
			}
			fmt.Fprintf(bw, "- %s:\n", HeadingKey(g.key))
			for _, t := range g.tests {
				fmt.Fprintf(bw, "  %s: %s (%s)\n", t.Parameter, t.Result, t.Status)
			}
		}
	}

	if len(rec.Integrated) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "PRODUCTION DATASHEET:")
		for _, key := range slices.Sorted(maps.Keys(rec.Integrated)) {
			fmt.Fprintf(bw, "- %s: %s\n", HeadingKey(key), rec.Integrated[key])
		}
	}

	return bw.Flush()
}

func writeComplianceResults(bw *bufio.Writer, rec *models.ReportRecord) {
	status := "NON-COMPLIANT"
	if rec.OverallCompliance {
		status = "COMPLIANT"
	}
	fmt.Fprintf(bw, "Report ID: %s\n", rec.ReportID)
	fmt.Fprintf(bw, "Overall Compliance Status: %s\n", status)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "TEST RESULTS:")
	for _, res := range rec.ComplianceResults {
		fmt.Fprintf(bw, "- %s: %s (limit %s %s) %s\n", res.Label, res.Value, res.Limit, res.Unit, res.Status)
	}
}

// HeadingKey turns a field key such as innerJacket or inner_jacket into
// an upper-case heading ("INNER JACKET").
func HeadingKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && i > 0:
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
