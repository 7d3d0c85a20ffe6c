// Package sheets fetches technical sheet data from the sheet service and
// maps its rows into report fields.
package sheets

import (
	"regexp"
	"strings"

	"github.com/pwpl/pds-engine/internal/models"
)

// OfflineSample is served when no sheet endpoint can be reached
var OfflineSample = [][]string{
	{"Parameter", "Value", "Unit"},
	{"Status", "Offline sample (server not reachable)", ""},
	{"Reference", "DEF STAN 61-12", ""},
}

// sheetRules are tried in order against lower-cased sheet names
var sheetRules = []func(name string) bool{
	func(n string) bool { return strings.Contains(n, "standard_technical_datasheet") },
	func(n string) bool { return strings.Contains(n, "standard") && strings.Contains(n, "technical") },
	func(n string) bool { return strings.Contains(n, "technical") && strings.Contains(n, "datasheet") },
	func(n string) bool { return strings.Contains(n, "standard") && strings.Contains(n, "datasheet") },
	func(n string) bool { return !strings.Contains(n, "production sheet") },
}

// SelectSheet picks the most relevant sheet from names given in workbook
// order. Each rule takes the first name it matches and, when none match,
// the first name wins. Returns false when names is empty.
func SelectSheet(names []string) (string, bool) {
	if len(names) == 0 {
		return "", false
	}

	for _, rule := range sheetRules {
		for _, name := range names {
			if rule(strings.ToLower(name)) {
				return name, true
			}
		}
	}
	return names[0], true
}

// MapRows maps first-column keys to second-column values. Rows with an
// empty key are skipped and later rows win.
func MapRows(sheet [][]string) map[string]string {
	out := make(map[string]string)
	for _, row := range sheet {
		if len(row) == 0 {
			continue
		}
		key := strings.TrimSpace(row[0])
		if key == "" {
			continue
		}
		out[key] = cell(row, 1)
	}
	return out
}

var sectionBoundary = regexp.MustCompile(`^[A-Z][).]`)

// ExtractSection collects the parameter rows under the heading that
// matches name. Headings are compared with case and whitespace removed and
// the section ends at the next lettered heading such as "B)" or "C.".
func ExtractSection(sheet [][]string, name string) []models.SpecificationItem {
	target := normalize(name)
	if target == "" {
		return nil
	}

	var items []models.SpecificationItem
	inSection := false

	for _, row := range sheet {
		if len(row) == 0 {
			continue
		}
		first := strings.TrimSpace(row[0])
		units := strings.TrimSpace(cell(row, 1))
		spec := strings.TrimSpace(cell(row, 2))

		if !inSection {
			if first != "" && headingMatches(normalize(first), target) {
				inSection = true
			}
			continue
		}

		if sectionBoundary.MatchString(first) {
			break
		}
		if first != "" && (units != "" || spec != "") {
			items = append(items, models.SpecificationItem{
				Sno:            len(items) + 1,
				Parameter:      first,
				Units:          units,
				Specifications: spec,
			})
		}
	}
	return items
}

func headingMatches(heading, target string) bool {
	return strings.Contains(heading, target) || strings.Contains(target, heading)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
