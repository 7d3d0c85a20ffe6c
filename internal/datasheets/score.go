package datasheets

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/pwpl/pds-engine/internal/models"
)

// Keywords that mark a file as a production datasheet
var datasheetKeywords = []string{
	"production", "datasheet", "specification", "technical", "data sheet",
	"wire", "cable", "conductor", "insulation", "jacket",
}

var allowedMimeTypes = []string{
	models.MimeGoogleSheet,
	models.MimeGoogleDoc,
	models.MimeXLSX,
	models.MimeXLS,
}

var nonWord = regexp.MustCompile(`[^\w\s-]`)

// NormalizeWireName lower-cases a wire name and strips punctuation other
// than hyphens.
func NormalizeWireName(name string) string {
	return strings.TrimSpace(nonWord.ReplaceAllString(strings.ToLower(name), ""))
}

// Score rates how well a file name matches a normalized wire name.
// Each wire keyword found adds 10, each datasheet keyword 5, the whole
// name 20, and a modification within 7, 30 or 90 days adds 15, 10 or 5.
func Score(fileName, normalized string, modified, now time.Time) (int, []string) {
	name := strings.ToLower(fileName)
	score := 0
	var matched []string

	for _, kw := range strings.Fields(normalized) {
		if strings.Contains(name, kw) {
			score += 10
			matched = appendUnique(matched, kw)
		}
	}
	for _, kw := range datasheetKeywords {
		if strings.Contains(name, kw) {
			score += 5
			matched = appendUnique(matched, kw)
		}
	}
	if normalized != "" && strings.Contains(name, normalized) {
		score += 20
	}

	if !modified.IsZero() {
		days := int(now.Sub(modified).Hours() / 24)
		switch {
		case days <= 7:
			score += 15
		case days <= 30:
			score += 10
		case days <= 90:
			score += 5
		}
	}

	return score, matched
}

func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}

// DocumentURL returns the viewer link for a stored file
func DocumentURL(id, mimeType string) string {
	if strings.Contains(mimeType, "spreadsheet") {
		return "https://docs.google.com/spreadsheets/d/" + id
	}
	return "https://docs.google.com/document/d/" + id
}

// Rank scores datasheets against a wire name and returns matches with a
// positive score, best first. Ties keep the most recently modified first.
func Rank(sheets []*models.Datasheet, wireName string, now time.Time) []models.DatasheetMatch {
	normalized := NormalizeWireName(wireName)

	var matches []models.DatasheetMatch
	for _, ds := range sheets {
		if !slices.Contains(allowedMimeTypes, ds.MimeType) {
			continue
		}
		score, keywords := Score(ds.Name, normalized, ds.ModifiedTime, now)
		if score <= 0 {
			continue
		}
		url := ds.URL
		if url == "" {
			url = DocumentURL(ds.ID, ds.MimeType)
		}
		if keywords == nil {
			keywords = []string{}
		}
		matches = append(matches, models.DatasheetMatch{
			ID:              ds.ID,
			Name:            ds.Name,
			URL:             url,
			MimeType:        ds.MimeType,
			ModifiedTime:    ds.ModifiedTime,
			RelevanceScore:  score,
			MatchedKeywords: keywords,
		})
	}

	slices.SortStableFunc(matches, func(a, b models.DatasheetMatch) int {
		if a.RelevanceScore != b.RelevanceScore {
			return b.RelevanceScore - a.RelevanceScore
		}
		return b.ModifiedTime.Compare(a.ModifiedTime)
	})
	return matches
}
