package models

import (
	"time"
)

// Mime types accepted as production datasheets
const (
	MimeGoogleSheet = "application/vnd.google-apps.spreadsheet"
	MimeGoogleDoc   = "application/vnd.google-apps.document"
	MimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeXLS         = "application/vnd.ms-excel"
)

// Datasheet is a stored production datasheet with its tabular sheets
type Datasheet struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	MimeType     string                `json:"mime_type"`
	URL          string                `json:"url"`
	Sheets       map[string][][]string `json:"sheets,omitempty"`
	Content      string                `json:"content,omitempty"`
	ModifiedTime time.Time             `json:"modified_time"`
	CreatedAt    time.Time             `json:"created_at"`
}

// DatasheetMatch is a scored search hit
type DatasheetMatch struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	URL             string    `json:"url"`
	MimeType        string    `json:"mime_type"`
	ModifiedTime    time.Time `json:"modified_time"`
	RelevanceScore  int       `json:"relevance_score"`
	MatchedKeywords []string  `json:"matched_keywords"`
}

// DatasheetProvenance records which datasheet enriched a report. Times
// are kept as the source service formatted them.
type DatasheetProvenance struct {
	SourceFile     string `json:"source_file"`
	SourceURL      string `json:"source_url"`
	LastUpdated    string `json:"last_updated"`
	ExtractionTime string `json:"extraction_time"`
}

// ProductModel is a catalogued product with free-form attributes
type ProductModel struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	ModelNumber        string            `json:"model_number"`
	Specifications     map[string]string `json:"specifications"`
	ReferenceStandards map[string]string `json:"reference_standards"`
	CreatedAt          time.Time         `json:"created_at"`
}
