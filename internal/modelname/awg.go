package modelname

// awgRow holds the derived conductor figures for one gauge
type awgRow struct {
	BunchedDiameter string
	Resistance      string
	CurrentRating   string
}

// fallbackAWG is used for any gauge missing from the table
const fallbackAWG = "12"

var awgTable = map[string]awgRow{
	"30": {BunchedDiameter: "0.8", Resistance: "122.0", CurrentRating: "0.5"},
	"28": {BunchedDiameter: "1.0", Resistance: "76.7", CurrentRating: "0.8"},
	"26": {BunchedDiameter: "1.3", Resistance: "48.3", CurrentRating: "1.3"},
	"24": {BunchedDiameter: "1.6", Resistance: "30.4", CurrentRating: "2.1"},
	"22": {BunchedDiameter: "1.8", Resistance: "19.1", CurrentRating: "3.3"},
	"20": {BunchedDiameter: "2.0", Resistance: "12.0", CurrentRating: "5.3"},
	"18": {BunchedDiameter: "2.2", Resistance: "7.6", CurrentRating: "8.5"},
	"16": {BunchedDiameter: "2.4", Resistance: "4.8", CurrentRating: "13.5"},
	"14": {BunchedDiameter: "2.6", Resistance: "3.0", CurrentRating: "21.5"},
	"12": {BunchedDiameter: "2.1", Resistance: "7.6", CurrentRating: "20.0"},
}

// lookupAWG returns the table row for a gauge, falling back to AWG 12
func lookupAWG(awg string) awgRow {
	if row, ok := awgTable[awg]; ok {
		return row
	}
	return awgTable[fallbackAWG]
}

// KnownAWG reports whether the gauge has its own table row
func KnownAWG(awg string) bool {
	_, ok := awgTable[awg]
	return ok
}
