package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwpl/pds-engine/internal/cache"
)

func TestSelectSheet(t *testing.T) {
	tests := []struct {
		name   string
		sheets []string
		want   string
	}{
		{"exact key", []string{"Production Sheet", "Misc", "Standard_Technical_Datasheet v2"}, "Standard_Technical_Datasheet v2"},
		{"standard and technical", []string{"Technical Datasheet", "Standard Technical"}, "Standard Technical"},
		{"technical datasheet", []string{"Standard Notes", "Technical datasheet"}, "Technical datasheet"},
		{"standard datasheet", []string{"Production Sheet", "Standard datasheet"}, "Standard datasheet"},
		{"skips production sheet", []string{"Production Sheet", "Summary"}, "Summary"},
		{"only production sheets", []string{"Production Sheet 2", "Production Sheet 1"}, "Production Sheet 2"},
		{"first non-production in order", []string{"Production Sheet", "Zeta", "Alpha"}, "Zeta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectSheet(tt.sheets)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := SelectSheet(nil)
	assert.False(t, ok)
}

func TestMapRows(t *testing.T) {
	m := MapRows([][]string{
		{"Parameter", "Value", "Unit"},
		{" AWG Size ", "12", "AWG"},
		{"", "ignored"},
		{"Jacket Material"},
		{},
	})
	assert.Equal(t, "12", m["AWG Size"])
	assert.Equal(t, "", m["Jacket Material"])
	assert.NotContains(t, m, "")
	assert.Len(t, m, 3)
}

func TestExtractSection(t *testing.T) {
	sheet := [][]string{
		{"Header", "", ""},
		{"A) Conductor", "", ""},
		{"Conductor Material", "Visual", "Tinned Copper"},
		{"Conductor Size", "AWG", "12"},
		{"Note only", "", ""},
		{"B) Insulation", "", ""},
		{"Material", "Visual", "XLPE"},
		{"C. Twisting", "", ""},
		{"Lay direction", "Visual", "RH"},
	}

	conductor := ExtractSection(sheet, "Conductor")
	require.Len(t, conductor, 2)
	assert.Equal(t, 1, conductor[0].Sno)
	assert.Equal(t, "Conductor Material", conductor[0].Parameter)
	assert.Equal(t, "Tinned Copper", conductor[0].Specifications)
	assert.Equal(t, 2, conductor[1].Sno)

	insulation := ExtractSection(sheet, "b) insulation")
	require.Len(t, insulation, 1)
	assert.Equal(t, "XLPE", insulation[0].Specifications)

	assert.Empty(t, ExtractSection(sheet, "Shielding"))
	assert.Empty(t, ExtractSection(sheet, "  "))
}

func TestDecode(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		rows, sheet, err := Decode([]byte(`[["Parameter","Value"],["AWG Size", 12]]`))
		require.NoError(t, err)
		assert.Empty(t, sheet)
		assert.Equal(t, "12", rows[1][1])
	})

	t.Run("workbook", func(t *testing.T) {
		rows, sheet, err := Decode([]byte(`{"Production Sheet":[["x"]],"Standard Technical":[["y",null]]}`))
		require.NoError(t, err)
		assert.Equal(t, "Standard Technical", sheet)
		assert.Equal(t, [][]string{{"y", ""}}, rows)
	})

	t.Run("keeps document order", func(t *testing.T) {
		rows, sheet, err := Decode([]byte(`{"Production Sheet Zeta":[["z"]],"Production Sheet Alpha":[["a"]]}`))
		require.NoError(t, err)
		assert.Equal(t, "Production Sheet Zeta", sheet)
		assert.Equal(t, [][]string{{"z"}}, rows)
	})

	t.Run("skips invalid sheets in order", func(t *testing.T) {
		_, sheet, err := Decode([]byte(`{"Notes":"text","Summary B":[["b"]],"Summary A":[["a"]]}`))
		require.NoError(t, err)
		assert.Equal(t, "Summary B", sheet)
	})

	t.Run("error payload", func(t *testing.T) {
		_, _, err := Decode([]byte(`{"success":false,"error":"No production datasheets found"}`))
		assert.Error(t, err)
	})

	t.Run("empty sheet", func(t *testing.T) {
		_, _, err := Decode([]byte(`{"Standard Technical":[]}`))
		assert.Error(t, err)
	})
}

func TestFetcher_FirstSuccessWins(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer failing.Close()

	var path string
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Production Sheet":[["Parameter","Value","Unit"],["AWG Size","12","AWG"]]}`))
	}))
	defer ok.Close()

	f := NewFetcher(Config{Enabled: true, BaseURLs: []string{failing.URL, ok.URL + "/"}, Timeout: time.Second}, nil)
	res := f.Fetch(context.Background())

	assert.Equal(t, SourceRemote, res.Source)
	assert.Equal(t, ok.URL+DataPath, res.URL)
	assert.Equal(t, DataPath, path)
	assert.Equal(t, "Production Sheet", res.Sheet)
	assert.Len(t, res.Rows, 2)
}

func TestFetcher_FallsBackToOfflineSample(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	down.Close()

	f := NewFetcher(Config{Enabled: true, BaseURLs: []string{down.URL, down.URL}, Timeout: time.Second}, nil)
	res := f.Fetch(context.Background())

	assert.Equal(t, SourceOffline, res.Source)
	assert.Equal(t, OfflineSample, res.Rows)
}

func TestFetcher_UsesCacheAfterFailure(t *testing.T) {
	up := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !up {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[["Parameter","Value"],["Voltage Rating","600"]]`))
	}))
	defer srv.Close()

	f := NewFetcher(Config{Enabled: true, BaseURLs: []string{srv.URL}, Timeout: time.Second}, cache.NewMemoryClient())

	first := f.Fetch(context.Background())
	require.Equal(t, SourceRemote, first.Source)

	up = false
	second := f.Fetch(context.Background())
	assert.Equal(t, SourceCache, second.Source)
	assert.Equal(t, first.Rows, second.Rows)
}

func TestFetcher_Disabled(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	f := NewFetcher(Config{Enabled: false, BaseURLs: []string{srv.URL}}, nil)
	res := f.Fetch(context.Background())

	assert.Equal(t, SourceDisabled, res.Source)
	assert.Equal(t, OfflineSample, res.Rows)
	assert.False(t, called)
}
