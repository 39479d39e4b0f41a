package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/preseries/api-examples/internal/query"
	"github.com/preseries/api-examples/internal/resolver"
	"github.com/preseries/api-examples/internal/sheet"
	"github.com/preseries/api-examples/pkg/preseries"
)

func writeSourceXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	s, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := s.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "companies.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestFileFlags_Open(t *testing.T) {
	path := writeSourceXLSX(t, [][]string{
		{"Company", "Country", "Segment"},
		{"PreSeries", "Spain", "SaaS"},
		{"Acme", "United States", "Hardware"},
	})

	f := fileFlags{path: path, columnName: "A", columnCountry: "B", skipRows: 1}
	file, rows, err := f.open()
	require.NoError(t, err)
	require.NotNil(t, file)
	require.Len(t, rows, 2)
	assert.Equal(t, "PreSeries", rows[0].Name)
	assert.Equal(t, "Spain", rows[0].Country)
	assert.Equal(t, 2, rows[1].Index)
}

func TestKnownResults_PullsSummaryFromSource(t *testing.T) {
	path := writeSourceXLSX(t, [][]string{
		{"Company", "Country", "Segment"},
		{"Acme", "United States", "Hardware"},
	})

	file, err := sheet.Open(path, sheet.ReadOptions{SkipRows: 1})
	require.NoError(t, err)

	matches := []resolver.Match{{
		Row: 1,
		Company: preseries.Company{Raw: map[string]any{
			"id":           "c1",
			"name":         "Acme Corporation",
			"domain":       "acme.example",
			"country_code": "USA",
		}},
	}}

	results, err := knownResults(file, matches, []string{"C"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Row)
	assert.Equal(t, "Acme Corporation", results[0].Name)
	assert.Equal(t, "acme.example", results[0].Domain)
	assert.Equal(t, "USA", results[0].Country)
	assert.Equal(t, []string{"Hardware"}, results[0].Summary)
}

func TestUnknownResults_UsesFingerprintFields(t *testing.T) {
	path := writeSourceXLSX(t, [][]string{
		{"Company", "Country", "Segment"},
		{"Ghost Startup", "Spain", "SaaS"},
	})

	file, err := sheet.Open(path, sheet.ReadOptions{SkipRows: 1})
	require.NoError(t, err)

	unmatched := []query.Fingerprint{{
		Row: 1,
		Fields: map[string]string{
			"name":         "Ghost Startup",
			"country_code": "ESP",
		},
	}}

	results, err := unknownResults(file, unmatched, []string{"C"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ghost Startup", results[0].Name)
	assert.Equal(t, "ESP", results[0].Country)
	assert.Empty(t, results[0].Domain)
	assert.Equal(t, []string{"SaaS"}, results[0].Summary)
}

func TestSummaryValues_BadColumn(t *testing.T) {
	path := writeSourceXLSX(t, [][]string{{"a"}})

	file, err := sheet.Open(path, sheet.ReadOptions{})
	require.NoError(t, err)

	_, err = summaryValues(file, 0, []string{"4"})
	require.Error(t, err)
}
