package sheet

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Result is one line of a Known or Unknown companies workbook. Summary
// holds the extra cell values copied over from the source file, in the
// order of the configured summary columns.
type Result struct {
	Row     int
	Name    string
	Domain  string
	Country string
	Summary []string
}

// WriteResults saves a single-sheet workbook listing the given results.
// summaryHeaders extends the fixed header with one column per summary
// value.
func WriteResults(path string, results []Result, summaryHeaders []string) error {
	wb := xlsx.NewFile()
	s, err := wb.AddSheet("Companies")
	if err != nil {
		return eris.Wrap(err, "sheet: add sheet")
	}

	header := append([]string{"Original Row", "Company Name", "Domain", "Country"}, summaryHeaders...)
	writeRow(s, header)

	for _, r := range results {
		cells := append([]string{strconv.Itoa(r.Row), r.Name, r.Domain, r.Country}, r.Summary...)
		writeRow(s, cells)
	}

	if err := wb.Save(path); err != nil {
		return eris.Wrapf(err, "sheet: save %s", path)
	}
	return nil
}

func writeRow(s *xlsx.Sheet, values []string) {
	row := s.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
