// Package sheet reads company rows from XLSX workbooks and writes the
// result workbooks produced by the import and export commands.
package sheet

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/preseries/api-examples/internal/query"
)

// Columns names the spreadsheet columns, by letter, that carry each
// company field. Empty letters mean the field is absent from the file.
type Columns struct {
	ID      string
	Name    string
	Country string
	Domain  string
}

// ReadOptions configures which sheet is read and how many header rows
// are skipped.
type ReadOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
	SkipRows   int
}

// File is an open workbook. Row indexes are absolute sheet positions so
// they can be used to address the same sheet again later.
type File struct {
	sheet *xlsx.Sheet
	opts  ReadOptions
}

// Open reads the workbook at path and selects the sheet named by opts.
func Open(path string, opts ReadOptions) (*File, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "sheet: open file")
	}

	s, err := pickSheet(f, opts)
	if err != nil {
		return nil, err
	}

	return &File{sheet: s, opts: opts}, nil
}

// Rows extracts one query.Row per data row. Rows whose configured cells
// are all blank are skipped.
func (f *File) Rows(cols Columns) ([]query.Row, error) {
	idx, err := columnIndexes(cols)
	if err != nil {
		return nil, err
	}

	var rows []query.Row
	for i := f.opts.SkipRows; i < len(f.sheet.Rows); i++ {
		row := query.Row{
			Index:   i,
			ID:      cellAt(f.sheet.Rows[i], idx.id),
			Name:    cellAt(f.sheet.Rows[i], idx.name),
			Country: cellAt(f.sheet.Rows[i], idx.country),
			Domain:  cellAt(f.sheet.Rows[i], idx.domain),
		}
		if row.ID == "" && row.Name == "" && row.Country == "" && row.Domain == "" {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Cell returns the value at the absolute row and the given column letter.
// Out-of-range positions read as empty.
func (f *File) Cell(row int, column string) (string, error) {
	col, err := query.ColumnIndex(column)
	if err != nil {
		return "", err
	}
	if row < 0 || row >= len(f.sheet.Rows) {
		return "", nil
	}
	return cellAt(f.sheet.Rows[row], col), nil
}

type colIndexes struct {
	id, name, country, domain int
}

func columnIndexes(cols Columns) (colIndexes, error) {
	idx := colIndexes{id: -1, name: -1, country: -1, domain: -1}

	for _, c := range []struct {
		letter string
		dst    *int
	}{
		{cols.ID, &idx.id},
		{cols.Name, &idx.name},
		{cols.Country, &idx.country},
		{cols.Domain, &idx.domain},
	} {
		if c.letter == "" {
			continue
		}
		n, err := query.ColumnIndex(c.letter)
		if err != nil {
			return idx, err
		}
		*c.dst = n
	}

	return idx, nil
}

func cellAt(row *xlsx.Row, col int) string {
	if col < 0 || col >= len(row.Cells) {
		return ""
	}
	return strings.TrimSpace(row.Cells[col].String())
}

func pickSheet(f *xlsx.File, opts ReadOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		s, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("sheet: sheet %q not found", opts.SheetName)
		}
		return s, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("sheet: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}
