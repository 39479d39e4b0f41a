package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/preseries/api-examples/internal/query"
	"github.com/preseries/api-examples/internal/resolver"
	"github.com/preseries/api-examples/internal/sheet"
	"github.com/preseries/api-examples/pkg/preseries"
)

// fileFlags are the spreadsheet flags shared by the import and export
// commands.
type fileFlags struct {
	path           string
	columnID       string
	columnName     string
	columnCountry  string
	columnDomain   string
	skipRows       int
	summaryColumns []string
}

func (f *fileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "file", "", "path to the XLSX file with the companies (required)")
	cmd.Flags().StringVar(&f.columnID, "column-id", "", "column letter holding the PreSeries company id")
	cmd.Flags().StringVar(&f.columnName, "column-name", "", "column letter holding the company name")
	cmd.Flags().StringVar(&f.columnCountry, "column-country", "", "column letter holding the company country")
	cmd.Flags().StringVar(&f.columnDomain, "column-domain", "", "column letter holding the company domain")
	cmd.Flags().IntVar(&f.skipRows, "skip-rows", 0, "number of header rows to skip")
	cmd.Flags().StringSliceVar(&f.summaryColumns, "summary-columns", nil, "column letters copied into the result files")
	_ = cmd.MarkFlagRequired("file")
}

func (f *fileFlags) validate() error {
	if f.columnID == "" && f.columnName == "" {
		return eris.New("either --column-id or --column-name is required")
	}
	return nil
}

func (f *fileFlags) open() (*sheet.File, []query.Row, error) {
	file, err := sheet.Open(f.path, sheet.ReadOptions{SkipRows: f.skipRows})
	if err != nil {
		return nil, nil, err
	}

	rows, err := file.Rows(sheet.Columns{
		ID:      f.columnID,
		Name:    f.columnName,
		Country: f.columnCountry,
		Domain:  f.columnDomain,
	})
	if err != nil {
		return nil, nil, err
	}

	return file, rows, nil
}

func newAPIClient() (preseries.Client, error) {
	return preseries.NewClient(cfg.API)
}

func summaryValues(f *sheet.File, row int, cols []string) ([]string, error) {
	out := make([]string, len(cols))
	for i, col := range cols {
		v, err := f.Cell(row, col)
		if err != nil {
			return nil, eris.Wrapf(err, "summary column %s", col)
		}
		out[i] = v
	}
	return out, nil
}

func knownResults(f *sheet.File, matches []resolver.Match, summaryCols []string) ([]sheet.Result, error) {
	out := make([]sheet.Result, 0, len(matches))
	for _, m := range matches {
		summary, err := summaryValues(f, m.Row, summaryCols)
		if err != nil {
			return nil, err
		}
		name, _ := m.Company.Field("name")
		if name == "" {
			name = m.Company.Name
		}
		domain, _ := m.Company.Field("domain")
		country, _ := m.Company.Field("country_code")
		out = append(out, sheet.Result{
			Row:     m.Row,
			Name:    name,
			Domain:  domain,
			Country: country,
			Summary: summary,
		})
	}
	return out, nil
}

func unknownResults(f *sheet.File, unmatched []query.Fingerprint, summaryCols []string) ([]sheet.Result, error) {
	out := make([]sheet.Result, 0, len(unmatched))
	for _, fp := range unmatched {
		summary, err := summaryValues(f, fp.Row, summaryCols)
		if err != nil {
			return nil, err
		}
		out = append(out, sheet.Result{
			Row:     fp.Row,
			Name:    fp.Fields["name"],
			Domain:  fp.Fields["domain"],
			Country: fp.Fields["country_code"],
			Summary: summary,
		})
	}
	return out, nil
}
