package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/preseries/api-examples/pkg/preseries"
)

// Writer renders enriched company data into an XLSX workbook.
type Writer struct {
	profiles *Profiles
}

// NewWriter creates a Writer using the given column profiles.
func NewWriter(profiles *Profiles) *Writer {
	return &Writer{profiles: profiles}
}

// WriteEnrichment saves a workbook with one sheet per dataset: the
// companies themselves, their founders, board members, funding stages
// and rounds, and the competitor and similar-company records grouped
// per company.
func (w *Writer) WriteEnrichment(path string, companies []preseries.Company, competitors, similar map[string][]preseries.Company) error {
	wb := xlsx.NewFile()

	sheets := []struct {
		name    string
		profile Profile
		rows    []map[string]any
	}{
		{"Companies", w.profiles.Companies, rawMaps(companies)},
		{"Founders", w.profiles.Persons, nestedPeople(companies, "founders")},
		{"Board Members", w.profiles.Persons, nestedPeople(companies, "board_members")},
		{"Stages", w.profiles.Stages, stageRecords(companies)},
		{"Rounds", w.profiles.Rounds, roundRecords(companies)},
		{"Competitors", w.profiles.Competitors, flattenGroups(competitors)},
		{"Similar", w.profiles.Similar, flattenGroups(similar)},
	}

	for _, s := range sheets {
		if err := writeSheet(wb, s.name, s.profile, s.rows); err != nil {
			return err
		}
	}

	if err := wb.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func writeSheet(wb *xlsx.File, name string, profile Profile, rows []map[string]any) error {
	s, err := wb.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}

	header := s.AddRow()
	for _, h := range profile.Headers() {
		header.AddCell().SetString(h)
	}

	for _, resource := range rows {
		row := s.AddRow()
		for _, col := range profile {
			row.AddCell().SetString(Value(resource, col.Field))
		}
	}

	return nil
}

func rawMaps(companies []preseries.Company) []map[string]any {
	out := make([]map[string]any, 0, len(companies))
	for _, c := range companies {
		if c.Raw != nil {
			out = append(out, c.Raw)
		}
	}
	return out
}

// nestedPeople collects the person lists embedded in each company
// record, tagging every person with the company it belongs to.
func nestedPeople(companies []preseries.Company, key string) []map[string]any {
	var out []map[string]any
	for _, c := range companies {
		people, ok := c.Raw[key].([]any)
		if !ok {
			continue
		}
		for _, p := range people {
			person, ok := p.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, withCompany(person, c.Raw, nil))
		}
	}
	return out
}

func stageRecords(companies []preseries.Company) []map[string]any {
	var out []map[string]any
	for _, c := range companies {
		stages, ok := c.Raw["stages"].(map[string]any)
		if !ok {
			continue
		}
		for name, s := range stages {
			stage, ok := s.(map[string]any)
			if !ok {
				continue
			}
			extra := map[string]any{}
			if _, ok := stage["stage"]; !ok {
				extra["stage"] = name
			}
			out = append(out, withCompany(stage, c.Raw, extra))
		}
	}
	return out
}

func roundRecords(companies []preseries.Company) []map[string]any {
	var out []map[string]any
	for _, c := range companies {
		stages, ok := c.Raw["stages"].(map[string]any)
		if !ok {
			continue
		}
		for name, s := range stages {
			stage, ok := s.(map[string]any)
			if !ok {
				continue
			}
			rounds, ok := stage["rounds"].([]any)
			if !ok {
				continue
			}
			for _, r := range rounds {
				round, ok := r.(map[string]any)
				if !ok {
					continue
				}
				out = append(out, withCompany(round, c.Raw, map[string]any{"stage": name}))
			}
		}
	}
	return out
}

func flattenGroups(groups map[string][]preseries.Company) []map[string]any {
	var out []map[string]any
	for _, records := range groups {
		out = append(out, rawMaps(records)...)
	}
	return out
}

// withCompany copies a nested record and stamps the owning company's
// identity onto it. The source record is left untouched.
func withCompany(record, company map[string]any, extra map[string]any) map[string]any {
	out := make(map[string]any, len(record)+len(extra)+2)
	for k, v := range record {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	out["company_id"] = company["company_id"]
	out["company_name"] = company["name"]
	return out
}
