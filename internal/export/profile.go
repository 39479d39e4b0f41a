// Package export turns enriched company records into the multi-sheet
// XLSX workbook produced by the export command. Which fields land in
// which sheet is driven by a column profile, loadable from YAML.
package export

import (
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfilesYAML []byte

// Column maps a workbook column header to the field path it is filled
// from. Paths address nested objects with slashes, e.g.
// "company/elevator_pitch".
type Column struct {
	Header string `yaml:"header"`
	Field  string `yaml:"field"`
}

// Profile is the ordered column list of one sheet.
type Profile []Column

// Headers returns the header row of the profile.
func (p Profile) Headers() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Header
	}
	return out
}

// Profiles holds the column profiles of every sheet in the export
// workbook. Founders and board members share the persons profile.
type Profiles struct {
	Companies   Profile `yaml:"companies"`
	Persons     Profile `yaml:"persons"`
	Stages      Profile `yaml:"stages"`
	Rounds      Profile `yaml:"rounds"`
	Competitors Profile `yaml:"competitors"`
	Similar     Profile `yaml:"similar"`
}

// DefaultProfiles returns the built-in column profiles.
func DefaultProfiles() (*Profiles, error) {
	return parseProfiles(defaultProfilesYAML)
}

// LoadProfiles reads column profiles from a YAML file.
func LoadProfiles(path string) (*Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "export: read profiles %s", path)
	}
	p, err := parseProfiles(data)
	if err != nil {
		return nil, eris.Wrapf(err, "export: profiles %s", path)
	}
	return p, nil
}

func parseProfiles(data []byte) (*Profiles, error) {
	var wrapper struct {
		Sheets Profiles `yaml:"sheets"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "export: parse profiles")
	}

	p := wrapper.Sheets
	for _, check := range []struct {
		name    string
		profile Profile
	}{
		{"companies", p.Companies},
		{"persons", p.Persons},
		{"stages", p.Stages},
		{"rounds", p.Rounds},
		{"competitors", p.Competitors},
		{"similar", p.Similar},
	} {
		if len(check.profile) == 0 {
			return nil, eris.Errorf("export: profile %q has no columns", check.name)
		}
		for _, col := range check.profile {
			if col.Header == "" || col.Field == "" {
				return nil, eris.Errorf("export: profile %q has a column without header or field", check.name)
			}
		}
	}

	return &p, nil
}
