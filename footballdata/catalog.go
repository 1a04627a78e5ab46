package footballdata

import "sort"

// Competition is an entry of the local competition catalog
type Competition struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
	ID   string `json:"id" yaml:"id"`
}

// catalog lists the competitions the client accepts by code
var catalog = map[string]Competition{
	"PL":  {Code: "PL", Name: "Premier League", ID: "PL"},
	"PD":  {Code: "PD", Name: "La Liga", ID: "PD"},
	"BL1": {Code: "BL1", Name: "Bundesliga", ID: "BL1"},
	"SA":  {Code: "SA", Name: "Serie A", ID: "SA"},
	"FL1": {Code: "FL1", Name: "Ligue 1", ID: "FL1"},
	"CL":  {Code: "CL", Name: "Champions League", ID: "CL"},
	"BSA": {Code: "BSA", Name: "Brasileirão", ID: "BSA"},
}

// LookupCompetition returns the catalog entry for code
func LookupCompetition(code string) (Competition, bool) {
	c, ok := catalog[code]
	return c, ok
}

// IsCompetitionSupported reports whether code is in the catalog
func IsCompetitionSupported(code string) bool {
	_, ok := catalog[code]
	return ok
}

// CompetitionName returns the display name for code, or code itself when
// it is not in the catalog
func CompetitionName(code string) string {
	if c, ok := catalog[code]; ok {
		return c.Name
	}
	return code
}

// SupportedCompetitions returns the catalog sorted by code
func SupportedCompetitions() []Competition {
	out := make([]Competition, 0, len(catalog))
	for _, c := range catalog {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// SupportedCodes returns the catalog codes sorted alphabetically
func SupportedCodes() []string {
	competitions := SupportedCompetitions()
	codes := make([]string, len(competitions))
	for i, c := range competitions {
		codes[i] = c.Code
	}
	return codes
}
