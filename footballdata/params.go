package footballdata

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultLimit is the page size sent when MatchOptions.Limit is not set
const DefaultLimit = 100

// MatchOptions are the filters of the match search operations. Empty fields
// are left out of the query string entirely.
type MatchOptions struct {
	// Competitions restricts GetMatches to these codes; sent comma separated.
	// Ignored by GetMatchesByCompetition.
	Competitions []string
	// Season is the starting year of a season, e.g. "2023"
	Season string
	// Status is a provider match status such as FINISHED or SCHEDULED
	Status string
	// DateFrom and DateTo bound the match date (YYYY-MM-DD)
	DateFrom string
	DateTo   string
	// Limit is always sent; values <= 0 use DefaultLimit
	Limit int
}

// OnDate returns a copy of o restricted to a single day
func (o MatchOptions) OnDate(date string) MatchOptions {
	if date != "" {
		o.DateFrom = date
		o.DateTo = date
	}
	return o
}

func (o MatchOptions) values(withCompetitions bool) url.Values {
	params := url.Values{}

	if withCompetitions {
		var codes []string
		for _, code := range o.Competitions {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, code)
			}
		}
		if len(codes) > 0 {
			params.Set("competitions", strings.Join(codes, ","))
		}
	}

	setIfPresent(params, "season", o.Season)
	setIfPresent(params, "status", o.Status)
	setIfPresent(params, "dateFrom", o.DateFrom)
	setIfPresent(params, "dateTo", o.DateTo)

	limit := o.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	params.Set("limit", strconv.Itoa(limit))

	return params
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

// encodeQuery encodes params without keys whose values are empty
func encodeQuery(params url.Values) string {
	if len(params) == 0 {
		return ""
	}
	clean := url.Values{}
	for key, values := range params {
		for _, v := range values {
			if v != "" {
				clean.Add(key, v)
			}
		}
	}
	return clean.Encode()
}
