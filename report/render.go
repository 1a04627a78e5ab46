// Package report turns football-data results into console, JSON or YAML
// output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/s0up4200/matchboard/footballdata"
)

// Format is an output format
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates an output format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (valid: table, json, yaml)", s)
	}
}

// Option configures a Renderer
type Option func(*Renderer)

// WithDetails includes secondary fields in table output
func WithDetails(show bool) Option {
	return func(r *Renderer) {
		r.options.ShowDetails = show
	}
}

// WithLocation sets the time zone used for match dates in table output
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		r.options.Location = loc
	}
}

// Renderer writes results to an io.Writer in one format
type Renderer struct {
	w         io.Writer
	format    Format
	options   FormatOptions
	formatter *ConsoleFormatter
}

// NewRenderer creates a renderer. An unknown format falls back to table.
func NewRenderer(w io.Writer, format Format, opts ...Option) *Renderer {
	if format != FormatJSON && format != FormatYAML {
		format = FormatTable
	}

	r := &Renderer{
		w:         w,
		format:    format,
		formatter: NewConsoleFormatter(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MatchesDocument is the structured form of a match search
type MatchesDocument struct {
	Competition *footballdata.Competition `json:"competition,omitempty" yaml:"competition,omitempty"`
	Count       int                       `json:"count" yaml:"count"`
	Filters     map[string]any            `json:"filters,omitempty" yaml:"filters,omitempty"`
	Stats       Stats                     `json:"stats" yaml:"stats"`
	Matches     []footballdata.Match      `json:"matches" yaml:"matches"`
}

// OverviewEntry is the structured form of one competition of an overview
type OverviewEntry struct {
	Code    string               `json:"code" yaml:"code"`
	Name    string               `json:"name" yaml:"name"`
	Count   int                  `json:"count" yaml:"count"`
	Stats   *Stats               `json:"stats,omitempty" yaml:"stats,omitempty"`
	Matches []footballdata.Match `json:"matches,omitempty" yaml:"matches,omitempty"`
	Error   *ErrorPayload        `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewMatchesDocument builds the structured form of result
func NewMatchesDocument(result *footballdata.MatchResult) MatchesDocument {
	return MatchesDocument{
		Competition: result.Competition,
		Count:       result.Count,
		Filters:     result.Filters,
		Stats:       ComputeStats(result.Matches),
		Matches:     result.Matches,
	}
}

// NewOverview builds the structured form of a multi-competition search
func NewOverview(results []footballdata.CompetitionMatches) []OverviewEntry {
	entries := make([]OverviewEntry, 0, len(results))
	for _, res := range results {
		entry := OverviewEntry{Code: res.Code, Name: footballdata.CompetitionName(res.Code)}
		if res.Err != nil {
			payload := NewErrorPayload(res.Err)
			entry.Error = &payload
		} else if res.Result != nil {
			stats := ComputeStats(res.Result.Matches)
			entry.Count = res.Result.Count
			entry.Stats = &stats
			entry.Matches = res.Result.Matches
		}
		entries = append(entries, entry)
	}
	return entries
}

// RenderMatches writes a match search result
func (r *Renderer) RenderMatches(result *footballdata.MatchResult) error {
	if r.format == FormatTable {
		return r.write(r.formatter.FormatMatchList(result, r.options))
	}
	return r.encode(NewMatchesDocument(result))
}

// RenderCompetitions writes the provider's competition list
func (r *Renderer) RenderCompetitions(competitions []footballdata.CompetitionInfo) error {
	if r.format == FormatTable {
		return r.write(r.formatter.FormatCompetitions(competitions, r.options))
	}
	return r.encode(competitions)
}

// RenderCompetitionInfo writes the metadata of one competition
func (r *Renderer) RenderCompetitionInfo(info *footballdata.CompetitionInfo) error {
	if r.format == FormatTable {
		return r.write(r.formatter.FormatCompetitionInfo(info))
	}
	return r.encode(info)
}

// RenderCatalog writes the competitions accepted for match searches
func (r *Renderer) RenderCatalog(catalog []footballdata.Competition) error {
	if r.format == FormatTable {
		return r.write(r.formatter.FormatCatalog(catalog))
	}
	return r.encode(catalog)
}

// RenderOverview writes a multi-competition search
func (r *Renderer) RenderOverview(results []footballdata.CompetitionMatches) error {
	if r.format == FormatTable {
		return r.write(r.formatter.FormatOverview(results, r.options))
	}
	return r.encode(NewOverview(results))
}

// RenderConnection writes a connection test result
func (r *Renderer) RenderConnection(result footballdata.ConnectionResult) error {
	if r.format == FormatTable {
		return r.write(r.formatter.FormatConnection(result))
	}
	return r.encode(result)
}

// RenderError writes a failure
func (r *Renderer) RenderError(err error) error {
	if r.format == FormatTable {
		return r.write(r.formatter.FormatError(err))
	}
	return r.encode(struct {
		Success bool         `json:"success" yaml:"success"`
		Error   ErrorPayload `json:"error" yaml:"error"`
	}{Error: NewErrorPayload(err)})
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.w, s)
	return err
}

func (r *Renderer) encode(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %s cannot encode values", r.format)
	}
}
