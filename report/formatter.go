package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/s0up4200/matchboard/footballdata"
)

// FormatOptions controls console formatting
type FormatOptions struct {
	ShowDetails bool
	Location    *time.Location
}

// ConsoleFormatter renders matches and competitions as text trees
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// treeBranch returns the prefix and indent for an entry of a tree
func treeBranch(isLast bool) (prefix, indent string) {
	if isLast {
		return "╰── ", "    "
	}
	return "├── ", "│   "
}

func plural(n int, singular string) string {
	if n == 1 {
		return singular
	}
	return singular + "es"
}

// FormatMatchList formats a match search result for console display
func (f *ConsoleFormatter) FormatMatchList(result *footballdata.MatchResult, options FormatOptions) string {
	if result == nil || len(result.Matches) == 0 {
		return "No matches found\nTry adjusting the search filters\n"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s (%d)", plural(len(result.Matches), "Match"), result.Count)
	if result.Competition != nil {
		fmt.Fprintf(&sb, " - %s", result.Competition.Name)
	}
	sb.WriteString(":\n\n")

	f.writeMatches(&sb, result.Matches, "", options)

	sb.WriteString("\n")
	sb.WriteString(FormatStats(ComputeStats(result.Matches)))
	sb.WriteString("\n")
	return sb.String()
}

// writeMatches writes one tree entry per match, each line prefixed by lead
func (f *ConsoleFormatter) writeMatches(sb *strings.Builder, matches []footballdata.Match, lead string, options FormatOptions) {
	loc := options.Location
	if loc == nil {
		loc = time.Local
	}

	for i, match := range matches {
		isLast := i == len(matches)-1
		prefix, indent := treeBranch(isLast)

		fmt.Fprintf(sb, "%s%s%s  %s %s %s\n",
			lead, prefix,
			match.UTCDate.In(loc).Format("2006-01-02 15:04"),
			match.HomeTeam.DisplayName(),
			ScoreLine(match),
			match.AwayTeam.DisplayName())

		parts := []string{StatusLabel(match.Status)}
		if match.Matchday != nil {
			parts = append(parts, fmt.Sprintf("Matchday %d", *match.Matchday))
		}
		if options.ShowDetails && match.Competition.Name != "" {
			parts = append(parts, match.Competition.Name)
		}
		fmt.Fprintf(sb, "%s%s%s\n", lead, indent, strings.Join(parts, " | "))

		if options.ShowDetails {
			if ht := match.Score.HalfTime; ht.Complete() {
				fmt.Fprintf(sb, "%s%sHalf time: %d × %d\n", lead, indent, *ht.Home, *ht.Away)
			}
			if match.Stage != "" && match.Stage != "REGULAR_SEASON" {
				fmt.Fprintf(sb, "%s%sStage: %s\n", lead, indent, match.Stage)
			}
		}

		if !isLast {
			fmt.Fprintf(sb, "%s│\n", lead)
		}
	}
}

// FormatStats formats the summary line of a match list
func FormatStats(stats Stats) string {
	return fmt.Sprintf("Total: %d | Finished: %d | Scheduled: %d | Live: %d | Avg goals: %.1f\n",
		stats.Total, stats.Finished, stats.Scheduled, stats.Live, stats.AvgGoals)
}

// FormatCompetitions formats the provider's competition list
func (f *ConsoleFormatter) FormatCompetitions(competitions []footballdata.CompetitionInfo, options FormatOptions) string {
	if len(competitions) == 0 {
		return "No competitions found\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nCompetitions (%d):\n\n", len(competitions))

	for i, c := range competitions {
		isLast := i == len(competitions)-1
		prefix, indent := treeBranch(isLast)

		name := c.Name
		if footballdata.IsCompetitionSupported(c.Code) {
			name += " *"
		}
		fmt.Fprintf(&sb, "%s%-4s %s\n", prefix, c.Code, name)

		if options.ShowDetails {
			f.writeCompetitionDetails(&sb, c, indent)
		}

		if !isLast && options.ShowDetails {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n* available for match searches\n")
	return sb.String()
}

// FormatCompetitionInfo formats the metadata of one competition
func (f *ConsoleFormatter) FormatCompetitionInfo(info *footballdata.CompetitionInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%s)\n", info.Name, info.Code)
	f.writeCompetitionDetails(&sb, *info, "  ")
	if info.NumberOfAvailableSeasons > 0 {
		fmt.Fprintf(&sb, "  Seasons available: %d\n", info.NumberOfAvailableSeasons)
	}
	if info.LastUpdated != "" {
		fmt.Fprintf(&sb, "  Last updated: %s\n", info.LastUpdated)
	}
	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) writeCompetitionDetails(sb *strings.Builder, c footballdata.CompetitionInfo, indent string) {
	var parts []string
	if c.Area != nil && c.Area.Name != "" {
		parts = append(parts, c.Area.Name)
	}
	if c.Type != "" {
		parts = append(parts, c.Type)
	}
	if c.Plan != "" {
		parts = append(parts, c.Plan)
	}
	if len(parts) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(parts, " | "))
	}

	if season := c.CurrentSeason; season != nil {
		line := fmt.Sprintf("Season: %s to %s", season.StartDate, season.EndDate)
		if season.CurrentMatchday != nil {
			line += fmt.Sprintf(" (matchday %d)", *season.CurrentMatchday)
		}
		fmt.Fprintf(sb, "%s%s\n", indent, line)
	}
}

// FormatCatalog formats the competitions accepted for match searches
func (f *ConsoleFormatter) FormatCatalog(catalog []footballdata.Competition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nSupported competitions (%d):\n\n", len(catalog))
	for i, c := range catalog {
		prefix, _ := treeBranch(i == len(catalog)-1)
		fmt.Fprintf(&sb, "%s%-4s %s\n", prefix, c.Code, c.Name)
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatOverview formats the result of a multi-competition search. Failed
// competitions are listed with their error; the rest are unaffected.
func (f *ConsoleFormatter) FormatOverview(results []footballdata.CompetitionMatches, options FormatOptions) string {
	if len(results) == 0 {
		return "No competitions selected\n"
	}

	var sb strings.Builder
	var all []footballdata.Match

	for i, entry := range results {
		isLast := i == len(results)-1
		prefix, indent := treeBranch(isLast)

		fmt.Fprintf(&sb, "%s%s (%s)\n", prefix, footballdata.CompetitionName(entry.Code), entry.Code)

		switch {
		case entry.Err != nil:
			fmt.Fprintf(&sb, "%s✗ %s\n", indent, NewErrorPayload(entry.Err).userMessage())
		case entry.Result == nil || len(entry.Result.Matches) == 0:
			fmt.Fprintf(&sb, "%sNo matches found\n", indent)
		default:
			all = append(all, entry.Result.Matches...)
			f.writeMatches(&sb, entry.Result.Matches, indent, options)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(FormatStats(ComputeStats(all)))
	return sb.String()
}

// FormatConnection formats a connection test result
func (f *ConsoleFormatter) FormatConnection(result footballdata.ConnectionResult) string {
	var sb strings.Builder
	if result.Success {
		fmt.Fprintf(&sb, "✓ %s (%s mode)\n", result.Message, result.Mode)
		return sb.String()
	}

	fmt.Fprintf(&sb, "✗ Connection failed (%s mode): %s\n", result.Mode, result.Error)
	if msg := footballdata.FriendlyMessage(result.Kind); msg != "" {
		fmt.Fprintf(&sb, "  %s\n", msg)
	}
	writeSuggestion(&sb, result.Suggestion)
	return sb.String()
}

// FormatError formats a failure for console display
func (f *ConsoleFormatter) FormatError(err error) string {
	payload := NewErrorPayload(err)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", payload.userMessage())
	if payload.FriendlyMessage != "" && payload.Message != payload.FriendlyMessage {
		fmt.Fprintf(&sb, "  %s\n", payload.Message)
	}
	writeSuggestion(&sb, payload.Suggestion)
	return sb.String()
}

func writeSuggestion(sb *strings.Builder, suggestion *footballdata.Suggestion) {
	if suggestion == nil {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", suggestion.Title)
	for _, option := range suggestion.Options {
		fmt.Fprintf(sb, "  %s\n", option)
	}
}
