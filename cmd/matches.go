package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/matchboard/footballdata"
)

var (
	// Match flags
	matchCompetitions []string
	matchSeason       string
	matchStatus       string
	matchDate         string
	matchFrom         string
	matchTo           string
	matchLimit        int
	matchFilter       string
	matchPreset       string
)

// matchesCmd represents the matches command
var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List matches",
	Long: `List matches from football-data.org.

With a single --competition the competition endpoint is used. Otherwise
the cross-competition search is used, optionally restricted to several
competitions.

Results can be narrowed locally with a filter expression or a preset from
the config file:
  matchboard matches -c PL --status FINISHED --filter 'TotalGoals >= 4'
  matchboard matches -c PL,PD --preset big-games`,
	Example: `  matchboard matches -c PL --date 2024-03-02
  matchboard matches -c SA --from 2024-01-01 --to 2024-01-31 --limit 20
  matchboard matches --status IN_PLAY -o json`,
	RunE: runMatches,
}

func init() {
	rootCmd.AddCommand(matchesCmd)

	matchesCmd.Flags().StringSliceVarP(&matchCompetitions, "competition", "c", nil, "competition code(s), e.g. PL or PL,CL")
	matchesCmd.Flags().StringVar(&matchSeason, "season", "", "season start year, e.g. 2023")
	matchesCmd.Flags().StringVar(&matchStatus, "status", "", "match status, e.g. SCHEDULED, FINISHED, IN_PLAY")
	matchesCmd.Flags().StringVar(&matchDate, "date", "", "single day (YYYY-MM-DD); overrides --from and --to")
	matchesCmd.Flags().StringVar(&matchFrom, "from", "", "first day (YYYY-MM-DD)")
	matchesCmd.Flags().StringVar(&matchTo, "to", "", "last day (YYYY-MM-DD)")
	matchesCmd.Flags().IntVar(&matchLimit, "limit", footballdata.DefaultLimit, "maximum number of matches requested")
	matchesCmd.Flags().StringVarP(&matchFilter, "filter", "f", "", "filter expression or preset name")
	matchesCmd.Flags().StringVarP(&matchPreset, "preset", "p", "", "filter preset from config")
}

func runMatches(cmd *cobra.Command, args []string) error {
	if matchLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", matchLimit)
	}

	f, err := resolveFilter(matchFilter, matchPreset)
	if err != nil {
		return err
	}

	renderer, err := newRenderer(cmd)
	if err != nil {
		return err
	}

	opts := footballdata.MatchOptions{
		Season:   matchSeason,
		Status:   strings.ToUpper(matchStatus),
		DateFrom: matchFrom,
		DateTo:   matchTo,
		Limit:    matchLimit,
	}.OnDate(matchDate)

	ctx := cmd.Context()
	var result *footballdata.MatchResult
	if len(matchCompetitions) == 1 {
		result, err = client.GetMatchesByCompetition(ctx, strings.ToUpper(matchCompetitions[0]), opts)
	} else {
		for _, code := range matchCompetitions {
			opts.Competitions = append(opts.Competitions, strings.ToUpper(code))
		}
		result, err = client.GetMatches(ctx, opts)
	}
	if err != nil {
		return fail(cmd, err)
	}

	if f != nil {
		before := len(result.Matches)
		result.Matches = f.Apply(result.Matches)
		result.Count = len(result.Matches)
		logger.Debug().
			Str("filter", f.Expression()).
			Int("before", before).
			Int("after", result.Count).
			Msg("Applied match filter")
	}

	return renderer.RenderMatches(result)
}
