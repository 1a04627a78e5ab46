package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/matchboard/footballdata"
)

var (
	overviewCompetitions []string
	overviewStatus       string
	overviewDate         string
	overviewLimit        int
	overviewFilter       string
)

// overviewCmd represents the overview command
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show matches for several competitions at once",
	Long: `Fetch matches for each competition and print them grouped by
competition. A failing competition is reported in place and does not stop
the others. Requests still go through the shared queue, one per second.

Without --competition every supported competition is included.`,
	Example: `  matchboard overview --date 2024-03-02
  matchboard overview -c PL,PD,SA --status SCHEDULED --limit 5`,
	RunE: runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)

	overviewCmd.Flags().StringSliceVarP(&overviewCompetitions, "competition", "c", nil, "competition codes (default: all supported)")
	overviewCmd.Flags().StringVar(&overviewStatus, "status", "", "match status, e.g. SCHEDULED")
	overviewCmd.Flags().StringVar(&overviewDate, "date", "", "single day (YYYY-MM-DD)")
	overviewCmd.Flags().IntVar(&overviewLimit, "limit", 10, "maximum matches per competition")
	overviewCmd.Flags().StringVarP(&overviewFilter, "filter", "f", "", "filter expression or preset name")
}

func runOverview(cmd *cobra.Command, args []string) error {
	f, err := resolveFilter(overviewFilter, "")
	if err != nil {
		return err
	}

	renderer, err := newRenderer(cmd)
	if err != nil {
		return err
	}

	codes := footballdata.SupportedCodes()
	if len(overviewCompetitions) > 0 {
		codes = codes[:0]
		for _, code := range overviewCompetitions {
			codes = append(codes, strings.ToUpper(code))
		}
	}

	opts := footballdata.MatchOptions{
		Status: strings.ToUpper(overviewStatus),
		Limit:  overviewLimit,
	}.OnDate(overviewDate)

	logger.Info().Strs("competitions", codes).Msg("Fetching overview")
	results := client.GetMatchesForCompetitions(cmd.Context(), codes, opts)

	if f != nil {
		for i := range results {
			if results[i].Result == nil {
				continue
			}
			results[i].Result.Matches = f.Apply(results[i].Result.Matches)
			results[i].Result.Count = len(results[i].Result.Matches)
		}
	}

	return renderer.RenderOverview(results)
}
