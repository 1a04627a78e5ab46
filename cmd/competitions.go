package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/matchboard/footballdata"
)

var supportedOnly bool

// competitionsCmd represents the competitions command
var competitionsCmd = &cobra.Command{
	Use:   "competitions",
	Short: "List competitions available to the API token",
	Long: `List the competitions the provider exposes for the configured token.
Competitions supported by matchboard are marked with *.

With --supported the built-in catalog is printed instead; no request is
made.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := newRenderer(cmd)
		if err != nil {
			return err
		}

		if supportedOnly {
			return renderer.RenderCatalog(footballdata.SupportedCompetitions())
		}

		competitions, err := client.GetCompetitions(cmd.Context())
		if err != nil {
			return fail(cmd, err)
		}
		return renderer.RenderCompetitions(competitions)
	},
}

// competitionCmd represents the competition command
var competitionCmd = &cobra.Command{
	Use:     "competition CODE",
	Short:   "Show details of one competition",
	Example: "  matchboard competition PL --details",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := newRenderer(cmd)
		if err != nil {
			return err
		}

		info, err := client.GetCompetitionInfo(cmd.Context(), strings.ToUpper(args[0]))
		if err != nil {
			return fail(cmd, err)
		}
		return renderer.RenderCompetitionInfo(info)
	},
}

func init() {
	rootCmd.AddCommand(competitionsCmd)
	rootCmd.AddCommand(competitionCmd)

	competitionsCmd.Flags().BoolVar(&supportedOnly, "supported", false, "print the built-in competition catalog")
}
