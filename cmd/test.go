package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/s0up4200/matchboard/footballdata"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to football-data.org",
	Long:  `Sends one lightweight request to verify that the API is reachable and the token is accepted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := newRenderer(cmd)
		if err != nil {
			return err
		}

		logger.Info().
			Str("mode", string(client.Mode())).
			Str("url", client.BaseURL()).
			Bool("token", client.HasToken()).
			Msg("Testing connection")

		result := client.TestConnection(cmd.Context())
		if err := renderer.RenderConnection(result); err != nil {
			return err
		}

		return connectionFailure(result)
	},
}

// connectionFailure returns the already rendered failure of result, or nil
func connectionFailure(result footballdata.ConnectionResult) error {
	if result.Success {
		return nil
	}
	msg := result.Error
	if msg == "" {
		msg = "connection test failed"
	}
	return &renderedError{err: errors.New(msg)}
}

func init() {
	rootCmd.AddCommand(testCmd)
}
