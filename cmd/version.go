package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/matchboard"

var (
	currentVersion = "dev"
	buildTime      = "unknown"
)

// SetVersion records the build information injected by the linker
func SetVersion(version, built string) {
	currentVersion = version
	buildTime = built
	rootCmd.Version = version
}

// skipInit replaces initializeApp for commands that need no config
func skipInit(cmd *cobra.Command, args []string) error {
	logger = setupLogger(loggingFromFlags())
	return nil
}

var checkLatest bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	PersistentPreRunE: skipInit,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "matchboard %s\n", currentVersion)
		fmt.Fprintf(out, "├── Built: %s\n", buildTime)
		fmt.Fprintf(out, "╰── Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

		if !checkLatest {
			return nil
		}

		latest, found, err := detectLatest(cmd.Context())
		if err != nil {
			return err
		}
		if !found {
			fmt.Fprintln(out, "\nNo published releases found")
			return nil
		}

		if newer, err := isNewer(latest, currentVersion); err == nil && newer {
			fmt.Fprintf(out, "\nA newer version is available: %s (run 'matchboard update')\n", latest.Version())
		} else {
			fmt.Fprintln(out, "\nYou are running the latest version")
		}
		return nil
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:               "update",
	Short:             "Update matchboard to the latest release",
	PersistentPreRunE: skipInit,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if _, err := semver.ParseTolerant(currentVersion); err != nil {
			return fmt.Errorf("cannot update a development build (version %q)", currentVersion)
		}

		latest, found, err := detectLatest(ctx)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
		}

		newer, err := isNewer(latest, currentVersion)
		if err != nil {
			return err
		}
		if !newer {
			logger.Info().Str("version", currentVersion).Msg("Already up to date")
			return nil
		}

		exe, err := selfupdate.ExecutablePath()
		if err != nil {
			return fmt.Errorf("could not locate executable path: %w", err)
		}

		logger.Info().
			Str("from", currentVersion).
			Str("to", latest.Version()).
			Msg("Updating")

		if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
			return fmt.Errorf("error occurred while updating binary: %w", err)
		}

		logger.Info().Str("version", latest.Version()).Msg("Successfully updated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)

	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check for a newer release")
}

func detectLatest(ctx context.Context) (*selfupdate.Release, bool, error) {
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return nil, false, fmt.Errorf("error occurred while detecting version: %w", err)
	}
	return latest, found, nil
}

// isNewer reports whether release is newer than the running version
func isNewer(release *selfupdate.Release, running string) (bool, error) {
	current, err := semver.ParseTolerant(running)
	if err != nil {
		return false, fmt.Errorf("invalid running version %q: %w", running, err)
	}
	return !release.LessOrEqual(current.String()), nil
}
