package commands

import (
	"context"
	"fmt"

	"github.com/espbuild/appmatrix/pkg/appconfig"
	"github.com/espbuild/appmatrix/pkg/cli"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	projectPath string
	verbose     bool
)

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "matrixgen",
		Short: "Generate CI build matrices from centralized app configuration",
		Long: `matrixgen reads the hierarchical app_config.yml describing a project's
firmware apps and derives the CI build matrix: the cartesian combination of
app, ESP-IDF version and build type, with per-app overrides and exclusions
applied.

Configuration sources:
  - Global defaults from the metadata section
  - Per-app overrides for ESP-IDF versions and build types
  - App-level CI enable/disable flags
  - CI-specific exclusion rules`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.SetupLogging(verbose)
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (overrides discovery)")
	rootCmd.PersistentFlags().StringVarP(&projectPath, "project-path", "p", "", "project directory containing "+appconfig.ConfigFileName)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newValidateCommand())

	return rootCmd
}
