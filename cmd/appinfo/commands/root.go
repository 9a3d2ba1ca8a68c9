package commands

import (
	"context"
	"fmt"

	"github.com/espbuild/appmatrix/pkg/appconfig"
	"github.com/espbuild/appmatrix/pkg/cli"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	projectPath string
	format      string
	verbose     bool
)

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "appinfo",
		Short: "Look up firmware app metadata from the app configuration",
		Long: `appinfo answers point queries about the apps declared in app_config.yml:
source files for build-system integration, app discovery for scripting, and
per-app metadata (category, tags, dependencies, supported versions).

The default text output is one value per invocation so results can be used
directly in shell scripts; --format json or yaml gives structured output.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.SetupLogging(verbose)
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (overrides discovery)")
	rootCmd.PersistentFlags().StringVarP(&projectPath, "project-path", "p", "", "project directory containing "+appconfig.ConfigFileName)
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", cli.FormatText, "output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newSourceFileCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newBuildTypesCommand())
	rootCmd.AddCommand(newIDFVersionsCommand())
	rootCmd.AddCommand(newDependenciesCommand())
	rootCmd.AddCommand(newTagsCommand())
	rootCmd.AddCommand(newCategoryCommand())

	return rootCmd
}

// loadDocument resolves and loads the configuration for a lookup command.
func loadDocument() (*appconfig.Document, error) {
	path, err := cli.ResolveConfigPath(configPath, projectPath)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("config", path).Msg("Loading app configuration")
	return appconfig.Load(path)
}

// printStructured renders v in the selected structured format and writes it
// to the command's stdout with a trailing newline.
func printStructured(cmd *cobra.Command, v interface{}) error {
	rendered, err := cli.Render(v, format, false)
	if err != nil {
		return err
	}
	if len(rendered) == 0 || rendered[len(rendered)-1] != '\n' {
		rendered = append(rendered, '\n')
	}
	fmt.Fprint(cmd.OutOrStdout(), string(rendered))
	return nil
}

// checkFormat rejects format names no command understands.
func checkFormat() error {
	switch format {
	case cli.FormatText, cli.FormatJSON, cli.FormatYAML:
		return nil
	}
	return fmt.Errorf("unsupported format %q (want text, json or yaml)", format)
}
