package commands

import (
	"fmt"
	"strings"

	"github.com/espbuild/appmatrix/pkg/appconfig"
	"github.com/espbuild/appmatrix/pkg/cli"
	"github.com/spf13/cobra"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <app>",
		Short: "Show detailed information for an app",
		Long: `Show the full metadata for the named app: description, source file,
category, dependencies, tags, CI status and any version or build type
overrides it declares.`,
		Example: `  # Human-readable summary
  appinfo info gpio_test

  # Structured output for scripts
  appinfo info gpio_test --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(); err != nil {
				return err
			}
			doc, err := loadDocument()
			if err != nil {
				return err
			}
			app, err := doc.App(args[0])
			if err != nil {
				return err
			}
			if format != cli.FormatText {
				return printStructured(cmd, app)
			}
			printAppText(cmd, args[0], app)
			return nil
		},
	}
}

// printAppText writes the one-field-per-line summary.
func printAppText(cmd *cobra.Command, name string, app *appconfig.App) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "name: %s\n", name)
	if app.Description != "" {
		fmt.Fprintf(out, "description: %s\n", app.Description)
	}
	if app.SourceFile != "" {
		fmt.Fprintf(out, "source_file: %s\n", app.SourceFile)
	}
	if app.Category != "" {
		fmt.Fprintf(out, "category: %s\n", app.Category)
	}
	if len(app.Dependencies) > 0 {
		fmt.Fprintf(out, "dependencies: %s\n", strings.Join(app.Dependencies, " "))
	}
	if len(app.Tags) > 0 {
		fmt.Fprintf(out, "tags: %s\n", strings.Join(app.Tags, " "))
	}
	fmt.Fprintf(out, "ci_enabled: %t\n", app.CIRuns())
	if app.Featured {
		fmt.Fprintln(out, "featured: true")
	}
	if app.IDFVersions != nil {
		fmt.Fprintf(out, "idf_versions: %s\n", strings.Join(app.IDFVersions, " "))
	}
	if app.BuildTypes != nil {
		fmt.Fprintf(out, "build_types: %s\n", formatBuildTypes(app.BuildTypes))
	}
}

// formatBuildTypes renders either shape on one line: flat lists space-joined,
// per-version lists as bracketed groups.
func formatBuildTypes(bt *appconfig.BuildTypes) string {
	if flat, ok := bt.Flat(); ok {
		return strings.Join(flat, " ")
	}
	groups, _ := bt.PerVersion()
	parts := make([]string, len(groups))
	for i, group := range groups {
		parts[i] = "[" + strings.Join(group, " ") + "]"
	}
	return strings.Join(parts, " ")
}
