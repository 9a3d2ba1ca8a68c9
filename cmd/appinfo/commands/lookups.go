package commands

import (
	"fmt"
	"strings"

	"github.com/espbuild/appmatrix/pkg/appconfig"
	"github.com/espbuild/appmatrix/pkg/cli"
	"github.com/spf13/cobra"
)

func newBuildTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "build-types <app>",
		Aliases: []string{"build_types"},
		Short:   "Show the build types an app builds with",
		Long: `Show the effective build types for the named app: its own build_types
override when declared, otherwise the global metadata table.`,
		Example: `  appinfo build-types gpio_test`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppLookup(cmd, args[0], func(doc *appconfig.Document, app *appconfig.App) (interface{}, string) {
				if app.BuildTypes != nil {
					return app.BuildTypes, formatBuildTypes(app.BuildTypes)
				}
				groups := doc.Metadata.EffectiveBuildTypes()
				parts := make([]string, len(groups))
				for i, group := range groups {
					parts[i] = "[" + strings.Join(group, " ") + "]"
				}
				return groups, strings.Join(parts, " ")
			})
		},
	}
}

func newIDFVersionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "idf-versions <app>",
		Aliases: []string{"idf_versions"},
		Short:   "Show the ESP-IDF versions an app builds against",
		Long: `Show the effective ESP-IDF versions for the named app: its own
idf_versions override when declared, otherwise the global list.`,
		Example: `  appinfo idf-versions gpio_test`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppLookup(cmd, args[0], func(doc *appconfig.Document, app *appconfig.App) (interface{}, string) {
				versions := doc.Metadata.EffectiveVersions()
				if app.IDFVersions != nil {
					versions = app.IDFVersions
				}
				return versions, strings.Join(versions, " ")
			})
		},
	}
}

func newDependenciesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dependencies <app>",
		Short: "Show an app's declared dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppLookup(cmd, args[0], func(doc *appconfig.Document, app *appconfig.App) (interface{}, string) {
				return app.Dependencies, strings.Join(app.Dependencies, " ")
			})
		},
	}
}

func newTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <app>",
		Short: "Show an app's tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppLookup(cmd, args[0], func(doc *appconfig.Document, app *appconfig.App) (interface{}, string) {
				return app.Tags, strings.Join(app.Tags, " ")
			})
		},
	}
}

func newCategoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "category <app>",
		Short: "Show an app's category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppLookup(cmd, args[0], func(doc *appconfig.Document, app *appconfig.App) (interface{}, string) {
				return app.Category, app.Category
			})
		},
	}
}

// runAppLookup is the shared body of the single-field lookup commands: load,
// resolve the app, then print either the text form or the structured value.
func runAppLookup(cmd *cobra.Command, name string, pick func(*appconfig.Document, *appconfig.App) (interface{}, string)) error {
	if err := checkFormat(); err != nil {
		return err
	}
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	app, err := doc.App(name)
	if err != nil {
		return err
	}
	structured, text := pick(doc, app)
	if format == cli.FormatText {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}
	return printStructured(cmd, structured)
}
