package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSourceFileCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "source-file <app>",
		Aliases: []string{"source_file"},
		Short:   "Print the main source file for an app",
		Long: `Print the source_file path declared for the named app.

Intended for build-system integration (CMake picks the main source for the
selected app type). An unknown app name is a fatal error.`,
		Example: `  appinfo source-file gpio_test`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument()
			if err != nil {
				return err
			}
			app, err := doc.App(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.SourceFile)
			return nil
		},
	}
}
