package commands

import (
	"fmt"
	"strings"

	"github.com/espbuild/appmatrix/pkg/cli"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all declared apps",
		Long: `List the names of all apps in the configuration, in declaration order.

Text output is a single space-joined line, ready for shell iteration.`,
		Example: `  # All app names on one line
  appinfo list

  # As a JSON array
  appinfo list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(); err != nil {
				return err
			}
			doc, err := loadDocument()
			if err != nil {
				return err
			}
			names := doc.Apps.Names()
			if format == cli.FormatText {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
				return nil
			}
			return printStructured(cmd, names)
		},
	}
}
