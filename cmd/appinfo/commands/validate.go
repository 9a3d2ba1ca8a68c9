package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrAppMissing reports a validate query for an app that is not declared.
// The command has already printed its answer by the time this is returned,
// so main maps it to a bare non-zero exit without logging.
var ErrAppMissing = errors.New("app not declared")

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <app>",
		Short: "Check whether an app name is declared",
		Long: `Print "true" when the named app exists in the configuration and "false"
otherwise. The exit status mirrors the answer, so scripts can use either.`,
		Example: `  appinfo validate gpio_test && echo exists`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument()
			if err != nil {
				return err
			}
			if !doc.Apps.Has(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), "false")
				return ErrAppMissing
			}
			fmt.Fprintln(cmd.OutOrStdout(), "true")
			return nil
		},
	}
}
