package commands

import (
	"fmt"

	"github.com/espbuild/appmatrix/pkg/appconfig"
	"github.com/espbuild/appmatrix/pkg/cli"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newValidateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the app configuration",
		Long: `Validate the app configuration file.

The structural pass checks:
  - required metadata and apps sections
  - per-app build_types shape (flat list or per-version lists)
  - per-app idf_versions string lists
  - the ci_config.exclude_combinations list

Warnings (missing optional fields) are reported but never fail the run.
--strict additionally enforces the typed field constraints and the CUE
document schema.`,
		Example: `  # Validate the discovered configuration
  matrixgen validate

  # Validate a specific project
  matrixgen validate --project-path ./examples/esp32

  # Full strict validation
  matrixgen validate --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cli.ResolveConfigPath(configPath, projectPath)
			if err != nil {
				return err
			}
			data, err := appconfig.ReadFile(path)
			if err != nil {
				return err
			}
			root, err := appconfig.Parse(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			out := cmd.OutOrStdout()
			result := appconfig.Validate(root)
			for _, warning := range result.Warnings {
				fmt.Fprintf(out, "warning: %s\n", warning)
			}
			if !result.OK() {
				fmt.Fprintln(out, "Configuration validation failed:")
				for _, e := range result.Errors {
					fmt.Fprintf(out, "  %s\n", e)
				}
				return fmt.Errorf("%d validation errors", len(result.Errors))
			}

			if strict {
				if err := validateStrict(root); err != nil {
					return err
				}
			}

			fmt.Fprintln(out, "Configuration validation passed")
			if len(result.Warnings) > 0 {
				fmt.Fprintf(out, "  %d warnings found\n", len(result.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "enable strict validation mode")

	return cmd
}

// validateStrict layers the typed constraint pass and the CUE schema pass on
// top of the structural one.
func validateStrict(root *yaml.Node) error {
	var generic map[string]interface{}
	if err := root.Decode(&generic); err != nil {
		return fmt.Errorf("decoding configuration: %w", err)
	}

	schema, err := appconfig.NewSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(generic); err != nil {
		return err
	}

	doc, err := appconfig.Decode(root)
	if err != nil {
		return err
	}
	return appconfig.Strict(doc)
}
