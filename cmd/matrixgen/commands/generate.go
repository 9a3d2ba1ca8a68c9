package commands

import (
	"fmt"

	"github.com/espbuild/appmatrix/pkg/appconfig"
	"github.com/espbuild/appmatrix/pkg/cli"
	"github.com/espbuild/appmatrix/pkg/matrix"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newGenerateCommand() *cobra.Command {
	var (
		output   string
		format   string
		filter   string
		validate bool
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the CI build matrix",
		Long: `Generate the CI build matrix from the app configuration.

The output is an object with a single "include" key holding the ordered
matrix entries, directly usable as a GitHub Actions matrix strategy. Each
entry carries idf_version, idf_version_docker, idf_version_file, build_type,
app_name, target and config_source.`,
		Example: `  # Print the matrix as compact JSON
  matrixgen generate

  # Write an indented matrix file for a workflow
  matrixgen generate --output matrix.json

  # YAML for other CI systems
  matrixgen generate --format yaml

  # Only the entries for one app
  matrixgen generate --filter gpio_test

  # Check the configuration before generating
  matrixgen generate --validate

  # Keep the matrix file current while editing the configuration
  matrixgen generate --watch --output matrix.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != cli.FormatJSON && format != cli.FormatYAML {
				return fmt.Errorf("unsupported format %q (want json or yaml)", format)
			}
			if watch && output == "" {
				return fmt.Errorf("--watch requires --output")
			}

			path, err := cli.ResolveConfigPath(configPath, projectPath)
			if err != nil {
				return err
			}

			generate := func() error {
				return generateOnce(path, output, format, filter, validate)
			}
			if err := generate(); err != nil {
				return err
			}
			if watch {
				return watchConfig(cmd.Context(), path, generate)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", cli.FormatJSON, "output format: json or yaml")
	cmd.Flags().StringVar(&filter, "filter", "", "restrict output to a single app")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate configuration before generating")
	cmd.Flags().BoolVar(&watch, "watch", false, "regenerate on configuration changes (requires --output)")

	return cmd
}

// generateOnce runs one full load-validate-resolve-render pass.
func generateOnce(path, output, format, filter string, validate bool) error {
	data, err := appconfig.ReadFile(path)
	if err != nil {
		return err
	}
	root, err := appconfig.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if validate {
		result := appconfig.Validate(root)
		for _, warning := range result.Warnings {
			log.Warn().Msg(warning)
		}
		if !result.OK() {
			for _, e := range result.Errors {
				log.Error().Msg(e)
			}
			return fmt.Errorf("configuration validation failed with %d errors", len(result.Errors))
		}
	}

	doc, err := appconfig.Decode(root)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	m := matrix.Resolve(doc)
	if filter != "" {
		m = m.FilterApp(filter)
		log.Debug().Str("filter", filter).Int("entries", len(m.Include)).Msg("Matrix filtered")
	}

	log.Debug().
		Str("config", path).
		Int("apps", doc.Apps.Len()).
		Int("entries", len(m.Include)).
		Msg("Matrix resolved")

	rendered, err := cli.Render(m, format, output != "")
	if err != nil {
		return err
	}
	return cli.WriteOutput(output, rendered)
}
