package cli

import "github.com/espbuild/appmatrix/pkg/appconfig"

// ResolveConfigPath picks the configuration file from the shared flags: an
// explicit --config path wins outright, otherwise discovery runs from
// --project-path (or the well-known locations when that is empty too).
func ResolveConfigPath(configPath, projectPath string) (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return appconfig.Discover(projectPath)
}
