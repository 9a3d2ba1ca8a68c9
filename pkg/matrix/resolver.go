package matrix

import (
	"strings"

	"github.com/espbuild/appmatrix/pkg/appconfig"
)

// Config source provenance values. Entries built purely from the metadata
// defaults carry SourceGlobal; entries for apps that declared their own
// idf_versions or build_types carry SourceApp.
const (
	SourceApp    = "app"
	SourceGlobal = "global"
)

// Entry is one concrete (version, build type, app) combination to be built
// in CI. Entries are values and are never mutated after Resolve returns.
type Entry struct {
	// IDFVersion is the git form used to clone ESP-IDF, e.g. "release/v5.5".
	IDFVersion string `json:"idf_version" yaml:"idf_version"`

	// IDFVersionDocker is the artifact-safe form (slashes become dashes).
	IDFVersionDocker string `json:"idf_version_docker" yaml:"idf_version_docker"`

	// IDFVersionFile is the build-directory-safe form (slashes and dots
	// become underscores).
	IDFVersionFile string `json:"idf_version_file" yaml:"idf_version_file"`

	BuildType    string `json:"build_type" yaml:"build_type"`
	AppName      string `json:"app_name" yaml:"app_name"`
	Target       string `json:"target" yaml:"target"`
	ConfigSource string `json:"config_source" yaml:"config_source"`
}

// Field returns the entry field with the given wire name. Unknown names
// report false, so exclusion rules naming them never match anything.
func (e Entry) Field(name string) (string, bool) {
	switch name {
	case "idf_version":
		return e.IDFVersion, true
	case "idf_version_docker":
		return e.IDFVersionDocker, true
	case "idf_version_file":
		return e.IDFVersionFile, true
	case "build_type":
		return e.BuildType, true
	case "app_name":
		return e.AppName, true
	case "target":
		return e.Target, true
	case "config_source":
		return e.ConfigSource, true
	}
	return "", false
}

// Matrix is the resolved build matrix. Include is never nil, so an empty
// matrix still serializes as {"include": []}.
type Matrix struct {
	Include []Entry `json:"include" yaml:"include"`
}

// DockerVersion returns the artifact-safe form of an IDF version.
func DockerVersion(version string) string {
	return strings.ReplaceAll(version, "/", "-")
}

var fileVersionReplacer = strings.NewReplacer("/", "_", ".", "_")

// FileVersion returns the build-directory-safe form of an IDF version.
func FileVersion(version string) string {
	return fileVersionReplacer.Replace(version)
}

// Resolve flattens the configuration into the CI build matrix.
//
// For each CI-enabled app, in declaration order, the effective version list
// is the app's own idf_versions when declared, else the global list. The
// build types for the version at index i are, in precedence order: the
// app's build_types (flat form for every version, per-version form indexed
// by i with a Debug/Release fallback past the end), then the global
// per-version table, then Debug/Release for versions the table does not
// know. Candidates matching an exclusion rule are dropped.
func Resolve(doc *appconfig.Document) *Matrix {
	versions := doc.Metadata.EffectiveVersions()
	table := doc.Metadata.BuildTypeTable()
	target := doc.Metadata.EffectiveTarget()
	rules := doc.Rules()

	m := &Matrix{Include: []Entry{}}
	for _, name := range doc.Apps.Names() {
		app, _ := doc.Apps.Get(name)
		if !app.CIRuns() {
			continue
		}

		appVersions := versions
		if app.IDFVersions != nil {
			appVersions = app.IDFVersions
		}

		source := SourceGlobal
		if app.HasOverrides() {
			source = SourceApp
		}

		for i, version := range appVersions {
			var buildTypes []string
			if app.BuildTypes != nil {
				buildTypes = app.BuildTypes.ForVersion(i)
			} else if bt, ok := table[version]; ok {
				buildTypes = bt
			} else {
				buildTypes = appconfig.DefaultBuildTypes
			}

			for _, buildType := range buildTypes {
				entry := Entry{
					IDFVersion:       version,
					IDFVersionDocker: DockerVersion(version),
					IDFVersionFile:   FileVersion(version),
					BuildType:        buildType,
					AppName:          name,
					Target:           target,
					ConfigSource:     source,
				}
				if excluded(entry, rules) {
					continue
				}
				m.Include = append(m.Include, entry)
			}
		}
	}
	return m
}

// FilterApp narrows the matrix to entries whose app name matches exactly.
// A name with no entries yields an empty include list, not an error.
func (m *Matrix) FilterApp(name string) *Matrix {
	filtered := &Matrix{Include: []Entry{}}
	for _, entry := range m.Include {
		if entry.AppName == name {
			filtered.Include = append(filtered.Include, entry)
		}
	}
	return filtered
}
