package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the metadata section omits a field. These mirror the
// stock project layout: a single ESP-IDF release built in Debug and Release
// for the esp32c6 target.
var (
	DefaultIDFVersions = []string{"release/v5.5"}
	DefaultBuildTypes  = []string{"Debug", "Release"}
)

// DefaultTarget is the chip target assumed when metadata omits one.
const DefaultTarget = "esp32c6"

var (
	// ErrNotFound indicates the configuration file (or a required section
	// of it) is absent.
	ErrNotFound = errors.New("configuration not found")

	// ErrUnknownApp indicates a lookup for an app name that is not present
	// in the apps section.
	ErrUnknownApp = errors.New("unknown app")
)

// Document is a parsed app_config.yml. It is read once at process start and
// treated as immutable for the rest of the run.
type Document struct {
	Metadata Metadata  `yaml:"metadata" json:"metadata"`
	Apps     AppSet    `yaml:"apps" json:"apps"`
	CI       *CIConfig `yaml:"ci_config,omitempty" json:"ci_config,omitempty"`
}

// App returns the named app entry or ErrUnknownApp.
func (d *Document) App(name string) (*App, error) {
	if app, ok := d.Apps.Get(name); ok {
		return app, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownApp, name)
}

// Rules returns the CI exclusion rules, treating a missing or empty
// ci_config section as no exclusions.
func (d *Document) Rules() []ExcludeRule {
	if d.CI == nil {
		return nil
	}
	return d.CI.ExcludeCombinations
}

// Metadata holds the global build defaults.
type Metadata struct {
	// IDFVersions is the ordered list of ESP-IDF releases to build against.
	IDFVersions []string `yaml:"idf_versions,omitempty" json:"idf_versions,omitempty" validate:"omitempty,dive,required"`

	// BuildTypes aligns positionally with IDFVersions: entry i is the set
	// of build types for version i. Versions past the end of this list
	// build with DefaultBuildTypes.
	BuildTypes [][]string `yaml:"build_types,omitempty" json:"build_types,omitempty" validate:"omitempty,dive,dive,required"`

	// Target is the chip target passed through to every matrix entry.
	Target string `yaml:"target,omitempty" json:"target,omitempty" validate:"omitempty,printascii,nospace"`
}

// EffectiveVersions returns the global version list, or the default when the
// section omits idf_versions entirely. A declared empty list stays empty.
func (m Metadata) EffectiveVersions() []string {
	if m.IDFVersions == nil {
		return cloneStrings(DefaultIDFVersions)
	}
	return m.IDFVersions
}

// EffectiveBuildTypes returns the per-version build type lists, or the
// default table when the section omits build_types.
func (m Metadata) EffectiveBuildTypes() [][]string {
	if m.BuildTypes == nil {
		return [][]string{cloneStrings(DefaultBuildTypes)}
	}
	return m.BuildTypes
}

// EffectiveTarget returns the chip target, defaulting when unset.
func (m Metadata) EffectiveTarget() string {
	if m.Target == "" {
		return DefaultTarget
	}
	return m.Target
}

// BuildTypeTable maps each global version to its build type set. Versions
// whose position falls past the end of build_types get DefaultBuildTypes.
func (m Metadata) BuildTypeTable() map[string][]string {
	buildTypes := m.EffectiveBuildTypes()
	versions := m.EffectiveVersions()
	table := make(map[string][]string, len(versions))
	for i, version := range versions {
		if i < len(buildTypes) {
			table[version] = buildTypes[i]
		} else {
			table[version] = cloneStrings(DefaultBuildTypes)
		}
	}
	return table
}

// AppSet is the apps section. Unlike a plain map it remembers declaration
// order, which drives listing output and matrix generation order.
type AppSet struct {
	names   []string
	entries map[string]*App
}

// UnmarshalYAML decodes the apps mapping node pair by pair so the original
// key order survives.
func (s *AppSet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("apps: expected a mapping, got %s", nodeKindName(value))
	}
	s.names = nil
	s.entries = make(map[string]*App, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if _, dup := s.entries[key.Value]; dup {
			return fmt.Errorf("apps: duplicate entry %q", key.Value)
		}
		var app App
		if err := val.Decode(&app); err != nil {
			return fmt.Errorf("app %q: %w", key.Value, err)
		}
		s.names = append(s.names, key.Value)
		s.entries[key.Value] = &app
	}
	return nil
}

// Names returns the app names in declaration order. The caller must not
// modify the returned slice.
func (s *AppSet) Names() []string { return s.names }

// Get returns the named app entry.
func (s *AppSet) Get(name string) (*App, bool) {
	app, ok := s.entries[name]
	return app, ok
}

// Has reports whether an app with the given name is declared.
func (s *AppSet) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Len returns the number of declared apps.
func (s *AppSet) Len() int { return len(s.names) }

// App is one named app entry. The build fields (CIEnabled, IDFVersions,
// BuildTypes) drive matrix generation; the rest is descriptive metadata
// served by the lookup commands.
type App struct {
	Description  string      `yaml:"description,omitempty" json:"description,omitempty"`
	SourceFile   string      `yaml:"source_file,omitempty" json:"source_file,omitempty" validate:"omitempty,printascii"`
	Category     string      `yaml:"category,omitempty" json:"category,omitempty"`
	Dependencies []string    `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Tags         []string    `yaml:"tags,omitempty" json:"tags,omitempty"`
	CIEnabled    *bool       `yaml:"ci_enabled,omitempty" json:"ci_enabled,omitempty"`
	Featured     bool        `yaml:"featured,omitempty" json:"featured,omitempty"`
	IDFVersions  []string    `yaml:"idf_versions,omitempty" json:"idf_versions,omitempty" validate:"omitempty,dive,required"`
	BuildTypes   *BuildTypes `yaml:"build_types,omitempty" json:"build_types,omitempty"`
}

// CIRuns reports whether the app participates in CI builds. Apps that do not
// set ci_enabled participate by default.
func (a *App) CIRuns() bool {
	return a.CIEnabled == nil || *a.CIEnabled
}

// HasOverrides reports whether the app declares its own idf_versions or
// build_types. Entries generated for such apps carry the "app" provenance
// tag instead of "global".
func (a *App) HasOverrides() bool {
	return a.IDFVersions != nil || a.BuildTypes != nil
}

// BuildTypes is an app-level build_types declaration. The YAML accepts two
// shapes and the variant is decided once at decode time:
//
//	build_types: ["Debug"]                        # flat: same set for every version
//	build_types: [["Debug", "Release"], ["Debug"]] # per version, positional
//
// The flat form deliberately applies the full list to every version in the
// app's effective version list, with no positional slicing.
type BuildTypes struct {
	flat       []string
	perVersion [][]string
	nested     bool
}

// UnmarshalYAML inspects the first element to pick the variant.
func (b *BuildTypes) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("build_types: expected a sequence, got %s", nodeKindName(value))
	}
	if len(value.Content) > 0 && value.Content[0].Kind == yaml.SequenceNode {
		b.nested = true
		return value.Decode(&b.perVersion)
	}
	return value.Decode(&b.flat)
}

// MarshalYAML renders the declared shape back out.
func (b *BuildTypes) MarshalYAML() (interface{}, error) {
	if b.nested {
		return b.perVersion, nil
	}
	return b.flat, nil
}

// MarshalJSON renders the declared shape back out.
func (b *BuildTypes) MarshalJSON() ([]byte, error) {
	if b.nested {
		return json.Marshal(b.perVersion)
	}
	return json.Marshal(b.flat)
}

// Nested reports whether the per-version form was declared.
func (b *BuildTypes) Nested() bool { return b.nested }

// Flat returns the flat list when that form was declared.
func (b *BuildTypes) Flat() ([]string, bool) {
	if b.nested {
		return nil, false
	}
	return b.flat, true
}

// PerVersion returns the per-version lists when that form was declared.
func (b *BuildTypes) PerVersion() ([][]string, bool) {
	if !b.nested {
		return nil, false
	}
	return b.perVersion, true
}

// ForVersion returns the build types for the version at index i. The flat
// form ignores the index; the per-version form falls back to a copy of
// DefaultBuildTypes past the end of the declared list.
func (b *BuildTypes) ForVersion(i int) []string {
	if !b.nested {
		return b.flat
	}
	if i < len(b.perVersion) {
		return b.perVersion[i]
	}
	return cloneStrings(DefaultBuildTypes)
}

// CIConfig is the optional ci_config section.
type CIConfig struct {
	ExcludeCombinations []ExcludeRule `yaml:"exclude_combinations,omitempty" json:"exclude_combinations,omitempty"`
}

// ExcludeRule is a partial-field filter over matrix entries, keyed by the
// entry's wire field names (app_name, build_type, idf_version, ...). A rule
// matches a candidate when every named field equals the candidate's value;
// omitted fields act as wildcards and unknown field names never match.
type ExcludeRule map[string]string

// cloneStrings copies a slice so callers never alias the package defaults.
func cloneStrings(s []string) []string {
	return append([]string(nil), s...)
}

// nodeKindName names a YAML node kind for error messages.
func nodeKindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
