package appconfig

import (
	"errors"
	"reflect"
	"testing"
)

func mustDocument(t *testing.T, src string) *Document {
	t.Helper()
	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc, err := Decode(root)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return doc
}

func TestAppSet_PreservesDeclarationOrder(t *testing.T) {
	doc := mustDocument(t, `
metadata:
  target: esp32c6
apps:
  zeta_test:
    source_file: ZetaTest.cpp
  alpha_test:
    source_file: AlphaTest.cpp
  mid_test:
    source_file: MidTest.cpp
`)

	want := []string{"zeta_test", "alpha_test", "mid_test"}
	if got := doc.Apps.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	app, ok := doc.Apps.Get("alpha_test")
	if !ok {
		t.Fatal("expected to find alpha_test")
	}
	if app.SourceFile != "AlphaTest.cpp" {
		t.Errorf("SourceFile = %q, want AlphaTest.cpp", app.SourceFile)
	}
	if doc.Apps.Len() != 3 {
		t.Errorf("Len() = %d, want 3", doc.Apps.Len())
	}
	if doc.Apps.Has("missing") {
		t.Error("Has(missing) = true, want false")
	}
}

func TestAppSet_DuplicateEntry(t *testing.T) {
	root, err := Parse([]byte(`
apps:
  gpio_test: {source_file: a.cpp}
  gpio_test: {source_file: b.cpp}
`))
	if err != nil {
		// yaml itself may reject duplicate keys; either failure point is fine
		return
	}
	if _, err := Decode(root); err == nil {
		t.Error("expected error for duplicate app entry")
	}
}

func TestBuildTypes_FlatForm(t *testing.T) {
	doc := mustDocument(t, `
metadata: {}
apps:
  adc_test:
    build_types: ["Debug", "Release"]
`)
	app, _ := doc.Apps.Get("adc_test")
	bt := app.BuildTypes
	if bt == nil {
		t.Fatal("BuildTypes not decoded")
	}
	if bt.Nested() {
		t.Error("flat list decoded as nested")
	}
	flat, ok := bt.Flat()
	if !ok || !reflect.DeepEqual(flat, []string{"Debug", "Release"}) {
		t.Errorf("Flat() = %v, %v", flat, ok)
	}

	// The flat form ignores the version index entirely.
	for _, i := range []int{0, 1, 7} {
		if got := bt.ForVersion(i); !reflect.DeepEqual(got, []string{"Debug", "Release"}) {
			t.Errorf("ForVersion(%d) = %v", i, got)
		}
	}
}

func TestBuildTypes_PerVersionForm(t *testing.T) {
	doc := mustDocument(t, `
metadata: {}
apps:
  pwm_test:
    build_types: [["Debug", "Release"], ["Debug"]]
`)
	app, _ := doc.Apps.Get("pwm_test")
	bt := app.BuildTypes
	if !bt.Nested() {
		t.Fatal("nested list decoded as flat")
	}

	tests := []struct {
		index int
		want  []string
	}{
		{0, []string{"Debug", "Release"}},
		{1, []string{"Debug"}},
		{2, DefaultBuildTypes}, // past the declared list
	}
	for _, tt := range tests {
		if got := bt.ForVersion(tt.index); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ForVersion(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestBuildTypes_DeclaredEmpty(t *testing.T) {
	doc := mustDocument(t, `
metadata: {}
apps:
  bare_test:
    build_types: []
`)
	app, _ := doc.Apps.Get("bare_test")
	if app.BuildTypes == nil {
		t.Fatal("declared empty build_types should still be present")
	}
	if got := app.BuildTypes.ForVersion(0); len(got) != 0 {
		t.Errorf("ForVersion(0) = %v, want empty", got)
	}
	if !app.HasOverrides() {
		t.Error("declared build_types should count as an override")
	}
}

func TestApp_CIRuns(t *testing.T) {
	doc := mustDocument(t, `
metadata: {}
apps:
  default_on: {}
  explicit_on: {ci_enabled: true}
  disabled: {ci_enabled: false}
`)
	tests := []struct {
		name string
		want bool
	}{
		{"default_on", true},
		{"explicit_on", true},
		{"disabled", false},
	}
	for _, tt := range tests {
		app, _ := doc.Apps.Get(tt.name)
		if got := app.CIRuns(); got != tt.want {
			t.Errorf("%s: CIRuns() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestApp_HasOverrides(t *testing.T) {
	doc := mustDocument(t, `
metadata: {}
apps:
  plain: {}
  versions_only: {idf_versions: ["release/v5.4"]}
  build_types_only: {build_types: ["Debug"]}
  both:
    idf_versions: ["release/v5.4"]
    build_types: ["Debug"]
`)
	tests := []struct {
		name string
		want bool
	}{
		{"plain", false},
		{"versions_only", true},
		{"build_types_only", true},
		{"both", true},
	}
	for _, tt := range tests {
		app, _ := doc.Apps.Get(tt.name)
		if got := app.HasOverrides(); got != tt.want {
			t.Errorf("%s: HasOverrides() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMetadata_Defaults(t *testing.T) {
	var m Metadata
	if got := m.EffectiveVersions(); !reflect.DeepEqual(got, DefaultIDFVersions) {
		t.Errorf("EffectiveVersions() = %v", got)
	}
	if got := m.EffectiveBuildTypes(); !reflect.DeepEqual(got, [][]string{DefaultBuildTypes}) {
		t.Errorf("EffectiveBuildTypes() = %v", got)
	}
	if got := m.EffectiveTarget(); got != DefaultTarget {
		t.Errorf("EffectiveTarget() = %q", got)
	}
}

func TestMetadata_DeclaredEmptyVersionsStayEmpty(t *testing.T) {
	doc := mustDocument(t, `
metadata:
  idf_versions: []
apps:
  a: {}
`)
	if got := doc.Metadata.EffectiveVersions(); len(got) != 0 {
		t.Errorf("EffectiveVersions() = %v, want empty (declared empty must not default)", got)
	}
}

func TestMetadata_BuildTypeTable(t *testing.T) {
	doc := mustDocument(t, `
metadata:
  idf_versions: ["release/v5.4", "release/v5.5", "master"]
  build_types: [["Debug"], ["Debug", "Release"]]
apps:
  a: {}
`)
	table := doc.Metadata.BuildTypeTable()
	if got := table["release/v5.4"]; !reflect.DeepEqual(got, []string{"Debug"}) {
		t.Errorf("release/v5.4 -> %v", got)
	}
	if got := table["release/v5.5"]; !reflect.DeepEqual(got, []string{"Debug", "Release"}) {
		t.Errorf("release/v5.5 -> %v", got)
	}
	// third version has no aligned build type entry
	if got := table["master"]; !reflect.DeepEqual(got, DefaultBuildTypes) {
		t.Errorf("master -> %v, want default", got)
	}
}

func TestDefaultBuildTypesNotAliased(t *testing.T) {
	var m Metadata
	table := m.BuildTypeTable()
	table[DefaultIDFVersions[0]][0] = "mutated"
	if DefaultBuildTypes[0] != "Debug" {
		t.Fatal("BuildTypeTable handed out the shared default slice")
	}

	doc := mustDocument(t, `
metadata: {}
apps:
  a:
    build_types: [["Debug"]]
`)
	app, _ := doc.Apps.Get("a")
	fallback := app.BuildTypes.ForVersion(4)
	fallback[0] = "mutated"
	if DefaultBuildTypes[0] != "Debug" {
		t.Fatal("ForVersion handed out the shared default slice")
	}
}

func TestDocument_Rules(t *testing.T) {
	doc := mustDocument(t, `
metadata: {}
apps:
  a: {}
ci_config:
  exclude_combinations:
    - app_name: a
      build_type: Debug
`)
	rules := doc.Rules()
	if len(rules) != 1 {
		t.Fatalf("Rules() = %v, want 1 rule", rules)
	}
	if rules[0]["app_name"] != "a" || rules[0]["build_type"] != "Debug" {
		t.Errorf("rule = %v", rules[0])
	}

	noCI := mustDocument(t, "metadata: {}\napps:\n  a: {}\n")
	if got := noCI.Rules(); got != nil {
		t.Errorf("Rules() without ci_config = %v, want nil", got)
	}
}

func TestDocument_App(t *testing.T) {
	doc := mustDocument(t, `
metadata: {}
apps:
  gpio_test: {source_file: GpioTest.cpp}
`)
	if _, err := doc.App("gpio_test"); err != nil {
		t.Errorf("App(gpio_test) error: %v", err)
	}
	_, err := doc.App("nope")
	if !errors.Is(err, ErrUnknownApp) {
		t.Fatalf("App(nope) error = %v, want ErrUnknownApp", err)
	}
}
