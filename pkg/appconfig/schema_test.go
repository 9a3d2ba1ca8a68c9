package appconfig

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func validateWithSchema(t *testing.T, src string) error {
	t.Helper()
	schema, err := NewSchema()
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	var generic map[string]interface{}
	if err := yaml.Unmarshal([]byte(src), &generic); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return schema.Validate(generic)
}

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{
			name: "full document",
			src: `
metadata:
  idf_versions: ["release/v5.5"]
  build_types: [["Debug", "Release"]]
  target: esp32c6
apps:
  gpio_test:
    description: GPIO test
    source_file: GpioTest.cpp
    category: peripheral
    ci_enabled: true
    idf_versions: ["release/v5.4"]
    build_types: ["Debug"]
    dependencies: [driver_gpio]
    tags: [gpio, smoke]
ci_config:
  exclude_combinations:
    - app_name: gpio_test
      build_type: Release
`,
			wantErr: false,
		},
		{
			name: "nested app build_types accepted by disjunction",
			src: `
metadata: {}
apps:
  a:
    build_types: [["Debug"], ["Debug", "Release"]]
`,
			wantErr: false,
		},
		{
			name: "build_types as mapping rejected",
			src: `
metadata: {}
apps:
  a:
    build_types: {debug: true}
`,
			wantErr: true,
		},
		{
			name: "unknown app field rejected",
			src: `
metadata: {}
apps:
  a:
    sourcefile: typo.cpp
`,
			wantErr: true,
		},
		{
			name: "metadata build_types must be per-version lists",
			src: `
metadata:
  build_types: ["Debug", "Release"]
apps:
  a: {}
`,
			wantErr: true,
		},
		{
			name: "ci_enabled must be a bool",
			src: `
metadata: {}
apps:
  a:
    ci_enabled: "yes"
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWithSchema(t, tt.src)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
