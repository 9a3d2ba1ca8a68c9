package matrix

import (
	"testing"

	"github.com/espbuild/appmatrix/pkg/appconfig"
)

func TestMatches(t *testing.T) {
	entry := Entry{
		IDFVersion:       "release/v5.5",
		IDFVersionDocker: "release-v5.5",
		IDFVersionFile:   "release_v5_5",
		BuildType:        "Debug",
		AppName:          "gpio_test",
		Target:           "esp32c6",
		ConfigSource:     SourceGlobal,
	}

	tests := []struct {
		name string
		rule appconfig.ExcludeRule
		want bool
	}{
		{
			name: "all named fields equal",
			rule: appconfig.ExcludeRule{"app_name": "gpio_test", "build_type": "Debug"},
			want: true,
		},
		{
			name: "one field differs",
			rule: appconfig.ExcludeRule{"app_name": "gpio_test", "build_type": "Release"},
			want: false,
		},
		{
			name: "partial rule wildcards the rest",
			rule: appconfig.ExcludeRule{"build_type": "Debug"},
			want: true,
		},
		{
			name: "unknown field never matches",
			rule: appconfig.ExcludeRule{"app_name": "gpio_test", "platform": "linux"},
			want: false,
		},
		{
			name: "sanitized version fields are matchable",
			rule: appconfig.ExcludeRule{"idf_version_file": "release_v5_5"},
			want: true,
		},
		{
			name: "empty rule matches everything",
			rule: appconfig.ExcludeRule{},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(entry, tt.rule); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntry_Field(t *testing.T) {
	entry := Entry{
		IDFVersion:       "release/v5.5",
		IDFVersionDocker: "release-v5.5",
		IDFVersionFile:   "release_v5_5",
		BuildType:        "Release",
		AppName:          "adc_test",
		Target:           "esp32c6",
		ConfigSource:     SourceApp,
	}

	wire := map[string]string{
		"idf_version":        "release/v5.5",
		"idf_version_docker": "release-v5.5",
		"idf_version_file":   "release_v5_5",
		"build_type":         "Release",
		"app_name":           "adc_test",
		"target":             "esp32c6",
		"config_source":      "app",
	}
	for name, want := range wire {
		got, ok := entry.Field(name)
		if !ok || got != want {
			t.Errorf("Field(%q) = %q, %v; want %q", name, got, ok, want)
		}
	}
	if _, ok := entry.Field("nonexistent"); ok {
		t.Error("Field(nonexistent) reported ok")
	}
}
