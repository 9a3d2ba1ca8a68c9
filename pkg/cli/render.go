package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Format names accepted by the --format flags.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Render serializes v in the requested structured format. JSON is indented
// when indent is set (file output) and compact otherwise (stdout, where CI
// consumers read a single line).
func Render(v interface{}, format string, indent bool) ([]byte, error) {
	switch format {
	case FormatJSON:
		if indent {
			return json.MarshalIndent(v, "", "  ")
		}
		return json.Marshal(v)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// WriteOutput writes rendered bytes to path, or to stdout when path is
// empty, always ending with exactly one newline.
func WriteOutput(path string, data []byte) error {
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
