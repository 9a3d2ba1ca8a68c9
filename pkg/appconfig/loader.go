package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the well-known configuration file name.
const ConfigFileName = "app_config.yml"

// Discover resolves the configuration file path. A non-empty projectPath is
// authoritative: the file must be <projectPath>/app_config.yml. With no
// project path the locations the CI scripts are invoked from are probed in
// order: examples/esp32/ under the workspace root, the current directory,
// the parent directory, and examples/esp32/ two levels up.
func Discover(projectPath string) (string, error) {
	if projectPath != "" {
		path := filepath.Join(projectPath, ConfigFileName)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return path, nil
	}

	candidates := []string{
		filepath.Join("examples", "esp32", ConfigFileName),
		ConfigFileName,
		filepath.Join("..", ConfigFileName),
		filepath.Join("..", "..", "examples", "esp32", ConfigFileName),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrNotFound, strings.Join(candidates, ", "))
}

// Parse decodes raw YAML into its document node. Only syntax errors are
// reported here; structural problems are the validator's job.
func Parse(data []byte) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("malformed configuration: %w", err)
	}
	return &root, nil
}

// Decode converts a parsed document node into the typed Document. An empty
// document decodes to an empty Document so the validator can report the
// missing sections itself.
func Decode(root *yaml.Node) (*Document, error) {
	if root == nil || len(root.Content) == 0 {
		return &Document{}, nil
	}
	var doc Document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("malformed configuration: %w", err)
	}
	return &doc, nil
}

// Load reads, parses and decodes the configuration file at path.
func Load(path string) (*Document, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc, err := Decode(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadFile reads the configuration file, mapping a missing file onto
// ErrNotFound so callers can classify the failure.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	return data, nil
}

// documentRoot unwraps the yaml document node down to its top-level mapping.
func documentRoot(root *yaml.Node) *yaml.Node {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		return root.Content[0]
	}
	return root
}
