package appconfig

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Result carries the findings of a validation pass. Warnings alone never
// fail the pass.
type Result struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the pass found no errors.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Validate structurally checks a parsed configuration document. It works on
// the raw node rather than the typed Document so that every shape problem is
// collected and reported in one pass instead of aborting at the first decode
// failure. The document is never mutated.
func Validate(root *yaml.Node) Result {
	var res Result

	doc := documentRoot(root)
	if doc == nil || doc.Kind != yaml.MappingNode {
		res.Errors = append(res.Errors, "configuration is not a mapping")
		return res
	}

	meta := mapValue(doc, "metadata")
	apps := mapValue(doc, "apps")
	if meta == nil {
		res.Errors = append(res.Errors, "missing required 'metadata' section")
	}
	if apps == nil {
		res.Errors = append(res.Errors, "missing required 'apps' section")
	}
	if len(res.Errors) > 0 {
		return res
	}

	for _, field := range []string{"idf_versions", "build_types", "target"} {
		if mapValue(meta, field) == nil {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("no '%s' specified in metadata, using default", field))
		}
	}

	if apps.Kind != yaml.MappingNode || len(apps.Content) == 0 {
		res.Errors = append(res.Errors, "no apps defined in configuration")
	} else {
		for i := 0; i+1 < len(apps.Content); i += 2 {
			validateApp(apps.Content[i].Value, apps.Content[i+1], &res)
		}
	}

	if ci := mapValue(doc, "ci_config"); ci != nil && ci.Kind == yaml.MappingNode {
		if exc := mapValue(ci, "exclude_combinations"); exc != nil && !isNull(exc) && exc.Kind != yaml.SequenceNode {
			res.Errors = append(res.Errors, "ci_config.exclude_combinations is not a list")
		}
	}

	return res
}

// validateApp checks one app entry, mirroring the shape rules the matrix
// resolver relies on.
func validateApp(name string, app *yaml.Node, res *Result) {
	if app.Kind != yaml.MappingNode {
		res.Errors = append(res.Errors, fmt.Sprintf("App '%s' is not a mapping", name))
		return
	}

	if mapValue(app, "description") == nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("App '%s' missing description", name))
	}
	if mapValue(app, "source_file") == nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("App '%s' missing source_file", name))
	}

	if bt := mapValue(app, "build_types"); bt != nil {
		validateBuildTypes(name, bt, res)
	}

	if versions := mapValue(app, "idf_versions"); versions != nil {
		if versions.Kind != yaml.SequenceNode {
			res.Errors = append(res.Errors, fmt.Sprintf("App '%s' idf_versions is not a list", name))
		} else if !allStrings(versions.Content) {
			res.Errors = append(res.Errors, fmt.Sprintf("App '%s' idf_versions contains non-string values", name))
		}
	}
}

// validateBuildTypes checks both accepted shapes. The variant is decided by
// the first element, the same way the decoder decides it: a leading sequence
// means per-version lists, anything else means a flat string list.
func validateBuildTypes(name string, bt *yaml.Node, res *Result) {
	if bt.Kind != yaml.SequenceNode {
		res.Errors = append(res.Errors, fmt.Sprintf("App '%s' build_types is not a list", name))
		return
	}
	if len(bt.Content) > 0 && bt.Content[0].Kind == yaml.SequenceNode {
		for i, group := range bt.Content {
			if group.Kind != yaml.SequenceNode {
				res.Errors = append(res.Errors, fmt.Sprintf("App '%s' build_types[%d] is not a list", name, i))
			} else if !allStrings(group.Content) {
				res.Errors = append(res.Errors, fmt.Sprintf("App '%s' build_types[%d] contains non-string values", name, i))
			}
		}
		return
	}
	if !allStrings(bt.Content) {
		res.Errors = append(res.Errors, fmt.Sprintf("App '%s' build_types contains non-string values", name))
	}
}

var strictValidator = newStrictValidator()

// newStrictValidator builds the validator with the custom rules the struct
// tags reference. Chip targets travel as single shell tokens, so "nospace"
// rejects any whitespace in the value.
func newStrictValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), " \t\r\n")
	})
	return v
}

// Strict runs the struct-tag constraint pass over the typed document. This
// is the validate --strict complement to the structural pass: it assumes the
// document already decoded cleanly.
func Strict(doc *Document) error {
	if err := strictValidator.Struct(doc.Metadata); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	for _, name := range doc.Apps.Names() {
		app, _ := doc.Apps.Get(name)
		if err := strictValidator.Struct(app); err != nil {
			return fmt.Errorf("app %s: %w", name, err)
		}
	}
	return nil
}

// mapValue returns the value node for a key in a mapping node, or nil when
// the key is absent or the node is not a mapping.
func mapValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// allStrings reports whether every node is a string scalar.
func allStrings(nodes []*yaml.Node) bool {
	for _, n := range nodes {
		if n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
			return false
		}
	}
	return true
}

// isNull reports whether a node is an explicit YAML null.
func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
