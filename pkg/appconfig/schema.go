package appconfig

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// documentSchema is the CUE schema for app_config.yml. The build_types
// disjunction captures the flat-vs-per-version union directly; the closed
// definitions reject misspelled fields in strict validation.
const documentSchema = `
#App: {
	description?: string
	source_file?: string
	category?:    string
	ci_enabled?:  bool
	featured?:    bool
	idf_versions?: [...string]
	build_types?: [...string] | [...[...string]]
	dependencies?: [...string]
	tags?: [...string]
}

#Document: {
	metadata: {
		idf_versions?: [...string]
		build_types?: [...[...string]]
		target?: string
	}
	apps: {[string]: #App}
	ci_config?: {
		exclude_combinations?: [...{[string]: string}] | null
	}
}
`

// Schema validates raw configuration documents against the CUE definition.
type Schema struct {
	ctx *cue.Context
	def cue.Value
}

// NewSchema compiles the built-in document schema.
func NewSchema() (*Schema, error) {
	ctx := cuecontext.New()
	val := ctx.CompileString(documentSchema)
	if err := val.Err(); err != nil {
		return nil, fmt.Errorf("compiling document schema: %w", err)
	}
	def := val.LookupPath(cue.ParsePath("#Document"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("resolving document schema: %w", err)
	}
	return &Schema{ctx: ctx, def: def}, nil
}

// Validate unifies a generically decoded document (map[string]interface{}
// from yaml) with the schema and checks the result is concrete.
func (s *Schema) Validate(data interface{}) error {
	val := s.ctx.Encode(data)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	unified := s.def.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
