// Package appconfig loads and validates the hierarchical app_config.yml
// document that describes a project's firmware apps.
//
// # Overview
//
// The document has three top-level sections:
//
//	metadata:  global defaults (ESP-IDF versions, build types per version,
//	           chip target) that apply to every app unless overridden
//	apps:      named app entries with build metadata and descriptive fields
//	ci_config: optional CI exclusion rules
//
// Apps keep their declaration order: the AppSet type decodes the mapping
// node directly so listing and matrix generation walk entries in the order
// the configuration author wrote them.
//
// # Validation
//
// Three passes with different strictness:
//
//   - Validate: structural pass over the raw YAML node. Collects every
//     error and warning before returning and never mutates the document.
//   - Strict: struct-tag constraints on the typed document via
//     go-playground/validator.
//   - Schema: CUE schema unification for full shape checking, including
//     the flat-vs-per-version build_types disjunction.
//
// # Usage Example
//
//	path, err := appconfig.Discover(projectPath)
//	if err != nil {
//	    log.Fatal().Err(err).Msg("no configuration found")
//	}
//	doc, err := appconfig.Load(path)
//	if err != nil {
//	    log.Fatal().Err(err).Msg("loading configuration")
//	}
//	for _, name := range doc.Apps.Names() {
//	    app, _ := doc.Apps.Get(name)
//	    fmt.Println(name, app.SourceFile)
//	}
package appconfig
