// Package matrix flattens an app configuration into the CI build matrix:
// one entry per (app, ESP-IDF version, build type) combination, honoring
// per-app overrides, ci_enabled flags and exclusion rules. Entries come out
// in generation order: apps as declared, versions in list order, build types
// in list order.
package matrix
