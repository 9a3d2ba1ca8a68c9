package matrix

import "github.com/espbuild/appmatrix/pkg/appconfig"

// Matches reports whether a rule matches a candidate entry: every field the
// rule names must equal the candidate's value. Fields the rule omits act as
// wildcards, so a rule with no fields matches every candidate.
func Matches(entry Entry, rule appconfig.ExcludeRule) bool {
	for field, want := range rule {
		got, ok := entry.Field(field)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// excluded reports whether any rule matches the candidate.
func excluded(entry Entry, rules []appconfig.ExcludeRule) bool {
	for _, rule := range rules {
		if Matches(entry, rule) {
			return true
		}
	}
	return false
}
