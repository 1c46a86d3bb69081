package depspec

import (
	"regexp"
	"strings"
)

// regexpOperator matches the first PEP 440 version comparison
// operator. Longer operators come first so that "===" is not read as "==".
var regexpOperator = regexp.MustCompile(`===|~=|==|!=|<=|>=|<|>`)
var regexpExtras = regexp.MustCompile(`\[[^\]]*\]`)

// ParseRepodataSpec parses a conda match spec as found in the
// "depends" list of repodata, e.g. "pandas >=1.0.0,<2.0.0".
// Everything after the first whitespace is the constraint.
func ParseRepodataSpec(s string) (name, constraint string) {
	s = strings.TrimSpace(s)
	name, constraint, _ = strings.Cut(s, " ")
	return name, strings.TrimSpace(constraint)
}

// ParseRepodata parses a list of repodata "depends" entries.
func ParseRepodata(specs []string) *Dependencies {
	deps := NewDependencies()
	for _, s := range specs {
		name, constraint := ParseRepodataSpec(s)
		if name == "" {
			continue
		}
		deps.Set(name, constraint)
	}
	return deps
}

// ParseRequiresDistSpec parses a PyPI "requires_dist" entry by
// splitting on the first version comparison operator.
//
// When the entry has no version but does have an environment marker,
// the first operator lives inside the marker, so the marker is folded
// into the name:
//
//	"pytest ; extra == 'test'"        -> "pytest ; extra", "== 'test'"
//	"qiskit>=1.0.0 ; extra == 'test'" -> "qiskit", ">=1.0.0 ; extra == 'test'"
//
// Consumers of existing conda-lock files rely on this output.
func ParseRequiresDistSpec(s string) (name, constraint string) {
	s = strings.TrimSpace(s)
	loc := regexpOperator.FindStringIndex(s)
	if loc == nil {
		return cleanName(s), ""
	}
	return cleanName(s[:loc[0]]), strings.TrimSpace(s[loc[0]:])
}

// ParseRequiresDist parses a list of PyPI "requires_dist" entries.
func ParseRequiresDist(specs []string) *Dependencies {
	deps := NewDependencies()
	for _, s := range specs {
		name, constraint := ParseRequiresDistSpec(s)
		if name == "" {
			continue
		}
		deps.Set(name, constraint)
	}
	return deps
}

// cleanName drops any extras annotation, e.g. "dask[array]".
func cleanName(s string) string {
	return strings.TrimSpace(regexpExtras.ReplaceAllString(s, ""))
}
