package airutil

import (
	"sort"

	"github.com/drone/envsubst"
	"golang.org/x/exp/maps"
)

// ExpandEnv substitutes ${VAR} references in s. Unbraced and
// malformed references are returned untouched.
func ExpandEnv(s string) string {
	val, err := envsubst.EvalEnv(s)
	if err != nil {
		return s
	}
	return val
}

// UsedEnvVars returns the sorted names of the ${VAR} references
// in s. It never returns nil.
func UsedEnvVars(s string) []string {
	seen := map[string]struct{}{}
	_, err := envsubst.Eval(s, func(name string) string {
		seen[name] = struct{}{}
		return ""
	})
	if err != nil {
		return []string{}
	}
	out := maps.Keys(seen)
	sort.Strings(out)
	return out
}
