// Package instructions contains prompt construction for LLM calls.
//
// interpolate.go substitutes {variable} placeholders in agent and task texts.
package instructions

import (
	"fmt"
	"regexp"
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Placeholders returns the distinct variable names referenced by tmpl, in
// order of first appearance.
func Placeholders(tmpl string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Interpolate replaces every {name} in tmpl with vars[name]. A placeholder
// without a matching variable is an error.
func Interpolate(tmpl string, vars map[string]string) (string, error) {
	var missing string
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("unknown template variable %q", missing)
	}
	return out, nil
}
