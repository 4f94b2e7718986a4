package serializer

import "strings"

// AttributeFilter selects attributes by their stored (unresolved) name.
// The zero value matches nothing.
type AttributeFilter struct {
	all    bool
	tokens map[string]struct{}
}

// ParseAttributeFilter parses a comma-separated list of attribute names.
// Leading and trailing commas are optional; empty tokens are ignored and
// names must match exactly.
func ParseAttributeFilter(s string) AttributeFilter {
	f := AttributeFilter{tokens: make(map[string]struct{})}
	for _, tok := range strings.Split(s, ",") {
		if tok != "" {
			f.tokens[tok] = struct{}{}
		}
	}
	return f
}

// MatchAllAttributes returns a filter that includes every attribute.
func MatchAllAttributes() AttributeFilter {
	return AttributeFilter{all: true}
}

// Match reports whether the attribute named name is included.
func (f AttributeFilter) Match(name string) bool {
	if f.all {
		return true
	}
	_, ok := f.tokens[name]
	return ok
}

// Len returns the number of names in the filter, or -1 for MatchAllAttributes.
func (f AttributeFilter) Len() int {
	if f.all {
		return -1
	}
	return len(f.tokens)
}
