// Package hint parses textual type annotations in bracket notation.
//
// Annotations name a collection's element type where static typing cannot,
// in the form:
//
//	string[]
//	int[][]
//	UserRecord[]
//
// A bare name without brackets is also accepted and denotes a scalar.
package hint

import (
	"regexp"
	"strings"
)

// Hint is a parsed type annotation.
type Hint struct {
	// Base is the annotated type name with all array markers stripped.
	Base string

	// Dims is the number of array markers, one per nesting level.
	Dims int
}

var hintPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)((?:\[\])*)$`)

// Parse extracts a type hint from s. It returns false when s is empty or
// not a well-formed annotation; callers fall back to their generic element
// type in that case.
func Parse(s string) (Hint, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Hint{}, false
	}
	m := hintPattern.FindStringSubmatch(s)
	if m == nil {
		return Hint{}, false
	}
	return Hint{Base: m[1], Dims: len(m[2]) / 2}, true
}
