package soapserver

import "strings"

// XSDType is a simple wire type with a fixed canonical name.
// The canonical names match the XML Schema builtin vocabulary so they can
// be emitted directly with the xsd: prefix in the generated contract.
type XSDType string

const (
	String  XSDType = "string"
	Integer XSDType = "int"
	Float   XSDType = "float"
	Double  XSDType = "double"
	Boolean XSDType = "boolean"
	Void    XSDType = "void"
	Mixed   XSDType = "anyType"
)

// simpleTypes maps accepted spellings to their canonical wire type.
// Lookups are structural: a name that is not here is a record-type
// reference, not an error.
var simpleTypes = map[string]XSDType{
	"string":  String,
	"str":     String,
	"int":     Integer,
	"integer": Integer,
	"long":    Integer,
	"float":   Float,
	"double":  Double,
	"number":  Double,
	"bool":    Boolean,
	"boolean": Boolean,
	"void":    Void,
	"null":    Void,
	"mixed":   Mixed,
	"anyType": Mixed,
	"any":     Mixed,
}

// IsSimpleType reports whether name denotes a simple wire type and, if so,
// its canonical form. Array markers are not stripped; callers that may see
// names like "ArrayOfint" or "string[]" should go through ParseTypeName
// first.
func IsSimpleType(name string) (XSDType, bool) {
	t, ok := simpleTypes[name]
	return t, ok
}

// arrayPrefix is prepended once per array dimension when naming array
// complex types, e.g. "ArrayOfArrayOfint" for [][]int.
const arrayPrefix = "ArrayOf"

// ParseTypeName splits a wire type name into its base name and array
// dimensionality. Both the ArrayOf prefix convention and the bracket
// suffix convention ("string[]") are understood; the two may not be mixed.
// Simple base names are canonicalized; anything else is returned verbatim
// and should be treated as a record reference.
func ParseTypeName(name string) (base string, dims int) {
	name = strings.TrimSpace(name)
	for strings.HasSuffix(name, "[]") {
		name = name[:len(name)-2]
		dims++
	}
	if dims == 0 {
		for strings.HasPrefix(name, arrayPrefix) {
			rest := name[len(arrayPrefix):]
			if rest == "" {
				break
			}
			name = rest
			dims++
		}
	}
	if t, ok := simpleTypes[name]; ok {
		return string(t), dims
	}
	return name, dims
}

// ArrayName returns the complex-type name for dims levels of nesting over
// base, one ArrayOf prefix per dimension. ArrayName(base, 0) is base itself.
func ArrayName(base string, dims int) string {
	if dims <= 0 {
		return base
	}
	return strings.Repeat(arrayPrefix, dims) + base
}
