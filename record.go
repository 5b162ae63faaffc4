package soapserver

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/byjg/go-soap-server/internal/hint"
)

// TypeRef references a parameter, return, or field type: a simple wire
// type or a record, at some array depth. Dims 0 is a scalar.
type TypeRef struct {
	Name string `validate:"required"`
	Dims int    `validate:"gte=0"`
}

// Simple returns a reference to a scalar simple type.
func Simple(t XSDType) TypeRef {
	return TypeRef{Name: string(t)}
}

// Record returns a reference to a registered record type.
func Record(name string) TypeRef {
	return TypeRef{Name: name}
}

// ArrayOf wraps a reference in one more array dimension.
func ArrayOf(ref TypeRef) TypeRef {
	return TypeRef{Name: ref.Name, Dims: ref.Dims + 1}
}

// IsVoid reports whether the reference is the scalar void type.
func (r TypeRef) IsVoid() bool {
	return r.Dims == 0 && r.Name == string(Void)
}

// normalize folds array markers embedded in the name ("string[]",
// "ArrayOfint") into Dims and canonicalizes simple-type spellings.
func (r TypeRef) normalize() TypeRef {
	base, dims := ParseTypeName(r.Name)
	return TypeRef{Name: base, Dims: r.Dims + dims}
}

// String renders the reference in bracket notation, e.g. "int[][]".
func (r TypeRef) String() string {
	return r.Name + strings.Repeat("[]", r.Dims)
}

// FieldSpec describes one field of a record type. Fields are ordered;
// the contract renders them in declaration order.
type FieldSpec struct {
	Name string  `validate:"required"`
	Type TypeRef `validate:"required"`
	Doc  string
}

// RecordType is a user-defined structured type, rendered as an XML Schema
// complex type. Instances are built once at registration time and must not
// be mutated afterwards; the resolver reads them concurrently without
// locking.
type RecordType struct {
	Name   string      `validate:"required"`
	Doc    string
	Fields []FieldSpec `validate:"dive"`
}

// NewRecord starts a record descriptor with the given type name.
func NewRecord(name string) *RecordType {
	return &RecordType{Name: name}
}

// Field appends a field. The type name may carry array markers
// ("string[]"); they are folded into the dimensionality at resolve time.
func (r *RecordType) Field(name string, ref TypeRef) *RecordType {
	r.Fields = append(r.Fields, FieldSpec{Name: name, Type: ref})
	return r
}

// WithDoc sets the record description used in documentation output.
func (r *RecordType) WithDoc(doc string) *RecordType {
	r.Doc = doc
	return r
}

// RecordOf derives a record descriptor from a struct type T, computed once
// at registration time. Field names come from the `soap` tag when present,
// otherwise from the lowercased Go field name. Collection fields whose
// element type cannot be expressed (interface elements) fall back to the
// `hint` tag, a bracket-notation override like `hint:"string[]"`.
func RecordOf[T any](name string) (*RecordType, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &UnresolvableTypeError{Name: t.String()}
	}
	rec := NewRecord(name)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fieldName := strings.ToLower(f.Name[:1]) + f.Name[1:]
		if tag := f.Tag.Get("soap"); tag != "" {
			if tag == "-" {
				continue
			}
			fieldName = tag
		}
		ref, err := refForGoType(f.Type, f.Tag.Get("hint"))
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", name, f.Name, err)
		}
		rec.Field(fieldName, ref)
	}
	return rec, nil
}

// refForGoType maps a Go type to a TypeRef. Nested structs reference a
// record named after the Go type; the record itself must be registered
// separately.
func refForGoType(t reflect.Type, hintTag string) (TypeRef, error) {
	dims := 0
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		dims++
		t = t.Elem()
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return TypeRef{Name: string(String), Dims: dims}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeRef{Name: string(Integer), Dims: dims}, nil
	case reflect.Float32:
		return TypeRef{Name: string(Float), Dims: dims}, nil
	case reflect.Float64:
		return TypeRef{Name: string(Double), Dims: dims}, nil
	case reflect.Bool:
		return TypeRef{Name: string(Boolean), Dims: dims}, nil
	case reflect.Struct:
		return TypeRef{Name: t.Name(), Dims: dims}, nil
	case reflect.Interface:
		// The static element type is unknown. A hint override describes
		// the whole field in bracket notation; without one the element
		// degrades to the generic anyType.
		if h, ok := hint.Parse(hintTag); ok {
			return TypeRef{Name: h.Base, Dims: h.Dims}.normalize(), nil
		}
		return TypeRef{Name: string(Mixed), Dims: dims}, nil
	default:
		return TypeRef{}, &UnresolvableTypeError{Name: t.String()}
	}
}
