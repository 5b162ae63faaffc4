package soapserver

import (
	"context"
	"strconv"
	"strings"

	"github.com/byjg/go-soap-server/internal/meta"
)

// Unbounded marks a parameter with no upper occurrence limit. It renders
// as the literal attribute value "unbounded" in the contract.
const Unbounded = -1

// HandlerFunc is the application logic behind an operation. Arguments
// arrive already cast to their declared parameter types, keyed by
// parameter name.
type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

// ParameterSpec declares one operation parameter: its name, type, and
// occurrence bounds. MinOccurs 0 makes the parameter optional; MaxOccurs
// is a positive bound or Unbounded.
type ParameterSpec struct {
	Name      string  `validate:"required"`
	Type      TypeRef `validate:"required"`
	MinOccurs int     `validate:"gte=0"`
	MaxOccurs int
}

// Required reports whether the parameter must be present at dispatch.
func (p ParameterSpec) Required() bool { return p.MinOccurs > 0 }

// MaxOccursAttr returns the literal maxOccurs attribute value.
func (p ParameterSpec) MaxOccursAttr() string {
	if p.MaxOccurs == Unbounded {
		return "unbounded"
	}
	return strconv.Itoa(p.MaxOccurs)
}

// MinOccursAttr returns the literal minOccurs attribute value.
func (p ParameterSpec) MinOccursAttr() string {
	return strconv.Itoa(p.MinOccurs)
}

// OperationSpec is the immutable description of one operation: name,
// description, ordered parameter list, and return type. Specs are created
// once at registration and read concurrently without locking.
type OperationSpec struct {
	Name    string `validate:"required"`
	Doc     string
	Params  []ParameterSpec `validate:"dive"`
	Returns TypeRef
}

// Signature renders a human-readable call signature for documentation,
// e.g. "add(a: int, b: int)".
func (s *OperationSpec) Signature() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Type.normalize().String())
	}
	b.WriteByte(')')
	return b.String()
}

// Operation pairs an OperationSpec with its handler and per-operation
// interceptors. Build it with NewOperation and register it on a Server.
type Operation struct {
	spec         OperationSpec
	fn           HandlerFunc
	interceptors []UnaryInterceptor
}

// NewOperation creates an operation around a handler function. The return
// type defaults to void until Returns is called.
func NewOperation(fn HandlerFunc) *Operation {
	return &Operation{
		fn: fn,
		spec: OperationSpec{
			Returns: Simple(Void),
		},
	}
}

// Param appends a required single-occurrence parameter.
func (o *Operation) Param(name string, ref TypeRef) *Operation {
	return o.ParamOccurs(name, ref, 1, 1)
}

// OptionalParam appends an optional single-occurrence parameter.
func (o *Operation) OptionalParam(name string, ref TypeRef) *Operation {
	return o.ParamOccurs(name, ref, 0, 1)
}

// ParamOccurs appends a parameter with explicit occurrence bounds.
// Use Unbounded for max to lift the upper limit.
func (o *Operation) ParamOccurs(name string, ref TypeRef, min, max int) *Operation {
	o.spec.Params = append(o.spec.Params, ParameterSpec{
		Name:      name,
		Type:      ref,
		MinOccurs: min,
		MaxOccurs: max,
	})
	return o
}

// Returns sets the operation's return type.
func (o *Operation) Returns(ref TypeRef) *Operation {
	o.spec.Returns = ref
	return o
}

// Doc sets the operation description shown in the contract and the
// documentation page.
func (o *Operation) Doc(doc string) *Operation {
	o.spec.Doc = doc
	return o
}

// WithInterceptor adds an interceptor to this operation. Operation
// interceptors execute after server-level interceptors.
func (o *Operation) WithInterceptor(i UnaryInterceptor) *Operation {
	o.interceptors = append(o.interceptors, i)
	return o
}

// Spec returns a copy of the operation's spec.
func (o *Operation) Spec() OperationSpec { return o.spec }

// Metadata returns the export metadata for the operation.
func (o *Operation) Metadata() *meta.OperationMetadata {
	params := make([]meta.ParameterMetadata, 0, len(o.spec.Params))
	for _, p := range o.spec.Params {
		params = append(params, meta.ParameterMetadata{
			Name:      p.Name,
			Type:      p.Type.normalize().String(),
			MinOccurs: p.MinOccurs,
			MaxOccurs: p.MaxOccurs,
		})
	}
	return &meta.OperationMetadata{
		Name:    o.spec.Name,
		Doc:     o.spec.Doc,
		Params:  params,
		Returns: o.spec.Returns.normalize().String(),
	}
}

