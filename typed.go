package soapserver

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// NewTypedOperation adapts a strongly typed function to an Operation. The
// parameter list is derived from the exported fields of Req the same way
// RecordOf derives record fields: the `soap` tag overrides the wire name,
// pointer fields are optional, and interface fields accept a `hint` tag.
// The cast argument map is decoded back into a Req value before each call,
// so the function never touches map[string]any.
//
//	type AddArgs struct {
//	    A int `soap:"a"`
//	    B int `soap:"b"`
//	}
//	op, err := soapserver.NewTypedOperation(func(ctx context.Context, in AddArgs) (int, error) {
//	    return in.A + in.B, nil
//	})
func NewTypedOperation[Req any, Res any](fn func(context.Context, Req) (Res, error)) (*Operation, error) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType.Kind() != reflect.Struct {
		return nil, &UnresolvableTypeError{Name: reqType.String()}
	}

	type binding struct {
		wire  string
		index int
	}
	var bindings []binding

	op := NewOperation(nil)
	for i := 0; i < reqType.NumField(); i++ {
		f := reqType.Field(i)
		if !f.IsExported() {
			continue
		}
		wire := strings.ToLower(f.Name[:1]) + f.Name[1:]
		if tag := f.Tag.Get("soap"); tag != "" {
			if tag == "-" {
				continue
			}
			wire = tag
		}
		ref, err := refForGoType(f.Type, f.Tag.Get("hint"))
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", f.Name, err)
		}
		if f.Type.Kind() == reflect.Pointer {
			op.OptionalParam(wire, ref)
		} else {
			op.Param(wire, ref)
		}
		bindings = append(bindings, binding{wire: wire, index: i})
	}

	returns, err := returnRef[Res]()
	if err != nil {
		return nil, err
	}
	op.Returns(returns)

	op.fn = func(ctx context.Context, args map[string]any) (any, error) {
		var req Req
		v := reflect.ValueOf(&req).Elem()
		for _, b := range bindings {
			raw, ok := args[b.wire]
			if !ok {
				continue
			}
			if err := assignField(v.Field(b.index), raw); err != nil {
				return nil, &CastError{Value: raw, Target: reqType.Field(b.index).Type.String()}
			}
		}
		return fn(ctx, req)
	}
	return op, nil
}

// returnRef infers the declared return type for a Go result type. An
// empty struct{} result means void.
func returnRef[Res any]() (TypeRef, error) {
	t := reflect.TypeOf((*Res)(nil)).Elem()
	if t.Kind() == reflect.Struct && t.NumField() == 0 {
		return Simple(Void), nil
	}
	ref, err := refForGoType(t, "")
	if err != nil {
		return TypeRef{}, fmt.Errorf("return type: %w", err)
	}
	return ref, nil
}

// assignField stores an already-cast argument into a struct field,
// converting between compatible kinds (int into int64, []any into a
// typed slice) and allocating pointers for optional fields.
func assignField(field reflect.Value, raw any) error {
	if field.Kind() == reflect.Pointer {
		field.Set(reflect.New(field.Type().Elem()))
		field = field.Elem()
	}

	rv := reflect.ValueOf(raw)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}
	if rv.Type().ConvertibleTo(field.Type()) && field.Kind() != reflect.Slice {
		field.Set(rv.Convert(field.Type()))
		return nil
	}
	if items, ok := raw.([]any); ok && field.Kind() == reflect.Slice {
		slice := reflect.MakeSlice(field.Type(), len(items), len(items))
		for i, item := range items {
			if err := assignField(slice.Index(i), item); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", raw, field.Type())
}
