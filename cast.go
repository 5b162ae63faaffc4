package soapserver

import (
	"fmt"
	"strconv"
	"strings"
)

// Cast coerces an externally supplied argument value into its declared
// parameter type before the handler is invoked. It is pure: identical
// inputs always produce identical results, and casting an
// already-correctly-typed value returns it unchanged.
//
// Record, anyType, and void targets pass through unconverted; record
// materialization from wire data belongs to the transport engine.
func Cast(raw any, spec ParameterSpec) (any, error) {
	return castRef(raw, spec.Type.normalize())
}

func castRef(raw any, ref TypeRef) (any, error) {
	if ref.Dims > 0 {
		return castSlice(raw, ref)
	}
	t, ok := IsSimpleType(ref.Name)
	if !ok {
		// Record reference: passes through.
		return raw, nil
	}
	switch t {
	case Integer:
		return castInt(raw)
	case Float, Double:
		return castFloat(raw)
	case Boolean:
		return castBool(raw), nil
	case String:
		return castString(raw)
	default:
		// anyType and void pass through.
		return raw, nil
	}
}

// castSlice casts every element of a collection individually, preserving
// input order. A single non-collection value is treated as a collection of
// one, which is how repeated HTTP form fields degrade when supplied once.
func castSlice(raw any, ref TypeRef) (any, error) {
	elemRef := TypeRef{Name: ref.Name, Dims: ref.Dims - 1}

	var elems []any
	switch v := raw.(type) {
	case []any:
		elems = v
	case []string:
		elems = make([]any, len(v))
		for i, s := range v {
			elems[i] = s
		}
	default:
		elems = []any{raw}
	}

	out := make([]any, len(elems))
	for i, e := range elems {
		cast, err := castRef(e, elemRef)
		if err != nil {
			return nil, err
		}
		out[i] = cast
	}
	return out, nil
}

func castInt(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float32:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return int(n), nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return int(f), nil
		}
	}
	return nil, &CastError{Value: raw, Target: string(Integer)}
}

func castFloat(raw any) (any, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, nil
		}
	}
	return nil, &CastError{Value: raw, Target: string(Double)}
}

// castBool never fails. The literal strings "false", "0", and "" (case
// insensitive) are false, "true" and "1" are true; any other string is
// accepted permissively as truthy. Non-string values convert by a generic
// truthiness rule.
func castBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "false", "0", "":
			return false
		case "true", "1":
			return true
		}
		return true
	case int:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	case nil:
		return false
	}
	return true
}

func castString(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case nil:
		return "", nil
	}
	return fmt.Sprint(raw), nil
}
