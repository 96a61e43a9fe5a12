package mustache

import (
	"fmt"
	"reflect"
	"strings"
)

// lookup resolves name against a context stack, the innermost context first.
// A dotted path bubbles only its first segment through the stack; every
// segment after that is resolved strictly against the value the previous
// segment produced, with no fallback to an outer context. This matches the
// Mustache context-bubbling rule: "name.age" looks up "name" anywhere in the
// stack, then looks up "age" only on whatever "name" resolved to.
func lookup(contextChain []interface{}, name string, errorOnMissing bool) (reflect.Value, error) {
	if name != "." && strings.Contains(name, ".") {
		parts := strings.SplitN(name, ".", 2)

		v, err := lookup(contextChain, parts[0], errorOnMissing)
		if err != nil {
			return v, err
		}
		return lookup([]interface{}{v}, parts[1], errorOnMissing)
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("mustache: panic while looking up %q: %v\n", name, r)
		}
	}()

Outer:
	for _, ctx := range contextChain {
		v := ctx.(reflect.Value)
		for v.IsValid() {
			typ := v.Type()
			if n := typ.NumMethod(); n > 0 {
				for i := 0; i < n; i++ {
					m := typ.Method(i)
					if m.Name == name && m.Type.NumIn() == 1 {
						return v.Method(i).Call(nil)[0], nil
					}
				}
			}
			if name == "." {
				return v, nil
			}
			switch av := v; av.Kind() {
			case reflect.Ptr, reflect.Interface:
				v = av.Elem()
			case reflect.Struct:
				ret := av.FieldByName(name)
				if ret.IsValid() {
					return ret, nil
				}
				continue Outer
			case reflect.Map:
				ret := av.MapIndex(reflect.ValueOf(name))
				if ret.IsValid() {
					return ret, nil
				}
				continue Outer
			default:
				continue Outer
			}
		}
	}
	if !errorOnMissing {
		return reflect.Value{}, nil
	}
	return reflect.Value{}, missingVariableError(name)
}

// isEmpty reports whether v counts as "falsy" for section/inverted-section
// purposes: an invalid value, false, a zero-length array/slice, or any other
// zero value except a number or a string. Numeric zero (0, 0.0, ...) is
// truthy, and so is every string, including the empty string.
func isEmpty(v reflect.Value) bool {
	if !v.IsValid() || v.Interface() == nil {
		return true
	}

	valueInd := indirect(v)
	if !valueInd.IsValid() {
		return true
	}
	switch val := valueInd; val.Kind() {
	case reflect.Array, reflect.Slice:
		return val.Len() == 0
	case reflect.String:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	default:
		return valueInd.IsZero()
	}
}

// indirect dereferences pointers and interfaces until it reaches a concrete
// value (or an invalid one).
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() {
		switch av := v; av.Kind() {
		case reflect.Ptr, reflect.Interface:
			v = av.Elem()
		default:
			return v
		}
	}
	return v
}
