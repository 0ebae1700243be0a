package dispatcher

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/indigo-web/fastsend/errors"
	"github.com/indigo-web/fastsend/object"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// GoMethodName maps a selector onto the exported Go method name it is resolved to:
// every keyword part is capitalized and colons are dropped, so "at:put:" becomes
// "AtPut" and "increment" becomes "Increment". Binary selectors have no Go counterpart
// and result in an empty string.
func GoMethodName(sel object.Selector) string {
	var b strings.Builder
	b.Grow(len(sel))

	for _, part := range strings.Split(string(sel), ":") {
		if len(part) == 0 {
			continue
		}

		for i := 0; i < len(part); i++ {
			if !isIdent(part[i]) {
				return ""
			}
		}

		c := part[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}

		b.WriteByte(c)
		b.WriteString(part[1:])
	}

	return b.String()
}

func isIdent(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func resolveReflect(receiver any, sel object.Selector, argc int) (object.Method, error) {
	typ := reflect.TypeOf(receiver)
	name := GoMethodName(sel)
	if len(name) == 0 {
		return nil, fmt.Errorf(
			"%w: %q has no Go method counterpart", errors.ErrUnsupportedOperation, sel,
		)
	}

	method, found := typ.MethodByName(name)
	if !found {
		return nil, fmt.Errorf(
			"%w: %s has no method %s", errors.ErrUnsupportedOperation, typ, name,
		)
	}

	// the method type carries the receiver as its first input
	mtype := method.Type
	if !fits(mtype, argc) {
		return nil, fmt.Errorf(
			"%w: %s.%s takes %d argument(s), got %d",
			errors.ErrUnsupportedOperation, typ, name, mtype.NumIn()-1, argc,
		)
	}

	switch mtype.NumOut() {
	case 0, 1:
	case 2:
		if mtype.Out(1) != errorType {
			return nil, fmt.Errorf(
				"%w: %s.%s: second result must be an error",
				errors.ErrUnsupportedOperation, typ, name,
			)
		}
	default:
		return nil, fmt.Errorf(
			"%w: %s.%s returns too many values", errors.ErrUnsupportedOperation, typ, name,
		)
	}

	index := method.Index

	return func(recv any, args []any) (any, error) {
		value := reflect.ValueOf(recv)
		if value.Type() != typ {
			return nil, fmt.Errorf(
				"%w: method resolved for %s, called on %T",
				errors.ErrUnsupportedOperation, typ, recv,
			)
		}

		// a cached method may be called with other arguments than it was resolved for
		if !fits(mtype, len(args)) {
			return nil, fmt.Errorf(
				"%w: %s.%s takes %d argument(s), got %d",
				errors.ErrUnsupportedOperation, typ, name, mtype.NumIn()-1, len(args),
			)
		}

		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			v, err := convertArg(arg, paramType(mtype, i))
			if err != nil {
				return nil, fmt.Errorf("%s.%s: argument %d: %w", typ, name, i, err)
			}

			in[i] = v
		}

		return unpack(value.Method(index).Call(in))
	}, nil
}

// fits reports whether the method accepts argc arguments, not counting the receiver.
func fits(mtype reflect.Type, argc int) bool {
	params := mtype.NumIn() - 1
	if mtype.IsVariadic() {
		return argc >= params-1
	}

	return argc == params
}

// paramType returns the type of i-th argument, not counting the receiver.
func paramType(mtype reflect.Type, i int) reflect.Type {
	last := mtype.NumIn() - 1
	if mtype.IsVariadic() && i+1 >= last {
		return mtype.In(last).Elem()
	}

	return mtype.In(i + 1)
}

func convertArg(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: nil is not %s", errors.ErrUnsupportedOperation, want)
		}
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(want) {
		return v, nil
	}

	if isNumeric(v.Kind()) && isNumeric(want.Kind()) {
		converted := v.Convert(want)
		if !lossless(v, converted) {
			return reflect.Value{}, fmt.Errorf(
				"%w: %v doesn't fit into %s", errors.ErrUnsupportedOperation, arg, want,
			)
		}

		return converted, nil
	}

	return reflect.Value{}, fmt.Errorf(
		"%w: %s is not assignable to %s", errors.ErrUnsupportedOperation, v.Type(), want,
	)
}

func isNumeric(kind reflect.Kind) bool {
	return kind >= reflect.Int && kind <= reflect.Float64
}

// lossless reports whether the converted value still represents the original one: it
// must convert back into the same value and keep the sign.
func lossless(orig, converted reflect.Value) bool {
	if converted.Convert(orig.Type()).Interface() != orig.Interface() {
		return false
	}

	return negative(orig) == negative(converted)
}

func negative(v reflect.Value) bool {
	switch {
	case v.CanInt():
		return v.Int() < 0
	case v.CanFloat():
		return v.Float() < 0
	default:
		return false
	}
}

func unpack(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type() == errorType {
			return nil, asError(out[0])
		}

		return out[0].Interface(), nil
	default:
		return out[0].Interface(), asError(out[1])
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}

	return v.Interface().(error)
}
