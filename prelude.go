// prelude.go: the common host-function prelude
//
// `Common` returns a Bindings preloaded with the small namespaced
// standard library scripts can count on: Core, Assert, Bool, List,
// String and Int helpers. Embedders that want a bare environment use
// NewBindings and register their own functions.
package wander

import (
	"errors"
	"fmt"
)

// Common returns an environment with the standard prelude registered.
func Common() *Bindings {
	b := NewBindings()
	registerCore(b)
	registerBool(b)
	registerList(b)
	registerString(b)
	registerInt(b)
	return b
}

func registerCore(b *Bindings) {
	b.BindHostFunction(NewHostFunction(HostFunctionBinding{
		Name: "Core.eq",
		Parameters: []Parameter{
			{Name: "left", Type: AnyType},
			{Name: "right", Type: AnyType},
		},
		Result: BooleanType,
		Doc:    "Check if two values are equal.",
	}, func(arguments []Value, _ *Bindings) (Value, error) {
		return Bool(Equal(arguments[0], arguments[1])), nil
	}))

	b.BindHostFunction(NewHostFunction(HostFunctionBinding{
		Name: "Assert.assertEq",
		Parameters: []Parameter{
			{Name: "value", Type: AnyType},
			{Name: "expected", Type: AnyType},
		},
		Result: NothingType,
		Doc:    "Assert that two values are equal.",
	}, func(arguments []Value, _ *Bindings) (Value, error) {
		if !Equal(arguments[0], arguments[1]) {
			return Nothing, fmt.Errorf("assertion failed: %s does not equal %s",
				FormatValue(arguments[0]), FormatValue(arguments[1]))
		}
		return Nothing, nil
	}))
}

func registerBool(b *Bindings) {
	binary := func(name, doc string, op func(left, right bool) bool) {
		b.BindHostFunction(NewHostFunction(HostFunctionBinding{
			Name: name,
			Parameters: []Parameter{
				{Name: "left", Type: BooleanType},
				{Name: "right", Type: BooleanType},
			},
			Result: BooleanType,
			Doc:    doc,
		}, func(arguments []Value, _ *Bindings) (Value, error) {
			left, ok := arguments[0].Data.(bool)
			if !ok || arguments[0].Tag != VTBoolean {
				return Nothing, fmt.Errorf("%s requires two Boolean values", name)
			}
			right, ok := arguments[1].Data.(bool)
			if !ok || arguments[1].Tag != VTBoolean {
				return Nothing, fmt.Errorf("%s requires two Boolean values", name)
			}
			return Bool(op(left, right)), nil
		}))
	}
	binary("Bool.and", "Boolean and.", func(left, right bool) bool { return left && right })
	binary("Bool.or", "Boolean or.", func(left, right bool) bool { return left || right })

	b.BindHostFunction(NewHostFunction(HostFunctionBinding{
		Name: "Bool.not",
		Parameters: []Parameter{
			{Name: "value", Type: BooleanType},
		},
		Result: BooleanType,
		Doc:    "Boolean not.",
	}, func(arguments []Value, _ *Bindings) (Value, error) {
		if arguments[0].Tag != VTBoolean {
			return Nothing, errors.New("Bool.not requires a Boolean value")
		}
		return Bool(!arguments[0].Data.(bool)), nil
	}))
}

func registerList(b *Bindings) {
	b.BindHostFunction(NewHostFunction(HostFunctionBinding{
		Name: "List.at",
		Parameters: []Parameter{
			{Name: "offset", Type: IntType},
			{Name: "list", Type: ListType},
		},
		Result: AnyType,
		Doc:    "Get the value at the given position in a list.",
	}, func(arguments []Value, _ *Bindings) (Value, error) {
		if arguments[0].Tag != VTInt {
			return Nothing, errors.New("List.at requires an Int offset")
		}
		if arguments[1].Tag != VTList {
			return Nothing, errors.New("List.at requires a List")
		}
		offset := arguments[0].Data.(int64)
		items := arguments[1].Data.([]Value)
		if offset < 0 || offset >= int64(len(items)) {
			return Nothing, fmt.Errorf("List.at offset %d is out of range for a list of %d", offset, len(items))
		}
		return items[offset], nil
	}))

	b.BindHostFunction(NewHostFunction(HostFunctionBinding{
		Name: "List.length",
		Parameters: []Parameter{
			{Name: "list", Type: ListType},
		},
		Result: IntType,
		Doc:    "Get the number of values in a list.",
	}, func(arguments []Value, _ *Bindings) (Value, error) {
		if arguments[0].Tag != VTList {
			return Nothing, errors.New("List.length requires a List")
		}
		return Int(int64(len(arguments[0].Data.([]Value)))), nil
	}))
}

func registerString(b *Bindings) {
	b.BindHostFunction(NewHostFunction(HostFunctionBinding{
		Name: "String.concat",
		Parameters: []Parameter{
			{Name: "left", Type: StringType},
			{Name: "right", Type: StringType},
		},
		Result: StringType,
		Doc:    "Concatenate two strings.",
	}, func(arguments []Value, _ *Bindings) (Value, error) {
		if arguments[0].Tag != VTString || arguments[1].Tag != VTString {
			return Nothing, errors.New("String.concat requires two String values")
		}
		return Str(arguments[0].Data.(string) + arguments[1].Data.(string)), nil
	}))

	b.BindHostFunction(NewHostFunction(HostFunctionBinding{
		Name: "String.length",
		Parameters: []Parameter{
			{Name: "value", Type: StringType},
		},
		Result: IntType,
		Doc:    "Get the length of a string in bytes.",
	}, func(arguments []Value, _ *Bindings) (Value, error) {
		if arguments[0].Tag != VTString {
			return Nothing, errors.New("String.length requires a String value")
		}
		return Int(int64(len(arguments[0].Data.(string)))), nil
	}))
}

func registerInt(b *Bindings) {
	b.BindHostFunction(NewHostFunction(HostFunctionBinding{
		Name: "Int.add",
		Parameters: []Parameter{
			{Name: "left", Type: IntType},
			{Name: "right", Type: IntType},
		},
		Result: IntType,
		Doc:    "Add two integers.",
	}, func(arguments []Value, _ *Bindings) (Value, error) {
		if arguments[0].Tag != VTInt || arguments[1].Tag != VTInt {
			return Nothing, errors.New("Int.add requires two Int values")
		}
		return Int(arguments[0].Data.(int64) + arguments[1].Data.(int64)), nil
	}))
}
