// value.go: the Wander runtime value model
//
// What this file does
// -------------------
// Defines the tagged-union `Value{Tag, Data}` that evaluation produces,
// constructors for each variant, deep structural equality (`Equal`, with
// order-insensitive set comparison), and the descriptive `Type` metadata
// attached to host-function signatures and lambda parameters. Types are
// documentation for tooling; nothing checks them at runtime.
//
// Data payloads by tag:
//
//	VTNothing       nil
//	VTBoolean       bool
//	VTInt           int64
//	VTString        string (fully unescaped)
//	VTLambda        Lambda (single parameter, unevaluated Expression body)
//	VTHostFunction  string (the qualified host-function name)
//	VTList          []Value
//	VTTuple         []Value
//	VTSet           []Value (deduplicated, source order)
//	VTRecord        map[string]Value
//	VTHostValue     HostValue (opaque host payload)
package wander

import (
	"fmt"
	"reflect"
)

// ValueTag discriminates the Value union.
type ValueTag int

const (
	VTNothing ValueTag = iota
	VTBoolean
	VTInt
	VTString
	VTLambda
	VTHostFunction
	VTList
	VTTuple
	VTSet
	VTRecord
	VTHostValue
)

var valueTagNames = map[ValueTag]string{
	VTNothing: "Nothing", VTBoolean: "Boolean", VTInt: "Int",
	VTString: "String", VTLambda: "Lambda", VTHostFunction: "HostFunction",
	VTList: "List", VTTuple: "Tuple", VTSet: "Set", VTRecord: "Record",
	VTHostValue: "HostValue",
}

func (t ValueTag) String() string {
	if s, ok := valueTagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ValueTag(%d)", int(t))
}

// Value is a Wander runtime value.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Lambda is the payload of both lambda expressions and lambda values: one
// parameter, optional declared (unchecked) input/output tags, and the
// unevaluated body. No environment is captured; application binds the
// parameter into the scope stack that is current at call time.
type Lambda struct {
	Param  string
	InTag  string // "" when undeclared
	OutTag string // "" when undeclared
	Body   Expression
}

// HostValue is an opaque payload owned by the host application. It flows
// through evaluation untouched; only host functions look inside.
type HostValue struct {
	Data interface{}
}

// Nothing is the absent value.
var Nothing = Value{Tag: VTNothing}

// constructors

func Bool(b bool) Value               { return Value{Tag: VTBoolean, Data: b} }
func Int(n int64) Value               { return Value{Tag: VTInt, Data: n} }
func Str(s string) Value              { return Value{Tag: VTString, Data: s} }
func List(vs []Value) Value           { return Value{Tag: VTList, Data: vs} }
func Tuple(vs []Value) Value          { return Value{Tag: VTTuple, Data: vs} }
func Record(m map[string]Value) Value { return Value{Tag: VTRecord, Data: m} }
func Host(data interface{}) Value     { return Value{Tag: VTHostValue, Data: HostValue{Data: data}} }

// Set builds a set value, deduplicating by deep equality while keeping
// first-occurrence order.
func Set(vs []Value) Value {
	out := make([]Value, 0, len(vs))
	for _, v := range vs {
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	return Value{Tag: VTSet, Data: out}
}

func containsValue(vs []Value, v Value) bool {
	for _, w := range vs {
		if Equal(w, v) {
			return true
		}
	}
	return false
}

// Equal reports deep structural equality. Sets compare as unordered
// collections; every other composite compares element-wise in order.
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNothing:
		return true
	case VTBoolean:
		return a.Data.(bool) == b.Data.(bool)
	case VTInt:
		return a.Data.(int64) == b.Data.(int64)
	case VTString:
		return a.Data.(string) == b.Data.(string)
	case VTHostFunction:
		return a.Data.(string) == b.Data.(string)
	case VTList, VTTuple:
		return equalSlices(a.Data.([]Value), b.Data.([]Value))
	case VTSet:
		as, bs := a.Data.([]Value), b.Data.([]Value)
		if len(as) != len(bs) {
			return false
		}
		for _, v := range as {
			if !containsValue(bs, v) {
				return false
			}
		}
		return true
	case VTRecord:
		am, bm := a.Data.(map[string]Value), b.Data.(map[string]Value)
		if len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		// lambdas and host values: structural comparison of the payload
		return reflect.DeepEqual(a.Data, b.Data)
	}
}

func equalSlices(as, bs []Value) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !Equal(as[i], bs[i]) {
			return false
		}
	}
	return true
}

/* ===========================
   Descriptive types
   =========================== */

// TypeKind discriminates Type.
type TypeKind int

const (
	TypeAny TypeKind = iota
	TypeBoolean
	TypeInt
	TypeString
	TypeNothing
	TypeLambda
	TypeHostFunction
	TypeList
	TypeTuple
	TypeSet
	TypeRecord
	TypeOptional
)

// Type is descriptive metadata for host-function signatures. Optional
// wraps an element type; everything else stands alone.
type Type struct {
	Kind TypeKind
	Elem *Type // set only for TypeOptional
}

var (
	AnyType          = Type{Kind: TypeAny}
	BooleanType      = Type{Kind: TypeBoolean}
	IntType          = Type{Kind: TypeInt}
	StringType       = Type{Kind: TypeString}
	NothingType      = Type{Kind: TypeNothing}
	LambdaType       = Type{Kind: TypeLambda}
	HostFunctionType = Type{Kind: TypeHostFunction}
	ListType         = Type{Kind: TypeList}
	TupleType        = Type{Kind: TypeTuple}
	SetType          = Type{Kind: TypeSet}
	RecordType       = Type{Kind: TypeRecord}
)

// OptionalOf wraps t as an optional type.
func OptionalOf(t Type) Type {
	return Type{Kind: TypeOptional, Elem: &t}
}

func (t Type) String() string {
	switch t.Kind {
	case TypeAny:
		return "Any"
	case TypeBoolean:
		return "Boolean"
	case TypeInt:
		return "Int"
	case TypeString:
		return "String"
	case TypeNothing:
		return "Nothing"
	case TypeLambda:
		return "Lambda"
	case TypeHostFunction:
		return "HostFunction"
	case TypeList:
		return "List"
	case TypeTuple:
		return "Tuple"
	case TypeSet:
		return "Set"
	case TypeRecord:
		return "Record"
	case TypeOptional:
		if t.Elem == nil {
			return "Any?"
		}
		return t.Elem.String() + "?"
	default:
		return fmt.Sprintf("Type(%d)", int(t.Kind))
	}
}
