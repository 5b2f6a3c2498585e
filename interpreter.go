// interpreter.go: tree-walking evaluator
//
// What this file does
// -------------------
// `Eval` walks translated Expressions against a *Bindings and produces
// Values. Top-level expressions run in sequence and the last value wins.
//
// The load-bearing piece is evalApplication. Application is curried:
// a lambda head consumes one argument at a time by binding its parameter
// into the *current* innermost scope and evaluating its body right
// there. No environment is captured at lambda construction; that
// dynamic-scope behavior is what lets the curried host-function wrappers
// (bindings.go) accumulate parameters across applications and read them
// all back by name when the innermost host call finally runs. `let` and
// conditionals each push a scope and pop it on every exit path, so the
// parameter bindings an application leaks stay contained in the
// enclosing block.
//
// A host-function reference head takes the arity-driven path instead:
// exact argument count invokes, fewer curries through the wrapper chain,
// more is an arity error.
package wander

import (
	"fmt"
	"strings"
)

// Eval evaluates translated expressions in sequence and returns the last
// value, or Nothing for an empty script.
func Eval(expressions []Expression, bindings *Bindings) (Value, error) {
	result := Nothing
	for _, expr := range expressions {
		v, err := evalExpression(expr, bindings)
		if err != nil {
			return Nothing, err
		}
		result = v
	}
	return result, nil
}

func evalExpression(e Expression, b *Bindings) (Value, error) {
	switch e.Kind {
	case XNothing:
		return Nothing, nil
	case XBoolean:
		return Bool(e.Data.(bool)), nil
	case XInt:
		return Int(e.Data.(int64)), nil
	case XString:
		s, err := unescapeString(e.Data.(string))
		if err != nil {
			return Nothing, err
		}
		return Str(s), nil
	case XName:
		return evalName(e.Data.(string), b)
	case XTaggedName:
		// the tag is descriptive only
		return evalName(e.Data.(TaggedName).Name, b)
	case XHostFunction:
		return evalHostCall(e.Data.(string), b)
	case XLet:
		return evalLet(e.Data.(LetExpression), b)
	case XApplication:
		return evalApplication(e.Data.([]Expression), b)
	case XConditional:
		return evalConditional(e.Data.(ConditionalExpression), b)
	case XLambda:
		return Value{Tag: VTLambda, Data: e.Data.(Lambda)}, nil
	case XList:
		items, err := evalSlice(e.Data.([]Expression), b)
		if err != nil {
			return Nothing, err
		}
		return List(items), nil
	case XTuple:
		items, err := evalSlice(e.Data.([]Expression), b)
		if err != nil {
			return Nothing, err
		}
		return Tuple(items), nil
	case XSet:
		items, err := evalSlice(e.Data.([]Expression), b)
		if err != nil {
			return Nothing, err
		}
		return Set(items), nil
	case XRecord:
		fields := e.Data.(map[string]Expression)
		out := make(map[string]Value, len(fields))
		for name, value := range fields {
			v, err := evalExpression(value, b)
			if err != nil {
				return Nothing, err
			}
			out[name] = v
		}
		return Record(out), nil
	default:
		return Nothing, fmt.Errorf("cannot evaluate expression: %s", e)
	}
}

func evalSlice(exprs []Expression, b *Bindings) ([]Value, error) {
	out := make([]Value, 0, len(exprs))
	for _, expr := range exprs {
		v, err := evalExpression(expr, b)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// evalName resolves scope stack first, then the host-function registry,
// then dotted record projection.
func evalName(name string, b *Bindings) (Value, error) {
	if v, ok := b.Read(name); ok {
		return v, nil
	}
	if b.ReadHostFunction(name) != nil {
		return Value{Tag: VTHostFunction, Data: name}, nil
	}
	return readField(name, b)
}

// readField walks `base.field.field` through nested records.
func readField(name string, b *Bindings) (Value, error) {
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return Nothing, fmt.Errorf("unbound name: %s", name)
	}
	v, ok := b.Read(parts[0])
	if !ok {
		return Nothing, fmt.Errorf("unbound name: %s", name)
	}
	path := parts[0]
	for _, field := range parts[1:] {
		if v.Tag != VTRecord {
			return Nothing, fmt.Errorf("cannot read field %s: %s is not a record", field, path)
		}
		fv, ok := v.Data.(map[string]Value)[field]
		if !ok {
			return Nothing, fmt.Errorf("could not find field %s in record %s", field, path)
		}
		v = fv
		path += "." + field
	}
	return v, nil
}

// evalHostCall invokes a registered host function by reading its
// parameters back out of the scope stack. These expressions only occur
// as the innermost body of the wrapper lambdas built at registration, so
// by the time one evaluates every parameter has been bound by an
// application step.
func evalHostCall(name string, b *Bindings) (Value, error) {
	fn := b.ReadHostFunction(name)
	if fn == nil {
		return Nothing, fmt.Errorf("host function %s is not defined", name)
	}
	binding := fn.Binding()
	arguments := make([]Value, 0, len(binding.Parameters))
	for _, p := range binding.Parameters {
		v, ok := b.Read(p.Name)
		if !ok {
			return Nothing, fmt.Errorf("parameter %s of %s is not bound", p.Name, name)
		}
		arguments = append(arguments, v)
	}
	return fn.Run(arguments, b)
}

// evalLet binds declarations in order inside a fresh scope, so later
// declarations see earlier ones, then evaluates the body in that scope.
func evalLet(let LetExpression, b *Bindings) (Value, error) {
	b.AddScope()
	defer b.RemoveScope()
	for _, vb := range let.Bindings {
		v, err := evalExpression(vb.Value, b)
		if err != nil {
			return Nothing, err
		}
		b.Bind(vb.Name, v)
	}
	return evalExpression(let.Body, b)
}

// evalConditional requires a Boolean guard and evaluates exactly one
// branch, inside its own scope.
func evalConditional(cond ConditionalExpression, b *Bindings) (Value, error) {
	guard, err := evalExpression(cond.Cond, b)
	if err != nil {
		return Nothing, err
	}
	if guard.Tag != VTBoolean {
		return Nothing, fmt.Errorf("conditional requires a Boolean value, found: %s", FormatValue(guard))
	}
	b.AddScope()
	defer b.RemoveScope()
	if guard.Data.(bool) {
		return evalExpression(cond.Then, b)
	}
	return evalExpression(cond.Else, b)
}

// evalApplication applies a head value to the remaining terms of an
// application, one argument at a time.
func evalApplication(exprs []Expression, b *Bindings) (Value, error) {
	head, err := evalExpression(exprs[0], b)
	if err != nil {
		return Nothing, err
	}
	args := exprs[1:]
	i := 0
	for {
		switch head.Tag {
		case VTLambda:
			if i == len(args) {
				return head, nil
			}
			lam := head.Data.(Lambda)
			arg, err := evalExpression(args[i], b)
			if err != nil {
				return Nothing, err
			}
			i++
			b.Bind(lam.Param, arg)
			// a host-call body means this argument saturated the chain
			saturated := lam.Body.Kind == XHostFunction
			head, err = evalExpression(lam.Body, b)
			if err != nil {
				return Nothing, err
			}
			if i < len(args) && head.Tag != VTLambda && head.Tag != VTHostFunction {
				if saturated {
					return Nothing, fmt.Errorf("too many arguments for %s: %d left over", lam.Body.Data.(string), len(args)-i)
				}
				return Nothing, fmt.Errorf("invalid function call: %s is not a function", FormatValue(head))
			}
			if i == len(args) {
				return head, nil
			}
		case VTHostFunction:
			name := head.Data.(string)
			fn := b.ReadHostFunction(name)
			if fn == nil {
				return Nothing, fmt.Errorf("host function %s is not defined", name)
			}
			binding := fn.Binding()
			arity := len(binding.Parameters)
			remaining := len(args) - i
			switch {
			case remaining == 0:
				return head, nil
			case arity == 0:
				// a zero-parameter function is invoked by applying its
				// reference to nothing
				arg, err := evalExpression(args[i], b)
				if err != nil {
					return Nothing, err
				}
				if arg.Tag != VTNothing || remaining > 1 {
					return Nothing, fmt.Errorf("too many arguments for %s: expected 0, found %d", name, remaining)
				}
				return fn.Run(nil, b)
			case remaining > arity:
				return Nothing, fmt.Errorf("too many arguments for %s: expected %d, found %d", name, arity, remaining)
			case remaining == arity:
				arguments := make([]Value, 0, arity)
				for ; i < len(args); i++ {
					v, err := evalExpression(args[i], b)
					if err != nil {
						return Nothing, err
					}
					arguments = append(arguments, v)
				}
				return fn.Run(arguments, b)
			default:
				// partial application through the curried wrapper
				head = hostFunctionLambda(binding)
			}
		default:
			return Nothing, fmt.Errorf("invalid function call: %s is not a function", FormatValue(head))
		}
	}
}

// unescapeString resolves the escape table shared with the lexer and the
// renderer: \n \t \\ \".
func unescapeString(raw string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}
		i++
		if i >= len(raw) {
			return "", fmt.Errorf("unfinished escape sequence in string: %q", raw)
		}
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		default:
			return "", fmt.Errorf("invalid escape sequence: \\%c", raw[i])
		}
	}
	return b.String(), nil
}
