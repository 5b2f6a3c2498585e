// bindings.go: the evaluation environment
//
// What this file does
// -------------------
// Bindings is the mutable environment a script evaluates against: a
// stack of name scopes, a registry of host functions, and a registry of
// token transformers. One Bindings serves one evaluation at a time;
// concurrent scripts each get their own.
//
// Registering a host function with parameters also binds, under the
// function's qualified name in the root scope, a chain of nested
// single-parameter lambdas whose innermost body is a host-call
// expression. That makes host functions and user lambdas
// indistinguishable to the application machinery and gives host
// functions currying for free: each application binds one more parameter
// into the scope stack, and the innermost host call reads them all back
// by name. Zero-parameter functions cannot be wrapped that way, so they
// bind a bare function reference instead.
package wander

import "sort"

// HostFunction is a function the embedding application exposes to
// scripts.
type HostFunction interface {
	// Run is called with exactly len(Binding().Parameters) evaluated
	// arguments, in declaration order.
	Run(arguments []Value, bindings *Bindings) (Value, error)
	Binding() HostFunctionBinding
}

// Parameter is one named, descriptively typed host-function parameter.
type Parameter struct {
	Name string
	Type Type
}

// HostFunctionBinding describes a host function for scripts and tooling.
type HostFunctionBinding struct {
	Name       string // qualified, e.g. "Bool.not"
	Parameters []Parameter
	Result     Type
	Doc        string
}

// TokenTransformer rewrites the filtered token stream before parsing.
type TokenTransformer func(tokens []Token) ([]Token, error)

// Bindings is the environment scripts evaluate against.
type Bindings struct {
	scopes           []map[string]Value
	hostFunctions    map[string]HostFunction
	transformers     map[string]TokenTransformer
	transformerOrder []string
}

// NewBindings returns an empty environment with one root scope.
func NewBindings() *Bindings {
	return &Bindings{
		scopes:        []map[string]Value{{}},
		hostFunctions: map[string]HostFunction{},
		transformers:  map[string]TokenTransformer{},
	}
}

// AddScope pushes a fresh innermost scope.
func (b *Bindings) AddScope() {
	b.scopes = append(b.scopes, map[string]Value{})
}

// RemoveScope pops the innermost scope. The root scope is never popped.
func (b *Bindings) RemoveScope() {
	if len(b.scopes) > 1 {
		b.scopes = b.scopes[:len(b.scopes)-1]
	}
}

// Bind writes name into the innermost scope, shadowing outer bindings
// and overwriting a same-scope one.
func (b *Bindings) Bind(name string, value Value) {
	b.scopes[len(b.scopes)-1][name] = value
}

// Read resolves name against the scope stack, innermost first.
func (b *Bindings) Read(name string) (Value, bool) {
	for i := len(b.scopes) - 1; i >= 0; i-- {
		if v, ok := b.scopes[i][name]; ok {
			return v, true
		}
	}
	return Nothing, false
}

// BindHostFunction registers fn and binds its callable form under its
// qualified name in the root scope.
func (b *Bindings) BindHostFunction(fn HostFunction) {
	binding := fn.Binding()
	b.hostFunctions[binding.Name] = fn
	if len(binding.Parameters) == 0 {
		b.scopes[0][binding.Name] = Value{Tag: VTHostFunction, Data: binding.Name}
		return
	}
	b.scopes[0][binding.Name] = hostFunctionLambda(binding)
}

// hostFunctionLambda wraps a host-function signature into nested
// single-parameter lambdas ending in a host-call expression.
func hostFunctionLambda(binding HostFunctionBinding) Value {
	expr := Expression{Kind: XHostFunction, Data: binding.Name}
	params := binding.Parameters
	for i := len(params) - 1; i >= 0; i-- {
		expr = Expression{Kind: XLambda, Data: Lambda{
			Param: params[i].Name,
			InTag: params[i].Type.String(),
			Body:  expr,
		}}
	}
	return Value{Tag: VTLambda, Data: expr.Data.(Lambda)}
}

// ReadHostFunction returns the registered function or nil.
func (b *Bindings) ReadHostFunction(name string) HostFunction {
	return b.hostFunctions[name]
}

// HostFunctionBindings returns the metadata of every registered host
// function, sorted by name.
func (b *Bindings) HostFunctionBindings() []HostFunctionBinding {
	out := make([]HostFunctionBinding, 0, len(b.hostFunctions))
	for _, fn := range b.hostFunctions {
		out = append(out, fn.Binding())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BindTokenTransformer registers a transformer under namespace.name.
// Transformers run in registration order; re-registering a name keeps
// its original position.
func (b *Bindings) BindTokenTransformer(namespace, name string, transformer TokenTransformer) {
	key := namespace + "." + name
	if _, ok := b.transformers[key]; !ok {
		b.transformerOrder = append(b.transformerOrder, key)
	}
	b.transformers[key] = transformer
}

// ReadTokenTransformer returns the transformer registered under
// namespace.name, or nil.
func (b *Bindings) ReadTokenTransformer(key string) TokenTransformer {
	return b.transformers[key]
}

// applyTransformers runs every registered transformer over the token
// stream in registration order.
func (b *Bindings) applyTransformers(tokens []Token) ([]Token, error) {
	var err error
	for _, key := range b.transformerOrder {
		tokens, err = b.transformers[key](tokens)
		if err != nil {
			return nil, err
		}
	}
	return tokens, nil
}

// BoundNames returns every name visible from the current scope stack,
// sorted, for completion and tooling.
func (b *Bindings) BoundNames() []string {
	seen := map[string]bool{}
	for _, scope := range b.scopes {
		for name := range scope {
			seen[name] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type hostFunctionFunc struct {
	binding HostFunctionBinding
	run     func(arguments []Value, bindings *Bindings) (Value, error)
}

func (f *hostFunctionFunc) Run(arguments []Value, bindings *Bindings) (Value, error) {
	return f.run(arguments, bindings)
}

func (f *hostFunctionFunc) Binding() HostFunctionBinding { return f.binding }

// NewHostFunction wraps a plain Go function and its metadata into a
// HostFunction.
func NewHostFunction(binding HostFunctionBinding, run func(arguments []Value, bindings *Bindings) (Value, error)) HostFunction {
	return &hostFunctionFunc{binding: binding, run: run}
}
