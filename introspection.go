// introspection.go: pipeline introspection for tooling
//
// `Introspect` runs the pipeline up to (but not including) evaluation
// and returns every intermediate representation. The bindings are only
// consulted for token transformers; no scope or registry is mutated, so
// introspecting with a live environment is safe.
package wander

// Introspection holds every stage the pipeline produced for a script.
type Introspection struct {
	Tokens            []Token      // raw stream, trivia included
	FilteredTokens    []Token      // whitespace/comments removed
	TransformedTokens []Token      // after registered transformers
	Elements          []Element    // parser output
	Expressions       []Expression // translator output
}

// Introspect reports each pipeline stage for a script without
// evaluating it.
func Introspect(script string, bindings *Bindings) (Introspection, error) {
	var ix Introspection
	tokens, err := Tokenize(script)
	if err != nil {
		return ix, err
	}
	ix.Tokens = tokens
	ix.FilteredTokens = Filter(tokens)
	transformed, err := bindings.applyTransformers(ix.FilteredTokens)
	if err != nil {
		return ix, err
	}
	ix.TransformedTokens = transformed
	elements, err := Parse(transformed)
	if err != nil {
		return ix, err
	}
	ix.Elements = elements
	expressions, err := Translate(elements)
	if err != nil {
		return ix, err
	}
	ix.Expressions = expressions
	return ix, nil
}
