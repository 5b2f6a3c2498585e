// Package wander is an embeddable interpreter for the Wander expression
// language.
//
// A script runs through a fixed pipeline: Tokenize -> Filter ->
// registered token transformers -> Parse -> Translate -> Eval. `Run`
// drives the whole pipeline against a *Bindings environment that the
// embedding application populates with host functions; `Introspect`
// runs everything but evaluation and returns each intermediate stage.
//
//	bindings := wander.Common()
//	value, err := wander.Run(`Bool.and true false`, bindings)
//	if err != nil { ... }
//	fmt.Println(wander.FormatValue(value)) // false
package wander

// Version is the interpreter version.
const Version = "0.1.0"

// Run executes a Wander script against the given environment and
// returns its final value.
func Run(script string, bindings *Bindings) (Value, error) {
	tokens, err := Tokenize(script)
	if err != nil {
		return Nothing, err
	}
	transformed, err := bindings.applyTransformers(Filter(tokens))
	if err != nil {
		return Nothing, err
	}
	elements, err := Parse(transformed)
	if err != nil {
		return Nothing, err
	}
	expressions, err := Translate(elements)
	if err != nil {
		return Nothing, err
	}
	return Eval(expressions, bindings)
}
