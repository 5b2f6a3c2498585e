package wander

import (
	"errors"
	"strings"
	"testing"
)

func runCommon(t *testing.T, src string) Value {
	t.Helper()
	v, err := Run(src, Common())
	if err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return v
}

func wantValue(t *testing.T, got, want Value) {
	t.Helper()
	if !Equal(got, want) {
		t.Fatalf("got %s, want %s", FormatValue(got), FormatValue(want))
	}
}

func wantRunError(t *testing.T, src, substr string) {
	t.Helper()
	_, err := Run(src, Common())
	if err == nil {
		t.Fatalf("Run(%q): expected error containing %q", src, substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Fatalf("Run(%q): error %q does not contain %q", src, err, substr)
	}
}

func TestEvalLiterals(t *testing.T) {
	wantValue(t, runCommon(t, "true"), Bool(true))
	wantValue(t, runCommon(t, "-7"), Int(-7))
	wantValue(t, runCommon(t, `"hi"`), Str("hi"))
	wantValue(t, runCommon(t, "nothing"), Nothing)
	wantValue(t, runCommon(t, "?"), Nothing)
	wantValue(t, runCommon(t, ""), Nothing)
}

func TestEvalStringUnescapes(t *testing.T) {
	wantValue(t, runCommon(t, `"a\nb\tc\\d\"e"`), Str("a\nb\tc\\d\"e"))
}

func TestEvalBasicLet(t *testing.T) {
	wantValue(t, runCommon(t, "let val x = 5 in x end"), Int(5))
}

func TestEvalLetSequentialBindings(t *testing.T) {
	wantValue(t, runCommon(t, "let val x = true val y = Bool.and x in y x end"), Bool(true))
}

func TestEvalNestedLets(t *testing.T) {
	src := `let
  val x = true
  val y = let val z = Bool.and x false in Bool.and x z end
in y end`
	wantValue(t, runCommon(t, src), Bool(false))
}

func TestEvalLetWithoutBody(t *testing.T) {
	wantValue(t, runCommon(t, "let val x = 5"), Nothing)
}

func TestEvalLetScopeDiscipline(t *testing.T) {
	wantRunError(t, "let val x = 5 in x end x", "unbound name: x")
}

func TestEvalTopLevelSequenceLastWins(t *testing.T) {
	wantValue(t, runCommon(t, "let val x = 5 in x end let val y = 7 in y end"), Int(7))
}

func TestEvalConditional(t *testing.T) {
	wantValue(t, runCommon(t, "if true then 1 else 2 end"), Int(1))
	wantValue(t, runCommon(t, "if false then 1 else 2 end"), Int(2))
}

func TestEvalConditionalRequiresBoolean(t *testing.T) {
	wantRunError(t, "if 5 then 1 else 2 end", "conditional requires a Boolean value")
}

func TestEvalConditionalSkipsUntakenBranch(t *testing.T) {
	wantValue(t, runCommon(t, "if true then 1 else missingName end"), Int(1))
	wantValue(t, runCommon(t, "if false then missingName else 2 end"), Int(2))
}

func TestEvalHostFunctionApplication(t *testing.T) {
	wantValue(t, runCommon(t, "Bool.not true"), Bool(false))
	wantValue(t, runCommon(t, "Bool.and true false"), Bool(false))
	wantValue(t, runCommon(t, "Bool.or false true"), Bool(true))
}

func TestEvalHostFunctionPartialApplication(t *testing.T) {
	v := runCommon(t, "let val f = Bool.and true in f end")
	if v.Tag != VTLambda {
		t.Fatalf("expected a lambda, got %s", FormatValue(v))
	}
	wantValue(t, runCommon(t, "let val f = Bool.and true in f false end"), Bool(false))
	wantValue(t, runCommon(t, "let val f = Bool.and true in f true end"), Bool(true))
}

func TestEvalTooManyArguments(t *testing.T) {
	wantRunError(t, "Bool.not true false", "too many arguments for Bool.not")
	wantRunError(t, "Bool.and true false true", "too many arguments")
}

func TestEvalNonFunctionCall(t *testing.T) {
	wantRunError(t, "true false", "is not a function")
	wantRunError(t, "5 6", "is not a function")
}

func TestEvalBareHostFunctionReference(t *testing.T) {
	v := runCommon(t, "Bool.not")
	if v.Tag != VTLambda {
		t.Fatalf("expected the curried wrapper, got %s", FormatValue(v))
	}
}

func TestEvalLambda(t *testing.T) {
	wantValue(t, runCommon(t, `let val id = \x -> x in id 5 end`), Int(5))
}

func TestEvalLambdaCurrying(t *testing.T) {
	src := `let
  val and2 = \a b -> Bool.and a b
  val isTrue = and2 true
in isTrue true end`
	wantValue(t, runCommon(t, src), Bool(true))
}

func TestEvalLambdaValue(t *testing.T) {
	v := runCommon(t, `\x -> x`)
	if v.Tag != VTLambda {
		t.Fatalf("expected a lambda, got %s", FormatValue(v))
	}
	lam := v.Data.(Lambda)
	if lam.Param != "x" {
		t.Fatalf("unexpected parameter: %q", lam.Param)
	}
}

// Lambda application binds the parameter into the current scope and the
// body resolves names there, so a name that was unbound when the lambda
// was written can still resolve at call time.
func TestDynamicScopeResolution(t *testing.T) {
	src := `let
  val f = \x -> y
  val y = 5
in f 1 end`
	wantValue(t, runCommon(t, src), Int(5))
}

func TestEvalPipe(t *testing.T) {
	wantValue(t, runCommon(t, "false >> Bool.not"), Bool(true))
	wantValue(t, runCommon(t, "false >> Bool.not >> Bool.not"), Bool(false))
	wantValue(t, runCommon(t, "false >> Bool.and true"), Bool(false))
}

func TestEvalCollections(t *testing.T) {
	wantValue(t, runCommon(t, "[1 2 3]"), List([]Value{Int(1), Int(2), Int(3)}))
	wantValue(t, runCommon(t, "'(1 true)"), Tuple([]Value{Int(1), Bool(true)}))
	wantValue(t, runCommon(t, "{a: 24}"), Record(map[string]Value{"a": Int(24)}))
}

func TestEvalSetDeduplicates(t *testing.T) {
	wantValue(t, runCommon(t, "#(1 2 2 3 1)"), Set([]Value{Int(1), Int(2), Int(3)}))
}

func TestEvalSetEqualityIgnoresOrder(t *testing.T) {
	a := runCommon(t, "#(1 2 3)")
	b := runCommon(t, "#(3 1 2)")
	wantValue(t, a, b)
}

func TestEvalRecordFieldAccess(t *testing.T) {
	wantValue(t, runCommon(t, "let val r = {a: 24} in r.a end"), Int(24))
	wantValue(t, runCommon(t, "let val r = {a: {b: 1}} in r.a.b end"), Int(1))
}

func TestEvalRecordFieldErrors(t *testing.T) {
	wantRunError(t, "let val r = {a: 24} in r.b end", "could not find field b in record r")
	wantRunError(t, "let val x = 5 in x.a end", "x is not a record")
	wantRunError(t, "q.a", "unbound name: q.a")
}

func TestEvalCollectionElementsEvaluate(t *testing.T) {
	wantValue(t, runCommon(t, "[(Bool.not true) 2]"), List([]Value{Bool(false), Int(2)}))
	wantValue(t, runCommon(t, "{a: (Bool.not false)}"), Record(map[string]Value{"a": Bool(true)}))
}

func TestEvalZeroParameterHostFunction(t *testing.T) {
	b := Common()
	b.BindHostFunction(NewHostFunction(HostFunctionBinding{
		Name:   "Sys.version",
		Result: StringType,
		Doc:    "Report the interpreter version.",
	}, func(_ []Value, _ *Bindings) (Value, error) {
		return Str(Version), nil
	}))

	v, err := Run("Sys.version nothing", b)
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, Str(Version))

	// the bare name is a reference, not an invocation
	ref, err := Run("Sys.version", b)
	if err != nil {
		t.Fatal(err)
	}
	if ref.Tag != VTHostFunction {
		t.Fatalf("expected a function reference, got %s", FormatValue(ref))
	}

	if _, err := Run("Sys.version 5", b); err == nil {
		t.Fatal("expected an arity error")
	}
}

func TestEvalHostValuePassthrough(t *testing.T) {
	type box struct{ n int64 }
	b := Common()
	b.BindHostFunction(NewHostFunction(HostFunctionBinding{
		Name:       "Box.new",
		Parameters: []Parameter{{Name: "start", Type: IntType}},
		Result:     AnyType,
		Doc:        "Wrap an integer in an opaque box.",
	}, func(arguments []Value, _ *Bindings) (Value, error) {
		return Host(&box{n: arguments[0].Data.(int64)}), nil
	}))
	b.BindHostFunction(NewHostFunction(HostFunctionBinding{
		Name:       "Box.value",
		Parameters: []Parameter{{Name: "boxed", Type: AnyType}},
		Result:     IntType,
		Doc:        "Read the integer back out of a box.",
	}, func(arguments []Value, _ *Bindings) (Value, error) {
		hv, ok := arguments[0].Data.(HostValue)
		if !ok || arguments[0].Tag != VTHostValue {
			return Nothing, errors.New("Box.value requires a boxed value")
		}
		return Int(hv.Data.(*box).n), nil
	}))

	v, err := Run("Box.value (Box.new 3)", b)
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, Int(3))
}

func TestEvalErrorsShortCircuit(t *testing.T) {
	wantRunError(t, "[1 missingName 3]", "unbound name")
	wantRunError(t, "let val x = missingName in 1 end", "unbound name")
	wantRunError(t, "Bool.and (Bool.not 5) true", "Bool.not requires a Boolean value")
}

func TestUnescapeString(t *testing.T) {
	got, err := unescapeString(`a\nb`)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a\nb" {
		t.Fatalf("got %q", got)
	}
	if _, err := unescapeString(`a\qb`); err == nil {
		t.Fatal("expected error")
	}
}
