package wander

import (
	"sort"
	"testing"
)

func TestScopeShadowing(t *testing.T) {
	b := NewBindings()
	b.Bind("x", Int(1))
	b.AddScope()
	b.Bind("x", Int(2))
	if v, _ := b.Read("x"); !Equal(v, Int(2)) {
		t.Fatalf("inner read: %s", FormatValue(v))
	}
	b.RemoveScope()
	if v, _ := b.Read("x"); !Equal(v, Int(1)) {
		t.Fatalf("outer read after pop: %s", FormatValue(v))
	}
}

func TestReadWalksOuterScopes(t *testing.T) {
	b := NewBindings()
	b.Bind("x", Int(1))
	b.AddScope()
	v, ok := b.Read("x")
	if !ok || !Equal(v, Int(1)) {
		t.Fatalf("read through scopes: %v %s", ok, FormatValue(v))
	}
	if _, ok := b.Read("missing"); ok {
		t.Fatal("read of unbound name succeeded")
	}
}

func TestRootScopeIsNeverPopped(t *testing.T) {
	b := NewBindings()
	b.Bind("x", Int(1))
	b.RemoveScope()
	b.RemoveScope()
	if v, ok := b.Read("x"); !ok || !Equal(v, Int(1)) {
		t.Fatalf("root binding lost: %v %s", ok, FormatValue(v))
	}
}

func TestBindOverwritesSameScope(t *testing.T) {
	b := NewBindings()
	b.Bind("x", Int(1))
	b.Bind("x", Int(2))
	if v, _ := b.Read("x"); !Equal(v, Int(2)) {
		t.Fatalf("got %s", FormatValue(v))
	}
}

func TestBindHostFunctionBindsWrapper(t *testing.T) {
	b := Common()
	v, ok := b.Read("Bool.and")
	if !ok || v.Tag != VTLambda {
		t.Fatalf("Bool.and binding: %v %s", ok, FormatValue(v))
	}
	lam := v.Data.(Lambda)
	if lam.Param != "left" {
		t.Fatalf("outer parameter: %q", lam.Param)
	}
	inner := lam.Body
	if inner.Kind != XLambda || inner.Data.(Lambda).Param != "right" {
		t.Fatalf("inner lambda: %s", inner)
	}
	if body := inner.Data.(Lambda).Body; body.Kind != XHostFunction || body.Data != "Bool.and" {
		t.Fatalf("innermost body: %s", body)
	}
}

func TestReadHostFunction(t *testing.T) {
	b := Common()
	if b.ReadHostFunction("Bool.not") == nil {
		t.Fatal("Bool.not not registered")
	}
	if b.ReadHostFunction("No.such") != nil {
		t.Fatal("unexpected registration")
	}
}

func TestHostFunctionBindingsSorted(t *testing.T) {
	bindings := Common().HostFunctionBindings()
	if len(bindings) == 0 {
		t.Fatal("no host functions registered")
	}
	names := make([]string, len(bindings))
	for i, hb := range bindings {
		names[i] = hb.Name
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("not sorted: %v", names)
	}
}

func TestBoundNames(t *testing.T) {
	b := Common()
	b.AddScope()
	b.Bind("local", Int(1))
	names := b.BoundNames()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("not sorted: %v", names)
	}
	has := func(want string) bool {
		for _, n := range names {
			if n == want {
				return true
			}
		}
		return false
	}
	if !has("local") || !has("Bool.and") {
		t.Fatalf("missing names in %v", names)
	}
}

func replaceNameWith(name string, replacement Token) TokenTransformer {
	return func(tokens []Token) ([]Token, error) {
		out := make([]Token, 0, len(tokens))
		for _, tok := range tokens {
			if tok.Kind == NAME && tok.Literal == name {
				tok = replacement
			}
			out = append(out, tok)
		}
		return out, nil
	}
}

func TestTokenTransformer(t *testing.T) {
	b := Common()
	b.BindTokenTransformer("test", "answer", replaceNameWith("answer",
		Token{Kind: INT, Lexeme: "42", Literal: int64(42)}))
	v, err := Run("answer", b)
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, Int(42))
}

func TestTokenTransformersRunInRegistrationOrder(t *testing.T) {
	b := Common()
	b.BindTokenTransformer("test", "first", replaceNameWith("a",
		Token{Kind: NAME, Lexeme: "b", Literal: "b"}))
	b.BindTokenTransformer("test", "second", replaceNameWith("b",
		Token{Kind: INT, Lexeme: "1", Literal: int64(1)}))
	v, err := Run("a", b)
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, Int(1))
}

func TestReadTokenTransformer(t *testing.T) {
	b := NewBindings()
	if b.ReadTokenTransformer("test.none") != nil {
		t.Fatal("unexpected transformer")
	}
	b.BindTokenTransformer("test", "id", func(tokens []Token) ([]Token, error) {
		return tokens, nil
	})
	if b.ReadTokenTransformer("test.id") == nil {
		t.Fatal("transformer not registered")
	}
}
