package wander

import "testing"

func TestIntrospectStages(t *testing.T) {
	b := Common()
	ix, err := Introspect("let val x = 5 in x end -- done", b)
	if err != nil {
		t.Fatal(err)
	}
	if len(ix.Tokens) <= len(ix.FilteredTokens) {
		t.Fatalf("trivia missing from raw stream: %d vs %d", len(ix.Tokens), len(ix.FilteredTokens))
	}
	if len(ix.TransformedTokens) != len(ix.FilteredTokens) {
		t.Fatalf("no transformers registered but streams differ")
	}
	if len(ix.Elements) != 1 || ix.Elements[0].Kind != ELet {
		t.Fatalf("unexpected elements: %v", ix.Elements)
	}
	if len(ix.Expressions) != 1 || ix.Expressions[0].Kind != XLet {
		t.Fatalf("unexpected expressions: %v", ix.Expressions)
	}
}

func TestIntrospectAppliesTransformers(t *testing.T) {
	b := Common()
	b.BindTokenTransformer("test", "answer", replaceNameWith("answer",
		Token{Kind: INT, Lexeme: "42", Literal: int64(42)}))
	ix, err := Introspect("answer", b)
	if err != nil {
		t.Fatal(err)
	}
	if ix.FilteredTokens[0].Kind != NAME {
		t.Fatalf("filtered stream should be pre-transform: %v", ix.FilteredTokens)
	}
	if ix.TransformedTokens[0].Kind != INT {
		t.Fatalf("transformed stream: %v", ix.TransformedTokens)
	}
}

func TestIntrospectReportsErrors(t *testing.T) {
	if _, err := Introspect(`"unterminated`, Common()); err == nil {
		t.Fatal("expected a lexical error")
	}
	if _, err := Introspect("(", Common()); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestIntrospectLeavesBindingsUntouched(t *testing.T) {
	b := Common()
	before := len(b.BoundNames())
	if _, err := Introspect("let val x = 5 in x end", b); err != nil {
		t.Fatal(err)
	}
	if after := len(b.BoundNames()); after != before {
		t.Fatalf("bindings changed: %d -> %d", before, after)
	}
}
