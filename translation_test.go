package wander

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func translateSrc(t *testing.T, src string) []Expression {
	t.Helper()
	expressions, err := Translate(parseSrc(t, src))
	if err != nil {
		t.Fatalf("Translate(%q): %v", src, err)
	}
	return expressions
}

func wantExpressions(t *testing.T, got, want []Expression) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected translation:\n%s", strings.Join(pretty.Diff(want, got), "\n"))
	}
}

// expression builders

func app(exprs ...Expression) Expression { return Expression{Kind: XApplication, Data: exprs} }
func xnm(name string) Expression         { return Expression{Kind: XName, Data: name} }
func xbl(v bool) Expression              { return Expression{Kind: XBoolean, Data: v} }
func xnum(n int64) Expression            { return Expression{Kind: XInt, Data: n} }

func TestTranslateCollapsesSingleTermGroupings(t *testing.T) {
	wantExpressions(t, translateSrc(t, "5"), []Expression{xnum(5)})
	wantExpressions(t, translateSrc(t, "(((5)))"), []Expression{xnum(5)})
}

func TestTranslateApplication(t *testing.T) {
	wantExpressions(t, translateSrc(t, "f 5"),
		[]Expression{app(xnm("f"), xnum(5))})
}

func TestTranslateNestedApplication(t *testing.T) {
	wantExpressions(t, translateSrc(t, "(f 5) 6"),
		[]Expression{app(app(xnm("f"), xnum(5)), xnum(6))})
}

func TestTranslatePipe(t *testing.T) {
	wantExpressions(t, translateSrc(t, "false >> Bool.not"),
		[]Expression{app(xnm("Bool.not"), xbl(false))})
}

func TestTranslatePipeChain(t *testing.T) {
	wantExpressions(t, translateSrc(t, "1 >> f >> g"),
		[]Expression{app(xnm("g"), app(xnm("f"), xnum(1)))})
}

func TestTranslatePipeAppendsTrailingArguments(t *testing.T) {
	wantExpressions(t, translateSrc(t, "false >> Bool.and true"),
		[]Expression{app(xnm("Bool.and"), xbl(true), xbl(false))})
}

func TestTranslatePipeParenthesizedRight(t *testing.T) {
	wantExpressions(t, translateSrc(t, "false >> (Bool.and true)"),
		[]Expression{app(xnm("Bool.and"), xbl(true), xbl(false))})
}

func TestTranslatePipeMissingRight(t *testing.T) {
	_, err := Translate(parseSrc(t, "false >>"))
	if err == nil || !strings.Contains(err.Error(), "invalid pipe") {
		t.Fatalf("expected invalid pipe error, got %v", err)
	}
}

func TestTranslatePipeInsideLetBody(t *testing.T) {
	exprs := translateSrc(t, "let val x = false in x >> Bool.not end")
	let := exprs[0].Data.(LetExpression)
	wantExpressions(t, []Expression{let.Body},
		[]Expression{app(xnm("Bool.not"), xnm("x"))})
}

func TestTranslateLambdaBody(t *testing.T) {
	wantExpressions(t, translateSrc(t, `\x -> Bool.not x`),
		[]Expression{{Kind: XLambda, Data: Lambda{
			Param: "x",
			Body:  app(xnm("Bool.not"), xnm("x")),
		}}})
}

func TestTranslateLet(t *testing.T) {
	wantExpressions(t, translateSrc(t, "let val x = 5 in x end"),
		[]Expression{{Kind: XLet, Data: LetExpression{
			Bindings: []ValBindingExpression{{Name: "x", Value: xnum(5)}},
			Body:     xnm("x"),
		}}})
}

func TestTranslateConditional(t *testing.T) {
	wantExpressions(t, translateSrc(t, "if true then 1 else 2 end"),
		[]Expression{{Kind: XConditional, Data: ConditionalExpression{
			Cond: xbl(true),
			Then: xnum(1),
			Else: xnum(2),
		}}})
}

func TestTranslateCollections(t *testing.T) {
	wantExpressions(t, translateSrc(t, "[1 2]"),
		[]Expression{{Kind: XList, Data: []Expression{xnum(1), xnum(2)}}})
	wantExpressions(t, translateSrc(t, "{a: 24}"),
		[]Expression{{Kind: XRecord, Data: map[string]Expression{"a": xnum(24)}}})
}

func TestTranslateEmptyParens(t *testing.T) {
	wantExpressions(t, translateSrc(t, "()"), []Expression{nothingExpression})
}
