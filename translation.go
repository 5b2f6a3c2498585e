// translation.go: Element -> Expression lowering and pipe resolution
//
// What this file does
// -------------------
// `Translate` lowers the parser's surface tree into the evaluator's
// Expression tree. Two things happen on the way down:
//
//  1. Pipe resolution. Within every grouping, `a >> f b` rewrites to the
//     grouping `f b a`: the terms accumulated left of the `>>` become the
//     trailing arguments of the right-hand side. Chains fold left, so
//     `a >> f >> g` becomes `g (f a)`. A right-hand side that is a single
//     parenthesized grouping is spliced open first.
//
//  2. Grouping -> Application. A grouping with a single term collapses to
//     that term; anything longer becomes an Application evaluated by
//     juxtaposition.
//
// A Forward element that survives outside a grouping is rejected; the
// parser only emits them inside groupings.
package wander

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ExprKind discriminates the Expression union.
type ExprKind int

const (
	XNothing ExprKind = iota
	XBoolean
	XInt
	XString
	XName
	XTaggedName
	XHostFunction
	XLet
	XApplication
	XConditional
	XLambda
	XTuple
	XList
	XSet
	XRecord
)

// Expression is a node of the evaluator's tree.
//
// Data payloads by kind:
//
//	XNothing       nil
//	XBoolean       bool
//	XInt           int64
//	XString        string (raw literal text, escapes intact)
//	XName          string
//	XTaggedName    TaggedName
//	XHostFunction  string (qualified host-function name)
//	XLet           LetExpression
//	XApplication   []Expression
//	XConditional   ConditionalExpression
//	XLambda        Lambda
//	XTuple, XList  []Expression
//	XSet           []Expression
//	XRecord        map[string]Expression
type Expression struct {
	Kind ExprKind
	Data interface{}
}

// ValBindingExpression is a lowered `val` declaration.
type ValBindingExpression struct {
	Name  string
	Tag   string
	Value Expression
}

// LetExpression is a lowered let scope.
type LetExpression struct {
	Bindings []ValBindingExpression
	Body     Expression
}

// ConditionalExpression is a lowered conditional.
type ConditionalExpression struct {
	Cond Expression
	Then Expression
	Else Expression
}

var nothingExpression = Expression{Kind: XNothing}

// Translate lowers the parsed elements into expressions, resolving pipes
// on the way.
func Translate(elements []Element) ([]Expression, error) {
	out := make([]Expression, 0, len(elements))
	for _, el := range elements {
		expr, err := express(el)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

// processPipes folds `>>` terms inside a grouping. Everything accumulated
// left of a Forward is appended as trailing arguments of the terms to its
// right (up to the next Forward), and the combined grouping becomes the
// new accumulation.
func processPipes(items []Element) ([]Element, error) {
	var results []Element
	for i := 0; i < len(items); i++ {
		el := items[i]
		if el.Kind != EForward {
			results = append(results, el)
			continue
		}
		j := i + 1
		for j < len(items) && items[j].Kind != EForward {
			j++
		}
		rhs := items[i+1 : j]
		if len(rhs) == 0 {
			return nil, errors.New("invalid pipe: missing right-hand side")
		}
		if len(rhs) == 1 && rhs[0].Kind == EGrouping {
			rhs = rhs[0].Data.([]Element)
		}
		combined := make([]Element, 0, len(rhs)+len(results))
		combined = append(combined, rhs...)
		combined = append(combined, results...)
		results = []Element{{Kind: EGrouping, Data: combined}}
		i = j - 1
	}
	return results, nil
}

func express(el Element) (Expression, error) {
	switch el.Kind {
	case ENothing:
		return nothingExpression, nil
	case EBoolean:
		return Expression{Kind: XBoolean, Data: el.Data}, nil
	case EInt:
		return Expression{Kind: XInt, Data: el.Data}, nil
	case EString:
		return Expression{Kind: XString, Data: el.Data}, nil
	case EName:
		return Expression{Kind: XName, Data: el.Data}, nil
	case ETaggedName:
		return Expression{Kind: XTaggedName, Data: el.Data}, nil
	case EHostFunction:
		return Expression{Kind: XHostFunction, Data: el.Data}, nil
	case EGrouping:
		return expressGrouping(el.Data.([]Element))
	case ELet:
		ls := el.Data.(LetScope)
		bindings := make([]ValBindingExpression, len(ls.Bindings))
		for i, vb := range ls.Bindings {
			value, err := express(vb.Value)
			if err != nil {
				return Expression{}, err
			}
			bindings[i] = ValBindingExpression{Name: vb.Name, Tag: vb.Tag, Value: value}
		}
		body, err := express(ls.Body)
		if err != nil {
			return Expression{}, err
		}
		return Expression{Kind: XLet, Data: LetExpression{Bindings: bindings, Body: body}}, nil
	case EConditional:
		cond := el.Data.(Conditional)
		c, err := express(cond.Cond)
		if err != nil {
			return Expression{}, err
		}
		t, err := express(cond.Then)
		if err != nil {
			return Expression{}, err
		}
		e, err := express(cond.Else)
		if err != nil {
			return Expression{}, err
		}
		return Expression{Kind: XConditional, Data: ConditionalExpression{Cond: c, Then: t, Else: e}}, nil
	case ELambda:
		lam := el.Data.(LambdaElement)
		body, err := express(lam.Body)
		if err != nil {
			return Expression{}, err
		}
		return Expression{Kind: XLambda, Data: Lambda{Param: lam.Param, InTag: lam.InTag, OutTag: lam.OutTag, Body: body}}, nil
	case ETuple:
		items, err := expressSlice(el.Data.([]Element))
		if err != nil {
			return Expression{}, err
		}
		return Expression{Kind: XTuple, Data: items}, nil
	case EList:
		items, err := expressSlice(el.Data.([]Element))
		if err != nil {
			return Expression{}, err
		}
		return Expression{Kind: XList, Data: items}, nil
	case ESet:
		items, err := expressSlice(el.Data.([]Element))
		if err != nil {
			return Expression{}, err
		}
		return Expression{Kind: XSet, Data: items}, nil
	case ERecord:
		fields := el.Data.(map[string]Element)
		out := make(map[string]Expression, len(fields))
		for name, value := range fields {
			expr, err := express(value)
			if err != nil {
				return Expression{}, err
			}
			out[name] = expr
		}
		return Expression{Kind: XRecord, Data: out}, nil
	case EForward:
		return Expression{}, errors.New("unresolved pipe outside of a grouping")
	default:
		return Expression{}, fmt.Errorf("cannot translate element: %s", el)
	}
}

// expressGrouping resolves pipes, lowers each term, and collapses
// single-term groupings to their content.
func expressGrouping(items []Element) (Expression, error) {
	resolved, err := processPipes(items)
	if err != nil {
		return Expression{}, err
	}
	exprs, err := expressSlice(resolved)
	if err != nil {
		return Expression{}, err
	}
	switch len(exprs) {
	case 0:
		return nothingExpression, nil
	case 1:
		return exprs[0], nil
	default:
		return Expression{Kind: XApplication, Data: exprs}, nil
	}
}

func expressSlice(els []Element) ([]Expression, error) {
	out := make([]Expression, 0, len(els))
	for _, el := range els {
		expr, err := express(el)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

/* ===========================
   Rendering (introspection)
   =========================== */

// String renders the expression as a compact s-expression for tooling.
func (e Expression) String() string {
	switch e.Kind {
	case XNothing:
		return "nothing"
	case XBoolean:
		return strconv.FormatBool(e.Data.(bool))
	case XInt:
		return strconv.FormatInt(e.Data.(int64), 10)
	case XString:
		return `"` + e.Data.(string) + `"`
	case XName:
		return e.Data.(string)
	case XTaggedName:
		tn := e.Data.(TaggedName)
		return tn.Name + ":" + tn.Tag
	case XHostFunction:
		return "[host " + e.Data.(string) + "]"
	case XLet:
		let := e.Data.(LetExpression)
		var b strings.Builder
		b.WriteString("(let")
		for _, vb := range let.Bindings {
			b.WriteString(" (val " + vb.Name)
			if vb.Tag != "" {
				b.WriteString(":" + vb.Tag)
			}
			b.WriteString(" " + vb.Value.String() + ")")
		}
		b.WriteString(" " + let.Body.String() + ")")
		return b.String()
	case XApplication:
		return "(apply " + joinExpressions(e.Data.([]Expression)) + ")"
	case XConditional:
		cond := e.Data.(ConditionalExpression)
		return "(if " + cond.Cond.String() + " " + cond.Then.String() + " " + cond.Else.String() + ")"
	case XLambda:
		lam := e.Data.(Lambda)
		return "(lambda " + lam.Param + " " + lam.Body.String() + ")"
	case XTuple:
		return "'(" + joinExpressions(e.Data.([]Expression)) + ")"
	case XList:
		return "[" + joinExpressions(e.Data.([]Expression)) + "]"
	case XSet:
		return "#(" + joinExpressions(e.Data.([]Expression)) + ")"
	case XRecord:
		fields := e.Data.(map[string]Expression)
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = name + ": " + fields[name].String()
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		return fmt.Sprintf("Expression(%d)", int(e.Kind))
	}
}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = expr.String()
	}
	return strings.Join(parts, " ")
}
