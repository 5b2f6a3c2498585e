// parser.go: backtracking recursive-descent parser producing Elements
//
// What this file does
// -------------------
// Consumes a filtered []Token (no whitespace/comment tokens) and produces
// a flat []Element, the surface syntax tree. Alternatives are tried in
// fixed order through `attempt`, which snapshots the cursor position and
// restores it when a production declines, so failed alternatives never
// leak consumed tokens. Production order encodes precedence: bracketed
// forms are tried before bare names so `#(` never lexes as a set opener
// followed by a stray paren, and `let` is tried before plain groupings.
//
// Grammar sketch (one production per function below):
//
//	script      := element*
//	element     := letScope | grouping
//	grouping    := (inner | ">>")+              adjacent terms, kept flat
//	inner       := tuple | set | record | name | boolean | nothing
//	             | int | string | letScope | grouped | conditional
//	             | lambda | list
//	letScope    := "let" valBinding* ["in" element? "end"]
//	valBinding  := "val" NAME [":" NAME] "=" element
//	grouped     := "(" (inner | ">>")* ")"
//	conditional := "if" element "then" element "else" element "end"
//	lambda      := "\" (NAME [":" NAME])+ "->" element
//	list        := "[" inner* "]"
//	tuple       := "'" "(" inner* ")"
//	set         := "#" "(" inner* ")"
//	record      := "{" (NAME ":" inner)* "}"
//
// A `let` without `in ... end` is accepted and given a Nothing body.
// Multi-parameter lambdas desugar right-to-left into nested
// single-parameter lambdas. `>>` survives parsing as a Forward element;
// the translator resolves it (translation.go).
package wander

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ElementKind discriminates the Element union.
type ElementKind int

const (
	ENothing ElementKind = iota
	EBoolean
	EInt
	EString
	EName
	ETaggedName
	EHostFunction
	ELet
	EGrouping
	EConditional
	ELambda
	ETuple
	EList
	ESet
	ERecord
	EForward
)

// Element is a node of the surface syntax tree.
//
// Data payloads by kind:
//
//	ENothing       nil
//	EBoolean       bool
//	EInt           int64
//	EString        string (raw literal text, escapes intact)
//	EName          string
//	ETaggedName    TaggedName
//	EHostFunction  string (qualified host-function name)
//	ELet           LetScope
//	EGrouping      []Element
//	EConditional   Conditional
//	ELambda        LambdaElement
//	ETuple, EList  []Element
//	ESet           []Element (source order, duplicates kept)
//	ERecord        map[string]Element (duplicate fields: last write wins)
//	EForward       nil
type Element struct {
	Kind ElementKind
	Data interface{}
}

// TaggedName is a name with a declared (unchecked) tag, `x : Int`.
type TaggedName struct {
	Name string
	Tag  string
}

// ValBinding is one `val name [: tag] = value` declaration.
type ValBinding struct {
	Name  string
	Tag   string // "" when undeclared
	Value Element
}

// LetScope is a `let ... in body end` block.
type LetScope struct {
	Bindings []ValBinding
	Body     Element
}

// Conditional is `if cond then then else els end`.
type Conditional struct {
	Cond Element
	Then Element
	Else Element
}

// LambdaElement is a single-parameter lambda at the syntax layer.
type LambdaElement struct {
	Param  string
	InTag  string
	OutTag string
	Body   Element
}

var nothingElement = Element{Kind: ENothing}

// ----- errors -----

type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// ----- cursor -----

// cursor is a snapshot-index reader over the token slice. Backtracking is
// restoring pos; nothing else is mutable.
type cursor struct {
	tokens []Token
	pos    int
}

func (c *cursor) done() bool { return c.pos >= len(c.tokens) }

func (c *cursor) peekKind() (TokenKind, bool) {
	if c.done() {
		return 0, false
	}
	return c.tokens[c.pos].Kind, true
}

// match consumes the next token when it has the wanted kind.
func (c *cursor) match(kind TokenKind) bool {
	if k, ok := c.peekKind(); ok && k == kind {
		c.pos++
		return true
	}
	return false
}

// take consumes and returns the next token when it has the wanted kind.
func (c *cursor) take(kind TokenKind) (Token, bool) {
	if k, ok := c.peekKind(); ok && k == kind {
		tok := c.tokens[c.pos]
		c.pos++
		return tok, true
	}
	return Token{}, false
}

// attempt runs a production and rewinds the cursor when it declines.
func attempt[T any](c *cursor, production func(*cursor) (T, bool)) (T, bool) {
	save := c.pos
	v, ok := production(c)
	if !ok {
		c.pos = save
	}
	return v, ok
}

// Parse consumes a filtered token stream and returns the top-level
// elements in source order.
func Parse(tokens []Token) ([]Element, error) {
	c := &cursor{tokens: tokens}
	var out []Element
	for !c.done() {
		el, ok := attempt(c, (*cursor).element)
		if !ok {
			return nil, c.noMatchError()
		}
		out = append(out, el)
	}
	return out, nil
}

func (c *cursor) noMatchError() error {
	tok := c.tokens[c.pos]
	rest := c.tokens[c.pos:]
	if len(rest) > 5 {
		rest = rest[:5]
	}
	lexemes := make([]string, len(rest))
	for i, t := range rest {
		lexemes[i] = t.Lexeme
	}
	return &ParseError{
		Line: tok.Line,
		Col:  tok.Col,
		Msg:  fmt.Sprintf("no grammar rule matched near: %s", strings.Join(lexemes, " ")),
	}
}

// ----- productions -----

func (c *cursor) element() (Element, bool) {
	if el, ok := attempt(c, (*cursor).letScope); ok {
		return el, true
	}
	return attempt(c, (*cursor).grouping)
}

var innerProductions []func(*cursor) (Element, bool)

func init() {
	innerProductions = []func(*cursor) (Element, bool){
		(*cursor).tuple,
		(*cursor).set,
		(*cursor).record,
		(*cursor).name,
		(*cursor).boolean,
		(*cursor).nothing,
		(*cursor).integer,
		(*cursor).str,
		(*cursor).letScope,
		(*cursor).groupedApplication,
		(*cursor).conditional,
		(*cursor).lambda,
		(*cursor).list,
	}
}

func (c *cursor) elementInner() (Element, bool) {
	for _, production := range innerProductions {
		if el, ok := attempt(c, production); ok {
			return el, true
		}
	}
	return Element{}, false
}

// groupItem admits pipes between the terms of a grouping.
func (c *cursor) groupItem() (Element, bool) {
	if c.match(FORWARD) {
		return Element{Kind: EForward}, true
	}
	return c.elementInner()
}

// grouping collects one or more adjacent terms into a flat EGrouping.
// Single-term groupings are collapsed later by the translator.
func (c *cursor) grouping() (Element, bool) {
	var items []Element
	for {
		el, ok := attempt(c, (*cursor).groupItem)
		if !ok {
			break
		}
		items = append(items, el)
	}
	if len(items) == 0 {
		return Element{}, false
	}
	return Element{Kind: EGrouping, Data: items}, true
}

func (c *cursor) boolean() (Element, bool) {
	if tok, ok := c.take(BOOLEAN); ok {
		return Element{Kind: EBoolean, Data: tok.Literal.(bool)}, true
	}
	return Element{}, false
}

func (c *cursor) integer() (Element, bool) {
	if tok, ok := c.take(INT); ok {
		return Element{Kind: EInt, Data: tok.Literal.(int64)}, true
	}
	return Element{}, false
}

func (c *cursor) str() (Element, bool) {
	if tok, ok := c.take(STRING); ok {
		return Element{Kind: EString, Data: tok.Literal.(string)}, true
	}
	return Element{}, false
}

// nothing matches both the keyword and its `?` shorthand.
func (c *cursor) nothing() (Element, bool) {
	if c.match(NOTHING) || c.match(QUESTION) {
		return nothingElement, true
	}
	return Element{}, false
}

// name matches a (possibly dotted) name, optionally with a `: Tag`.
func (c *cursor) name() (Element, bool) {
	tok, ok := c.take(NAME)
	if !ok {
		return Element{}, false
	}
	save := c.pos
	if c.match(COLON) {
		if tag, ok := c.take(NAME); ok {
			return Element{Kind: ETaggedName, Data: TaggedName{Name: tok.Literal.(string), Tag: tag.Literal.(string)}}, true
		}
		c.pos = save
	}
	return Element{Kind: EName, Data: tok.Literal.(string)}, true
}

func (c *cursor) valBinding() (ValBinding, bool) {
	if !c.match(VAL) {
		return ValBinding{}, false
	}
	nameTok, ok := c.take(NAME)
	if !ok {
		return ValBinding{}, false
	}
	tag := ""
	if c.match(COLON) {
		tagTok, ok := c.take(NAME)
		if !ok {
			return ValBinding{}, false
		}
		tag = tagTok.Literal.(string)
	}
	if !c.match(EQUALS) {
		return ValBinding{}, false
	}
	value, ok := attempt(c, (*cursor).element)
	if !ok {
		return ValBinding{}, false
	}
	return ValBinding{Name: nameTok.Literal.(string), Tag: tag, Value: value}, true
}

// letScope parses `let val* [in element? end]`. A let with no `in` keyword
// is accepted with a Nothing body so declaration-only scripts parse.
func (c *cursor) letScope() (Element, bool) {
	if !c.match(LET) {
		return Element{}, false
	}
	var bindings []ValBinding
	for {
		vb, ok := attempt(c, (*cursor).valBinding)
		if !ok {
			break
		}
		bindings = append(bindings, vb)
	}
	if !c.match(IN) {
		return Element{Kind: ELet, Data: LetScope{Bindings: bindings, Body: nothingElement}}, true
	}
	body := nothingElement
	if el, ok := attempt(c, (*cursor).element); ok {
		body = el
	}
	if !c.match(END) {
		return Element{}, false
	}
	return Element{Kind: ELet, Data: LetScope{Bindings: bindings, Body: body}}, true
}

// groupedApplication parses a parenthesized grouping. Empty parens mean
// nothing.
func (c *cursor) groupedApplication() (Element, bool) {
	if !c.match(LPAREN) {
		return Element{}, false
	}
	var items []Element
	for {
		el, ok := attempt(c, (*cursor).groupItem)
		if !ok {
			break
		}
		items = append(items, el)
	}
	if !c.match(RPAREN) {
		return Element{}, false
	}
	if len(items) == 0 {
		return nothingElement, true
	}
	return Element{Kind: EGrouping, Data: items}, true
}

func (c *cursor) conditional() (Element, bool) {
	if !c.match(IF) {
		return Element{}, false
	}
	cond, ok := attempt(c, (*cursor).element)
	if !ok {
		return Element{}, false
	}
	if !c.match(THEN) {
		return Element{}, false
	}
	then, ok := attempt(c, (*cursor).element)
	if !ok {
		return Element{}, false
	}
	if !c.match(ELSE) {
		return Element{}, false
	}
	els, ok := attempt(c, (*cursor).element)
	if !ok {
		return Element{}, false
	}
	if !c.match(END) {
		return Element{}, false
	}
	return Element{Kind: EConditional, Data: Conditional{Cond: cond, Then: then, Else: els}}, true
}

// lambda parses `\p1 [: T1] ... pn [: Tn] -> body` and desugars it
// right-to-left into nested single-parameter lambdas.
func (c *cursor) lambda() (Element, bool) {
	if !c.match(LAMBDA) {
		return Element{}, false
	}
	type param struct {
		name string
		tag  string
	}
	var params []param
	for {
		nameTok, ok := c.take(NAME)
		if !ok {
			break
		}
		p := param{name: nameTok.Literal.(string)}
		save := c.pos
		if c.match(COLON) {
			if tagTok, ok := c.take(NAME); ok {
				p.tag = tagTok.Literal.(string)
			} else {
				c.pos = save
			}
		}
		params = append(params, p)
	}
	if len(params) == 0 {
		return Element{}, false
	}
	if !c.match(ARROW) {
		return Element{}, false
	}
	body, ok := attempt(c, (*cursor).element)
	if !ok {
		return Element{}, false
	}
	el := body
	for i := len(params) - 1; i >= 0; i-- {
		el = Element{Kind: ELambda, Data: LambdaElement{Param: params[i].name, InTag: params[i].tag, Body: el}}
	}
	return el, true
}

func (c *cursor) list() (Element, bool) {
	if !c.match(LSQUARE) {
		return Element{}, false
	}
	items := c.innerItems()
	if !c.match(RSQUARE) {
		return Element{}, false
	}
	return Element{Kind: EList, Data: items}, true
}

func (c *cursor) tuple() (Element, bool) {
	if !c.match(QUOTE) {
		return Element{}, false
	}
	if !c.match(LPAREN) {
		return Element{}, false
	}
	items := c.innerItems()
	if !c.match(RPAREN) {
		return Element{}, false
	}
	return Element{Kind: ETuple, Data: items}, true
}

func (c *cursor) set() (Element, bool) {
	if !c.match(HASH) {
		return Element{}, false
	}
	if !c.match(LPAREN) {
		return Element{}, false
	}
	items := c.innerItems()
	if !c.match(RPAREN) {
		return Element{}, false
	}
	return Element{Kind: ESet, Data: items}, true
}

func (c *cursor) record() (Element, bool) {
	if !c.match(LBRACE) {
		return Element{}, false
	}
	fields := map[string]Element{}
	for {
		save := c.pos
		nameTok, ok := c.take(NAME)
		if !ok {
			break
		}
		if !c.match(COLON) {
			c.pos = save
			break
		}
		value, ok := attempt(c, (*cursor).elementInner)
		if !ok {
			c.pos = save
			break
		}
		fields[nameTok.Literal.(string)] = value
	}
	if !c.match(RBRACE) {
		return Element{}, false
	}
	return Element{Kind: ERecord, Data: fields}, true
}

func (c *cursor) innerItems() []Element {
	var items []Element
	for {
		el, ok := attempt(c, (*cursor).elementInner)
		if !ok {
			return items
		}
		items = append(items, el)
	}
}

/* ===========================
   Rendering (introspection)
   =========================== */

// String renders the element as a compact s-expression for tooling.
func (e Element) String() string {
	switch e.Kind {
	case ENothing:
		return "nothing"
	case EBoolean:
		return strconv.FormatBool(e.Data.(bool))
	case EInt:
		return strconv.FormatInt(e.Data.(int64), 10)
	case EString:
		return `"` + e.Data.(string) + `"`
	case EName:
		return e.Data.(string)
	case ETaggedName:
		tn := e.Data.(TaggedName)
		return tn.Name + ":" + tn.Tag
	case EHostFunction:
		return "[host " + e.Data.(string) + "]"
	case ELet:
		ls := e.Data.(LetScope)
		var b strings.Builder
		b.WriteString("(let")
		for _, vb := range ls.Bindings {
			b.WriteString(" (val " + vb.Name)
			if vb.Tag != "" {
				b.WriteString(":" + vb.Tag)
			}
			b.WriteString(" " + vb.Value.String() + ")")
		}
		b.WriteString(" " + ls.Body.String() + ")")
		return b.String()
	case EGrouping:
		return "(" + joinElements(e.Data.([]Element)) + ")"
	case EConditional:
		cond := e.Data.(Conditional)
		return "(if " + cond.Cond.String() + " " + cond.Then.String() + " " + cond.Else.String() + ")"
	case ELambda:
		lam := e.Data.(LambdaElement)
		return "(lambda " + lam.Param + " " + lam.Body.String() + ")"
	case ETuple:
		return "'(" + joinElements(e.Data.([]Element)) + ")"
	case EList:
		return "[" + joinElements(e.Data.([]Element)) + "]"
	case ESet:
		return "#(" + joinElements(e.Data.([]Element)) + ")"
	case ERecord:
		fields := e.Data.(map[string]Element)
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
	case EForward:
		return ">>"
	default:
		return fmt.Sprintf("Element(%d)", int(e.Kind))
	}
}

func joinElements(els []Element) string {
	parts := make([]string, len(els))
	for i, el := range els {
		parts[i] = el.String()
	}
	return strings.Join(parts, " ")
}
