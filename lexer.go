// lexer.go: byte-level scanner for Wander source
//
// What this file does
// -------------------
// Turns a source string into a flat []Token. The raw stream keeps
// WHITESPACE and COMMENT tokens so tooling can reconstruct the source;
// `Filter` strips them before parsing.
//
// Token inventory:
//   - literals: BOOLEAN (`true`/`false`), INT (optional leading '-'),
//     STRING (double quotes, escapes limited to \n \t \\ \")
//   - NAME: letter or '_' start, then letters, digits, '_' and '.'
//     (dotted names like `Bool.not` are a single token)
//   - keywords: LET IN END IF THEN ELSE VAL NOTHING
//   - punctuation: LPAREN RPAREN LSQUARE RSQUARE LBRACE RBRACE COLON
//     EQUALS HASH QUOTE QUESTION
//   - LAMBDA ('\'), ARROW ('->'), FORWARD ('>>')
//
// Any unterminated string, unknown escape, or stray character fails the
// whole scan with a *LexError carrying a 1-based line and 0-based column.
//
// Scope of the public API
// -----------------------
// Public:  `Tokenize(src string) ([]Token, error)`,
//          `Filter(tokens []Token) []Token`,
//          `Token`, `TokenKind`, `*LexError`.
// Private: the lexer state machine and its scanners.
package wander

import (
	"fmt"
	"strconv"
)

// TokenKind represents the kind of token.
type TokenKind int

const (
	// Literals & names
	BOOLEAN TokenKind = iota
	INT
	STRING
	NAME

	// Keywords
	LET
	IN
	END
	IF
	THEN
	ELSE
	VAL
	NOTHING

	// Punctuation
	LPAREN   // "("
	RPAREN   // ")"
	LSQUARE  // "["
	RSQUARE  // "]"
	LBRACE   // "{"
	RBRACE   // "}"
	COLON    // ":"
	EQUALS   // "="
	HASH     // "#"
	QUOTE    // "'"
	QUESTION // "?"

	// Operators
	LAMBDA  // "\"
	ARROW   // "->"
	FORWARD // ">>"

	// Trivia (present in the raw stream, removed by Filter)
	WHITESPACE
	COMMENT
)

var tokenKindNames = map[TokenKind]string{
	BOOLEAN: "BOOLEAN", INT: "INT", STRING: "STRING", NAME: "NAME",
	LET: "LET", IN: "IN", END: "END", IF: "IF", THEN: "THEN", ELSE: "ELSE",
	VAL: "VAL", NOTHING: "NOTHING",
	LPAREN: "LPAREN", RPAREN: "RPAREN", LSQUARE: "LSQUARE", RSQUARE: "RSQUARE",
	LBRACE: "LBRACE", RBRACE: "RBRACE", COLON: "COLON", EQUALS: "EQUALS",
	HASH: "HASH", QUOTE: "QUOTE", QUESTION: "QUESTION",
	LAMBDA: "LAMBDA", ARROW: "ARROW", FORWARD: "FORWARD",
	WHITESPACE: "WHITESPACE", COMMENT: "COMMENT",
}

func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a lexical token with optional literal value.
//
// Literal holds bool for BOOLEAN, int64 for INT, the raw inner text
// (escapes intact, quotes stripped) for STRING, and the name for NAME.
type Token struct {
	Kind    TokenKind
	Lexeme  string // raw text slice
	Literal interface{}
	Line    int // 1-based
	Col     int // 0-based
}

func (t Token) String() string { return t.Lexeme }

// keywords map
var keywords = map[string]TokenKind{
	"let":     LET,
	"in":      IN,
	"end":     END,
	"if":      IF,
	"then":    THEN,
	"else":    ELSE,
	"val":     VAL,
	"nothing": NOTHING,
	"true":    BOOLEAN,
	"false":   BOOLEAN,
}

// lexer scans a Wander source string into tokens.
type lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// Tokenize scans the entire source and returns the raw token stream,
// whitespace and comment tokens included.
func Tokenize(src string) ([]Token, error) {
	l := &lexer{src: src, line: 1}
	for !l.isAtEnd() {
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	return l.tokens, nil
}

// Filter removes WHITESPACE and COMMENT tokens.
func Filter(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == WHITESPACE || t.Kind == COMMENT {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (l *lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *lexer) addToken(kind TokenKind, lit interface{}) {
	l.tokens = append(l.tokens, Token{
		Kind:    kind,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	})
	l.start = l.cur
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isNameByte(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '.'
}
func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// ----- errors -----

type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

func (l *lexer) err(msg string) error {
	return &LexError{Line: l.line, Col: l.col, Msg: msg}
}

// ----- scanners -----

// scanString validates a double-quoted string literal and returns the raw
// inner text with escape sequences intact. Unescaping happens at
// evaluation time with the same four-entry table (see interpreter.go).
func (l *lexer) scanString() (string, error) {
	for {
		if l.isAtEnd() {
			return "", l.err("string was not terminated")
		}
		ch, _ := l.advance()
		if ch == '"' {
			// inner text, quotes stripped
			return l.src[l.start+1 : l.cur-1], nil
		}
		if ch == '\\' {
			if l.isAtEnd() {
				return "", l.err("unfinished escape sequence")
			}
			esc, _ := l.advance()
			switch esc {
			case 'n', 't', '\\', '"':
			default:
				return "", l.err(fmt.Sprintf("invalid escape sequence: \\%c", esc))
			}
		}
	}
}

// scanInt parses the digits of an integer literal. The optional leading
// '-' was already consumed by scanToken.
func (l *lexer) scanInt() (int64, error) {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	lex := l.src[l.start:l.cur]
	v, err := strconv.ParseInt(lex, 10, 64)
	if err != nil {
		return 0, l.err(fmt.Sprintf("invalid integer literal: %s", lex))
	}
	return v, nil
}

// scanName parses [A-Za-z_][A-Za-z0-9_.]* (dotted names are one token).
func (l *lexer) scanName() string {
	for {
		b, ok := l.peek()
		if !ok || !isNameByte(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// scanWhitespace consumes a run of whitespace into one token.
func (l *lexer) scanWhitespace() {
	for {
		b, ok := l.peek()
		if !ok || !isWhitespace(b) {
			return
		}
		l.advance()
	}
}

// scanComment consumes "--" to end of line (the newline stays outside).
func (l *lexer) scanComment() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return
		}
		l.advance()
	}
}

// ----- main scanner -----

func (l *lexer) scanToken() error {
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	ch, ok := l.advance()
	if !ok {
		return nil
	}

	if isWhitespace(ch) {
		l.scanWhitespace()
		l.addToken(WHITESPACE, nil)
		return nil
	}

	switch ch {
	case '(':
		l.addToken(LPAREN, nil)
		return nil
	case ')':
		l.addToken(RPAREN, nil)
		return nil
	case '[':
		l.addToken(LSQUARE, nil)
		return nil
	case ']':
		l.addToken(RSQUARE, nil)
		return nil
	case '{':
		l.addToken(LBRACE, nil)
		return nil
	case '}':
		l.addToken(RBRACE, nil)
		return nil
	case ':':
		l.addToken(COLON, nil)
		return nil
	case '=':
		l.addToken(EQUALS, nil)
		return nil
	case '#':
		l.addToken(HASH, nil)
		return nil
	case '\'':
		l.addToken(QUOTE, nil)
		return nil
	case '?':
		l.addToken(QUESTION, nil)
		return nil
	case '\\':
		l.addToken(LAMBDA, nil)
		return nil
	case '>':
		if b, ok := l.peek(); ok && b == '>' {
			l.advance()
			l.addToken(FORWARD, nil)
			return nil
		}
		return l.err("unexpected character: '>'")
	case '-':
		b, ok := l.peek()
		switch {
		case ok && b == '>':
			l.advance()
			l.addToken(ARROW, nil)
			return nil
		case ok && b == '-':
			l.advance()
			l.scanComment()
			l.addToken(COMMENT, nil)
			return nil
		case ok && isDigit(b):
			v, err := l.scanInt()
			if err != nil {
				return err
			}
			l.addToken(INT, v)
			return nil
		default:
			return l.err("unexpected character: '-'")
		}
	case '"':
		text, err := l.scanString()
		if err != nil {
			return err
		}
		l.addToken(STRING, text)
		return nil
	}

	if isDigit(ch) {
		v, err := l.scanInt()
		if err != nil {
			return err
		}
		l.addToken(INT, v)
		return nil
	}

	if isAlpha(ch) {
		lex := l.scanName()
		if kind, ok := keywords[lex]; ok {
			switch kind {
			case BOOLEAN:
				l.addToken(BOOLEAN, lex == "true")
			case NOTHING:
				l.addToken(NOTHING, nil)
			default:
				l.addToken(kind, nil)
			}
			return nil
		}
		l.addToken(NAME, lex)
		return nil
	}

	return l.err(fmt.Sprintf("unexpected character: %q", ch))
}
