package parser

import (
	"fmt"
	"strconv"
)

// TokenKind represents the lexical class of a token
type TokenKind int

const (
	TokenLetter TokenKind = iota // a single ASCII letter
	TokenNumber                  // signed fractional number
	TokenComment                 // (parenthesised) or ;semicolon comment
	TokenForwardSlash            // / (block delete)
	TokenPercent                 // % (program begin/end)
	TokenNewline                 // \n
	TokenGarbage                 // maximal run of unclassified bytes
)

var tokenKindNames = map[TokenKind]string{
	TokenLetter:       "LETTER",
	TokenNumber:       "NUMBER",
	TokenComment:      "COMMENT",
	TokenForwardSlash: "/",
	TokenPercent:      "%",
	TokenNewline:      "NEWLINE",
	TokenGarbage:      "GARBAGE",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token represents a lexical token
type Token struct {
	Kind   TokenKind
	Text   string  // raw source text; for comments, the interior text only
	Letter byte    // uppercased letter, set for TokenLetter
	Value  float32 // parsed value, set for TokenNumber
	Span   Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %s", t.Kind, t.Text, t.Span)
}

// Lexer turns G-code source bytes into a restartable stream of tokens. It
// never fails: unrecognized bytes come back as TokenGarbage and are reported
// through the observer. The lexer owns the logical-line counter; the counter
// advances after each newline token is produced.
type Lexer struct {
	input string
	pos   int
	line  int // 0-based logical line number
	cb    Callbacks

	peeked  Token
	hasPeek bool
}

// NewLexer creates a new lexer over input. Garbage and mangled numeric
// literals are reported through cb as they are scanned.
func NewLexer(input string, cb Callbacks) *Lexer {
	if cb == nil {
		cb = NopCallbacks{}
	}
	return &Lexer{input: input, cb: cb}
}

// Peek returns the next token without consuming it
func (l *Lexer) Peek() (Token, bool) {
	if !l.hasPeek {
		tok, ok := l.scan()
		if !ok {
			return Token{}, false
		}
		l.peeked = tok
		l.hasPeek = true
	}
	return l.peeked, true
}

// Next consumes and returns the next token. The second return is false once
// the input is exhausted.
func (l *Lexer) Next() (Token, bool) {
	if l.hasPeek {
		l.hasPeek = false
		return l.peeked, true
	}
	return l.scan()
}

// Line returns the 0-based logical line number of the scan position
func (l *Lexer) Line() int {
	return l.line
}

// skipWhitespace skips spaces, tabs and carriage returns (but not newlines)
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
		default:
			return
		}
	}
}

// scan produces one token from the remaining input
func (l *Lexer) scan() (Token, bool) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return Token{}, false
	}

	start := l.pos
	ch := l.input[l.pos]

	switch {
	case ch == '\n':
		l.pos++
		tok := Token{Kind: TokenNewline, Text: "\n", Span: Span{start, l.pos, l.line}}
		l.line++
		return tok, true

	case ch == '(':
		return l.scanParenComment(), true

	case ch == ';':
		return l.scanSemicolonComment(), true

	case ch == '%':
		l.pos++
		return Token{Kind: TokenPercent, Text: "%", Span: Span{start, l.pos, l.line}}, true

	case ch == '/':
		l.pos++
		return Token{Kind: TokenForwardSlash, Text: "/", Span: Span{start, l.pos, l.line}}, true

	case isASCIILetter(ch):
		l.pos++
		return Token{
			Kind:   TokenLetter,
			Text:   l.input[start:l.pos],
			Letter: upperASCII(ch),
			Span:   Span{start, l.pos, l.line},
		}, true

	case isASCIIDigit(ch) || ch == '-' || ch == '.':
		return l.scanNumber(), true

	default:
		return l.scanGarbage(), true
	}
}

// scanParenComment scans a (parenthesised) comment. Nested parentheses are
// not supported: the first ')' ends the comment. An unterminated comment
// runs to the newline or end of input and is additionally reported through
// the observer.
func (l *Lexer) scanParenComment() Token {
	start := l.pos
	l.pos++ // consume (
	textStart := l.pos

	for l.pos < len(l.input) && l.input[l.pos] != ')' && l.input[l.pos] != '\n' {
		l.pos++
	}

	if l.pos < len(l.input) && l.input[l.pos] == ')' {
		tok := Token{
			Kind: TokenComment,
			Text: l.input[textStart:l.pos],
			Span: Span{start, l.pos + 1, l.line},
		}
		l.pos++ // consume )
		return tok
	}

	// Unterminated comment
	span := Span{start, l.pos, l.line}
	l.cb.UnknownContent(l.input[start:l.pos], span)
	return Token{Kind: TokenComment, Text: l.input[textStart:l.pos], Span: span}
}

// scanSemicolonComment scans a ;comment covering bytes up to but not
// including the next newline or end of input
func (l *Lexer) scanSemicolonComment() Token {
	start := l.pos
	l.pos++ // consume ;
	textStart := l.pos

	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}

	return Token{
		Kind: TokenComment,
		Text: l.input[textStart:l.pos],
		Span: Span{start, l.pos, l.line},
	}
}

// scanNumber scans a signed fractional number: -?digits?.?digits with at
// least one digit. A lone sign or decimal point with no digits is garbage.
// A magnitude that overflows float32 is clamped to infinity and reported.
func (l *Lexer) scanNumber() Token {
	start := l.pos
	digits := 0

	if l.pos < len(l.input) && l.input[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.input) && isASCIIDigit(l.input[l.pos]) {
		l.pos++
		digits++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.input) && isASCIIDigit(l.input[l.pos]) {
			l.pos++
			digits++
		}
	}

	text := l.input[start:l.pos]
	span := Span{start, l.pos, l.line}

	if digits == 0 {
		// A bare - or . (or -.) is not a number
		l.cb.UnknownContent(text, span)
		return Token{Kind: TokenGarbage, Text: text, Span: span}
	}

	value, err := strconv.ParseFloat(text, 32)
	if err != nil {
		// Only a range error is possible here; ParseFloat has already
		// clamped the value to +/-Inf
		l.cb.UnknownContent(text, span)
	}

	return Token{Kind: TokenNumber, Text: text, Value: float32(value), Span: span}
}

// scanGarbage scans a maximal run of bytes that belong to no other token
// class and reports it through the observer
func (l *Lexer) scanGarbage() Token {
	start := l.pos
	for l.pos < len(l.input) && !isClassified(l.input[l.pos]) {
		l.pos++
	}

	text := l.input[start:l.pos]
	span := Span{start, l.pos, l.line}
	l.cb.UnknownContent(text, span)
	return Token{Kind: TokenGarbage, Text: text, Span: span}
}

// isClassified returns true if the byte starts some non-garbage token or is
// skippable whitespace
func isClassified(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '(', ';', '%', '/', '-', '.':
		return true
	}
	return isASCIILetter(ch) || isASCIIDigit(ch)
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isASCIIDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func upperASCII(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}
