package parser

import (
	"strconv"
	"strings"
)

// Parser assembles the token stream into logical lines. It is a pull-based
// driver: each NextLine call consumes tokens until the line is complete or
// the input is exhausted. The parser holds one reusable line buffer; yielded
// Line values are snapshots and stay valid across subsequent calls.
type Parser struct {
	lexer   *Lexer
	cb      Callbacks
	line    Line
	current GCode
	inGcode bool
}

// New creates a parser over input. cb may be nil, in which case diagnostics
// are discarded.
func New(input string, cb Callbacks) *Parser {
	if cb == nil {
		cb = NopCallbacks{}
	}
	return &Parser{
		lexer: NewLexer(input, cb),
		cb:    cb,
	}
}

// NextLine assembles and returns the next logical line. The second return is
// false once the input is exhausted. Blank lines are consumed silently; a
// line is only yielded when it carries at least one command, comment, line
// number or block-delete mark.
func (p *Parser) NextLine() (Line, bool) {
	p.line.reset()
	canDelete := true     // a block-delete / is only accepted as the first token of the line
	canLineNumber := true // an N word is only accepted before the first command

	for {
		tok, ok := p.lexer.Peek()
		if !ok {
			p.closeGcode()
			if !p.line.IsEmpty() {
				return p.line, true
			}
			return Line{}, false
		}

		switch tok.Kind {
		case TokenNewline:
			p.lexer.Next()
			p.closeGcode()
			if !p.line.IsEmpty() {
				return p.line, true
			}
			// Blank line; start over on the next one
			p.line.reset()
			canDelete = true
			canLineNumber = true

		case TokenPercent:
			// Program begin/end marker: a hard line separator
			p.lexer.Next()
			p.closeGcode()
			if !p.line.IsEmpty() {
				return p.line, true
			}
			p.line.reset()
			canDelete = true
			canLineNumber = true

		case TokenForwardSlash:
			p.lexer.Next()
			if canDelete {
				p.line.setDeleted(tok.Span)
				canDelete = false
			} else {
				// A block-delete mark is only meaningful as the first byte
				// of a line
				p.cb.UnknownContent(tok.Text, tok.Span)
			}

		case TokenComment:
			p.lexer.Next()
			p.line.pushComment(Comment{Text: tok.Text, Span: tok.Span}, p.cb)
			canDelete = false

		case TokenGarbage:
			// Already reported by the lexer
			p.lexer.Next()
			canDelete = false

		case TokenNumber:
			p.lexer.Next()
			p.cb.NumberWithoutALetter(tok.Text, tok.Span)
			canDelete = false

		case TokenLetter:
			canDelete = false
			p.handleWord(&canLineNumber)
		}
	}
}

// EachCommand pulls lines until the input is exhausted, running fn over
// every command in input order
func (p *Parser) EachCommand(fn func(GCode)) {
	for {
		line, ok := p.NextLine()
		if !ok {
			return
		}
		for _, gcode := range line.Gcodes() {
			fn(gcode)
		}
	}
}

// handleWord consumes a letter token and the number completing the word,
// then dispatches on the letter: line number, command mnemonic or argument
func (p *Parser) handleWord(canLineNumber *bool) {
	letterTok, _ := p.lexer.Next()

	numTok, ok := p.numberAfterLetter()
	if !ok {
		p.cb.LetterWithoutANumber(letterTok.Text, letterTok.Span)
		return
	}

	span := letterTok.Span.Merge(numTok.Span)

	if letterTok.Letter == 'N' {
		if *canLineNumber && !p.inGcode {
			n, _, negative := splitUnsignedNumber(numTok.Text)
			if negative || strings.Contains(numTok.Text, ".") {
				// Line numbers must be non-negative integers; keep the
				// truncated value
				p.cb.UnknownContent(numTok.Text, numTok.Span)
			}
			p.line.setLineNumber(n, span)
			*canLineNumber = false
		} else {
			p.cb.UnexpectedLineNumber(numTok.Value, span)
		}
		return
	}

	if mnemonic, ok := MnemonicForLetter(letterTok.Letter); ok {
		p.closeGcode()
		p.startGcode(mnemonic, numTok, span)
		*canLineNumber = false
		return
	}

	word := Word{Letter: letterTok.Letter, Value: numTok.Value, Span: span}
	if p.inGcode {
		p.current.addArgument(word, p.cb)
	} else {
		p.cb.ArgumentWithoutACommand(word.Letter, word.Value, word.Span)
	}
}

// numberAfterLetter consumes tokens up to the number completing the current
// word. Comments between a letter and its number are allowed and are pushed
// to the line as they are crossed; anything else ends the word.
func (p *Parser) numberAfterLetter() (Token, bool) {
	for {
		tok, ok := p.lexer.Peek()
		if !ok {
			return Token{}, false
		}
		switch tok.Kind {
		case TokenComment:
			p.lexer.Next()
			p.line.pushComment(Comment{Text: tok.Text, Span: tok.Span}, p.cb)
		case TokenNumber:
			p.lexer.Next()
			return tok, true
		default:
			return Token{}, false
		}
	}
}

// startGcode begins a new command from its mnemonic word
func (p *Parser) startGcode(mnemonic Mnemonic, numTok Token, span Span) {
	major, minor, negative := splitUnsignedNumber(numTok.Text)
	if negative {
		// Command numbers must be non-negative; keep the sign-truncated
		// value
		p.cb.UnknownContent(numTok.Text, numTok.Span)
	}

	number := numTok.Value
	if number < 0 {
		number = -number
	}

	p.current = GCode{
		mnemonic: mnemonic,
		major:    major,
		minor:    minor,
		number:   number,
		span:     span,
	}
	p.inGcode = true
}

// closeGcode pushes the command in progress, if any, onto the line
func (p *Parser) closeGcode() {
	if !p.inGcode {
		return
	}
	p.inGcode = false
	p.line.pushGcode(p.current, p.cb)
}

// splitUnsignedNumber splits a numeric literal into its integer and
// fractional-digit parts, both read as unsigned decimal integers. The minor
// part ignores leading zeros, so 38.02 yields major 38 and minor 2. A
// leading sign is truncated and reported to the caller.
func splitUnsignedNumber(text string) (major, minor uint32, negative bool) {
	if strings.HasPrefix(text, "-") {
		negative = true
		text = text[1:]
	}

	intPart, fracPart, _ := strings.Cut(text, ".")
	if intPart != "" {
		// ParseUint saturates on range errors, which is the behavior we
		// want for absurdly long digit runs
		v, _ := strconv.ParseUint(intPart, 10, 32)
		major = uint32(v)
	}
	if fracPart != "" {
		v, _ := strconv.ParseUint(fracPart, 10, 32)
		minor = uint32(v)
	}
	return major, minor, negative
}
