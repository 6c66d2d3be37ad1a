package parser

// Callbacks is the observer surface for parse diagnostics. The parser never
// aborts on malformed input: it reports the fragment through the matching
// callback, discards the smallest grammatically meaningful unit, and carries
// on from the next safe token. Callbacks run synchronously on the caller's
// goroutine before NextLine returns; they must not retain text slices beyond
// the invocation.
//
// Embed NopCallbacks to implement only the events of interest.
type Callbacks interface {
	// UnknownContent reports bytes the lexer could not classify, plus
	// mangled fragments such as unterminated parenthesised comments and
	// numeric literals that do not fit their context.
	UnknownContent(text string, span Span)

	// GcodeBufferOverflowed reports a command dropped because the line's
	// command buffer was already full.
	GcodeBufferOverflowed(mnemonic Mnemonic, major uint32, span Span)

	// GcodeArgumentBufferOverflowed reports an argument dropped because the
	// command's argument buffer was already full.
	GcodeArgumentBufferOverflowed(mnemonic Mnemonic, major uint32, arg Word)

	// CommentBufferOverflowed reports a comment dropped because the line's
	// comment buffer was already full.
	CommentBufferOverflowed(text string, span Span)

	// UnexpectedLineNumber reports an N word that did not appear at the
	// start of a line. The word is discarded.
	UnexpectedLineNumber(lineNumber float32, span Span)

	// ArgumentWithoutACommand reports an argument word before any command
	// on the line. The word is discarded.
	ArgumentWithoutACommand(letter byte, value float32, span Span)

	// NumberWithoutALetter reports a bare numeric literal. The literal is
	// discarded.
	NumberWithoutALetter(text string, span Span)

	// LetterWithoutANumber reports a letter with no following number before
	// the next terminator. The letter is discarded.
	LetterWithoutANumber(text string, span Span)

	// DuplicateArgument reports a second argument with the same letter
	// within one command. The replacement wins.
	DuplicateArgument(previous, replacement Word, span Span)
}

// NopCallbacks ignores every diagnostic. It is the default observer and the
// embedding base for partial implementations.
type NopCallbacks struct{}

func (NopCallbacks) UnknownContent(string, Span) {}

func (NopCallbacks) GcodeBufferOverflowed(Mnemonic, uint32, Span) {}

func (NopCallbacks) GcodeArgumentBufferOverflowed(Mnemonic, uint32, Word) {}

func (NopCallbacks) CommentBufferOverflowed(string, Span) {}

func (NopCallbacks) UnexpectedLineNumber(float32, Span) {}

func (NopCallbacks) ArgumentWithoutACommand(byte, float32, Span) {}

func (NopCallbacks) NumberWithoutALetter(string, Span) {}

func (NopCallbacks) LetterWithoutANumber(string, Span) {}

func (NopCallbacks) DuplicateArgument(Word, Word, Span) {}

var _ Callbacks = NopCallbacks{}
