package parser

import (
	"fmt"
	"strings"
)

// DiagnosticKind categorizes the type of parse diagnostic
type DiagnosticKind int

const (
	DiagUnknownContent DiagnosticKind = iota
	DiagGcodeOverflow
	DiagArgumentOverflow
	DiagCommentOverflow
	DiagUnexpectedLineNumber
	DiagArgumentWithoutCommand
	DiagNumberWithoutLetter
	DiagLetterWithoutNumber
	DiagDuplicateArgument
)

var diagnosticKindNames = map[DiagnosticKind]string{
	DiagUnknownContent:         "unknown content",
	DiagGcodeOverflow:          "command buffer overflow",
	DiagArgumentOverflow:       "argument buffer overflow",
	DiagCommentOverflow:        "comment buffer overflow",
	DiagUnexpectedLineNumber:   "unexpected line number",
	DiagArgumentWithoutCommand: "argument without a command",
	DiagNumberWithoutLetter:    "number without a letter",
	DiagLetterWithoutNumber:    "letter without a number",
	DiagDuplicateArgument:      "duplicate argument",
}

func (k DiagnosticKind) String() string {
	if name, ok := diagnosticKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is one recorded parse event with its source span
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	Span    Span
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

// DiagnosticList records every observer event it receives. It implements
// Callbacks and is the collector the CLI, linter and API service hand to the
// parser when they want diagnostics as values rather than live events.
type DiagnosticList struct {
	Diagnostics []*Diagnostic
}

// add records one diagnostic
func (dl *DiagnosticList) add(kind DiagnosticKind, span Span, format string, args ...any) {
	dl.Diagnostics = append(dl.Diagnostics, &Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	})
}

// HasDiagnostics returns true if any event was recorded
func (dl *DiagnosticList) HasDiagnostics() bool {
	return len(dl.Diagnostics) > 0
}

// Len returns the number of recorded events
func (dl *DiagnosticList) Len() int {
	return len(dl.Diagnostics)
}

// CountKind returns the number of recorded events of the given kind
func (dl *DiagnosticList) CountKind(kind DiagnosticKind) int {
	count := 0
	for _, d := range dl.Diagnostics {
		if d.Kind == kind {
			count++
		}
	}
	return count
}

func (dl *DiagnosticList) String() string {
	var sb strings.Builder
	for _, d := range dl.Diagnostics {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// UnknownContent implements Callbacks
func (dl *DiagnosticList) UnknownContent(text string, span Span) {
	dl.add(DiagUnknownContent, span, "unrecognized content %q", text)
}

// GcodeBufferOverflowed implements Callbacks
func (dl *DiagnosticList) GcodeBufferOverflowed(mnemonic Mnemonic, major uint32, span Span) {
	dl.add(DiagGcodeOverflow, span, "too many commands on one line, dropping %s%d", mnemonic, major)
}

// GcodeArgumentBufferOverflowed implements Callbacks
func (dl *DiagnosticList) GcodeArgumentBufferOverflowed(mnemonic Mnemonic, major uint32, arg Word) {
	dl.add(DiagArgumentOverflow, arg.Span, "too many arguments for %s%d, dropping %s", mnemonic, major, arg)
}

// CommentBufferOverflowed implements Callbacks
func (dl *DiagnosticList) CommentBufferOverflowed(text string, span Span) {
	dl.add(DiagCommentOverflow, span, "too many comments on one line, dropping %q", text)
}

// UnexpectedLineNumber implements Callbacks
func (dl *DiagnosticList) UnexpectedLineNumber(lineNumber float32, span Span) {
	dl.add(DiagUnexpectedLineNumber, span, "line number N%g must come at the start of a line", lineNumber)
}

// ArgumentWithoutACommand implements Callbacks
func (dl *DiagnosticList) ArgumentWithoutACommand(letter byte, value float32, span Span) {
	dl.add(DiagArgumentWithoutCommand, span, "argument %c%g has no command to attach to", letter, value)
}

// NumberWithoutALetter implements Callbacks
func (dl *DiagnosticList) NumberWithoutALetter(text string, span Span) {
	dl.add(DiagNumberWithoutLetter, span, "number %q has no letter", text)
}

// LetterWithoutANumber implements Callbacks
func (dl *DiagnosticList) LetterWithoutANumber(text string, span Span) {
	dl.add(DiagLetterWithoutNumber, span, "letter %q has no number", text)
}

// DuplicateArgument implements Callbacks
func (dl *DiagnosticList) DuplicateArgument(previous, replacement Word, span Span) {
	dl.add(DiagDuplicateArgument, span, "argument %s replaces earlier %s", replacement, previous)
}

var _ Callbacks = (*DiagnosticList)(nil)
